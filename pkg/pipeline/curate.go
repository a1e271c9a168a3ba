package pipeline

import (
	"github.com/mkessel/trendmap/pkg/board"
	"github.com/mkessel/trendmap/pkg/platforms"
	"github.com/mkessel/trendmap/pkg/watchlist"
)

// WatchlistCategory is the category assigned to watchlist matches that
// arrive without a platform category, so they band together on the board.
const WatchlistCategory = "watchlist"

// Curate turns raw candidates into curated board trends.
//
// Candidates are deduplicated by normalized name, then matched against
// the watchlist when keywords are configured. With WatchlistOnly set,
// candidates off the watchlist are dropped entirely; otherwise matches
// are tagged with [WatchlistCategory] when the platform supplied none.
func Curate(candidates []platforms.Candidate, opts Options) []board.Trend {
	deduped := platforms.Dedupe(candidates)

	if len(opts.Keywords) == 0 {
		return platforms.ToTrends(deduped)
	}

	wl := watchlist.New(opts.Keywords)
	curated := make([]platforms.Candidate, 0, len(deduped))
	for _, c := range deduped {
		matched := wl.Match(c.Name)
		if opts.WatchlistOnly && !matched {
			continue
		}
		if matched && c.Category == "" {
			c.Category = WatchlistCategory
		}
		curated = append(curated, c)
	}
	return platforms.ToTrends(curated)
}
