// Package scoring turns raw platform metrics into a single attention
// score usable as a treemap weight.
//
// Platform metrics span wildly different magnitudes: a viral track has
// hundreds of millions of plays while a rising hashtag has a few
// thousand posts. Scores are log-scaled so that both land on a shared
// 1..100 scale, then adjusted by momentum so that fast risers outrank
// stale giants.
//
// Scoring is pure and deterministic: the same metrics always produce
// the same score.
package scoring

import (
	"math"

	"github.com/mkessel/trendmap/pkg/board"
)

// Metric weights. Plays and views dominate because they measure active
// consumption; followers lag behind actual attention.
const (
	weightPlays     = 0.4
	weightViews     = 0.4
	weightFollowers = 0.2

	// logCeiling is log10 of the count treated as saturation (10^10).
	logCeiling = 10.0

	// momentumGain caps how much growth can swing the base score.
	momentumGain = 0.5
)

// Attention computes an attention score in [1, 100] from platform
// metrics.
//
// Each counter is log-scaled against a 10^10 saturation point and the
// scaled values are blended with fixed weights. Momentum (fractional
// growth since the previous observation) is clamped to [-1, 1] and
// applied as a multiplier, so a trend doubling week over week scores
// up to 50% higher than a flat one.
//
// Metrics that are all zero still score 1, so every candidate remains
// a valid treemap weight.
func Attention(m board.Metrics) float64 {
	base := weightPlays*scale(m.Plays) +
		weightViews*scale(m.Views) +
		weightFollowers*scale(m.Followers)

	momentum := clamp(m.Momentum, -1, 1)
	score := base * (1 + momentumGain*momentum)

	return clamp(score, 1, 100)
}

// scale maps a raw counter onto [0, 100] logarithmically.
func scale(n int64) float64 {
	if n <= 0 {
		return 0
	}
	return math.Log10(float64(n)+1) / logCeiling * 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
