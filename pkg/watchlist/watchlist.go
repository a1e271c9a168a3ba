// Package watchlist matches incoming trend candidates against
// user-curated keywords.
//
// Curators keep a short list of artists, genres, or hashtags they care
// about; the watchlist flags fetched candidates whose names mention one
// of those keywords. Matching is case-insensitive, ignores diacritics
// ("Beyoncé" matches "beyonce"), and works on whole words so that
// "drill" does not match "drilling rig".
package watchlist

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Watchlist holds a set of keywords in folded form.
type Watchlist struct {
	keywords []string
}

// New builds a Watchlist from keywords. Empty and whitespace-only
// keywords are dropped; the rest are folded once up front so that
// Match stays cheap.
func New(keywords []string) *Watchlist {
	w := &Watchlist{}
	for _, k := range keywords {
		folded := Fold(k)
		if folded != "" {
			w.keywords = append(w.keywords, folded)
		}
	}
	return w
}

// Len returns the number of active keywords.
func (w *Watchlist) Len() int { return len(w.keywords) }

// Match reports whether name mentions any watchlist keyword.
//
// The name is folded and split into words; a keyword matches when its
// own word sequence appears as consecutive whole words in the name.
// Multi-word keywords ("amapiano mix") therefore require the words to
// appear adjacent and in order.
func (w *Watchlist) Match(name string) bool {
	_, ok := w.Find(name)
	return ok
}

// Find returns the first keyword that name mentions, in folded form.
func (w *Watchlist) Find(name string) (string, bool) {
	words := splitWords(Fold(name))
	if len(words) == 0 {
		return "", false
	}
	for _, kw := range w.keywords {
		if containsSequence(words, splitWords(kw)) {
			return kw, true
		}
	}
	return "", false
}

// foldTransformer strips combining marks after NFD decomposition, which
// removes diacritics from latin text.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases s and strips diacritics.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// splitWords breaks s into alphanumeric word runs. Punctuation and
// symbols (including the # in hashtags) act as separators.
func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// containsSequence reports whether needle appears as consecutive
// elements of haystack.
func containsSequence(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j, w := range needle {
			if haystack[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
