package search

import (
	"sort"

	"github.com/Iron-Ham/skim/internal/errors"
)

// NextMatch returns the index of the first match strictly after the anchor.
// When no such match exists it wraps to the first match and reports
// wrapped. A nil anchor selects the first match without wrapping.
// matches must be sorted by position.
func NextMatch(matches []MatchSpan, after *Position) (int, bool, error) {
	if len(matches) == 0 {
		return 0, false, errors.ErrNoMatches
	}
	if after == nil {
		return 0, false, nil
	}
	i := sort.Search(len(matches), func(i int) bool {
		return after.Less(matches[i].Position())
	})
	if i == len(matches) {
		return 0, true, nil
	}
	return i, false, nil
}

// PrevMatch mirrors NextMatch: the last match strictly before the anchor,
// wrapping to the last match. A nil anchor selects the last match.
func PrevMatch(matches []MatchSpan, before *Position) (int, bool, error) {
	if len(matches) == 0 {
		return 0, false, errors.ErrNoMatches
	}
	last := len(matches) - 1
	if before == nil {
		return last, false, nil
	}
	// First match not before the anchor; the one preceding it is the answer.
	i := sort.Search(len(matches), func(i int) bool {
		return !matches[i].Position().Less(*before)
	})
	if i == 0 {
		return last, true, nil
	}
	return i - 1, false, nil
}
