// Package search locates literal occurrences of a query in a line buffer and
// navigates between them.
package search

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Source is the read-only line store a search runs over.
type Source interface {
	LineCount() int
	LineAt(i int) (string, error)
}

// MatchSpan is one occurrence of the query.
type MatchSpan struct {
	// Line is the 0-indexed line containing the match
	Line int
	// Start is the rune offset within the line where the match begins
	Start int
	// End is the rune offset just past the match
	End int
}

// Position returns the sort key of the span.
func (m MatchSpan) Position() Position {
	return Position{Line: m.Line, Column: m.Start}
}

// Position is a (line, column) point in the buffer, column in runes.
type Position struct {
	Line   int
	Column int
}

// Less orders positions by line, then column.
func (p Position) Less(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

// Recompute scans every line of src for query. Matching is literal and
// case-sensitive; within a line, matches are leftmost-first and do not
// overlap. The result is sorted by (Line, Start). An empty query matches
// nothing.
func Recompute(src Source, query string) []MatchSpan {
	if query == "" {
		return nil
	}

	qRunes := utf8.RuneCountInString(query)
	var matches []MatchSpan
	for i := 0; i < src.LineCount(); i++ {
		line, err := src.LineAt(i)
		if err != nil {
			continue
		}
		matches = appendLineMatches(matches, i, line, query, qRunes)
	}
	return matches
}

func appendLineMatches(dst []MatchSpan, lineNum int, line, query string, qRunes int) []MatchSpan {
	rest := line
	col := 0
	for {
		idx := strings.Index(rest, query)
		if idx < 0 {
			return dst
		}
		start := col + utf8.RuneCountInString(rest[:idx])
		dst = append(dst, MatchSpan{Line: lineNum, Start: start, End: start + qRunes})
		col = start + qRunes
		rest = rest[idx+len(query):]
	}
}

// Index caches the matches of one query over a buffer.
type Index struct {
	src     Source
	query   string
	matches []MatchSpan
}

// NewIndex creates an Index with an empty query.
func NewIndex(src Source) *Index {
	return &Index{src: src}
}

// Set replaces the query and recomputes matches when it changed.
func (x *Index) Set(query string) {
	if query == x.query {
		return
	}
	x.query = query
	x.matches = Recompute(x.src, query)
}

// Query returns the indexed query.
func (x *Index) Query() string {
	return x.query
}

// Matches returns a copy of the match list.
func (x *Index) Matches() []MatchSpan {
	out := make([]MatchSpan, len(x.matches))
	copy(out, x.matches)
	return out
}

// Len returns the number of matches.
func (x *Index) Len() int {
	return len(x.matches)
}

// At returns match i. It panics if i is out of range.
func (x *Index) At(i int) MatchSpan {
	return x.matches[i]
}

// OnLine returns the matches on one line, in column order.
func (x *Index) OnLine(line int) []MatchSpan {
	lo := sort.Search(len(x.matches), func(i int) bool { return x.matches[i].Line >= line })
	hi := lo
	for hi < len(x.matches) && x.matches[hi].Line == line {
		hi++
	}
	if lo == hi {
		return nil
	}
	return x.matches[lo:hi:hi]
}

// Next returns the first match after the given position. See NextMatch.
func (x *Index) Next(after *Position) (int, bool, error) {
	return NextMatch(x.matches, after)
}

// Prev returns the last match before the given position. See PrevMatch.
func (x *Index) Prev(before *Position) (int, bool, error) {
	return PrevMatch(x.matches, before)
}
