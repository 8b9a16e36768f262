package pager

import (
	"fmt"
	"unicode/utf8"

	"github.com/Iron-Ham/skim/internal/search"
	"github.com/Iron-Ham/skim/internal/viewport"
)

const (
	msgQueryNotSet = "search query is not set"
	msgWrapped     = "search wrapped"
)

func msgNotFound(query string) string {
	return fmt.Sprintf("pattern not found: %s", query)
}

// searchState is the committed query with its matches and cursor, plus the
// query being edited and its live preview. The committed matches are only
// ever computed from the committed query.
type searchState struct {
	committed *search.Index
	preview   *search.Index
	pending   string
	cursor    int // index into committed matches, -1 for none
	saved     savedSearch
}

// savedSearch is the state captured when editing starts.
type savedSearch struct {
	query  string
	cursor int
}

func newSearchState(src search.Source) searchState {
	return searchState{
		committed: search.NewIndex(src),
		preview:   search.NewIndex(src),
		cursor:    -1,
	}
}

// navigator is what Normal mode may touch: the viewport, the committed
// matches and the cursor over them.
type navigator struct {
	view   *viewport.Viewport
	search *searchState
	status *string
}

// highlighter is what SearchEdit mode may touch. It has no access to the
// viewport.
type highlighter struct {
	search *searchState
	status *string
}

// anchor is where n/N start from: the current match while it is on screen,
// otherwise just before the top line so a match on the top line is next.
func (n navigator) anchor() search.Position {
	s := n.search
	if s.cursor >= 0 && s.cursor < s.committed.Len() {
		m := s.committed.At(s.cursor)
		if n.view.Contains(m.Line) {
			return m.Position()
		}
	}
	return search.Position{Line: n.view.Top(), Column: -1}
}

// jump moves to the next (forward) or previous match.
func (n navigator) jump(forward bool) {
	s := n.search
	query := s.committed.Query()
	if query == "" {
		*n.status = msgQueryNotSet
		return
	}

	a := n.anchor()
	var (
		idx     int
		wrapped bool
		err     error
	)
	if forward {
		idx, wrapped, err = s.committed.Next(&a)
	} else {
		idx, wrapped, err = s.committed.Prev(&a)
	}
	if err != nil {
		*n.status = msgNotFound(query)
		return
	}

	s.cursor = idx
	n.view.ScrollTo(s.committed.At(idx).Line)
	if wrapped {
		*n.status = msgWrapped
	}
}

// begin starts editing with the committed query as the initial text.
func (n navigator) begin() {
	s := n.search
	s.saved = savedSearch{query: s.committed.Query(), cursor: s.cursor}
	s.pending = s.committed.Query()
	s.preview.Set(s.pending)
}

func (h highlighter) insert(r rune) {
	s := h.search
	s.pending += string(r)
	s.preview.Set(s.pending)
}

func (h highlighter) deleteBack() {
	s := h.search
	if s.pending == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(s.pending)
	s.pending = s.pending[:len(s.pending)-size]
	s.preview.Set(s.pending)
}

func (h highlighter) clear() {
	s := h.search
	s.pending = ""
	s.preview.Set("")
}

// commit makes the pending text the committed query.
func (h highlighter) commit() {
	s := h.search
	s.committed.Set(s.pending)
	s.cursor = -1
	s.pending = ""
	s.preview.Set("")
	if q := s.committed.Query(); q != "" && s.committed.Len() == 0 {
		*h.status = msgNotFound(q)
	}
}

// cancel discards the edit and restores the state from before editing.
func (h highlighter) cancel() {
	s := h.search
	s.committed.Set(s.saved.query)
	s.cursor = s.saved.cursor
	s.pending = ""
	s.preview.Set("")
}
