package pager

import (
	"github.com/Iron-Ham/skim/internal/search"
)

// Line is one visible row of content.
type Line struct {
	// Index is the 0-indexed buffer line.
	Index int
	Text  string
	// Spans are the matches to highlight on this line, in column order.
	Spans []search.MatchSpan
	// Current is the index into Spans of the current match, or -1.
	Current int
}

// Frame is an immutable snapshot of everything the renderer draws.
type Frame struct {
	Lines []Line
	Mode  Mode
	// Prompt is ':' in Normal mode and '/' while editing a query.
	Prompt rune
	// Text is the committed query in Normal mode and the pending query
	// while editing.
	Text string
	// Message is a one-shot status message; when set it replaces Text.
	Message string

	Top        int
	LineCount  int
	Percent    int
	MatchCount int
	// CurrentMatch is the 0-based index of the current match, or -1.
	CurrentMatch int
}

// Frame builds the snapshot for the current state. An error means the
// viewport referenced a line outside the buffer, which is an internal
// invariant violation.
func (d *Dispatcher) Frame() (Frame, error) {
	start, end := d.view.Visible()

	spans := d.search.committed
	current := -1
	text := d.search.committed.Query()
	if d.mode == ModeSearchEdit {
		spans = d.search.preview
		text = d.search.pending
	} else {
		current = d.search.cursor
	}

	var currentSpan search.MatchSpan
	if current >= spans.Len() {
		current = -1
	}
	if current >= 0 {
		currentSpan = spans.At(current)
	}

	lines := make([]Line, 0, end-start)
	for i := start; i < end; i++ {
		s, err := d.src.LineAt(i)
		if err != nil {
			return Frame{}, err
		}
		on := spans.OnLine(i)
		l := Line{Index: i, Text: s, Current: -1}
		if len(on) > 0 {
			l.Spans = append([]search.MatchSpan(nil), on...)
		}
		if current >= 0 && currentSpan.Line == i {
			for j, sp := range l.Spans {
				if sp == currentSpan {
					l.Current = j
					break
				}
			}
		}
		lines = append(lines, l)
	}

	return Frame{
		Lines:        lines,
		Mode:         d.mode,
		Prompt:       d.mode.Prompt(),
		Text:         text,
		Message:      d.message,
		Top:          d.view.Top(),
		LineCount:    d.view.LineCount(),
		Percent:      d.view.Percent(),
		MatchCount:   spans.Len(),
		CurrentMatch: current,
	}, nil
}
