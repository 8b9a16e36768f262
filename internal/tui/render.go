package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/Iron-Ham/skim/internal/pager"
	"github.com/Iron-Ham/skim/internal/tui/styles"
)

type highlight int

const (
	plain highlight = iota
	match
	current
)

// segment is a run of display text sharing one highlight.
type segment struct {
	text string
	hl   highlight
}

// layoutLine converts a content line into display segments no wider than
// width cells. Tabs expand to the next multiple of tabWidth and control
// characters are shown in caret notation, so the output never contains
// bytes the terminal would interpret.
func layoutLine(l pager.Line, width, tabWidth int) []segment {
	if width <= 0 {
		return nil
	}
	if tabWidth < 1 {
		tabWidth = 1
	}

	var (
		segs []segment
		buf  strings.Builder
		cur  = plain
		col  int
		span int
	)
	flush := func() {
		if buf.Len() > 0 {
			segs = append(segs, segment{text: buf.String(), hl: cur})
			buf.Reset()
		}
	}

	idx := 0
	for _, r := range l.Text {
		for span < len(l.Spans) && idx >= l.Spans[span].End {
			span++
		}
		hl := plain
		if span < len(l.Spans) && idx >= l.Spans[span].Start {
			hl = match
			if span == l.Current {
				hl = current
			}
		}
		idx++

		var cell string
		var w int
		if r == '\t' {
			w = tabWidth - col%tabWidth
			cell = strings.Repeat(" ", w)
		} else {
			cell = displayRune(r)
			w = runewidth.StringWidth(cell)
		}
		if col+w > width {
			break
		}

		if hl != cur {
			flush()
			cur = hl
		}
		buf.WriteString(cell)
		col += w
	}
	flush()
	return segs
}

// displayRune returns r as it should appear on screen.
func displayRune(r rune) string {
	switch {
	case r < 0x20:
		return "^" + string(r+'@')
	case r == 0x7f:
		return "^?"
	case r >= 0x80 && r < 0xa0:
		return fmt.Sprintf("<U+%04X>", r)
	default:
		return string(r)
	}
}

// sanitize makes arbitrary text safe for the prompt row.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\t' {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(displayRune(r))
	}
	return b.String()
}

func renderLine(l pager.Line, width, tabWidth int, theme styles.Theme) string {
	var b strings.Builder
	for _, seg := range layoutLine(l, width, tabWidth) {
		switch seg.hl {
		case match:
			b.WriteString(theme.Match.Render(seg.text))
		case current:
			b.WriteString(theme.Current.Render(seg.text))
		default:
			b.WriteString(seg.text)
		}
	}
	return b.String()
}

// position is the right side of the prompt row, like "12/340 25%".
func position(f pager.Frame) string {
	line := 0
	if f.LineCount > 0 {
		line = f.Top + 1
	}
	return fmt.Sprintf("%d/%d %d%%", line, f.LineCount, f.Percent)
}

// renderPrompt draws the bottom row: the prompt char followed by the
// message if there is one, otherwise the query text. The position is
// right-aligned when it fits.
func renderPrompt(f pager.Frame, width int, showPosition bool, theme styles.Theme) string {
	if width <= 0 {
		return ""
	}

	var left string
	if f.Message != "" {
		left = string(f.Prompt) + theme.Message.Render(sanitize(f.Message))
	} else {
		left = theme.Prompt.Render(string(f.Prompt) + sanitize(f.Text))
		if f.Mode == pager.ModeSearchEdit {
			left += theme.Cursor.Render(" ")
		}
	}

	if showPosition {
		right := position(f)
		gap := width - lipgloss.Width(left) - lipgloss.Width(right)
		if gap >= 1 {
			return left + strings.Repeat(" ", gap) + right
		}
	}

	if lipgloss.Width(left) > width {
		return ansi.Truncate(left, width, "")
	}
	return left
}

// renderFrame draws the content rows padded to height, then the prompt.
func renderFrame(f pager.Frame, width, height, tabWidth int, showPosition bool, theme styles.Theme) string {
	rows := max(1, height-1)

	var b strings.Builder
	for i := 0; i < rows; i++ {
		if i < len(f.Lines) {
			b.WriteString(renderLine(f.Lines[i], width, tabWidth, theme))
		} else if width > 0 {
			b.WriteString("~")
		}
		b.WriteByte('\n')
	}
	b.WriteString(renderPrompt(f, width, showPosition, theme))
	return b.String()
}
