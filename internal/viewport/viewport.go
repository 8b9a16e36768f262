// Package viewport tracks which window of a line buffer is on screen.
package viewport

// Viewport is a scroll position over a fixed number of lines. Every mutation
// clamps Top into [0, MaxTop()], so scrolling past either end is a no-op.
type Viewport struct {
	lineCount int
	height    int
	top       int
}

// New creates a viewport at the top of a buffer with lineCount lines.
// Heights below 1 are treated as 1.
func New(lineCount, height int) *Viewport {
	return &Viewport{
		lineCount: max(0, lineCount),
		height:    max(1, height),
	}
}

// Top returns the index of the first visible line.
func (v *Viewport) Top() int { return v.top }

// Height returns the number of visible rows.
func (v *Viewport) Height() int { return v.height }

// LineCount returns the number of lines being paged.
func (v *Viewport) LineCount() int { return v.lineCount }

// MaxTop is the largest legal Top: the last page that is still full, or 0
// when everything fits on one screen.
func (v *Viewport) MaxTop() int {
	return max(0, v.lineCount-v.height)
}

func (v *Viewport) clamp(top int) {
	v.top = max(0, min(top, v.MaxTop()))
}

// ScrollBy moves Top by delta lines.
func (v *Viewport) ScrollBy(delta int) {
	v.clamp(v.top + delta)
}

// ScrollTo puts line at the top of the screen, or as close as clamping
// allows.
func (v *Viewport) ScrollTo(line int) {
	v.clamp(line)
}

func (v *Viewport) halfPage() int {
	return max(1, v.height/2)
}

// HalfPageDown scrolls forward by half a screen.
func (v *Viewport) HalfPageDown() {
	v.ScrollBy(v.halfPage())
}

// HalfPageUp scrolls back by half a screen.
func (v *Viewport) HalfPageUp() {
	v.ScrollBy(-v.halfPage())
}

// GotoStart shows the first line.
func (v *Viewport) GotoStart() {
	v.top = 0
}

// GotoEnd makes the last line the last visible row.
func (v *Viewport) GotoEnd() {
	v.top = v.MaxTop()
}

// Resize changes the visible height and re-clamps Top without otherwise
// moving it.
func (v *Viewport) Resize(height int) {
	v.height = max(1, height)
	v.clamp(v.top)
}

// Visible returns the half-open range [start, end) of lines on screen.
func (v *Viewport) Visible() (start, end int) {
	return v.top, min(v.lineCount, v.top+v.height)
}

// Contains reports whether line is on screen.
func (v *Viewport) Contains(line int) bool {
	start, end := v.Visible()
	return line >= start && line < end
}

// AtBottom reports whether the last line is visible.
func (v *Viewport) AtBottom() bool { return v.top >= v.MaxTop() }

// Percent is how far through the buffer the bottom of the screen is, 0-100.
func (v *Viewport) Percent() int {
	if v.lineCount == 0 || v.AtBottom() {
		return 100
	}
	_, end := v.Visible()
	return end * 100 / v.lineCount
}
