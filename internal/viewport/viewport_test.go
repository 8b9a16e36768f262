package viewport

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		lines      int
		height     int
		wantHeight int
		wantMaxTop int
	}{
		{"fits on screen", 3, 10, 10, 0},
		{"exact fit", 10, 10, 10, 0},
		{"taller buffer", 10, 4, 4, 6},
		{"zero height treated as one row", 5, 0, 1, 4},
		{"negative height", 5, -3, 1, 4},
		{"empty buffer", 0, 24, 24, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(tt.lines, tt.height)
			if v.Top() != 0 {
				t.Errorf("Top() = %d, want 0", v.Top())
			}
			if v.Height() != tt.wantHeight {
				t.Errorf("Height() = %d, want %d", v.Height(), tt.wantHeight)
			}
			if v.MaxTop() != tt.wantMaxTop {
				t.Errorf("MaxTop() = %d, want %d", v.MaxTop(), tt.wantMaxTop)
			}
		})
	}
}

func TestScrollBy_Clamps(t *testing.T) {
	v := New(10, 4)

	for i := 0; i < 25; i++ {
		v.ScrollBy(1)
	}
	if v.Top() != 6 {
		t.Fatalf("Top() after many downs = %d, want 6", v.Top())
	}
	v.ScrollBy(1)
	if v.Top() != 6 {
		t.Errorf("down at bottom moved Top to %d", v.Top())
	}

	v.GotoStart()
	for i := 0; i < 5; i++ {
		v.ScrollBy(-1)
		if v.Top() != 0 {
			t.Fatalf("up at top moved Top to %d", v.Top())
		}
	}

	v.ScrollBy(1000)
	if v.Top() != 6 {
		t.Errorf("ScrollBy(1000) Top = %d, want 6", v.Top())
	}
	v.ScrollBy(-1000)
	if v.Top() != 0 {
		t.Errorf("ScrollBy(-1000) Top = %d, want 0", v.Top())
	}
}

func TestScrollBy_BufferFitsPinsTop(t *testing.T) {
	v := New(3, 10)
	v.ScrollBy(2)
	v.HalfPageDown()
	v.GotoEnd()
	if v.Top() != 0 {
		t.Errorf("Top() = %d, want 0 when buffer fits", v.Top())
	}
}

func TestScrollTo(t *testing.T) {
	tests := []struct {
		target int
		want   int
	}{
		{0, 0},
		{3, 3},
		{6, 6},
		{8, 6},
		{-2, 0},
	}

	for _, tt := range tests {
		v := New(10, 4)
		v.ScrollTo(tt.target)
		if v.Top() != tt.want {
			t.Errorf("ScrollTo(%d) Top = %d, want %d", tt.target, v.Top(), tt.want)
		}
	}
}

func TestHalfPage(t *testing.T) {
	tests := []struct {
		name     string
		lines    int
		height   int
		downs    int
		wantDown int
		wantUp   int
	}{
		{"height 4 steps 2", 20, 4, 1, 2, 0},
		{"height 5 steps 2", 20, 5, 2, 4, 2},
		{"height 1 steps 1", 20, 1, 3, 3, 2},
		{"clamped at end", 10, 8, 3, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(tt.lines, tt.height)
			for range tt.downs {
				v.HalfPageDown()
			}
			if v.Top() != tt.wantDown {
				t.Errorf("after %d HalfPageDown Top = %d, want %d", tt.downs, v.Top(), tt.wantDown)
			}
			v.HalfPageUp()
			if v.Top() != tt.wantUp {
				t.Errorf("after HalfPageUp Top = %d, want %d", v.Top(), tt.wantUp)
			}
		})
	}
}

func TestGotoStartEnd(t *testing.T) {
	v := New(10, 4)

	v.GotoEnd()
	if v.Top() != 6 {
		t.Errorf("GotoEnd() Top = %d, want 6", v.Top())
	}
	start, end := v.Visible()
	if start != 6 || end != 10 {
		t.Errorf("Visible() = [%d, %d), want [6, 10)", start, end)
	}
	if !v.AtBottom() {
		t.Error("expected AtBottom after GotoEnd")
	}

	v.GotoStart()
	if v.Top() != 0 {
		t.Errorf("GotoStart() Top = %d, want 0", v.Top())
	}
	if v.AtBottom() {
		t.Error("expected not AtBottom after GotoStart")
	}
}

func TestResize(t *testing.T) {
	v := New(10, 4)
	v.ScrollTo(5)

	v.Resize(2)
	if v.Top() != 5 {
		t.Errorf("shrinking moved Top to %d, want 5", v.Top())
	}

	v.Resize(8)
	if v.Top() != 2 {
		t.Errorf("growing to 8 Top = %d, want 2 (re-clamped)", v.Top())
	}

	v.Resize(20)
	if v.Top() != 0 {
		t.Errorf("growing past buffer Top = %d, want 0", v.Top())
	}

	v.Resize(0)
	if v.Height() != 1 {
		t.Errorf("Resize(0) Height = %d, want 1", v.Height())
	}
}

func TestContains(t *testing.T) {
	v := New(10, 4)
	v.ScrollTo(3)

	for line, want := range map[int]bool{2: false, 3: true, 6: true, 7: false} {
		if got := v.Contains(line); got != want {
			t.Errorf("Contains(%d) = %v, want %v", line, got, want)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name  string
		lines int
		top   int
		want  int
	}{
		{"empty", 0, 0, 100},
		{"fits", 3, 0, 100},
		{"top of long buffer", 100, 0, 10},
		{"middle", 100, 40, 50},
		{"bottom", 100, 90, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(tt.lines, 10)
			v.ScrollTo(tt.top)
			if got := v.Percent(); got != tt.want {
				t.Errorf("Percent() = %d, want %d", got, tt.want)
			}
		})
	}
}
