package timeline

import (
	"math"
	"testing"
)

func TestXForRatioFullWindow(t *testing.T) {
	vp := Viewport{Width: 1000, Height: 600, LeftMargin: 100, RightMargin: 50}
	if got := XForRatio(0, Full, vp); got != 100 {
		t.Errorf("x(0) = %v, want left margin", got)
	}
	if got := XForRatio(1, Full, vp); got != 950 {
		t.Errorf("x(1) = %v, want width - right margin", got)
	}
	mid := XForRatio(0.5, Full, vp)
	if math.Abs(mid-525) > 1e-9 {
		t.Errorf("x(0.5) = %v, want 525", mid)
	}
}

func TestXForRatioZoomedWindow(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600}
	win := Window{Start: 0.25, End: 0.75}
	if got := XForRatio(0.25, win, vp); got != 0 {
		t.Errorf("x(window start) = %v, want 0", got)
	}
	if got := XForRatio(0.75, win, vp); got != 800 {
		t.Errorf("x(window end) = %v, want 800", got)
	}
}

func TestXForRatioDegenerateWindow(t *testing.T) {
	vp := Viewport{Width: 800, LeftMargin: 56}
	got := XForRatio(0.5, Window{Start: 0.5, End: 0.5}, vp)
	if got != 56 {
		t.Errorf("x on zero-width window = %v, want left margin", got)
	}
}

func TestUsableWidthNeverNegative(t *testing.T) {
	vp := Viewport{Width: 50, LeftMargin: 100, RightMargin: 100}
	if got := vp.UsableWidth(); got != 0 {
		t.Errorf("UsableWidth = %v, want 0", got)
	}
}

func TestVisible(t *testing.T) {
	win := Window{Start: 0.2, End: 0.8}
	for _, tc := range []struct {
		ratio float64
		want  bool
	}{
		{0.1, false}, {0.2, true}, {0.5, true}, {0.8, true}, {0.9, false},
	} {
		if got := Visible(tc.ratio, win); got != tc.want {
			t.Errorf("Visible(%v) = %v, want %v", tc.ratio, got, tc.want)
		}
	}
}
