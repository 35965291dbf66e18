package timeline

// Viewport describes the pixel area the layout renders into. LeftMargin is
// reserved for navigation chrome (56-136px in the web client); the usable
// timeline strip is Width - LeftMargin - RightMargin.
type Viewport struct {
	Width       float64
	Height      float64
	LeftMargin  float64
	RightMargin float64
}

// UsableWidth returns the horizontal pixel span available to the timeline,
// never negative.
func (v Viewport) UsableWidth() float64 {
	w := v.Width - v.LeftMargin - v.RightMargin
	if w < 0 {
		return 0
	}
	return w
}

// XForRatio projects a global time ratio (0..1 across the full range) to a
// pixel x-coordinate under the given window. Ratios outside the window
// project outside the usable strip; callers filter visibility themselves.
func XForRatio(ratio float64, win Window, vp Viewport) float64 {
	width := win.Width()
	if width <= 0 {
		return vp.LeftMargin
	}
	return vp.LeftMargin + (ratio-win.Start)/width*vp.UsableWidth()
}

// Visible reports whether a global time ratio falls inside the window.
func Visible(ratio float64, win Window) bool {
	return ratio >= win.Start && ratio <= win.End
}
