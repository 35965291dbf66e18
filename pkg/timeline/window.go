// Package timeline implements the view window controller: the normalized
// [start, end] fraction of the full time range that is currently visible,
// with pan, zoom, cursor-anchored zoom and tick-driven animated transitions.
//
// All operations clamp rather than error. The controller is the only stateful
// piece of the core; the layout engine itself is a pure function of
// (events, window, viewport).
package timeline

import "math"

// DefaultMinWindowWidth is the smallest window fraction the controller will
// zoom to. 0.001 of the full range gives day-level granularity on a
// multi-decade timeline. An earlier iteration used 0.05; this is a tunable,
// not a law, so it can be overridden per controller.
const DefaultMinWindowWidth = 0.001

// Window is the visible fraction of the timeline, 0 <= Start < End <= 1.
type Window struct {
	Start float64
	End   float64
}

// Width returns End - Start.
func (w Window) Width() float64 {
	return w.End - w.Start
}

// Full is the fit-all window.
var Full = Window{Start: 0, End: 1}

// Controller owns the current view window and applies pan/zoom input to it.
// It is not safe for concurrent use; all input arrives on one goroutine.
type Controller struct {
	win      Window
	minWidth float64

	// Pixel margins reserved for chrome when mapping cursor x to a ratio.
	leftMargin  float64
	rightMargin float64

	anim *animation
}

// NewController returns a controller showing the full timeline.
func NewController() *Controller {
	return &Controller{
		win:      Full,
		minWidth: DefaultMinWindowWidth,
	}
}

// SetMinWidth overrides the minimum window width. Values outside (0, 1]
// are ignored.
func (c *Controller) SetMinWidth(w float64) {
	if w > 0 && w <= 1 {
		c.minWidth = w
	}
}

// SetMargins sets the pixel margins used by ZoomAtCursor to map a cursor
// x-coordinate onto the usable timeline width.
func (c *Controller) SetMargins(left, right float64) {
	if left >= 0 {
		c.leftMargin = left
	}
	if right >= 0 {
		c.rightMargin = right
	}
}

// Window returns the current view window.
func (c *Controller) Window() Window {
	return c.win
}

// SetWindow clamps both bounds to [0,1] and stores them. Ordering beyond
// clamping is the caller's responsibility; the pan/zoom operations below
// never produce an inverted window.
func (c *Controller) SetWindow(start, end float64) {
	c.win = Window{Start: clamp01(start), End: clamp01(end)}
}

// Nudge shifts the window by delta, clamping at the edges while keeping
// the window width constant.
func (c *Controller) Nudge(delta float64) {
	w := c.win.Width()
	start := c.win.Start + delta
	end := c.win.End + delta
	if start < 0 {
		start = 0
		end = w
	}
	if end > 1 {
		end = 1
		start = 1 - w
	}
	c.win = Window{Start: clamp01(start), End: clamp01(end)}
}

// Zoom rescales the window half-width around its center by factor.
// factor < 1 zooms in, factor > 1 zooms out. The half-width is clamped to
// [minWidth/2, 0.5].
func (c *Controller) Zoom(factor float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	center := (c.win.Start + c.win.End) / 2
	half := c.win.Width() / 2 * factor
	half = clampF(half, c.minWidth/2, 0.5)
	c.win = fitWindow(Window{Start: center - half, End: center + half})
}

// ZoomAtCursor zooms like Zoom but keeps the time position under the given
// pixel x-coordinate fixed. cursorX is measured from the left edge of the
// viewport; the configured margins are subtracted before mapping to a ratio.
// Falls back to Zoom when the cursor cannot be mapped (degenerate viewport
// or non-finite coordinates).
func (c *Controller) ZoomAtCursor(factor, cursorX, viewportWidth float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	usable := viewportWidth - c.leftMargin - c.rightMargin
	if usable <= 0 || math.IsNaN(cursorX) || math.IsInf(cursorX, 0) {
		c.Zoom(factor)
		return
	}

	ratio := clamp01((cursorX - c.leftMargin) / usable)
	// Time position (as a fraction of the full range) under the cursor.
	pivot := c.win.Start + ratio*c.win.Width()

	width := clampF(c.win.Width()*factor, c.minWidth, 1)
	start := pivot - ratio*width
	c.win = fitWindow(Window{Start: start, End: start + width})
}

// fitWindow shifts a window inward so it lies within [0,1] while preserving
// its width. Widths above 1 collapse to the full window.
func fitWindow(w Window) Window {
	width := w.Width()
	if width >= 1 {
		return Full
	}
	if w.Start < 0 {
		return Window{Start: 0, End: width}
	}
	if w.End > 1 {
		return Window{Start: 1 - width, End: 1}
	}
	return w
}

func clamp01(v float64) float64 {
	return clampF(v, 0, 1)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
