package timeline

import "time"

// animation is an in-flight eased window transition. The controller never
// owns a timer; the host drives progress by calling Tick on its own repaint
// schedule and the animation is cancelled by starting another one.
type animation struct {
	from     Window
	to       Window
	start    time.Time
	duration time.Duration
}

// AnimateTo begins an eased transition from the current window to the
// target. Any in-flight animation is replaced. A non-positive duration
// applies the target immediately.
func (c *Controller) AnimateTo(targetStart, targetEnd float64, duration time.Duration, now time.Time) {
	target := Window{Start: clamp01(targetStart), End: clamp01(targetEnd)}
	if duration <= 0 {
		c.anim = nil
		c.win = target
		return
	}
	c.anim = &animation{
		from:     c.win,
		to:       target,
		start:    now,
		duration: duration,
	}
}

// Tick advances the in-flight animation to the given instant and returns
// true while the animation is still running. Calling Tick with no active
// animation is a no-op returning false.
func (c *Controller) Tick(now time.Time) bool {
	a := c.anim
	if a == nil {
		return false
	}
	p := float64(now.Sub(a.start)) / float64(a.duration)
	if p >= 1 {
		c.win = a.to
		c.anim = nil
		return false
	}
	if p < 0 {
		p = 0
	}
	e := easeOutCubic(p)
	c.win = Window{
		Start: a.from.Start + (a.to.Start-a.from.Start)*e,
		End:   a.from.End + (a.to.End-a.from.End)*e,
	}
	return true
}

// IsAnimating reports whether a window transition is in flight.
func (c *Controller) IsAnimating() bool {
	return c.anim != nil
}

// Cancel stops any in-flight animation, leaving the window wherever the
// last Tick put it.
func (c *Controller) Cancel() {
	c.anim = nil
}

func easeOutCubic(p float64) float64 {
	inv := 1 - p
	return 1 - inv*inv*inv
}
