package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/vanderheijden86/chronochart/pkg/layout"
	"github.com/vanderheijden86/chronochart/pkg/model"
	"github.com/vanderheijden86/chronochart/pkg/timeline"
)

func TestCanvasBoxCorners(t *testing.T) {
	c := newCanvas(10, 4)
	c.box(0, 0, 10, 4, nil)
	out := c.render()

	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "╭") || !strings.HasSuffix(lines[0], "╮") {
		t.Errorf("top border = %q", lines[0])
	}
	if !strings.HasPrefix(lines[3], "╰") || !strings.HasSuffix(lines[3], "╯") {
		t.Errorf("bottom border = %q", lines[3])
	}
	if !strings.Contains(lines[1], "│") {
		t.Errorf("side border missing: %q", lines[1])
	}
}

func TestCanvasSetOutOfBoundsIgnored(t *testing.T) {
	c := newCanvas(3, 3)
	c.set(-1, 0, 'x', nil)
	c.set(0, -1, 'x', nil)
	c.set(3, 0, 'x', nil)
	c.set(0, 3, 'x', nil)
	if strings.Contains(c.render(), "x") {
		t.Error("out of bounds write landed on canvas")
	}
}

func TestCanvasTextTruncates(t *testing.T) {
	c := newCanvas(20, 1)
	c.text(0, 0, "a very long label that cannot fit", 10, nil)
	out := c.render()
	if !strings.Contains(out, "…") {
		t.Errorf("expected truncation ellipsis in %q", out)
	}
}

func testEvents() []model.Event {
	end := time.Date(1975, 4, 1, 0, 0, 0, 0, time.UTC)
	return []model.Event{
		{ID: "sputnik", Title: "First satellite", Date: time.Date(1957, 10, 4, 0, 0, 0, 0, time.UTC)},
		{ID: "apollo", Title: "Moon landing", Description: "Apollo 11",
			Date: time.Date(1969, 7, 20, 0, 0, 0, 0, time.UTC), EndDate: &end},
	}
}

func TestDrawTimelineAxisAnchorsAndCards(t *testing.T) {
	events := testEvents()
	vp := timeline.Viewport{Width: 100, Height: 30}
	res := layout.Compute(events, timeline.Full, vp, cellLayoutConfig())

	out := drawTimeline(100, 30, events, timeline.Full, res)
	lines := strings.Split(out, "\n")
	if len(lines) != 30 {
		t.Fatalf("lines = %d, want 30", len(lines))
	}
	if !strings.Contains(lines[15], "─") {
		t.Error("axis row missing")
	}
	if got := strings.Count(out, "◆"); got != len(res.Anchors) {
		t.Errorf("anchor markers = %d, want %d", got, len(res.Anchors))
	}
	for _, title := range []string{"First satellite", "Moon landing"} {
		if !strings.Contains(out, title) {
			t.Errorf("card title %q not rendered", title)
		}
	}
	// Window edge dates label the axis.
	if !strings.Contains(out, "1957-10-04") {
		t.Error("left axis date label missing")
	}
}

func TestDrawTimelineOverflowBadge(t *testing.T) {
	gen := func(n int) []model.Event {
		events := make([]model.Event, n)
		base := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := range events {
			events[i] = model.Event{
				ID:    string(rune('a' + i)),
				Title: "Event",
				Date:  base.Add(time.Duration(i) * time.Minute),
			}
		}
		// Two distant context events keep the burst confined to one cluster.
		events = append(events,
			model.Event{ID: "lo", Title: "Lo", Date: base.AddDate(-25, 0, 0)},
			model.Event{ID: "hi", Title: "Hi", Date: base.AddDate(25, 0, 0)},
		)
		return events
	}

	events := gen(16)
	vp := timeline.Viewport{Width: 100, Height: 30}
	res := layout.Compute(events, timeline.Full, vp, cellLayoutConfig())

	hasOverflow := false
	for _, p := range res.Placements {
		if p.Kind == layout.KindOverflow {
			hasOverflow = true
		}
	}
	if !hasOverflow {
		t.Skip("fixture did not overflow at this geometry")
	}
	out := drawTimeline(100, 30, events, timeline.Full, res)
	if !strings.Contains(out, "more") {
		t.Error("overflow badge not rendered")
	}
}
