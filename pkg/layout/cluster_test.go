package layout

import (
	"testing"
	"time"

	"github.com/vanderheijden86/chronochart/pkg/model"
	"github.com/vanderheijden86/chronochart/pkg/timeline"
)

func day(n int) time.Time {
	return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func proj(id string, x float64, t time.Time) projected {
	return projected{Event: model.Event{ID: id, Title: id, Date: t}, X: x}
}

func TestClusterEventsSweep(t *testing.T) {
	items := []projected{
		proj("a", 10, day(0)),
		proj("b", 20, day(1)),
		proj("c", 100, day(2)),
		proj("d", 112, day(3)),
		proj("e", 400, day(4)),
	}
	clusters := clusterEvents(items, 24)
	if len(clusters) != 3 {
		t.Fatalf("clusters = %d, want 3", len(clusters))
	}
	if clusters[0].EventCount() != 2 || clusters[1].EventCount() != 2 || clusters[2].EventCount() != 1 {
		t.Errorf("cluster sizes = %d,%d,%d",
			clusters[0].EventCount(), clusters[1].EventCount(), clusters[2].EventCount())
	}
}

func TestClusterChaining(t *testing.T) {
	// a-b and b-c are each within minGap but a-c is not: single-linkage
	// chains them into one cluster.
	items := []projected{
		proj("a", 0, day(0)),
		proj("b", 20, day(1)),
		proj("c", 40, day(2)),
	}
	clusters := clusterEvents(items, 24)
	if len(clusters) != 1 {
		t.Fatalf("clusters = %d, want 1 chained cluster", len(clusters))
	}
}

func TestClusterIDStableAcrossInputOrder(t *testing.T) {
	items := []projected{
		proj("a", 10, day(0)),
		proj("b", 15, day(1)),
		proj("c", 20, day(2)),
	}
	reversed := []projected{items[2], items[0], items[1]}

	c1 := clusterEvents(items, 24)
	c2 := clusterEvents(reversed, 24)
	if len(c1) != 1 || len(c2) != 1 {
		t.Fatalf("clusters = %d, %d", len(c1), len(c2))
	}
	if c1[0].ID != c2[0].ID {
		t.Errorf("cluster id depends on input order: %s vs %s", c1[0].ID, c2[0].ID)
	}
	if c1[0].AnchorX != c2[0].AnchorX {
		t.Errorf("anchor depends on input order: %v vs %v", c1[0].AnchorX, c2[0].AnchorX)
	}
}

func TestClusterMembersChronological(t *testing.T) {
	items := []projected{
		proj("late", 12, day(9)),
		proj("early", 10, day(1)),
		proj("mid", 11, day(5)),
	}
	clusters := clusterEvents(items, 24)
	if len(clusters) != 1 {
		t.Fatalf("clusters = %d", len(clusters))
	}
	got := clusters[0].Members
	if got[0].Event.ID != "early" || got[1].Event.ID != "mid" || got[2].Event.ID != "late" {
		t.Errorf("members not chronological: %s, %s, %s",
			got[0].Event.ID, got[1].Event.ID, got[2].Event.ID)
	}
}

func TestClusterAnchorIsCentroid(t *testing.T) {
	items := []projected{
		proj("a", 10, day(0)),
		proj("b", 20, day(1)),
		proj("c", 30, day(2)),
	}
	clusters := clusterEvents(items, 24)
	if got := clusters[0].AnchorX; got != 20 {
		t.Errorf("AnchorX = %v, want centroid 20", got)
	}
}

func TestProjectVisibleFiltersToWindow(t *testing.T) {
	events := []model.Event{
		{ID: "a", Date: day(0)},
		{ID: "b", Date: day(50)},
		{ID: "c", Date: day(100)},
	}
	vp := timeline.Viewport{Width: 1000, Height: 600, LeftMargin: 100, RightMargin: 100}

	all := projectVisible(events, timeline.Full, vp)
	if len(all) != 3 {
		t.Fatalf("visible = %d, want 3", len(all))
	}
	// Full range spans day 0..100; a window covering the middle half only
	// sees the middle event.
	mid := projectVisible(events, timeline.Window{Start: 0.3, End: 0.7}, vp)
	if len(mid) != 1 || mid[0].Event.ID != "b" {
		t.Fatalf("visible = %+v, want only b", mid)
	}
}

func TestProjectVisibleUsesFullRangeExtent(t *testing.T) {
	// Panning must not rescale the axis: the projection of a given event
	// depends on the full event range, not the visible subset.
	events := []model.Event{
		{ID: "a", Date: day(0)},
		{ID: "b", Date: day(50)},
		{ID: "c", Date: day(100)},
	}
	vp := timeline.Viewport{Width: 1000, Height: 600, LeftMargin: 100, RightMargin: 100}

	win := timeline.Window{Start: 0, End: 0.5}
	got := projectVisible(events, win, vp)
	if len(got) != 2 {
		t.Fatalf("visible = %d, want 2", len(got))
	}
	// Event b sits at global ratio 0.5, the right edge of this window.
	if x := got[1].X; x != 900 {
		t.Errorf("b projected to %v, want 900 (right edge)", x)
	}
}
