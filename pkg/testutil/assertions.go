package testutil

import (
	"testing"

	"github.com/vanderheijden86/chronochart/pkg/layout"
)

// AssertNoOverlap verifies that no pair of placements overlaps by more than
// maxRatio (intersection area / smaller card's area). The threshold exists
// because connector stubs and labels bleed slightly past card edges in the
// renderer; 0.25-0.3 is what the UI suites tolerate.
func AssertNoOverlap(t *testing.T, placements []layout.Placement, maxRatio float64) {
	t.Helper()
	for i := 0; i < len(placements); i++ {
		for j := i + 1; j < len(placements); j++ {
			a, b := placements[i], placements[j]
			if a.Fallback || b.Fallback {
				continue // fallback stack is excluded by contract
			}
			ratio := overlapRatio(a, b)
			if ratio >= maxRatio {
				t.Errorf("placements %v and %v overlap by %.2f (max %.2f)",
					a.EventIDs, b.EventIDs, ratio, maxRatio)
			}
		}
	}
}

func overlapRatio(a, b layout.Placement) float64 {
	ax0, ay0, ax1, ay1 := a.Bounds()
	bx0, by0, bx1, by1 := b.Bounds()

	w := minF(ax1, bx1) - maxF(ax0, bx0)
	h := minF(ay1, by1) - maxF(ay0, by0)
	if w <= 0 || h <= 0 {
		return 0
	}
	inter := w * h
	areaA := (ax1 - ax0) * (ay1 - ay0)
	areaB := (bx1 - bx0) * (by1 - by0)
	smaller := minF(areaA, areaB)
	if smaller <= 0 {
		return 0
	}
	return inter / smaller
}

// AssertAxisClearance verifies no placement's bounding box straddles the
// axis: every card is strictly above or strictly below.
func AssertAxisClearance(t *testing.T, placements []layout.Placement, axisY float64) {
	t.Helper()
	for _, p := range placements {
		if p.Fallback {
			continue
		}
		_, y0, _, y1 := p.Bounds()
		if y0 <= axisY && axisY <= y1 {
			t.Errorf("placement %v straddles axis y=%.1f (box %.1f..%.1f, above=%v)",
				p.EventIDs, axisY, y0, y1, p.Above)
		}
		if p.Above && y1 > axisY {
			t.Errorf("above-axis placement %v dips below axis (%.1f > %.1f)", p.EventIDs, y1, axisY)
		}
		if !p.Above && y0 < axisY {
			t.Errorf("below-axis placement %v rises above axis (%.1f < %.1f)", p.EventIDs, y0, axisY)
		}
	}
}

// AssertAnchorInvariants verifies the anchor persistence contract: at least
// one anchor when events are visible, never more anchors than events, and
// every placement's cluster has an anchor.
func AssertAnchorInvariants(t *testing.T, res layout.Result, totalEvents int) {
	t.Helper()
	if len(res.Placements) > 0 && len(res.Anchors) == 0 {
		t.Error("placements without anchors")
	}
	if len(res.Anchors) > totalEvents {
		t.Errorf("%d anchors for %d events", len(res.Anchors), totalEvents)
	}
	byCluster := make(map[string]bool, len(res.Anchors))
	for _, a := range res.Anchors {
		byCluster[a.ClusterID] = true
	}
	for _, p := range res.Placements {
		if !byCluster[p.ClusterID] {
			t.Errorf("placement %v references cluster %s with no anchor", p.EventIDs, p.ClusterID)
		}
	}
}

// AssertNoDuplicateEvents verifies no event id appears in more than one
// placement: degradation may hide events behind a badge but never renders
// one twice.
func AssertNoDuplicateEvents(t *testing.T, res layout.Result) {
	t.Helper()
	seen := make(map[string]int)
	for _, p := range res.Placements {
		for _, id := range p.EventIDs {
			seen[id]++
		}
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("event %s appears in %d placements", id, n)
		}
	}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

