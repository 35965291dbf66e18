package layout

import (
	"fmt"
	"testing"

	"github.com/vanderheijden86/chronochart/pkg/timeline"
)

// makeHalf builds a half-column of n chronologically ordered events.
func makeHalf(n int, above bool) halfColumn {
	events := make([]projected, n)
	for i := 0; i < n; i++ {
		events[i] = proj(fmt.Sprintf("e%02d", i), float64(100+i), day(i))
	}
	return halfColumn{clusterID: "c-test", above: above, events: events}
}

// The default test grid gives each above half-column 288px of budget and
// 3 rows: capacity is 2 full (128px each), 3 compact (80px), 3 title-only
// (40px, row-capped).
func TestPlanHalfColumnKindSelection(t *testing.T) {
	cfg := DefaultConfig()
	g := testGrid()

	cases := []struct {
		count    int
		want     CardKind
		overflow int
	}{
		{1, KindFull, 0},
		{2, KindFull, 0},
		{3, KindCompact, 0},
		{4, KindOverflow, 2}, // 2 title-only + badge hiding 2
		{6, KindOverflow, 4},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("count=%d", tc.count), func(t *testing.T) {
			plan := planHalfColumn(cfg, g, makeHalf(tc.count, true))
			if plan.groupKind != tc.want {
				t.Errorf("groupKind = %v, want %v", plan.groupKind, tc.want)
			}
			if len(plan.overflow) != tc.overflow {
				t.Errorf("overflow = %d, want %d", len(plan.overflow), tc.overflow)
			}
			if len(plan.detail)+len(plan.overflow) != tc.count {
				t.Errorf("events lost: %d + %d != %d",
					len(plan.detail), len(plan.overflow), tc.count)
			}
		})
	}
}

// No-unnecessary-degradation: if full fits, never pick anything less.
func TestPlanNeverOverDegrades(t *testing.T) {
	cfg := DefaultConfig()
	g := testGrid()
	plan := planHalfColumn(cfg, g, makeHalf(1, true))
	if plan.groupKind != KindFull {
		t.Errorf("single event degraded to %v", plan.groupKind)
	}
}

// Degradation is monotonic in the event count: more events never yield a
// more detailed kind.
func TestDegradationMonotonicity(t *testing.T) {
	cfg := DefaultConfig()
	g := testGrid()

	prev := KindFull
	for count := 1; count <= 20; count++ {
		plan := planHalfColumn(cfg, g, makeHalf(count, true))
		if plan.groupKind < prev {
			t.Fatalf("count %d regressed to %v after %v", count, plan.groupKind, prev)
		}
		prev = plan.groupKind
	}
}

// Chronological priority: the earliest events keep individual cards, the
// tail collapses behind the badge.
func TestOverflowDegradesTail(t *testing.T) {
	cfg := DefaultConfig()
	g := testGrid()

	plan := planHalfColumn(cfg, g, makeHalf(6, true))
	if len(plan.detail) == 0 {
		t.Fatal("expected some detail cards")
	}
	for i, ev := range plan.detail {
		want := fmt.Sprintf("e%02d", i)
		if ev.Event.ID != want {
			t.Errorf("detail[%d] = %s, want %s (earliest first)", i, ev.Event.ID, want)
		}
	}
	first := plan.overflow[0].Event.ID
	last := plan.detail[len(plan.detail)-1].Event.ID
	if first <= last {
		t.Errorf("overflow %s is not after last detail %s", first, last)
	}
}

func TestOverflowBadgeFormat(t *testing.T) {
	cfg := DefaultConfig()
	g := testGrid()

	plan := planHalfColumn(cfg, g, makeHalf(9, true))
	cards := plan.cards()
	badge := cards[len(cards)-1]
	if badge.Kind != KindOverflow {
		t.Fatalf("last card kind = %v", badge.Kind)
	}
	want := fmt.Sprintf("+%d", len(plan.overflow))
	if badge.Badge() != want {
		t.Errorf("Badge = %q, want %q", badge.Badge(), want)
	}
	if badge.HiddenCount != len(plan.overflow) {
		t.Errorf("HiddenCount = %d", badge.HiddenCount)
	}
}

func TestDetailCardsCarryNoHiddenCount(t *testing.T) {
	cfg := DefaultConfig()
	g := testGrid()
	plan := planHalfColumn(cfg, g, makeHalf(2, true))
	for _, c := range plan.cards() {
		if c.HiddenCount != 0 {
			t.Errorf("detail card %v has HiddenCount %d", c.EventIDs, c.HiddenCount)
		}
		if c.Badge() != "" {
			t.Errorf("detail card %v has badge %q", c.EventIDs, c.Badge())
		}
	}
}

func TestCapacityExceededOnDegenerateGrid(t *testing.T) {
	cfg := DefaultConfig()
	vp := timeline.Viewport{Width: 1000, Height: 20} // no vertical room at all
	g := NewGrid(cfg, vp)

	plan := planHalfColumn(cfg, g, makeHalf(5, true))
	if !plan.capacityExceeded {
		t.Error("expected capacityExceeded on a grid with no usable height")
	}
	if plan.groupKind != KindOverflow {
		t.Errorf("groupKind = %v", plan.groupKind)
	}
	// Even here events are never dropped from the output.
	cards := plan.cards()
	total := 0
	for _, c := range cards {
		total += len(c.EventIDs)
	}
	if total != 5 {
		t.Errorf("events represented = %d, want 5", total)
	}
}

func TestSplitHalvesBalances(t *testing.T) {
	members := make([]projected, 5)
	for i := range members {
		members[i] = proj(fmt.Sprintf("e%d", i), float64(i), day(i))
	}
	halves := splitHalves(Cluster{ID: "c", Members: members})
	if len(halves) != 2 {
		t.Fatalf("halves = %d", len(halves))
	}
	if !halves[0].above || halves[1].above {
		t.Error("half order should be above then below")
	}
	if len(halves[0].events) != 3 || len(halves[1].events) != 2 {
		t.Errorf("split = %d/%d, want 3/2", len(halves[0].events), len(halves[1].events))
	}
}

func TestSplitHalvesSingleEvent(t *testing.T) {
	halves := splitHalves(Cluster{ID: "c", Members: []projected{proj("a", 0, day(0))}})
	if len(halves) != 1 || !halves[0].above {
		t.Errorf("single event should yield one above half, got %+v", halves)
	}
}
