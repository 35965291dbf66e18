package layout

import (
	"testing"

	"github.com/vanderheijden86/chronochart/pkg/timeline"
)

func testGrid() *Grid {
	vp := timeline.Viewport{Width: 1000, Height: 600, LeftMargin: 100, RightMargin: 100}
	return NewGrid(DefaultConfig(), vp)
}

func TestNewGridDimensions(t *testing.T) {
	g := testGrid()
	// 800px usable / 180px slot width = 4 columns.
	if g.Columns != 4 {
		t.Errorf("Columns = %d, want 4", g.Columns)
	}
	if g.TotalCells() != 4*(3+3) {
		t.Errorf("TotalCells = %d", g.TotalCells())
	}
	if g.AxisY != 300 {
		t.Errorf("AxisY = %v", g.AxisY)
	}
	if g.SlotHeightAbove != 96 { // (300 - 12 clearance) / 3 rows
		t.Errorf("SlotHeightAbove = %v", g.SlotHeightAbove)
	}
}

func TestGridColumnsCappedAtMax(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxColumns = 2
	vp := timeline.Viewport{Width: 2000, Height: 600}
	g := NewGrid(cfg, vp)
	if g.Columns != 2 {
		t.Errorf("Columns = %d, want MaxColumns cap", g.Columns)
	}
}

func TestGridNarrowViewportGetsOneColumn(t *testing.T) {
	vp := timeline.Viewport{Width: 100, Height: 600}
	g := NewGrid(DefaultConfig(), vp)
	if g.Columns != 1 {
		t.Errorf("Columns = %d, want 1", g.Columns)
	}
}

func TestSlotRectSides(t *testing.T) {
	g := testGrid()
	above := g.SlotRect(Slot{Row: 0, Col: 0, Above: true})
	if above.Y1 > g.AxisY {
		t.Errorf("above slot reaches below axis: %v", above)
	}
	if above.Y1 != g.AxisY-12 {
		t.Errorf("above row 0 bottom = %v, want axis - clearance", above.Y1)
	}
	below := g.SlotRect(Slot{Row: 0, Col: 0, Above: false})
	if below.Y0 != g.AxisY+12 {
		t.Errorf("below row 0 top = %v, want axis + clearance", below.Y0)
	}
	// Higher rows stack outward.
	above1 := g.SlotRect(Slot{Row: 1, Col: 0, Above: true})
	if above1.Y1 != above.Y0 {
		t.Errorf("above rows not contiguous: %v then %v", above, above1)
	}
}

func TestColumnFor(t *testing.T) {
	g := testGrid()
	for _, tc := range []struct {
		x    float64
		want int
	}{
		{100, 0}, {299, 0}, {300, 1}, {899, 3},
		{0, 0},    // left of strip clamps
		{2000, 3}, // right of strip clamps
	} {
		if got := g.ColumnFor(tc.x); got != tc.want {
			t.Errorf("ColumnFor(%v) = %d, want %d", tc.x, got, tc.want)
		}
	}
}

func TestRoundRobinDistributesRows(t *testing.T) {
	g := testGrid()
	s := RoundRobinStrategy{}

	var rows []int
	for i := 0; i < 3; i++ {
		slot, ok := s.FindSlot(g, 1, true)
		if !ok {
			t.Fatal("grid unexpectedly full")
		}
		g.Occupy(slot, "c1")
		rows = append(rows, slot.Row)
	}
	// Three successive allocations in one column must use three distinct
	// rows, not pile onto the row nearest the axis.
	seen := map[int]bool{}
	for _, r := range rows {
		if seen[r] {
			t.Errorf("row %d used twice in %v", r, rows)
		}
		seen[r] = true
	}
}

func TestFindSlotExpandsColumns(t *testing.T) {
	g := testGrid()
	s := RoundRobinStrategy{}

	// Fill the preferred column entirely.
	for r := 0; r < g.SlotsAbove; r++ {
		g.Occupy(Slot{Row: r, Col: 1, Above: true}, "blocker")
	}
	slot, ok := s.FindSlot(g, 1, true)
	if !ok {
		t.Fatal("expected spill to neighbor column")
	}
	if slot.Col != 0 && slot.Col != 2 {
		t.Errorf("Col = %d, want preferred±1", slot.Col)
	}
}

func TestFindSlotMissWhenSideFull(t *testing.T) {
	g := testGrid()
	s := RoundRobinStrategy{}

	for c := 0; c < g.Columns; c++ {
		for r := 0; r < g.SlotsAbove; r++ {
			g.Occupy(Slot{Row: r, Col: c, Above: true}, "blocker")
		}
	}
	if _, ok := s.FindSlot(g, 1, true); ok {
		t.Error("found a slot on a full side")
	}
	// The other side is unaffected.
	if _, ok := s.FindSlot(g, 1, false); !ok {
		t.Error("below side should still have slots")
	}
}

func TestUtilizationBounds(t *testing.T) {
	g := testGrid()
	if got := g.Utilization(); got != 0 {
		t.Errorf("empty utilization = %v", got)
	}
	for c := 0; c < g.Columns; c++ {
		for r := 0; r < g.SlotsAbove; r++ {
			g.Occupy(Slot{Row: r, Col: c, Above: true}, "x")
		}
		for r := 0; r < g.SlotsBelow; r++ {
			g.Occupy(Slot{Row: r, Col: c, Above: false}, "x")
		}
	}
	if got := g.Utilization(); got != 100 {
		t.Errorf("full utilization = %v", got)
	}
}

func TestOccupyIgnoresDoubleBooking(t *testing.T) {
	g := testGrid()
	s := Slot{Row: 0, Col: 0, Above: true}
	g.Occupy(s, "first")
	g.Occupy(s, "second")
	owner, _ := g.Occupant(s)
	if owner != "first" {
		t.Errorf("owner = %q, want first occupant kept", owner)
	}
	if g.UsedCells() != 1 {
		t.Errorf("UsedCells = %d", g.UsedCells())
	}
}
