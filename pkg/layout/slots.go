package layout

import (
	"math"
	"sort"

	"github.com/vanderheijden86/chronochart/pkg/timeline"
)

// Slot addresses one grid cell. Row counts from the axis outward (row 0 is
// nearest the axis) on the side given by Above.
type Slot struct {
	Row   int
	Col   int
	Above bool
}

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Grid is the logical slot grid over the rendering area. Column count
// scales with the usable viewport width and is capped at Config.MaxColumns;
// row counts per side are fixed. Slot heights differ per side because the
// axis need not sit at the vertical center.
type Grid struct {
	Columns    int
	SlotsAbove int
	SlotsBelow int

	SlotWidth       float64
	SlotHeightAbove float64
	SlotHeightBelow float64

	AxisY      float64
	LeftEdge   float64
	clearance  float64

	occupied map[Slot]string // slot -> owning event or cluster id
	// allocations per side, used by the round-robin row rotation
	allocAbove int
	allocBelow int
}

// NewGrid sizes a grid for the viewport. A degenerate viewport (zero usable
// width or height) yields a grid with zero columns; allocation on such a
// grid always misses, which callers surface via telemetry rather than error.
func NewGrid(cfg Config, vp timeline.Viewport) *Grid {
	usable := vp.UsableWidth()
	columns := int(usable / cfg.SlotWidthPx)
	if columns > cfg.MaxColumns {
		columns = cfg.MaxColumns
	}
	if usable > 0 && columns < 1 {
		columns = 1
	}

	axisY := vp.Height / 2
	aboveSpan := axisY - cfg.AxisClearancePx
	belowSpan := vp.Height - axisY - cfg.AxisClearancePx
	if aboveSpan < 0 {
		aboveSpan = 0
	}
	if belowSpan < 0 {
		belowSpan = 0
	}

	slotWidth := 0.0
	if columns > 0 {
		slotWidth = usable / float64(columns)
	}

	return &Grid{
		Columns:         columns,
		SlotsAbove:      cfg.SlotsAbove,
		SlotsBelow:      cfg.SlotsBelow,
		SlotWidth:       slotWidth,
		SlotHeightAbove: aboveSpan / float64(cfg.SlotsAbove),
		SlotHeightBelow: belowSpan / float64(cfg.SlotsBelow),
		AxisY:           axisY,
		LeftEdge:        vp.LeftMargin,
		clearance:       cfg.AxisClearancePx,
		occupied:        make(map[Slot]string),
	}
}

// TotalCells returns columns x (slotsAbove + slotsBelow).
func (g *Grid) TotalCells() int {
	return g.Columns * (g.SlotsAbove + g.SlotsBelow)
}

// UsedCells returns the number of occupied slots.
func (g *Grid) UsedCells() int {
	return len(g.occupied)
}

// Utilization returns used/total as a percentage in [0,100].
func (g *Grid) Utilization() float64 {
	total := g.TotalCells()
	if total == 0 {
		return 0
	}
	return float64(g.UsedCells()) / float64(total) * 100
}

// rows returns the row count on one side.
func (g *Grid) rows(above bool) int {
	if above {
		return g.SlotsAbove
	}
	return g.SlotsBelow
}

// sideHeight returns the vertical pixel budget on one side.
func (g *Grid) sideHeight(above bool) float64 {
	if above {
		return g.SlotHeightAbove * float64(g.SlotsAbove)
	}
	return g.SlotHeightBelow * float64(g.SlotsBelow)
}

// ColumnFor maps a pixel x-coordinate to its preferred column, clamped to
// the grid.
func (g *Grid) ColumnFor(x float64) int {
	if g.Columns == 0 || g.SlotWidth <= 0 {
		return 0
	}
	col := int(math.Floor((x - g.LeftEdge) / g.SlotWidth))
	if col < 0 {
		col = 0
	}
	if col >= g.Columns {
		col = g.Columns - 1
	}
	return col
}

// SlotRect returns the pixel bounding box of a slot. Row 0 borders the axis
// clearance band; higher rows stack outward.
func (g *Grid) SlotRect(s Slot) Rect {
	x0 := g.LeftEdge + float64(s.Col)*g.SlotWidth
	if s.Above {
		y1 := g.AxisY - g.clearance - float64(s.Row)*g.SlotHeightAbove
		return Rect{X0: x0, Y0: y1 - g.SlotHeightAbove, X1: x0 + g.SlotWidth, Y1: y1}
	}
	y0 := g.AxisY + g.clearance + float64(s.Row)*g.SlotHeightBelow
	return Rect{X0: x0, Y0: y0, X1: x0 + g.SlotWidth, Y1: y0 + g.SlotHeightBelow}
}

// Occupy marks a slot as used by owner. Occupying a taken slot is a
// programming error surfaced in tests via OccupantsByOwner, not a panic.
func (g *Grid) Occupy(s Slot, owner string) {
	if _, taken := g.occupied[s]; taken {
		return
	}
	g.occupied[s] = owner
	if s.Above {
		g.allocAbove++
	} else {
		g.allocBelow++
	}
}

// Occupant returns the owner of a slot, if any.
func (g *Grid) Occupant(s Slot) (string, bool) {
	owner, ok := g.occupied[s]
	return owner, ok
}

// OccupantsByOwner returns slots grouped by owner in deterministic order,
// for telemetry and tests.
func (g *Grid) OccupantsByOwner() map[string][]Slot {
	out := make(map[string][]Slot)
	for s, owner := range g.occupied {
		out[owner] = append(out[owner], s)
	}
	for owner := range out {
		slots := out[owner]
		sort.Slice(slots, func(i, j int) bool {
			if slots[i].Above != slots[j].Above {
				return slots[i].Above
			}
			if slots[i].Col != slots[j].Col {
				return slots[i].Col < slots[j].Col
			}
			return slots[i].Row < slots[j].Row
		})
	}
	return out
}

// SlotStrategy decides which free slot a card gets. Implementations must be
// deterministic: same grid state and arguments, same answer.
type SlotStrategy interface {
	// FindSlot returns a free slot near the preferred column on the given
	// side, or ok=false when the side is completely full.
	FindSlot(g *Grid, preferredCol int, above bool) (Slot, bool)
}

// RoundRobinStrategy searches rows in a rotating order (so the rows fill
// evenly rather than over-packing the row nearest the axis) and columns
// expanding outward from the preferred column: preferred, then ±1, ±2, ...
type RoundRobinStrategy struct{}

// FindSlot implements SlotStrategy.
func (RoundRobinStrategy) FindSlot(g *Grid, preferredCol int, above bool) (Slot, bool) {
	rows := g.rows(above)
	if rows == 0 || g.Columns == 0 {
		return Slot{}, false
	}

	start := g.allocAbove
	if !above {
		start = g.allocBelow
	}

	for offset := 0; offset < g.Columns; offset++ {
		for _, col := range candidateColumns(preferredCol, offset, g.Columns) {
			for r := 0; r < rows; r++ {
				row := (start + r) % rows
				s := Slot{Row: row, Col: col, Above: above}
				if _, taken := g.occupied[s]; !taken {
					return s, true
				}
			}
		}
	}
	return Slot{}, false
}

// candidateColumns yields the columns at the given distance from preferred
// that fall inside the grid: {preferred} at offset 0, then {preferred-d,
// preferred+d}.
func candidateColumns(preferred, offset, columns int) []int {
	if offset == 0 {
		if preferred >= 0 && preferred < columns {
			return []int{preferred}
		}
		return nil
	}
	var out []int
	if c := preferred - offset; c >= 0 && c < columns {
		out = append(out, c)
	}
	if c := preferred + offset; c >= 0 && c < columns {
		out = append(out, c)
	}
	return out
}
