package layout

import (
	"sort"

	"github.com/vanderheijden86/chronochart/pkg/debug"
	"github.com/vanderheijden86/chronochart/pkg/metrics"
)

// positioner turns half-column plans into pixel geometry. It owns the slot
// grid for one layout pass and records allocation misses.
type positioner struct {
	cfg      Config
	grid     *Grid
	strategy SlotStrategy

	misses int
}

// place allocates slots for every card in the plan and fills in its final
// center-anchored geometry. Cards that find no free slot anywhere in the
// grid cascade down the fallback column at the top-left and are flagged.
func (ps *positioner) place(plan halfPlan, anchorX float64) []Placement {
	defer metrics.Timer(metrics.SlotAllocation)()

	cards := plan.cards()
	preferred := ps.grid.ColumnFor(anchorX)

	for i := range cards {
		slot, ok := ps.strategy.FindSlot(ps.grid, preferred, cards[i].Above)
		if !ok {
			ps.placeFallback(&cards[i])
			continue
		}
		ps.grid.Occupy(slot, cards[i].ClusterID)
		ps.placeInSlot(&cards[i], slot, anchorX)
	}
	return cards
}

// placeInSlot centers the card inside the slot's pixel box, hugging the
// anchor x where the slot is wide enough and keeping the card edge nearest
// the axis flush with the slot edge nearest the axis.
func (ps *positioner) placeInSlot(card *Placement, slot Slot, anchorX float64) {
	rect := ps.grid.SlotRect(slot)
	slotW := rect.X1 - rect.X0
	slotH := rect.Y1 - rect.Y0

	card.Width = ps.cfg.CardWidthPx
	if card.Width > slotW-4 {
		card.Width = slotW - 4
	}
	if card.Width < 0 {
		card.Width = 0
	}

	card.Height = ps.cfg.kindHeight(card.Kind)
	if card.Height > slotH-2 {
		card.Height = slotH - 2
	}
	if card.Height < 0 {
		card.Height = 0
	}

	// Hug the anchor while staying inside the slot.
	card.X = clampF(anchorX, rect.X0+card.Width/2+2, rect.X1-card.Width/2-2)
	if card.Width >= slotW-4 {
		card.X = (rect.X0 + rect.X1) / 2
	}

	if card.Above {
		card.Y = rect.Y1 - card.Height/2 - 1
	} else {
		card.Y = rect.Y0 + card.Height/2 + 1
	}
}

// placeFallback stacks unplaceable cards down the left edge. This is the
// documented soft-failure: the card is rendered (never dropped from the
// data model) and flagged so the UI can mark it unpositioned.
func (ps *positioner) placeFallback(card *Placement) {
	card.Fallback = true
	card.Width = ps.cfg.CardWidthPx
	card.Height = ps.cfg.kindHeight(card.Kind)
	card.X = ps.grid.LeftEdge + card.Width/2 + 4
	card.Y = float64(ps.misses)*(card.Height+4) + card.Height/2 + 4
	ps.misses++
	debug.Log("slot allocation miss for cluster %s (total %d)", card.ClusterID, ps.misses)
}

func clampF(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// assignLanes nudges anchors that crowd each other horizontally. Sorted by
// x, each anchor takes the first lane whose previous occupant is at least
// minGap away; the lane index shifts the rendered marker by LaneOffsetPx so
// same-x markers stay distinguishable.
func assignLanes(anchors []Anchor, minGap, laneOffset float64) {
	defer metrics.Timer(metrics.Positioning)()

	sort.Slice(anchors, func(i, j int) bool {
		if anchors[i].X != anchors[j].X {
			return anchors[i].X < anchors[j].X
		}
		return anchors[i].ClusterID < anchors[j].ClusterID
	})

	var laneLastX []float64
	for i := range anchors {
		lane := -1
		for l, lastX := range laneLastX {
			if anchors[i].X-lastX >= minGap {
				lane = l
				break
			}
		}
		if lane == -1 {
			lane = len(laneLastX)
			laneLastX = append(laneLastX, 0)
		}
		laneLastX[lane] = anchors[i].X
		anchors[i].Lane = lane
		anchors[i].X += float64(lane) * laneOffset
	}
}
