package layout

import "github.com/vanderheijden86/chronochart/pkg/metrics"

// halfColumn is the unit of degradation: one cluster's events on one side
// of the axis, in chronological order.
type halfColumn struct {
	clusterID string
	above     bool
	events    []projected
}

// splitHalves deals a cluster's chronologically ordered members onto the
// two sides of the axis, even indices above and odd below. This keeps the
// sides balanced within one event for any cluster size.
func splitHalves(c Cluster) []halfColumn {
	var above, below []projected
	for i, m := range c.Members {
		if i%2 == 0 {
			above = append(above, m)
		} else {
			below = append(below, m)
		}
	}
	halves := make([]halfColumn, 0, 2)
	if len(above) > 0 {
		halves = append(halves, halfColumn{clusterID: c.ID, above: true, events: above})
	}
	if len(below) > 0 {
		halves = append(halves, halfColumn{clusterID: c.ID, above: false, events: below})
	}
	return halves
}

// halfPlan is the outcome of degradation for one half-column: which events
// render as individual cards of detailKind, and which collapse behind a
// single overflow badge. overflow is empty when everything fits.
type halfPlan struct {
	half       halfColumn
	detailKind CardKind
	detail     []projected
	overflow   []projected

	// groupKind is the kind this half-column counts as in telemetry:
	// detailKind when nothing overflowed, KindOverflow otherwise.
	groupKind CardKind

	// capacityExceeded is set when the half-column has no representable
	// slot at all (degenerate grid); the overflow card it still emits
	// will miss allocation and land in the fallback position.
	capacityExceeded bool
}

// kindCapacity returns how many cards of the given kind fit in a
// half-column: bounded by the side's row count (one column of slots) and by
// the vertical pixel budget.
func kindCapacity(cfg Config, g *Grid, kind CardKind, above bool) int {
	rows := g.rows(above)
	if rows == 0 {
		return 0
	}
	unit := cfg.kindHeight(kind) + cfg.CardGapPx
	if unit <= 0 {
		return 0
	}
	byHeight := int(g.sideHeight(above) / unit)
	if byHeight < rows {
		return byHeight
	}
	return rows
}

// planHalfColumn selects the most detailed card kind that fits the
// half-column's pixel budget, degrading Full -> Compact -> TitleOnly ->
// overflow badge. Never degrades further than the count requires, and when
// not every event can render individually the chronologically earliest
// events keep their cards while the tail collapses into the "+N" badge.
func planHalfColumn(cfg Config, g *Grid, half halfColumn) halfPlan {
	defer metrics.Timer(metrics.Degradation)()

	count := len(half.events)
	plan := halfPlan{half: half}

	for _, kind := range detailKinds {
		if count <= kindCapacity(cfg, g, kind, half.above) {
			plan.detailKind = kind
			plan.groupKind = kind
			plan.detail = half.events
			return plan
		}
	}

	// Overflow: keep as many title-only cards as fit minus one slot
	// reserved for the badge.
	titleCap := kindCapacity(cfg, g, KindTitleOnly, half.above)
	visible := titleCap - 1
	if visible < 0 {
		visible = 0
	}
	plan.detailKind = KindTitleOnly
	plan.groupKind = KindOverflow
	plan.detail = half.events[:visible]
	plan.overflow = half.events[visible:]
	plan.capacityExceeded = titleCap == 0
	return plan
}

// cards materializes the plan into placements without geometry; the
// positioner assigns slots and pixel coordinates afterwards.
func (p halfPlan) cards() []Placement {
	out := make([]Placement, 0, len(p.detail)+1)
	for _, ev := range p.detail {
		out = append(out, newDetailCard(p.detailKind, ev.Event.ID, p.half.clusterID, p.half.above))
	}
	if len(p.overflow) > 0 {
		ids := make([]string, len(p.overflow))
		for i, ev := range p.overflow {
			ids[i] = ev.Event.ID
		}
		out = append(out, newOverflowCard(ids, p.half.clusterID, p.half.above))
	}
	return out
}

// fullFootprint is what the half-column would have consumed had every event
// rendered as a full card; used for the spaceReclaimed telemetry.
func (p halfPlan) fullFootprint(cfg Config) float64 {
	return float64(len(p.half.events)) * (cfg.FullHeightPx + cfg.CardGapPx)
}

// actualFootprint is the vertical budget the plan actually consumes.
func (p halfPlan) actualFootprint(cfg Config) float64 {
	used := float64(len(p.detail)) * (cfg.kindHeight(p.detailKind) + cfg.CardGapPx)
	if len(p.overflow) > 0 {
		used += cfg.OverflowHeightPx + cfg.CardGapPx
	}
	return used
}
