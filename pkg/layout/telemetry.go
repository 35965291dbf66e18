package layout

import "gonum.org/v1/gonum/floats"

// Telemetry mirrors the intermediate state of one layout pass for tests and
// the dev panel. It is part of the Result value, never a shared global: the
// consumer that wants it gets it from the same call that produced the
// placements.
type Telemetry struct {
	Capacity    CapacityStats    `json:"capacity"`
	Degradation DegradationStats `json:"degradation"`
	Dispatch    DispatchStats    `json:"dispatch"`
	Promotions  PromotionStats   `json:"promotions"`
	Overflow    OverflowStats    `json:"overflow"`
}

// CapacityStats describes slot grid usage.
type CapacityStats struct {
	TotalCells  int     `json:"total_cells"`
	UsedCells   int     `json:"used_cells"`
	Utilization float64 `json:"utilization"` // percent, 0..100
}

// DegradationStats counts half-column groups by selected card kind.
type DegradationStats struct {
	TotalGroups       int     `json:"total_groups"`
	FullCardGroups    int     `json:"full_card_groups"`
	CompactCardGroups int     `json:"compact_card_groups"`
	TitleOnlyGroups   int     `json:"title_only_groups"`
	OverflowGroups    int     `json:"overflow_groups"`
	DegradationRate   float64 `json:"degradation_rate"` // non-full groups / total
	SpaceReclaimed    float64 `json:"space_reclaimed"`  // px saved vs all-full rendering
}

// DispatchStats describes clustering output.
type DispatchStats struct {
	GroupCount           int     `json:"group_count"`
	AvgEventsPerCluster  float64 `json:"avg_events_per_cluster"`
	HorizontalSpaceUsage float64 `json:"horizontal_space_usage"` // percent of usable width spanned by anchors
}

// PromotionStats is reserved for the future upgrade path where cards regain
// detail as space frees up mid-animation. Always present, currently zero.
type PromotionStats struct {
	Count int `json:"count"`
}

// OverflowStats counts the soft-failure paths: slot allocation misses
// (card placed at the fallback position) and half-columns whose event count
// exceeded even the overflow representation's budget.
type OverflowStats struct {
	AllocationMisses int `json:"allocation_misses"`
	CapacityExceeded int `json:"capacity_exceeded"`
}

// horizontalSpaceUsage returns the percentage of the usable strip spanned
// by the anchor positions. Zero or one anchor spans nothing.
func horizontalSpaceUsage(anchors []Anchor, usableWidth float64) float64 {
	if len(anchors) < 2 || usableWidth <= 0 {
		return 0
	}
	xs := make([]float64, len(anchors))
	for i, a := range anchors {
		xs[i] = a.X
	}
	span := floats.Max(xs) - floats.Min(xs)
	pct := span / usableWidth * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}
