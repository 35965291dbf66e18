package layout

import (
	"sort"

	"github.com/vanderheijden86/chronochart/pkg/debug"
	"github.com/vanderheijden86/chronochart/pkg/metrics"
	"github.com/vanderheijden86/chronochart/pkg/model"
	"github.com/vanderheijden86/chronochart/pkg/timeline"
)

// Result is the complete output of one layout pass. Telemetry travels with
// the placements instead of living in shared state, so two concurrent
// Compute calls cannot observe each other.
type Result struct {
	Placements []Placement `json:"placements"`
	Anchors    []Anchor    `json:"anchors"`
	Telemetry  Telemetry   `json:"telemetry"`
}

// Compute runs the full layout pipeline. It never returns an error: finite
// but degenerate inputs (no events, zero viewport, empty window) produce an
// empty Result, and density beyond capacity degrades to overflow badges and
// fallback placements counted in telemetry.
//
// Compute is pure and re-entrant: identical (events, window, viewport,
// config) inputs produce identical Results.
func Compute(events []model.Event, win timeline.Window, vp timeline.Viewport, cfg Config) Result {
	defer metrics.Timer(metrics.LayoutPass)()

	cfg = cfg.normalized()

	var res Result
	if len(events) == 0 || vp.UsableWidth() <= 0 || vp.Height <= 0 || win.Width() <= 0 {
		return res
	}

	visible := projectVisible(events, win, vp)
	if len(visible) == 0 {
		return res
	}

	clusters := clusterEvents(visible, cfg.effectiveMinGap())
	grid := NewGrid(cfg, vp)
	ps := &positioner{cfg: cfg, grid: grid, strategy: RoundRobinStrategy{}}

	var (
		placements []Placement
		anchors    []Anchor
		degStats   DegradationStats
		overflow   OverflowStats
		reclaimed  float64
	)

	for _, cluster := range clusters {
		anchors = append(anchors, Anchor{
			ClusterID:  cluster.ID,
			X:          cluster.AnchorX,
			Y:          grid.AxisY,
			EventCount: cluster.EventCount(),
		})

		for _, half := range splitHalves(cluster) {
			plan := planHalfColumn(cfg, grid, half)

			degStats.TotalGroups++
			switch plan.groupKind {
			case KindFull:
				degStats.FullCardGroups++
			case KindCompact:
				degStats.CompactCardGroups++
			case KindTitleOnly:
				degStats.TitleOnlyGroups++
			case KindOverflow:
				degStats.OverflowGroups++
			}
			if plan.capacityExceeded {
				overflow.CapacityExceeded++
			}
			if saved := plan.fullFootprint(cfg) - plan.actualFootprint(cfg); saved > 0 {
				reclaimed += saved
			}

			placements = append(placements, ps.place(plan, cluster.AnchorX)...)
		}
	}

	assignLanes(anchors, cfg.effectiveMinGap(), cfg.LaneOffsetPx)
	sortPlacements(placements)

	if degStats.TotalGroups > 0 {
		degStats.DegradationRate = float64(degStats.TotalGroups-degStats.FullCardGroups) /
			float64(degStats.TotalGroups)
	}
	degStats.SpaceReclaimed = reclaimed
	overflow.AllocationMisses = ps.misses

	res.Placements = placements
	res.Anchors = anchors
	res.Telemetry = Telemetry{
		Capacity: CapacityStats{
			TotalCells:  grid.TotalCells(),
			UsedCells:   grid.UsedCells(),
			Utilization: grid.Utilization(),
		},
		Degradation: degStats,
		Dispatch: DispatchStats{
			GroupCount:           len(clusters),
			AvgEventsPerCluster:  float64(len(visible)) / float64(len(clusters)),
			HorizontalSpaceUsage: horizontalSpaceUsage(anchors, vp.UsableWidth()),
		},
		Overflow: overflow,
	}

	debug.Log("layout: %d events -> %d clusters, %d cards, %d misses",
		len(visible), len(clusters), len(placements), ps.misses)
	return res
}

// sortPlacements fixes the output order: left to right, above before below,
// then by cluster and first event id. Renderers and tests can rely on it.
func sortPlacements(placements []Placement) {
	sort.Slice(placements, func(i, j int) bool {
		a, b := placements[i], placements[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Above != b.Above {
			return a.Above
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.ClusterID != b.ClusterID {
			return a.ClusterID < b.ClusterID
		}
		if len(a.EventIDs) > 0 && len(b.EventIDs) > 0 {
			return a.EventIDs[0] < b.EventIDs[0]
		}
		return len(a.EventIDs) < len(b.EventIDs)
	})
}
