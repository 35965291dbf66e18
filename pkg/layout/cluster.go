package layout

import (
	"fmt"
	"hash/fnv"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/vanderheijden86/chronochart/pkg/metrics"
	"github.com/vanderheijden86/chronochart/pkg/model"
	"github.com/vanderheijden86/chronochart/pkg/timeline"
)

// projected is one visible event with its pixel x-coordinate under the
// current window and viewport.
type projected struct {
	Event model.Event
	X     float64
}

// Cluster is an ephemeral grouping of events whose projected x-positions
// form a chain with gaps below the merge distance. Members are in
// chronological order; the ID is derived from sorted member IDs so it is
// stable across recomputation regardless of input order.
type Cluster struct {
	ID      string
	Members []projected
	AnchorX float64
}

// EventCount returns the number of member events.
func (c Cluster) EventCount() int {
	return len(c.Members)
}

// projectVisible maps events to pixel positions and drops those outside the
// window. The full-range extent is computed over ALL events, not just the
// visible ones, so panning does not rescale the axis.
func projectVisible(events []model.Event, win timeline.Window, vp timeline.Viewport) []projected {
	r := model.RangeOf(events)
	if r.IsZero() {
		return nil
	}
	out := make([]projected, 0, len(events))
	for _, ev := range events {
		ratio := r.Ratio(ev.Date)
		if !timeline.Visible(ratio, win) {
			continue
		}
		out = append(out, projected{
			Event: ev,
			X:     timeline.XForRatio(ratio, win, vp),
		})
	}
	return out
}

// clusterEvents groups projected events by single-linkage sweep along the
// x-axis: sorted by x, a gap wider than minGap starts a new cluster.
// Ties sort by date then ID so the output is deterministic for any input
// ordering.
func clusterEvents(items []projected, minGap float64) []Cluster {
	defer metrics.Timer(metrics.Clustering)()

	if len(items) == 0 {
		return nil
	}

	sorted := make([]projected, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		if !sorted[i].Event.Date.Equal(sorted[j].Event.Date) {
			return sorted[i].Event.Date.Before(sorted[j].Event.Date)
		}
		return sorted[i].Event.ID < sorted[j].Event.ID
	})

	var clusters []Cluster
	current := []projected{sorted[0]}
	for _, p := range sorted[1:] {
		if p.X-current[len(current)-1].X > minGap {
			clusters = append(clusters, finishCluster(current))
			current = []projected{p}
			continue
		}
		current = append(current, p)
	}
	clusters = append(clusters, finishCluster(current))
	return clusters
}

// finishCluster orders members chronologically, fixes the anchor at the
// centroid of member positions and derives the stable cluster ID.
func finishCluster(members []projected) Cluster {
	sort.Slice(members, func(i, j int) bool {
		if !members[i].Event.Date.Equal(members[j].Event.Date) {
			return members[i].Event.Date.Before(members[j].Event.Date)
		}
		return members[i].Event.ID < members[j].Event.ID
	})

	xs := make([]float64, len(members))
	for i, m := range members {
		xs[i] = m.X
	}

	return Cluster{
		ID:      clusterID(members),
		Members: members,
		AnchorX: stat.Mean(xs, nil),
	}
}

// clusterID hashes the sorted member IDs. The same set of events always
// yields the same ID, independent of insertion or sweep order.
func clusterID(members []projected) string {
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.Event.ID
	}
	sort.Strings(ids)

	h := fnv.New64a()
	for _, id := range ids {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("c-%016x", h.Sum64())
}
