package layout

import "fmt"

// CardKind is the visual fidelity of a rendered card, ordered from most to
// least detailed. Degradation only ever moves down this ordering.
type CardKind uint8

const (
	KindFull CardKind = iota
	KindCompact
	KindTitleOnly
	KindOverflow
)

// detailKinds are the kinds that render one event per card, in degradation
// order. KindOverflow is not in this list: it aggregates events.
var detailKinds = [...]CardKind{KindFull, KindCompact, KindTitleOnly}

func (k CardKind) String() string {
	switch k {
	case KindFull:
		return "full"
	case KindCompact:
		return "compact"
	case KindTitleOnly:
		return "title-only"
	case KindOverflow:
		return "overflow"
	default:
		return fmt.Sprintf("CardKind(%d)", uint8(k))
	}
}

// Placement is one renderable card. X and Y are the card CENTER, not the
// top-left corner: the renderer applies translate(-50%,-50%) and connector
// endpoints are computed against the center. HiddenCount is non-zero only
// for KindOverflow; the unexported constructors below keep it that way.
type Placement struct {
	EventIDs    []string `json:"event_ids"`
	Kind        CardKind `json:"kind"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Width       float64  `json:"width"`
	Height      float64  `json:"height"`
	ClusterID   string   `json:"cluster_id"`
	Above       bool     `json:"above"`
	HiddenCount int      `json:"hidden_count,omitempty"`
	Fallback    bool     `json:"fallback,omitempty"`
}

// Badge returns the overflow badge text, exactly "+N". Empty for any other
// kind.
func (p Placement) Badge() string {
	if p.Kind != KindOverflow || p.HiddenCount <= 0 {
		return ""
	}
	return fmt.Sprintf("+%d", p.HiddenCount)
}

// Bounds returns the bounding box as (left, top, right, bottom).
func (p Placement) Bounds() (x0, y0, x1, y1 float64) {
	return p.X - p.Width/2, p.Y - p.Height/2, p.X + p.Width/2, p.Y + p.Height/2
}

func newDetailCard(kind CardKind, eventID, clusterID string, above bool) Placement {
	return Placement{
		EventIDs:  []string{eventID},
		Kind:      kind,
		ClusterID: clusterID,
		Above:     above,
	}
}

func newOverflowCard(eventIDs []string, clusterID string, above bool) Placement {
	return Placement{
		EventIDs:    eventIDs,
		Kind:        KindOverflow,
		ClusterID:   clusterID,
		Above:       above,
		HiddenCount: len(eventIDs),
	}
}

// Anchor is the axis marker for one cluster. Anchors persist across zoom
// levels regardless of how the cluster's cards degrade.
type Anchor struct {
	ClusterID  string  `json:"cluster_id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	EventCount int     `json:"event_count"`
	Lane       int     `json:"lane,omitempty"`
}
