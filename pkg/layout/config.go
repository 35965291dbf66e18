// Package layout implements the deterministic card-layout and degradation
// engine. Compute is a pure function from (events, window, viewport) to a
// Result of card placements, axis anchors and telemetry: same inputs always
// produce the same output, byte for byte.
//
// The pipeline runs in four stages: cluster visible events along the x-axis,
// split each cluster into above/below half-columns, pick a card kind per
// half-column that fits the pixel budget, then allocate grid slots and final
// center-anchored geometry.
package layout

import "github.com/vanderheijden86/chronochart/pkg/config"

// DensityMode scales the cluster merge distance. Denser modes merge events
// that sit further apart in pixels, trading anchor precision for fewer,
// larger clusters.
type DensityMode int

const (
	DensityNormal DensityMode = iota
	DensityDense
	DensityVeryDense
)

// gapScale returns the multiplier applied to Config.MinGapPx.
func (d DensityMode) gapScale() float64 {
	switch d {
	case DensityDense:
		return 0.75
	case DensityVeryDense:
		return 0.5
	default:
		return 1.0
	}
}

func parseDensityMode(s string) DensityMode {
	switch s {
	case "dense":
		return DensityDense
	case "very-dense":
		return DensityVeryDense
	default:
		return DensityNormal
	}
}

// Config holds the layout engine tunables. All fields have working defaults
// from DefaultConfig; zero values in a partially filled Config are replaced
// by those defaults inside Compute.
type Config struct {
	// Grid shape. Columns scale with the viewport (UsableWidth / SlotWidthPx)
	// and are capped at MaxColumns; rows per side are fixed.
	SlotsAbove int
	SlotsBelow int
	MaxColumns int
	SlotWidthPx float64

	// Clustering.
	MinGapPx float64
	Density  DensityMode

	// Card geometry. Heights are the per-kind footprint used by the
	// degradation budget; CardGapPx separates stacked cards vertically.
	CardWidthPx  float64
	CardGapPx    float64
	FullHeightPx      float64
	CompactHeightPx   float64
	TitleOnlyHeightPx float64
	OverflowHeightPx  float64

	// AxisClearancePx keeps card edges off the axis line on both sides.
	AxisClearancePx float64

	// LaneOffsetPx is the horizontal nudge applied per lane when same-x
	// anchors crowd each other.
	LaneOffsetPx float64

	// MinWindowWidth is carried here so collaborators that build a
	// timeline.Controller from a layout Config agree on the zoom floor.
	MinWindowWidth float64
}

// DefaultConfig returns the tunables used by the web client at 1080p.
func DefaultConfig() Config {
	return Config{
		SlotsAbove:        3,
		SlotsBelow:        3,
		MaxColumns:        16,
		SlotWidthPx:       180,
		MinGapPx:          24,
		Density:           DensityNormal,
		CardWidthPx:       160,
		CardGapPx:         8,
		FullHeightPx:      120,
		CompactHeightPx:   72,
		TitleOnlyHeightPx: 32,
		OverflowHeightPx:  32,
		AxisClearancePx:   12,
		LaneOffsetPx:      6,
		MinWindowWidth:    0.001,
	}
}

// FromFileConfig overlays the user's config file onto the defaults.
func FromFileConfig(fc config.LayoutConfig) Config {
	cfg := DefaultConfig()
	if fc.SlotsAbove > 0 {
		cfg.SlotsAbove = fc.SlotsAbove
	}
	if fc.SlotsBelow > 0 {
		cfg.SlotsBelow = fc.SlotsBelow
	}
	if fc.MaxColumns > 0 {
		cfg.MaxColumns = fc.MaxColumns
	}
	if fc.MinGapPx > 0 {
		cfg.MinGapPx = fc.MinGapPx
	}
	if fc.MinWindowWidth > 0 {
		cfg.MinWindowWidth = fc.MinWindowWidth
	}
	cfg.Density = parseDensityMode(fc.DensityMode)
	return cfg
}

// normalized fills zero fields with defaults so a partially constructed
// Config cannot produce a degenerate grid.
func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.SlotsAbove <= 0 {
		c.SlotsAbove = def.SlotsAbove
	}
	if c.SlotsBelow <= 0 {
		c.SlotsBelow = def.SlotsBelow
	}
	if c.MaxColumns <= 0 {
		c.MaxColumns = def.MaxColumns
	}
	if c.SlotWidthPx <= 0 {
		c.SlotWidthPx = def.SlotWidthPx
	}
	if c.MinGapPx <= 0 {
		c.MinGapPx = def.MinGapPx
	}
	if c.CardWidthPx <= 0 {
		c.CardWidthPx = def.CardWidthPx
	}
	if c.CardGapPx <= 0 {
		c.CardGapPx = def.CardGapPx
	}
	if c.FullHeightPx <= 0 {
		c.FullHeightPx = def.FullHeightPx
	}
	if c.CompactHeightPx <= 0 {
		c.CompactHeightPx = def.CompactHeightPx
	}
	if c.TitleOnlyHeightPx <= 0 {
		c.TitleOnlyHeightPx = def.TitleOnlyHeightPx
	}
	if c.OverflowHeightPx <= 0 {
		c.OverflowHeightPx = def.OverflowHeightPx
	}
	if c.AxisClearancePx <= 0 {
		c.AxisClearancePx = def.AxisClearancePx
	}
	if c.LaneOffsetPx <= 0 {
		c.LaneOffsetPx = def.LaneOffsetPx
	}
	if c.MinWindowWidth <= 0 {
		c.MinWindowWidth = def.MinWindowWidth
	}
	return c
}

// effectiveMinGap is the cluster merge distance after density scaling.
func (c Config) effectiveMinGap() float64 {
	return c.MinGapPx * c.Density.gapScale()
}

// kindHeight returns the pixel footprint of one card of the given kind.
func (c Config) kindHeight(k CardKind) float64 {
	switch k {
	case KindFull:
		return c.FullHeightPx
	case KindCompact:
		return c.CompactHeightPx
	case KindTitleOnly:
		return c.TitleOnlyHeightPx
	default:
		return c.OverflowHeightPx
	}
}
