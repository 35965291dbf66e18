// Package export renders static timeline snapshots (SVG or PNG) from a
// computed layout, with a summary block compact enough for tooling to parse
// without auxiliary docs.
package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/chronochart/pkg/layout"
	"github.com/vanderheijden86/chronochart/pkg/metrics"
	"github.com/vanderheijden86/chronochart/pkg/model"
	"github.com/vanderheijden86/chronochart/pkg/timeline"
)

// SnapshotOptions controls timeline snapshot export behaviour.
type SnapshotOptions struct {
	Path     string            // Output path; format inferred from extension when Format empty
	Format   string            // "svg" or "png" (case-insensitive). If empty, inferred from Path.
	Title    string            // Optional title rendered in summary block
	Events   []model.Event     // Events behind the layout, for card titles
	Result   layout.Result     // Computed layout to render
	Window   timeline.Window   // View window the layout was computed for
	Viewport timeline.Viewport // Viewport the layout was computed for
}

const headerHeight = 96.0

// SaveSnapshot renders a static timeline snapshot to opts.Path.
func SaveSnapshot(opts SnapshotOptions) error {
	defer metrics.Timer(metrics.SnapshotExport)()

	if len(opts.Result.Placements) == 0 && len(opts.Events) == 0 {
		return fmt.Errorf("no events to export")
	}

	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".svg":
			format = "svg"
		case ".png":
			format = "png"
		default:
			format = "svg" // safe default
			if opts.Path != "" && filepath.Ext(opts.Path) == "" {
				opts.Path += ".svg"
			}
		}
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}

	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create parent dir: %w", err)
		}
	}

	scene := buildScene(opts)

	switch format {
	case "svg":
		f, err := os.Create(opts.Path)
		if err != nil {
			return err
		}
		defer f.Close()
		return renderSVG(f, scene)
	default:
		return renderPNG(opts.Path, scene)
	}
}

// --- scene computation -------------------------------------------------------

type sceneCard struct {
	layout.Placement
	Label string
}

type scene struct {
	Cards   []sceneCard
	Anchors []layout.Anchor
	Width   int
	Height  int
	AxisY   float64
	Summary summaryInfo
}

type summaryInfo struct {
	Title       string
	Window      string
	EventCount  int
	AnchorCount int
	Utilization float64
	Degradation float64
	Overflow    int
}

// buildScene shifts the layout below the header band and resolves card
// labels from the event set.
func buildScene(opts SnapshotOptions) scene {
	titleByID := make(map[string]string, len(opts.Events))
	for _, ev := range opts.Events {
		titleByID[ev.ID] = ev.Title
	}

	cards := make([]sceneCard, 0, len(opts.Result.Placements))
	for _, p := range opts.Result.Placements {
		c := sceneCard{Placement: p}
		c.Y += headerHeight
		if p.Kind == layout.KindOverflow {
			c.Label = p.Badge()
		} else if len(p.EventIDs) > 0 {
			c.Label = truncate(titleByID[p.EventIDs[0]], 24)
		}
		cards = append(cards, c)
	}

	anchors := make([]layout.Anchor, len(opts.Result.Anchors))
	copy(anchors, opts.Result.Anchors)
	for i := range anchors {
		anchors[i].Y += headerHeight
	}

	width := int(opts.Viewport.Width)
	if width < 640 {
		width = 640
	}
	height := int(opts.Viewport.Height + headerHeight)
	if height < 480 {
		height = 480
	}

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = "Timeline Snapshot"
	}
	tel := opts.Result.Telemetry

	return scene{
		Cards:   cards,
		Anchors: anchors,
		Width:   width,
		Height:  height,
		AxisY:   opts.Viewport.Height/2 + headerHeight,
		Summary: summaryInfo{
			Title:       title,
			Window:      fmt.Sprintf("[%.3f, %.3f]", opts.Window.Start, opts.Window.End),
			EventCount:  len(opts.Events),
			AnchorCount: len(anchors),
			Utilization: tel.Capacity.Utilization,
			Degradation: tel.Degradation.DegradationRate,
			Overflow:    tel.Degradation.OverflowGroups,
		},
	}
}

// --- rendering ---------------------------------------------------------------

var (
	colorFull      = color.RGBA{0xc8, 0xe6, 0xc9, 0xff}
	colorCompact   = color.RGBA{0xff, 0xf3, 0xe0, 0xff}
	colorTitleOnly = color.RGBA{0xe1, 0xf0, 0xfa, 0xff}
	colorOverflow  = color.RGBA{0xff, 0xcd, 0xd2, 0xff}
	colorStroke    = color.RGBA{0x22, 0x22, 0x22, 0xff}
	colorAxis      = color.RGBA{0x6b, 0x80, 0xbf, 0xff}
	colorAnchor    = color.RGBA{0x3b, 0x4d, 0x8f, 0xff}
	colorText      = color.RGBA{0x11, 0x11, 0x11, 0xff}
	colorSubtle    = color.RGBA{0x66, 0x66, 0x66, 0xff}
	colorBackdrop  = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	colorHeaderBG  = color.RGBA{0xf3, 0xf4, 0xf6, 0xff}
	colorLegendBG  = color.RGBA{0xee, 0xee, 0xee, 0xff}
)

// cardID is stable across recomputes of the same layout: the event id for
// detail cards, the cluster id plus side for overflow aggregates.
func cardID(c sceneCard) string {
	if c.Kind != layout.KindOverflow && len(c.EventIDs) > 0 {
		return c.EventIDs[0]
	}
	side := "below"
	if c.Above {
		side = "above"
	}
	return c.ClusterID + "-" + side
}

func kindColor(k layout.CardKind) color.RGBA {
	switch k {
	case layout.KindFull:
		return colorFull
	case layout.KindCompact:
		return colorCompact
	case layout.KindTitleOnly:
		return colorTitleOnly
	default:
		return colorOverflow
	}
}

func renderSVG(w io.Writer, sc scene) error {
	canvas := svg.New(w)
	canvas.Start(sc.Width, sc.Height)
	canvas.Rect(0, 0, sc.Width, sc.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Roundrect(16, 12, sc.Width-32, int(headerHeight)-24, 10, 10, fmt.Sprintf("fill:%s", css(colorHeaderBG)))

	drawSummarySVG(canvas, sc)
	drawLegendSVG(canvas, sc)

	// axis
	canvas.Line(0, int(sc.AxisY), sc.Width, int(sc.AxisY),
		fmt.Sprintf("stroke:%s;stroke-width:2", css(colorAxis)))

	// connectors first so cards draw over them
	anchorX := make(map[string]float64, len(sc.Anchors))
	for _, a := range sc.Anchors {
		anchorX[a.ClusterID] = a.X
	}
	for _, c := range sc.Cards {
		ax, ok := anchorX[c.ClusterID]
		if !ok || c.Fallback {
			continue
		}
		_, y0, _, y1 := c.Bounds()
		cy := y1
		if !c.Above {
			cy = y0
		}
		canvas.Line(int(ax), int(sc.AxisY), int(c.X), int(cy),
			fmt.Sprintf("stroke:%s;stroke-width:1", css(colorSubtle)))
	}

	// id/class attributes let external tooling locate anchors and cards by
	// cluster id and card kind.
	for _, a := range sc.Anchors {
		canvas.Circle(int(a.X), int(sc.AxisY), 5,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", css(colorAnchor), css(colorStroke)),
			fmt.Sprintf(`id="anchor-%s" class="anchor"`, a.ClusterID))
	}

	for _, c := range sc.Cards {
		x0, y0, _, _ := c.Bounds()
		canvas.Roundrect(int(x0), int(y0), int(c.Width), int(c.Height), 6, 6,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.2", css(kindColor(c.Kind)), css(colorStroke)),
			fmt.Sprintf(`id="card-%s" class="card card-%s"`, cardID(c), c.Kind))
		if c.Label != "" {
			canvas.Text(int(x0)+8, int(y0)+18, c.Label,
				fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorText)))
		}
	}

	canvas.End()
	return nil
}

func renderPNG(path string, sc scene) error {
	dc := gg.NewContext(sc.Width, sc.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()

	dc.SetColor(colorHeaderBG)
	dc.DrawRoundedRectangle(16, 12, float64(sc.Width)-32, headerHeight-24, 10)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)
	drawSummaryPNG(dc, sc)
	drawLegendPNG(dc, sc)

	dc.SetColor(colorAxis)
	dc.SetLineWidth(2)
	dc.DrawLine(0, sc.AxisY, float64(sc.Width), sc.AxisY)
	dc.Stroke()

	anchorX := make(map[string]float64, len(sc.Anchors))
	for _, a := range sc.Anchors {
		anchorX[a.ClusterID] = a.X
	}
	dc.SetColor(colorSubtle)
	dc.SetLineWidth(1)
	for _, c := range sc.Cards {
		ax, ok := anchorX[c.ClusterID]
		if !ok || c.Fallback {
			continue
		}
		_, y0, _, y1 := c.Bounds()
		cy := y1
		if !c.Above {
			cy = y0
		}
		dc.DrawLine(ax, sc.AxisY, c.X, cy)
		dc.Stroke()
	}

	for _, a := range sc.Anchors {
		dc.SetColor(colorAnchor)
		dc.DrawCircle(a.X, sc.AxisY, 5)
		dc.Fill()
		dc.SetColor(colorStroke)
		dc.DrawCircle(a.X, sc.AxisY, 5)
		dc.Stroke()
	}

	for _, c := range sc.Cards {
		x0, y0, _, _ := c.Bounds()
		dc.SetColor(kindColor(c.Kind))
		dc.DrawRoundedRectangle(x0, y0, c.Width, c.Height, 6)
		dc.Fill()
		dc.SetColor(colorStroke)
		dc.SetLineWidth(1.2)
		dc.DrawRoundedRectangle(x0, y0, c.Width, c.Height, 6)
		dc.Stroke()
		if c.Label != "" {
			dc.SetColor(colorText)
			dc.DrawStringAnchored(c.Label, x0+8, y0+14, 0, 0.5)
		}
	}

	return dc.SavePNG(path)
}

func drawSummarySVG(canvas *svg.SVG, sc scene) {
	s := sc.Summary
	canvas.Text(32, 34, s.Title, fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorText)))
	canvas.Text(32, 54, fmt.Sprintf("window: %s  events: %d  anchors: %d", s.Window, s.EventCount, s.AnchorCount),
		fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorSubtle)))
	canvas.Text(32, 74, fmt.Sprintf("utilization: %.1f%%  degraded: %.0f%%  overflow groups: %d",
		s.Utilization, s.Degradation*100, s.Overflow),
		fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorSubtle)))
}

func drawSummaryPNG(dc *gg.Context, sc scene) {
	s := sc.Summary
	dc.SetColor(colorText)
	dc.DrawStringAnchored(s.Title, 32, 34, 0, 0.5)
	dc.SetColor(colorSubtle)
	dc.DrawStringAnchored(fmt.Sprintf("window: %s  events: %d  anchors: %d", s.Window, s.EventCount, s.AnchorCount), 32, 54, 0, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("utilization: %.1f%%  degraded: %.0f%%  overflow groups: %d",
		s.Utilization, s.Degradation*100, s.Overflow), 32, 74, 0, 0.5)
}

var legendRows = []struct {
	Color color.RGBA
	Label string
}{
	{colorFull, "Full"},
	{colorCompact, "Compact"},
	{colorTitleOnly, "Title only"},
	{colorOverflow, "Overflow (+N)"},
}

func drawLegendSVG(canvas *svg.SVG, sc scene) {
	boxW, boxH := 170, 78
	x := sc.Width - boxW - 20
	y := 10
	canvas.Roundrect(x, y, boxW, boxH, 10, 10,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", css(colorLegendBG), css(colorStroke)))
	for i, row := range legendRows {
		ry := y + 16 + i*16
		canvas.Roundrect(x+12, ry-8, 12, 12, 3, 3,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", css(row.Color), css(colorStroke)))
		canvas.Text(x+30, ry+2, row.Label,
			fmt.Sprintf("fill:%s;font-size:11px;font-family:monospace", css(colorSubtle)))
	}
}

func drawLegendPNG(dc *gg.Context, sc scene) {
	boxW, boxH := 170.0, 78.0
	x := float64(sc.Width) - boxW - 20
	y := 10.0
	dc.SetColor(colorLegendBG)
	dc.DrawRoundedRectangle(x, y, boxW, boxH, 10)
	dc.Fill()
	dc.SetColor(colorStroke)
	dc.DrawRoundedRectangle(x, y, boxW, boxH, 10)
	dc.Stroke()
	for i, row := range legendRows {
		ry := y + 16 + float64(i)*16
		dc.SetColor(row.Color)
		dc.DrawRoundedRectangle(x+12, ry-8, 12, 12, 3)
		dc.Fill()
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(row.Label, x+30, ry, 0, 0.5)
	}
}

// --- helpers -------------------------------------------------------------

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
