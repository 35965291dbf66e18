package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/chronochart/pkg/layout"
	"github.com/vanderheijden86/chronochart/pkg/model"
	"github.com/vanderheijden86/chronochart/pkg/timeline"
)

// cellLayoutConfig scales the layout geometry to terminal cells: one pixel
// is one character cell.
func cellLayoutConfig() layout.Config {
	cfg := layout.DefaultConfig()
	cfg.SlotWidthPx = 30
	cfg.MinGapPx = 3
	cfg.CardWidthPx = 28
	cfg.CardGapPx = 1
	cfg.FullHeightPx = 5
	cfg.CompactHeightPx = 4
	cfg.TitleOnlyHeightPx = 3
	cfg.OverflowHeightPx = 3
	cfg.AxisClearancePx = 1
	cfg.LaneOffsetPx = 2
	return cfg
}

// canvas is a styled character grid the timeline view is composed onto.
type canvas struct {
	w, h   int
	runes  [][]rune
	styles [][]*lipgloss.Style
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h}
	c.runes = make([][]rune, h)
	c.styles = make([][]*lipgloss.Style, h)
	for y := 0; y < h; y++ {
		c.runes[y] = make([]rune, w)
		c.styles[y] = make([]*lipgloss.Style, w)
		for x := 0; x < w; x++ {
			c.runes[y][x] = ' '
		}
	}
	return c
}

func (c *canvas) set(x, y int, r rune, st *lipgloss.Style) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	c.runes[y][x] = r
	c.styles[y][x] = st
}

func (c *canvas) text(x, y int, s string, maxWidth int, st *lipgloss.Style) {
	s = runewidth.Truncate(s, maxWidth, "…")
	cx := x
	for _, r := range s {
		c.set(cx, y, r, st)
		cx += runewidth.RuneWidth(r)
	}
}

// box draws a bordered rectangle. Interiors are cleared so boxes stack
// predictably over the axis and each other.
func (c *canvas) box(x, y, w, h int, st *lipgloss.Style) {
	if w < 2 || h < 2 {
		return
	}
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			var r rune
			switch {
			case yy == y && xx == x:
				r = '╭'
			case yy == y && xx == x+w-1:
				r = '╮'
			case yy == y+h-1 && xx == x:
				r = '╰'
			case yy == y+h-1 && xx == x+w-1:
				r = '╯'
			case yy == y || yy == y+h-1:
				r = '─'
			case xx == x || xx == x+w-1:
				r = '│'
			default:
				r = ' '
			}
			c.set(xx, yy, r, st)
		}
	}
}

// render flattens the grid into a string, batching runs with a common style.
func (c *canvas) render() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		x := 0
		for x < c.w {
			st := c.styles[y][x]
			run := x
			for run < c.w && c.styles[y][run] == st {
				run++
			}
			segment := string(c.runes[y][x:run])
			if st != nil {
				segment = st.Render(segment)
			}
			b.WriteString(segment)
			x = run
		}
		if y < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func cardStyle(p layout.Placement) *lipgloss.Style {
	if p.Fallback {
		return &fallbackStyle
	}
	switch p.Kind {
	case layout.KindFull:
		return &cardFullStyle
	case layout.KindCompact:
		return &cardCompactStyle
	case layout.KindTitleOnly:
		return &cardTitleOnlyStyle
	default:
		return &cardOverflowStyle
	}
}

// drawTimeline composes the computed layout onto a fresh canvas.
func drawTimeline(width, height int, events []model.Event, win timeline.Window,
	res layout.Result) string {

	c := newCanvas(width, height)
	axisY := height / 2

	for x := 0; x < width; x++ {
		c.set(x, axisY, '─', &axisStyle)
	}

	// Window edge dates label the axis ends.
	if r := model.RangeOf(events); !r.IsZero() && r.Span() > 0 {
		span := r.Span()
		left := r.Min.Add(time.Duration(win.Start * float64(span)))
		right := r.Min.Add(time.Duration(win.End * float64(span)))
		c.text(1, axisY, " "+left.Format("2006-01-02")+" ", 14, &axisLabel)
		rightLabel := " " + right.Format("2006-01-02") + " "
		c.text(width-runewidth.StringWidth(rightLabel)-1, axisY, rightLabel, 14, &axisLabel)
	}

	titleByID := make(map[string]model.Event, len(events))
	for _, ev := range events {
		titleByID[ev.ID] = ev
	}

	for _, p := range res.Placements {
		drawCard(c, p, titleByID)
	}

	for _, a := range res.Anchors {
		c.set(int(a.X), axisY, '◆', &anchorStyle)
	}

	return c.render()
}

func drawCard(c *canvas, p layout.Placement, byID map[string]model.Event) {
	x0, y0, _, _ := p.Bounds()
	x, y := int(x0), int(y0)
	w, h := int(p.Width), int(p.Height)
	st := cardStyle(p)
	c.box(x, y, w, h, st)

	inner := w - 4
	if inner < 1 {
		return
	}

	if p.Kind == layout.KindOverflow {
		c.text(x+2, y+h/2, p.Badge()+" more", inner, st)
		return
	}
	if len(p.EventIDs) == 0 {
		return
	}
	ev := byID[p.EventIDs[0]]

	title := ev.Title
	if title == "" {
		title = ev.ID
	}
	c.text(x+2, y+1, title, inner, nil)

	if p.Kind == layout.KindFull || p.Kind == layout.KindCompact {
		date := ev.Date.Format("2006-01-02")
		if ev.EndDate != nil {
			date += " → " + ev.EndDate.Format("2006-01-02")
		}
		c.text(x+2, y+2, date, inner, &axisLabel)
	}
	if p.Kind == layout.KindFull && h >= 5 {
		detail := ev.Description
		if detail == "" {
			detail = ev.Owner
		}
		if detail != "" {
			c.text(x+2, y+3, detail, inner, &axisLabel)
		}
	}
}
