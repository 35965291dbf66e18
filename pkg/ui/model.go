// Package ui implements the interactive terminal timeline viewer: pan and
// zoom over the event range, animated fit-all, a telemetry pane, and live
// reload when the event source changes on disk.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/chronochart/internal/datasource"
	"github.com/vanderheijden86/chronochart/pkg/config"
	"github.com/vanderheijden86/chronochart/pkg/debug"
	"github.com/vanderheijden86/chronochart/pkg/layout"
	"github.com/vanderheijden86/chronochart/pkg/metrics"
	"github.com/vanderheijden86/chronochart/pkg/model"
	"github.com/vanderheijden86/chronochart/pkg/timeline"
	"github.com/vanderheijden86/chronochart/pkg/watcher"
)

const (
	// panFraction is how much of the current window one pan step moves.
	panFraction = 0.1
	zoomInStep  = 0.8
	zoomOutStep = 1.25

	fitAnimDuration = 300 * time.Millisecond
	animFrame       = 50 * time.Millisecond

	// Rows reserved above and below the timeline canvas for chrome.
	chromeRows = 3
)

// FileChangedMsg is sent when the watched event source changes on disk.
type FileChangedMsg struct{}

// EventsReloadedMsg carries the result of reloading the event source.
type EventsReloadedMsg struct {
	Events []model.Event
	Err    error
}

// AnimTickMsg drives window animations at the repaint rate.
type AnimTickMsg struct {
	At time.Time
}

// ReadyTimeoutMsg unblocks the UI if the terminal never reports its size.
type ReadyTimeoutMsg struct{}

// WatchFileCmd waits for the next source change and reports it.
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

// ReloadEventsCmd reloads the event source in the background.
func ReloadEventsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		events, err := datasource.LoadEvents(path)
		return EventsReloadedMsg{Events: events, Err: err}
	}
}

func animTickCmd() tea.Cmd {
	return tea.Tick(animFrame, func(t time.Time) tea.Msg {
		return AnimTickMsg{At: t}
	})
}

// ReadyTimeoutCmd sends ReadyTimeoutMsg after 100ms so the viewer does not
// hang on "initializing" when the terminal is slow to report its size
// (tmux, SSH, some emulators).
func ReadyTimeoutCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return ReadyTimeoutMsg{}
	})
}

// Model is the bubbletea model for the timeline viewer.
type Model struct {
	events []model.Event
	path   string

	ctrl *timeline.Controller
	cfg  layout.Config
	res  layout.Result

	width, height int
	ready         bool
	showTelemetry bool
	showHelp      bool

	keys    KeyMap
	help    help.Model
	watcher *watcher.Watcher
	err     error
}

// NewModel creates a viewer over the given events. path is the event source
// used for reloads; w may be nil to disable live reload.
func NewModel(events []model.Event, path string, w *watcher.Watcher) Model {
	return Model{
		events:  events,
		path:    path,
		ctrl:    timeline.NewController(),
		cfg:     cellLayoutConfig(),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		watcher: w,
	}
}

// WithConfig applies user preferences from the config file. Layout geometry
// stays in terminal cells; only grid shape, density and zoom floor carry
// over from the file.
func (m Model) WithConfig(cfg config.Config) Model {
	m.showTelemetry = cfg.UI.ShowTelemetry
	fromFile := layout.FromFileConfig(cfg.Layout)
	m.cfg.SlotsAbove = fromFile.SlotsAbove
	m.cfg.SlotsBelow = fromFile.SlotsBelow
	m.cfg.MaxColumns = fromFile.MaxColumns
	m.cfg.Density = fromFile.Density
	m.ctrl.SetMinWidth(fromFile.MinWindowWidth)
	return m
}

// WithWindow sets the initial view window.
func (m Model) WithWindow(win timeline.Window) Model {
	m.ctrl.SetWindow(win.Start, win.End)
	return m
}

// Stop releases the watcher, if any.
func (m Model) Stop() {
	if m.watcher != nil {
		m.watcher.Stop()
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ReadyTimeoutCmd()}
	if m.watcher != nil {
		cmds = append(cmds, WatchFileCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

func (m *Model) recompute() {
	if !m.ready {
		return
	}
	defer metrics.Timer(metrics.UIRender)()
	vp := timeline.Viewport{
		Width:  float64(m.width),
		Height: float64(m.canvasHeight()),
	}
	m.res = layout.Compute(m.events, m.ctrl.Window(), vp, m.cfg)
}

func (m Model) canvasHeight() int {
	h := m.height - chromeRows
	if m.showTelemetry {
		h -= 7
	}
	if h < 5 {
		h = 5
	}
	return h
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = m.width > 0 && m.height > 0
		m.help.Width = msg.Width
		m.recompute()
		return m, nil

	case ReadyTimeoutMsg:
		if !m.ready && m.width == 0 {
			// Assume a conventional size rather than hang.
			m.width, m.height = 80, 24
			m.ready = true
			m.recompute()
		}
		return m, nil

	case FileChangedMsg:
		debug.Log("ui: source changed, reloading %s", m.path)
		cmds := []tea.Cmd{ReloadEventsCmd(m.path)}
		if m.watcher != nil {
			cmds = append(cmds, WatchFileCmd(m.watcher))
		}
		return m, tea.Batch(cmds...)

	case EventsReloadedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.events = msg.Events
		m.recompute()
		return m, nil

	case AnimTickMsg:
		still := m.ctrl.Tick(msg.At)
		m.recompute()
		if still {
			return m, animTickCmd()
		}
		return m, nil

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.ctrl.Cancel()
			m.ctrl.ZoomAtCursor(zoomInStep, float64(msg.X), float64(m.width))
			m.recompute()
		case tea.MouseButtonWheelDown:
			m.ctrl.Cancel()
			m.ctrl.ZoomAtCursor(zoomOutStep, float64(msg.X), float64(m.width))
			m.recompute()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.watcher != nil {
			m.watcher.Stop()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.PanLeft):
		m.ctrl.Cancel()
		m.ctrl.Nudge(-panFraction * m.ctrl.Window().Width())
		m.recompute()

	case key.Matches(msg, m.keys.PanRight):
		m.ctrl.Cancel()
		m.ctrl.Nudge(panFraction * m.ctrl.Window().Width())
		m.recompute()

	case key.Matches(msg, m.keys.ZoomIn):
		m.ctrl.Cancel()
		m.ctrl.Zoom(zoomInStep)
		m.recompute()

	case key.Matches(msg, m.keys.ZoomOut):
		m.ctrl.Cancel()
		m.ctrl.Zoom(zoomOutStep)
		m.recompute()

	case key.Matches(msg, m.keys.FitAll):
		m.ctrl.AnimateTo(0, 1, fitAnimDuration, time.Now())
		return m, animTickCmd()

	case key.Matches(msg, m.keys.Telemetry):
		m.showTelemetry = !m.showTelemetry
		m.recompute()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing timeline..."
	}

	var b strings.Builder
	b.WriteString(titleBarStyle.Render("chronochart"))
	b.WriteByte('\n')

	b.WriteString(drawTimeline(m.width, m.canvasHeight(), m.events, m.ctrl.Window(), m.res))
	b.WriteByte('\n')

	if m.showTelemetry {
		b.WriteString(m.telemetryView())
		b.WriteByte('\n')
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render("reload failed: " + m.err.Error()))
		b.WriteByte('\n')
	}

	b.WriteString(m.statusView())
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) statusView() string {
	win := m.ctrl.Window()
	parts := []string{
		fmt.Sprintf("window %.1f%%..%.1f%%", win.Start*100, win.End*100),
		fmt.Sprintf("%d events", len(m.events)),
		fmt.Sprintf("%d anchors", len(m.res.Anchors)),
	}
	if m.path != "" {
		parts = append(parts, m.path)
	}
	if m.watcher != nil && m.watcher.IsPolling() {
		parts = append(parts, "polling")
	}
	return statusBarStyle.Render(strings.Join(parts, "  •  "))
}

func (m Model) telemetryView() string {
	tel := m.res.Telemetry
	row := func(label, value string) string {
		return telemetryLabelStyle.Render(label) + " " + telemetryValueStyle.Render(value)
	}
	lines := []string{
		row("capacity   ", fmt.Sprintf("%d/%d cells (%.1f%%)",
			tel.Capacity.UsedCells, tel.Capacity.TotalCells, tel.Capacity.Utilization)),
		row("degradation", fmt.Sprintf("full=%d compact=%d title=%d overflow=%d rate=%.0f%%",
			tel.Degradation.FullCardGroups, tel.Degradation.CompactCardGroups,
			tel.Degradation.TitleOnlyGroups, tel.Degradation.OverflowGroups,
			tel.Degradation.DegradationRate*100)),
		row("dispatch   ", fmt.Sprintf("groups=%d avg=%.1f ev/cluster spread=%.1f%%",
			tel.Dispatch.GroupCount, tel.Dispatch.AvgEventsPerCluster,
			tel.Dispatch.HorizontalSpaceUsage)),
		row("overflow   ", fmt.Sprintf("misses=%d capacity_exceeded=%d",
			tel.Overflow.AllocationMisses, tel.Overflow.CapacityExceeded)),
	}
	return telemetryPaneStyle.Width(m.width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
