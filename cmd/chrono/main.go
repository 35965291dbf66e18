package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vanderheijden86/chronochart/internal/datasource"
	"github.com/vanderheijden86/chronochart/pkg/config"
	"github.com/vanderheijden86/chronochart/pkg/debug"
	"github.com/vanderheijden86/chronochart/pkg/export"
	"github.com/vanderheijden86/chronochart/pkg/layout"
	"github.com/vanderheijden86/chronochart/pkg/model"
	"github.com/vanderheijden86/chronochart/pkg/timeline"
	"github.com/vanderheijden86/chronochart/pkg/ui"
	"github.com/vanderheijden86/chronochart/pkg/version"
	"github.com/vanderheijden86/chronochart/pkg/watcher"
)

// Snapshot exports render at a fixed web-like viewport so the output is
// independent of the terminal the command runs in.
const (
	exportWidth  = 1600.0
	exportHeight = 900.0
	exportMargin = 60.0
)

func main() {
	cpuProfile := flag.String("cpu-profile", "", "Write CPU profile to file")
	helpFlag := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	eventsPath := flag.String("events", "", "Event source: a .json/.yaml/.db file or a directory of sources")
	exportPath := flag.String("export", "", "Render a snapshot to this path instead of starting the TUI")
	exportFormat := flag.String("format", "", "Snapshot format: svg or png (default: inferred from --export extension)")
	title := flag.String("title", "", "Title rendered on exported snapshots")
	windowFlag := flag.String("window", "", "Initial view window as start:end fractions, e.g. 0.25:0.75")
	flag.Parse()

	// CPU profiling support
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *helpFlag {
		fmt.Println("Usage: chrono [options]")
		fmt.Println("\nAn interactive timeline viewer with snapshot export.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("chrono %s\n", version.Version)
		os.Exit(0)
	}

	// Load user config for default paths and layout tunables
	appCfg, cfgErr := config.Load()
	if cfgErr != nil {
		// Non-fatal: continue with defaults
		appCfg = config.DefaultConfig()
	}

	srcPath := *eventsPath
	if srcPath == "" {
		srcPath = appCfg.EventsPath
	}
	if srcPath == "" {
		if envDir := os.Getenv(datasource.EventsDirEnvVar); envDir != "" {
			srcPath = envDir
		} else {
			srcPath = "."
		}
	}

	win := timeline.Full
	if *windowFlag != "" {
		parsed, err := parseWindow(*windowFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid --window: %v\n", err)
			os.Exit(2)
		}
		win = parsed
	}

	events, err := datasource.LoadEvents(srcPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading events: %v\n", err)
		fmt.Fprintln(os.Stderr, "Point --events (or CC_EVENTS_DIR) at an event file or directory.")
		os.Exit(1)
	}
	if len(events) == 0 {
		fmt.Println("No events found in the source.")
		os.Exit(0)
	}

	if *exportPath != "" {
		if err := exportSnapshot(*exportPath, *exportFormat, *title, events, win, appCfg); err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote snapshot for %d events to %s\n", len(events), *exportPath)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Standard output is not a terminal. Use --export to render a snapshot instead.")
		os.Exit(1)
	}

	// Live reload watches the selected source file, falling back silently
	// to a static view if the watcher cannot start.
	var w *watcher.Watcher
	watchPath := srcPath
	if targets, err := datasource.WatchTargets(srcPath); err == nil && len(targets) > 0 {
		watchPath = targets[0]
	}
	if fw, err := watcher.NewWatcher(watchPath); err == nil {
		if err := fw.Start(); err == nil {
			w = fw
		} else {
			debug.Log("main: watcher start failed: %v", err)
		}
	} else {
		debug.Log("main: watcher setup failed: %v", err)
	}

	m := ui.NewModel(events, watchPath, w).WithConfig(appCfg).WithWindow(win)
	defer m.Stop()

	if err := runTUIProgram(m); err != nil {
		fmt.Printf("Error running timeline viewer: %v\n", err)
		os.Exit(1)
	}
}

func exportSnapshot(path, format, title string, events []model.Event, win timeline.Window, appCfg config.Config) error {
	vp := timeline.Viewport{
		Width:       exportWidth,
		Height:      exportHeight,
		LeftMargin:  exportMargin,
		RightMargin: exportMargin,
	}
	cfg := layout.FromFileConfig(appCfg.Layout)
	res := layout.Compute(events, win, vp, cfg)
	return export.SaveSnapshot(export.SnapshotOptions{
		Path:     path,
		Format:   format,
		Title:    title,
		Events:   events,
		Result:   res,
		Window:   win,
		Viewport: vp,
	})
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set CC_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("CC_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
			return nil
		}
	}
	return err
}

// parseWindow parses "start:end" (or "start,end") fractions of the full
// timeline range.
func parseWindow(s string) (timeline.Window, error) {
	sep := ":"
	if !strings.Contains(s, sep) {
		sep = ","
	}
	parts := strings.SplitN(s, sep, 2)
	if len(parts) != 2 {
		return timeline.Window{}, fmt.Errorf("want start%send, got %q", sep, s)
	}
	start, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return timeline.Window{}, fmt.Errorf("bad start %q: %w", parts[0], err)
	}
	end, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return timeline.Window{}, fmt.Errorf("bad end %q: %w", parts[1], err)
	}
	if start < 0 || end > 1 || start >= end {
		return timeline.Window{}, fmt.Errorf("window %v..%v outside 0..1 or inverted", start, end)
	}
	return timeline.Window{Start: start, End: end}, nil
}
