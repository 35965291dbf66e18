package datasource

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vanderheijden86/chronochart/pkg/metrics"
	"github.com/vanderheijden86/chronochart/pkg/model"
)

// LoadEvents loads timeline events from path. A file loads directly by
// extension; a directory goes through discovery, picking the freshest valid
// source. An empty path falls back to CC_EVENTS_DIR, then the current
// directory.
func LoadEvents(path string) ([]model.Event, error) {
	defer metrics.Timer(metrics.EventLoad)()

	if path == "" {
		if envDir := os.Getenv(EventsDirEnvVar); envDir != "" {
			path = envDir
		} else {
			var err error
			path, err = os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("no events found at %s: %w", path, err)
	}
	if !info.IsDir() {
		return loadFile(path, info)
	}

	sources, err := DiscoverSources(DiscoveryOptions{
		Dir:                    path,
		ValidateAfterDiscovery: true,
	})
	if err != nil {
		return nil, err
	}
	best, err := SelectBestSource(sources)
	if err != nil {
		return nil, fmt.Errorf("no loadable events in %s: %w", path, err)
	}
	return LoadFromSource(best)
}

func loadFile(path string, info os.FileInfo) ([]model.Event, error) {
	srcType, ok := typeForName(path)
	if !ok {
		return nil, fmt.Errorf("unsupported event file %s (want .json, .yaml or .db)", path)
	}
	return LoadFromSource(Source{
		Type:     srcType,
		Path:     path,
		Priority: priorityFor(srcType),
		ModTime:  info.ModTime(),
		Size:     info.Size(),
	})
}

// LoadFromSource loads events from a specific Source, dispatching on type.
func LoadFromSource(source Source) ([]model.Event, error) {
	switch source.Type {
	case SourceTypeSQLite:
		reader, err := NewSQLiteReader(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite source %s: %w", source.Path, err)
		}
		defer reader.Close()
		return reader.LoadEvents()

	case SourceTypeJSON, SourceTypeYAML:
		f, err := os.Open(source.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", source.Path, err)
		}
		defer f.Close()
		if source.Type == SourceTypeJSON {
			return ParseJSON(f, ParseOptions{})
		}
		return ParseYAML(f, ParseOptions{})

	default:
		return nil, fmt.Errorf("unknown source type: %s", source.Type)
	}
}

// WatchTargets returns the file paths a live-reload watcher should observe
// for the given path: the file itself, or every recognized source in a
// directory.
func WatchTargets(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	sources, err := DiscoverSources(DiscoveryOptions{Dir: path})
	if err != nil {
		return nil, err
	}
	targets := make([]string, 0, len(sources))
	for _, s := range sources {
		targets = append(targets, s.Path)
	}
	if len(targets) == 0 {
		// Watch the directory so newly created sources are picked up.
		targets = append(targets, filepath.Clean(path))
	}
	return targets, nil
}
