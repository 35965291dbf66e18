// Package datasource provides multi-source event discovery and loading for
// chronochart. It discovers, validates, and selects the freshest valid source
// from SQLite databases, JSON files, and YAML files.
package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/chronochart/pkg/debug"
)

// EventsDirEnvVar overrides the directory searched for event sources.
const EventsDirEnvVar = "CC_EVENTS_DIR"

// SourceType identifies the type of event source.
type SourceType string

const (
	// SourceTypeSQLite is a SQLite database (events.db)
	SourceTypeSQLite SourceType = "sqlite"
	// SourceTypeJSON is a JSON event file
	SourceTypeJSON SourceType = "json"
	// SourceTypeYAML is a YAML event file
	SourceTypeYAML SourceType = "yaml"
)

// Priority values for source types (higher = more authoritative).
const (
	PrioritySQLite = 100
	PriorityJSON   = 80
	PriorityYAML   = 50
)

// Source represents a potential source of timeline events.
type Source struct {
	// Type identifies the source type
	Type SourceType `json:"type"`
	// Path is the absolute path to the source file
	Path string `json:"path"`
	// Priority determines preference when timestamps are equal (higher = preferred)
	Priority int `json:"priority"`
	// ModTime is the last modification time of the source
	ModTime time.Time `json:"mod_time"`
	// Valid indicates whether the source passed validation
	Valid bool `json:"valid"`
	// ValidationError describes why validation failed (if Valid is false)
	ValidationError string `json:"validation_error,omitempty"`
	// EventCount is the number of events in the source (set during validation)
	EventCount int `json:"event_count"`
	// Size is the file size in bytes
	Size int64 `json:"size"`
}

// String returns a human-readable description of the source.
func (s Source) String() string {
	status := "valid"
	if !s.Valid {
		status = fmt.Sprintf("invalid: %s", s.ValidationError)
	}
	return fmt.Sprintf("%s (%s, priority=%d, mod=%s, events=%d, %s)",
		s.Path, s.Type, s.Priority, s.ModTime.Format(time.RFC3339), s.EventCount, status)
}

// typeForName maps a filename to its source type by extension.
func typeForName(name string) (SourceType, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".db", ".sqlite", ".sqlite3":
		return SourceTypeSQLite, true
	case ".json":
		return SourceTypeJSON, true
	case ".yaml", ".yml":
		return SourceTypeYAML, true
	}
	return "", false
}

func priorityFor(t SourceType) int {
	switch t {
	case SourceTypeSQLite:
		return PrioritySQLite
	case SourceTypeJSON:
		return PriorityJSON
	default:
		return PriorityYAML
	}
}

// DiscoveryOptions configures source discovery behavior.
type DiscoveryOptions struct {
	// Dir is the directory to search (optional, CC_EVENTS_DIR or cwd if empty)
	Dir string
	// ValidateAfterDiscovery runs validation on each discovered source
	ValidateAfterDiscovery bool
	// IncludeInvalid includes sources that failed validation in results
	IncludeInvalid bool
}

// DiscoverSources finds all potential event sources in the given directory.
// Results are sorted freshest first, priority breaking ties.
func DiscoverSources(opts DiscoveryOptions) ([]Source, error) {
	dir := opts.Dir
	if dir == "" {
		if envDir := os.Getenv(EventsDirEnvVar); envDir != "" {
			dir = envDir
		} else {
			var err error
			dir, err = os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
		}
	}
	debug.Log("datasource: discovering sources in %s", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read events directory: %w", err)
	}

	var sources []Source
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()

		// Skip backups and merge artifacts
		if strings.Contains(name, ".backup") || strings.Contains(name, ".orig") {
			continue
		}

		srcType, ok := typeForName(name)
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		sources = append(sources, Source{
			Type:     srcType,
			Path:     filepath.Join(dir, name),
			Priority: priorityFor(srcType),
			ModTime:  info.ModTime(),
			Size:     info.Size(),
		})
	}

	if opts.ValidateAfterDiscovery {
		if err := ValidateSources(sources); err != nil {
			return nil, err
		}
		if !opts.IncludeInvalid {
			valid := sources[:0]
			for _, s := range sources {
				if s.Valid {
					valid = append(valid, s)
				}
			}
			sources = valid
		}
	}

	sort.Slice(sources, func(i, j int) bool {
		if sources[i].ModTime.Equal(sources[j].ModTime) {
			return sources[i].Priority > sources[j].Priority
		}
		return sources[i].ModTime.After(sources[j].ModTime)
	})

	debug.Log("datasource: discovered %d sources", len(sources))
	return sources, nil
}

// ValidateSources validates all sources concurrently, setting Valid,
// ValidationError and EventCount on each in place.
func ValidateSources(sources []Source) error {
	var g errgroup.Group
	g.SetLimit(4)
	for i := range sources {
		s := &sources[i]
		g.Go(func() error {
			ValidateSource(s)
			return nil
		})
	}
	return g.Wait()
}

// ValidateSource loads the source once to verify it parses and counts its
// events. Failure marks the source invalid rather than returning an error.
func ValidateSource(s *Source) {
	events, err := LoadFromSource(*s)
	if err != nil {
		s.Valid = false
		s.ValidationError = err.Error()
		return
	}
	s.Valid = true
	s.ValidationError = ""
	s.EventCount = len(events)
}

// SelectBestSource returns the freshest valid source, using priority as a
// tiebreaker for equal timestamps.
func SelectBestSource(sources []Source) (Source, error) {
	var best *Source
	for i := range sources {
		s := &sources[i]
		if !s.Valid {
			continue
		}
		if best == nil ||
			s.ModTime.After(best.ModTime) ||
			(s.ModTime.Equal(best.ModTime) && s.Priority > best.Priority) {
			best = s
		}
	}
	if best == nil {
		return Source{}, fmt.Errorf("no valid event sources")
	}
	return *best, nil
}
