package datasource

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/chronochart/pkg/model"
)

// dateLayouts are tried in order when parsing event timestamps. Authors
// write anything from full RFC3339 down to a bare year.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"Jan 2, 2006",
	"2006",
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// rawEvent is the on-disk shape of an event. Dates stay strings until
// parseDate has had a chance at the various layouts authors use.
type rawEvent struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Date        string `json:"date" yaml:"date"`
	EndDate     string `json:"end_date" yaml:"end_date"`
	CreatedAt   string `json:"created_at" yaml:"created_at"`
	UpdatedAt   string `json:"updated_at" yaml:"updated_at"`
	Owner       string `json:"owner" yaml:"owner"`
}

func (r rawEvent) toEvent() (model.Event, error) {
	ev := model.Event{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Owner:       r.Owner,
	}
	var err error
	if ev.Date, err = parseDate(r.Date); err != nil {
		return ev, fmt.Errorf("event %s: %w", r.ID, err)
	}
	if r.EndDate != "" {
		end, err := parseDate(r.EndDate)
		if err != nil {
			return ev, fmt.Errorf("event %s end date: %w", r.ID, err)
		}
		ev.EndDate = &end
	}
	if r.CreatedAt != "" {
		if ev.CreatedAt, err = parseDate(r.CreatedAt); err != nil {
			return ev, fmt.Errorf("event %s created_at: %w", r.ID, err)
		}
	}
	if r.UpdatedAt != "" {
		if ev.UpdatedAt, err = parseDate(r.UpdatedAt); err != nil {
			return ev, fmt.Errorf("event %s updated_at: %w", r.ID, err)
		}
	}
	return ev, nil
}

// eventDocument is the wrapped file form: {"events": [...]}. Bare arrays
// are also accepted.
type eventDocument struct {
	Events []rawEvent `json:"events" yaml:"events"`
}

// ParseOptions configures event decoding.
type ParseOptions struct {
	// WarningHandler is called with warning messages (e.g. an event with an
	// unparseable date). If nil, warnings are printed to os.Stderr.
	WarningHandler func(string)
}

func (o ParseOptions) warn() func(string) {
	if o.WarningHandler != nil {
		return o.WarningHandler
	}
	return func(msg string) {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", msg)
	}
}

// ParseJSON decodes events from JSON content, accepting either a bare array
// of events or a document with a top-level "events" key. Malformed events
// are skipped with a warning; a malformed document is an error.
func ParseJSON(r io.Reader, opts ParseOptions) ([]model.Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading events: %w", err)
	}
	data = stripBOM(data)

	var raws []rawEvent
	if err := json.Unmarshal(data, &raws); err != nil {
		var doc eventDocument
		if docErr := json.Unmarshal(data, &doc); docErr != nil {
			return nil, fmt.Errorf("invalid events JSON: %w", err)
		}
		raws = doc.Events
	}
	return convert(raws, opts)
}

// ParseYAML decodes events from YAML content. Like ParseJSON it accepts a
// bare sequence or an "events" document.
func ParseYAML(r io.Reader, opts ParseOptions) ([]model.Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading events: %w", err)
	}

	var raws []rawEvent
	if err := yaml.Unmarshal(data, &raws); err != nil {
		var doc eventDocument
		if docErr := yaml.Unmarshal(data, &doc); docErr != nil {
			return nil, fmt.Errorf("invalid events YAML: %w", err)
		}
		raws = doc.Events
	}
	return convert(raws, opts)
}

// convert turns raw records into validated events, skipping bad ones with a
// warning. Output is sorted chronologically, ID breaking ties, so loading is
// deterministic regardless of authoring order.
func convert(raws []rawEvent, opts ParseOptions) ([]model.Event, error) {
	warn := opts.warn()
	events := make([]model.Event, 0, len(raws))
	for i, raw := range raws {
		ev, err := raw.toEvent()
		if err != nil {
			warn(fmt.Sprintf("skipping event %d: %v", i, err))
			continue
		}
		if err := ev.Validate(); err != nil {
			warn(fmt.Sprintf("skipping invalid event %d: %v", i, err))
			continue
		}
		events = append(events, ev)
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].Date.Equal(events[j].Date) {
			return events[i].ID < events[j].ID
		}
		return events[i].Date.Before(events[j].Date)
	})
	return events, nil
}

// stripBOM removes the UTF-8 Byte Order Mark if present.
func stripBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}
