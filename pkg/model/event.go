// Package model defines the core domain types for chronochart.
//
// An Event is an immutable record authored by the user; the layout engine
// only ever reads it. Validation of untrusted input (unparseable dates,
// empty IDs) happens at the datasource boundary, never inside layout.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Event is a single dated entry on the timeline.
type Event struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Date        time.Time  `json:"date" yaml:"date"`
	EndDate     *time.Time `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	Owner       string     `json:"owner,omitempty" yaml:"owner,omitempty"`
}

// Validate checks the invariants the layout engine relies on.
func (e Event) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("event has empty id")
	}
	if e.Date.IsZero() {
		return fmt.Errorf("event %s has no date", e.ID)
	}
	if e.EndDate != nil && e.EndDate.Before(e.Date) {
		return fmt.Errorf("event %s ends before it starts", e.ID)
	}
	return nil
}

// Duration returns the span of a ranged event, or zero for point events.
func (e Event) Duration() time.Duration {
	if e.EndDate == nil {
		return 0
	}
	return e.EndDate.Sub(e.Date)
}

// TimeRange is the inclusive [Min, Max] extent of a set of events.
type TimeRange struct {
	Min time.Time
	Max time.Time
}

// Span returns the range width. A single-instant range has zero span.
func (r TimeRange) Span() time.Duration {
	return r.Max.Sub(r.Min)
}

// IsZero reports whether the range is unset.
func (r TimeRange) IsZero() bool {
	return r.Min.IsZero() && r.Max.IsZero()
}

// RangeOf computes the time extent covered by events, including end dates.
// Returns a zero TimeRange for an empty slice.
func RangeOf(events []Event) TimeRange {
	var r TimeRange
	for _, ev := range events {
		if ev.Date.IsZero() {
			continue
		}
		if r.IsZero() {
			r.Min, r.Max = ev.Date, ev.Date
		}
		if ev.Date.Before(r.Min) {
			r.Min = ev.Date
		}
		if ev.Date.After(r.Max) {
			r.Max = ev.Date
		}
		if ev.EndDate != nil && ev.EndDate.After(r.Max) {
			r.Max = *ev.EndDate
		}
	}
	return r
}

// Ratio maps t onto [0,1] within the range. Times outside the range clamp
// to the nearest bound; a zero-span range maps everything to 0.5 so a
// single-event timeline still renders centered.
func (r TimeRange) Ratio(t time.Time) float64 {
	span := r.Span()
	if span <= 0 {
		return 0.5
	}
	v := float64(t.Sub(r.Min)) / float64(span)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
