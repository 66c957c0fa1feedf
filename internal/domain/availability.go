package domain

import (
	"context"
	"time"
)

// AvailabilityKind classifies a marked interval. The zero value means "not marked".
type AvailabilityKind string

const (
	KindAvailable AvailabilityKind = "available"
	KindIfNeeded  AvailabilityKind = "if_needed"
)

// Kinds lists the availability kinds in the order blocks are emitted.
var Kinds = []AvailabilityKind{KindAvailable, KindIfNeeded}

// Valid reports whether k is one of the known kinds.
func (k AvailabilityKind) Valid() bool {
	return k == KindAvailable || k == KindIfNeeded
}

// Inverse returns the other kind. Unknown kinds map to KindAvailable.
func (k AvailabilityKind) Inverse() AvailabilityKind {
	if k == KindAvailable {
		return KindIfNeeded
	}
	return KindAvailable
}

// Interval is one stored availability range of a response. Start == End is the
// full-day marker: the whole usable-hour window of the grid day containing Start.
// swagger:model Interval
type Interval struct {
	ID         string           `json:"id"`
	ResponseID string           `json:"response_id"`
	Start      time.Time        `json:"start"`
	End        time.Time        `json:"end"`
	Kind       AvailabilityKind `json:"type"`
}

// IsFullDay reports whether the interval is a full-day marker.
func (i *Interval) IsFullDay() bool {
	return i.Start.Equal(i.End)
}

// AvailabilityRepository defines the interface for availability storage
type AvailabilityRepository interface {
	CreateMany(ctx context.Context, intervals []*Interval) error
	// Replace deletes every interval of the response and inserts the given set atomically.
	Replace(ctx context.Context, responseID string, intervals []*Interval) error
	ListByResponseID(ctx context.Context, responseID string) ([]*Interval, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Interval, error)
}

// Cell addresses one grid cell by day and slot index.
type Cell struct {
	Day  int `json:"day"`
	Slot int `json:"slot"`
}

// RegionEdit is a rectangular edit over the grid, replayed as a single drag gesture.
type RegionEdit struct {
	// Timezone the grid is laid out in; empty means the event timezone.
	Timezone string
	From     Cell
	To       Cell
	Kind     AvailabilityKind
	// Invert applies the opposite of Kind, as a modifier-held drag does.
	Invert bool
}

// GridView describes the editable grid of an event in one timezone.
// swagger:model GridView
type GridView struct {
	Timezone string   `json:"timezone"`
	MinTime  int      `json:"min_time"`
	MaxTime  int      `json:"max_time"`
	Days     []string `json:"days"`
	Slots    []string `json:"slots"`
}

// SummaryBlock is a maximal run of slots on one day sharing the same participant set.
// swagger:model SummaryBlock
type SummaryBlock struct {
	Day            string    `json:"day"`
	DayIndex       int       `json:"day_index"`
	StartSlot      string    `json:"start_slot"`
	EndSlot        string    `json:"end_slot"`
	StartSlotIndex int       `json:"start_slot_index"`
	EndSlotIndex   int       `json:"end_slot_index"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Count          int       `json:"count"`
	Intensity      float64   `json:"intensity"`
	ResponseIDs    []string  `json:"response_ids"`
}

// Summary is the aggregated availability of an event.
// swagger:model Summary
type Summary struct {
	Grid        GridView          `json:"grid"`
	MaxCount    int               `json:"max_count"`
	Respondents int               `json:"respondents"`
	Skipped     int               `json:"skipped"`
	Names       map[string]string `json:"names"`
	Blocks      []SummaryBlock    `json:"blocks"`
}
