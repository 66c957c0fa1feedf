package domain

import (
	"context"
	"time"
)

// DateRange is one candidate day of an event, stored as UTC instants. The
// hour-of-day window of the first range is assumed to repeat on every day.
// swagger:model DateRange
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Event represents a scheduling poll: candidate date ranges in a timezone.
// swagger:model Event
type Event struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Dates     []DateRange `json:"dates"`
	Timezone  string      `json:"timezone"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is set by the service on create.
func NewEvent(title string, dates []DateRange, timezone string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:     title,
		Dates:     dates,
		Timezone:  timezone,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// EventUpdate carries the optional fields of an event update; nil fields are unchanged.
type EventUpdate struct {
	Title    *string
	Dates    []DateRange
	Timezone *string
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
	// DeleteEndedBefore removes events whose latest date range ended at or before cutoff
	// and returns the number of deleted events.
	DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// SummaryQuery selects what the aggregated availability view includes.
type SummaryQuery struct {
	// Timezone is the viewer's timezone; empty means the event timezone.
	Timezone        string
	IncludeIfNeeded bool
	// ResponseIDs restricts aggregation to these respondents; empty means everyone.
	ResponseIDs []string
	BestOnly    bool
}

// EventService defines the business logic for events and their aggregated availability.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	UpdateEvent(ctx context.Context, eventID string, update EventUpdate) (*Event, error)
	ListResponses(ctx context.Context, eventID string) ([]*Response, error)
	ListAvailability(ctx context.Context, eventID string) ([]*Interval, error)
	GetGrid(ctx context.Context, eventID, timezone string) (*GridView, error)
	Summarize(ctx context.Context, eventID string, q SummaryQuery) (*Summary, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
