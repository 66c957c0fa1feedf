package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"strings"
	"time"

	"meetgrid/internal/availability"
	"meetgrid/internal/domain"
)

const (
	minTitleLength = 4
	maxTitleLength = 100
)

type eventService struct {
	eventRepo        domain.EventRepository
	responseRepo     domain.ResponseRepository
	availabilityRepo domain.AvailabilityRepository
	retention        time.Duration
	contextTimeout   time.Duration
}

// NewEventService wires the event use cases. retention is how long an event
// is kept after its last date range ends.
func NewEventService(eventRepo domain.EventRepository,
	responseRepo domain.ResponseRepository,
	availabilityRepo domain.AvailabilityRepository,
	retention time.Duration,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:        eventRepo,
		responseRepo:     responseRepo,
		availabilityRepo: availabilityRepo,
		retention:        retention,
		contextTimeout:   timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := normalizeEvent(event); err != nil {
		return err
	}
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt

	// IDs are random; retry the rare collision instead of surfacing it.
	for attempt := 0; ; attempt++ {
		id, err := generateEventID()
		if err != nil {
			return fmt.Errorf("generate event id: %w", err)
		}
		event.ID = id
		err = s.eventRepo.Create(ctx, event)
		if errors.Is(err, domain.ErrConflict) && attempt < 2 {
			continue
		}
		return err
	}
}

const eventIDLength = 10

var eventIDAlphabet = []rune("abcdefghijklmnopqrstuvwxyz0123456789")

func generateEventID() (string, error) {
	b := make([]rune, eventIDLength)
	max := big.NewInt(int64(len(eventIDAlphabet)))
	for i := 0; i < eventIDLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = eventIDAlphabet[n.Int64()]
	}
	return string(b), nil
}

// normalizeEvent trims and validates an event and sorts its ranges newest first.
func normalizeEvent(event *domain.Event) error {
	event.Title = strings.TrimSpace(event.Title)
	if n := len([]rune(event.Title)); n < minTitleLength || n > maxTitleLength {
		return fmt.Errorf("%w: title must be %d to %d characters", domain.ErrInvalidInput, minTitleLength, maxTitleLength)
	}
	if len(event.Dates) == 0 {
		return fmt.Errorf("%w: at least one date range is required", domain.ErrInvalidInput)
	}
	for i, d := range event.Dates {
		if !d.End.After(d.Start) {
			return fmt.Errorf("%w: date range %d must end after it starts", domain.ErrInvalidInput, i)
		}
		event.Dates[i] = domain.DateRange{Start: d.Start.UTC(), End: d.End.UTC()}
	}
	if _, err := availability.LoadLocation(event.Timezone); err != nil {
		return err
	}
	slices.SortStableFunc(event.Dates, func(a, b domain.DateRange) int {
		return b.Start.Compare(a.Start)
	})
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.GetByID(ctx, eventID)
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID string, update domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if update.Title != nil {
		event.Title = *update.Title
	}
	if update.Dates != nil {
		event.Dates = update.Dates
	}
	if update.Timezone != nil {
		event.Timezone = *update.Timezone
	}
	if err := normalizeEvent(event); err != nil {
		return nil, err
	}
	event.UpdatedAt = time.Now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListResponses(ctx context.Context, eventID string) ([]*domain.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.responseRepo.ListByEventID(ctx, eventID)
}

func (s *eventService) ListAvailability(ctx context.Context, eventID string) ([]*domain.Interval, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.availabilityRepo.ListByEventID(ctx, eventID)
}

func (s *eventService) GetGrid(ctx context.Context, eventID, timezone string) (*domain.GridView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	g, err := gridOf(event, timezone)
	if err != nil {
		return nil, err
	}
	view := g.Describe()
	return &view, nil
}

// gridOf lays out event in timezone, or in the event's own timezone when empty.
func gridOf(event *domain.Event, timezone string) (*availability.Grid, error) {
	if timezone == "" {
		timezone = event.Timezone
	}
	return availability.NewGrid(event.Dates, timezone)
}

func (s *eventService) Summarize(ctx context.Context, eventID string, q domain.SummaryQuery) (*domain.Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	g, err := gridOf(event, q.Timezone)
	if err != nil {
		return nil, err
	}
	responses, err := s.responseRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	intervals, err := s.availabilityRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}

	agg := g.Aggregate(intervals, availability.AggregateOptions{
		IncludeIfNeeded: q.IncludeIfNeeded,
		ResponseIDs:     q.ResponseIDs,
		BestOnly:        q.BestOnly,
	})

	summary := &domain.Summary{
		Grid:     g.Describe(),
		MaxCount: agg.MaxCount,
		Skipped:  agg.Skipped,
		Names:    make(map[string]string, len(responses)),
		Blocks:   make([]domain.SummaryBlock, 0, len(agg.Blocks)),
	}
	for _, r := range responses {
		if len(q.ResponseIDs) > 0 && !slices.Contains(q.ResponseIDs, r.ID) {
			continue
		}
		summary.Names[r.ID] = r.Name
		summary.Respondents++
	}
	for _, b := range agg.Blocks {
		summary.Blocks = append(summary.Blocks, domain.SummaryBlock{
			Day:            b.Day,
			DayIndex:       b.DayIndex,
			StartSlot:      g.SlotLabel(b.StartSlot),
			EndSlot:        g.SlotLabel(b.EndSlot),
			StartSlotIndex: b.StartSlot,
			EndSlotIndex:   b.EndSlot,
			Start:          b.Start,
			End:            b.End,
			Count:          b.Count,
			Intensity:      availability.Intensity(b.Count, agg.MaxCount),
			ResponseIDs:    b.ResponseIDs,
		})
	}
	return summary, nil
}

func (s *eventService) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	n, err := s.eventRepo.DeleteEndedBefore(ctx, now.Add(-s.retention))
	if err != nil {
		return 0, fmt.Errorf("delete expired events: %w", err)
	}
	return n, nil
}
