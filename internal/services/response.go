package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"meetgrid/internal/availability"
	"meetgrid/internal/domain"
)

const maxNameLength = 30

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type responseService struct {
	eventRepo        domain.EventRepository
	responseRepo     domain.ResponseRepository
	availabilityRepo domain.AvailabilityRepository
	tokens           domain.EditTokenIssuer
	contextTimeout   time.Duration
}

func NewResponseService(eventRepo domain.EventRepository,
	responseRepo domain.ResponseRepository,
	availabilityRepo domain.AvailabilityRepository,
	tokens domain.EditTokenIssuer,
	timeout time.Duration,
) domain.ResponseService {
	return &responseService{
		eventRepo:        eventRepo,
		responseRepo:     responseRepo,
		availabilityRepo: availabilityRepo,
		tokens:           tokens,
		contextTimeout:   timeout,
	}
}

func normalizeResponse(r *domain.Response) error {
	r.Name = strings.TrimSpace(r.Name)
	if n := len([]rune(r.Name)); n < 1 || n > maxNameLength {
		return fmt.Errorf("%w: name must be 1 to %d characters", domain.ErrInvalidInput, maxNameLength)
	}
	if r.Email != nil {
		email := strings.TrimSpace(*r.Email)
		if email == "" {
			r.Email = nil
			return nil
		}
		if !emailPattern.MatchString(email) {
			return fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
		}
		r.Email = &email
	}
	return nil
}

func (s *responseService) CreateResponse(ctx context.Context, response *domain.Response) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := normalizeResponse(response); err != nil {
		return "", err
	}
	if _, err := s.eventRepo.GetByID(ctx, response.EventID); err != nil {
		return "", err
	}
	response.ID = uuid.NewString()
	response.CreatedAt = time.Now()
	response.UpdatedAt = response.CreatedAt
	if err := s.responseRepo.Create(ctx, response); err != nil {
		return "", err
	}
	token, err := s.tokens.Issue(response.ID, response.EventID)
	if err != nil {
		return "", fmt.Errorf("issue edit token: %w", err)
	}
	return token, nil
}

func (s *responseService) GetResponse(ctx context.Context, responseID string) (*domain.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.responseRepo.GetByID(ctx, responseID)
}

func (s *responseService) UpdateResponse(ctx context.Context, responseID string, update domain.ResponseUpdate) (*domain.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	response, err := s.responseRepo.GetByID(ctx, responseID)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		response.Name = *update.Name
	}
	if update.Email != nil {
		response.Email = update.Email
	}
	if err := normalizeResponse(response); err != nil {
		return nil, err
	}
	response.UpdatedAt = time.Now()
	if err := s.responseRepo.Update(ctx, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (s *responseService) DeleteResponse(ctx context.Context, responseID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.responseRepo.Delete(ctx, responseID)
}

// validateIntervals checks the raw write rules: non-empty, end not before
// start and a known kind.
func validateIntervals(intervals []*domain.Interval) error {
	if len(intervals) == 0 {
		return fmt.Errorf("%w: at least one interval is required", domain.ErrInvalidInput)
	}
	for i, iv := range intervals {
		if iv == nil {
			return fmt.Errorf("%w: interval %d is empty", domain.ErrInvalidInput, i)
		}
		if iv.End.Before(iv.Start) {
			return fmt.Errorf("%w: interval %d ends before it starts", domain.ErrInvalidInput, i)
		}
		if !iv.Kind.Valid() {
			return fmt.Errorf("%w: interval %d has unknown type %q", domain.ErrInvalidInput, i, iv.Kind)
		}
	}
	return nil
}

func assignIDs(responseID string, intervals []*domain.Interval) {
	for _, iv := range intervals {
		iv.ID = uuid.NewString()
		iv.ResponseID = responseID
		iv.Start, iv.End = iv.Start.UTC(), iv.End.UTC()
	}
}

func (s *responseService) AddAvailability(ctx context.Context, responseID string, intervals []*domain.Interval) ([]*domain.Interval, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateIntervals(intervals); err != nil {
		return nil, err
	}
	if _, err := s.responseRepo.GetByID(ctx, responseID); err != nil {
		return nil, err
	}
	assignIDs(responseID, intervals)
	if err := s.availabilityRepo.CreateMany(ctx, intervals); err != nil {
		return nil, fmt.Errorf("add availability: %w", err)
	}
	return intervals, nil
}

// grid loads the response and its event and lays the event out in timezone.
func (s *responseService) grid(ctx context.Context, responseID, timezone string) (*availability.Grid, error) {
	response, err := s.responseRepo.GetByID(ctx, responseID)
	if err != nil {
		return nil, err
	}
	event, err := s.eventRepo.GetByID(ctx, response.EventID)
	if err != nil {
		return nil, err
	}
	return gridOf(event, timezone)
}

// ReplaceAvailability stores the minimal interval set equivalent to
// intervals on the event grid. Parts outside the grid are dropped.
func (s *responseService) ReplaceAvailability(ctx context.Context, responseID string, intervals []*domain.Interval) ([]*domain.Interval, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if len(intervals) > 0 {
		if err := validateIntervals(intervals); err != nil {
			return nil, err
		}
	}
	g, err := s.grid(ctx, responseID, "")
	if err != nil {
		return nil, err
	}
	normalized, _ := g.Normalize(intervals)
	assignIDs(responseID, normalized)
	if err := s.availabilityRepo.Replace(ctx, responseID, normalized); err != nil {
		return nil, fmt.Errorf("replace availability: %w", err)
	}
	return normalized, nil
}

// EditAvailability replays a rectangular edit as one drag gesture on the
// response's current availability and stores the result.
func (s *responseService) EditAvailability(ctx context.Context, responseID string, edit domain.RegionEdit) ([]*domain.Interval, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !edit.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", domain.ErrInvalidInput, edit.Kind)
	}
	g, err := s.grid(ctx, responseID, edit.Timezone)
	if err != nil {
		return nil, err
	}
	if !g.Contains(edit.From) || !g.Contains(edit.To) {
		return nil, fmt.Errorf("%w: cell outside the %dx%d grid", domain.ErrInvalidInput, g.NumDays(), g.NumSlots())
	}
	current, err := s.availabilityRepo.ListByResponseID(ctx, responseID)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}

	editor := availability.NewEditor(g, current, edit.Kind, nil)
	editor.PointerDown(edit.From, edit.Invert)
	editor.PointerMove(edit.To)
	result, _ := editor.PointerUp()

	assignIDs(responseID, result)
	if err := s.availabilityRepo.Replace(ctx, responseID, result); err != nil {
		return nil, fmt.Errorf("replace availability: %w", err)
	}
	return result, nil
}
