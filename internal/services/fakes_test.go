package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"meetgrid/internal/domain"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID      map[string]*domain.Event
	createErr []error // returned by successive Create calls, then nil
	cutoff    time.Time
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event)}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if len(f.createErr) > 0 {
		err := f.createErr[0]
		f.createErr = f.createErr[1:]
		if err != nil {
			return err
		}
	}
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		cp := *e
		cp.Dates = slices.Clone(e.Dates)
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEventRepo) DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	var n int64
	for id, e := range f.byID {
		var last time.Time
		for _, d := range e.Dates {
			if d.End.After(last) {
				last = d.End
			}
		}
		if !last.After(cutoff) {
			delete(f.byID, id)
			n++
		}
	}
	return n, nil
}

// fakeResponseRepo is an in-memory ResponseRepository enforcing unique names per event.
type fakeResponseRepo struct {
	byID  map[string]*domain.Response
	order []string
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{byID: make(map[string]*domain.Response)}
}

func (f *fakeResponseRepo) taken(r *domain.Response) bool {
	for _, o := range f.byID {
		if o.ID == r.ID || o.EventID != r.EventID {
			continue
		}
		if o.Name == r.Name || (o.Email != nil && r.Email != nil && *o.Email == *r.Email) {
			return true
		}
	}
	return false
}

func (f *fakeResponseRepo) Create(ctx context.Context, r *domain.Response) error {
	if f.taken(r) {
		return domain.ErrConflict
	}
	f.byID[r.ID] = r
	f.order = append(f.order, r.ID)
	return nil
}

func (f *fakeResponseRepo) GetByID(ctx context.Context, id string) (*domain.Response, error) {
	if r, ok := f.byID[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeResponseRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Response, error) {
	out := make([]*domain.Response, 0)
	for _, id := range f.order {
		if r, ok := f.byID[id]; ok && r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResponseRepo) Update(ctx context.Context, r *domain.Response) error {
	if _, ok := f.byID[r.ID]; !ok {
		return domain.ErrNotFound
	}
	if f.taken(r) {
		return domain.ErrConflict
	}
	f.byID[r.ID] = r
	return nil
}

func (f *fakeResponseRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeAvailabilityRepo keeps intervals per response; responses resolves the event join.
type fakeAvailabilityRepo struct {
	byResponse map[string][]*domain.Interval
	responses  *fakeResponseRepo
	err        error
}

func newFakeAvailabilityRepo(responses *fakeResponseRepo) *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{byResponse: make(map[string][]*domain.Interval), responses: responses}
}

func (f *fakeAvailabilityRepo) CreateMany(ctx context.Context, intervals []*domain.Interval) error {
	if f.err != nil {
		return f.err
	}
	for _, iv := range intervals {
		f.byResponse[iv.ResponseID] = append(f.byResponse[iv.ResponseID], iv)
	}
	return nil
}

func (f *fakeAvailabilityRepo) Replace(ctx context.Context, responseID string, intervals []*domain.Interval) error {
	if f.err != nil {
		return f.err
	}
	f.byResponse[responseID] = slices.Clone(intervals)
	return nil
}

func (f *fakeAvailabilityRepo) ListByResponseID(ctx context.Context, responseID string) ([]*domain.Interval, error) {
	return slices.Clone(f.byResponse[responseID]), nil
}

func (f *fakeAvailabilityRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Interval, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Interval, 0)
	rs, _ := f.responses.ListByEventID(ctx, eventID)
	for _, r := range rs {
		out = append(out, f.byResponse[r.ID]...)
	}
	return out, nil
}

type fakeTokens struct {
	err error
}

func (f fakeTokens) Issue(responseID, eventID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("token-%s-%s", eventID, responseID), nil
}

type fixture struct {
	events    *fakeEventRepo
	responses *fakeResponseRepo
	avail     *fakeAvailabilityRepo
	eventSvc  domain.EventService
	respSvc   domain.ResponseService
}

func newFixture() *fixture {
	f := &fixture{events: newFakeEventRepo(), responses: newFakeResponseRepo()}
	f.avail = newFakeAvailabilityRepo(f.responses)
	f.eventSvc = NewEventService(f.events, f.responses, f.avail, 15*24*time.Hour, 5*time.Second)
	f.respSvc = NewResponseService(f.events, f.responses, f.avail, fakeTokens{}, 5*time.Second)
	return f
}

func utc(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

// seedEvent stores a UTC event with 09:00-12:00 ranges on the given March 2025 days.
func (f *fixture) seedEvent(id string, days ...int) *domain.Event {
	e := &domain.Event{ID: id, Title: "Team sync", Timezone: "UTC"}
	for _, d := range days {
		e.Dates = append(e.Dates, domain.DateRange{Start: utc(2025, 3, d, 9, 0), End: utc(2025, 3, d, 12, 0)})
	}
	f.events.byID[id] = e
	return e
}

func (f *fixture) seedResponse(id, eventID, name string) *domain.Response {
	r := &domain.Response{ID: id, EventID: eventID, Name: name}
	f.responses.byID[id] = r
	f.responses.order = append(f.responses.order, id)
	return r
}

func (f *fixture) seedInterval(responseID string, start, end time.Time, kind domain.AvailabilityKind) {
	f.avail.byResponse[responseID] = append(f.avail.byResponse[responseID], &domain.Interval{
		ID: fmt.Sprintf("iv-%d", len(f.avail.byResponse[responseID])), ResponseID: responseID, Start: start, End: end, Kind: kind,
	})
}
