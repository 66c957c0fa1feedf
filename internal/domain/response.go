package domain

import (
	"context"
	"time"
)

// Response is one respondent's participation in an event.
// swagger:model Response
type Response struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewResponse returns a new Response with the given fields. ID is set by the service on create.
func NewResponse(eventID, name string, email *string, createdAt, updatedAt time.Time) *Response {
	return &Response{
		EventID:   eventID,
		Name:      name,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// ResponseUpdate carries the optional fields of a response update; nil fields are unchanged.
type ResponseUpdate struct {
	Name  *string
	Email *string
}

// ResponseRepository defines the interface for response storage
type ResponseRepository interface {
	Create(ctx context.Context, response *Response) error
	GetByID(ctx context.Context, id string) (*Response, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Response, error)
	Update(ctx context.Context, response *Response) error
	Delete(ctx context.Context, id string) error
}

// EditTokenIssuer issues tokens that authorize edits to a single response.
type EditTokenIssuer interface {
	Issue(responseID, eventID string) (string, error)
}

// EditTokenVerifier verifies an edit token and returns the response ID it authorizes.
type EditTokenVerifier interface {
	Verify(token string) (responseID string, err error)
}

// ResponseService defines the business logic for responses and their availability.
type ResponseService interface {
	// CreateResponse stores the response and returns an edit token for it.
	CreateResponse(ctx context.Context, response *Response) (string, error)
	GetResponse(ctx context.Context, responseID string) (*Response, error)
	UpdateResponse(ctx context.Context, responseID string, update ResponseUpdate) (*Response, error)
	DeleteResponse(ctx context.Context, responseID string) error
	AddAvailability(ctx context.Context, responseID string, intervals []*Interval) ([]*Interval, error)
	ReplaceAvailability(ctx context.Context, responseID string, intervals []*Interval) ([]*Interval, error)
	EditAvailability(ctx context.Context, responseID string, edit RegionEdit) ([]*Interval, error)
}
