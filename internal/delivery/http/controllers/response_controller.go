package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"meetgrid/internal/delivery/http/helpers"
	"meetgrid/internal/domain"
)

// CreateResponseRequest is the request body for POST /api/responses.
type CreateResponseRequest struct {
	EventID string  `json:"event_id"`
	Name    string  `json:"name"`
	Email   *string `json:"email"`
}

// Validate implements Validator.
func (c CreateResponseRequest) Validate() []string {
	var errs []string
	if c.EventID == "" {
		errs = append(errs, "event_id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// CreateResponseResult is the data payload of POST /api/responses. The edit
// token authorizes later changes to this response only.
type CreateResponseResult struct {
	Response  *domain.Response `json:"response"`
	EditToken string           `json:"edit_token"`
}

// CreateResponseSuccessResponse is the success response envelope for POST /api/responses (201).
type CreateResponseSuccessResponse struct {
	Data  CreateResponseResult `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ResponseSuccessResponse is the success response envelope for endpoints returning one response.
type ResponseSuccessResponse struct {
	Data  *domain.Response  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type ResponseController struct {
	Logger  *slog.Logger
	Service domain.ResponseService
}

func NewResponseController(logger *slog.Logger, svc domain.ResponseService) *ResponseController {
	return &ResponseController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateResponse godoc
// @Summary Join an event as a respondent
// @Description Names and emails are unique per event. The returned edit_token is required by write routes when edit tokens are enforced.
// @Tags responses
// @Accept json
// @Produce json
// @Param body body CreateResponseRequest true "Respondent"
// @Success 201 {object} controllers.CreateResponseSuccessResponse "data contains the response and its edit token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (name or email taken)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /responses [post]
func (c *ResponseController) CreateResponse(w http.ResponseWriter, r *http.Request) {
	var req CreateResponseRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	now := time.Now()
	response := domain.NewResponse(req.EventID, req.Name, req.Email, now, now)
	token, err := c.Service.CreateResponse(r.Context(), response)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreateResponseResult{Response: response, EditToken: token})
}

// GetResponse godoc
// @Summary Get a response by ID
// @Tags responses
// @Produce json
// @Param responseID path string true "Response ID"
// @Success 200 {object} controllers.ResponseSuccessResponse "data contains the response"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /responses/{responseID} [get]
func (c *ResponseController) GetResponse(w http.ResponseWriter, r *http.Request) {
	response, err := c.Service.GetResponse(r.Context(), r.PathValue("responseID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, response)
}

// UpdateResponseRequest is the request body for PATCH /api/responses/{responseID}. An empty email clears it.
type UpdateResponseRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UpdateResponse godoc
// @Summary Rename a respondent or change their email
// @Tags responses
// @Accept json
// @Produce json
// @Security EditToken
// @Param responseID path string true "Response ID"
// @Param body body UpdateResponseRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.ResponseSuccessResponse "data contains the updated response"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /responses/{responseID} [patch]
func (c *ResponseController) UpdateResponse(w http.ResponseWriter, r *http.Request) {
	var req UpdateResponseRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	response, err := c.Service.UpdateResponse(r.Context(), r.PathValue("responseID"), domain.ResponseUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, response)
}

// DeleteResponseResult is the data payload for DELETE /api/responses/{responseID} (200).
type DeleteResponseResult struct {
	Status string `json:"status"`
}

// DeleteResponse godoc
// @Summary Delete a response and its availability
// @Tags responses
// @Produce json
// @Security EditToken
// @Param responseID path string true "Response ID"
// @Success 200 {object} helpers.APIResponse "data.status: deleted"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /responses/{responseID} [delete]
func (c *ResponseController) DeleteResponse(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.DeleteResponse(r.Context(), r.PathValue("responseID")); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteResponseResult{Status: "deleted"})
}

// IntervalInput is one availability interval in a request. start == end marks
// the whole usable window of the grid day containing start.
type IntervalInput struct {
	Start time.Time               `json:"start"`
	End   time.Time               `json:"end"`
	Type  domain.AvailabilityKind `json:"type"`
}

// AvailabilityRequest is the request body for POST and PUT /api/responses/{responseID}/availability.
type AvailabilityRequest struct {
	Intervals []IntervalInput `json:"intervals"`
}

// Validate implements Validator. Emptiness is checked per route.
func (a AvailabilityRequest) Validate() []string {
	var errs []string
	for i, iv := range a.Intervals {
		if iv.Start.IsZero() || iv.End.IsZero() {
			errs = append(errs, "intervals["+strconv.Itoa(i)+"]: start and end are required")
		}
		if !iv.Type.Valid() {
			errs = append(errs, "intervals["+strconv.Itoa(i)+"]: type must be available or if_needed")
		}
	}
	return errs
}

func (a AvailabilityRequest) intervals() []*domain.Interval {
	out := make([]*domain.Interval, len(a.Intervals))
	for i, iv := range a.Intervals {
		out[i] = &domain.Interval{Start: iv.Start, End: iv.End, Kind: iv.Type}
	}
	return out
}

// AddAvailability godoc
// @Summary Append availability intervals to a response
// @Description Intervals are stored as sent; overlapping intervals are resolved when the grid is built.
// @Tags responses
// @Accept json
// @Produce json
// @Security EditToken
// @Param responseID path string true "Response ID"
// @Param body body AvailabilityRequest true "Intervals"
// @Success 201 {object} controllers.IntervalsSuccessResponse "data contains the stored intervals"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /responses/{responseID}/availability [post]
func (c *ResponseController) AddAvailability(w http.ResponseWriter, r *http.Request) {
	var req AvailabilityRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if len(req.Intervals) == 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "intervals must not be empty")
		return
	}
	stored, err := c.Service.AddAvailability(r.Context(), r.PathValue("responseID"), req.intervals())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, stored)
}

// ReplaceAvailability godoc
// @Summary Replace the availability of a response
// @Description Stores the minimal interval set equivalent to the request on the event grid. An empty list clears the response.
// @Tags responses
// @Accept json
// @Produce json
// @Security EditToken
// @Param responseID path string true "Response ID"
// @Param body body AvailabilityRequest true "Intervals"
// @Success 200 {object} controllers.IntervalsSuccessResponse "data contains the normalized intervals"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /responses/{responseID}/availability [put]
func (c *ResponseController) ReplaceAvailability(w http.ResponseWriter, r *http.Request) {
	var req AvailabilityRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	stored, err := c.Service.ReplaceAvailability(r.Context(), r.PathValue("responseID"), req.intervals())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if stored == nil {
		stored = []*domain.Interval{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stored)
}

// EditAvailabilityRequest is the request body for POST /api/responses/{responseID}/availability/edits.
// It describes one drag from one cell to another on the grid returned by GET /api/events/{eventID}/grid?tz=.
type EditAvailabilityRequest struct {
	Timezone string                  `json:"timezone"`
	From     domain.Cell             `json:"from"`
	To       domain.Cell             `json:"to"`
	Type     domain.AvailabilityKind `json:"type"`
	Invert   bool                    `json:"invert"`
}

// Validate implements Validator.
func (e EditAvailabilityRequest) Validate() []string {
	if !e.Type.Valid() {
		return []string{"type must be available or if_needed"}
	}
	return nil
}

// EditAvailability godoc
// @Summary Apply a rectangular grid edit
// @Description Replays a drag gesture: starting on a cell that already has the applied type clears that type in the rectangle, otherwise the rectangle is marked.
// @Tags responses
// @Accept json
// @Produce json
// @Security EditToken
// @Param responseID path string true "Response ID"
// @Param body body EditAvailabilityRequest true "Edit"
// @Success 200 {object} controllers.IntervalsSuccessResponse "data contains the response's intervals after the edit"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /responses/{responseID}/availability/edits [post]
func (c *ResponseController) EditAvailability(w http.ResponseWriter, r *http.Request) {
	var req EditAvailabilityRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.EditAvailability(r.Context(), r.PathValue("responseID"), domain.RegionEdit{
		Timezone: strings.TrimSpace(req.Timezone),
		From:     req.From,
		To:       req.To,
		Kind:     req.Type,
		Invert:   req.Invert,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if result == nil {
		result = []*domain.Interval{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}
