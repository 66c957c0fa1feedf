package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"meetgrid/internal/adapters/calendar"
	"meetgrid/internal/delivery/http/helpers"
	"meetgrid/internal/domain"
)

// CreateEventRequest is the request body for POST /api/events.
type CreateEventRequest struct {
	Title    string             `json:"title"`
	Dates    []domain.DateRange `json:"dates"`
	Timezone string             `json:"timezone"`
}

// Validate implements Validator. Length, range and timezone rules are enforced by the service.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if len(c.Dates) == 0 {
		errs = append(errs, "dates is required")
	}
	if c.Timezone == "" {
		errs = append(errs, "timezone is required")
	}
	return errs
}

// EventSuccessResponse is the success response envelope for endpoints returning one event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create a scheduling poll. id and timestamps are server-generated; date ranges are stored newest first.
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	now := time.Now()
	event := domain.NewEvent(req.Title, req.Dates, req.Timezone, now, now)
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetEvent(r.Context(), r.PathValue("eventID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEventRequest is the request body for PATCH /api/events/{eventID}. All fields optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	Title    *string            `json:"title"`
	Dates    []domain.DateRange `json:"dates"`
	Timezone *string            `json:"timezone"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	if u.Dates != nil && len(u.Dates) == 0 {
		return []string{"dates must not be empty"}
	}
	return nil
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Updates title, date ranges and timezone. Stored availability is kept as absolute times.
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), r.PathValue("eventID"), domain.EventUpdate{
		Title:    req.Title,
		Dates:    req.Dates,
		Timezone: req.Timezone,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ListResponsesSuccessResponse is the success response envelope for GET /api/events/{eventID}/responses (200).
type ListResponsesSuccessResponse struct {
	Data  []*domain.Response `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListResponses godoc
// @Summary List the responses of an event
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.ListResponsesSuccessResponse "data contains the responses in creation order"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/responses [get]
func (c *EventController) ListResponses(w http.ResponseWriter, r *http.Request) {
	responses, err := c.Service.ListResponses(r.Context(), r.PathValue("eventID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, responses)
}

// IntervalsSuccessResponse is the success response envelope for endpoints returning intervals.
type IntervalsSuccessResponse struct {
	Data  []*domain.Interval `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListAvailability godoc
// @Summary List every stored availability interval of an event
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.IntervalsSuccessResponse "data contains intervals of all responses"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/availability [get]
func (c *EventController) ListAvailability(w http.ResponseWriter, r *http.Request) {
	intervals, err := c.Service.ListAvailability(r.Context(), r.PathValue("eventID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, intervals)
}

// GridSuccessResponse is the success response envelope for GET /api/events/{eventID}/grid (200).
type GridSuccessResponse struct {
	Data  *domain.GridView  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetGrid godoc
// @Summary Describe the event grid in a timezone
// @Description Returns the hour window, grid days and slot labels as seen from tz (default: the event timezone).
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Param tz query string false "IANA timezone of the viewer"
// @Success 200 {object} controllers.GridSuccessResponse "data contains the grid"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (unknown timezone)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/grid [get]
func (c *EventController) GetGrid(w http.ResponseWriter, r *http.Request) {
	grid, err := c.Service.GetGrid(r.Context(), r.PathValue("eventID"), strings.TrimSpace(r.URL.Query().Get("tz")))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, grid)
}

// SummarySuccessResponse is the success response envelope for GET /api/events/{eventID}/summary (200).
type SummarySuccessResponse struct {
	Data  *domain.Summary   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetSummary godoc
// @Summary Aggregated availability of an event
// @Description Counts respondents per slot and merges neighbouring slots with the same participants into blocks.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Param tz query string false "IANA timezone of the viewer"
// @Param if_needed query bool false "Count if_needed marks as available"
// @Param best query bool false "Only return blocks with the maximum count"
// @Param response_ids query string false "Comma-separated response IDs to include"
// @Success 200 {object} controllers.SummarySuccessResponse "data contains the summary"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (unknown timezone)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/summary [get]
func (c *EventController) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := c.Service.Summarize(r.Context(), r.PathValue("eventID"), helpers.ParseSummaryQuery(r))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, summary)
}

// ExportBestTimes godoc
// @Summary Export the best times as iCalendar
// @Description One VEVENT per block with the maximum number of respondents.
// @Tags events
// @Produce text/calendar
// @Param eventID path string true "Event ID"
// @Param tz query string false "IANA timezone used to lay out the grid"
// @Param if_needed query bool false "Count if_needed marks as available"
// @Success 200 {string} string "text/calendar body"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (unknown timezone)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/best-times.ics [get]
func (c *EventController) ExportBestTimes(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	event, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	q := helpers.ParseSummaryQuery(r)
	q.BestOnly = true
	summary, err := c.Service.Summarize(r.Context(), eventID, q)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+eventID+`.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(calendar.BestTimes(event, summary, time.Now())))
}
