package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"meetgrid/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes. editAuth
// wraps every route that mutates a response or its availability.
func NewRouter(
	eventController *controllers.EventController,
	responseController *controllers.ResponseController,
	healthController *controllers.HealthController,
	editAuth func(http.HandlerFunc) http.HandlerFunc,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("POST /api/events", eventController.CreateEvent)
	mux.HandleFunc("GET /api/events/{eventID}", eventController.GetEvent)
	mux.HandleFunc("PATCH /api/events/{eventID}", eventController.UpdateEvent)
	mux.HandleFunc("GET /api/events/{eventID}/responses", eventController.ListResponses)
	mux.HandleFunc("GET /api/events/{eventID}/availability", eventController.ListAvailability)
	mux.HandleFunc("GET /api/events/{eventID}/grid", eventController.GetGrid)
	mux.HandleFunc("GET /api/events/{eventID}/summary", eventController.GetSummary)
	mux.HandleFunc("GET /api/events/{eventID}/best-times.ics", eventController.ExportBestTimes)

	// Responses
	mux.HandleFunc("POST /api/responses", responseController.CreateResponse)
	mux.HandleFunc("GET /api/responses/{responseID}", responseController.GetResponse)
	mux.HandleFunc("PATCH /api/responses/{responseID}", editAuth(responseController.UpdateResponse))
	mux.HandleFunc("DELETE /api/responses/{responseID}", editAuth(responseController.DeleteResponse))
	mux.HandleFunc("POST /api/responses/{responseID}/availability", editAuth(responseController.AddAvailability))
	mux.HandleFunc("PUT /api/responses/{responseID}/availability", editAuth(responseController.ReplaceAvailability))
	mux.HandleFunc("POST /api/responses/{responseID}/availability/edits", editAuth(responseController.EditAvailability))

	// Health
	mux.HandleFunc("GET /health", healthController.Health)
	mux.HandleFunc("GET /api/health", healthController.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
