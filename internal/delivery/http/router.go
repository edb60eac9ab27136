package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"campusevents/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(eventController *controllers.EventController, attendeeController *controllers.AttendeeController) *http.ServeMux {
	mux := http.NewServeMux()

	// Public listings
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/featured", eventController.ListFeaturedEvents)
	mux.HandleFunc("GET /events/categories", eventController.ListCategories)
	mux.HandleFunc("GET /events/{slug}", eventController.GetEventBySlug)

	// Admin
	mux.HandleFunc("POST /admin/events", eventController.CreateEvent)

	// Registrations
	mux.HandleFunc("POST /events/{slug}/registrations", attendeeController.Register)
	mux.HandleFunc("GET /events/{slug}/registrations/{code}/qr", attendeeController.CheckInPass)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
