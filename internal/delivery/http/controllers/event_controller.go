package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

// CreateEventRequest is the request body for POST /admin/events.
type CreateEventRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Location     string `json:"location"`
	Category     string `json:"category"`
	MaxAttendees int    `json:"max_attendees"`
	Featured     bool   `json:"featured"`
}

// Validate implements helpers.Validator. Returns error messages for required
// and format rules; the category set and date policy are re-checked by the
// service.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	title := strings.TrimSpace(c.Title)
	if title == "" {
		errs = append(errs, "title is required")
	} else if len(title) > 200 {
		errs = append(errs, "title must be at most 200 characters")
	}
	description := strings.TrimSpace(c.Description)
	if description == "" {
		errs = append(errs, "description is required")
	} else if len(description) > 2000 {
		errs = append(errs, "description must be at most 2000 characters")
	}
	if c.Date == "" {
		errs = append(errs, "date is required")
	} else if _, err := time.Parse("2006-01-02", c.Date); err != nil {
		errs = append(errs, "date must be in YYYY-MM-DD format")
	}
	if c.Time == "" {
		errs = append(errs, "time is required")
	} else if _, err := time.Parse("15:04", c.Time); err != nil {
		errs = append(errs, "time must be in HH:MM format")
	}
	location := strings.TrimSpace(c.Location)
	if location == "" {
		errs = append(errs, "location is required")
	} else if len(location) > 200 {
		errs = append(errs, "location must be at most 200 characters")
	}
	if _, err := domain.ParseCategory(c.Category); err != nil {
		errs = append(errs, "category must be one of the listed categories")
	}
	if c.MaxAttendees < 1 {
		errs = append(errs, "max_attendees must be at least 1")
	} else if c.MaxAttendees > 1000 {
		errs = append(errs, "max_attendees must be at most 1000")
	}
	return errs
}

// CreateEventSuccessResponse is the success response envelope for POST /admin/events (201).
type CreateEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEventsSuccessResponse is the success response envelope for the event list endpoints (200).
type ListEventsSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventDetailsSuccessResponse is the success response envelope for GET /events/{slug} (200).
type EventDetailsSuccessResponse struct {
	Data  *domain.EventDetails `json:"data"`
	Error *helpers.APIError    `json:"error"`
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
// @Description Creates an event from the submitted form data. The id and the slug are server-generated; slug collisions are resolved with a numeric suffix.
// @Tags admin
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), domain.CreateEventInput{
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Date:         req.Date,
		Time:         req.Time,
		Location:     strings.TrimSpace(req.Location),
		Category:     req.Category,
		MaxAttendees: req.MaxAttendees,
		Featured:     req.Featured,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCategory) || errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListEvents godoc
// @Summary List upcoming events
// @Description Returns events dated today or later, sorted ascending by date. Pass ?category= to filter by one of the fixed categories.
// @Tags events
// @Produce json
// @Param category query string false "Category filter"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (unknown category)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	var events []*domain.Event
	var err error
	if category := r.URL.Query().Get("category"); category != "" {
		events, err = c.Service.EventsByCategory(r.Context(), category)
	} else {
		events, err = c.Service.UpcomingEvents(r.Context())
	}
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCategory) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "unknown category")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// ListFeaturedEvents godoc
// @Summary List featured events
// @Description Returns events flagged for prioritized display, in store order.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/featured [get]
func (c *EventController) ListFeaturedEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.FeaturedEvents(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// ListCategories godoc
// @Summary List event categories
// @Description Returns the fixed category enumeration used by event creation and filtering.
// @Tags events
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is an array of category names"
// @Router /events/categories [get]
func (c *EventController) ListCategories(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, domain.Categories())
}

// GetEventBySlug godoc
// @Summary Get an event by slug
// @Description Returns the event and its remaining capacity. available_spots is 0 for a full event, so clients can disable registration up front.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventDetailsSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug} [get]
func (c *EventController) GetEventBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	details, err := c.Service.GetEventBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, details)
}
