package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// PassGenerator renders a check-in pass image for a registration.
type PassGenerator interface {
	GeneratePass(event *domain.Event, attendee *domain.Attendee) ([]byte, error)
}

// RegisterRequest is the request body for POST /events/{slug}/registrations.
type RegisterRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate implements helpers.Validator.
func (r RegisterRequest) Validate() []string {
	var errs []string
	name := strings.TrimSpace(r.Name)
	if name == "" {
		errs = append(errs, "name is required")
	} else if len(name) > 100 {
		errs = append(errs, "name must be at most 100 characters")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, "email must be a valid email address")
	}
	return errs
}

// RegistrationResponse is the data payload returned after a successful registration.
type RegistrationResponse struct {
	Attendee       *domain.Attendee `json:"attendee"`
	EventSlug      string           `json:"event_slug"`
	AvailableSpots int              `json:"available_spots"`
}

// RegisterSuccessResponse is the success response envelope for POST /events/{slug}/registrations (201).
type RegisterSuccessResponse struct {
	Data  RegistrationResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type AttendeeController struct {
	Logger  *slog.Logger
	Service domain.AttendeeService
	Passes  PassGenerator
}

func NewAttendeeController(logger *slog.Logger, svc domain.AttendeeService, passes PassGenerator) *AttendeeController {
	return &AttendeeController{
		Logger:  logger,
		Service: svc,
		Passes:  passes,
	}
}

// Register godoc
// @Summary Register an attendee for an event
// @Description Registers name/email for the event with the given slug. Fails with 409 event_full when capacity is reached and 409 duplicate_email when the email is already registered; capacity is checked first.
// @Tags registrations
// @Accept json
// @Produce json
// @Param slug path string true "Event slug"
// @Param body body RegisterRequest true "Attendee data"
// @Success 201 {object} controllers.RegisterSuccessResponse "data contains the attendee and the updated availability"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: event_full or duplicate_email"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/registrations [post]
func (c *AttendeeController) Register(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	event, attendee, err := c.Service.RegisterAttendee(r.Context(), slug, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		case errors.Is(err, domain.ErrEventFull):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeEventFull, "event has reached its maximum number of attendees")
		case errors.Is(err, domain.ErrDuplicateEmail):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeDuplicateEmail, "email already registered for this event")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusCreated, RegistrationResponse{
		Attendee:       attendee,
		EventSlug:      event.Slug,
		AvailableSpots: event.AvailableSpots(),
	})
}

// CheckInPass godoc
// @Summary Get the check-in QR pass for a registration
// @Description Returns a PNG QR code identifying the registration, looked up by the confirmation code issued at registration time.
// @Tags registrations
// @Produce png
// @Param slug path string true "Event slug"
// @Param code path string true "Confirmation code"
// @Success 200 {file} binary "PNG image"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/registrations/{code}/qr [get]
func (c *AttendeeController) CheckInPass(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	code := r.PathValue("code")
	if slug == "" || code == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug or code")
		return
	}

	event, attendee, err := c.Service.GetRegistration(r.Context(), slug, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "registration not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	png, err := c.Passes.GeneratePass(event, attendee)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "pass generation failed", "path", r.URL.Path, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not generate pass")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
