package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for the registration workflow.
var (
	ErrEventFull      = errors.New("event is full")
	ErrDuplicateEmail = errors.New("email already registered for this event")
)

// Attendee is a registration for a single event. Email is unique within the
// owning event; the comparison is case-sensitive.
type Attendee struct {
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	ConfirmationCode string    `json:"confirmation_code"`
	RegisteredAt     time.Time `json:"registered_at"`
}

// AttendeeService defines visitor-facing registration operations.
type AttendeeService interface {
	// RegisterAttendee registers name/email for the event with the given
	// slug and returns the updated event and the stored attendee. Fails
	// with ErrNotFound, ErrEventFull, or ErrDuplicateEmail; capacity is
	// checked before the duplicate email.
	RegisterAttendee(ctx context.Context, slug, name, email string) (*Event, *Attendee, error)
	// GetRegistration looks up an attendee of the event by confirmation
	// code. Returns ErrNotFound for an unknown slug or code.
	GetRegistration(ctx context.Context, slug, code string) (*Event, *Attendee, error)
}
