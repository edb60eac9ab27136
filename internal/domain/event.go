package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for event operations.
var (
	ErrNotFound     = errors.New("event not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Event represents a listed campus event. Slug is derived from Title at
// creation time and never recomputed; Attendees keeps registration order.
type Event struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Description  string     `json:"description"`
	Date         string     `json:"date"` // calendar date, "2006-01-02"
	Time         string     `json:"time"` // local time, "15:04"
	Location     string     `json:"location"`
	Category     Category   `json:"category"`
	MaxAttendees int        `json:"max_attendees"`
	Attendees    []Attendee `json:"attendees"`
	Featured     bool       `json:"featured"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewEvent returns a new Event with an empty attendee list. ID is set by the
// repository on create; Slug is set by the creation workflow.
func NewEvent(title, description, date, startTime, location string, category Category, maxAttendees int, featured bool, createdAt time.Time) *Event {
	return &Event{
		Title:        title,
		Description:  description,
		Date:         date,
		Time:         startTime,
		Location:     location,
		Category:     category,
		MaxAttendees: maxAttendees,
		Attendees:    []Attendee{},
		Featured:     featured,
		CreatedAt:    createdAt,
	}
}

// AvailableSpots returns the remaining capacity, never negative.
func (e *Event) AvailableSpots() int {
	n := e.MaxAttendees - len(e.Attendees)
	if n < 0 {
		return 0
	}
	return n
}

// IsFull reports whether the event reached its capacity.
func (e *Event) IsFull() bool {
	return len(e.Attendees) >= e.MaxAttendees
}

// EventDetails bundles an event with its remaining capacity, so clients can
// pre-screen full events before offering a registration form.
type EventDetails struct {
	Event          *Event `json:"event"`
	AvailableSpots int    `json:"available_spots"`
}

// CreateEventInput is the validated input for the event creation workflow.
type CreateEventInput struct {
	Title        string
	Description  string
	Date         string
	Time         string
	Location     string
	Category     string
	MaxAttendees int
	Featured     bool
}

// EventRepository defines the interface for event storage.
//
// AddAttendee must run its existence, capacity, and duplicate-email checks
// and the append as one atomic step, in that order, returning ErrNotFound,
// ErrEventFull, or ErrDuplicateEmail respectively.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	NextID(ctx context.Context) (int, error)
	AddAttendee(ctx context.Context, slug string, attendee Attendee) (*Event, error)
}

// EventService defines event creation and the read-only event projections.
type EventService interface {
	CreateEvent(ctx context.Context, input CreateEventInput) (*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*EventDetails, error)
	// UpcomingEvents returns events dated today or later, ascending by date.
	UpcomingEvents(ctx context.Context) ([]*Event, error)
	// FeaturedEvents returns featured events in store order.
	FeaturedEvents(ctx context.Context) ([]*Event, error)
	// EventsByCategory filters upcoming events; the category must be one of
	// the fixed set or ErrInvalidCategory is returned.
	EventsByCategory(ctx context.Context, category string) ([]*Event, error)
}
