package memory

import (
	"context"
	"fmt"
	"sync"

	"campusevents/internal/domain"
)

// EventRepository is an in-memory domain.EventRepository. A single RWMutex
// serializes all mutations; reads hand out deep copies so callers never hold
// references into the store.
type EventRepository struct {
	mu     sync.RWMutex
	events []*domain.Event
}

func NewEventRepository() *EventRepository {
	return &EventRepository{}
}

// Create assigns the next free ID and appends the event. The slug must not
// be in use yet.
func (r *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.findBySlug(event.Slug); ok {
		return fmt.Errorf("%w: slug %q already in use", domain.ErrInvalidInput, event.Slug)
	}
	event.ID = r.nextID()
	if event.Attendees == nil {
		event.Attendees = []domain.Attendee{}
	}
	r.events = append(r.events, copyEvent(event))
	return nil
}

func (r *EventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, ok := r.findBySlug(slug)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyEvent(event), nil
}

// List returns all events in insertion order.
func (r *EventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Event, 0, len(r.events))
	for _, event := range r.events {
		out = append(out, copyEvent(event))
	}
	return out, nil
}

// NextID returns 1 for an empty store, otherwise one plus the highest ID
// currently present. The value is recomputed from the stored events, not
// kept as a counter.
func (r *EventRepository) NextID(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nextID(), nil
}

// AddAttendee appends the attendee to the event with the given slug. The
// existence, capacity, and duplicate-email checks run in that order inside
// the write lock, so capacity can never be exceeded by concurrent
// registrations. Returns a copy of the updated event.
func (r *EventRepository) AddAttendee(ctx context.Context, slug string, attendee domain.Attendee) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.findBySlug(slug)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if len(event.Attendees) >= event.MaxAttendees {
		return nil, domain.ErrEventFull
	}
	for _, a := range event.Attendees {
		if a.Email == attendee.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	event.Attendees = append(event.Attendees, attendee)
	return copyEvent(event), nil
}

func (r *EventRepository) findBySlug(slug string) (*domain.Event, bool) {
	for _, event := range r.events {
		if event.Slug == slug {
			return event, true
		}
	}
	return nil, false
}

func (r *EventRepository) nextID() int {
	max := 0
	for _, event := range r.events {
		if event.ID > max {
			max = event.ID
		}
	}
	return max + 1
}

func copyEvent(event *domain.Event) *domain.Event {
	c := *event
	c.Attendees = make([]domain.Attendee, len(event.Attendees))
	copy(c.Attendees, event.Attendees)
	return &c
}
