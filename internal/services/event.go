package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"campusevents/internal/domain"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type eventService struct {
	eventRepo       domain.EventRepository
	rejectPastDates bool
	contextTimeout  time.Duration
}

// NewEventService creates an EventService over the given repository.
// rejectPastDates controls whether CreateEvent refuses dates before today.
func NewEventService(eventRepo domain.EventRepository, rejectPastDates bool, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:       eventRepo,
		rejectPastDates: rejectPastDates,
		contextTimeout:  timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, input domain.CreateEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	category, err := domain.ParseCategory(input.Category)
	if err != nil {
		return nil, domain.ErrInvalidCategory
	}
	if input.MaxAttendees < 1 {
		return nil, fmt.Errorf("%w: max_attendees must be positive", domain.ErrInvalidInput)
	}
	if _, err := time.Parse(dateLayout, input.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", domain.ErrInvalidInput)
	}
	if _, err := time.Parse(timeLayout, input.Time); err != nil {
		return nil, fmt.Errorf("%w: time must be in HH:MM format", domain.ErrInvalidInput)
	}
	if s.rejectPastDates && input.Date < time.Now().Format(dateLayout) {
		return nil, fmt.Errorf("%w: date must not be in the past", domain.ErrInvalidInput)
	}

	slug, err := s.uniqueSlug(ctx, input.Title)
	if err != nil {
		return nil, fmt.Errorf("derive slug: %w", err)
	}

	event := domain.NewEvent(input.Title, input.Description, input.Date, input.Time,
		input.Location, category, input.MaxAttendees, input.Featured, time.Now())
	event.Slug = slug
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.EventDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &domain.EventDetails{Event: event, AvailableSpots: event.AvailableSpots()}, nil
}

func (s *eventService) UpcomingEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	today := time.Now().Format(dateLayout)
	upcoming := make([]*domain.Event, 0, len(events))
	for _, event := range events {
		if event.Date >= today {
			upcoming = append(upcoming, event)
		}
	}
	// ISO dates order lexicographically; a stable sort keeps insertion
	// order for same-day events.
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Date < upcoming[j].Date
	})
	return upcoming, nil
}

func (s *eventService) FeaturedEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	featured := make([]*domain.Event, 0, len(events))
	for _, event := range events {
		if event.Featured {
			featured = append(featured, event)
		}
	}
	return featured, nil
}

func (s *eventService) EventsByCategory(ctx context.Context, category string) ([]*domain.Event, error) {
	parsed, err := domain.ParseCategory(category)
	if err != nil {
		return nil, domain.ErrInvalidCategory
	}
	upcoming, err := s.UpcomingEvents(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]*domain.Event, 0, len(upcoming))
	for _, event := range upcoming {
		if event.Category == parsed {
			matched = append(matched, event)
		}
	}
	return matched, nil
}

// uniqueSlug derives the slug for title and resolves collisions by
// suffixing -2, -3, ... until no stored event uses the candidate.
func (s *eventService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slugify(title)
	if base == "" {
		base = "event"
	}
	candidate := base
	for i := 2; ; i++ {
		_, err := s.eventRepo.GetBySlug(ctx, candidate)
		if errors.Is(err, domain.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// slugify lowercases the title, drops every rune outside [a-z0-9 -], and
// collapses whitespace runs into single hyphens. May return "" for input
// with no usable runes.
func slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Trim(strings.Join(strings.Fields(b.String()), "-"), "-")
}
