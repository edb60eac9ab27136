package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"campusevents/internal/domain"
)

type attendeeService struct {
	eventRepo      domain.EventRepository
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewAttendeeService creates an AttendeeService. emailService may be nil to
// disable confirmation emails.
func NewAttendeeService(eventRepo domain.EventRepository, emailService domain.EmailService, timeout time.Duration) domain.AttendeeService {
	return &attendeeService{
		eventRepo:      eventRepo,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

func (s *attendeeService) RegisterAttendee(ctx context.Context, slug, name, email string) (*domain.Event, *domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	// Only whitespace is normalized; the uniqueness comparison stays
	// case-sensitive.
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, nil, fmt.Errorf("%w: name and email are required", domain.ErrInvalidInput)
	}

	attendee := domain.Attendee{
		Name:             name,
		Email:            email,
		ConfirmationCode: uuid.New().String(),
		RegisteredAt:     time.Now().UTC(),
	}
	event, err := s.eventRepo.AddAttendee(ctx, slug, attendee)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) ||
			errors.Is(err, domain.ErrEventFull) ||
			errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("add attendee: %w", err)
	}

	if s.emailService != nil {
		data := &domain.RegistrationEmailData{
			Name:             attendee.Name,
			Email:            attendee.Email,
			EventTitle:       event.Title,
			EventDate:        event.Date,
			EventTime:        event.Time,
			EventLocation:    event.Location,
			ConfirmationCode: attendee.ConfirmationCode,
		}
		// The confirmation email must not delay or fail the registration;
		// the email service logs its own failures.
		go func(ctx context.Context) {
			_ = s.emailService.SendRegistrationConfirmation(ctx, data)
		}(context.WithoutCancel(ctx))
	}

	return event, &attendee, nil
}

func (s *attendeeService) GetRegistration(ctx context.Context, slug, code string) (*domain.Event, *domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}
	for i := range event.Attendees {
		if event.Attendees[i].ConfirmationCode == code {
			return event, &event.Attendees[i], nil
		}
	}
	return nil, nil, domain.ErrNotFound
}
