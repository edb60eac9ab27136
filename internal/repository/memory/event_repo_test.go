package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"campusevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent(title, slug string, maxAttendees int) *domain.Event {
	e := domain.NewEvent(title, "desc", "2031-05-20", "14:00", "Auditorio", domain.CategoryTecnologia, maxAttendees, false, time.Now())
	e.Slug = slug
	return e
}

func TestNextID(t *testing.T) {
	repo := NewEventRepository()
	ctx := context.Background()

	id, err := repo.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, id, "empty store starts at 1")

	for i, slug := range []string{"a", "b", "c"} {
		e := testEvent("Event", slug, 10)
		require.NoError(t, repo.Create(ctx, e))
		assert.Equal(t, i+1, e.ID)
	}

	id, err = repo.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, id)
}

func TestCreate_RejectsDuplicateSlug(t *testing.T) {
	repo := NewEventRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testEvent("One", "taken", 10)))
	err := repo.Create(ctx, testEvent("Two", "taken", 10))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetBySlug(t *testing.T) {
	repo := NewEventRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, testEvent("Torneo", "torneo", 10)))

	event, err := repo.GetBySlug(ctx, "torneo")
	require.NoError(t, err)
	assert.Equal(t, "Torneo", event.Title)

	_, err = repo.GetBySlug(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetBySlug_ReturnsCopy(t *testing.T) {
	repo := NewEventRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, testEvent("Torneo", "torneo", 10)))

	event, err := repo.GetBySlug(ctx, "torneo")
	require.NoError(t, err)
	event.Title = "mutated"
	event.Attendees = append(event.Attendees, domain.Attendee{Name: "X", Email: "x@x.com"})

	fresh, err := repo.GetBySlug(ctx, "torneo")
	require.NoError(t, err)
	assert.Equal(t, "Torneo", fresh.Title)
	assert.Empty(t, fresh.Attendees)
}

func TestList_PreservesInsertionOrder(t *testing.T) {
	repo := NewEventRepository()
	ctx := context.Background()
	slugs := []string{"c", "a", "b"}
	for _, slug := range slugs {
		require.NoError(t, repo.Create(ctx, testEvent("Event", slug, 10)))
	}

	events, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	for i, slug := range slugs {
		assert.Equal(t, slug, events[i].Slug)
	}
}

func TestAddAttendee(t *testing.T) {
	repo := NewEventRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, testEvent("Torneo", "torneo", 2)))

	_, err := repo.AddAttendee(ctx, "nope", domain.Attendee{Name: "A", Email: "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	event, err := repo.AddAttendee(ctx, "torneo", domain.Attendee{Name: "A", Email: "a@x.com"})
	require.NoError(t, err)
	require.Len(t, event.Attendees, 1)

	_, err = repo.AddAttendee(ctx, "torneo", domain.Attendee{Name: "A2", Email: "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	_, err = repo.AddAttendee(ctx, "torneo", domain.Attendee{Name: "B", Email: "b@x.com"})
	require.NoError(t, err)

	_, err = repo.AddAttendee(ctx, "torneo", domain.Attendee{Name: "C", Email: "c@x.com"})
	assert.ErrorIs(t, err, domain.ErrEventFull)

	event, err = repo.GetBySlug(ctx, "torneo")
	require.NoError(t, err)
	assert.Len(t, event.Attendees, 2)
}

func TestAddAttendee_FullCheckedBeforeDuplicate(t *testing.T) {
	repo := NewEventRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, testEvent("Torneo", "torneo", 1)))

	_, err := repo.AddAttendee(ctx, "torneo", domain.Attendee{Name: "A", Email: "a@x.com"})
	require.NoError(t, err)

	// Re-registering the same email against a full event reports EventFull,
	// not DuplicateEmail.
	_, err = repo.AddAttendee(ctx, "torneo", domain.Attendee{Name: "A", Email: "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrEventFull)
}

func TestAddAttendee_ConcurrentNeverExceedsCapacity(t *testing.T) {
	repo := NewEventRepository()
	ctx := context.Background()
	const capacity = 5
	const attempts = 50
	require.NoError(t, repo.Create(ctx, testEvent("Torneo", "torneo", capacity)))

	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.AddAttendee(ctx, "torneo", domain.Attendee{
				Name:  fmt.Sprintf("Attendee %d", i),
				Email: fmt.Sprintf("a%d@x.com", i),
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var ok, full int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrEventFull):
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, capacity, ok)
	assert.Equal(t, attempts-capacity, full)

	event, err := repo.GetBySlug(ctx, "torneo")
	require.NoError(t, err)
	assert.Len(t, event.Attendees, capacity)
}
