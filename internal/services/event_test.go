package services

import (
	"context"
	"testing"
	"time"

	"campusevents/internal/domain"
	"campusevents/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTimeout = 2 * time.Second

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format(dateLayout)
}

func validInput(title string) domain.CreateEventInput {
	return domain.CreateEventInput{
		Title:        title,
		Description:  "Aprende sobre desarrollo web",
		Date:         futureDate(30),
		Time:         "14:00",
		Location:     "Auditorio Principal",
		Category:     "Tecnología",
		MaxAttendees: 50,
		Featured:     false,
	}
}

// seedEvent bypasses the creation workflow so tests can store events the
// workflow would refuse (e.g. past dates).
func seedEvent(t *testing.T, repo *memory.EventRepository, slug, date string, category domain.Category, featured bool) *domain.Event {
	t.Helper()
	e := domain.NewEvent("Seed "+slug, "desc", date, "10:00", "Aula 1", category, 20, featured, time.Now())
	e.Slug = slug
	require.NoError(t, repo.Create(context.Background(), e))
	return e
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Clase Programación Web!", "clase-programacin-web"},
		{"  Hola   Mundo  ", "hola-mundo"},
		{"Torneo 2025", "torneo-2025"},
		{"MAYÚSCULAS", "maysculas"},
		{"ya-con-guiones", "ya-con-guiones"},
		{"¡¿?!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, slugify(tt.title))
		})
	}
}

func TestCreateEvent_AssignsIDAndSlug(t *testing.T) {
	repo := memory.NewEventRepository()
	svc := NewEventService(repo, true, testTimeout)
	ctx := context.Background()

	first, err := svc.CreateEvent(ctx, validInput("Conferencia de juegos"))
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "conferencia-de-juegos", first.Slug)
	assert.Empty(t, first.Attendees)
	assert.Equal(t, domain.CategoryTecnologia, first.Category)

	second, err := svc.CreateEvent(ctx, validInput("Otro evento"))
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
}

func TestCreateEvent_SlugCollisionSuffix(t *testing.T) {
	repo := memory.NewEventRepository()
	svc := NewEventService(repo, true, testTimeout)
	ctx := context.Background()

	slugs := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		event, err := svc.CreateEvent(ctx, validInput("Torneo"))
		require.NoError(t, err)
		slugs = append(slugs, event.Slug)
	}
	assert.Equal(t, []string{"torneo", "torneo-2", "torneo-3"}, slugs)
}

func TestCreateEvent_EmptySlugFallsBack(t *testing.T) {
	repo := memory.NewEventRepository()
	svc := NewEventService(repo, true, testTimeout)

	event, err := svc.CreateEvent(context.Background(), validInput("¡¿?!"))
	require.NoError(t, err)
	assert.Equal(t, "event", event.Slug)
}

func TestCreateEvent_InvalidInput(t *testing.T) {
	repo := memory.NewEventRepository()
	svc := NewEventService(repo, true, testTimeout)
	ctx := context.Background()

	badCategory := validInput("X")
	badCategory.Category = "Gastronómico"
	_, err := svc.CreateEvent(ctx, badCategory)
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	badCapacity := validInput("X")
	badCapacity.MaxAttendees = 0
	_, err = svc.CreateEvent(ctx, badCapacity)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	badDate := validInput("X")
	badDate.Date = "15-09-2031"
	_, err = svc.CreateEvent(ctx, badDate)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	badTime := validInput("X")
	badTime.Time = "2pm"
	_, err = svc.CreateEvent(ctx, badTime)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateEvent_PastDatePolicy(t *testing.T) {
	ctx := context.Background()
	past := validInput("Retro")
	past.Date = futureDate(-1)

	strict := NewEventService(memory.NewEventRepository(), true, testTimeout)
	_, err := strict.CreateEvent(ctx, past)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	lenient := NewEventService(memory.NewEventRepository(), false, testTimeout)
	event, err := lenient.CreateEvent(ctx, past)
	require.NoError(t, err)
	assert.Equal(t, past.Date, event.Date)
}

func TestUpcomingEvents_FiltersAndSorts(t *testing.T) {
	repo := memory.NewEventRepository()
	svc := NewEventService(repo, false, testTimeout)
	ctx := context.Background()

	seedEvent(t, repo, "next-week", futureDate(7), domain.CategoryCultural, false)
	seedEvent(t, repo, "yesterday", futureDate(-1), domain.CategorySocial, false)
	seedEvent(t, repo, "today-a", futureDate(0), domain.CategoryDeportivo, false)
	seedEvent(t, repo, "tomorrow", futureDate(1), domain.CategoryAcademico, false)
	seedEvent(t, repo, "today-b", futureDate(0), domain.CategoryDeportivo, false)

	events, err := svc.UpcomingEvents(ctx)
	require.NoError(t, err)
	got := make([]string, 0, len(events))
	for _, e := range events {
		got = append(got, e.Slug)
	}
	// Past event excluded, ascending by date, insertion order kept for ties.
	assert.Equal(t, []string{"today-a", "today-b", "tomorrow", "next-week"}, got)
}

func TestFeaturedEvents(t *testing.T) {
	repo := memory.NewEventRepository()
	svc := NewEventService(repo, false, testTimeout)

	seedEvent(t, repo, "plain", futureDate(1), domain.CategorySocial, false)
	seedEvent(t, repo, "star-1", futureDate(5), domain.CategorySocial, true)
	seedEvent(t, repo, "star-2", futureDate(2), domain.CategoryCultural, true)

	events, err := svc.FeaturedEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "star-1", events[0].Slug)
	assert.Equal(t, "star-2", events[1].Slug)
}

func TestEventsByCategory(t *testing.T) {
	repo := memory.NewEventRepository()
	svc := NewEventService(repo, false, testTimeout)
	ctx := context.Background()

	seedEvent(t, repo, "tech-upcoming", futureDate(3), domain.CategoryTecnologia, false)
	seedEvent(t, repo, "tech-past", futureDate(-3), domain.CategoryTecnologia, false)
	seedEvent(t, repo, "sports", futureDate(3), domain.CategoryDeportivo, false)

	events, err := svc.EventsByCategory(ctx, "Tecnología")
	require.NoError(t, err)
	require.Len(t, events, 1, "past events of the category are excluded")
	assert.Equal(t, "tech-upcoming", events[0].Slug)

	_, err = svc.EventsByCategory(ctx, "Gastronómico")
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestGetEventBySlug(t *testing.T) {
	repo := memory.NewEventRepository()
	svc := NewEventService(repo, false, testTimeout)
	ctx := context.Background()

	event := seedEvent(t, repo, "torneo", futureDate(3), domain.CategoryDeportivo, false)
	_, err := repo.AddAttendee(ctx, "torneo", domain.Attendee{Name: "A", Email: "a@x.com"})
	require.NoError(t, err)

	details, err := svc.GetEventBySlug(ctx, "torneo")
	require.NoError(t, err)
	assert.Equal(t, event.Title, details.Event.Title)
	assert.Equal(t, 19, details.AvailableSpots)

	_, err = svc.GetEventBySlug(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
