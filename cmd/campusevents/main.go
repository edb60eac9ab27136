package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusevents/config"
	"campusevents/internal/adapters/email"
	"campusevents/internal/adapters/ticket"
	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
	"campusevents/internal/repository/memory"
	"campusevents/internal/services"

	deliveryhttp "campusevents/internal/delivery/http"
)

const serviceTimeout = 5 * time.Second

// @title Campus Events API
// @version 1.0
// @description Event listings and attendee registration for campus events.
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "campusevents: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger()

	eventRepo := memory.NewEventRepository()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		},
	})
	if err != nil {
		return fmt.Errorf("init mailer: %w", err)
	}
	renderer := email.NewTemplateRenderer()
	emailService := services.NewEmailService(mailer, renderer)

	eventService := services.NewEventService(eventRepo, cfg.RejectPastDates, serviceTimeout)
	attendeeService := services.NewAttendeeService(eventRepo, emailService, serviceTimeout)
	passes := ticket.NewGenerator(cfg.QRSecret)

	if cfg.Environment == "development" {
		if err := seedDemoEvents(eventService, attendeeService); err != nil {
			logger.Warn("demo seed failed", "err", err)
		}
	}

	eventController := controllers.NewEventController(logger, eventService)
	attendeeController := controllers.NewAttendeeController(logger, attendeeService, passes)

	router := deliveryhttp.NewRouter(eventController, attendeeController)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, router))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "addr", server.Addr, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	logger.Info("HTTP server stopped")
	return nil
}

// seedDemoEvents creates a sample event with one registration so the API has
// data to serve on a fresh development start.
func seedDemoEvents(events domain.EventService, attendees domain.AttendeeService) error {
	ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
	defer cancel()

	event, err := events.CreateEvent(ctx, domain.CreateEventInput{
		Title:        "Conferencia de juegos",
		Description:  "Aprende sobre el desarrollo de videojuegos con ponentes invitados.",
		Date:         time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
		Time:         "14:00",
		Location:     "Auditorio Principal",
		Category:     string(domain.CategoryTecnologia),
		MaxAttendees: 50,
		Featured:     true,
	})
	if err != nil {
		return fmt.Errorf("seed event: %w", err)
	}
	if _, _, err := attendees.RegisterAttendee(ctx, event.Slug, "Juan Pérez", "juan@example.com"); err != nil {
		return fmt.Errorf("seed registration: %w", err)
	}
	return nil
}
