package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gardaracing/charter-api/internal/api"
	"github.com/gardaracing/charter-api/internal/ports"
	"github.com/gardaracing/charter-api/internal/repository"
	"github.com/gardaracing/charter-api/internal/service"
	"github.com/gardaracing/charter-api/internal/utils"
	"github.com/gardaracing/charter-api/internal/validator"
	"github.com/gardaracing/charter-api/pkg/config"
	"github.com/gardaracing/charter-api/pkg/health"
	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	config *config.Config
	logger *slog.Logger
	server *http.Server
	db     *pgxpool.Pool
}

func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		config: cfg,
		logger: logger,
	}
}

func (a *App) Initialize(ctx context.Context) error {
	if err := a.setupDatabase(ctx); err != nil {
		return fmt.Errorf("database setup failed: %w", err)
	}

	if err := a.setupServer(); err != nil {
		return fmt.Errorf("server setup failed: %w", err)
	}

	return nil
}

func (a *App) setupDatabase(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	return nil
}

func (a *App) setupServer() error {
	services := a.setupServices()
	router := a.setupRouter(services)

	a.server = &http.Server{
		Addr:         a.config.Server.Address,
		Handler:      router,
		WriteTimeout: a.config.Server.WriteTimeout,
		ReadTimeout:  a.config.Server.ReadTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
	}

	return nil
}

type Services struct {
	BookingService ports.BookingService
	ChatService    ports.ChatService
	ContentService ports.ContentService
	WebhookService ports.WebhookService
}

func (a *App) setupServices() Services {
	clients := repository.NewClientRepository(a.db)
	yachts := repository.NewYachtRepository(a.db)
	bookings := repository.NewBookingRepository(a.db)
	logs := repository.NewLogRepository(a.db)
	notifications := repository.NewNotificationRepository(a.db)
	pages := repository.NewContentRepository(a.db)
	messages := repository.NewMessageRepository(a.db)

	forms := validator.NewFormValidator(a.config.Booking.StrictPhoneFormat)

	bookingService := service.NewBookingService(clients, yachts, bookings, forms, a.logger,
		a.config.Booking.UnitPrice, a.config.Booking.DefaultLanguage)

	return Services{
		BookingService: bookingService,
		ChatService:    service.NewChatService(messages, a.logger),
		ContentService: service.NewContentService(pages, a.logger, a.config.Booking.DefaultLanguage),
		WebhookService: service.NewWebhookService(bookingService, clients, yachts,
			notifications, logs, a.logger),
	}
}

func (a *App) setupRouter(services Services) http.Handler {
	router := http.NewServeMux()
	const versionPrefix = "/v1"

	router.HandleFunc(versionPrefix+"/health", health.HealthGet())

	bookingHandler := utils.AllowedMethods(
		api.BookingHandler(services.BookingService),
		"POST", "GET", "PATCH",
	)
	router.HandleFunc(versionPrefix+"/bookings", bookingHandler)

	chatHandler := utils.AllowedMethods(
		utils.AllowedContentTypes(
			api.ChatHandler(services.ChatService),
			"application/json",
		),
		"POST",
	)
	router.HandleFunc(versionPrefix+"/chat", chatHandler)
	router.HandleFunc(versionPrefix+"/chat/quick-replies",
		utils.AllowedMethods(api.QuickRepliesHandler(services.ChatService), "GET"))

	router.HandleFunc(versionPrefix+"/content",
		utils.AllowedMethods(api.ContentHandler(services.ContentService), "GET"))

	router.HandleFunc(versionPrefix+"/webhooks/realtime", utils.AllowedMethods(
		utils.WebhookAuth(
			api.RealtimeWebhookHandler(services.WebhookService),
			a.config.Webhook.RealtimeSecret,
		),
		"POST",
	))
	router.HandleFunc(versionPrefix+"/webhooks/events", utils.AllowedMethods(
		utils.WebhookAuth(
			api.EventWebhookHandler(services.WebhookService),
			a.config.Webhook.EventSecret,
		),
		"POST",
	))
	router.HandleFunc(versionPrefix+"/webhooks/storage", utils.AllowedMethods(
		utils.WebhookAuth(
			api.StorageWebhookHandler(services.WebhookService),
			a.config.Webhook.StorageSecret,
		),
		"POST",
	))

	return router
}

func (a *App) Run(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		a.logger.Info("starting server", "address", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-shutdown:
		a.logger.Info("starting graceful shutdown")
		return a.Shutdown(ctx)
	case <-ctx.Done():
		return a.Shutdown(ctx)
	}
}

func (a *App) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if a.db != nil {
		a.db.Close()
	}

	return nil
}

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	app := NewApp(cfg, logger)
	if err := app.Initialize(ctx); err != nil {
		logger.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("application error", "error", err)
		os.Exit(1)
	}
}
