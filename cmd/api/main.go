package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contemplahub_backend/internal/adapters"
	"contemplahub_backend/internal/adapters/storage"
	"contemplahub_backend/internal/contracts"
	"contemplahub_backend/internal/diagnostics"
	"contemplahub_backend/internal/email"
	"contemplahub_backend/internal/events"
	apphttp "contemplahub_backend/internal/http"
	"contemplahub_backend/internal/http/router"
	"contemplahub_backend/internal/kanban"
	"contemplahub_backend/internal/leads"
	"contemplahub_backend/internal/marketing"
	"contemplahub_backend/internal/marketing/catalog"
	"contemplahub_backend/internal/notification"
	"contemplahub_backend/internal/pdf"
	"contemplahub_backend/internal/proposals"
	"contemplahub_backend/internal/registrations"
	"contemplahub_backend/internal/scheduler"
	"contemplahub_backend/platform/config"
	"contemplahub_backend/platform/db"
	"contemplahub_backend/platform/logger"
	"contemplahub_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	guideScheduler, closeScheduler := initGuideScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	sender := email.NewSender(cfg, log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Storage service for guide PDFs (MinIO)
	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}
	guidesBucket := cfg.GetMinioBucketMarketingGuides()
	ensureBucket(ctx, log, storageSvc, "marketing-guides", guidesBucket)
	log.Info("storage service initialized", "guidesBucket", guidesBucket)

	// Gotenberg renders the guide print page into a PDF
	var converter *pdf.GotenbergClient
	if cfg.IsGotenbergEnabled() {
		converter = pdf.NewGotenbergClient(cfg.GetGotenbergURL(), cfg.GetGotenbergUsername(), cfg.GetGotenbergPassword())
		log.Info("gotenberg PDF converter initialized", "url", cfg.GetGotenbergURL())
	}

	guideCatalog, err := catalog.Load(cfg.GetGuideCatalogPath())
	if err != nil {
		log.Error("failed to load guide catalog", "error", err)
		panic("failed to load guide catalog: " + err.Error())
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.New(pool, sender, cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	leadsModule := leads.NewModule(pool, log, val)

	// One adapter serves every module that needs a slice of the lead funnel
	leadsAdapter := adapters.NewLeadsAdapter(leadsModule.Service())

	diagnosticsModule := diagnostics.NewModule(pool, leadsAdapter, val)
	contractsModule := contracts.NewModule(pool, leadsAdapter, log, val)
	kanbanModule := kanban.NewModule(pool, log)
	proposalsModule := proposals.NewModule(pool, leadsAdapter, eventBus, log, val, cfg.GetFrontendBaseURL())
	registrationsModule := registrations.NewModule(pool, leadsAdapter, log, val)
	marketingModule := marketing.NewModule(pool, guideCatalog, storageSvc, guidesBucket, converter, guideScheduler, eventBus, cfg, log, val)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			leadsModule,
			kanbanModule,
			diagnosticsModule,
			proposalsModule,
			registrationsModule,
			contractsModule,
			marketingModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// ensureBucket wraps the retry logic for verifying a MinIO bucket exists.
func ensureBucket(ctx context.Context, log *logger.Logger, storageSvc storage.StorageService, name, bucket string) {
	if err := withRetry(ctx, log, "ensure "+name+" bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
		panic("failed to ensure storage bucket exists: " + err.Error())
	}
}

func initGuideScheduler(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.GuidePDFScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; guide PDF rebuilds disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize guide scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
