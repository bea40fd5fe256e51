// Command worker runs the asynq consumer that rebuilds marketing guide PDFs.
// It shares the marketing service with the API but only exercises the build
// path, so Gotenberg and MinIO must be configured.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"contemplahub_backend/internal/adapters/storage"
	"contemplahub_backend/internal/events"
	"contemplahub_backend/internal/marketing/catalog"
	"contemplahub_backend/internal/marketing/repository"
	"contemplahub_backend/internal/marketing/service"
	"contemplahub_backend/internal/pdf"
	"contemplahub_backend/internal/scheduler"
	"contemplahub_backend/platform/config"
	"contemplahub_backend/platform/db"
	"contemplahub_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}

	if !cfg.IsGotenbergEnabled() {
		log.Error("GOTENBERG_URL is required for the worker")
		panic("GOTENBERG_URL is required for the worker")
	}
	converter := pdf.NewGotenbergClient(cfg.GetGotenbergURL(), cfg.GetGotenbergUsername(), cfg.GetGotenbergPassword())

	guideCatalog, err := catalog.Load(cfg.GetGuideCatalogPath())
	if err != nil {
		log.Error("failed to load guide catalog", "error", err)
		panic("failed to load guide catalog: " + err.Error())
	}

	// The worker never enqueues or publishes; a local bus keeps the wiring
	// uniform with the API.
	bus := events.NewInMemoryBus(log)

	repo := repository.New(pool)
	marketingSvc := service.New(
		repo,
		guideCatalog,
		storageSvc,
		cfg.GetMinioBucketMarketingGuides(),
		converter,
		nil,
		bus,
		cfg,
		log,
	)

	worker, err := scheduler.NewWorker(cfg, marketingSvc, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	runErr := make(chan error, 1)
	go func() {
		runErr <- worker.Run()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, stopping worker")
		worker.Shutdown()
	case err := <-runErr:
		if err != nil {
			log.Error("worker error", "error", err)
			panic("worker error: " + err.Error())
		}
	}
}
