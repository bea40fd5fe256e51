package scheduler

import (
	"context"
	"fmt"

	"contemplahub_backend/platform/config"
	"contemplahub_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// GuideBuilder renders and stores a marketing guide PDF. Implemented by the
// marketing service; the worker only does queue plumbing.
type GuideBuilder interface {
	BuildGuidePDF(ctx context.Context, orgID, landingHash, guideSlug string) error
}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	guides GuideBuilder
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, guides GuideBuilder, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		guides: guides,
		log:    log,
	}

	mux.HandleFunc(TaskGuideBuildPDF, w.handleGuideBuildPDF)

	return w, nil
}

func (w *Worker) handleGuideBuildPDF(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseGuideBuildPDFPayload(task)
	if err != nil {
		return err
	}

	w.log.Info("building marketing guide pdf",
		"org", payload.OrganizationID, "landing", payload.LandingHash, "guide", payload.GuideSlug)

	if err := w.guides.BuildGuidePDF(ctx, payload.OrganizationID, payload.LandingHash, payload.GuideSlug); err != nil {
		w.log.Error("guide pdf build failed", "landing", payload.LandingHash, "error", err)
		return err
	}
	return nil
}

// Run starts the worker and blocks until shutdown.
func (w *Worker) Run() error {
	return w.server.Run(w.mux)
}

// Shutdown stops the worker gracefully.
func (w *Worker) Shutdown() {
	w.server.Shutdown()
}
