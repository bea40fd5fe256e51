// Package marketing provides the public guide landing capture and delivery
// module: lead capture with consent, signed guide downloads and background
// guide PDF builds.
package marketing

import (
	"contemplahub_backend/internal/events"
	apphttp "contemplahub_backend/internal/http"
	"contemplahub_backend/internal/marketing/catalog"
	"contemplahub_backend/internal/marketing/handler"
	"contemplahub_backend/internal/marketing/repository"
	"contemplahub_backend/internal/marketing/service"
	"contemplahub_backend/internal/scheduler"
	"contemplahub_backend/platform/config"
	"contemplahub_backend/platform/logger"
	"contemplahub_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the marketing domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new marketing module with all dependencies wired.
func NewModule(
	pool *pgxpool.Pool,
	cat *catalog.Catalog,
	objects service.ObjectStore,
	bucket string,
	converter service.PageConverter,
	sched scheduler.GuidePDFScheduler,
	bus events.Bus,
	cfg config.MarketingConfig,
	log *logger.Logger,
	val *validator.Validator,
) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cat, objects, bucket, converter, sched, bus, cfg, log)
	h := handler.New(svc, val, cfg.GetInternalPDFToken())

	return &Module{handler: h, service: svc}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "marketing"
}

// Service returns the service layer for external use. The worker uses it as
// its guide builder.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the public landing routes. Captures come from
// anonymous visitors, so everything lives outside the authenticated group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/marketing/guide")
	m.handler.RegisterRoutes(public)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
