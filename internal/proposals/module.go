// Package proposals provides lead proposal documents with public share links.
package proposals

import (
	"contemplahub_backend/internal/events"
	apphttp "contemplahub_backend/internal/http"
	"contemplahub_backend/internal/proposals/handler"
	"contemplahub_backend/internal/proposals/repository"
	"contemplahub_backend/internal/proposals/service"
	"contemplahub_backend/platform/logger"
	"contemplahub_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the proposals domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new proposals module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, leads service.LeadReader, bus events.Bus, log *logger.Logger, val *validator.Validator, frontendBaseURL string) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, leads, bus, log)
	h := handler.New(svc, val, frontendBaseURL)

	return &Module{handler: h, service: svc}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "proposals"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes. The share-link routes live
// outside the authenticated group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	protected := ctx.Protected.Group("/lead-propostas")
	m.handler.RegisterRoutes(protected)

	public := ctx.V1.Group("/public/propostas")
	m.handler.RegisterPublicRoutes(public)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
