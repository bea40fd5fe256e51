// Package registrations provides public registration links for collecting
// client data after a proposal.
package registrations

import (
	apphttp "contemplahub_backend/internal/http"
	"contemplahub_backend/internal/registrations/handler"
	"contemplahub_backend/internal/registrations/repository"
	"contemplahub_backend/internal/registrations/service"
	"contemplahub_backend/platform/logger"
	"contemplahub_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the registrations domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new registrations module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, leads service.LeadChecker, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, leads, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "registrations"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	protected := ctx.Protected.Group("/lead-cadastros")
	m.handler.RegisterRoutes(protected)

	public := ctx.V1.Group("/cadastros/p")
	m.handler.RegisterPublicRoutes(public)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
