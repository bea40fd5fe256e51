// Package leads provides the lead funnel domain module.
package leads

import (
	apphttp "contemplahub_backend/internal/http"
	"contemplahub_backend/internal/leads/handler"
	"contemplahub_backend/internal/leads/repository"
	"contemplahub_backend/internal/leads/service"
	"contemplahub_backend/platform/logger"
	"contemplahub_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the leads domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new leads module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	leads := ctx.Protected.Group("/leads")
	m.handler.RegisterRoutes(leads)

	interests := ctx.Protected.Group("/interesses")
	m.handler.RegisterInterestRoutes(interests)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
