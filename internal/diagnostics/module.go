// Package diagnostics provides the lead diagnostic and scoring module.
package diagnostics

import (
	apphttp "contemplahub_backend/internal/http"
	"contemplahub_backend/internal/diagnostics/handler"
	"contemplahub_backend/internal/diagnostics/repository"
	"contemplahub_backend/internal/diagnostics/service"
	"contemplahub_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the diagnostics domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new diagnostics module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, leads service.LeadChecker, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, leads)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "diagnostics"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	diag := ctx.Protected.Group("/diagnostico")
	m.handler.RegisterRoutes(diag)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
