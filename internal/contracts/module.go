// Package contracts provides the quota and contract lifecycle module.
package contracts

import (
	"contemplahub_backend/internal/contracts/handler"
	"contemplahub_backend/internal/contracts/repository"
	"contemplahub_backend/internal/contracts/service"
	apphttp "contemplahub_backend/internal/http"
	"contemplahub_backend/platform/logger"
	"contemplahub_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the contracts domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new contracts module with all dependencies wired. The
// lead port is injected so the composition root decides how contract status
// changes reach the funnel.
func NewModule(pool *pgxpool.Pool, leadPort service.LeadPort, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, leadPort, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "contracts"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	contracts := ctx.Protected.Group("/contratos")
	m.handler.RegisterRoutes(contracts)

	leads := ctx.Protected.Group("/leads")
	m.handler.RegisterLeadRoutes(leads)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
