// Package kanban provides the funnel board snapshot and metrics module.
package kanban

import (
	apphttp "contemplahub_backend/internal/http"
	"contemplahub_backend/internal/kanban/handler"
	"contemplahub_backend/internal/kanban/repository"
	"contemplahub_backend/internal/kanban/service"
	"contemplahub_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the kanban board module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates a new kanban module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc)

	return &Module{handler: h}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "kanban"
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	board := ctx.Protected.Group("/kanban")
	m.handler.RegisterRoutes(board)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
