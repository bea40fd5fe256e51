package handler

import (
	"contemplahub_backend/internal/kanban/service"
	"contemplahub_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for the kanban board.
type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the kanban routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Snapshot)
	rg.GET("/metrics", h.Metrics)
}

func (h *Handler) Snapshot(c *gin.Context) {
	orgID, ok := httpkit.MustGetOrgID(c)
	if !ok {
		return
	}

	showActive := c.Query("show_active") == "true"
	showLost := c.Query("show_lost") == "true"

	snap, err := h.svc.BuildSnapshot(c.Request.Context(), orgID, showActive, showLost)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, snap)
}

func (h *Handler) Metrics(c *gin.Context) {
	orgID, ok := httpkit.MustGetOrgID(c)
	if !ok {
		return
	}

	metrics, err := h.svc.Metrics(c.Request.Context(), orgID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, metrics)
}
