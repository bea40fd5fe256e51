package handler

import (
	"net/http"

	"contemplahub_backend/internal/diagnostics/service"
	"contemplahub_backend/internal/diagnostics/transport"
	"contemplahub_backend/platform/httpkit"
	"contemplahub_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for lead diagnostics.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the diagnostic routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/:leadId", h.Save)
	rg.GET("/:leadId", h.GetByLead)
}

func (h *Handler) Save(c *gin.Context) {
	orgID, ok := httpkit.MustGetOrgID(c)
	if !ok {
		return
	}

	leadID, err := uuid.Parse(c.Param("leadId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.SaveDiagnosticRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	saved, _, err := h.svc.Save(c.Request.Context(), orgID, leadID, req.ToInput())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToDiagnosticResponse(saved))
}

func (h *Handler) GetByLead(c *gin.Context) {
	orgID, ok := httpkit.MustGetOrgID(c)
	if !ok {
		return
	}

	leadID, err := uuid.Parse(c.Param("leadId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	d, err := h.svc.Get(c.Request.Context(), orgID, leadID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToDiagnosticResponse(d))
}
