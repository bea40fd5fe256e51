package handler

import (
	"net/http"

	"contemplahub_backend/internal/registrations/service"
	"contemplahub_backend/internal/registrations/transport"
	"contemplahub_backend/platform/httpkit"
	"contemplahub_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for registration links.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the org-scoped routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
}

// RegisterPublicRoutes registers the token-authenticated routes used by the
// client-facing registration page.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/:token", h.GetByToken)
	rg.PATCH("/:token/pf", h.SubmitPersonData)
}

func (h *Handler) Create(c *gin.Context) {
	orgID, ok := httpkit.MustGetOrgID(c)
	if !ok {
		return
	}

	var req transport.CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	reg, err := h.svc.CreateLink(c.Request.Context(), orgID, service.CreateInput{
		LeadID:      req.LeadID,
		PropostaID:  req.PropostaID,
		TipoCliente: req.TipoCliente,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, transport.ToRegistrationResponse(reg))
}

func (h *Handler) GetByToken(c *gin.Context) {
	reg, err := h.svc.GetByToken(c.Request.Context(), c.Param("token"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToRegistrationResponse(reg))
}

func (h *Handler) SubmitPersonData(c *gin.Context) {
	var req transport.PersonDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	reg, err := h.svc.SubmitPersonData(c.Request.Context(), c.Param("token"), req.ToInput())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToRegistrationResponse(reg))
}
