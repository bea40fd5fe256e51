package handler

import (
	"net/http"

	"contemplahub_backend/internal/leads/domain"
	"contemplahub_backend/internal/leads/service"
	"contemplahub_backend/internal/leads/transport"
	"contemplahub_backend/platform/httpkit"
	"contemplahub_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for leads.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the lead routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id/stage", h.MoveStage)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/interesses", h.CreateInterest)
	rg.GET("/:id/interesses", h.ListInterests)
}

// RegisterInterestRoutes registers routes addressed by interest id.
func (h *Handler) RegisterInterestRoutes(rg *gin.RouterGroup) {
	rg.PATCH("/:interestId/fechar", h.CloseInterest)
}

func (h *Handler) Create(c *gin.Context) {
	orgID, ok := httpkit.MustGetOrgID(c)
	if !ok {
		return
	}

	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.Create(c.Request.Context(), orgID, service.CreateLeadInput{
		Nome:     req.Nome,
		Telefone: req.Telefone,
		Email:    req.Email,
		Origem:   req.Origem,
		OwnerID:  req.OwnerID,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, transport.ToLeadResponse(lead))
}

func (h *Handler) GetByID(c *gin.Context) {
	orgID, ok := httpkit.MustGetOrgID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	lead, err := h.svc.Get(c.Request.Context(), orgID, id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToLeadResponse(lead))
}

func (h *Handler) MoveStage(c *gin.Context) {
	orgID, ok := httpkit.MustGetOrgID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.MoveStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.MoveStage(c.Request.Context(), orgID, id, domain.Stage(req.Etapa), req.Reason)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.MoveStageResponse{
		Lead:    transport.ToLeadResponse(result.Lead),
		Skipped: result.Skipped,
	})
}

func (h *Handler) Delete(c *gin.Context) {
	orgID, ok := httpkit.MustGetOrgID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), orgID, id); httpkit.HandleError(c, err) {
		return
	}

	httpkit.NoContent(c)
}

func (h *Handler) CreateInterest(c *gin.Context) {
	orgID, ok := httpkit.MustGetOrgID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.CreateInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	interest, err := h.svc.CreateInterest(c.Request.Context(), orgID, id, service.CreateInterestInput{
		Produto:        req.Produto,
		ValorTotal:     req.ValorTotal,
		PrazoMeses:     req.PrazoMeses,
		Objetivo:       req.Objetivo,
		PerfilDesejado: req.PerfilDesejado,
		Observacao:     req.Observacao,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, transport.ToInterestResponse(interest))
}

func (h *Handler) ListInterests(c *gin.Context) {
	orgID, ok := httpkit.MustGetOrgID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	interests, err := h.svc.ListInterests(c.Request.Context(), orgID, id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToInterestResponses(interests))
}

func (h *Handler) CloseInterest(c *gin.Context) {
	orgID, ok := httpkit.MustGetOrgID(c)
	if !ok {
		return
	}

	interestID, err := uuid.Parse(c.Param("interestId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	interest, err := h.svc.CloseInterest(c.Request.Context(), orgID, interestID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToInterestResponse(interest))
}
