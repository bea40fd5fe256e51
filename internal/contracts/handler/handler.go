package handler

import (
	"net/http"

	"contemplahub_backend/internal/contracts/domain"
	"contemplahub_backend/internal/contracts/service"
	"contemplahub_backend/internal/contracts/transport"
	"contemplahub_backend/platform/httpkit"
	"contemplahub_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for contracts.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the contract routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id/status", h.UpdateStatus)
}

// RegisterLeadRoutes registers the per-lead contract listing.
func (h *Handler) RegisterLeadRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id/contratos", h.ListByLead)
}

func (h *Handler) Create(c *gin.Context) {
	orgID, ok := httpkit.MustGetOrgID(c)
	if !ok {
		return
	}

	var req transport.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	quota, contract, err := h.svc.CreateFromLead(c.Request.Context(), orgID, service.CreateInput{
		LeadID:          req.LeadID,
		ValorCarta:      req.ValorCarta,
		Administradora:  req.Administradora,
		Produto:         req.Produto,
		PrazoMeses:      req.PrazoMeses,
		TaxaAdmPct:      req.TaxaAdmPct,
		FundoReservaPct: req.FundoReservaPct,
		NumeroContrato:  req.NumeroContrato,
		Documento:       req.Documento,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, transport.CreateContractResponse{
		Cota:     transport.ToQuotaResponse(quota),
		Contrato: transport.ToContractResponse(contract),
	})
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

	contract, err := h.svc.Get(c.Request.Context(), orgID, id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToContractResponse(contract))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	orgID, ok := httpkit.MustGetOrgID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateStatus(c.Request.Context(), orgID, id, domain.Status(req.Status))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToStatusResultResponse(result))
}

func (h *Handler) ListByLead(c *gin.Context) {
	orgID, ok := httpkit.MustGetOrgID(c)
	if !ok {
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	contracts, err := h.svc.ListByLead(c.Request.Context(), orgID, leadID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToContractResponses(contracts))
}
