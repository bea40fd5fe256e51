package handler

import (
	"net/http"

	"contemplahub_backend/internal/proposals/service"
	"contemplahub_backend/internal/proposals/transport"
	"contemplahub_backend/platform/httpkit"
	"contemplahub_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for lead proposals.
type Handler struct {
	svc             *service.Service
	val             *validator.Validator
	frontendBaseURL string
}

func New(svc *service.Service, val *validator.Validator, frontendBaseURL string) *Handler {
	return &Handler{svc: svc, val: val, frontendBaseURL: frontendBaseURL}
}

// RegisterRoutes registers the org-scoped proposal routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/lead/:leadId", h.ListByLead)
	rg.POST("/lead/:leadId", h.Create)
	rg.PATCH("/:id/status", h.UpdateStatus)
	rg.GET("/:id/pdf", h.PDF)
}

// RegisterPublicRoutes registers the share-link routes. They authenticate by
// hash alone.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/:hash", h.GetPublic)
	rg.POST("/:hash/accept", h.Accept)
	rg.GET("/:hash/qr", h.QRCode)
	rg.GET("/:hash/pdf", h.PublicPDF)
}

func (h *Handler) ListByLead(c *gin.Context) {
	orgID, ok := httpkit.MustGetOrgID(c)
	if !ok {
		return
	}

	leadID, err := uuid.Parse(c.Param("leadId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	proposals, err := h.svc.ListByLead(c.Request.Context(), orgID, leadID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToProposalResponses(proposals))
}

func (h *Handler) Create(c *gin.Context) {
	orgID, ok := httpkit.MustGetOrgID(c)
	if !ok {
		return
	}

	leadID, err := uuid.Parse(c.Param("leadId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	var createdBy *uuid.UUID
	if id := httpkit.GetIdentity(c); id.IsAuthenticated() {
		uid := id.UserID()
		createdBy = &uid
	}

	created, err := h.svc.Create(c.Request.Context(), orgID, leadID, createdBy, req.ToInput())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, transport.ToProposalResponse(created))
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

	updated, err := h.svc.UpdateStatus(c.Request.Context(), orgID, id, req.Status)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToProposalResponse(updated))
}

func (h *Handler) GetPublic(c *gin.Context) {
	p, err := h.svc.GetByPublicHash(c.Request.Context(), c.Param("hash"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToProposalResponse(p))
}

func (h *Handler) Accept(c *gin.Context) {
	p, err := h.svc.Accept(c.Request.Context(), c.Param("hash"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToProposalResponse(p))
}

// PDF streams a generated proposal document to a consultant.
func (h *Handler) PDF(c *gin.Context) {
	orgID, ok := httpkit.MustGetOrgID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	data, err := h.svc.PDF(c.Request.Context(), orgID, id)
	if httpkit.HandleError(c, err) {
		return
	}

	c.Header("Content-Disposition", `attachment; filename="proposta.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// PublicPDF streams the same document from the share link.
func (h *Handler) PublicPDF(c *gin.Context) {
	data, err := h.svc.PDFByPublicHash(c.Request.Context(), c.Param("hash"))
	if httpkit.HandleError(c, err) {
		return
	}

	c.Header("Content-Disposition", `attachment; filename="proposta.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// QRCode renders a PNG pointing at the frontend proposal page for the hash.
func (h *Handler) QRCode(c *gin.Context) {
	hash := c.Param("hash")

	// Resolve first so dead hashes 404 instead of producing a broken QR.
	if _, err := h.svc.GetByPublicHash(c.Request.Context(), hash); httpkit.HandleError(c, err) {
		return
	}

	url := h.frontendBaseURL + "/propostas/" + hash
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to render qr code", nil)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
