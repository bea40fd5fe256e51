package handler

import (
	"crypto/subtle"
	"net/http"
	"time"

	"contemplahub_backend/internal/marketing/service"
	"contemplahub_backend/internal/marketing/transport"
	"contemplahub_backend/platform/httpkit"
	"contemplahub_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"

	internalTokenHeader = "X-Internal-Token"
)

// Handler handles the public marketing guide endpoints.
type Handler struct {
	svc           *service.Service
	val           *validator.Validator
	internalToken string
}

func New(svc *service.Service, val *validator.Validator, internalToken string) *Handler {
	return &Handler{svc: svc, val: val, internalToken: internalToken}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/submit", h.Submit)
	rg.GET("/download", h.Download)
	rg.POST("/build-pdf", h.BuildPDF)
}

func (h *Handler) Submit(c *gin.Context) {
	var req transport.GuideSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	var (
		ua *string
		ip *string
	)
	if v := c.GetHeader("User-Agent"); v != "" {
		ua = &v
	}
	if v := c.ClientIP(); v != "" {
		ip = &v
	}

	leadID, err := h.svc.Submit(c.Request.Context(), req.ToInput(ua, ip))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.GuideSubmitResponse{LeadID: leadID})
}

// Download hands out the signed guide URL. mode=json returns it as a body,
// anything else redirects.
func (h *Handler) Download(c *gin.Context) {
	leadID, err := uuid.Parse(c.Query("lead_id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	signed, err := h.svc.DownloadURL(c.Request.Context(), leadID, c.Query("guide"))
	if httpkit.HandleError(c, err) {
		return
	}

	if c.Query("mode") == "json" {
		httpkit.OK(c, transport.GuideDownloadResponse{
			SignedURL:        signed.URL,
			ExpiresInSeconds: int(time.Until(signed.ExpiresAt).Seconds()),
		})
		return
	}

	c.Redirect(http.StatusFound, signed.URL)
}

// BuildPDF is operator-facing and guarded by a shared internal token.
func (h *Handler) BuildPDF(c *gin.Context) {
	if h.internalToken == "" {
		httpkit.Error(c, http.StatusInternalServerError, "internal PDF token is not configured", nil)
		return
	}
	got := c.GetHeader(internalTokenHeader)
	if subtle.ConstantTimeCompare([]byte(got), []byte(h.internalToken)) != 1 {
		httpkit.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	landingHash := c.Query("landing_hash")
	if landingHash == "" {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if err := h.svc.EnqueueBuildPDF(c.Request.Context(), landingHash, c.Query("guide")); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.GuideBuildResponse{Enqueued: true, LandingHash: landingHash})
}
