package transport

import (
	"contemplahub_backend/internal/marketing/service"

	"github.com/google/uuid"
)

// ── Requests ────────────────────────────────────────────────────────────

// GuideSubmitRequest is the landing form payload. The visitor is a lead,
// not an authenticated user.
type GuideSubmitRequest struct {
	LandingSlug *string `json:"landingSlug" validate:"omitempty,max=120"`
	LandingHash *string `json:"landingHash" validate:"omitempty,max=64"`

	Nome     string  `json:"nome" validate:"required,min=2,max=160"`
	Telefone string  `json:"telefone" validate:"required,min=8,max=32"`
	Email    *string `json:"email" validate:"omitempty,email"`

	Consentimento bool   `json:"consentimento"`
	ConsentScope  string `json:"consentScope" validate:"omitempty,max=120"`
	GuideSlug     string `json:"guideSlug" validate:"omitempty,max=120"`

	UtmSource   *string `json:"utmSource" validate:"omitempty,max=160"`
	UtmMedium   *string `json:"utmMedium" validate:"omitempty,max=160"`
	UtmCampaign *string `json:"utmCampaign" validate:"omitempty,max=160"`
	UtmTerm     *string `json:"utmTerm" validate:"omitempty,max=160"`
	UtmContent  *string `json:"utmContent" validate:"omitempty,max=160"`

	ReferrerURL *string `json:"referrerUrl" validate:"omitempty,max=512"`
	UserAgent   *string `json:"userAgent" validate:"omitempty,max=512"`
}

// ── Responses ───────────────────────────────────────────────────────────

type GuideSubmitResponse struct {
	LeadID uuid.UUID `json:"leadId"`
}

type GuideDownloadResponse struct {
	SignedURL        string `json:"signedUrl"`
	ExpiresInSeconds int    `json:"expiresInSeconds"`
}

type GuideBuildResponse struct {
	Enqueued    bool   `json:"enqueued"`
	LandingHash string `json:"landingHash"`
}

// ── Mappers ─────────────────────────────────────────────────────────────

func (r GuideSubmitRequest) ToInput(userAgent, ip *string) service.SubmitInput {
	ua := r.UserAgent
	if ua == nil {
		ua = userAgent
	}
	return service.SubmitInput{
		LandingHash:  r.LandingHash,
		LandingSlug:  r.LandingSlug,
		Nome:         r.Nome,
		Telefone:     r.Telefone,
		Email:        r.Email,
		Consent:      r.Consentimento,
		ConsentScope: r.ConsentScope,
		GuideSlug:    r.GuideSlug,
		UTMSource:    r.UtmSource,
		UTMMedium:    r.UtmMedium,
		UTMCampaign:  r.UtmCampaign,
		UTMTerm:      r.UtmTerm,
		UTMContent:   r.UtmContent,
		ReferrerURL:  r.ReferrerURL,
		UserAgent:    ua,
		IP:           ip,
	}
}
