package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"contemplahub_backend/internal/adapters/storage"
	"contemplahub_backend/internal/events"
	"contemplahub_backend/internal/marketing/catalog"
	"contemplahub_backend/internal/marketing/repository"
	"contemplahub_backend/internal/pdf"
	"contemplahub_backend/internal/scheduler"
	"contemplahub_backend/platform/apperr"
	"contemplahub_backend/platform/logger"
	"contemplahub_backend/platform/phone"

	"github.com/google/uuid"
)

// DefaultConsentScope tags consent rows created by the guide landing.
const DefaultConsentScope = "guia_estrategico_consorcio"

type Store interface {
	ResolveLandingByHash(ctx context.Context, hash string) (repository.Landing, error)
	ResolveLandingBySlug(ctx context.Context, slug string) (repository.Landing, error)
	UpsertLead(ctx context.Context, params repository.UpsertLeadParams) (uuid.UUID, error)
	InsertConsent(ctx context.Context, params repository.ConsentParams) error
	HasConsent(ctx context.Context, leadID uuid.UUID) (bool, error)
	LeadOrg(ctx context.Context, leadID uuid.UUID) (uuid.UUID, error)
}

// ObjectStore is the slice of the storage service the guide flow needs.
type ObjectStore interface {
	GenerateDownloadURL(ctx context.Context, bucket, fileKey string, ttl time.Duration) (*storage.PresignedURL, error)
	PutObject(ctx context.Context, bucket, fileKey, contentType string, reader io.Reader, size int64) error
}

// PageConverter renders a web page to PDF bytes.
type PageConverter interface {
	ConvertURL(ctx context.Context, pageURL string, opts pdf.ConvertOpts) ([]byte, error)
}

// Config is the marketing slice of the application configuration.
type Config interface {
	GetFrontendBaseURL() string
	GetGuideSignedURLTTL() time.Duration
}

type Service struct {
	store     Store
	cat       *catalog.Catalog
	objects   ObjectStore
	bucket    string
	converter PageConverter
	sched     scheduler.GuidePDFScheduler
	bus       events.Bus
	cfg       Config
	log       *logger.Logger
}

func New(
	store Store,
	cat *catalog.Catalog,
	objects ObjectStore,
	bucket string,
	converter PageConverter,
	sched scheduler.GuidePDFScheduler,
	bus events.Bus,
	cfg Config,
	log *logger.Logger,
) *Service {
	return &Service{
		store:     store,
		cat:       cat,
		objects:   objects,
		bucket:    bucket,
		converter: converter,
		sched:     sched,
		bus:       bus,
		cfg:       cfg,
		log:       log,
	}
}

// SubmitInput is a landing form capture. The visitor is a lead, never an
// authenticated user.
type SubmitInput struct {
	LandingHash *string
	LandingSlug *string

	Nome     string
	Telefone string
	Email    *string

	Consent      bool
	ConsentScope string
	GuideSlug    string

	UTMSource   *string
	UTMMedium   *string
	UTMCampaign *string
	UTMTerm     *string
	UTMContent  *string

	ReferrerURL *string
	UserAgent   *string
	IP          *string
}

// Submit captures a guide lead: resolves the landing, upserts the lead under
// the landing's organization, records consent and announces the capture.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (uuid.UUID, error) {
	const op = "marketing.Submit"

	if !input.Consent {
		return uuid.Nil, apperr.Validation("consent is required").WithOp(op)
	}

	guide, ok := s.cat.Get(input.GuideSlug)
	if !ok {
		return uuid.Nil, apperr.Validation("unknown guide: " + input.GuideSlug).WithOp(op)
	}

	landing, err := s.resolveLanding(ctx, input.LandingHash, input.LandingSlug)
	if err != nil {
		return uuid.Nil, err
	}

	telefone := phone.NormalizeE164(input.Telefone)

	leadID, err := s.store.UpsertLead(ctx, repository.UpsertLeadParams{
		OrgID:       landing.OrgID,
		OwnerUserID: landing.OwnerUserID,
		LandingID:   landing.ID,
		Nome:        strings.TrimSpace(input.Nome),
		Telefone:    telefone,
		Email:       input.Email,
		ReferrerURL: input.ReferrerURL,
		UserAgent:   input.UserAgent,
		UTMSource:   input.UTMSource,
		UTMMedium:   input.UTMMedium,
		UTMCampaign: input.UTMCampaign,
		UTMTerm:     input.UTMTerm,
		UTMContent:  input.UTMContent,
	})
	if err != nil {
		return uuid.Nil, apperr.Wrap(apperr.KindInternal, "upsert lead", err).WithOp(op)
	}

	scope := input.ConsentScope
	if scope == "" {
		scope = DefaultConsentScope
	}
	if err := s.store.InsertConsent(ctx, repository.ConsentParams{
		OrgID:     landing.OrgID,
		LeadID:    leadID,
		Scope:     scope,
		IP:        input.IP,
		UserAgent: input.UserAgent,
	}); err != nil {
		return uuid.Nil, apperr.Wrap(apperr.KindInternal, "record consent", err).WithOp(op)
	}

	landingID := landing.ID
	s.bus.Publish(ctx, events.GuideLeadCaptured{
		BaseEvent:      events.NewBaseEvent(),
		OrganizationID: landing.OrgID,
		LeadID:         leadID,
		LandingID:      &landingID,
		GuideSlug:      guide.Slug,
		Nome:           strings.TrimSpace(input.Nome),
		Email:          input.Email,
		Telefone:       &telefone,
	})

	return leadID, nil
}

func (s *Service) resolveLanding(ctx context.Context, hash, slug *string) (repository.Landing, error) {
	const op = "marketing.resolveLanding"

	var (
		landing repository.Landing
		err     error
	)
	switch {
	case hash != nil && *hash != "":
		landing, err = s.store.ResolveLandingByHash(ctx, *hash)
	case slug != nil && *slug != "":
		landing, err = s.store.ResolveLandingBySlug(ctx, *slug)
	default:
		return repository.Landing{}, apperr.Validation("landing hash or slug is required").WithOp(op)
	}

	if errors.Is(err, repository.ErrLandingNotFound) {
		return repository.Landing{}, apperr.NotFound("landing not found or inactive").WithOp(op)
	}
	if err != nil {
		return repository.Landing{}, apperr.Wrap(apperr.KindInternal, "resolve landing", err).WithOp(op)
	}
	return landing, nil
}

// DownloadURL hands out a short-lived signed URL for the guide, gated on a
// positive consent log for the lead.
func (s *Service) DownloadURL(ctx context.Context, leadID uuid.UUID, guideSlug string) (*storage.PresignedURL, error) {
	const op = "marketing.DownloadURL"

	guide, ok := s.cat.Get(guideSlug)
	if !ok {
		return nil, apperr.NotFound("unknown guide: " + guideSlug).WithOp(op)
	}

	hasConsent, err := s.store.HasConsent(ctx, leadID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "check consent", err).WithOp(op)
	}
	if !hasConsent {
		return nil, apperr.Forbidden("lead has no download consent on record").WithOp(op)
	}

	orgID, err := s.store.LeadOrg(ctx, leadID)
	if errors.Is(err, repository.ErrLeadNotFound) {
		return nil, apperr.NotFound("lead not found").WithOp(op)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "load lead", err).WithOp(op)
	}

	signed, err := s.objects.GenerateDownloadURL(ctx, s.bucket, s.cat.ObjectKey(orgID, guide), s.cfg.GetGuideSignedURLTTL())
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "sign download URL", err).WithOp(op)
	}
	return signed, nil
}

// EnqueueBuildPDF schedules a background rebuild of an organization's guide.
func (s *Service) EnqueueBuildPDF(ctx context.Context, landingHash, guideSlug string) error {
	const op = "marketing.EnqueueBuildPDF"

	guide, ok := s.cat.Get(guideSlug)
	if !ok {
		return apperr.NotFound("unknown guide: " + guideSlug).WithOp(op)
	}

	h := landingHash
	landing, err := s.resolveLanding(ctx, &h, nil)
	if err != nil {
		return err
	}

	if s.sched == nil {
		return apperr.New(apperr.KindUpstream, "guide scheduler is not configured").WithOp(op)
	}

	if err := s.sched.EnqueueGuideBuildPDF(ctx, scheduler.GuideBuildPDFPayload{
		OrganizationID: landing.OrgID.String(),
		LandingHash:    landingHash,
		GuideSlug:      guide.Slug,
	}); err != nil {
		return apperr.Wrap(apperr.KindInternal, "enqueue guide build", err).WithOp(op)
	}
	return nil
}

// BuildGuidePDF renders the frontend print page through Gotenberg and stores
// the result at the organization's guide path, replacing any previous build.
// It runs inside the worker.
func (s *Service) BuildGuidePDF(ctx context.Context, orgIDStr, landingHash, guideSlug string) error {
	const op = "marketing.BuildGuidePDF"

	orgID, err := uuid.Parse(orgIDStr)
	if err != nil {
		return apperr.Wrap(apperr.KindBadRequest, "parse organization id", err).WithOp(op)
	}

	guide, ok := s.cat.Get(guideSlug)
	if !ok {
		return apperr.NotFound("unknown guide: " + guideSlug).WithOp(op)
	}

	printURL := strings.TrimRight(s.cfg.GetFrontendBaseURL(), "/") + "/guia-consorcio/print?lp=" + landingHash

	data, err := s.converter.ConvertURL(ctx, printURL, pdf.GuidePrintOpts())
	if err != nil {
		return apperr.Wrap(apperr.KindUpstream, "render guide PDF", err).WithOp(op)
	}

	key := s.cat.ObjectKey(orgID, guide)
	if err := s.objects.PutObject(ctx, s.bucket, key, "application/pdf", bytes.NewReader(data), int64(len(data))); err != nil {
		return apperr.Wrap(apperr.KindInternal, "store guide PDF", err).WithOp(op)
	}

	s.log.Info("guide PDF rebuilt", "org_id", orgID, "guide", guide.Slug, "key", key, "bytes", len(data))
	return nil
}
