package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"contemplahub_backend/internal/adapters/storage"
	"contemplahub_backend/internal/events"
	"contemplahub_backend/internal/marketing/catalog"
	"contemplahub_backend/internal/marketing/repository"
	"contemplahub_backend/internal/pdf"
	"contemplahub_backend/internal/scheduler"
	"contemplahub_backend/platform/apperr"
	"contemplahub_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	landing    repository.Landing
	landingErr error

	upserted *repository.UpsertLeadParams
	leadID   uuid.UUID

	consents []repository.ConsentParams

	consent    bool
	consentErr error

	leadOrg    uuid.UUID
	leadOrgErr error
}

func (f *fakeStore) ResolveLandingByHash(ctx context.Context, hash string) (repository.Landing, error) {
	return f.landing, f.landingErr
}

func (f *fakeStore) ResolveLandingBySlug(ctx context.Context, slug string) (repository.Landing, error) {
	return f.landing, f.landingErr
}

func (f *fakeStore) UpsertLead(ctx context.Context, params repository.UpsertLeadParams) (uuid.UUID, error) {
	f.upserted = &params
	return f.leadID, nil
}

func (f *fakeStore) InsertConsent(ctx context.Context, params repository.ConsentParams) error {
	f.consents = append(f.consents, params)
	return nil
}

func (f *fakeStore) HasConsent(ctx context.Context, leadID uuid.UUID) (bool, error) {
	return f.consent, f.consentErr
}

func (f *fakeStore) LeadOrg(ctx context.Context, leadID uuid.UUID) (uuid.UUID, error) {
	return f.leadOrg, f.leadOrgErr
}

type fakeObjects struct {
	signedKey string
	putKey    string
	putSize   int64
	ttl       time.Duration
}

func (f *fakeObjects) GenerateDownloadURL(ctx context.Context, bucket, fileKey string, ttl time.Duration) (*storage.PresignedURL, error) {
	f.signedKey = fileKey
	f.ttl = ttl
	return &storage.PresignedURL{URL: "https://minio.local/" + fileKey, FileKey: fileKey}, nil
}

func (f *fakeObjects) PutObject(ctx context.Context, bucket, fileKey, contentType string, reader io.Reader, size int64) error {
	f.putKey = fileKey
	f.putSize = size
	return nil
}

type fakeConverter struct {
	url string
	out []byte
}

func (f *fakeConverter) ConvertURL(ctx context.Context, pageURL string, opts pdf.ConvertOpts) ([]byte, error) {
	f.url = pageURL
	return f.out, nil
}

type fakeScheduler struct {
	payloads []scheduler.GuideBuildPDFPayload
}

func (f *fakeScheduler) EnqueueGuideBuildPDF(ctx context.Context, payload scheduler.GuideBuildPDFPayload) error {
	f.payloads = append(f.payloads, payload)
	return nil
}

type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(ctx context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *recordingBus) Subscribe(eventName string, handler events.Handler) {}

type testConfig struct {
	frontend string
	ttl      time.Duration
}

func (c testConfig) GetFrontendBaseURL() string          { return c.frontend }
func (c testConfig) GetGuideSignedURLTTL() time.Duration { return c.ttl }

func newTestService(store *fakeStore, objects *fakeObjects, conv *fakeConverter, sched *fakeScheduler, bus *recordingBus) *Service {
	return New(
		store,
		catalog.Default(),
		objects,
		"marketing-guides",
		conv,
		sched,
		bus,
		testConfig{frontend: "https://app.example.com/", ttl: 5 * time.Minute},
		logger.New("test"),
	)
}

func submitInput(landing repository.Landing) SubmitInput {
	hash := "lphash1"
	return SubmitInput{
		LandingHash: &hash,
		Nome:        "  Maria Silva  ",
		Telefone:    "11 98888-7777",
		Consent:     true,
	}
}

func TestSubmitRequiresConsent(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeObjects{}, &fakeConverter{}, &fakeScheduler{}, &recordingBus{})

	input := submitInput(repository.Landing{})
	input.Consent = false

	_, err := svc.Submit(context.Background(), input)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitCapturesLeadAndConsent(t *testing.T) {
	landing := repository.Landing{
		ID:          uuid.New(),
		OrgID:       uuid.New(),
		OwnerUserID: uuid.New(),
	}
	store := &fakeStore{landing: landing, leadID: uuid.New()}
	bus := &recordingBus{}
	svc := newTestService(store, &fakeObjects{}, &fakeConverter{}, &fakeScheduler{}, bus)

	leadID, err := svc.Submit(context.Background(), submitInput(landing))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if leadID != store.leadID {
		t.Fatalf("expected lead id %s, got %s", store.leadID, leadID)
	}

	if store.upserted == nil {
		t.Fatal("expected a lead upsert")
	}
	if store.upserted.OrgID != landing.OrgID {
		t.Errorf("expected org %s, got %s", landing.OrgID, store.upserted.OrgID)
	}
	if store.upserted.Nome != "Maria Silva" {
		t.Errorf("expected trimmed name, got %q", store.upserted.Nome)
	}
	if store.upserted.Telefone != "+5511988887777" {
		t.Errorf("expected E.164 phone, got %q", store.upserted.Telefone)
	}

	if len(store.consents) != 1 {
		t.Fatalf("expected 1 consent row, got %d", len(store.consents))
	}
	if store.consents[0].Scope != DefaultConsentScope {
		t.Errorf("expected default consent scope, got %q", store.consents[0].Scope)
	}

	if len(bus.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.published))
	}
	captured, ok := bus.published[0].(events.GuideLeadCaptured)
	if !ok {
		t.Fatalf("expected GuideLeadCaptured, got %T", bus.published[0])
	}
	if captured.OrganizationID != landing.OrgID {
		t.Errorf("event carries org %s, want %s", captured.OrganizationID, landing.OrgID)
	}
	if captured.GuideSlug != catalog.DefaultSlug {
		t.Errorf("event carries guide %q, want %q", captured.GuideSlug, catalog.DefaultSlug)
	}
}

func TestSubmitInactiveLandingIsNotFound(t *testing.T) {
	store := &fakeStore{landingErr: repository.ErrLandingNotFound}
	svc := newTestService(store, &fakeObjects{}, &fakeConverter{}, &fakeScheduler{}, &recordingBus{})

	_, err := svc.Submit(context.Background(), submitInput(repository.Landing{}))
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSubmitRequiresLandingReference(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeObjects{}, &fakeConverter{}, &fakeScheduler{}, &recordingBus{})

	input := submitInput(repository.Landing{})
	input.LandingHash = nil

	_, err := svc.Submit(context.Background(), input)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDownloadURLGatesOnConsent(t *testing.T) {
	store := &fakeStore{consent: false}
	svc := newTestService(store, &fakeObjects{}, &fakeConverter{}, &fakeScheduler{}, &recordingBus{})

	_, err := svc.DownloadURL(context.Background(), uuid.New(), "")
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestDownloadURLSignsOrgPath(t *testing.T) {
	orgID := uuid.New()
	store := &fakeStore{consent: true, leadOrg: orgID}
	objects := &fakeObjects{}
	svc := newTestService(store, objects, &fakeConverter{}, &fakeScheduler{}, &recordingBus{})

	signed, err := svc.DownloadURL(context.Background(), uuid.New(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantKey := "orgs/" + orgID.String() + "/guides/guia-estrategico-consorcio-v1.pdf"
	if objects.signedKey != wantKey {
		t.Errorf("signed key %q, want %q", objects.signedKey, wantKey)
	}
	if objects.ttl != 5*time.Minute {
		t.Errorf("signed TTL %v, want 5m", objects.ttl)
	}
	if signed.URL == "" {
		t.Error("expected a non-empty signed URL")
	}
}

func TestDownloadURLUnknownLeadIsNotFound(t *testing.T) {
	store := &fakeStore{consent: true, leadOrgErr: repository.ErrLeadNotFound}
	svc := newTestService(store, &fakeObjects{}, &fakeConverter{}, &fakeScheduler{}, &recordingBus{})

	_, err := svc.DownloadURL(context.Background(), uuid.New(), "")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestEnqueueBuildPDFResolvesLanding(t *testing.T) {
	landing := repository.Landing{ID: uuid.New(), OrgID: uuid.New(), OwnerUserID: uuid.New()}
	store := &fakeStore{landing: landing}
	sched := &fakeScheduler{}
	svc := newTestService(store, &fakeObjects{}, &fakeConverter{}, sched, &recordingBus{})

	if err := svc.EnqueueBuildPDF(context.Background(), "lphash1", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sched.payloads) != 1 {
		t.Fatalf("expected 1 enqueued task, got %d", len(sched.payloads))
	}
	got := sched.payloads[0]
	if got.OrganizationID != landing.OrgID.String() {
		t.Errorf("payload org %q, want %q", got.OrganizationID, landing.OrgID)
	}
	if got.LandingHash != "lphash1" {
		t.Errorf("payload hash %q, want lphash1", got.LandingHash)
	}
}

func TestBuildGuidePDFRendersPrintPageAndStores(t *testing.T) {
	orgID := uuid.New()
	objects := &fakeObjects{}
	conv := &fakeConverter{out: []byte("%PDF-1.7 fake")}
	svc := newTestService(&fakeStore{}, objects, conv, &fakeScheduler{}, &recordingBus{})

	err := svc.BuildGuidePDF(context.Background(), orgID.String(), "lphash1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := "https://app.example.com/guia-consorcio/print?lp=lphash1"; conv.url != want {
		t.Errorf("render URL %q, want %q", conv.url, want)
	}
	if !strings.HasSuffix(objects.putKey, "/guides/guia-estrategico-consorcio-v1.pdf") {
		t.Errorf("stored key %q lacks guide path", objects.putKey)
	}
	if objects.putSize != int64(len(conv.out)) {
		t.Errorf("stored %d bytes, want %d", objects.putSize, len(conv.out))
	}
}

func TestBuildGuidePDFRejectsBadOrgID(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeObjects{}, &fakeConverter{}, &fakeScheduler{}, &recordingBus{})

	err := svc.BuildGuidePDF(context.Background(), "not-a-uuid", "lphash1", "")
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}
