package service

import (
	"context"
	"strings"
	"testing"

	"contemplahub_backend/internal/proposals/repository"
	"contemplahub_backend/platform/apperr"
	"contemplahub_backend/platform/events"
	"contemplahub_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	existing     map[string]bool
	hashChecks   []string
	created      *repository.CreateParams
	byID         map[uuid.UUID]repository.Proposal
	byHash       map[string]repository.Proposal
	statusUpdate *string
}

func (f *fakeStore) HashExists(_ context.Context, hash string) (bool, error) {
	f.hashChecks = append(f.hashChecks, hash)
	return f.existing[hash], nil
}

func (f *fakeStore) Create(_ context.Context, params repository.CreateParams) (repository.Proposal, error) {
	f.created = &params
	return repository.Proposal{
		ID:         uuid.New(),
		OrgID:      params.OrgID,
		LeadID:     params.LeadID,
		Status:     params.Status,
		PublicHash: params.PublicHash,
		Payload:    params.Payload,
	}, nil
}

func (f *fakeStore) ListByLead(_ context.Context, orgID, leadID uuid.UUID) ([]repository.Proposal, error) {
	return nil, nil
}

func (f *fakeStore) GetByPublicHash(_ context.Context, hash string) (repository.Proposal, error) {
	p, ok := f.byHash[hash]
	if !ok {
		return repository.Proposal{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (repository.Proposal, error) {
	p, ok := f.byID[id]
	if !ok {
		return repository.Proposal{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id uuid.UUID, status string) (repository.Proposal, error) {
	f.statusUpdate = &status
	p := f.byID[id]
	p.Status = status
	return p, nil
}

type fakeLeads struct {
	info LeadInfo
	err  error
}

func (f *fakeLeads) LeadInfo(_ context.Context, _, _ uuid.UUID) (LeadInfo, error) {
	if f.err != nil {
		return LeadInfo{}, f.err
	}
	return f.info, nil
}

type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event)          { b.published = append(b.published, e) }
func (b *recordingBus) PublishSync(_ context.Context, _ events.Event) error { return nil }
func (b *recordingBus) Subscribe(_ string, _ events.Handler)               {}

func newService(store *fakeStore, leads *fakeLeads, bus *recordingBus) *Service {
	return New(store, leads, bus, logger.New("test"))
}

func TestRandomHashLengthAndAlphabet(t *testing.T) {
	h, err := randomHash(7)
	if err != nil {
		t.Fatalf("randomHash: %v", err)
	}
	if len(h) != 7 {
		t.Fatalf("expected 7 chars, got %q", h)
	}
	for _, r := range h {
		if !strings.ContainsRune(hashAlphabet, r) {
			t.Fatalf("character %q outside alphabet", r)
		}
	}
}

func TestGeneratePublicHashFirstDraw(t *testing.T) {
	store := &fakeStore{existing: map[string]bool{}}
	svc := newService(store, &fakeLeads{}, &recordingBus{})

	h, err := svc.generatePublicHash(context.Background())
	if err != nil {
		t.Fatalf("generatePublicHash: %v", err)
	}
	if len(h) != 7 {
		t.Fatalf("free pool should yield a 7-char hash, got %q", h)
	}
	if len(store.hashChecks) != 1 {
		t.Fatalf("expected a single existence check, got %d", len(store.hashChecks))
	}
}

type collidingStore struct {
	fakeStore
}

func (c *collidingStore) HashExists(_ context.Context, hash string) (bool, error) {
	c.hashChecks = append(c.hashChecks, hash)
	return true, nil
}

func TestGeneratePublicHashFallbackLength(t *testing.T) {
	store := &collidingStore{}
	svc := New(store, &fakeLeads{}, &recordingBus{}, logger.New("test"))

	h, err := svc.generatePublicHash(context.Background())
	if err != nil {
		t.Fatalf("generatePublicHash: %v", err)
	}
	if len(store.hashChecks) != 10 {
		t.Fatalf("expected 10 collision checks, got %d", len(store.hashChecks))
	}
	if len(h) != 10 {
		t.Fatalf("fallback hash should have 10 chars, got %q", h)
	}
}

func TestCreateSnapshotsLeadAndDefaultsMeta(t *testing.T) {
	leadID := uuid.New()
	orgID := uuid.New()
	tel := "+5511999990000"
	store := &fakeStore{existing: map[string]bool{}}
	leads := &fakeLeads{info: LeadInfo{ID: leadID, Nome: "Maria Souza", Telefone: &tel}}
	svc := newService(store, leads, &recordingBus{})

	created, err := svc.Create(context.Background(), orgID, leadID, nil, CreateInput{
		Titulo: "Carta 500k",
		Cenarios: []ScenarioInput{
			{ID: "A", Titulo: "Carta única", Produto: "imobiliario", ValorCarta: 500000, PrazoMeses: 200},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != StatusRascunho {
		t.Fatalf("default status should be rascunho, got %q", created.Status)
	}
	payload := store.created.Payload
	if payload.Cliente.Nome == nil || *payload.Cliente.Nome != "Maria Souza" {
		t.Fatalf("client snapshot missing name: %+v", payload.Cliente)
	}
	if payload.Meta == nil || payload.Meta.ValidadeDias == nil || *payload.Meta.ValidadeDias != 7 {
		t.Fatalf("default meta should carry validade of 7 days: %+v", payload.Meta)
	}
	if _, ok := payload.Extras["cliente_overrides"]; !ok {
		t.Fatalf("extras should always carry cliente_overrides")
	}
	if len(store.created.PublicHash) != 7 {
		t.Fatalf("expected a 7-char public hash, got %q", store.created.PublicHash)
	}
}

func TestCreateRejectsEmptyScenarios(t *testing.T) {
	svc := newService(&fakeStore{}, &fakeLeads{}, &recordingBus{})

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), nil, CreateInput{Titulo: "x"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsTerminalInitialStatus(t *testing.T) {
	svc := newService(&fakeStore{}, &fakeLeads{}, &recordingBus{})

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), nil, CreateInput{
		Titulo:   "x",
		Status:   StatusAprovada,
		Cenarios: []ScenarioInput{{ID: "A", Titulo: "t", Produto: "auto", ValorCarta: 80000, PrazoMeses: 72}},
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAcceptPublishesEvent(t *testing.T) {
	id := uuid.New()
	orgID := uuid.New()
	nome := "Maria Souza"
	p := repository.Proposal{
		ID:         id,
		OrgID:      orgID,
		LeadID:     uuid.New(),
		Status:     StatusEnviado,
		PublicHash: "abc1234",
		Payload:    repository.Payload{Cliente: repository.ClientInfo{Nome: &nome}},
	}
	store := &fakeStore{
		byHash: map[string]repository.Proposal{"abc1234": p},
		byID:   map[uuid.UUID]repository.Proposal{id: p},
	}
	bus := &recordingBus{}
	svc := newService(store, &fakeLeads{}, bus)

	updated, err := svc.Accept(context.Background(), "abc1234")
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if updated.Status != StatusAprovada {
		t.Fatalf("expected aprovada, got %q", updated.Status)
	}
	if len(bus.published) != 1 {
		t.Fatalf("expected one event, got %d", len(bus.published))
	}
	if bus.published[0].EventName() != "proposals.proposal.accepted" {
		t.Fatalf("unexpected event name %q", bus.published[0].EventName())
	}
}

func TestAcceptIsIdempotentForApproved(t *testing.T) {
	id := uuid.New()
	p := repository.Proposal{ID: id, Status: StatusAprovada, PublicHash: "abc1234"}
	store := &fakeStore{
		byHash: map[string]repository.Proposal{"abc1234": p},
		byID:   map[uuid.UUID]repository.Proposal{id: p},
	}
	bus := &recordingBus{}
	svc := newService(store, &fakeLeads{}, bus)

	updated, err := svc.Accept(context.Background(), "abc1234")
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if updated.Status != StatusAprovada {
		t.Fatalf("status should stay aprovada, got %q", updated.Status)
	}
	if store.statusUpdate != nil {
		t.Fatalf("no update should be issued for an already approved proposal")
	}
	if len(bus.published) != 0 {
		t.Fatalf("no event should fire on repeat acceptance")
	}
}

func TestAcceptRejectsInactive(t *testing.T) {
	p := repository.Proposal{ID: uuid.New(), Status: StatusInativa, PublicHash: "abc1234"}
	store := &fakeStore{byHash: map[string]repository.Proposal{"abc1234": p}}
	svc := newService(store, &fakeLeads{}, &recordingBus{})

	_, err := svc.Accept(context.Background(), "abc1234")
	if !apperr.Is(err, apperr.KindInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestUpdateStatusEnforcesTenancy(t *testing.T) {
	id := uuid.New()
	store := &fakeStore{byID: map[uuid.UUID]repository.Proposal{
		id: {ID: id, OrgID: uuid.New(), Status: StatusEnviado},
	}}
	svc := newService(store, &fakeLeads{}, &recordingBus{})

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), id, StatusInativa)
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
