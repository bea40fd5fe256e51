package service

import (
	"context"
	"errors"
	"testing"

	"contemplahub_backend/internal/contracts/domain"
	"contemplahub_backend/internal/contracts/repository"
	leads "contemplahub_backend/internal/leads/domain"
	"contemplahub_backend/platform/apperr"
	"contemplahub_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	contract repository.Contract
	getErr   error

	updated      *repository.Contract
	updateErr    error
	gotExpected  domain.Status
	gotNext      domain.Status
	updateCalled bool

	leadID     uuid.UUID
	leadIDErr  error
	created    bool
	createArgs repository.CreateParams
}

func (f *fakeStore) CreateWithQuota(_ context.Context, params repository.CreateParams) (repository.Quota, repository.Contract, error) {
	f.created = true
	f.createArgs = params
	quota := repository.Quota{ID: uuid.New(), OrgID: params.OrgID, LeadID: params.LeadID, ValorCarta: params.ValorCarta}
	contract := repository.Contract{ID: uuid.New(), OrgID: params.OrgID, CotaID: quota.ID, Status: domain.StatusPendenteAssinatura}
	return quota, contract, nil
}

func (f *fakeStore) GetByID(_ context.Context, _ uuid.UUID) (repository.Contract, error) {
	return f.contract, f.getErr
}

func (f *fakeStore) UpdateStatus(_ context.Context, _ uuid.UUID, expected, next domain.Status) (repository.Contract, error) {
	f.updateCalled = true
	f.gotExpected = expected
	f.gotNext = next
	if f.updateErr != nil {
		return repository.Contract{}, f.updateErr
	}
	c := f.contract
	c.Status = next
	f.updated = &c
	return c, nil
}

func (f *fakeStore) LeadIDForContract(_ context.Context, _ uuid.UUID) (uuid.UUID, error) {
	return f.leadID, f.leadIDErr
}

func (f *fakeStore) ListByLead(_ context.Context, _, _ uuid.UUID) ([]repository.Contract, error) {
	return nil, nil
}

type fakeLeadPort struct {
	belongsErr error
	moveErr    error

	movedLead  uuid.UUID
	movedStage leads.Stage
	moveCalled bool
}

func (f *fakeLeadPort) LeadBelongsToOrg(_ context.Context, _, _ uuid.UUID) error {
	return f.belongsErr
}

func (f *fakeLeadPort) MoveStage(_ context.Context, _, leadID uuid.UUID, target leads.Stage, _ *string) error {
	f.moveCalled = true
	f.movedLead = leadID
	f.movedStage = target
	return f.moveErr
}

func newTestService(store *fakeStore, port *fakeLeadPort) *Service {
	return New(store, port, logger.New("development"))
}

func TestUpdateStatusNoOpShortCircuits(t *testing.T) {
	orgID := uuid.New()
	store := &fakeStore{contract: repository.Contract{ID: uuid.New(), OrgID: orgID, Status: domain.StatusAlocado}}
	port := &fakeLeadPort{}
	svc := newTestService(store, port)

	result, err := svc.UpdateStatus(context.Background(), orgID, store.contract.ID, domain.StatusAlocado)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if !result.Skipped {
		t.Error("expected skipped result")
	}
	if store.updateCalled {
		t.Error("no-op must not hit the store")
	}
	if result.LeadAfetado != nil {
		t.Error("no-op must not report an affected lead")
	}
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	orgID := uuid.New()
	store := &fakeStore{contract: repository.Contract{ID: uuid.New(), OrgID: orgID, Status: domain.StatusPendentePagamento}}
	svc := newTestService(store, &fakeLeadPort{})

	_, err := svc.UpdateStatus(context.Background(), orgID, store.contract.ID, domain.StatusContemplado)
	if !apperr.Is(err, apperr.KindInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if store.updateCalled {
		t.Error("rejected transition must not hit the store")
	}
}

func TestUpdateStatusForbiddenForOtherOrg(t *testing.T) {
	store := &fakeStore{contract: repository.Contract{ID: uuid.New(), OrgID: uuid.New(), Status: domain.StatusAlocado}}
	svc := newTestService(store, &fakeLeadPort{})

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), store.contract.ID, domain.StatusContemplado)
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestUpdateStatusCouplesAlocadoToAtivo(t *testing.T) {
	orgID := uuid.New()
	leadID := uuid.New()
	store := &fakeStore{
		contract: repository.Contract{ID: uuid.New(), OrgID: orgID, Status: domain.StatusPendentePagamento},
		leadID:   leadID,
	}
	port := &fakeLeadPort{}
	svc := newTestService(store, port)

	result, err := svc.UpdateStatus(context.Background(), orgID, store.contract.ID, domain.StatusAlocado)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if store.gotExpected != domain.StatusPendentePagamento {
		t.Errorf("CAS expected status = %s", store.gotExpected)
	}
	if !port.moveCalled || port.movedStage != leads.StageAtivo || port.movedLead != leadID {
		t.Errorf("funnel coupling: called=%v stage=%s lead=%s", port.moveCalled, port.movedStage, port.movedLead)
	}
	if result.LeadAfetado == nil || *result.LeadAfetado != leadID {
		t.Errorf("affected lead = %v", result.LeadAfetado)
	}
	if result.LeadMovidoPara == nil || *result.LeadMovidoPara != leads.StageAtivo {
		t.Errorf("moved-to stage = %v", result.LeadMovidoPara)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestUpdateStatusCouplesCanceladoToPerdido(t *testing.T) {
	orgID := uuid.New()
	store := &fakeStore{
		contract: repository.Contract{ID: uuid.New(), OrgID: orgID, Status: domain.StatusAlocado},
		leadID:   uuid.New(),
	}
	port := &fakeLeadPort{}
	svc := newTestService(store, port)

	result, err := svc.UpdateStatus(context.Background(), orgID, store.contract.ID, domain.StatusCancelado)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if port.movedStage != leads.StagePerdido {
		t.Errorf("moved stage = %s, want perdido", port.movedStage)
	}
	if result.StatusNovo != domain.StatusCancelado {
		t.Errorf("new status = %s", result.StatusNovo)
	}
}

func TestUpdateStatusNonCouplingStatusLeavesLeadAlone(t *testing.T) {
	orgID := uuid.New()
	store := &fakeStore{
		contract: repository.Contract{ID: uuid.New(), OrgID: orgID, Status: domain.StatusAlocado},
		leadID:   uuid.New(),
	}
	port := &fakeLeadPort{}
	svc := newTestService(store, port)

	result, err := svc.UpdateStatus(context.Background(), orgID, store.contract.ID, domain.StatusContemplado)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if port.moveCalled {
		t.Error("contemplado must not drive the funnel")
	}
	if result.LeadAfetado != nil {
		t.Errorf("affected lead = %v, want nil", result.LeadAfetado)
	}
}

func TestUpdateStatusFunnelFailureIsSecondary(t *testing.T) {
	orgID := uuid.New()
	store := &fakeStore{
		contract: repository.Contract{ID: uuid.New(), OrgID: orgID, Status: domain.StatusPendentePagamento},
		leadID:   uuid.New(),
	}
	port := &fakeLeadPort{moveErr: errors.New("leads unavailable")}
	svc := newTestService(store, port)

	result, err := svc.UpdateStatus(context.Background(), orgID, store.contract.ID, domain.StatusAlocado)
	if err != nil {
		t.Fatalf("primary transition must succeed, got %v", err)
	}
	if result.StatusNovo != domain.StatusAlocado {
		t.Errorf("new status = %s", result.StatusNovo)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("warnings = %v, want one", result.Warnings)
	}
	if result.LeadMovidoPara != nil {
		t.Error("failed move must not report a moved-to stage")
	}
}

func TestUpdateStatusConcurrentChangeConflicts(t *testing.T) {
	orgID := uuid.New()
	store := &fakeStore{
		contract:  repository.Contract{ID: uuid.New(), OrgID: orgID, Status: domain.StatusPendentePagamento},
		updateErr: repository.ErrStatusChanged,
	}
	svc := newTestService(store, &fakeLeadPort{})

	_, err := svc.UpdateStatus(context.Background(), orgID, store.contract.ID, domain.StatusAlocado)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateFromLeadParsesLocalizedMoney(t *testing.T) {
	orgID := uuid.New()
	store := &fakeStore{}
	svc := newTestService(store, &fakeLeadPort{})

	quota, contract, err := svc.CreateFromLead(context.Background(), orgID, CreateInput{
		LeadID:     uuid.New(),
		ValorCarta: "250.000,00",
	})
	if err != nil {
		t.Fatalf("CreateFromLead: %v", err)
	}
	if store.createArgs.ValorCarta != 250000 {
		t.Errorf("parsed value = %v, want 250000", store.createArgs.ValorCarta)
	}
	if quota.ValorCarta != 250000 {
		t.Errorf("quota value = %v", quota.ValorCarta)
	}
	if contract.Status != domain.StatusPendenteAssinatura {
		t.Errorf("initial status = %s", contract.Status)
	}
}

func TestCreateFromLeadRejectsUnparseableMoney(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &fakeLeadPort{})

	_, _, err := svc.CreateFromLead(context.Background(), uuid.New(), CreateInput{
		LeadID:     uuid.New(),
		ValorCarta: "abc",
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.created {
		t.Error("quota must not be created on parse failure")
	}
}
