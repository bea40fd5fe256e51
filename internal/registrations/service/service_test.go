package service

import (
	"context"
	"errors"
	"testing"

	"contemplahub_backend/internal/registrations/repository"
	"contemplahub_backend/platform/apperr"
	"contemplahub_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	created     *repository.CreateParams
	byToken     map[string]repository.Registration
	person      *repository.PersonData
	statusSet   *string
	statusErr   error
	tokenChecks int
	tokensExist bool
}

func (f *fakeStore) Create(_ context.Context, params repository.CreateParams) (repository.Registration, error) {
	f.created = &params
	return repository.Registration{
		ID:          uuid.New(),
		OrgID:       params.OrgID,
		LeadID:      params.LeadID,
		TipoCliente: params.TipoCliente,
		Status:      params.Status,
		TokenPub:    params.TokenPub,
	}, nil
}

func (f *fakeStore) TokenExists(_ context.Context, _ string) (bool, error) {
	f.tokenChecks++
	return f.tokensExist, nil
}

func (f *fakeStore) GetByToken(_ context.Context, token string) (repository.Registration, error) {
	reg, ok := f.byToken[token]
	if !ok {
		return repository.Registration{}, repository.ErrNotFound
	}
	return reg, nil
}

func (f *fakeStore) UpsertPersonData(_ context.Context, data repository.PersonData) error {
	f.person = &data
	return nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, _ uuid.UUID, status string) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	f.statusSet = &status
	return nil
}

type fakeLeads struct{ err error }

func (f *fakeLeads) LeadBelongsToOrg(_ context.Context, _, _ uuid.UUID) error { return f.err }

func newService(store *fakeStore, leads *fakeLeads) *Service {
	return New(store, leads, logger.New("test"))
}

func TestCreateLinkDefaultsToPendingPF(t *testing.T) {
	store := &fakeStore{}
	svc := newService(store, &fakeLeads{})

	reg, err := svc.CreateLink(context.Background(), uuid.New(), CreateInput{LeadID: uuid.New()})
	if err != nil {
		t.Fatalf("CreateLink: %v", err)
	}
	if reg.Status != StatusPendente {
		t.Fatalf("expected pendente, got %q", reg.Status)
	}
	if reg.TipoCliente != TipoClientePF {
		t.Fatalf("expected pf, got %q", reg.TipoCliente)
	}
	if len(store.created.TokenPub) != 32 {
		t.Fatalf("expected a 32-char hex token, got %q", store.created.TokenPub)
	}
}

func TestCreateLinkRejectsUnknownClientType(t *testing.T) {
	svc := newService(&fakeStore{}, &fakeLeads{})

	_, err := svc.CreateLink(context.Background(), uuid.New(), CreateInput{
		LeadID:      uuid.New(),
		TipoCliente: "pj",
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateLinkPropagatesLeadCheck(t *testing.T) {
	wantErr := apperr.Forbidden("lead belongs to another organization")
	svc := newService(&fakeStore{}, &fakeLeads{err: wantErr})

	_, err := svc.CreateLink(context.Background(), uuid.New(), CreateInput{LeadID: uuid.New()})
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestSubmitPersonDataAdvancesStatus(t *testing.T) {
	id := uuid.New()
	store := &fakeStore{byToken: map[string]repository.Registration{
		"tok123": {ID: id, Status: StatusPendente, TokenPub: "tok123"},
	}}
	svc := newService(store, &fakeLeads{})

	reg, err := svc.SubmitPersonData(context.Background(), "tok123", PersonDataInput{
		NomeCompleto:    "Maria Souza",
		CPF:             "12345678901",
		Email:           "maria@example.com",
		TelefoneCelular: "+5511999990000",
	})
	if err != nil {
		t.Fatalf("SubmitPersonData: %v", err)
	}
	if store.person == nil || store.person.CadastroID != id {
		t.Fatalf("pf data not linked to registration: %+v", store.person)
	}
	if reg.Status != StatusDadosRecebidos {
		t.Fatalf("expected dados_recebidos, got %q", reg.Status)
	}
}

func TestSubmitPersonDataStatusFailureIsSecondary(t *testing.T) {
	id := uuid.New()
	store := &fakeStore{
		byToken:   map[string]repository.Registration{"tok123": {ID: id, Status: StatusPendente}},
		statusErr: errors.New("deadlock"),
	}
	svc := newService(store, &fakeLeads{})

	reg, err := svc.SubmitPersonData(context.Background(), "tok123", PersonDataInput{
		NomeCompleto:    "Maria Souza",
		CPF:             "12345678901",
		Email:           "maria@example.com",
		TelefoneCelular: "+5511999990000",
	})
	if err != nil {
		t.Fatalf("submission should survive a status update failure, got %v", err)
	}
	if store.person == nil {
		t.Fatalf("pf data should still be saved")
	}
	if reg.Status != StatusPendente {
		t.Fatalf("status should report the persisted value, got %q", reg.Status)
	}
}

func TestSubmitPersonDataUnknownToken(t *testing.T) {
	svc := newService(&fakeStore{byToken: map[string]repository.Registration{}}, &fakeLeads{})

	_, err := svc.SubmitPersonData(context.Background(), "missing", PersonDataInput{})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
