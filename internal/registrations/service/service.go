package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"contemplahub_backend/internal/registrations/repository"
	"contemplahub_backend/platform/apperr"
	"contemplahub_backend/platform/logger"

	"github.com/google/uuid"
)

const (
	StatusPendente       = "pendente"
	StatusDadosRecebidos = "dados_recebidos"

	TipoClientePF = "pf"
)

// LeadChecker verifies that a lead exists and belongs to the organization.
type LeadChecker interface {
	LeadBelongsToOrg(ctx context.Context, orgID, leadID uuid.UUID) error
}

type Store interface {
	Create(ctx context.Context, params repository.CreateParams) (repository.Registration, error)
	TokenExists(ctx context.Context, token string) (bool, error)
	GetByToken(ctx context.Context, token string) (repository.Registration, error)
	UpsertPersonData(ctx context.Context, data repository.PersonData) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type Service struct {
	store Store
	leads LeadChecker
	log   *logger.Logger
}

func New(store Store, leads LeadChecker, log *logger.Logger) *Service {
	return &Service{store: store, leads: leads, log: log}
}

type CreateInput struct {
	LeadID      uuid.UUID
	PropostaID  *uuid.UUID
	TipoCliente string
}

// CreateLink creates a registration link for the lead and returns it with a
// fresh public token.
func (s *Service) CreateLink(ctx context.Context, orgID uuid.UUID, input CreateInput) (repository.Registration, error) {
	const op = "registrations.CreateLink"

	if input.TipoCliente == "" {
		input.TipoCliente = TipoClientePF
	}
	if input.TipoCliente != TipoClientePF {
		return repository.Registration{}, apperr.Validation("only pf registrations are supported").WithOp(op)
	}

	if err := s.leads.LeadBelongsToOrg(ctx, orgID, input.LeadID); err != nil {
		return repository.Registration{}, err
	}

	token, err := s.generateToken(ctx)
	if err != nil {
		return repository.Registration{}, apperr.Wrap(apperr.KindInternal, "generate token", err).WithOp(op)
	}

	created, err := s.store.Create(ctx, repository.CreateParams{
		OrgID:       orgID,
		LeadID:      input.LeadID,
		PropostaID:  input.PropostaID,
		TipoCliente: input.TipoCliente,
		Status:      StatusPendente,
		TokenPub:    token,
	})
	if err != nil {
		return repository.Registration{}, apperr.Wrap(apperr.KindInternal, "create registration", err).WithOp(op)
	}
	return created, nil
}

func (s *Service) GetByToken(ctx context.Context, token string) (repository.Registration, error) {
	const op = "registrations.GetByToken"

	reg, err := s.store.GetByToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Registration{}, apperr.NotFound("registration not found").WithOp(op)
	}
	if err != nil {
		return repository.Registration{}, apperr.Wrap(apperr.KindInternal, "load registration", err).WithOp(op)
	}
	return reg, nil
}

type PersonDataInput struct {
	NomeCompleto    string
	CPF             string
	DataNascimento  *string
	EstadoCivil     *string
	Email           string
	TelefoneCelular string
	RendaMensal     *float64
	CEP             *string
	Endereco        *string
	Bairro          *string
	Cidade          *string
	UF              *string
	Observacoes     *string
}

// SubmitPersonData upserts the PF payload for the registration behind the
// token and advances the registration to dados_recebidos. The status bump is
// best-effort: the submitted data is already safe when it fails.
func (s *Service) SubmitPersonData(ctx context.Context, token string, input PersonDataInput) (repository.Registration, error) {
	const op = "registrations.SubmitPersonData"

	reg, err := s.GetByToken(ctx, token)
	if err != nil {
		return repository.Registration{}, err
	}

	err = s.store.UpsertPersonData(ctx, repository.PersonData{
		CadastroID:      reg.ID,
		NomeCompleto:    input.NomeCompleto,
		CPF:             input.CPF,
		DataNascimento:  input.DataNascimento,
		EstadoCivil:     input.EstadoCivil,
		Email:           input.Email,
		TelefoneCelular: input.TelefoneCelular,
		RendaMensal:     input.RendaMensal,
		CEP:             input.CEP,
		Endereco:        input.Endereco,
		Bairro:          input.Bairro,
		Cidade:          input.Cidade,
		UF:              input.UF,
		Observacoes:     input.Observacoes,
	})
	if err != nil {
		return repository.Registration{}, apperr.Wrap(apperr.KindInternal, "save pf data", err).WithOp(op)
	}

	if err := s.store.UpdateStatus(ctx, reg.ID, StatusDadosRecebidos); err != nil {
		s.log.SideEffectFailed("registration status update", err)
	} else {
		reg.Status = StatusDadosRecebidos
	}
	return reg, nil
}

// generateToken draws a 32-hex-char token. Collisions are astronomically
// unlikely but checked anyway since the token is a public lookup key.
func (s *Service) generateToken(ctx context.Context) (string, error) {
	for {
		buf := make([]byte, 16)
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		token := hex.EncodeToString(buf)

		exists, err := s.store.TokenExists(ctx, token)
		if err != nil {
			return "", err
		}
		if !exists {
			return token, nil
		}
	}
}
