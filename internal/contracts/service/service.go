package service

import (
	"context"
	"errors"
	"fmt"

	"contemplahub_backend/internal/contracts/domain"
	"contemplahub_backend/internal/contracts/repository"
	leads "contemplahub_backend/internal/leads/domain"
	"contemplahub_backend/platform/apperr"
	"contemplahub_backend/platform/logger"

	"github.com/google/uuid"
)

// Store is the persistence surface the contract service needs.
type Store interface {
	CreateWithQuota(ctx context.Context, params repository.CreateParams) (repository.Quota, repository.Contract, error)
	GetByID(ctx context.Context, id uuid.UUID) (repository.Contract, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next domain.Status) (repository.Contract, error)
	LeadIDForContract(ctx context.Context, contractID uuid.UUID) (uuid.UUID, error)
	ListByLead(ctx context.Context, orgID, leadID uuid.UUID) ([]repository.Contract, error)
}

// LeadPort is what the contract flow needs from the leads module: existence
// and tenant checks on create, funnel moves on status coupling.
type LeadPort interface {
	LeadBelongsToOrg(ctx context.Context, orgID, leadID uuid.UUID) error
	MoveStage(ctx context.Context, orgID, leadID uuid.UUID, target leads.Stage, reason *string) error
}

type Service struct {
	store Store
	leads LeadPort
	log   *logger.Logger
}

func New(store Store, leadPort LeadPort, log *logger.Logger) *Service {
	return &Service{store: store, leads: leadPort, log: log}
}

type CreateInput struct {
	LeadID          uuid.UUID
	ValorCarta      string
	Administradora  *string
	Produto         *string
	PrazoMeses      *int
	TaxaAdmPct      *float64
	FundoReservaPct *float64
	NumeroContrato  *string
	Documento       *string
}

// CreateFromLead parses the localized card value, then creates the quota and
// its contract atomically, starting at pendente_assinatura.
func (s *Service) CreateFromLead(ctx context.Context, orgID uuid.UUID, input CreateInput) (repository.Quota, repository.Contract, error) {
	const op = "contracts.CreateFromLead"

	if err := s.leads.LeadBelongsToOrg(ctx, orgID, input.LeadID); err != nil {
		return repository.Quota{}, repository.Contract{}, err
	}

	valor := domain.ParseMoney(input.ValorCarta)
	if valor == nil {
		return repository.Quota{}, repository.Contract{},
			apperr.Validation(fmt.Sprintf("unparseable card value %q", input.ValorCarta)).WithOp(op)
	}

	quota, contract, err := s.store.CreateWithQuota(ctx, repository.CreateParams{
		OrgID:           orgID,
		LeadID:          input.LeadID,
		Administradora:  input.Administradora,
		Produto:         input.Produto,
		ValorCarta:      *valor,
		PrazoMeses:      input.PrazoMeses,
		TaxaAdmPct:      input.TaxaAdmPct,
		FundoReservaPct: input.FundoReservaPct,
		NumeroContrato:  input.NumeroContrato,
		Documento:       input.Documento,
	})
	if err != nil {
		return repository.Quota{}, repository.Contract{},
			apperr.Wrap(apperr.KindInternal, "create quota and contract", err).WithOp(op)
	}
	return quota, contract, nil
}

// StatusResult reports the primary transition outcome plus any secondary
// warnings from the best-effort funnel coupling.
type StatusResult struct {
	ContractID     uuid.UUID
	StatusAnterior domain.Status
	StatusNovo     domain.Status
	Skipped        bool
	LeadAfetado    *uuid.UUID
	LeadMovidoPara *leads.Stage
	Warnings       []string
}

// UpdateStatus drives the contract state machine. Transitioning to alocado
// moves the linked lead to ativo; cancelado moves it to perdido. The funnel
// move is best-effort: its failure is recorded as a warning, never rolled
// into the primary outcome.
func (s *Service) UpdateStatus(ctx context.Context, orgID, contractID uuid.UUID, next domain.Status) (StatusResult, error) {
	const op = "contracts.UpdateStatus"

	if !next.Known() {
		return StatusResult{}, apperr.Validation(fmt.Sprintf("unknown status %q", next)).WithOp(op)
	}

	contract, err := s.store.GetByID(ctx, contractID)
	if errors.Is(err, repository.ErrNotFound) {
		return StatusResult{}, apperr.NotFound("contract not found").WithOp(op)
	}
	if err != nil {
		return StatusResult{}, apperr.Wrap(apperr.KindInternal, "load contract", err).WithOp(op)
	}
	if contract.OrgID != orgID {
		return StatusResult{}, apperr.Forbidden("contract belongs to another organization").WithOp(op)
	}

	if contract.Status == next {
		return StatusResult{
			ContractID:     contract.ID,
			StatusAnterior: contract.Status,
			StatusNovo:     next,
			Skipped:        true,
		}, nil
	}

	if !domain.CanTransition(contract.Status, next) {
		return StatusResult{}, apperr.InvalidTransition(
			fmt.Sprintf("cannot move contract from %s to %s", contract.Status, next)).WithOp(op)
	}

	updated, err := s.store.UpdateStatus(ctx, contractID, contract.Status, next)
	if errors.Is(err, repository.ErrStatusChanged) {
		return StatusResult{}, apperr.Conflict("contract status changed concurrently, retry").WithOp(op)
	}
	if err != nil {
		return StatusResult{}, apperr.Wrap(apperr.KindInternal, "update contract status", err).WithOp(op)
	}

	result := StatusResult{
		ContractID:     updated.ID,
		StatusAnterior: contract.Status,
		StatusNovo:     updated.Status,
	}

	stage, couples := domain.CoupledStage(next)
	if !couples {
		return result, nil
	}

	leadID, err := s.store.LeadIDForContract(ctx, contractID)
	if err != nil {
		warning := fmt.Sprintf("resolve linked lead: %v", err)
		s.log.SideEffectFailed("contract funnel coupling", err)
		result.Warnings = append(result.Warnings, warning)
		return result, nil
	}
	result.LeadAfetado = &leadID

	reason := fmt.Sprintf("contrato %s", next)
	if err := s.leads.MoveStage(ctx, orgID, leadID, stage, &reason); err != nil {
		warning := fmt.Sprintf("move lead to %s: %v", stage, err)
		s.log.SideEffectFailed("contract funnel coupling", err)
		result.Warnings = append(result.Warnings, warning)
		return result, nil
	}
	result.LeadMovidoPara = &stage

	return result, nil
}

// Get returns the contract when it belongs to orgID.
func (s *Service) Get(ctx context.Context, orgID, contractID uuid.UUID) (repository.Contract, error) {
	const op = "contracts.Get"

	contract, err := s.store.GetByID(ctx, contractID)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Contract{}, apperr.NotFound("contract not found").WithOp(op)
	}
	if err != nil {
		return repository.Contract{}, apperr.Wrap(apperr.KindInternal, "load contract", err).WithOp(op)
	}
	if contract.OrgID != orgID {
		return repository.Contract{}, apperr.Forbidden("contract belongs to another organization").WithOp(op)
	}
	return contract, nil
}

// ListByLead returns the lead's contracts after a tenant check.
func (s *Service) ListByLead(ctx context.Context, orgID, leadID uuid.UUID) ([]repository.Contract, error) {
	const op = "contracts.ListByLead"

	if err := s.leads.LeadBelongsToOrg(ctx, orgID, leadID); err != nil {
		return nil, err
	}

	contracts, err := s.store.ListByLead(ctx, orgID, leadID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list contracts", err).WithOp(op)
	}
	return contracts, nil
}
