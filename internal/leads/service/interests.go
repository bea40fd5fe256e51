package service

import (
	"context"
	"errors"

	"contemplahub_backend/internal/leads/repository"
	"contemplahub_backend/platform/apperr"

	"github.com/google/uuid"
)

type CreateInterestInput struct {
	Produto        *string
	ValorTotal     *string
	PrazoMeses     *int
	Objetivo       *string
	PerfilDesejado *string
	Observacao     *string
}

func (s *Service) CreateInterest(ctx context.Context, orgID, leadID uuid.UUID, input CreateInterestInput) (repository.Interest, error) {
	const op = "leads.CreateInterest"

	if _, err := s.Get(ctx, orgID, leadID); err != nil {
		return repository.Interest{}, err
	}

	interest, err := s.repo.CreateInterest(ctx, repository.CreateInterestParams{
		OrgID:          orgID,
		LeadID:         leadID,
		Produto:        input.Produto,
		ValorTotal:     input.ValorTotal,
		PrazoMeses:     input.PrazoMeses,
		Objetivo:       input.Objetivo,
		PerfilDesejado: input.PerfilDesejado,
		Observacao:     input.Observacao,
	})
	if err != nil {
		return repository.Interest{}, apperr.Wrap(apperr.KindInternal, "create interest", err).WithOp(op)
	}
	return interest, nil
}

func (s *Service) ListInterests(ctx context.Context, orgID, leadID uuid.UUID) ([]repository.Interest, error) {
	const op = "leads.ListInterests"

	if _, err := s.Get(ctx, orgID, leadID); err != nil {
		return nil, err
	}

	interests, err := s.repo.ListInterests(ctx, orgID, leadID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list interests", err).WithOp(op)
	}
	return interests, nil
}

func (s *Service) CloseInterest(ctx context.Context, orgID, interestID uuid.UUID) (repository.Interest, error) {
	const op = "leads.CloseInterest"

	interest, err := s.repo.CloseInterest(ctx, orgID, interestID)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Interest{}, apperr.NotFound("interest not found").WithOp(op)
	}
	if err != nil {
		return repository.Interest{}, apperr.Wrap(apperr.KindInternal, "close interest", err).WithOp(op)
	}
	return interest, nil
}
