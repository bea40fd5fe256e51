package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"contemplahub_backend/internal/leads/domain"
	"contemplahub_backend/internal/leads/repository"
	"contemplahub_backend/platform/apperr"
	"contemplahub_backend/platform/logger"
	"contemplahub_backend/platform/phone"

	"github.com/google/uuid"
)

type Service struct {
	repo *repository.Repository
	log  *logger.Logger
}

func New(repo *repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

type CreateLeadInput struct {
	Nome     string
	Telefone *string
	Email    *string
	Origem   *string
	OwnerID  *uuid.UUID
}

func (s *Service) Create(ctx context.Context, orgID uuid.UUID, input CreateLeadInput) (repository.Lead, error) {
	const op = "leads.Create"

	if input.Telefone != nil && *input.Telefone != "" {
		normalized := phone.NormalizeE164(*input.Telefone)
		input.Telefone = &normalized
	}

	lead, err := s.repo.Create(ctx, repository.CreateLeadParams{
		OrgID:    orgID,
		Nome:     input.Nome,
		Telefone: input.Telefone,
		Email:    input.Email,
		Origem:   input.Origem,
		OwnerID:  input.OwnerID,
	})
	if err != nil {
		return repository.Lead{}, apperr.Wrap(apperr.KindInternal, "create lead", err).WithOp(op)
	}
	return lead, nil
}

// Get returns the lead when it belongs to orgID. A lead owned by another
// organization yields forbidden, not not-found.
func (s *Service) Get(ctx context.Context, orgID, leadID uuid.UUID) (repository.Lead, error) {
	const op = "leads.Get"

	lead, err := s.repo.GetByID(ctx, leadID)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Lead{}, apperr.NotFound("lead not found").WithOp(op)
	}
	if err != nil {
		return repository.Lead{}, apperr.Wrap(apperr.KindInternal, "load lead", err).WithOp(op)
	}
	if lead.OrgID != orgID {
		return repository.Lead{}, apperr.Forbidden("lead belongs to another organization").WithOp(op)
	}
	return lead, nil
}

type MoveStageResult struct {
	Lead    repository.Lead
	Skipped bool
}

// MoveStage moves a lead through the funnel. Moving to the current stage is
// a no-op. The first move out of "novo" stamps first_contact_at exactly once.
func (s *Service) MoveStage(ctx context.Context, orgID, leadID uuid.UUID, target domain.Stage, reason *string) (MoveStageResult, error) {
	const op = "leads.MoveStage"

	if !domain.Known(target) {
		return MoveStageResult{}, apperr.Validation(fmt.Sprintf("unknown stage %q", target)).WithOp(op)
	}

	lead, err := s.Get(ctx, orgID, leadID)
	if err != nil {
		return MoveStageResult{}, err
	}

	patch, skipped := domain.PlanStageMove(lead.Etapa, lead.FirstContactAt, target, time.Now().UTC())
	if skipped {
		return MoveStageResult{Lead: lead, Skipped: true}, nil
	}

	from := lead.Etapa
	updated, err := s.repo.ApplyStagePatch(ctx, leadID, patch)
	if errors.Is(err, repository.ErrNotFound) {
		return MoveStageResult{}, apperr.NotFound("lead not found").WithOp(op)
	}
	if err != nil {
		return MoveStageResult{}, apperr.Wrap(apperr.KindInternal, "apply stage move", err).WithOp(op)
	}

	if err := s.repo.InsertStageHistory(ctx, repository.StageHistoryParams{
		OrgID:     orgID,
		LeadID:    leadID,
		FromStage: from,
		ToStage:   target,
		Reason:    reason,
	}); err != nil {
		s.log.SideEffectFailed("lead stage history", err)
	}

	return MoveStageResult{Lead: updated}, nil
}

// Delete removes the lead and all dependent records in one transaction.
func (s *Service) Delete(ctx context.Context, orgID, leadID uuid.UUID) error {
	const op = "leads.Delete"

	if _, err := s.Get(ctx, orgID, leadID); err != nil {
		return err
	}

	err := s.repo.DeleteCascade(ctx, orgID, leadID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("lead not found").WithOp(op)
	}
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "delete lead", err).WithOp(op)
	}
	return nil
}
