package service

import (
	"context"
	"errors"
	"time"

	"contemplahub_backend/internal/diagnostics/repository"
	"contemplahub_backend/platform/apperr"

	"github.com/google/uuid"
)

// LeadChecker verifies that a lead exists and belongs to the organization.
type LeadChecker interface {
	LeadBelongsToOrg(ctx context.Context, orgID, leadID uuid.UUID) error
}

type Service struct {
	repo  *repository.Repository
	leads LeadChecker
}

func New(repo *repository.Repository, leads LeadChecker) *Service {
	return &Service{repo: repo, leads: leads}
}

// Save recomputes scores from the full questionnaire and upserts the
// diagnostic row. Every save replaces the whole record; there are no partial
// updates.
func (s *Service) Save(ctx context.Context, orgID, leadID uuid.UUID, input Input) (repository.Diagnostic, Scores, error) {
	const op = "diagnostics.Save"

	if err := s.leads.LeadBelongsToOrg(ctx, orgID, leadID); err != nil {
		return repository.Diagnostic{}, Scores{}, err
	}

	scores := ComputeScores(input)

	var consentTS *time.Time
	if input.ConsentScope != nil && *input.ConsentScope != "" {
		now := time.Now().UTC()
		consentTS = &now
	}

	extras := input.Extras
	if extras == nil {
		extras = map[string]interface{}{}
	}

	saved, err := s.repo.Save(ctx, repository.Diagnostic{
		OrgID:                  orgID,
		LeadID:                 leadID,
		Objetivo:               input.Objetivo,
		PrazoMetaMeses:         input.PrazoMetaMeses,
		PreferenciaProduto:     input.PreferenciaProduto,
		RegiaoPreferencia:      input.RegiaoPreferencia,
		RendaMensal:            input.RendaMensal,
		ReservaInicial:         input.ReservaInicial,
		ComprometimentoMaxPct:  input.ComprometimentoMaxPct,
		RendaProvada:           input.RendaProvada,
		ValorCartaAlvo:         input.ValorCartaAlvo,
		PrazoAlvoMeses:         input.PrazoAlvoMeses,
		EstrategiaLance:        input.EstrategiaLance,
		LanceBasePct:           input.LanceBasePct,
		LanceMaxPct:            input.LanceMaxPct,
		JanelaPreferidaSemanas: input.JanelaPreferidaSemanas,
		ScoreRisco:             scores.ScoreRisco,
		ReadinessScore:         scores.ReadinessScore,
		ProbConversao:          scores.ProbConversao,
		ProbContemplacaoShort:  scores.ProbContemplacaoShort,
		ProbContemplacaoMed:    scores.ProbContemplacaoMed,
		ProbContemplacaoLong:   scores.ProbContemplacaoLong,
		ConsentScope:           input.ConsentScope,
		ConsentTS:              consentTS,
		Extras:                 extras,
	})
	if err != nil {
		return repository.Diagnostic{}, Scores{}, apperr.Wrap(apperr.KindInternal, "save diagnostic", err).WithOp(op)
	}
	return saved, scores, nil
}

func (s *Service) Get(ctx context.Context, orgID, leadID uuid.UUID) (repository.Diagnostic, error) {
	const op = "diagnostics.Get"

	d, err := s.repo.GetByLead(ctx, orgID, leadID)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Diagnostic{}, apperr.NotFound("diagnostic not found").WithOp(op)
	}
	if err != nil {
		return repository.Diagnostic{}, apperr.Wrap(apperr.KindInternal, "load diagnostic", err).WithOp(op)
	}
	return d, nil
}
