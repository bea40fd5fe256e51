package service

import (
	"context"

	"contemplahub_backend/internal/kanban/insight"
	"contemplahub_backend/internal/kanban/repository"
	"contemplahub_backend/internal/kanban/transport"
	"contemplahub_backend/internal/leads/domain"
	"contemplahub_backend/platform/apperr"
	"contemplahub_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Store is the data access the snapshot assembler needs.
type Store interface {
	LeadsByStages(ctx context.Context, orgID uuid.UUID, stages []domain.Stage) ([]repository.LeadRow, error)
	OpenInterestsByLeads(ctx context.Context, orgID uuid.UUID, leadIDs []uuid.UUID) ([]repository.InterestRow, error)
	DiagnosticsByLeads(ctx context.Context, orgID uuid.UUID, leadIDs []uuid.UUID) ([]repository.DiagnosticRow, error)
	Metrics(ctx context.Context, orgID uuid.UUID) ([]repository.MetricsRow, error)
}

type Service struct {
	store Store
	log   *logger.Logger
}

func New(store Store, log *logger.Logger) *Service {
	return &Service{store: store, log: log}
}

// stagesFor maps the two board toggles onto the stages to fetch. The default
// board shows the five working stages; the toggles switch to the terminal
// ones.
func stagesFor(showActive, showLost bool) []domain.Stage {
	switch {
	case showActive && showLost:
		return []domain.Stage{domain.StageAtivo, domain.StagePerdido}
	case showActive:
		return []domain.Stage{domain.StageAtivo}
	case showLost:
		return []domain.Stage{domain.StagePerdido}
	default:
		return []domain.Stage{
			domain.StageNovo, domain.StageDiagnostico, domain.StageProposta,
			domain.StageNegociacao, domain.StageContrato,
		}
	}
}

func emptyColumns() map[string][]transport.LeadCard {
	cols := make(map[string][]transport.LeadCard, len(domain.AllStages()))
	for _, s := range domain.AllStages() {
		cols[string(s)] = []transport.LeadCard{}
	}
	return cols
}

// BuildSnapshot assembles the board: org-scoped leads in the selected stages,
// each card enriched with its most recent open interest, diagnostic scores
// and the generated insight. Interests and diagnostics are fetched
// concurrently.
func (s *Service) BuildSnapshot(ctx context.Context, orgID uuid.UUID, showActive, showLost bool) (transport.Snapshot, error) {
	const op = "kanban.BuildSnapshot"

	leads, err := s.store.LeadsByStages(ctx, orgID, stagesFor(showActive, showLost))
	if err != nil {
		return transport.Snapshot{}, apperr.Wrap(apperr.KindInternal, "load board leads", err).WithOp(op)
	}

	columns := emptyColumns()
	if len(leads) == 0 {
		return transport.Snapshot{Columns: columns}, nil
	}

	leadIDs := make([]uuid.UUID, 0, len(leads))
	for _, l := range leads {
		leadIDs = append(leadIDs, l.ID)
	}

	var (
		interestRows   []repository.InterestRow
		diagnosticRows []repository.DiagnosticRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		interestRows, err = s.store.OpenInterestsByLeads(gctx, orgID, leadIDs)
		return err
	})
	g.Go(func() error {
		var err error
		diagnosticRows, err = s.store.DiagnosticsByLeads(gctx, orgID, leadIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return transport.Snapshot{}, apperr.Wrap(apperr.KindInternal, "enrich board leads", err).WithOp(op)
	}

	// Rows arrive newest first; the first one per lead wins.
	interestsByLead := make(map[uuid.UUID]repository.InterestRow, len(interestRows))
	for _, row := range interestRows {
		if _, seen := interestsByLead[row.LeadID]; seen {
			continue
		}
		interestsByLead[row.LeadID] = row
	}

	// One diagnostic per (org, lead) is the invariant; if duplicates slip
	// in, the last one wins and we log it.
	diagByLead := make(map[uuid.UUID]repository.DiagnosticRow, len(diagnosticRows))
	for _, row := range diagnosticRows {
		if _, seen := diagByLead[row.LeadID]; seen {
			s.log.Warn("duplicate diagnostic for lead", "leadId", row.LeadID)
		}
		diagByLead[row.LeadID] = row
	}

	for _, lead := range leads {
		stage := string(lead.Etapa)
		if _, known := columns[stage]; !known {
			continue
		}

		card := transport.LeadCard{
			ID:             lead.ID,
			Nome:           lead.Nome,
			Etapa:          stage,
			Telefone:       lead.Telefone,
			Email:          lead.Email,
			Origem:         lead.Origem,
			OwnerID:        lead.OwnerID,
			CreatedAt:      lead.CreatedAt,
			FirstContactAt: lead.FirstContactAt,
		}
		if card.Nome == "" {
			card.Nome = "Sem nome"
		}

		var interestForInsight *insight.Interest
		if row, ok := interestsByLead[lead.ID]; ok {
			card.Interest = &transport.InterestSummary{
				Produto:        row.Produto,
				ValorTotal:     row.ValorTotal,
				PrazoMeses:     row.PrazoMeses,
				Objetivo:       row.Objetivo,
				PerfilDesejado: row.PerfilDesejado,
				Observacao:     row.Observacao,
			}
			interestForInsight = &insight.Interest{
				Produto:        row.Produto,
				ValorTotal:     row.ValorTotal,
				PrazoMeses:     row.PrazoMeses,
				Objetivo:       row.Objetivo,
				PerfilDesejado: row.PerfilDesejado,
				Observacao:     row.Observacao,
			}
		}

		var readiness *int
		if diag, ok := diagByLead[lead.ID]; ok {
			card.ReadinessScore = diag.ReadinessScore
			card.ScoreRisco = diag.ScoreRisco
			card.ProbConversao = diag.ProbConversao
			readiness = diag.ReadinessScore
		}

		card.InterestInsight = insight.Build(interestForInsight, readiness)

		columns[stage] = append(columns[stage], card)
	}

	return transport.Snapshot{Columns: columns}, nil
}

// Metrics returns the per-stage aggregates keyed by stage name.
func (s *Service) Metrics(ctx context.Context, orgID uuid.UUID) (transport.MetricsResponse, error) {
	const op = "kanban.Metrics"

	rows, err := s.store.Metrics(ctx, orgID)
	if err != nil {
		return transport.MetricsResponse{}, apperr.Wrap(apperr.KindInternal, "load board metrics", err).WithOp(op)
	}

	out := transport.MetricsResponse{
		LeadCount:           map[string]int{},
		AvgDays:             map[string]float64{},
		DiagCompletionPct:   map[string]float64{},
		ReadinessAvg:        map[string]float64{},
		TFirstContactAvgMin: map[string]float64{},
	}

	for _, row := range rows {
		stage := string(row.Etapa)
		out.LeadCount[stage] = row.LeadCount
		if row.AvgDays != nil {
			out.AvgDays[stage] = *row.AvgDays
		}
		if row.DiagnosticCompletionPct != nil {
			out.DiagCompletionPct[stage] = *row.DiagnosticCompletionPct
		}
		if row.ReadinessAvg != nil {
			out.ReadinessAvg[stage] = *row.ReadinessAvg
		}
		if row.TFirstContactAvgMin != nil {
			out.TFirstContactAvgMin[stage] = *row.TFirstContactAvgMin
		}
	}

	return out, nil
}
