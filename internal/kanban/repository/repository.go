package repository

import (
	"context"
	"time"

	"contemplahub_backend/internal/leads/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// LeadRow is the board-facing projection of a lead.
type LeadRow struct {
	ID             uuid.UUID
	Nome           string
	Etapa          domain.Stage
	Telefone       *string
	Email          *string
	Origem         *string
	OwnerID        *uuid.UUID
	CreatedAt      time.Time
	FirstContactAt *time.Time
}

// InterestRow is an open interest ordered newest first.
type InterestRow struct {
	LeadID         uuid.UUID
	Produto        *string
	ValorTotal     *string
	PrazoMeses     *int
	Objetivo       *string
	PerfilDesejado *string
	Observacao     *string
}

// DiagnosticRow carries the score fields the board shows on cards.
type DiagnosticRow struct {
	LeadID         uuid.UUID
	ReadinessScore *int
	ScoreRisco     *int
	ProbConversao  *float64
}

// MetricsRow is one per-stage aggregate line.
type MetricsRow struct {
	Etapa                   domain.Stage
	LeadCount               int
	AvgDays                 *float64
	ReadinessAvg            *float64
	DiagnosticCompletionPct *float64
	TFirstContactAvgMin     *float64
}

func (r *Repository) LeadsByStages(ctx context.Context, orgID uuid.UUID, stages []domain.Stage) ([]LeadRow, error) {
	names := make([]string, 0, len(stages))
	for _, s := range stages {
		names = append(names, string(s))
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, nome, etapa, telefone, email, origem, owner_id, created_at, first_contact_at
		FROM leads
		WHERE org_id = $1 AND etapa = ANY($2)
	`, orgID, names)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeadRow
	for rows.Next() {
		var l LeadRow
		if err := rows.Scan(&l.ID, &l.Nome, &l.Etapa, &l.Telefone, &l.Email, &l.Origem,
			&l.OwnerID, &l.CreatedAt, &l.FirstContactAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// OpenInterestsByLeads returns open interests for the given leads, newest
// first, so the caller can keep the most recent one per lead.
func (r *Repository) OpenInterestsByLeads(ctx context.Context, orgID uuid.UUID, leadIDs []uuid.UUID) ([]InterestRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT lead_id, produto, valor_total, prazo_meses, objetivo, perfil_desejado, observacao
		FROM lead_interesses
		WHERE org_id = $1 AND lead_id = ANY($2) AND status = 'aberto'
		ORDER BY created_at DESC
	`, orgID, leadIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InterestRow
	for rows.Next() {
		var in InterestRow
		if err := rows.Scan(&in.LeadID, &in.Produto, &in.ValorTotal, &in.PrazoMeses,
			&in.Objetivo, &in.PerfilDesejado, &in.Observacao); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (r *Repository) DiagnosticsByLeads(ctx context.Context, orgID uuid.UUID, leadIDs []uuid.UUID) ([]DiagnosticRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT lead_id, readiness_score, score_risco, prob_conversao
		FROM lead_diagnosticos
		WHERE org_id = $1 AND lead_id = ANY($2)
	`, orgID, leadIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DiagnosticRow
	for rows.Next() {
		var d DiagnosticRow
		if err := rows.Scan(&d.LeadID, &d.ReadinessScore, &d.ScoreRisco, &d.ProbConversao); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Metrics aggregates per-stage funnel health. Time in stage counts from the
// last recorded stage move, falling back to lead creation.
func (r *Repository) Metrics(ctx context.Context, orgID uuid.UUID) ([]MetricsRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT l.etapa,
			COUNT(*) AS lead_count,
			AVG(EXTRACT(EPOCH FROM (now() - COALESCE(h.entered_at, l.created_at))) / 86400.0) AS avg_days,
			AVG(d.readiness_score) AS readiness_avg,
			AVG(CASE WHEN d.lead_id IS NOT NULL THEN 100.0 ELSE 0.0 END) AS diagnostic_completion_pct,
			AVG(EXTRACT(EPOCH FROM (l.first_contact_at - l.created_at)) / 60.0) AS t_first_contact_avg_min
		FROM leads l
		LEFT JOIN LATERAL (
			SELECT max(created_at) AS entered_at
			FROM lead_stage_history sh
			WHERE sh.org_id = l.org_id AND sh.lead_id = l.id
		) h ON true
		LEFT JOIN lead_diagnosticos d ON d.org_id = l.org_id AND d.lead_id = l.id
		WHERE l.org_id = $1
		GROUP BY l.etapa
	`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MetricsRow
	for rows.Next() {
		var m MetricsRow
		if err := rows.Scan(&m.Etapa, &m.LeadCount, &m.AvgDays, &m.ReadinessAvg,
			&m.DiagnosticCompletionPct, &m.TFirstContactAvgMin); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
