package repository

import (
	"context"
	"errors"
	"time"

	"contemplahub_backend/internal/leads/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("lead not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Lead struct {
	ID             uuid.UUID
	OrgID          uuid.UUID
	Nome           string
	Telefone       *string
	Email          *string
	Origem         *string
	OwnerID        *uuid.UUID
	LandingID      *uuid.UUID
	Etapa          domain.Stage
	UTMSource      *string
	UTMMedium      *string
	UTMCampaign    *string
	UTMTerm        *string
	UTMContent     *string
	ReferrerURL    *string
	UserAgent      *string
	FirstContactAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const leadColumns = `id, org_id, nome, telefone, email, origem, owner_id, landing_id, etapa,
	utm_source, utm_medium, utm_campaign, utm_term, utm_content, referrer_url, user_agent,
	first_contact_at, created_at, updated_at`

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID, &lead.OrgID, &lead.Nome, &lead.Telefone, &lead.Email, &lead.Origem,
		&lead.OwnerID, &lead.LandingID, &lead.Etapa,
		&lead.UTMSource, &lead.UTMMedium, &lead.UTMCampaign, &lead.UTMTerm, &lead.UTMContent,
		&lead.ReferrerURL, &lead.UserAgent,
		&lead.FirstContactAt, &lead.CreatedAt, &lead.UpdatedAt,
	)
	return lead, err
}

type CreateLeadParams struct {
	OrgID    uuid.UUID
	Nome     string
	Telefone *string
	Email    *string
	Origem   *string
	OwnerID  *uuid.UUID
}

func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO leads (org_id, nome, telefone, email, origem, owner_id, etapa)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+leadColumns,
		params.OrgID, params.Nome, params.Telefone, params.Email, params.Origem,
		params.OwnerID, domain.StageNovo,
	)

	lead, err := scanLead(row)
	if err != nil {
		return Lead{}, err
	}
	return lead, nil
}

// GetByID loads a lead by id without an org filter. The service layer
// compares the organization so cross-tenant access can be rejected as
// forbidden rather than masked as not-found.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)

	lead, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	if err != nil {
		return Lead{}, err
	}
	return lead, nil
}

// ApplyStagePatch persists a stage move. When the patch carries a
// first-contact timestamp, both columns are written in the same statement so
// the stamp is atomic with the stage change.
func (r *Repository) ApplyStagePatch(ctx context.Context, id uuid.UUID, patch domain.StagePatch) (Lead, error) {
	var row pgx.Row
	if patch.FirstContactAt != nil {
		row = r.pool.QueryRow(ctx, `
			UPDATE leads SET etapa = $2, first_contact_at = $3, updated_at = now()
			WHERE id = $1
			RETURNING `+leadColumns,
			id, patch.Stage, patch.FirstContactAt,
		)
	} else {
		row = r.pool.QueryRow(ctx, `
			UPDATE leads SET etapa = $2, updated_at = now()
			WHERE id = $1
			RETURNING `+leadColumns,
			id, patch.Stage,
		)
	}

	lead, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	if err != nil {
		return Lead{}, err
	}
	return lead, nil
}

type StageHistoryParams struct {
	OrgID     uuid.UUID
	LeadID    uuid.UUID
	FromStage domain.Stage
	ToStage   domain.Stage
	Reason    *string
}

// InsertStageHistory appends an audit row for an effective stage move.
func (r *Repository) InsertStageHistory(ctx context.Context, params StageHistoryParams) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lead_stage_history (org_id, lead_id, from_stage, to_stage, reason)
		VALUES ($1, $2, $3, $4, $5)
	`, params.OrgID, params.LeadID, params.FromStage, params.ToStage, params.Reason)
	return err
}

// DeleteCascade removes a lead and every dependent record in one transaction:
// proposals, diagnostics, contracts of the lead's quotas, quotas, stage
// history, consent logs, registrations and finally the lead row itself.
func (r *Repository) DeleteCascade(ctx context.Context, orgID, leadID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	statements := []string{
		`DELETE FROM lead_propostas WHERE org_id = $1 AND lead_id = $2`,
		`DELETE FROM lead_diagnosticos WHERE org_id = $1 AND lead_id = $2`,
		`DELETE FROM contratos WHERE org_id = $1 AND cota_id IN (SELECT id FROM cotas WHERE org_id = $1 AND lead_id = $2)`,
		`DELETE FROM cotas WHERE org_id = $1 AND lead_id = $2`,
		`DELETE FROM lead_interesses WHERE org_id = $1 AND lead_id = $2`,
		`DELETE FROM lead_stage_history WHERE org_id = $1 AND lead_id = $2`,
		`DELETE FROM consent_logs WHERE org_id = $1 AND lead_id = $2`,
		`DELETE FROM lead_cadastros WHERE org_id = $1 AND lead_id = $2`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt, orgID, leadID); err != nil {
			return err
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM leads WHERE org_id = $1 AND id = $2`, orgID, leadID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}
