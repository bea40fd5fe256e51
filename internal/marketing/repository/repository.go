package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrLandingNotFound = errors.New("landing not found")
	ErrLeadNotFound    = errors.New("lead not found")
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Landing is the resolved landing page context for a capture.
type Landing struct {
	ID          uuid.UUID
	OrgID       uuid.UUID
	OwnerUserID uuid.UUID
}

// ResolveLandingByHash looks up an active landing page by its public hash.
func (r *Repository) ResolveLandingByHash(ctx context.Context, hash string) (Landing, error) {
	return r.resolveLanding(ctx, `public_hash`, hash)
}

// ResolveLandingBySlug looks up an active landing page by slug.
func (r *Repository) ResolveLandingBySlug(ctx context.Context, slug string) (Landing, error) {
	return r.resolveLanding(ctx, `slug`, slug)
}

func (r *Repository) resolveLanding(ctx context.Context, column, value string) (Landing, error) {
	var l Landing
	err := r.pool.QueryRow(ctx,
		`SELECT id, org_id, owner_user_id FROM landing_pages
		 WHERE `+column+` = $1 AND active = true LIMIT 1`, value,
	).Scan(&l.ID, &l.OrgID, &l.OwnerUserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Landing{}, ErrLandingNotFound
	}
	if err != nil {
		return Landing{}, err
	}
	return l, nil
}

// UpsertLeadParams carries the landing capture payload for the lead row.
type UpsertLeadParams struct {
	OrgID       uuid.UUID
	OwnerUserID uuid.UUID
	LandingID   uuid.UUID
	Nome        string
	Telefone    string
	Email       *string
	ReferrerURL *string
	UserAgent   *string
	UTMSource   *string
	UTMMedium   *string
	UTMCampaign *string
	UTMTerm     *string
	UTMContent  *string
}

// UpsertLead inserts or updates a lead keyed by (org, telefone). An existing
// owner_id is never overwritten so later captures cannot steal a lead from
// its consultant.
func (r *Repository) UpsertLead(ctx context.Context, params UpsertLeadParams) (uuid.UUID, error) {
	var (
		leadID  uuid.UUID
		ownerID *uuid.UUID
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, owner_id FROM leads WHERE org_id = $1 AND telefone = $2 LIMIT 1`,
		params.OrgID, params.Telefone,
	).Scan(&leadID, &ownerID)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		err = r.pool.QueryRow(ctx,
			`INSERT INTO leads (org_id, owner_id, landing_id, nome, telefone, email,
				origem, etapa, referrer_url, user_agent,
				utm_source, utm_medium, utm_campaign, utm_term, utm_content)
			 VALUES ($1, $2, $3, $4, $5, $6, 'lp', 'novo', $7, $8, $9, $10, $11, $12, $13)
			 RETURNING id`,
			params.OrgID, params.OwnerUserID, params.LandingID, params.Nome,
			params.Telefone, params.Email, params.ReferrerURL, params.UserAgent,
			params.UTMSource, params.UTMMedium, params.UTMCampaign,
			params.UTMTerm, params.UTMContent,
		).Scan(&leadID)
		return leadID, err
	case err != nil:
		return uuid.Nil, err
	}

	owner := params.OwnerUserID
	if ownerID != nil {
		owner = *ownerID
	}

	_, err = r.pool.Exec(ctx,
		`UPDATE leads SET owner_id = $1, landing_id = $2, nome = $3, email = $4,
			origem = 'lp', referrer_url = $5, user_agent = $6,
			utm_source = $7, utm_medium = $8, utm_campaign = $9,
			utm_term = $10, utm_content = $11, updated_at = now()
		 WHERE id = $12`,
		owner, params.LandingID, params.Nome, params.Email,
		params.ReferrerURL, params.UserAgent,
		params.UTMSource, params.UTMMedium, params.UTMCampaign,
		params.UTMTerm, params.UTMContent, leadID,
	)
	return leadID, err
}

// ConsentParams describes one consent log entry. Rows are append-only.
type ConsentParams struct {
	OrgID     uuid.UUID
	LeadID    uuid.UUID
	Scope     string
	IP        *string
	UserAgent *string
}

func (r *Repository) InsertConsent(ctx context.Context, params ConsentParams) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO consent_logs (org_id, lead_id, consentimento, scope, ip, user_agent)
		 VALUES ($1, $2, true, $3, $4, $5)`,
		params.OrgID, params.LeadID, params.Scope, params.IP, params.UserAgent,
	)
	return err
}

// HasConsent reports whether the lead has any positive consent on record.
func (r *Repository) HasConsent(ctx context.Context, leadID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM consent_logs WHERE lead_id = $1 AND consentimento = true
		 )`, leadID,
	).Scan(&exists)
	return exists, err
}

// LeadOrg returns the organization the lead belongs to.
func (r *Repository) LeadOrg(ctx context.Context, leadID uuid.UUID) (uuid.UUID, error) {
	var orgID uuid.UUID
	err := r.pool.QueryRow(ctx,
		`SELECT org_id FROM leads WHERE id = $1`, leadID,
	).Scan(&orgID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, ErrLeadNotFound
	}
	return orgID, err
}
