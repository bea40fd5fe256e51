package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("proposal not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ClientInfo is the client snapshot embedded in the payload so the public
// page and PDF render without joins.
type ClientInfo struct {
	LeadID   uuid.UUID `json:"leadId"`
	Nome     *string   `json:"nome,omitempty"`
	Telefone *string   `json:"telefone,omitempty"`
	Email    *string   `json:"email,omitempty"`
	Origem   *string   `json:"origem,omitempty"`
}

// Scenario is one card option inside a proposal.
type Scenario struct {
	ID                   string   `json:"id"`
	Titulo               string   `json:"titulo"`
	Produto              string   `json:"produto"`
	Administradora       *string  `json:"administradora,omitempty"`
	ValorCarta           float64  `json:"valorCarta"`
	PrazoMeses           int      `json:"prazoMeses"`
	ComRedutor           *bool    `json:"comRedutor,omitempty"`
	RedutorPercent       *float64 `json:"redutorPercent,omitempty"`
	ParcelaCheia         *float64 `json:"parcelaCheia,omitempty"`
	ParcelaReduzida      *float64 `json:"parcelaReduzida,omitempty"`
	TaxaAdminAnual       *float64 `json:"taxaAdminAnual,omitempty"`
	FundoReservaPct      *float64 `json:"fundoReservaPct,omitempty"`
	SeguroPrestamista    *bool    `json:"seguroPrestamista,omitempty"`
	LanceFixoPct1        *float64 `json:"lanceFixoPct1,omitempty"`
	LanceFixoPct2        *float64 `json:"lanceFixoPct2,omitempty"`
	PermiteLanceEmbutido *bool    `json:"permiteLanceEmbutido,omitempty"`
	LanceEmbutidoPctMax  *float64 `json:"lanceEmbutidoPctMax,omitempty"`
	Observacoes          *string  `json:"observacoes,omitempty"`
}

// Meta holds proposal context.
type Meta struct {
	Campanha            *string `json:"campanha,omitempty"`
	ComentarioConsultor *string `json:"comentarioConsultor,omitempty"`
	ValidadeDias        *int    `json:"validadeDias,omitempty"`
}

// Payload is the JSONB document stored with the proposal.
type Payload struct {
	Cliente   ClientInfo             `json:"cliente"`
	Propostas []Scenario             `json:"propostas"`
	Meta      *Meta                  `json:"meta,omitempty"`
	Extras    map[string]interface{} `json:"extras,omitempty"`
}

// Proposal mirrors the lead_propostas table.
type Proposal struct {
	ID         uuid.UUID
	OrgID      uuid.UUID
	LeadID     uuid.UUID
	Titulo     *string
	Campanha   *string
	Status     string
	PublicHash string
	Payload    Payload
	PDFURL     *string
	CreatedBy  *uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const proposalColumns = `id, org_id, lead_id, titulo, campanha, status, public_hash, payload,
	pdf_url, created_by, created_at, updated_at`

func scanProposal(row pgx.Row) (Proposal, error) {
	var p Proposal
	err := row.Scan(&p.ID, &p.OrgID, &p.LeadID, &p.Titulo, &p.Campanha, &p.Status,
		&p.PublicHash, &p.Payload, &p.PDFURL, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// HashExists reports whether any proposal already uses the public hash.
func (r *Repository) HashExists(ctx context.Context, hash string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM lead_propostas WHERE public_hash = $1)`, hash,
	).Scan(&exists)
	return exists, err
}

type CreateParams struct {
	OrgID      uuid.UUID
	LeadID     uuid.UUID
	Titulo     string
	Campanha   *string
	Status     string
	PublicHash string
	Payload    Payload
	CreatedBy  *uuid.UUID
}

func (r *Repository) Create(ctx context.Context, params CreateParams) (Proposal, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO lead_propostas (org_id, lead_id, titulo, campanha, status, public_hash,
			payload, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+proposalColumns,
		params.OrgID, params.LeadID, params.Titulo, params.Campanha, params.Status,
		params.PublicHash, params.Payload, params.CreatedBy,
	)
	return scanProposal(row)
}

func (r *Repository) ListByLead(ctx context.Context, orgID, leadID uuid.UUID) ([]Proposal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+proposalColumns+`
		FROM lead_propostas
		WHERE org_id = $1 AND lead_id = $2
		ORDER BY created_at DESC
	`, orgID, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByPublicHash resolves a proposal from its public link. No org filter:
// the hash is random and unique, knowledge of it is the credential.
func (r *Repository) GetByPublicHash(ctx context.Context, hash string) (Proposal, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+proposalColumns+` FROM lead_propostas WHERE public_hash = $1`, hash)

	p, err := scanProposal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Proposal{}, ErrNotFound
	}
	if err != nil {
		return Proposal{}, err
	}
	return p, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Proposal, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+proposalColumns+` FROM lead_propostas WHERE id = $1`, id)

	p, err := scanProposal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Proposal{}, ErrNotFound
	}
	if err != nil {
		return Proposal{}, err
	}
	return p, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Proposal, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE lead_propostas SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+proposalColumns,
		id, status,
	)

	p, err := scanProposal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Proposal{}, ErrNotFound
	}
	if err != nil {
		return Proposal{}, err
	}
	return p, nil
}
