package repository

import (
	"context"
	"errors"
	"time"

	"contemplahub_backend/internal/contracts/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("contract not found")
	// ErrStatusChanged means the conditional update matched no row: the
	// status moved between our read and our write.
	ErrStatusChanged = errors.New("contract status changed concurrently")
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Quota carries the commercial terms a contract is built on.
type Quota struct {
	ID              uuid.UUID
	OrgID           uuid.UUID
	LeadID          uuid.UUID
	Administradora  *string
	Produto         *string
	ValorCarta      float64
	PrazoMeses      *int
	TaxaAdmPct      *float64
	FundoReservaPct *float64
	CreatedAt       time.Time
}

// Contract is the binding agreement derived from a quota.
type Contract struct {
	ID             uuid.UUID
	OrgID          uuid.UUID
	CotaID         uuid.UUID
	NumeroContrato *string
	Documento      *string
	Status         domain.Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const contractColumns = `id, org_id, cota_id, numero_contrato, documento, status, created_at, updated_at`

func scanContract(row pgx.Row) (Contract, error) {
	var c Contract
	err := row.Scan(&c.ID, &c.OrgID, &c.CotaID, &c.NumeroContrato, &c.Documento,
		&c.Status, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

type CreateParams struct {
	OrgID           uuid.UUID
	LeadID          uuid.UUID
	Administradora  *string
	Produto         *string
	ValorCarta      float64
	PrazoMeses      *int
	TaxaAdmPct      *float64
	FundoReservaPct *float64
	NumeroContrato  *string
	Documento       *string
}

// CreateWithQuota inserts the quota and its contract in one transaction so a
// failed contract insert cannot leave an orphaned quota behind.
func (r *Repository) CreateWithQuota(ctx context.Context, params CreateParams) (Quota, Contract, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Quota{}, Contract{}, err
	}
	defer tx.Rollback(ctx)

	var quota Quota
	err = tx.QueryRow(ctx, `
		INSERT INTO cotas (org_id, lead_id, administradora, produto, valor_carta,
			prazo_meses, taxa_adm_pct, fundo_reserva_pct)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, org_id, lead_id, administradora, produto, valor_carta,
			prazo_meses, taxa_adm_pct, fundo_reserva_pct, created_at
	`, params.OrgID, params.LeadID, params.Administradora, params.Produto,
		params.ValorCarta, params.PrazoMeses, params.TaxaAdmPct, params.FundoReservaPct,
	).Scan(&quota.ID, &quota.OrgID, &quota.LeadID, &quota.Administradora, &quota.Produto,
		&quota.ValorCarta, &quota.PrazoMeses, &quota.TaxaAdmPct, &quota.FundoReservaPct,
		&quota.CreatedAt)
	if err != nil {
		return Quota{}, Contract{}, err
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO contratos (org_id, cota_id, numero_contrato, documento, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+contractColumns,
		params.OrgID, quota.ID, params.NumeroContrato, params.Documento,
		domain.StatusPendenteAssinatura,
	)
	contract, err := scanContract(row)
	if err != nil {
		return Quota{}, Contract{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Quota{}, Contract{}, err
	}
	return quota, contract, nil
}

// GetByID loads a contract by id without an org filter so the service can
// tell forbidden from not-found.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Contract, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+contractColumns+` FROM contratos WHERE id = $1`, id)

	c, err := scanContract(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Contract{}, ErrNotFound
	}
	if err != nil {
		return Contract{}, err
	}
	return c, nil
}

// UpdateStatus applies the transition with a compare-and-swap on the expected
// current status. A concurrent transition between read and write yields
// ErrStatusChanged.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next domain.Status) (Contract, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE contratos SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2
		RETURNING `+contractColumns,
		id, expected, next,
	)

	c, err := scanContract(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Contract{}, ErrStatusChanged
	}
	if err != nil {
		return Contract{}, err
	}
	return c, nil
}

// LeadIDForContract resolves the lead behind a contract's quota.
func (r *Repository) LeadIDForContract(ctx context.Context, contractID uuid.UUID) (uuid.UUID, error) {
	var leadID uuid.UUID
	err := r.pool.QueryRow(ctx, `
		SELECT q.lead_id
		FROM contratos c
		JOIN cotas q ON q.id = c.cota_id
		WHERE c.id = $1
	`, contractID).Scan(&leadID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.UUID{}, ErrNotFound
	}
	if err != nil {
		return uuid.UUID{}, err
	}
	return leadID, nil
}

// ListByLead returns the contracts attached to a lead's quotas.
func (r *Repository) ListByLead(ctx context.Context, orgID, leadID uuid.UUID) ([]Contract, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.org_id, c.cota_id, c.numero_contrato, c.documento, c.status,
			c.created_at, c.updated_at
		FROM contratos c
		JOIN cotas q ON q.id = c.cota_id
		WHERE c.org_id = $1 AND q.lead_id = $2
		ORDER BY c.created_at DESC
	`, orgID, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
