package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Interest struct {
	ID             uuid.UUID
	OrgID          uuid.UUID
	LeadID         uuid.UUID
	Produto        *string
	ValorTotal     *string
	PrazoMeses     *int
	Objetivo       *string
	PerfilDesejado *string
	Observacao     *string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const interestColumns = `id, org_id, lead_id, produto, valor_total, prazo_meses, objetivo,
	perfil_desejado, observacao, status, created_at, updated_at`

func scanInterest(row pgx.Row) (Interest, error) {
	var in Interest
	err := row.Scan(
		&in.ID, &in.OrgID, &in.LeadID, &in.Produto, &in.ValorTotal, &in.PrazoMeses,
		&in.Objetivo, &in.PerfilDesejado, &in.Observacao, &in.Status,
		&in.CreatedAt, &in.UpdatedAt,
	)
	return in, err
}

type CreateInterestParams struct {
	OrgID          uuid.UUID
	LeadID         uuid.UUID
	Produto        *string
	ValorTotal     *string
	PrazoMeses     *int
	Objetivo       *string
	PerfilDesejado *string
	Observacao     *string
}

func (r *Repository) CreateInterest(ctx context.Context, params CreateInterestParams) (Interest, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO lead_interesses (org_id, lead_id, produto, valor_total, prazo_meses,
			objetivo, perfil_desejado, observacao, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'aberto')
		RETURNING `+interestColumns,
		params.OrgID, params.LeadID, params.Produto, params.ValorTotal, params.PrazoMeses,
		params.Objetivo, params.PerfilDesejado, params.Observacao,
	)
	return scanInterest(row)
}

func (r *Repository) ListInterests(ctx context.Context, orgID, leadID uuid.UUID) ([]Interest, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+interestColumns+`
		FROM lead_interesses
		WHERE org_id = $1 AND lead_id = $2
		ORDER BY created_at DESC
	`, orgID, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interests []Interest
	for rows.Next() {
		in, err := scanInterest(rows)
		if err != nil {
			return nil, err
		}
		interests = append(interests, in)
	}
	return interests, rows.Err()
}

// CloseInterest marks an interest as handled so it stops feeding insights.
func (r *Repository) CloseInterest(ctx context.Context, orgID, interestID uuid.UUID) (Interest, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE lead_interesses SET status = 'fechado', updated_at = now()
		WHERE org_id = $1 AND id = $2
		RETURNING `+interestColumns,
		orgID, interestID,
	)

	in, err := scanInterest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Interest{}, ErrNotFound
	}
	if err != nil {
		return Interest{}, err
	}
	return in, nil
}
