package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("registration not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Registration mirrors the lead_cadastros table. Each row is a public data
// collection link handed to the client.
type Registration struct {
	ID          uuid.UUID
	OrgID       uuid.UUID
	LeadID      uuid.UUID
	PropostaID  *uuid.UUID
	TipoCliente string
	Status      string
	TokenPub    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PersonData mirrors lead_cadastros_pf, one row per registration.
type PersonData struct {
	CadastroID      uuid.UUID
	NomeCompleto    string
	CPF             string
	DataNascimento  *string
	EstadoCivil     *string
	Email           string
	TelefoneCelular string
	RendaMensal     *float64
	CEP             *string
	Endereco        *string
	Bairro          *string
	Cidade          *string
	UF              *string
	Observacoes     *string
}

const registrationColumns = `id, org_id, lead_id, proposta_id, tipo_cliente, status, token_publico,
	created_at, updated_at`

func scanRegistration(row pgx.Row) (Registration, error) {
	var r Registration
	err := row.Scan(&r.ID, &r.OrgID, &r.LeadID, &r.PropostaID, &r.TipoCliente, &r.Status,
		&r.TokenPub, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

type CreateParams struct {
	OrgID       uuid.UUID
	LeadID      uuid.UUID
	PropostaID  *uuid.UUID
	TipoCliente string
	Status      string
	TokenPub    string
}

func (r *Repository) Create(ctx context.Context, params CreateParams) (Registration, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO lead_cadastros (org_id, lead_id, proposta_id, tipo_cliente, status, token_publico)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+registrationColumns,
		params.OrgID, params.LeadID, params.PropostaID, params.TipoCliente, params.Status,
		params.TokenPub,
	)
	return scanRegistration(row)
}

func (r *Repository) TokenExists(ctx context.Context, token string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM lead_cadastros WHERE token_publico = $1)`, token,
	).Scan(&exists)
	return exists, err
}

// GetByToken resolves a registration by its public token. Like proposal
// hashes, the token is the credential; no org filter applies.
func (r *Repository) GetByToken(ctx context.Context, token string) (Registration, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+registrationColumns+` FROM lead_cadastros WHERE token_publico = $1 LIMIT 1`, token)

	reg, err := scanRegistration(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Registration{}, ErrNotFound
	}
	if err != nil {
		return Registration{}, err
	}
	return reg, nil
}

// UpsertPersonData writes the PF payload for a registration, replacing any
// previous submission for the same cadastro.
func (r *Repository) UpsertPersonData(ctx context.Context, data PersonData) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lead_cadastros_pf (cadastro_id, nome_completo, cpf, data_nascimento,
			estado_civil, email, telefone_celular, renda_mensal, cep, endereco, bairro,
			cidade, uf, observacoes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (cadastro_id) DO UPDATE SET
			nome_completo = EXCLUDED.nome_completo,
			cpf = EXCLUDED.cpf,
			data_nascimento = EXCLUDED.data_nascimento,
			estado_civil = EXCLUDED.estado_civil,
			email = EXCLUDED.email,
			telefone_celular = EXCLUDED.telefone_celular,
			renda_mensal = EXCLUDED.renda_mensal,
			cep = EXCLUDED.cep,
			endereco = EXCLUDED.endereco,
			bairro = EXCLUDED.bairro,
			cidade = EXCLUDED.cidade,
			uf = EXCLUDED.uf,
			observacoes = EXCLUDED.observacoes,
			updated_at = now()
	`, data.CadastroID, data.NomeCompleto, data.CPF, data.DataNascimento, data.EstadoCivil,
		data.Email, data.TelefoneCelular, data.RendaMensal, data.CEP, data.Endereco,
		data.Bairro, data.Cidade, data.UF, data.Observacoes)
	return err
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE lead_cadastros SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	return err
}
