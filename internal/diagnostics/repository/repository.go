package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("diagnostic not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Diagnostic mirrors the lead_diagnosticos table: questionnaire inputs plus
// the scores computed at save time.
type Diagnostic struct {
	ID                     uuid.UUID
	OrgID                  uuid.UUID
	LeadID                 uuid.UUID
	Objetivo               *string
	PrazoMetaMeses         *int
	PreferenciaProduto     *string
	RegiaoPreferencia      *string
	RendaMensal            *float64
	ReservaInicial         *float64
	ComprometimentoMaxPct  *float64
	RendaProvada           bool
	ValorCartaAlvo         *float64
	PrazoAlvoMeses         *int
	EstrategiaLance        *string
	LanceBasePct           *float64
	LanceMaxPct            *float64
	JanelaPreferidaSemanas *int
	ScoreRisco             int
	ReadinessScore         int
	ProbConversao          float64
	ProbContemplacaoShort  float64
	ProbContemplacaoMed    float64
	ProbContemplacaoLong   float64
	ConsentScope           *string
	ConsentTS              *time.Time
	Extras                 map[string]interface{}
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

const diagnosticColumns = `id, org_id, lead_id, objetivo, prazo_meta_meses, preferencia_produto,
	regiao_preferencia, renda_mensal, reserva_inicial, comprometimento_max_pct, renda_provada,
	valor_carta_alvo, prazo_alvo_meses, estrategia_lance, lance_base_pct, lance_max_pct,
	janela_preferida_semanas, score_risco, readiness_score, prob_conversao,
	prob_contemplacao_short, prob_contemplacao_med, prob_contemplacao_long,
	consent_scope, consent_ts, extras, created_at, updated_at`

func scanDiagnostic(row pgx.Row) (Diagnostic, error) {
	var d Diagnostic
	err := row.Scan(
		&d.ID, &d.OrgID, &d.LeadID, &d.Objetivo, &d.PrazoMetaMeses, &d.PreferenciaProduto,
		&d.RegiaoPreferencia, &d.RendaMensal, &d.ReservaInicial, &d.ComprometimentoMaxPct,
		&d.RendaProvada, &d.ValorCartaAlvo, &d.PrazoAlvoMeses, &d.EstrategiaLance,
		&d.LanceBasePct, &d.LanceMaxPct, &d.JanelaPreferidaSemanas,
		&d.ScoreRisco, &d.ReadinessScore, &d.ProbConversao,
		&d.ProbContemplacaoShort, &d.ProbContemplacaoMed, &d.ProbContemplacaoLong,
		&d.ConsentScope, &d.ConsentTS, &d.Extras, &d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

// Save upserts the diagnostic for (org, lead). The table carries no unique
// constraint on the pair, so the repository checks for an existing row and
// updates or inserts inside one transaction.
func (r *Repository) Save(ctx context.Context, d Diagnostic) (Diagnostic, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Diagnostic{}, err
	}
	defer tx.Rollback(ctx)

	var existingID uuid.UUID
	err = tx.QueryRow(ctx, `
		SELECT id FROM lead_diagnosticos
		WHERE org_id = $1 AND lead_id = $2
		LIMIT 1
		FOR UPDATE
	`, d.OrgID, d.LeadID).Scan(&existingID)

	exists := true
	if errors.Is(err, pgx.ErrNoRows) {
		exists = false
	} else if err != nil {
		return Diagnostic{}, err
	}

	args := []interface{}{
		d.OrgID, d.LeadID, d.Objetivo, d.PrazoMetaMeses, d.PreferenciaProduto,
		d.RegiaoPreferencia, d.RendaMensal, d.ReservaInicial, d.ComprometimentoMaxPct,
		d.RendaProvada, d.ValorCartaAlvo, d.PrazoAlvoMeses, d.EstrategiaLance,
		d.LanceBasePct, d.LanceMaxPct, d.JanelaPreferidaSemanas,
		d.ScoreRisco, d.ReadinessScore, d.ProbConversao,
		d.ProbContemplacaoShort, d.ProbContemplacaoMed, d.ProbContemplacaoLong,
		d.ConsentScope, d.ConsentTS, d.Extras,
	}

	var row pgx.Row
	if exists {
		row = tx.QueryRow(ctx, `
			UPDATE lead_diagnosticos SET
				objetivo = $3, prazo_meta_meses = $4, preferencia_produto = $5,
				regiao_preferencia = $6, renda_mensal = $7, reserva_inicial = $8,
				comprometimento_max_pct = $9, renda_provada = $10,
				valor_carta_alvo = $11, prazo_alvo_meses = $12, estrategia_lance = $13,
				lance_base_pct = $14, lance_max_pct = $15, janela_preferida_semanas = $16,
				score_risco = $17, readiness_score = $18, prob_conversao = $19,
				prob_contemplacao_short = $20, prob_contemplacao_med = $21,
				prob_contemplacao_long = $22, consent_scope = $23, consent_ts = $24,
				extras = $25, updated_at = now()
			WHERE org_id = $1 AND lead_id = $2
			RETURNING `+diagnosticColumns, args...)
	} else {
		row = tx.QueryRow(ctx, `
			INSERT INTO lead_diagnosticos (org_id, lead_id, objetivo, prazo_meta_meses,
				preferencia_produto, regiao_preferencia, renda_mensal, reserva_inicial,
				comprometimento_max_pct, renda_provada, valor_carta_alvo, prazo_alvo_meses,
				estrategia_lance, lance_base_pct, lance_max_pct, janela_preferida_semanas,
				score_risco, readiness_score, prob_conversao, prob_contemplacao_short,
				prob_contemplacao_med, prob_contemplacao_long, consent_scope, consent_ts, extras)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
				$17, $18, $19, $20, $21, $22, $23, $24, $25)
			RETURNING `+diagnosticColumns, args...)
	}

	saved, err := scanDiagnostic(row)
	if err != nil {
		return Diagnostic{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Diagnostic{}, err
	}
	return saved, nil
}

func (r *Repository) GetByLead(ctx context.Context, orgID, leadID uuid.UUID) (Diagnostic, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+diagnosticColumns+`
		FROM lead_diagnosticos
		WHERE org_id = $1 AND lead_id = $2
		LIMIT 1
	`, orgID, leadID)

	d, err := scanDiagnostic(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Diagnostic{}, ErrNotFound
	}
	if err != nil {
		return Diagnostic{}, err
	}
	return d, nil
}
