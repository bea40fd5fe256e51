package transport

import (
	"time"

	"contemplahub_backend/internal/diagnostics/repository"
	"contemplahub_backend/internal/diagnostics/service"

	"github.com/google/uuid"
)

// SaveDiagnosticRequest is the full questionnaire payload. Saving always
// replaces the stored diagnostic for the lead.
type SaveDiagnosticRequest struct {
	Objetivo               *string                `json:"objetivo" validate:"omitempty,max=500"`
	PrazoMetaMeses         *int                   `json:"prazoMetaMeses" validate:"omitempty,min=0"`
	PreferenciaProduto     *string                `json:"preferenciaProduto" validate:"omitempty,max=100"`
	RegiaoPreferencia      *string                `json:"regiaoPreferencia" validate:"omitempty,max=255"`
	RendaMensal            *float64               `json:"rendaMensal" validate:"omitempty,min=0"`
	ReservaInicial         *float64               `json:"reservaInicial" validate:"omitempty,min=0"`
	ComprometimentoMaxPct  *float64               `json:"comprometimentoMaxPct" validate:"omitempty,min=0,max=100"`
	RendaProvada           bool                   `json:"rendaProvada"`
	ValorCartaAlvo         *float64               `json:"valorCartaAlvo" validate:"omitempty,min=0"`
	PrazoAlvoMeses         *int                   `json:"prazoAlvoMeses" validate:"omitempty,min=0"`
	EstrategiaLance        *string                `json:"estrategiaLance" validate:"omitempty,max=100"`
	LanceBasePct           *float64               `json:"lanceBasePct" validate:"omitempty,min=0"`
	LanceMaxPct            *float64               `json:"lanceMaxPct" validate:"omitempty,min=0"`
	JanelaPreferidaSemanas *int                   `json:"janelaPreferidaSemanas" validate:"omitempty,min=0"`
	ConsentScope           *string                `json:"consentScope" validate:"omitempty,max=255"`
	Extras                 map[string]interface{} `json:"extras"`
}

// ToInput maps the request to the scoring engine input.
func (r SaveDiagnosticRequest) ToInput() service.Input {
	return service.Input{
		Objetivo:               r.Objetivo,
		PrazoMetaMeses:         r.PrazoMetaMeses,
		PreferenciaProduto:     r.PreferenciaProduto,
		RegiaoPreferencia:      r.RegiaoPreferencia,
		RendaMensal:            r.RendaMensal,
		ReservaInicial:         r.ReservaInicial,
		ComprometimentoMaxPct:  r.ComprometimentoMaxPct,
		RendaProvada:           r.RendaProvada,
		ValorCartaAlvo:         r.ValorCartaAlvo,
		PrazoAlvoMeses:         r.PrazoAlvoMeses,
		EstrategiaLance:        r.EstrategiaLance,
		LanceBasePct:           r.LanceBasePct,
		LanceMaxPct:            r.LanceMaxPct,
		JanelaPreferidaSemanas: r.JanelaPreferidaSemanas,
		ConsentScope:           r.ConsentScope,
		Extras:                 r.Extras,
	}
}

// ScoresResponse carries the computed scores.
type ScoresResponse struct {
	ScoreRisco            int     `json:"scoreRisco"`
	ReadinessScore        int     `json:"readinessScore"`
	ProbConversao         float64 `json:"probConversao"`
	ProbContemplacaoShort float64 `json:"probContemplacaoShort"`
	ProbContemplacaoMed   float64 `json:"probContemplacaoMed"`
	ProbContemplacaoLong  float64 `json:"probContemplacaoLong"`
}

// DiagnosticResponse is the stored diagnostic record.
type DiagnosticResponse struct {
	ID                     uuid.UUID              `json:"id"`
	LeadID                 uuid.UUID              `json:"leadId"`
	Objetivo               *string                `json:"objetivo,omitempty"`
	PrazoMetaMeses         *int                   `json:"prazoMetaMeses,omitempty"`
	PreferenciaProduto     *string                `json:"preferenciaProduto,omitempty"`
	RegiaoPreferencia      *string                `json:"regiaoPreferencia,omitempty"`
	RendaMensal            *float64               `json:"rendaMensal,omitempty"`
	ReservaInicial         *float64               `json:"reservaInicial,omitempty"`
	ComprometimentoMaxPct  *float64               `json:"comprometimentoMaxPct,omitempty"`
	RendaProvada           bool                   `json:"rendaProvada"`
	ValorCartaAlvo         *float64               `json:"valorCartaAlvo,omitempty"`
	PrazoAlvoMeses         *int                   `json:"prazoAlvoMeses,omitempty"`
	EstrategiaLance        *string                `json:"estrategiaLance,omitempty"`
	LanceBasePct           *float64               `json:"lanceBasePct,omitempty"`
	LanceMaxPct            *float64               `json:"lanceMaxPct,omitempty"`
	JanelaPreferidaSemanas *int                   `json:"janelaPreferidaSemanas,omitempty"`
	Scores                 ScoresResponse         `json:"scores"`
	ConsentScope           *string                `json:"consentScope,omitempty"`
	ConsentTS              *time.Time             `json:"consentTs,omitempty"`
	Extras                 map[string]interface{} `json:"extras,omitempty"`
	CreatedAt              time.Time              `json:"createdAt"`
	UpdatedAt              time.Time              `json:"updatedAt"`
}

func ToDiagnosticResponse(d repository.Diagnostic) DiagnosticResponse {
	return DiagnosticResponse{
		ID:                     d.ID,
		LeadID:                 d.LeadID,
		Objetivo:               d.Objetivo,
		PrazoMetaMeses:         d.PrazoMetaMeses,
		PreferenciaProduto:     d.PreferenciaProduto,
		RegiaoPreferencia:      d.RegiaoPreferencia,
		RendaMensal:            d.RendaMensal,
		ReservaInicial:         d.ReservaInicial,
		ComprometimentoMaxPct:  d.ComprometimentoMaxPct,
		RendaProvada:           d.RendaProvada,
		ValorCartaAlvo:         d.ValorCartaAlvo,
		PrazoAlvoMeses:         d.PrazoAlvoMeses,
		EstrategiaLance:        d.EstrategiaLance,
		LanceBasePct:           d.LanceBasePct,
		LanceMaxPct:            d.LanceMaxPct,
		JanelaPreferidaSemanas: d.JanelaPreferidaSemanas,
		Scores: ScoresResponse{
			ScoreRisco:            d.ScoreRisco,
			ReadinessScore:        d.ReadinessScore,
			ProbConversao:         d.ProbConversao,
			ProbContemplacaoShort: d.ProbContemplacaoShort,
			ProbContemplacaoMed:   d.ProbContemplacaoMed,
			ProbContemplacaoLong:  d.ProbContemplacaoLong,
		},
		ConsentScope: d.ConsentScope,
		ConsentTS:    d.ConsentTS,
		Extras:       d.Extras,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
