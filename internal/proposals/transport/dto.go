package transport

import (
	"time"

	"contemplahub_backend/internal/proposals/repository"
	"contemplahub_backend/internal/proposals/service"

	"github.com/google/uuid"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// ScenarioRequest is one card option the consultant puts in front of the
// client.
type ScenarioRequest struct {
	ID                   string   `json:"id" validate:"required,max=20"`
	Titulo               string   `json:"titulo" validate:"required,max=255"`
	Produto              string   `json:"produto" validate:"required,oneof=imobiliario auto outro"`
	Administradora       *string  `json:"administradora" validate:"omitempty,max=255"`
	ValorCarta           float64  `json:"valorCarta" validate:"required,gt=0"`
	PrazoMeses           int      `json:"prazoMeses" validate:"required,min=1,max=240"`
	ComRedutor           *bool    `json:"comRedutor"`
	RedutorPercent       *float64 `json:"redutorPercent" validate:"omitempty,min=0,max=100"`
	ParcelaCheia         *float64 `json:"parcelaCheia" validate:"omitempty,min=0"`
	ParcelaReduzida      *float64 `json:"parcelaReduzida" validate:"omitempty,min=0"`
	TaxaAdminAnual       *float64 `json:"taxaAdminAnual" validate:"omitempty,min=0,max=100"`
	FundoReservaPct      *float64 `json:"fundoReservaPct" validate:"omitempty,min=0,max=100"`
	SeguroPrestamista    *bool    `json:"seguroPrestamista"`
	LanceFixoPct1        *float64 `json:"lanceFixoPct1" validate:"omitempty,min=0,max=100"`
	LanceFixoPct2        *float64 `json:"lanceFixoPct2" validate:"omitempty,min=0,max=100"`
	PermiteLanceEmbutido *bool    `json:"permiteLanceEmbutido"`
	LanceEmbutidoPctMax  *float64 `json:"lanceEmbutidoPctMax" validate:"omitempty,min=0,max=100"`
	Observacoes          *string  `json:"observacoes" validate:"omitempty,max=2000"`
}

// MetaRequest carries proposal context fields.
type MetaRequest struct {
	Campanha            *string `json:"campanha" validate:"omitempty,max=255"`
	ComentarioConsultor *string `json:"comentarioConsultor" validate:"omitempty,max=2000"`
	ValidadeDias        *int    `json:"validadeDias" validate:"omitempty,min=1,max=365"`
}

// CreateProposalRequest creates a proposal for a lead.
type CreateProposalRequest struct {
	Titulo           string                 `json:"titulo" validate:"required,max=255"`
	Campanha         *string                `json:"campanha" validate:"omitempty,max=255"`
	Status           string                 `json:"status" validate:"omitempty,oneof=rascunho enviado"`
	ClienteOverrides map[string]interface{} `json:"clienteOverrides"`
	Meta             *MetaRequest           `json:"meta"`
	Cenarios         []ScenarioRequest      `json:"cenarios" validate:"required,min=1,dive"`
}

// UpdateStatusRequest moves a proposal to any declared status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=rascunho enviado aprovada recusada inativa"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

type ClientInfoResponse struct {
	LeadID   uuid.UUID `json:"leadId"`
	Nome     *string   `json:"nome,omitempty"`
	Telefone *string   `json:"telefone,omitempty"`
	Email    *string   `json:"email,omitempty"`
	Origem   *string   `json:"origem,omitempty"`
}

type PayloadResponse struct {
	Cliente   ClientInfoResponse     `json:"cliente"`
	Propostas []repository.Scenario  `json:"propostas"`
	Meta      *repository.Meta       `json:"meta,omitempty"`
	Extras    map[string]interface{} `json:"extras,omitempty"`
}

// ProposalResponse mirrors the stored proposal row.
type ProposalResponse struct {
	ID         uuid.UUID       `json:"id"`
	LeadID     uuid.UUID       `json:"leadId"`
	Titulo     *string         `json:"titulo,omitempty"`
	Campanha   *string         `json:"campanha,omitempty"`
	Status     string          `json:"status"`
	PublicHash string          `json:"publicHash"`
	Payload    PayloadResponse `json:"payload"`
	PDFURL     *string         `json:"pdfUrl,omitempty"`
	CreatedBy  *uuid.UUID      `json:"createdBy,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// ── Mappers ───────────────────────────────────────────────────────────────────

func (r ScenarioRequest) toInput() service.ScenarioInput {
	return service.ScenarioInput(r)
}

// ToInput converts the request into the service-level create input.
func (r CreateProposalRequest) ToInput() service.CreateInput {
	cenarios := make([]service.ScenarioInput, 0, len(r.Cenarios))
	for _, c := range r.Cenarios {
		cenarios = append(cenarios, c.toInput())
	}

	var meta *repository.Meta
	if r.Meta != nil {
		meta = &repository.Meta{
			Campanha:            r.Meta.Campanha,
			ComentarioConsultor: r.Meta.ComentarioConsultor,
			ValidadeDias:        r.Meta.ValidadeDias,
		}
	}

	return service.CreateInput{
		Titulo:           r.Titulo,
		Campanha:         r.Campanha,
		Status:           r.Status,
		ClienteOverrides: r.ClienteOverrides,
		Meta:             meta,
		Cenarios:         cenarios,
	}
}

func ToProposalResponse(p repository.Proposal) ProposalResponse {
	return ProposalResponse{
		ID:         p.ID,
		LeadID:     p.LeadID,
		Titulo:     p.Titulo,
		Campanha:   p.Campanha,
		Status:     p.Status,
		PublicHash: p.PublicHash,
		Payload: PayloadResponse{
			Cliente:   ClientInfoResponse(p.Payload.Cliente),
			Propostas: p.Payload.Propostas,
			Meta:      p.Payload.Meta,
			Extras:    p.Payload.Extras,
		},
		PDFURL:    p.PDFURL,
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func ToProposalResponses(proposals []repository.Proposal) []ProposalResponse {
	out := make([]ProposalResponse, 0, len(proposals))
	for _, p := range proposals {
		out = append(out, ToProposalResponse(p))
	}
	return out
}
