package transport

import (
	"time"

	"contemplahub_backend/internal/leads/repository"

	"github.com/google/uuid"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// CreateLeadRequest is the request body for creating a lead.
type CreateLeadRequest struct {
	Nome     string     `json:"nome" validate:"required,min=1,max=255"`
	Telefone *string    `json:"telefone" validate:"omitempty,max=32"`
	Email    *string    `json:"email" validate:"omitempty,email,max=255"`
	Origem   *string    `json:"origem" validate:"omitempty,max=100"`
	OwnerID  *uuid.UUID `json:"ownerId"`
}

// MoveStageRequest is the request body for moving a lead through the funnel.
type MoveStageRequest struct {
	Etapa  string  `json:"etapa" validate:"required,oneof=novo diagnostico proposta negociacao contrato ativo perdido"`
	Reason *string `json:"reason" validate:"omitempty,max=500"`
}

// CreateInterestRequest is the request body for recording a product interest.
type CreateInterestRequest struct {
	Produto        *string `json:"produto" validate:"omitempty,max=100"`
	ValorTotal     *string `json:"valorTotal" validate:"omitempty,max=50"`
	PrazoMeses     *int    `json:"prazoMeses" validate:"omitempty,min=1,max=240"`
	Objetivo       *string `json:"objetivo" validate:"omitempty,max=500"`
	PerfilDesejado *string `json:"perfilDesejado" validate:"omitempty,max=500"`
	Observacao     *string `json:"observacao" validate:"omitempty,max=2000"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// LeadResponse is the response for a lead.
type LeadResponse struct {
	ID             uuid.UUID  `json:"id"`
	Nome           string     `json:"nome"`
	Telefone       *string    `json:"telefone,omitempty"`
	Email          *string    `json:"email,omitempty"`
	Origem         *string    `json:"origem,omitempty"`
	OwnerID        *uuid.UUID `json:"ownerId,omitempty"`
	LandingID      *uuid.UUID `json:"landingId,omitempty"`
	Etapa          string     `json:"etapa"`
	FirstContactAt *time.Time `json:"firstContactAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// MoveStageResponse is the response for a stage move. Skipped is true when
// the lead was already in the requested stage.
type MoveStageResponse struct {
	Lead    LeadResponse `json:"lead"`
	Skipped bool         `json:"skipped"`
}

// InterestResponse is the response for a product interest.
type InterestResponse struct {
	ID             uuid.UUID `json:"id"`
	LeadID         uuid.UUID `json:"leadId"`
	Produto        *string   `json:"produto,omitempty"`
	ValorTotal     *string   `json:"valorTotal,omitempty"`
	PrazoMeses     *int      `json:"prazoMeses,omitempty"`
	Objetivo       *string   `json:"objetivo,omitempty"`
	PerfilDesejado *string   `json:"perfilDesejado,omitempty"`
	Observacao     *string   `json:"observacao,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ── Mappers ───────────────────────────────────────────────────────────────────

func ToLeadResponse(lead repository.Lead) LeadResponse {
	return LeadResponse{
		ID:             lead.ID,
		Nome:           lead.Nome,
		Telefone:       lead.Telefone,
		Email:          lead.Email,
		Origem:         lead.Origem,
		OwnerID:        lead.OwnerID,
		LandingID:      lead.LandingID,
		Etapa:          string(lead.Etapa),
		FirstContactAt: lead.FirstContactAt,
		CreatedAt:      lead.CreatedAt,
		UpdatedAt:      lead.UpdatedAt,
	}
}

func ToInterestResponse(in repository.Interest) InterestResponse {
	return InterestResponse{
		ID:             in.ID,
		LeadID:         in.LeadID,
		Produto:        in.Produto,
		ValorTotal:     in.ValorTotal,
		PrazoMeses:     in.PrazoMeses,
		Objetivo:       in.Objetivo,
		PerfilDesejado: in.PerfilDesejado,
		Observacao:     in.Observacao,
		Status:         in.Status,
		CreatedAt:      in.CreatedAt,
	}
}

func ToInterestResponses(interests []repository.Interest) []InterestResponse {
	out := make([]InterestResponse, 0, len(interests))
	for _, in := range interests {
		out = append(out, ToInterestResponse(in))
	}
	return out
}
