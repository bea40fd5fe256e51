package transport

import (
	"time"

	"contemplahub_backend/internal/contracts/repository"
	"contemplahub_backend/internal/contracts/service"

	"github.com/google/uuid"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// CreateContractRequest creates a quota plus its contract from a lead. The
// card value comes in localized form ("250.000,00").
type CreateContractRequest struct {
	LeadID          uuid.UUID `json:"leadId" validate:"required"`
	ValorCarta      string    `json:"valorCarta" validate:"required,max=50"`
	Administradora  *string   `json:"administradora" validate:"omitempty,max=255"`
	Produto         *string   `json:"produto" validate:"omitempty,max=100"`
	PrazoMeses      *int      `json:"prazoMeses" validate:"omitempty,min=1,max=240"`
	TaxaAdmPct      *float64  `json:"taxaAdmPct" validate:"omitempty,min=0,max=100"`
	FundoReservaPct *float64  `json:"fundoReservaPct" validate:"omitempty,min=0,max=100"`
	NumeroContrato  *string   `json:"numeroContrato" validate:"omitempty,max=100"`
	Documento       *string   `json:"documento" validate:"omitempty,max=100"`
}

// UpdateStatusRequest requests a status transition.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pendente_assinatura pendente_pagamento alocado contemplado cancelado"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// QuotaResponse is the commercial terms record.
type QuotaResponse struct {
	ID              uuid.UUID `json:"id"`
	LeadID          uuid.UUID `json:"leadId"`
	Administradora  *string   `json:"administradora,omitempty"`
	Produto         *string   `json:"produto,omitempty"`
	ValorCarta      float64   `json:"valorCarta"`
	PrazoMeses      *int      `json:"prazoMeses,omitempty"`
	TaxaAdmPct      *float64  `json:"taxaAdmPct,omitempty"`
	FundoReservaPct *float64  `json:"fundoReservaPct,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ContractResponse is the contract record.
type ContractResponse struct {
	ID             uuid.UUID `json:"id"`
	CotaID         uuid.UUID `json:"cotaId"`
	NumeroContrato *string   `json:"numeroContrato,omitempty"`
	Documento      *string   `json:"documento,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CreateContractResponse bundles the created pair.
type CreateContractResponse struct {
	Cota     QuotaResponse    `json:"cota"`
	Contrato ContractResponse `json:"contrato"`
}

// StatusResultResponse reports a transition: primary outcome plus secondary
// funnel-coupling warnings.
type StatusResultResponse struct {
	OK             bool       `json:"ok"`
	ContratoID     uuid.UUID  `json:"contratoId"`
	StatusAnterior string     `json:"statusAnterior"`
	StatusNovo     string     `json:"statusNovo"`
	Skipped        bool       `json:"skipped,omitempty"`
	LeadAfetado    *uuid.UUID `json:"leadAfetado"`
	LeadMovidoPara *string    `json:"leadMovidoPara"`
	Warnings       []string   `json:"warnings,omitempty"`
}

// ── Mappers ───────────────────────────────────────────────────────────────────

func ToQuotaResponse(q repository.Quota) QuotaResponse {
	return QuotaResponse{
		ID:              q.ID,
		LeadID:          q.LeadID,
		Administradora:  q.Administradora,
		Produto:         q.Produto,
		ValorCarta:      q.ValorCarta,
		PrazoMeses:      q.PrazoMeses,
		TaxaAdmPct:      q.TaxaAdmPct,
		FundoReservaPct: q.FundoReservaPct,
		CreatedAt:       q.CreatedAt,
	}
}

func ToContractResponse(c repository.Contract) ContractResponse {
	return ContractResponse{
		ID:             c.ID,
		CotaID:         c.CotaID,
		NumeroContrato: c.NumeroContrato,
		Documento:      c.Documento,
		Status:         string(c.Status),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func ToStatusResultResponse(r service.StatusResult) StatusResultResponse {
	out := StatusResultResponse{
		OK:             true,
		ContratoID:     r.ContractID,
		StatusAnterior: string(r.StatusAnterior),
		StatusNovo:     string(r.StatusNovo),
		Skipped:        r.Skipped,
		LeadAfetado:    r.LeadAfetado,
		Warnings:       r.Warnings,
	}
	if r.LeadMovidoPara != nil {
		stage := string(*r.LeadMovidoPara)
		out.LeadMovidoPara = &stage
	}
	return out
}

func ToContractResponses(contracts []repository.Contract) []ContractResponse {
	out := make([]ContractResponse, 0, len(contracts))
	for _, c := range contracts {
		out = append(out, ToContractResponse(c))
	}
	return out
}
