package transport

import (
	"contemplahub_backend/internal/registrations/repository"
	"contemplahub_backend/internal/registrations/service"

	"github.com/google/uuid"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// CreateRegistrationRequest creates a public registration link for a lead.
type CreateRegistrationRequest struct {
	LeadID      uuid.UUID  `json:"leadId" validate:"required"`
	PropostaID  *uuid.UUID `json:"propostaId"`
	TipoCliente string     `json:"tipoCliente" validate:"omitempty,oneof=pf"`
}

// PersonDataRequest is the PF form the client fills on the public page.
type PersonDataRequest struct {
	NomeCompleto    string   `json:"nomeCompleto" validate:"required,max=255"`
	CPF             string   `json:"cpf" validate:"required,max=14"`
	DataNascimento  *string  `json:"dataNascimento" validate:"omitempty,max=10"`
	EstadoCivil     *string  `json:"estadoCivil" validate:"omitempty,max=50"`
	Email           string   `json:"email" validate:"required,email,max=255"`
	TelefoneCelular string   `json:"telefoneCelular" validate:"required,max=30"`
	RendaMensal     *float64 `json:"rendaMensal" validate:"omitempty,min=0"`
	CEP             *string  `json:"cep" validate:"omitempty,max=9"`
	Endereco        *string  `json:"endereco" validate:"omitempty,max=255"`
	Bairro          *string  `json:"bairro" validate:"omitempty,max=100"`
	Cidade          *string  `json:"cidade" validate:"omitempty,max=100"`
	UF              *string  `json:"uf" validate:"omitempty,len=2"`
	Observacoes     *string  `json:"observacoes" validate:"omitempty,max=2000"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// RegistrationResponse is the subset of a registration the front needs.
type RegistrationResponse struct {
	ID          uuid.UUID  `json:"id"`
	OrgID       uuid.UUID  `json:"orgId"`
	LeadID      uuid.UUID  `json:"leadId"`
	PropostaID  *uuid.UUID `json:"propostaId,omitempty"`
	TipoCliente string     `json:"tipoCliente"`
	Status      string     `json:"status"`
	TokenPub    string     `json:"tokenPublico"`
}

// ── Mappers ───────────────────────────────────────────────────────────────────

func (r PersonDataRequest) ToInput() service.PersonDataInput {
	return service.PersonDataInput(r)
}

func ToRegistrationResponse(reg repository.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:          reg.ID,
		OrgID:       reg.OrgID,
		LeadID:      reg.LeadID,
		PropostaID:  reg.PropostaID,
		TipoCliente: reg.TipoCliente,
		Status:      reg.Status,
		TokenPub:    reg.TokenPub,
	}
}
