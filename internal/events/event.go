// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"contemplahub_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Proposal Domain Events
// =============================================================================

// ProposalAccepted is published when a prospect accepts a proposal through
// its public link.
type ProposalAccepted struct {
	BaseEvent
	ProposalID     uuid.UUID `json:"proposalId"`
	OrganizationID uuid.UUID `json:"organizationId"`
	LeadID         uuid.UUID `json:"leadId"`
	PublicHash     string    `json:"publicHash"`
	Titulo         *string   `json:"titulo,omitempty"`
	ClienteNome    *string   `json:"clienteNome,omitempty"`
	ClienteEmail   *string   `json:"clienteEmail,omitempty"`
}

func (e ProposalAccepted) EventName() string { return "proposals.proposal.accepted" }

// =============================================================================
// Marketing Domain Events
// =============================================================================

// GuideLeadCaptured is published when a marketing guide landing form
// captures a lead with consent.
type GuideLeadCaptured struct {
	BaseEvent
	OrganizationID uuid.UUID  `json:"organizationId"`
	LeadID         uuid.UUID  `json:"leadId"`
	LandingID      *uuid.UUID `json:"landingId,omitempty"`
	GuideSlug      string     `json:"guideSlug"`
	Nome           string     `json:"nome"`
	Email          *string    `json:"email,omitempty"`
	Telefone       *string    `json:"telefone,omitempty"`
}

func (e GuideLeadCaptured) EventName() string { return "marketing.guide.lead_captured" }

// =============================================================================
// Contract Domain Events
// =============================================================================

// ContractStatusChanged is published after a contract transition is applied.
type ContractStatusChanged struct {
	BaseEvent
	ContractID     uuid.UUID `json:"contractId"`
	OrganizationID uuid.UUID `json:"organizationId"`
	StatusAnterior string    `json:"statusAnterior"`
	StatusNovo     string    `json:"statusNovo"`
}

func (e ContractStatusChanged) EventName() string { return "contracts.contract.status_changed" }
