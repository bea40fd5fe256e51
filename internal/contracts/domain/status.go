// Package domain holds the contract status state machine and its coupling
// to the lead funnel.
package domain

import leads "contemplahub_backend/internal/leads/domain"

// Status is a contract lifecycle state.
type Status string

const (
	StatusPendenteAssinatura Status = "pendente_assinatura"
	StatusPendentePagamento  Status = "pendente_pagamento"
	StatusAlocado            Status = "alocado"
	StatusContemplado        Status = "contemplado"
	StatusCancelado          Status = "cancelado"
)

// AllStatuses returns the lifecycle states in order.
func AllStatuses() []Status {
	return []Status{
		StatusPendenteAssinatura,
		StatusPendentePagamento,
		StatusAlocado,
		StatusContemplado,
		StatusCancelado,
	}
}

// Known reports whether s is one of the declared statuses.
func (s Status) Known() bool {
	switch s {
	case StatusPendenteAssinatura, StatusPendentePagamento, StatusAlocado,
		StatusContemplado, StatusCancelado:
		return true
	}
	return false
}

// forward transitions move the contract along its lifecycle.
var forward = map[Status][]Status{
	StatusPendenteAssinatura: {StatusPendentePagamento, StatusCancelado},
	StatusPendentePagamento:  {StatusAlocado, StatusCancelado},
	StatusAlocado:            {StatusContemplado, StatusCancelado},
	StatusContemplado:        {StatusCancelado},
}

// corrections are the permitted backward moves for fixing operator mistakes.
var corrections = map[Status][]Status{
	StatusPendentePagamento: {StatusPendenteAssinatura},
	StatusAlocado:           {StatusPendentePagamento, StatusPendenteAssinatura},
	StatusContemplado:       {StatusAlocado, StatusPendentePagamento},
	StatusCancelado:         {StatusPendentePagamento, StatusPendenteAssinatura, StatusAlocado},
}

// CanTransition reports whether from→to is a permitted forward or correction
// move. Same-state is not a transition.
func CanTransition(from, to Status) bool {
	if from == to {
		return false
	}
	for _, s := range forward[from] {
		if s == to {
			return true
		}
	}
	for _, s := range corrections[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CoupledStage returns the funnel stage a status drives the linked lead to:
// alocado activates the lead, cancelado loses it. Other statuses have no
// funnel side effect.
func CoupledStage(status Status) (leads.Stage, bool) {
	switch status {
	case StatusAlocado:
		return leads.StageAtivo, true
	case StatusCancelado:
		return leads.StagePerdido, true
	}
	return "", false
}
