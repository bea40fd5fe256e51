package domain

import (
	"testing"

	leads "contemplahub_backend/internal/leads/domain"
)

// allowed lists every permitted (from, to) pair; everything else must be
// rejected.
var allowed = map[Status]map[Status]bool{
	StatusPendenteAssinatura: {
		StatusPendentePagamento: true,
		StatusCancelado:         true,
	},
	StatusPendentePagamento: {
		StatusAlocado:            true,
		StatusCancelado:          true,
		StatusPendenteAssinatura: true,
	},
	StatusAlocado: {
		StatusContemplado:        true,
		StatusCancelado:          true,
		StatusPendentePagamento:  true,
		StatusPendenteAssinatura: true,
	},
	StatusContemplado: {
		StatusCancelado:         true,
		StatusAlocado:           true,
		StatusPendentePagamento: true,
	},
	StatusCancelado: {
		StatusPendentePagamento:  true,
		StatusPendenteAssinatura: true,
		StatusAlocado:            true,
	},
}

func TestCanTransitionExhaustiveMatrix(t *testing.T) {
	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			want := allowed[from][to]
			if from == to {
				want = false
			}
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestCanTransitionRequiresIntermediateHops(t *testing.T) {
	// contemplado is only reachable from alocado.
	if CanTransition(StatusPendentePagamento, StatusContemplado) {
		t.Error("pendente_pagamento must not reach contemplado in one hop")
	}
	if CanTransition(StatusPendenteAssinatura, StatusAlocado) {
		t.Error("pendente_assinatura must not reach alocado in one hop")
	}
	if CanTransition(StatusCancelado, StatusContemplado) {
		t.Error("cancelado must not reach contemplado")
	}
}

func TestCoupledStage(t *testing.T) {
	if stage, ok := CoupledStage(StatusAlocado); !ok || stage != leads.StageAtivo {
		t.Errorf("alocado coupling = (%s, %v), want (ativo, true)", stage, ok)
	}
	if stage, ok := CoupledStage(StatusCancelado); !ok || stage != leads.StagePerdido {
		t.Errorf("cancelado coupling = (%s, %v), want (perdido, true)", stage, ok)
	}
	for _, status := range []Status{StatusPendenteAssinatura, StatusPendentePagamento, StatusContemplado} {
		if _, ok := CoupledStage(status); ok {
			t.Errorf("%s must not drive the funnel", status)
		}
	}
}

func TestKnown(t *testing.T) {
	for _, s := range AllStatuses() {
		if !s.Known() {
			t.Errorf("%s should be known", s)
		}
	}
	if Status("assinado").Known() {
		t.Error("unexpected status accepted")
	}
}
