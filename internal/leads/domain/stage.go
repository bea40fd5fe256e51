// Package domain provides core business rules for the leads bounded context.
package domain

import "time"

// Stage is a lead's position in the sales funnel.
type Stage string

const (
	StageNovo        Stage = "novo"
	StageDiagnostico Stage = "diagnostico"
	StageProposta    Stage = "proposta"
	StageNegociacao  Stage = "negociacao"
	StageContrato    Stage = "contrato"
	StageAtivo       Stage = "ativo"
	StagePerdido     Stage = "perdido"
)

// AllStages lists every funnel stage in board order.
func AllStages() []Stage {
	return []Stage{
		StageNovo,
		StageDiagnostico,
		StageProposta,
		StageNegociacao,
		StageContrato,
		StageAtivo,
		StagePerdido,
	}
}

var knownStages = map[Stage]bool{
	StageNovo:        true,
	StageDiagnostico: true,
	StageProposta:    true,
	StageNegociacao:  true,
	StageContrato:    true,
	StageAtivo:       true,
	StagePerdido:     true,
}

// Known reports whether the stage is one of the seven funnel stages.
func Known(s Stage) bool {
	return knownStages[s]
}

// StagePatch captures the column updates a stage move applies atomically.
type StagePatch struct {
	Stage          Stage
	FirstContactAt *time.Time
}

// PlanStageMove returns the patch for moving a lead from its current stage to
// target, and whether the move is a no-op. The first time a lead leaves
// "novo", first_contact_at is stamped together with the stage update; it is
// set at most once.
func PlanStageMove(current Stage, firstContactAt *time.Time, target Stage, now time.Time) (StagePatch, bool) {
	if target == current {
		return StagePatch{}, true
	}

	patch := StagePatch{Stage: target}
	if current == StageNovo && firstContactAt == nil && target != StageNovo {
		stamp := now
		patch.FirstContactAt = &stamp
	}
	return patch, false
}
