package domain

import (
	"testing"
	"time"
)

func TestPlanStageMoveStampsFirstContactOnLeavingNovo(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	patch, skipped := PlanStageMove(StageNovo, nil, StageDiagnostico, now)
	if skipped {
		t.Fatal("expected move, got skipped")
	}
	if patch.Stage != StageDiagnostico {
		t.Fatalf("expected stage diagnostico, got %s", patch.Stage)
	}
	if patch.FirstContactAt == nil || !patch.FirstContactAt.Equal(now) {
		t.Fatalf("expected first_contact_at stamped with %v, got %v", now, patch.FirstContactAt)
	}
}

func TestPlanStageMoveSameStageIsNoOp(t *testing.T) {
	patch, skipped := PlanStageMove(StageDiagnostico, nil, StageDiagnostico, time.Now())
	if !skipped {
		t.Fatal("expected skipped for same-stage move")
	}
	if patch.FirstContactAt != nil {
		t.Fatal("no-op must not stamp first_contact_at")
	}
}

func TestPlanStageMoveDoesNotRestampFirstContact(t *testing.T) {
	already := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	patch, skipped := PlanStageMove(StageNovo, &already, StageProposta, time.Now())
	if skipped {
		t.Fatal("expected move, got skipped")
	}
	if patch.FirstContactAt != nil {
		t.Fatal("first_contact_at is set at most once")
	}
}

func TestPlanStageMoveFromLaterStageLeavesFirstContactAlone(t *testing.T) {
	patch, skipped := PlanStageMove(StageProposta, nil, StageNegociacao, time.Now())
	if skipped {
		t.Fatal("expected move, got skipped")
	}
	if patch.FirstContactAt != nil {
		t.Fatal("only leaving novo stamps first_contact_at")
	}
}

func TestKnownStages(t *testing.T) {
	for _, s := range AllStages() {
		if !Known(s) {
			t.Fatalf("stage %s should be known", s)
		}
	}
	if Known(Stage("arquivado")) {
		t.Fatal("unexpected stage must not be known")
	}
	if len(AllStages()) != 7 {
		t.Fatalf("expected 7 stages, got %d", len(AllStages()))
	}
}
