package service

import (
	"context"
	"testing"
	"time"

	"contemplahub_backend/internal/kanban/repository"
	"contemplahub_backend/internal/leads/domain"
	"contemplahub_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	leads       []repository.LeadRow
	interests   []repository.InterestRow
	diagnostics []repository.DiagnosticRow
	metrics     []repository.MetricsRow

	gotStages []domain.Stage
}

func (f *fakeStore) LeadsByStages(_ context.Context, _ uuid.UUID, stages []domain.Stage) ([]repository.LeadRow, error) {
	f.gotStages = stages
	return f.leads, nil
}

func (f *fakeStore) OpenInterestsByLeads(_ context.Context, _ uuid.UUID, _ []uuid.UUID) ([]repository.InterestRow, error) {
	return f.interests, nil
}

func (f *fakeStore) DiagnosticsByLeads(_ context.Context, _ uuid.UUID, _ []uuid.UUID) ([]repository.DiagnosticRow, error) {
	return f.diagnostics, nil
}

func (f *fakeStore) Metrics(_ context.Context, _ uuid.UUID) ([]repository.MetricsRow, error) {
	return f.metrics, nil
}

func newTestService(store Store) *Service {
	return New(store, logger.New("development"))
}

func stageNames(stages []domain.Stage) []string {
	out := make([]string, 0, len(stages))
	for _, s := range stages {
		out = append(out, string(s))
	}
	return out
}

func TestStageFilterMatrix(t *testing.T) {
	tests := []struct {
		name       string
		showActive bool
		showLost   bool
		want       []string
	}{
		{"default working stages", false, false, []string{"novo", "diagnostico", "proposta", "negociacao", "contrato"}},
		{"active only", true, false, []string{"ativo"}},
		{"lost only", false, true, []string{"perdido"}},
		{"both terminal", true, true, []string{"ativo", "perdido"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			svc := newTestService(store)

			if _, err := svc.BuildSnapshot(context.Background(), uuid.New(), tt.showActive, tt.showLost); err != nil {
				t.Fatalf("BuildSnapshot: %v", err)
			}

			got := stageNames(store.gotStages)
			if len(got) != len(tt.want) {
				t.Fatalf("stages = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("stages[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuildSnapshotEmptyBoardHasAllColumns(t *testing.T) {
	svc := newTestService(&fakeStore{})

	snap, err := svc.BuildSnapshot(context.Background(), uuid.New(), false, false)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}

	if len(snap.Columns) != 7 {
		t.Fatalf("columns = %d, want 7", len(snap.Columns))
	}
	for _, stage := range []string{"novo", "diagnostico", "proposta", "negociacao", "contrato", "ativo", "perdido"} {
		cards, ok := snap.Columns[stage]
		if !ok {
			t.Errorf("missing column %q", stage)
			continue
		}
		if len(cards) != 0 {
			t.Errorf("column %q not empty", stage)
		}
	}
}

func TestBuildSnapshotGroupsAndEnriches(t *testing.T) {
	leadA := uuid.New()
	leadB := uuid.New()
	produto := "imobiliario"
	valorOld := "100000"
	valorNew := "400000"
	readiness := 80

	store := &fakeStore{
		leads: []repository.LeadRow{
			{ID: leadA, Nome: "Ana", Etapa: domain.StageProposta, CreatedAt: time.Now()},
			{ID: leadB, Nome: "", Etapa: domain.StageNovo, CreatedAt: time.Now()},
		},
		// Newest first; the service keeps the first row per lead.
		interests: []repository.InterestRow{
			{LeadID: leadA, Produto: &produto, ValorTotal: &valorNew},
			{LeadID: leadA, Produto: &produto, ValorTotal: &valorOld},
		},
		diagnostics: []repository.DiagnosticRow{
			{LeadID: leadA, ReadinessScore: &readiness},
		},
	}
	svc := newTestService(store)

	snap, err := svc.BuildSnapshot(context.Background(), uuid.New(), false, false)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}

	proposta := snap.Columns["novo"]
	if len(proposta) != 1 {
		t.Fatalf("novo column = %d cards, want 1", len(proposta))
	}
	if proposta[0].Nome != "Sem nome" {
		t.Errorf("empty name fallback = %q, want \"Sem nome\"", proposta[0].Nome)
	}
	if proposta[0].Interest != nil {
		t.Errorf("lead without interest got %+v", proposta[0].Interest)
	}
	if proposta[0].InterestInsight != nil {
		t.Errorf("lead without interest got insight %+v", proposta[0].InterestInsight)
	}

	cards := snap.Columns["proposta"]
	if len(cards) != 1 {
		t.Fatalf("proposta column = %d cards, want 1", len(cards))
	}
	card := cards[0]
	if card.Interest == nil || card.Interest.ValorTotal == nil || *card.Interest.ValorTotal != valorNew {
		t.Errorf("most recent open interest not kept: %+v", card.Interest)
	}
	if card.ReadinessScore == nil || *card.ReadinessScore != readiness {
		t.Errorf("readiness not carried onto card: %+v", card.ReadinessScore)
	}
	if card.InterestInsight == nil {
		t.Fatal("expected insight on enriched card")
	}
	if card.InterestInsight.Score == 0 {
		t.Errorf("insight score = 0, want > 0")
	}
}

func TestBuildSnapshotDropsUnknownStage(t *testing.T) {
	store := &fakeStore{
		leads: []repository.LeadRow{
			{ID: uuid.New(), Nome: "Zé", Etapa: domain.Stage("arquivado"), CreatedAt: time.Now()},
		},
	}
	svc := newTestService(store)

	snap, err := svc.BuildSnapshot(context.Background(), uuid.New(), false, false)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}

	total := 0
	for _, cards := range snap.Columns {
		total += len(cards)
	}
	if total != 0 {
		t.Errorf("unknown stage leaked onto board, %d cards", total)
	}
}

func TestMetricsKeyedByStage(t *testing.T) {
	avg := 3.5
	ready := 62.0
	store := &fakeStore{
		metrics: []repository.MetricsRow{
			{Etapa: domain.StageNovo, LeadCount: 4, AvgDays: &avg},
			{Etapa: domain.StageProposta, LeadCount: 2, ReadinessAvg: &ready},
		},
	}
	svc := newTestService(store)

	got, err := svc.Metrics(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}

	if got.LeadCount["novo"] != 4 || got.LeadCount["proposta"] != 2 {
		t.Errorf("leadCount = %v", got.LeadCount)
	}
	if got.AvgDays["novo"] != avg {
		t.Errorf("avgDays = %v", got.AvgDays)
	}
	if got.ReadinessAvg["proposta"] != ready {
		t.Errorf("readinessAvg = %v", got.ReadinessAvg)
	}
	if _, ok := got.AvgDays["proposta"]; ok {
		t.Error("nil aggregate should not appear in map")
	}
}
