package service

import (
	"math"
	"testing"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestComputeScoresBaseline(t *testing.T) {
	scores := ComputeScores(Input{})

	if scores.ReadinessScore != 40 {
		t.Errorf("readiness = %d, want 40", scores.ReadinessScore)
	}
	if scores.ScoreRisco != 60 {
		t.Errorf("risco = %d, want 60", scores.ScoreRisco)
	}
	if scores.ProbConversao != 0.34 {
		t.Errorf("probConversao = %v, want 0.34", scores.ProbConversao)
	}
}

func TestComputeScoresCapacityTiers(t *testing.T) {
	tests := []struct {
		name          string
		renda         float64
		pct           float64
		carta         float64
		prazo         int
		wantReadiness int
		wantRisco     int
	}{
		// max_parcela = renda*pct/100, parcela teorica = carta/prazo
		{"ratio >= 1.5", 10000, 30, 120000, 60, 70, 40},   // 3000 / 2000 = 1.5
		{"ratio >= 1.0", 10000, 30, 180000, 60, 60, 50},   // 3000 / 3000 = 1.0
		{"ratio >= 0.7", 10000, 30, 240000, 60, 50, 55},   // 3000 / 4000 = 0.75
		{"ratio < 0.7", 10000, 30, 600000, 60, 40, 65},    // 3000 / 10000 = 0.3
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := ComputeScores(Input{
				RendaMensal:           fptr(tt.renda),
				ComprometimentoMaxPct: fptr(tt.pct),
				ValorCartaAlvo:        fptr(tt.carta),
				PrazoAlvoMeses:        iptr(tt.prazo),
			})
			if scores.ReadinessScore != tt.wantReadiness {
				t.Errorf("readiness = %d, want %d", scores.ReadinessScore, tt.wantReadiness)
			}
			if scores.ScoreRisco != tt.wantRisco {
				t.Errorf("risco = %d, want %d", scores.ScoreRisco, tt.wantRisco)
			}
		})
	}
}

func TestComputeScoresCapacitySkippedWhenIncomplete(t *testing.T) {
	scores := ComputeScores(Input{
		RendaMensal:           fptr(10000),
		ComprometimentoMaxPct: fptr(30),
		// no target letter value or term
	})
	if scores.ReadinessScore != 40 || scores.ScoreRisco != 60 {
		t.Errorf("got readiness=%d risco=%d, want baseline 40/60", scores.ReadinessScore, scores.ScoreRisco)
	}
}

func TestComputeScoresReserveTiers(t *testing.T) {
	tests := []struct {
		name          string
		reserva       float64
		carta         float64
		wantReadiness int
		wantRisco     int
	}{
		{"reserve >= 20%", 40000, 200000, 55, 50},
		{"reserve >= 10%", 20000, 200000, 48, 55},
		{"reserve < 10%", 10000, 200000, 40, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := ComputeScores(Input{
				ReservaInicial: fptr(tt.reserva),
				ValorCartaAlvo: fptr(tt.carta),
			})
			if scores.ReadinessScore != tt.wantReadiness {
				t.Errorf("readiness = %d, want %d", scores.ReadinessScore, tt.wantReadiness)
			}
			if scores.ScoreRisco != tt.wantRisco {
				t.Errorf("risco = %d, want %d", scores.ScoreRisco, tt.wantRisco)
			}
		})
	}
}

func TestComputeScoresProvenIncomeBump(t *testing.T) {
	scores := ComputeScores(Input{RendaProvada: true})
	if scores.ReadinessScore != 45 {
		t.Errorf("readiness = %d, want 45", scores.ReadinessScore)
	}
	if scores.ScoreRisco != 55 {
		t.Errorf("risco = %d, want 55", scores.ScoreRisco)
	}
}

func TestComputeScoresClampedAndBounded(t *testing.T) {
	// Best case across every block.
	scores := ComputeScores(Input{
		RendaMensal:           fptr(50000),
		ComprometimentoMaxPct: fptr(100),
		ValorCartaAlvo:        fptr(100000),
		PrazoAlvoMeses:        iptr(120),
		ReservaInicial:        fptr(50000),
		RendaProvada:          true,
	})
	if scores.ReadinessScore != 90 {
		t.Errorf("readiness = %d, want 90", scores.ReadinessScore)
	}
	if scores.ScoreRisco != 25 {
		t.Errorf("risco = %d, want 25", scores.ScoreRisco)
	}
	if scores.ReadinessScore < 0 || scores.ReadinessScore > 100 {
		t.Errorf("readiness %d out of [0,100]", scores.ReadinessScore)
	}
	if scores.ScoreRisco < 0 || scores.ScoreRisco > 100 {
		t.Errorf("risco %d out of [0,100]", scores.ScoreRisco)
	}
}

func TestComputeScoresDerivedProbabilities(t *testing.T) {
	scores := ComputeScores(Input{RendaProvada: true}) // readiness 45
	base := 0.45

	if got, want := scores.ProbConversao, math.Round(base*0.85*1000)/1000; got != want {
		t.Errorf("probConversao = %v, want %v", got, want)
	}
	if got, want := scores.ProbContemplacaoShort, math.Round(base*0.4*1000)/1000; got != want {
		t.Errorf("probShort = %v, want %v", got, want)
	}
	if got, want := scores.ProbContemplacaoMed, math.Round(base*0.35*1000)/1000; got != want {
		t.Errorf("probMed = %v, want %v", got, want)
	}
	if got, want := scores.ProbContemplacaoLong, math.Round(base*0.25*1000)/1000; got != want {
		t.Errorf("probLong = %v, want %v", got, want)
	}
}
