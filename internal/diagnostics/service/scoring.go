package service

import "math"

// Input holds the diagnostic questionnaire answers. All financial fields are
// optional; the scoring engine only uses the blocks that are fully answered.
type Input struct {
	Objetivo               *string
	PrazoMetaMeses         *int
	PreferenciaProduto     *string
	RegiaoPreferencia      *string
	RendaMensal            *float64
	ReservaInicial         *float64
	ComprometimentoMaxPct  *float64
	RendaProvada           bool
	ValorCartaAlvo         *float64
	PrazoAlvoMeses         *int
	EstrategiaLance        *string
	LanceBasePct           *float64
	LanceMaxPct            *float64
	JanelaPreferidaSemanas *int
	ConsentScope           *string
	Extras                 map[string]interface{}
}

// Scores is the computed output of the scoring engine.
type Scores struct {
	ScoreRisco            int
	ReadinessScore        int
	ProbConversao         float64
	ProbContemplacaoShort float64
	ProbContemplacaoMed   float64
	ProbContemplacaoLong  float64
}

// ComputeScores runs the heuristic scoring engine over the questionnaire.
//
// Readiness starts at 40 and risk at 60. The installment-capacity block only
// applies when income, commitment percentage, target letter value and target
// term are all present; the reserve block when reserve and a nonzero letter
// value are present. Both scores clamp to [0, 100].
func ComputeScores(in Input) Scores {
	readiness := 40
	risco := 60

	if in.RendaMensal != nil && in.ComprometimentoMaxPct != nil &&
		in.ValorCartaAlvo != nil && in.PrazoAlvoMeses != nil && *in.PrazoAlvoMeses != 0 {
		maxParcela := *in.RendaMensal * (*in.ComprometimentoMaxPct / 100.0)
		meses := *in.PrazoAlvoMeses
		if meses < 1 {
			meses = 1
		}
		parcelaTeorica := *in.ValorCartaAlvo / float64(meses)

		var ratio float64
		if parcelaTeorica > 0 {
			ratio = maxParcela / parcelaTeorica
		}

		switch {
		case ratio >= 1.5:
			readiness += 30
			risco -= 20
		case ratio >= 1.0:
			readiness += 20
			risco -= 10
		case ratio >= 0.7:
			readiness += 10
			risco -= 5
		default:
			risco += 5
		}
	}

	if in.ReservaInicial != nil && in.ValorCartaAlvo != nil && *in.ValorCartaAlvo != 0 {
		carta := math.Max(*in.ValorCartaAlvo, 1)
		pctReserva := *in.ReservaInicial / carta
		switch {
		case pctReserva >= 0.2:
			readiness += 15
			risco -= 10
		case pctReserva >= 0.1:
			readiness += 8
			risco -= 5
		}
	}

	if in.RendaProvada {
		readiness += 5
		risco -= 5
	}

	readiness = clamp(readiness)
	risco = clamp(risco)

	base := float64(readiness) / 100

	return Scores{
		ScoreRisco:            risco,
		ReadinessScore:        readiness,
		ProbConversao:         round3(base * 0.85),
		ProbContemplacaoShort: round3(base * 0.4),
		ProbContemplacaoMed:   round3(base * 0.35),
		ProbContemplacaoLong:  round3(base * 0.25),
	}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
