// Package insight turns a lead's most recent open interest and diagnostic
// readiness into coaching hints for the kanban card: a qualification score,
// missing fields, a next best action, conversation material and strategy
// ideas for the consultant.
package insight

import (
	"fmt"
	"strconv"
	"strings"
)

// Interest is the interest snapshot the generator reads. All fields optional.
type Interest struct {
	Produto        *string
	ValorTotal     *string
	PrazoMeses     *int
	Objetivo       *string
	PerfilDesejado *string
	Observacao     *string
}

// InterestInsight is the generated coaching block for a kanban card.
type InterestInsight struct {
	Score                 int      `json:"score"`
	MissingFields         []string `json:"missingFields"`
	NextBestAction        string   `json:"nextBestAction"`
	SuggestedQuestions    []string `json:"suggestedQuestions"`
	LikelyObjections      []string `json:"likelyObjections"`
	Priority              string   `json:"priority"`
	StrategyIdeas         []string `json:"strategyIdeas,omitempty"`
	SuggestedTicketSplits []string `json:"suggestedTicketSplits,omitempty"`
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intVal(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

// parseValor extracts a numeric value from the free-form interest value by
// keeping only digits. "R$ 300.000,00" and "300000" both read as 30000000 and
// 300000 respectively; the caller lives with whatever the consultant typed.
func parseValor(valorTotal *string) float64 {
	raw := strVal(valorTotal)
	if raw == "" {
		return 0
	}
	var b strings.Builder
	for _, ch := range raw {
		if ch >= '0' && ch <= '9' {
			b.WriteRune(ch)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

func scoreInterest(i Interest) int {
	s := 0
	if strVal(i.Produto) != "" {
		s += 20
	}
	if intVal(i.PrazoMeses) >= 60 {
		s += 15
	}

	if strVal(i.ValorTotal) != "" {
		v := parseValor(i.ValorTotal)
		if v >= 200_000 {
			s += 25
		}
		if v >= 500_000 {
			s += 10
		}
	}

	if strVal(i.Objetivo) != "" {
		s += 10
	}
	if strVal(i.PerfilDesejado) != "" {
		s += 10
	}
	if strVal(i.Observacao) != "" {
		s += 10
	}

	if s > 100 {
		s = 100
	}
	return s
}

func missingFields(i Interest) []string {
	var miss []string
	if strVal(i.Produto) == "" {
		miss = append(miss, "Produto")
	}
	if intVal(i.PrazoMeses) == 0 {
		miss = append(miss, "Prazo")
	}
	if strVal(i.ValorTotal) == "" {
		miss = append(miss, "Valor da carta")
	}
	if strVal(i.Objetivo) == "" {
		miss = append(miss, "Objetivo")
	}
	if strVal(i.PerfilDesejado) == "" {
		miss = append(miss, "Perfil desejado")
	}
	return miss
}

func nextBestAction(i Interest, readiness *int) string {
	prod := strVal(i.Produto)
	v := parseValor(i.ValorTotal)
	pronto := readiness != nil && *readiness >= 70

	switch prod {
	case "imobiliario":
		if v >= 300_000 && pronto {
			return "Priorize agendar uma reunião de proposta para estruturar carta entre " +
				"180–200 meses, revisar capacidade de parcela e calibrar lances."
		}
		return "Marque uma conversa rápida para alinhar objetivo (moradia, renda, " +
			"segunda moradia) e confirmar valor/prazo antes de apresentar propostas."
	case "auto":
		return "Confirme uso principal (trabalho, família, app) e modelo/ano pretendido. " +
			"Depois, apresente 1–2 simulações com prazos diferentes para mostrar " +
			"equilíbrio entre parcela e tempo de contemplação."
	}

	return "Use a próxima interação para esclarecer produto, objetivo e prazo. " +
		"Com isso alinhado, avance para o diagnóstico completo e simulações."
}

func suggestedQuestions(i Interest) []string {
	base := []string{
		"Hoje qual é a principal prioridade financeira da família?",
		"Quanto tempo você imagina até usar essa carta com conforto?",
		"Qual valor de parcela encaixa no orçamento sem apertar?",
		"Você já teve experiência anterior com consórcio ou financiamento?",
		"Tem alguma preocupação específica com consórcio (prazo, lance, parcelas)?",
	}

	var productQuestion string
	switch strVal(i.Produto) {
	case "imobiliario":
		productQuestion = "O imóvel é para moradia própria, renda (aluguel/Airbnb) ou segunda moradia?"
	case "auto":
		productQuestion = "O carro será mais para trabalho, família ou aplicativo? Já tem modelo em mente?"
	default:
		return base
	}

	// Product question slots in right after the opener.
	out := make([]string, 0, len(base)+1)
	out = append(out, base[0], productQuestion)
	out = append(out, base[1:]...)
	return out
}

func likelyObjections() []string {
	return []string{
		"Valor da parcela em relação ao orçamento mensal.",
		"Prazo percebido como longo demais.",
		"Ansiedade pela contemplação (tempo x lance).",
		"Comparação com financiamento tradicional (juros vs. disciplina do consórcio).",
	}
}

func strategyIdeas(i Interest, readiness *int) []string {
	var ideas []string
	v := parseValor(i.ValorTotal)
	pronto := readiness != nil && *readiness >= 70

	if v <= 0 {
		return []string{
			"Usar próxima conversa para travar faixa de carta (ex.: 200 a 300 mil) " +
				"e só então comparar administradoras / prazos.",
		}
	}

	switch strVal(i.Produto) {
	case "imobiliario":
		if v >= 400_000 {
			ideas = append(ideas,
				"Avaliar se faz sentido dividir em 2 cartas (ex.: 2×250 mil) para "+
					"combinar moradia + renda futura (aluguel/Airbnb) e ter mais flexibilidade na contemplação.")
		}
		if v >= 300_000 && pronto {
			ideas = append(ideas,
				"Simular carta com redutor no prazo máximo (ex.: 200–220m) para "+
					"trazer parcela confortável e manter espaço para um eventual segundo investimento.")
		} else {
			ideas = append(ideas,
				"Começar com uma carta única na faixa informada, comparando cenário com e sem redutor "+
					"para mostrar impacto na parcela e na capacidade de lance.")
		}

		switch strVal(i.Objetivo) {
		case "primeira-casa", "moradia", "moradia-propria":
			ideas = append(ideas,
				"Enfatizar segurança de longo prazo: carta voltada para moradia, "+
					"com foco em não comprometer mais que 25–30% da renda familiar.")
		}
	case "auto":
		if v >= 80_000 {
			ideas = append(ideas,
				"Testar simulação com carta um degrau acima do veículo alvo para "+
					"dar margem a upgrades de modelo/ano sem sufocar o orçamento.")
		} else {
			ideas = append(ideas,
				"Começar com carta alinhada ao modelo alvo e prazo entre 60–84 meses "+
					"para equilibrar parcela e rapidez na contemplação.")
		}
	}

	if len(ideas) == 0 {
		ideas = append(ideas,
			"Usar o interesse atual como ponto de partida e apresentar 2–3 cenários de carta "+
				"(valor e prazo diferentes) para o cliente reagir e ajudar na escolha.")
	}

	return ideas
}

func suggestedTicketSplits(i Interest) []string {
	var splits []string
	v := parseValor(i.ValorTotal)
	if v <= 0 {
		return splits
	}

	prod := strVal(i.Produto)
	if prod == "imobiliario" && v >= 400_000 {
		splits = append(splits, fmt.Sprintf("1× R$ %.0f mil (carta única)", v/1000))
		splits = append(splits, fmt.Sprintf("2× R$ %.0f mil (moradia + renda)", (v/2)/1000))
	} else if prod == "imobiliario" {
		splits = append(splits, fmt.Sprintf("1× R$ %.0f mil (carta principal)", v/1000))
	}

	if prod == "auto" && v >= 80_000 {
		splits = append(splits, "1× carta alvo + 1× menor para upgrade futuro")
	}

	return splits
}

// Build generates the coaching block. Returns nil when there is no interest
// to analyze.
func Build(interest *Interest, readiness *int) *InterestInsight {
	if interest == nil {
		return nil
	}

	score := scoreInterest(*interest)

	priority := "baixa"
	switch {
	case score >= 70 && readiness != nil && *readiness >= 70:
		priority = "alta"
	case score >= 50:
		priority = "media"
	}

	return &InterestInsight{
		Score:                 score,
		MissingFields:         missingFields(*interest),
		NextBestAction:        nextBestAction(*interest, readiness),
		SuggestedQuestions:    suggestedQuestions(*interest),
		LikelyObjections:      likelyObjections(),
		Priority:              priority,
		StrategyIdeas:         strategyIdeas(*interest, readiness),
		SuggestedTicketSplits: suggestedTicketSplits(*interest),
	}
}
