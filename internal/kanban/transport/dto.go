package transport

import (
	"time"

	"contemplahub_backend/internal/kanban/insight"

	"github.com/google/uuid"
)

// InterestSummary is the interest block shown on a card.
type InterestSummary struct {
	Produto        *string `json:"produto,omitempty"`
	ValorTotal     *string `json:"valorTotal,omitempty"`
	PrazoMeses     *int    `json:"prazoMeses,omitempty"`
	Objetivo       *string `json:"objetivo,omitempty"`
	PerfilDesejado *string `json:"perfilDesejado,omitempty"`
	Observacao     *string `json:"observacao,omitempty"`
}

// LeadCard is one card on the board.
type LeadCard struct {
	ID              uuid.UUID                `json:"id"`
	Nome            string                   `json:"nome"`
	Etapa           string                   `json:"etapa"`
	Telefone        *string                  `json:"telefone,omitempty"`
	Email           *string                  `json:"email,omitempty"`
	Origem          *string                  `json:"origem,omitempty"`
	OwnerID         *uuid.UUID               `json:"ownerId,omitempty"`
	CreatedAt       time.Time                `json:"createdAt"`
	FirstContactAt  *time.Time               `json:"firstContactAt,omitempty"`
	Interest        *InterestSummary         `json:"interest,omitempty"`
	ReadinessScore  *int                     `json:"readinessScore,omitempty"`
	ScoreRisco      *int                     `json:"scoreRisco,omitempty"`
	ProbConversao   *float64                 `json:"probConversao,omitempty"`
	InterestInsight *insight.InterestInsight `json:"interestInsight,omitempty"`
}

// Snapshot is the whole board, always carrying all seven columns.
type Snapshot struct {
	Columns map[string][]LeadCard `json:"columns"`
}

// MetricsResponse holds per-stage aggregate maps keyed by stage name.
type MetricsResponse struct {
	LeadCount           map[string]int     `json:"leadCount,omitempty"`
	AvgDays             map[string]float64 `json:"avgDays,omitempty"`
	DiagCompletionPct   map[string]float64 `json:"diagCompletionPct,omitempty"`
	ReadinessAvg        map[string]float64 `json:"readinessAvg,omitempty"`
	TFirstContactAvgMin map[string]float64 `json:"tFirstContactAvgMin,omitempty"`
}
