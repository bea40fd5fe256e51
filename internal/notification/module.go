// Package notification provides event handlers for sending notifications in
// response to domain events. Domain modules publish events and never talk to
// email providers directly; this module inverts that dependency.
package notification

import (
	"context"
	"errors"
	"strings"

	"contemplahub_backend/internal/email"
	"contemplahub_backend/internal/events"
	"contemplahub_backend/platform/config"
	"contemplahub_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Module handles all notification-related event subscriptions.
type Module struct {
	pool   *pgxpool.Pool
	sender email.Sender
	cfg    config.NotificationConfig
	log    *logger.Logger
}

// New creates a new notification module.
func New(pool *pgxpool.Pool, sender email.Sender, cfg config.NotificationConfig, log *logger.Logger) *Module {
	return &Module{pool: pool, sender: sender, cfg: cfg, log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "notification" }

// RegisterHandlers subscribes to all relevant domain events on the event bus.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.ProposalAccepted{}.EventName(), m)
	bus.Subscribe(events.GuideLeadCaptured{}.EventName(), m)
	bus.Subscribe(events.ContractStatusChanged{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method. Delivery failures
// are logged and swallowed: notifications never fail the originating request.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.ProposalAccepted:
		m.handleProposalAccepted(ctx, e)
	case events.GuideLeadCaptured:
		m.handleGuideLeadCaptured(ctx, e)
	case events.ContractStatusChanged:
		m.handleContractStatusChanged(ctx, e)
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
	}
	return nil
}

func (m *Module) handleProposalAccepted(ctx context.Context, e events.ProposalAccepted) {
	toEmail := m.resolveLeadOwnerEmail(ctx, e.LeadID, e.OrganizationID)
	if toEmail == "" {
		m.log.Warn("no recipient for proposal accepted notification",
			"proposalId", e.ProposalID, "organizationId", e.OrganizationID)
		return
	}

	titulo := "Proposta de Consórcio"
	if e.Titulo != nil && *e.Titulo != "" {
		titulo = *e.Titulo
	}
	clienteNome := "Cliente"
	if e.ClienteNome != nil && *e.ClienteNome != "" {
		clienteNome = *e.ClienteNome
	}

	proposalURL := strings.TrimRight(m.cfg.GetAppBaseURL(), "/") + "/propostas/" + e.PublicHash

	if err := m.sender.SendProposalAcceptedEmail(ctx, toEmail, clienteNome, titulo, proposalURL); err != nil {
		m.log.Error("failed to send proposal accepted email",
			"proposalId", e.ProposalID,
			"email", toEmail,
			"error", err,
		)
		return
	}
	m.log.Info("proposal accepted email sent", "proposalId", e.ProposalID, "email", toEmail)
}

func (m *Module) handleGuideLeadCaptured(ctx context.Context, e events.GuideLeadCaptured) {
	toEmail := m.resolveLeadOwnerEmail(ctx, e.LeadID, e.OrganizationID)
	if toEmail == "" {
		m.log.Warn("no recipient for guide lead notification",
			"leadId", e.LeadID, "organizationId", e.OrganizationID)
		return
	}

	telefone := ""
	if e.Telefone != nil {
		telefone = *e.Telefone
	}

	if err := m.sender.SendGuideLeadCapturedEmail(ctx, toEmail, e.Nome, telefone, e.GuideSlug); err != nil {
		m.log.Error("failed to send guide lead email",
			"leadId", e.LeadID,
			"email", toEmail,
			"error", err,
		)
		return
	}
	m.log.Info("guide lead email sent", "leadId", e.LeadID, "email", toEmail)
}

// handleContractStatusChanged only records the transition for now. Contract
// emails go out once the funnel team settles on wording.
func (m *Module) handleContractStatusChanged(ctx context.Context, e events.ContractStatusChanged) {
	m.log.Info("contract status changed",
		"contractId", e.ContractID,
		"organizationId", e.OrganizationID,
		"from", e.StatusAnterior,
		"to", e.StatusNovo,
	)
}

// resolveLeadOwnerEmail returns the address of the consultant who owns the
// lead, falling back to the configured org-wide address.
func (m *Module) resolveLeadOwnerEmail(ctx context.Context, leadID, orgID uuid.UUID) string {
	fallback := strings.TrimSpace(m.cfg.GetNotifyFallbackAddress())
	if m.pool == nil || leadID == uuid.Nil {
		return fallback
	}

	var ownerEmail *string
	err := m.pool.QueryRow(ctx,
		`SELECT u.email
		   FROM leads l
		   JOIN users u ON u.id = l.owner_id
		  WHERE l.id = $1 AND l.org_id = $2`,
		leadID, orgID,
	).Scan(&ownerEmail)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			m.log.Warn("failed to resolve lead owner email", "leadId", leadID, "error", err)
		}
		return fallback
	}
	if ownerEmail == nil || strings.TrimSpace(*ownerEmail) == "" {
		return fallback
	}
	return strings.TrimSpace(*ownerEmail)
}
