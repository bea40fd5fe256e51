package notification

import (
	"context"
	"testing"

	"contemplahub_backend/internal/events"
	"contemplahub_backend/platform/logger"

	"github.com/google/uuid"
)

type sentEmail struct {
	kind    string
	to      string
	subject string
}

type recordingSender struct {
	sent []sentEmail
}

func (r *recordingSender) SendProposalAcceptedEmail(ctx context.Context, toEmail, clienteNome, proposalTitle, proposalURL string) error {
	r.sent = append(r.sent, sentEmail{kind: "proposal_accepted", to: toEmail, subject: proposalTitle})
	return nil
}

func (r *recordingSender) SendGuideLeadCapturedEmail(ctx context.Context, toEmail, leadNome, leadTelefone, guideTitle string) error {
	r.sent = append(r.sent, sentEmail{kind: "guide_lead_captured", to: toEmail, subject: guideTitle})
	return nil
}

func (r *recordingSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	r.sent = append(r.sent, sentEmail{kind: "custom", to: toEmail, subject: subject})
	return nil
}

type testConfig struct {
	appBaseURL string
	fallback   string
}

func (c testConfig) GetAppBaseURL() string            { return c.appBaseURL }
func (c testConfig) GetNotifyFallbackAddress() string { return c.fallback }

func newTestModule(sender *recordingSender, fallback string) *Module {
	cfg := testConfig{appBaseURL: "https://app.example.com", fallback: fallback}
	return New(nil, sender, cfg, logger.New("test"))
}

func TestProposalAcceptedFallsBackToConfiguredAddress(t *testing.T) {
	sender := &recordingSender{}
	m := newTestModule(sender, "vendas@example.com")

	titulo := "Proposta Imobiliária"
	err := m.Handle(context.Background(), events.ProposalAccepted{
		BaseEvent:      events.NewBaseEvent(),
		ProposalID:     uuid.New(),
		OrganizationID: uuid.New(),
		LeadID:         uuid.New(),
		PublicHash:     "abc1234",
		Titulo:         &titulo,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.sent))
	}
	if sender.sent[0].to != "vendas@example.com" {
		t.Errorf("sent to %q, want fallback address", sender.sent[0].to)
	}
	if sender.sent[0].kind != "proposal_accepted" {
		t.Errorf("sent kind %q", sender.sent[0].kind)
	}
}

func TestProposalAcceptedWithoutRecipientIsSkipped(t *testing.T) {
	sender := &recordingSender{}
	m := newTestModule(sender, "")

	err := m.Handle(context.Background(), events.ProposalAccepted{
		BaseEvent:  events.NewBaseEvent(),
		ProposalID: uuid.New(),
		LeadID:     uuid.New(),
		PublicHash: "abc1234",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no email, got %d", len(sender.sent))
	}
}

func TestGuideLeadCapturedSendsOwnerEmail(t *testing.T) {
	sender := &recordingSender{}
	m := newTestModule(sender, "vendas@example.com")

	telefone := "+5511988887777"
	err := m.Handle(context.Background(), events.GuideLeadCaptured{
		BaseEvent:      events.NewBaseEvent(),
		OrganizationID: uuid.New(),
		LeadID:         uuid.New(),
		GuideSlug:      "guia-estrategico-consorcio",
		Nome:           "Maria Silva",
		Telefone:       &telefone,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.sent))
	}
	if sender.sent[0].kind != "guide_lead_captured" {
		t.Errorf("sent kind %q", sender.sent[0].kind)
	}
}

func TestContractStatusChangedSendsNothing(t *testing.T) {
	sender := &recordingSender{}
	m := newTestModule(sender, "vendas@example.com")

	err := m.Handle(context.Background(), events.ContractStatusChanged{
		BaseEvent:      events.NewBaseEvent(),
		ContractID:     uuid.New(),
		OrganizationID: uuid.New(),
		StatusAnterior: "em_andamento",
		StatusNovo:     "contemplado",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no email, got %d", len(sender.sent))
	}
}
