// Package email provides transactional email delivery for notification
// handlers.
package email

import (
	"context"

	"contemplahub_backend/platform/config"
	"contemplahub_backend/platform/logger"
)

// Attachment represents a file attachment for an email.
type Attachment struct {
	Content  []byte
	FileName string
	MIMEType string
}

type Sender interface {
	SendProposalAcceptedEmail(ctx context.Context, toEmail, clienteNome, proposalTitle, proposalURL string) error
	SendGuideLeadCapturedEmail(ctx context.Context, toEmail, leadNome, leadTelefone, guideTitle string) error
	SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error
}

// NewSender picks the delivery implementation from config. Without SMTP
// settings the disabled sender keeps local environments working.
func NewSender(cfg config.EmailConfig, log *logger.Logger) Sender {
	if !cfg.GetEmailEnabled() {
		return NewDisabledSender(log)
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}

// DisabledSender is used when SMTP is not configured. It logs each message
// instead of delivering it, so local environments keep working.
type DisabledSender struct {
	log *logger.Logger
}

func NewDisabledSender(log *logger.Logger) *DisabledSender {
	return &DisabledSender{log: log}
}

func (d *DisabledSender) logSkipped(kind, toEmail string) {
	d.log.Warn("email delivery disabled, message not sent", "kind", kind, "to", toEmail)
}

func (d *DisabledSender) SendProposalAcceptedEmail(_ context.Context, toEmail, _, _, _ string) error {
	d.logSkipped("proposal_accepted", toEmail)
	return nil
}

func (d *DisabledSender) SendGuideLeadCapturedEmail(_ context.Context, toEmail, _, _, _ string) error {
	d.logSkipped("guide_lead_captured", toEmail)
	return nil
}

func (d *DisabledSender) SendCustomEmail(_ context.Context, toEmail, _, _ string) error {
	d.logSkipped("custom", toEmail)
	return nil
}
