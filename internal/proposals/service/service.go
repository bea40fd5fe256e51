package service

import (
	"context"
	"crypto/rand"
	"errors"
	"strings"

	"contemplahub_backend/internal/events"
	"contemplahub_backend/internal/pdf"
	"contemplahub_backend/internal/proposals/repository"
	"contemplahub_backend/platform/apperr"
	"contemplahub_backend/platform/logger"

	"github.com/google/uuid"
)

const (
	StatusRascunho = "rascunho"
	StatusEnviado  = "enviado"
	StatusAprovada = "aprovada"
	StatusRecusada = "recusada"
	StatusInativa  = "inativa"
)

func knownStatus(s string) bool {
	switch s {
	case StatusRascunho, StatusEnviado, StatusAprovada, StatusRecusada, StatusInativa:
		return true
	}
	return false
}

// LeadInfo is the slice of a lead embedded into the proposal payload.
type LeadInfo struct {
	ID       uuid.UUID
	Nome     string
	Telefone *string
	Email    *string
	Origem   *string
}

// LeadReader loads the lead snapshot for a proposal and enforces tenancy.
type LeadReader interface {
	LeadInfo(ctx context.Context, orgID, leadID uuid.UUID) (LeadInfo, error)
}

type Store interface {
	HashExists(ctx context.Context, hash string) (bool, error)
	Create(ctx context.Context, params repository.CreateParams) (repository.Proposal, error)
	ListByLead(ctx context.Context, orgID, leadID uuid.UUID) ([]repository.Proposal, error)
	GetByPublicHash(ctx context.Context, hash string) (repository.Proposal, error)
	GetByID(ctx context.Context, id uuid.UUID) (repository.Proposal, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (repository.Proposal, error)
}

type Service struct {
	store Store
	leads LeadReader
	bus   events.Bus
	log   *logger.Logger
}

func New(store Store, leads LeadReader, bus events.Bus, log *logger.Logger) *Service {
	return &Service{store: store, leads: leads, bus: bus, log: log}
}

type ScenarioInput struct {
	ID                   string
	Titulo               string
	Produto              string
	Administradora       *string
	ValorCarta           float64
	PrazoMeses           int
	ComRedutor           *bool
	RedutorPercent       *float64
	ParcelaCheia         *float64
	ParcelaReduzida      *float64
	TaxaAdminAnual       *float64
	FundoReservaPct      *float64
	SeguroPrestamista    *bool
	LanceFixoPct1        *float64
	LanceFixoPct2        *float64
	PermiteLanceEmbutido *bool
	LanceEmbutidoPctMax  *float64
	Observacoes          *string
}

type CreateInput struct {
	Titulo           string
	Campanha         *string
	Status           string
	ClienteOverrides map[string]interface{}
	Meta             *repository.Meta
	Cenarios         []ScenarioInput
}

// Create assembles the full payload document, snapshots the lead into it and
// persists the proposal under a fresh public hash.
func (s *Service) Create(ctx context.Context, orgID, leadID uuid.UUID, createdBy *uuid.UUID, input CreateInput) (repository.Proposal, error) {
	const op = "proposals.Create"

	if input.Status == "" {
		input.Status = StatusRascunho
	}
	if input.Status != StatusRascunho && input.Status != StatusEnviado {
		return repository.Proposal{}, apperr.Validation("proposals start as rascunho or enviado").WithOp(op)
	}
	if len(input.Cenarios) == 0 {
		return repository.Proposal{}, apperr.Validation("at least one scenario is required").WithOp(op)
	}

	lead, err := s.leads.LeadInfo(ctx, orgID, leadID)
	if err != nil {
		return repository.Proposal{}, err
	}

	cliente := repository.ClientInfo{
		LeadID:   lead.ID,
		Telefone: lead.Telefone,
		Email:    lead.Email,
		Origem:   lead.Origem,
	}
	if lead.Nome != "" {
		nome := lead.Nome
		cliente.Nome = &nome
	}

	cenarios := make([]repository.Scenario, 0, len(input.Cenarios))
	for _, c := range input.Cenarios {
		cenarios = append(cenarios, repository.Scenario(c))
	}

	meta := input.Meta
	if meta == nil {
		validade := 7
		meta = &repository.Meta{
			Campanha:     input.Campanha,
			ValidadeDias: &validade,
		}
	}

	overrides := input.ClienteOverrides
	if overrides == nil {
		overrides = map[string]interface{}{}
	}

	payload := repository.Payload{
		Cliente:   cliente,
		Propostas: cenarios,
		Meta:      meta,
		Extras: map[string]interface{}{
			"cliente_overrides": overrides,
		},
	}

	hash, err := s.generatePublicHash(ctx)
	if err != nil {
		return repository.Proposal{}, apperr.Wrap(apperr.KindInternal, "generate public hash", err).WithOp(op)
	}

	created, err := s.store.Create(ctx, repository.CreateParams{
		OrgID:      orgID,
		LeadID:     leadID,
		Titulo:     input.Titulo,
		Campanha:   input.Campanha,
		Status:     input.Status,
		PublicHash: hash,
		Payload:    payload,
		CreatedBy:  createdBy,
	})
	if err != nil {
		return repository.Proposal{}, apperr.Wrap(apperr.KindInternal, "create proposal", err).WithOp(op)
	}
	return created, nil
}

func (s *Service) ListByLead(ctx context.Context, orgID, leadID uuid.UUID) ([]repository.Proposal, error) {
	const op = "proposals.ListByLead"

	if _, err := s.leads.LeadInfo(ctx, orgID, leadID); err != nil {
		return nil, err
	}

	list, err := s.store.ListByLead(ctx, orgID, leadID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list proposals", err).WithOp(op)
	}
	return list, nil
}

// GetByPublicHash serves the public proposal page. The hash alone is the
// credential, so no org scoping applies here.
func (s *Service) GetByPublicHash(ctx context.Context, hash string) (repository.Proposal, error) {
	const op = "proposals.GetByPublicHash"

	p, err := s.store.GetByPublicHash(ctx, hash)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Proposal{}, apperr.NotFound("proposal not found").WithOp(op)
	}
	if err != nil {
		return repository.Proposal{}, apperr.Wrap(apperr.KindInternal, "load proposal", err).WithOp(op)
	}
	return p, nil
}

func (s *Service) UpdateStatus(ctx context.Context, orgID, id uuid.UUID, status string) (repository.Proposal, error) {
	const op = "proposals.UpdateStatus"

	if !knownStatus(status) {
		return repository.Proposal{}, apperr.Validation("unknown proposal status: " + status).WithOp(op)
	}

	current, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Proposal{}, apperr.NotFound("proposal not found").WithOp(op)
	}
	if err != nil {
		return repository.Proposal{}, apperr.Wrap(apperr.KindInternal, "load proposal", err).WithOp(op)
	}
	if current.OrgID != orgID {
		return repository.Proposal{}, apperr.Forbidden("proposal belongs to another organization").WithOp(op)
	}

	updated, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return repository.Proposal{}, apperr.Wrap(apperr.KindInternal, "update proposal status", err).WithOp(op)
	}
	return updated, nil
}

// Accept is the public acceptance endpoint behind the share link. It flips
// the proposal to aprovada and notifies the owning organization.
func (s *Service) Accept(ctx context.Context, hash string) (repository.Proposal, error) {
	const op = "proposals.Accept"

	current, err := s.GetByPublicHash(ctx, hash)
	if err != nil {
		return repository.Proposal{}, err
	}
	if current.Status == StatusAprovada {
		return current, nil
	}
	if current.Status == StatusInativa {
		return repository.Proposal{}, apperr.InvalidTransition("proposal is no longer active").WithOp(op)
	}

	updated, err := s.store.UpdateStatus(ctx, current.ID, StatusAprovada)
	if err != nil {
		return repository.Proposal{}, apperr.Wrap(apperr.KindInternal, "accept proposal", err).WithOp(op)
	}
	s.log.Info("proposal accepted", "proposalId", updated.ID, "org", updated.OrgID)

	s.bus.Publish(ctx, events.ProposalAccepted{
		BaseEvent:      events.NewBaseEvent(),
		ProposalID:     updated.ID,
		OrganizationID: updated.OrgID,
		LeadID:         updated.LeadID,
		PublicHash:     updated.PublicHash,
		Titulo:         updated.Titulo,
		ClienteNome:    updated.Payload.Cliente.Nome,
		ClienteEmail:   updated.Payload.Cliente.Email,
	})
	return updated, nil
}

// PDF renders the proposal document for a consultant inside the organization.
func (s *Service) PDF(ctx context.Context, orgID, id uuid.UUID) ([]byte, error) {
	const op = "proposals.PDF"

	current, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("proposal not found").WithOp(op)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "load proposal", err).WithOp(op)
	}
	if current.OrgID != orgID {
		return nil, apperr.Forbidden("proposal belongs to another organization").WithOp(op)
	}

	data, err := pdf.GenerateProposalPDF(proposalPDFData(current))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "render proposal PDF", err).WithOp(op)
	}
	return data, nil
}

// PDFByPublicHash renders the document for the public share page.
func (s *Service) PDFByPublicHash(ctx context.Context, hash string) ([]byte, error) {
	const op = "proposals.PDFByPublicHash"

	current, err := s.GetByPublicHash(ctx, hash)
	if err != nil {
		return nil, err
	}

	data, err := pdf.GenerateProposalPDF(proposalPDFData(current))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "render proposal PDF", err).WithOp(op)
	}
	return data, nil
}

func proposalPDFData(p repository.Proposal) pdf.ProposalPDFData {
	data := pdf.ProposalPDFData{
		Titulo:          "Proposta de Consórcio",
		Campanha:        p.Campanha,
		Status:          p.Status,
		CreatedAt:       p.CreatedAt,
		ClienteNome:     "Cliente",
		ClienteTelefone: p.Payload.Cliente.Telefone,
		ClienteEmail:    p.Payload.Cliente.Email,
	}
	if p.Titulo != nil && *p.Titulo != "" {
		data.Titulo = *p.Titulo
	}
	if p.Payload.Cliente.Nome != nil && *p.Payload.Cliente.Nome != "" {
		data.ClienteNome = *p.Payload.Cliente.Nome
	}
	if meta := p.Payload.Meta; meta != nil {
		data.ValidadeDias = meta.ValidadeDias
		data.ComentarioConsultor = meta.ComentarioConsultor
		if data.Campanha == nil {
			data.Campanha = meta.Campanha
		}
	}

	data.Cenarios = make([]pdf.ProposalScenarioPDF, 0, len(p.Payload.Propostas))
	for _, c := range p.Payload.Propostas {
		data.Cenarios = append(data.Cenarios, pdf.ProposalScenarioPDF{
			ID:                c.ID,
			Titulo:            c.Titulo,
			Produto:           c.Produto,
			Administradora:    c.Administradora,
			ValorCarta:        c.ValorCarta,
			PrazoMeses:        c.PrazoMeses,
			ComRedutor:        c.ComRedutor,
			RedutorPercent:    c.RedutorPercent,
			ParcelaCheia:      c.ParcelaCheia,
			ParcelaReduzida:   c.ParcelaReduzida,
			TaxaAdminAnual:    c.TaxaAdminAnual,
			FundoReservaPct:   c.FundoReservaPct,
			SeguroPrestamista: c.SeguroPrestamista,
			LanceFixoPct1:     c.LanceFixoPct1,
			LanceFixoPct2:     c.LanceFixoPct2,
			Observacoes:       c.Observacoes,
		})
	}
	return data
}

const hashAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomHash(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(length)
	for _, v := range buf {
		b.WriteByte(hashAlphabet[int(v)%len(hashAlphabet)])
	}
	return b.String(), nil
}

// generatePublicHash draws short hashes until one is free. After ten
// collisions in a row it falls back to a longer hash instead of looping
// forever.
func (s *Service) generatePublicHash(ctx context.Context) (string, error) {
	for i := 0; i < 10; i++ {
		h, err := randomHash(7)
		if err != nil {
			return "", err
		}
		exists, err := s.store.HashExists(ctx, h)
		if err != nil {
			return "", err
		}
		if !exists {
			return h, nil
		}
	}
	return randomHash(10)
}
