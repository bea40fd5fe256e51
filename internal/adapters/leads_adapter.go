package adapters

import (
	"context"

	"contemplahub_backend/internal/leads/domain"
	leadservice "contemplahub_backend/internal/leads/service"
	proposalsvc "contemplahub_backend/internal/proposals/service"

	"github.com/google/uuid"
)

// LeadsAdapter exposes the leads service to sibling modules that only need
// ownership checks, funnel moves or a lead snapshot.
type LeadsAdapter struct {
	svc *leadservice.Service
}

func NewLeadsAdapter(svc *leadservice.Service) *LeadsAdapter {
	return &LeadsAdapter{svc: svc}
}

func (a *LeadsAdapter) LeadBelongsToOrg(ctx context.Context, orgID, leadID uuid.UUID) error {
	_, err := a.svc.Get(ctx, orgID, leadID)
	return err
}

func (a *LeadsAdapter) MoveStage(ctx context.Context, orgID, leadID uuid.UUID, target domain.Stage, reason *string) error {
	_, err := a.svc.MoveStage(ctx, orgID, leadID, target, reason)
	return err
}

func (a *LeadsAdapter) LeadInfo(ctx context.Context, orgID, leadID uuid.UUID) (proposalsvc.LeadInfo, error) {
	lead, err := a.svc.Get(ctx, orgID, leadID)
	if err != nil {
		return proposalsvc.LeadInfo{}, err
	}
	return proposalsvc.LeadInfo{
		ID:       lead.ID,
		Nome:     lead.Nome,
		Telefone: lead.Telefone,
		Email:    lead.Email,
		Origem:   lead.Origem,
	}, nil
}
