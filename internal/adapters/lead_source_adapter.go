// Package adapters contains adapters that bridge different bounded contexts.
// These adapters implement interfaces defined by consuming domains while
// wrapping repositories or services from providing domains.
package adapters

import (
	"context"
	"errors"

	"salescrm_backend/internal/intelligence/engine"
	"salescrm_backend/internal/leads/repository"

	"github.com/google/uuid"
)

// LeadSourceAdapter adapts lead storage to the intelligence domain's
// LeadSource port, so the insight engine never touches SQL or the lead
// repository's types directly.
type LeadSourceAdapter struct {
	repo *repository.Repository
}

// NewLeadSourceAdapter creates a new adapter wrapping the leads repository.
func NewLeadSourceAdapter(repo *repository.Repository) *LeadSourceAdapter {
	return &LeadSourceAdapter{repo: repo}
}

// GetLead returns one lead in the intelligence domain's shape.
func (a *LeadSourceAdapter) GetLead(ctx context.Context, leadID uuid.UUID) (engine.Lead, error) {
	lead, err := a.repo.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return engine.Lead{}, engine.ErrLeadNotFound
		}
		return engine.Lead{}, err
	}
	return toEngineLead(lead), nil
}

// ListLeads returns the most recently touched leads, optionally scoped to
// one assignee. A non-positive limit returns everything.
func (a *LeadSourceAdapter) ListLeads(ctx context.Context, assignedTo *uuid.UUID, limit int) ([]engine.Lead, error) {
	leads, err := a.repo.ListRecent(ctx, assignedTo, limit)
	if err != nil {
		return nil, err
	}

	result := make([]engine.Lead, 0, len(leads))
	for _, lead := range leads {
		result = append(result, toEngineLead(lead))
	}
	return result, nil
}

func toEngineLead(lead repository.Lead) engine.Lead {
	createdAt := lead.CreatedAt
	updatedAt := lead.UpdatedAt

	return engine.Lead{
		ID:          lead.ID,
		Name:        lead.Name,
		Email:       lead.Email,
		Phone:       stringValue(lead.Phone),
		Company:     stringValue(lead.Company),
		Source:      stringValue(lead.Source),
		Status:      lead.Status,
		Priority:    stringValue(lead.Priority),
		Budget:      floatValue(lead.Budget),
		CreatedAt:   &createdAt,
		UpdatedAt:   &updatedAt,
		LastContact: lead.LastContact,
	}
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func floatValue(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}

// Compile-time check that LeadSourceAdapter implements engine.LeadSource
var _ engine.LeadSource = (*LeadSourceAdapter)(nil)
