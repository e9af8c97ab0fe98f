package engine

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrLeadNotFound is returned by LeadSource when no lead has the given ID.
var ErrLeadNotFound = errors.New("lead not found")

// LeadSource supplies lead snapshots to the engine's HTTP layer.
// Implementations live outside this package (anti-corruption adapter over
// the leads bounded context).
type LeadSource interface {
	// GetLead returns one lead by ID, or ErrLeadNotFound.
	GetLead(ctx context.Context, leadID uuid.UUID) (Lead, error)
	// ListLeads returns leads ordered by most recent update. When
	// assignedTo is non-nil only that agent's leads are returned; a
	// limit <= 0 means no limit.
	ListLeads(ctx context.Context, assignedTo *uuid.UUID, limit int) ([]Lead, error)
}
