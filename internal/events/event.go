// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"salescrm_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Auth Domain Events
// =============================================================================

// PasswordResetRequested is published when an admin resets a user's password.
type PasswordResetRequested struct {
	BaseEvent
	UserID     uuid.UUID `json:"userId"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	ResetToken string    `json:"resetToken"`
}

func (e PasswordResetRequested) EventName() string { return "auth.password.reset_requested" }

// UserCreated is published when an admin creates a new user account.
type UserCreated struct {
	BaseEvent
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	Role   string    `json:"role"`
}

func (e UserCreated) EventName() string { return "users.user.created" }

// UserDeactivated is published when an admin deactivates a user account.
type UserDeactivated struct {
	BaseEvent
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
}

func (e UserDeactivated) EventName() string { return "users.user.deactivated" }

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a new lead enters the pipeline.
type LeadCreated struct {
	BaseEvent
	LeadID     uuid.UUID  `json:"leadId"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Source     string     `json:"source,omitempty"`
	Status     string     `json:"status"`
	AssignedTo *uuid.UUID `json:"assignedTo,omitempty"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadStatusChanged is published when a lead moves to a different pipeline status.
type LeadStatusChanged struct {
	BaseEvent
	LeadID         uuid.UUID  `json:"leadId"`
	Name           string     `json:"name"`
	PreviousStatus string     `json:"previousStatus"`
	NewStatus      string     `json:"newStatus"`
	AssignedTo     *uuid.UUID `json:"assignedTo,omitempty"`
}

func (e LeadStatusChanged) EventName() string { return "leads.lead.status_changed" }

// LeadAssigned is published when a lead is assigned to an agent.
type LeadAssigned struct {
	BaseEvent
	LeadID        uuid.UUID  `json:"leadId"`
	Name          string     `json:"name"`
	Status        string     `json:"status"`
	PreviousAgent *uuid.UUID `json:"previousAgent,omitempty"`
	NewAgent      *uuid.UUID `json:"newAgent,omitempty"`
	AssignedByID  uuid.UUID  `json:"assignedById"`
}

func (e LeadAssigned) EventName() string { return "leads.lead.assigned" }

// LeadFollowUpDue is published by the scheduler worker when a lead has sat
// in a late pipeline stage past the follow-up window.
type LeadFollowUpDue struct {
	BaseEvent
	LeadID     uuid.UUID `json:"leadId"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	AgentID    uuid.UUID `json:"agentId"`
	AgentEmail string    `json:"agentEmail"`
	AgentName  string    `json:"agentName"`
	NextAction string    `json:"nextAction"`
}

func (e LeadFollowUpDue) EventName() string { return "leads.lead.followup_due" }

// LeadDeleted is published when a lead is removed from the pipeline.
type LeadDeleted struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	Name      string    `json:"name"`
	DeletedBy uuid.UUID `json:"deletedBy"`
	DeletedAt time.Time `json:"deletedAt"`
}

func (e LeadDeleted) EventName() string { return "leads.lead.deleted" }
