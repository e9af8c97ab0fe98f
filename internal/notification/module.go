// Package notification provides event handlers for sending notifications
// in response to domain events. This module subscribes to events and inverts
// the dependency: domain modules never need to know about email providers
// or templates.
package notification

import (
	"context"
	"strings"

	"salescrm_backend/internal/email"
	"salescrm_backend/internal/events"
	"salescrm_backend/platform/config"
	"salescrm_backend/platform/logger"

	"github.com/google/uuid"
)

// AgentReader resolves a user ID to contact details for notifications.
type AgentReader interface {
	GetAgentContact(ctx context.Context, userID uuid.UUID) (AgentContact, error)
}

// AgentContact is the minimal user projection notifications need.
type AgentContact struct {
	ID       uuid.UUID
	Name     string
	Email    string
	IsActive bool
}

// Module handles all notification-related event subscriptions.
type Module struct {
	sender email.Sender
	agents AgentReader
	cfg    config.EmailConfig
	log    *logger.Logger
}

// New creates a new notification module.
func New(sender email.Sender, agents AgentReader, cfg config.EmailConfig, log *logger.Logger) *Module {
	return &Module{
		sender: sender,
		agents: agents,
		cfg:    cfg,
		log:    log,
	}
}

// RegisterHandlers subscribes to all relevant domain events on the event bus.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.PasswordResetRequested{}.EventName(), m)
	bus.Subscribe(events.UserCreated{}.EventName(), m)
	bus.Subscribe(events.LeadAssigned{}.EventName(), m)
	bus.Subscribe(events.LeadFollowUpDue{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.PasswordResetRequested:
		return m.handlePasswordResetRequested(ctx, e)
	case events.UserCreated:
		return m.handleUserCreated(ctx, e)
	case events.LeadAssigned:
		return m.handleLeadAssigned(ctx, e)
	case events.LeadFollowUpDue:
		return m.handleLeadFollowUpDue(ctx, e)
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

func (m *Module) handlePasswordResetRequested(ctx context.Context, e events.PasswordResetRequested) error {
	resetURL := m.buildURL("/reset-password", e.ResetToken)
	if err := m.sender.SendPasswordResetEmail(ctx, e.Email, e.Name, resetURL); err != nil {
		m.log.Error("failed to send password reset email",
			"userId", e.UserID,
			"email", e.Email,
			"error", err,
		)
		return err
	}
	m.log.Info("password reset email sent", "userId", e.UserID, "email", e.Email)
	return nil
}

func (m *Module) handleUserCreated(ctx context.Context, e events.UserCreated) error {
	signInURL := strings.TrimRight(m.cfg.GetAppBaseURL(), "/") + "/sign-in"
	if err := m.sender.SendWelcomeEmail(ctx, e.Email, e.Name, e.Role, signInURL); err != nil {
		m.log.Error("failed to send welcome email",
			"userId", e.UserID,
			"email", e.Email,
			"error", err,
		)
		return err
	}
	m.log.Info("welcome email sent", "userId", e.UserID, "email", e.Email)
	return nil
}

func (m *Module) handleLeadAssigned(ctx context.Context, e events.LeadAssigned) error {
	if e.NewAgent == nil || m.agents == nil {
		return nil
	}
	// Self-assignment needs no notification.
	if *e.NewAgent == e.AssignedByID {
		return nil
	}

	agent, err := m.agents.GetAgentContact(ctx, *e.NewAgent)
	if err != nil {
		m.log.Warn("failed to resolve agent for lead assignment email",
			"leadId", e.LeadID,
			"agentId", *e.NewAgent,
			"error", err,
		)
		return nil
	}
	if !agent.IsActive {
		return nil
	}

	leadURL := m.buildLeadURL(e.LeadID)
	if err := m.sender.SendLeadAssignedEmail(ctx, agent.Email, agent.Name, e.Name, e.Status, leadURL); err != nil {
		m.log.Error("failed to send lead assigned email",
			"leadId", e.LeadID,
			"agentId", agent.ID,
			"error", err,
		)
		return err
	}
	m.log.Info("lead assigned email sent", "leadId", e.LeadID, "agentId", agent.ID)
	return nil
}

func (m *Module) handleLeadFollowUpDue(ctx context.Context, e events.LeadFollowUpDue) error {
	leadURL := m.buildLeadURL(e.LeadID)
	if err := m.sender.SendFollowUpReminderEmail(ctx, e.AgentEmail, e.AgentName, e.Name, e.Status, e.NextAction, leadURL); err != nil {
		m.log.Error("failed to send follow-up reminder email",
			"leadId", e.LeadID,
			"agentId", e.AgentID,
			"error", err,
		)
		return err
	}
	m.log.Info("follow-up reminder email sent", "leadId", e.LeadID, "agentId", e.AgentID)
	return nil
}

func (m *Module) buildURL(path string, tokenValue string) string {
	base := strings.TrimRight(m.cfg.GetAppBaseURL(), "/")
	return base + path + "?token=" + tokenValue
}

func (m *Module) buildLeadURL(leadID uuid.UUID) string {
	base := strings.TrimRight(m.cfg.GetAppBaseURL(), "/")
	return base + "/leads/" + leadID.String()
}
