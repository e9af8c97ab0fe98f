package notification

import (
	"context"
	"errors"
	"testing"

	"salescrm_backend/internal/events"
	"salescrm_backend/platform/logger"

	"github.com/google/uuid"
)

type testNotificationConfig struct{}

func (testNotificationConfig) GetEmailEnabled() bool       { return true }
func (testNotificationConfig) GetBrevoAPIKey() string      { return "" }
func (testNotificationConfig) GetSMTPHost() string         { return "" }
func (testNotificationConfig) GetSMTPPort() int            { return 0 }
func (testNotificationConfig) GetSMTPUsername() string     { return "" }
func (testNotificationConfig) GetSMTPPassword() string     { return "" }
func (testNotificationConfig) GetEmailFromName() string    { return "Sales CRM" }
func (testNotificationConfig) GetEmailFromAddress() string { return "crm@example.com" }
func (testNotificationConfig) GetAppBaseURL() string       { return "https://app.example.com/" }

type testSender struct {
	passwordResetCalls int
	welcomeCalls       int
	followUpCalls      int
	leadAssignedCalls  int

	lastTo  string
	lastURL string
}

func (s *testSender) SendPasswordResetEmail(_ context.Context, toEmail, _, resetURL string) error {
	s.passwordResetCalls++
	s.lastTo = toEmail
	s.lastURL = resetURL
	return nil
}

func (s *testSender) SendWelcomeEmail(_ context.Context, toEmail, _, _, signInURL string) error {
	s.welcomeCalls++
	s.lastTo = toEmail
	s.lastURL = signInURL
	return nil
}

func (s *testSender) SendFollowUpReminderEmail(_ context.Context, toEmail, _, _, _, _, leadURL string) error {
	s.followUpCalls++
	s.lastTo = toEmail
	s.lastURL = leadURL
	return nil
}

func (s *testSender) SendLeadAssignedEmail(_ context.Context, toEmail, _, _, _, leadURL string) error {
	s.leadAssignedCalls++
	s.lastTo = toEmail
	s.lastURL = leadURL
	return nil
}

func (s *testSender) SendCustomEmail(context.Context, string, string, string) error { return nil }

type testAgentReader struct {
	contact AgentContact
	err     error
}

func (r testAgentReader) GetAgentContact(context.Context, uuid.UUID) (AgentContact, error) {
	return r.contact, r.err
}

func TestHandlePasswordResetRequested_BuildsResetURL(t *testing.T) {
	sender := &testSender{}
	m := New(sender, nil, testNotificationConfig{}, logger.New("development"))

	err := m.Handle(context.Background(), events.PasswordResetRequested{
		UserID:     uuid.New(),
		Email:      "agent@example.com",
		Name:       "Agent",
		ResetToken: "tok123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.passwordResetCalls != 1 {
		t.Fatalf("expected 1 password reset email, got %d", sender.passwordResetCalls)
	}
	if sender.lastTo != "agent@example.com" {
		t.Fatalf("unexpected recipient %q", sender.lastTo)
	}
	if sender.lastURL != "https://app.example.com/reset-password?token=tok123" {
		t.Fatalf("unexpected reset URL %q", sender.lastURL)
	}
}

func TestHandleUserCreated_SendsWelcomeEmail(t *testing.T) {
	sender := &testSender{}
	m := New(sender, nil, testNotificationConfig{}, logger.New("development"))

	err := m.Handle(context.Background(), events.UserCreated{
		UserID: uuid.New(),
		Email:  "new@example.com",
		Name:   "New Agent",
		Role:   "agent",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.welcomeCalls != 1 {
		t.Fatalf("expected 1 welcome email, got %d", sender.welcomeCalls)
	}
	if sender.lastURL != "https://app.example.com/sign-in" {
		t.Fatalf("unexpected sign-in URL %q", sender.lastURL)
	}
}

func TestHandleLeadAssigned_SendsToNewAgent(t *testing.T) {
	agentID := uuid.New()
	sender := &testSender{}
	agents := testAgentReader{contact: AgentContact{
		ID:       agentID,
		Name:     "Agent",
		Email:    "agent@example.com",
		IsActive: true,
	}}
	m := New(sender, agents, testNotificationConfig{}, logger.New("development"))

	leadID := uuid.New()
	err := m.Handle(context.Background(), events.LeadAssigned{
		LeadID:       leadID,
		Name:         "Big Deal BV",
		Status:       "qualified",
		NewAgent:     &agentID,
		AssignedByID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.leadAssignedCalls != 1 {
		t.Fatalf("expected 1 lead assigned email, got %d", sender.leadAssignedCalls)
	}
	if sender.lastURL != "https://app.example.com/leads/"+leadID.String() {
		t.Fatalf("unexpected lead URL %q", sender.lastURL)
	}
}

func TestHandleLeadAssigned_SkipsSelfAssignment(t *testing.T) {
	agentID := uuid.New()
	sender := &testSender{}
	agents := testAgentReader{contact: AgentContact{ID: agentID, Email: "agent@example.com", IsActive: true}}
	m := New(sender, agents, testNotificationConfig{}, logger.New("development"))

	err := m.Handle(context.Background(), events.LeadAssigned{
		LeadID:       uuid.New(),
		Name:         "Self Service",
		NewAgent:     &agentID,
		AssignedByID: agentID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.leadAssignedCalls != 0 {
		t.Fatalf("expected no email for self-assignment, got %d", sender.leadAssignedCalls)
	}
}

func TestHandleLeadAssigned_SkipsInactiveAgent(t *testing.T) {
	agentID := uuid.New()
	sender := &testSender{}
	agents := testAgentReader{contact: AgentContact{ID: agentID, Email: "gone@example.com", IsActive: false}}
	m := New(sender, agents, testNotificationConfig{}, logger.New("development"))

	err := m.Handle(context.Background(), events.LeadAssigned{
		LeadID:       uuid.New(),
		Name:         "Orphan",
		NewAgent:     &agentID,
		AssignedByID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.leadAssignedCalls != 0 {
		t.Fatalf("expected no email for inactive agent, got %d", sender.leadAssignedCalls)
	}
}

func TestHandleLeadAssigned_AgentLookupFailureIsNotFatal(t *testing.T) {
	agentID := uuid.New()
	sender := &testSender{}
	agents := testAgentReader{err: errors.New("connection refused")}
	m := New(sender, agents, testNotificationConfig{}, logger.New("development"))

	err := m.Handle(context.Background(), events.LeadAssigned{
		LeadID:       uuid.New(),
		Name:         "Lookup Fails",
		NewAgent:     &agentID,
		AssignedByID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("expected lookup failure to be swallowed, got %v", err)
	}
	if sender.leadAssignedCalls != 0 {
		t.Fatalf("expected no email when the agent cannot be resolved, got %d", sender.leadAssignedCalls)
	}
}

func TestHandleLeadFollowUpDue_SendsReminder(t *testing.T) {
	sender := &testSender{}
	m := New(sender, nil, testNotificationConfig{}, logger.New("development"))

	leadID := uuid.New()
	err := m.Handle(context.Background(), events.LeadFollowUpDue{
		LeadID:     leadID,
		Name:       "Waiting BV",
		Status:     "proposal",
		AgentID:    uuid.New(),
		AgentEmail: "agent@example.com",
		AgentName:  "Agent",
		NextAction: "Follow up on proposal status",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.followUpCalls != 1 {
		t.Fatalf("expected 1 follow-up email, got %d", sender.followUpCalls)
	}
	if sender.lastTo != "agent@example.com" {
		t.Fatalf("unexpected recipient %q", sender.lastTo)
	}
	if sender.lastURL != "https://app.example.com/leads/"+leadID.String() {
		t.Fatalf("unexpected lead URL %q", sender.lastURL)
	}
}

func TestHandle_UnknownEventIsIgnored(t *testing.T) {
	sender := &testSender{}
	m := New(sender, nil, testNotificationConfig{}, logger.New("development"))

	err := m.Handle(context.Background(), events.LeadDeleted{LeadID: uuid.New(), Name: "Gone"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.passwordResetCalls+sender.welcomeCalls+sender.followUpCalls+sender.leadAssignedCalls != 0 {
		t.Fatalf("expected no emails for unhandled events")
	}
}
