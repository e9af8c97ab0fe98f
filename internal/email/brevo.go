package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"salescrm_backend/platform/config"
)

// Sender delivers transactional mail to agents and users.
type Sender interface {
	SendPasswordResetEmail(ctx context.Context, toEmail, name, resetURL string) error
	SendWelcomeEmail(ctx context.Context, toEmail, name, role, signInURL string) error
	SendFollowUpReminderEmail(ctx context.Context, toEmail, agentName, leadName, status, nextAction, leadURL string) error
	SendLeadAssignedEmail(ctx context.Context, toEmail, agentName, leadName, status, leadURL string) error
	SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error
}

// NoopSender drops all mail. Used when EMAIL_ENABLED is false.
type NoopSender struct{}

func (NoopSender) SendPasswordResetEmail(ctx context.Context, toEmail, name, resetURL string) error {
	return nil
}

func (NoopSender) SendWelcomeEmail(ctx context.Context, toEmail, name, role, signInURL string) error {
	return nil
}

func (NoopSender) SendFollowUpReminderEmail(ctx context.Context, toEmail, agentName, leadName, status, nextAction, leadURL string) error {
	return nil
}

func (NoopSender) SendLeadAssignedEmail(ctx context.Context, toEmail, agentName, leadName, status, leadURL string) error {
	return nil
}

func (NoopSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return nil
}

// BrevoSender delivers mail through the Brevo transactional API.
type BrevoSender struct {
	apiKey    string
	fromName  string
	fromEmail string
	client    *http.Client
}

type brevoEmailRequest struct {
	Sender struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"sender"`
	To []struct {
		Email string `json:"email"`
	} `json:"to"`
	Subject     string `json:"subject"`
	HTMLContent string `json:"htmlContent"`
}

// NewSender picks a delivery backend from config: Brevo when an API key is
// set, direct SMTP otherwise, and a no-op when email is disabled entirely.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}

	if cfg.GetBrevoAPIKey() != "" {
		return &BrevoSender{
			apiKey:    cfg.GetBrevoAPIKey(),
			fromName:  cfg.GetEmailFromName(),
			fromEmail: cfg.GetEmailFromAddress(),
			client:    &http.Client{Timeout: 10 * time.Second},
		}, nil
	}

	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	), nil
}

func (b *BrevoSender) SendPasswordResetEmail(ctx context.Context, toEmail, name, resetURL string) error {
	content, err := renderEmailTemplate("password_reset.html", passwordResetEmailData{
		baseEmailData: baseEmailData{
			Title:    "Reset your password",
			Heading:  "Reset your password",
			CTALabel: "Choose a new password",
			CTAURL:   resetURL,
		},
		Name: name,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subjectPasswordReset, content)
}

func (b *BrevoSender) SendWelcomeEmail(ctx context.Context, toEmail, name, role, signInURL string) error {
	content, err := renderEmailTemplate("welcome.html", welcomeEmailData{
		baseEmailData: baseEmailData{
			Title:    "Welcome aboard",
			Heading:  "Welcome aboard",
			CTALabel: "Sign in",
			CTAURL:   signInURL,
		},
		Name: name,
		Role: role,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subjectWelcome, content)
}

func (b *BrevoSender) SendFollowUpReminderEmail(ctx context.Context, toEmail, agentName, leadName, status, nextAction, leadURL string) error {
	subject := fmt.Sprintf(subjectFollowUpDueFmt, leadName)
	content, err := renderEmailTemplate("follow_up_reminder.html", followUpReminderEmailData{
		baseEmailData: baseEmailData{
			Title:    "Follow-up due",
			Heading:  "Follow-up due",
			CTALabel: "Open lead",
			CTAURL:   leadURL,
		},
		AgentName:  agentName,
		LeadName:   leadName,
		Status:     status,
		NextAction: nextAction,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subject, content)
}

func (b *BrevoSender) SendLeadAssignedEmail(ctx context.Context, toEmail, agentName, leadName, status, leadURL string) error {
	subject := fmt.Sprintf(subjectLeadAssignedFmt, leadName)
	content, err := renderEmailTemplate("lead_assigned.html", leadAssignedEmailData{
		baseEmailData: baseEmailData{
			Title:    "New lead assigned",
			Heading:  "New lead assigned",
			CTALabel: "Open lead",
			CTAURL:   leadURL,
		},
		AgentName: agentName,
		LeadName:  leadName,
		Status:    status,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subject, content)
}

func (b *BrevoSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return b.send(ctx, toEmail, subject, htmlContent)
}

func (b *BrevoSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	payload := brevoEmailRequest{
		Subject:     subject,
		HTMLContent: htmlContent,
	}
	payload.Sender.Name = b.fromName
	payload.Sender.Email = b.fromEmail
	payload.To = []struct {
		Email string `json:"email"`
	}{{Email: toEmail}}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.brevo.com/v3/smtp/email", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", b.apiKey)
	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("brevo send failed: status %d: %s", resp.StatusCode, string(data))
	}

	return nil
}
