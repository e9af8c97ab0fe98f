package adapters

import (
	"context"

	authrepo "salescrm_backend/internal/auth/repository"
	"salescrm_backend/internal/notification"

	"github.com/google/uuid"
)

// AgentReaderAdapter adapts user storage to the notification module's
// AgentReader interface.
type AgentReaderAdapter struct {
	users *authrepo.Repository
}

// NewAgentReaderAdapter creates a new adapter wrapping the auth repository.
func NewAgentReaderAdapter(users *authrepo.Repository) *AgentReaderAdapter {
	return &AgentReaderAdapter{users: users}
}

func (a *AgentReaderAdapter) GetAgentContact(ctx context.Context, userID uuid.UUID) (notification.AgentContact, error) {
	user, err := a.users.GetUserByID(ctx, userID)
	if err != nil {
		return notification.AgentContact{}, err
	}
	return notification.AgentContact{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		IsActive: user.IsActive,
	}, nil
}

// Compile-time check that AgentReaderAdapter implements notification.AgentReader
var _ notification.AgentReader = (*AgentReaderAdapter)(nil)
