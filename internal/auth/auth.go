// Package auth provides authentication and authorization functionality.
// This file defines the public API of the auth bounded context.
// Only types and interfaces defined here should be imported by other domains.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// ResetTokenIssuer lets other domains (e.g., user administration) request a
// password reset token without depending on auth internals.
type ResetTokenIssuer interface {
	// IssueResetToken creates a single-use reset token for the user and
	// returns the raw token for delivery.
	IssueResetToken(ctx context.Context, userID uuid.UUID) (string, error)
}
