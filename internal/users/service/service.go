// Package service implements user administration business logic.
package service

import (
	"context"
	"strings"

	"salescrm_backend/internal/auth"
	"salescrm_backend/internal/auth/password"
	"salescrm_backend/internal/events"
	"salescrm_backend/internal/users/repository"
	"salescrm_backend/platform/apperr"
	"salescrm_backend/platform/phone"

	"github.com/google/uuid"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

// CreateUserInput holds fields for creating a user account.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Phone    *string
}

// UpdateUserInput holds optional fields for a partial update.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Role     *string
	Phone    *string
	IsActive *bool
}

// ListInput narrows and paginates user listings.
type ListInput struct {
	Search   string
	Role     string
	IsActive *bool
	Page     int
	PageSize int
}

// Page describes pagination metadata for a listing.
type Page struct {
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

type Service struct {
	repo        *repository.Repository
	resetIssuer auth.ResetTokenIssuer
	bus         events.Bus
}

func New(repo *repository.Repository, resetIssuer auth.ResetTokenIssuer, bus events.Bus) *Service {
	return &Service{repo: repo, resetIssuer: resetIssuer, bus: bus}
}

// List returns a page of users matching the filter.
func (s *Service) List(ctx context.Context, input ListInput) ([]repository.User, Page, error) {
	if input.Page < 1 {
		input.Page = defaultPage
	}
	if input.PageSize < 1 {
		input.PageSize = defaultPageSize
	}
	if input.PageSize > maxPageSize {
		input.PageSize = maxPageSize
	}

	users, total, err := s.repo.List(ctx, repository.ListFilter{
		Search:   input.Search,
		Role:     input.Role,
		IsActive: input.IsActive,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, Page{}, apperr.Wrap(apperr.KindInternal, "failed to list users", err)
	}

	totalPages := (total + input.PageSize - 1) / input.PageSize
	return users, Page{
		Total:      total,
		Page:       input.Page,
		PageSize:   input.PageSize,
		TotalPages: totalPages,
	}, nil
}

// Get returns a single user by ID.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (repository.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return repository.User{}, apperr.NotFound("user not found")
	}
	return user, nil
}

// Create adds a new active user account.
func (s *Service) Create(ctx context.Context, input CreateUserInput) (repository.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return repository.User{}, apperr.Wrap(apperr.KindInternal, "failed to check email", err)
	}
	if exists {
		return repository.User{}, apperr.Conflict("email already registered")
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return repository.User{}, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	user := repository.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
		Phone:        normalizePhone(input.Phone),
		IsActive:     true,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return repository.User{}, apperr.Wrap(apperr.KindInternal, "failed to create user", err)
	}

	s.bus.Publish(ctx, events.UserCreated{
		BaseEvent: events.NewBaseEvent(),
		UserID:    created.ID,
		Email:     created.Email,
		Name:      created.Name,
		Role:      created.Role,
	})

	return created, nil
}

// Update applies a partial update to a user account.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (repository.User, error) {
	current, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return repository.User{}, apperr.NotFound("user not found")
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != current.Email {
			exists, err := s.repo.EmailExists(ctx, email)
			if err != nil {
				return repository.User{}, apperr.Wrap(apperr.KindInternal, "failed to check email", err)
			}
			if exists {
				return repository.User{}, apperr.Conflict("email already registered")
			}
		}
		input.Email = &email
	}

	updated, err := s.repo.Update(ctx, userID, repository.UpdateFields{
		Name:     input.Name,
		Email:    input.Email,
		Role:     input.Role,
		Phone:    normalizePhone(input.Phone),
		IsActive: input.IsActive,
	})
	if err != nil {
		return repository.User{}, apperr.Wrap(apperr.KindInternal, "failed to update user", err)
	}

	if input.IsActive != nil && !*input.IsActive && current.IsActive {
		s.publishDeactivated(ctx, updated)
	}

	return updated, nil
}

// Deactivate soft-deletes a user account.
func (s *Service) Deactivate(ctx context.Context, userID uuid.UUID) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return apperr.NotFound("user not found")
	}

	if err := s.repo.Deactivate(ctx, userID); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to deactivate user", err)
	}

	s.publishDeactivated(ctx, user)
	return nil
}

// ResetPassword sets a new password directly when one is supplied, or issues
// a reset token and publishes an event so the user receives a reset link.
func (s *Service) ResetPassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return apperr.NotFound("user not found")
	}

	if newPassword != "" {
		hash, err := password.Hash(newPassword)
		if err != nil {
			return apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
		}
		if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
			return apperr.Wrap(apperr.KindInternal, "failed to reset password", err)
		}
		return nil
	}

	resetToken, err := s.resetIssuer.IssueResetToken(ctx, userID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to issue reset token", err)
	}

	s.bus.Publish(ctx, events.PasswordResetRequested{
		BaseEvent:  events.NewBaseEvent(),
		UserID:     user.ID,
		Email:      user.Email,
		Name:       user.Name,
		ResetToken: resetToken,
	})

	return nil
}

func (s *Service) publishDeactivated(ctx context.Context, user repository.User) {
	s.bus.Publish(ctx, events.UserDeactivated{
		BaseEvent: events.NewBaseEvent(),
		UserID:    user.ID,
		Email:     user.Email,
	})
}

func normalizePhone(value *string) *string {
	if value == nil {
		return nil
	}
	normalized := phone.NormalizeE164(*value)
	return &normalized
}
