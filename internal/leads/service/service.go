// Package service implements lead pipeline business logic.
package service

import (
	"context"
	"strings"
	"time"

	"salescrm_backend/internal/events"
	"salescrm_backend/internal/leads/repository"
	"salescrm_backend/internal/scheduler"
	"salescrm_backend/platform/apperr"
	"salescrm_backend/platform/logger"
	"salescrm_backend/platform/phone"

	"github.com/google/uuid"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100

	// followUpDelay is how long after entering proposal or negotiation an
	// agent gets a reminder if the lead is still in that stage.
	followUpDelay = 48 * time.Hour
)

// Actor identifies the caller for visibility scoping.
type Actor struct {
	ID      uuid.UUID
	IsAdmin bool
}

// CreateLeadInput holds fields for creating a lead.
type CreateLeadInput struct {
	Name        string
	Email       string
	Phone       *string
	Company     *string
	Source      *string
	Status      string
	Priority    *string
	Budget      *float64
	AssignedTo  *uuid.UUID
	Notes       *string
	LastContact *time.Time
}

// UpdateLeadInput holds optional fields for a partial update.
// A non-nil outer pointer means "set this field"; the inner value may be
// nil to clear a nullable column.
type UpdateLeadInput struct {
	Name        *string
	Email       *string
	Phone       **string
	Company     **string
	Source      **string
	Status      *string
	Priority    **string
	Budget      **float64
	AssignedTo  **uuid.UUID
	Notes       **string
	LastContact **time.Time
}

// ListInput narrows and paginates lead listings.
type ListInput struct {
	Status   string
	Search   string
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
	repo      *repository.Repository
	bus       events.Bus
	reminders scheduler.ReminderScheduler
	log       *logger.Logger
}

// New creates the leads service. reminders may be nil when the scheduler
// backend is not configured; follow-up reminders are then skipped.
func New(repo *repository.Repository, bus events.Bus, reminders scheduler.ReminderScheduler, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, reminders: reminders, log: log}
}

// List returns a page of leads visible to the actor.
func (s *Service) List(ctx context.Context, actor Actor, input ListInput) ([]repository.Lead, Page, error) {
	if input.Page < 1 {
		input.Page = defaultPage
	}
	if input.PageSize < 1 {
		input.PageSize = defaultPageSize
	}
	if input.PageSize > maxPageSize {
		input.PageSize = maxPageSize
	}

	filter := repository.ListFilter{
		Status:   input.Status,
		Search:   input.Search,
		Page:     input.Page,
		PageSize: input.PageSize,
	}
	if !actor.IsAdmin {
		actorID := actor.ID
		filter.AssignedTo = &actorID
	}

	leads, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, Page{}, apperr.Wrap(apperr.KindInternal, "failed to list leads", err)
	}

	totalPages := (total + input.PageSize - 1) / input.PageSize
	return leads, Page{
		Total:      total,
		Page:       input.Page,
		PageSize:   input.PageSize,
		TotalPages: totalPages,
	}, nil
}

// Get returns a single lead if the actor may see it.
func (s *Service) Get(ctx context.Context, actor Actor, leadID uuid.UUID) (repository.Lead, error) {
	lead, err := s.repo.GetByID(ctx, leadID)
	if err != nil {
		return repository.Lead{}, apperr.NotFound("lead not found")
	}

	if err := s.authorize(actor, lead); err != nil {
		return repository.Lead{}, err
	}

	return lead, nil
}

// Create adds a new lead to the pipeline. Non-admin actors are always the
// assignee of leads they create.
func (s *Service) Create(ctx context.Context, actor Actor, input CreateLeadInput) (repository.Lead, error) {
	if input.Status == "" {
		input.Status = "new"
	}

	assignedTo := input.AssignedTo
	if !actor.IsAdmin {
		actorID := actor.ID
		assignedTo = &actorID
	}

	lead := repository.Lead{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:       normalizePhone(input.Phone),
		Company:     input.Company,
		Source:      normalizeEnum(input.Source),
		Status:      strings.ToLower(input.Status),
		Priority:    normalizeEnum(input.Priority),
		Budget:      input.Budget,
		AssignedTo:  assignedTo,
		Notes:       input.Notes,
		LastContact: input.LastContact,
	}

	created, err := s.repo.Create(ctx, lead)
	if err != nil {
		return repository.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to create lead", err)
	}

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent:  events.NewBaseEvent(),
		LeadID:     created.ID,
		Name:       created.Name,
		Email:      created.Email,
		Source:     stringValue(created.Source),
		Status:     created.Status,
		AssignedTo: created.AssignedTo,
	})

	s.scheduleFollowUp(ctx, created)
	return created, nil
}

// Update applies a partial update to a lead the actor may modify.
func (s *Service) Update(ctx context.Context, actor Actor, leadID uuid.UUID, input UpdateLeadInput) (repository.Lead, error) {
	current, err := s.repo.GetByID(ctx, leadID)
	if err != nil {
		return repository.Lead{}, apperr.NotFound("lead not found")
	}

	if err := s.authorize(actor, current); err != nil {
		return repository.Lead{}, err
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		input.Email = &email
	}
	if input.Status != nil {
		status := strings.ToLower(*input.Status)
		input.Status = &status
	}
	if input.Phone != nil && *input.Phone != nil {
		normalized := phone.NormalizeE164(**input.Phone)
		*input.Phone = &normalized
	}

	updated, err := s.repo.Update(ctx, leadID, repository.UpdateFields{
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Company:     input.Company,
		Source:      input.Source,
		Status:      input.Status,
		Priority:    input.Priority,
		Budget:      input.Budget,
		AssignedTo:  input.AssignedTo,
		Notes:       input.Notes,
		LastContact: input.LastContact,
	})
	if err != nil {
		return repository.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to update lead", err)
	}

	if input.Status != nil && updated.Status != current.Status {
		s.bus.Publish(ctx, events.LeadStatusChanged{
			BaseEvent:      events.NewBaseEvent(),
			LeadID:         updated.ID,
			Name:           updated.Name,
			PreviousStatus: current.Status,
			NewStatus:      updated.Status,
			AssignedTo:     updated.AssignedTo,
		})
		s.scheduleFollowUp(ctx, updated)
	}

	if input.AssignedTo != nil && !uuidPtrEqual(current.AssignedTo, updated.AssignedTo) {
		s.bus.Publish(ctx, events.LeadAssigned{
			BaseEvent:     events.NewBaseEvent(),
			LeadID:        updated.ID,
			Name:          updated.Name,
			Status:        updated.Status,
			PreviousAgent: current.AssignedTo,
			NewAgent:      updated.AssignedTo,
			AssignedByID:  actor.ID,
		})
	}

	return updated, nil
}

// Delete removes a lead the actor may modify.
func (s *Service) Delete(ctx context.Context, actor Actor, leadID uuid.UUID) error {
	lead, err := s.repo.GetByID(ctx, leadID)
	if err != nil {
		return apperr.NotFound("lead not found")
	}

	if err := s.authorize(actor, lead); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, leadID); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete lead", err)
	}

	s.bus.Publish(ctx, events.LeadDeleted{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Name:      lead.Name,
		DeletedBy: actor.ID,
		DeletedAt: time.Now(),
	})

	return nil
}

func (s *Service) authorize(actor Actor, lead repository.Lead) error {
	if actor.IsAdmin {
		return nil
	}
	if lead.AssignedTo != nil && *lead.AssignedTo == actor.ID {
		return nil
	}
	return apperr.Forbidden("lead is not assigned to you")
}

func (s *Service) scheduleFollowUp(ctx context.Context, lead repository.Lead) {
	if s.reminders == nil {
		return
	}
	if lead.Status != "proposal" && lead.Status != "negotiation" {
		return
	}

	err := s.reminders.ScheduleFollowUpReminder(ctx, scheduler.FollowUpReminder{
		LeadID: lead.ID,
		Status: lead.Status,
	}, followUpDelay)
	if err != nil {
		s.log.Warn("failed to schedule follow-up reminder", "leadId", lead.ID, "error", err)
	}
}

func normalizePhone(value *string) *string {
	if value == nil {
		return nil
	}
	normalized := phone.NormalizeE164(*value)
	return &normalized
}

func normalizeEnum(value *string) *string {
	if value == nil {
		return nil
	}
	lowered := strings.ToLower(strings.TrimSpace(*value))
	return &lowered
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
