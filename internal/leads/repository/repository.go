// Package repository provides data access for the leads bounded context.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a lead does not exist.
var ErrNotFound = errors.New("lead not found")

// Lead is a sales pipeline lead row.
type Lead struct {
	ID          uuid.UUID
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
	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastContact *time.Time
}

// ListFilter narrows and paginates lead listings.
// AssignedTo scopes visibility for non-admin callers.
type ListFilter struct {
	AssignedTo *uuid.UUID
	Status     string
	Search     string
	Page       int
	PageSize   int
}

// UpdateFields holds optional fields for a partial update.
// Nil fields are left unchanged. Pointer-to-pointer fields allow
// explicitly clearing a nullable column.
type UpdateFields struct {
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

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const leadColumns = `id, name, email, phone, company, source, status, priority, budget,
	assigned_to, notes, created_at, updated_at, last_contact`

// List returns a page of leads matching the filter plus the total match count,
// most recently updated first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Lead, int, error) {
	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)

	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		conditions = append(conditions, fmt.Sprintf("assigned_to = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d OR company ILIKE $%d)", len(args), len(args), len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM leads"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	args = append(args, filter.PageSize, offset)
	query := fmt.Sprintf(
		"SELECT %s FROM leads%s ORDER BY updated_at DESC LIMIT $%d OFFSET $%d",
		leadColumns, where, len(args)-1, len(args),
	)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	leads := make([]Lead, 0, filter.PageSize)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, lead)
	}

	return leads, total, rows.Err()
}

// ListRecent returns up to limit leads ordered by updated_at descending.
// When assignedTo is non-nil, only that agent's leads are returned.
func (r *Repository) ListRecent(ctx context.Context, assignedTo *uuid.UUID, limit int) ([]Lead, error) {
	args := make([]interface{}, 0, 2)
	where := ""
	if assignedTo != nil {
		args = append(args, *assignedTo)
		where = fmt.Sprintf(" WHERE assigned_to = $%d", len(args))
	}

	args = append(args, limit)
	query := fmt.Sprintf(
		"SELECT %s FROM leads%s ORDER BY updated_at DESC LIMIT $%d",
		leadColumns, where, len(args),
	)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]Lead, 0, limit)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, leadID uuid.UUID) (Lead, error) {
	query := fmt.Sprintf("SELECT %s FROM leads WHERE id = $1", leadColumns)
	return scanLead(r.pool.QueryRow(ctx, query, leadID))
}

func (r *Repository) Create(ctx context.Context, lead Lead) (Lead, error) {
	query := fmt.Sprintf(`
		INSERT INTO leads (id, name, email, phone, company, source, status, priority, budget,
			assigned_to, notes, last_contact)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING %s`, leadColumns)

	return scanLead(r.pool.QueryRow(ctx, query,
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.Company, lead.Source,
		lead.Status, lead.Priority, lead.Budget, lead.AssignedTo, lead.Notes, lead.LastContact,
	))
}

// Update applies the non-nil fields and returns the updated row.
func (r *Repository) Update(ctx context.Context, leadID uuid.UUID, fields UpdateFields) (Lead, error) {
	sets := make([]string, 0, 11)
	args := []interface{}{leadID}

	appendSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if fields.Name != nil {
		appendSet("name", *fields.Name)
	}
	if fields.Email != nil {
		appendSet("email", *fields.Email)
	}
	if fields.Phone != nil {
		appendSet("phone", *fields.Phone)
	}
	if fields.Company != nil {
		appendSet("company", *fields.Company)
	}
	if fields.Source != nil {
		appendSet("source", *fields.Source)
	}
	if fields.Status != nil {
		appendSet("status", *fields.Status)
	}
	if fields.Priority != nil {
		appendSet("priority", *fields.Priority)
	}
	if fields.Budget != nil {
		appendSet("budget", *fields.Budget)
	}
	if fields.AssignedTo != nil {
		appendSet("assigned_to", *fields.AssignedTo)
	}
	if fields.Notes != nil {
		appendSet("notes", *fields.Notes)
	}
	if fields.LastContact != nil {
		appendSet("last_contact", *fields.LastContact)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, leadID)
	}

	sets = append(sets, "updated_at = now()")
	query := fmt.Sprintf(
		"UPDATE leads SET %s WHERE id = $1 RETURNING %s",
		strings.Join(sets, ", "), leadColumns,
	)

	return scanLead(r.pool.QueryRow(ctx, query, args...))
}

func (r *Repository) Delete(ctx context.Context, leadID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM leads WHERE id = $1", leadID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Company,
		&lead.Source,
		&lead.Status,
		&lead.Priority,
		&lead.Budget,
		&lead.AssignedTo,
		&lead.Notes,
		&lead.CreatedAt,
		&lead.UpdatedAt,
		&lead.LastContact,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}
