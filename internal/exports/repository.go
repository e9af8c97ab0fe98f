// Package exports provides CSV exports of pipeline data for reporting.
package exports

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LeadRow is one flattened lead record for export, with the assignee's
// name resolved.
type LeadRow struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Phone       *string
	Company     *string
	Source      *string
	Status      string
	Priority    *string
	Budget      *float64
	AgentName   *string
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastContact *time.Time
}

// Filter narrows which leads are exported.
type Filter struct {
	Status string
	From   *time.Time
	To     *time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListLeads returns all leads matching the filter, newest first.
func (r *Repository) ListLeads(ctx context.Context, filter Filter) ([]LeadRow, error) {
	query := `
		SELECT l.id, l.name, l.email, l.phone, l.company, l.source, l.status,
		       l.priority, l.budget, u.name, l.notes, l.created_at, l.updated_at,
		       l.last_contact
		FROM leads l
		LEFT JOIN users u ON u.id = l.assigned_to
		WHERE 1=1`
	args := make([]any, 0, 3)

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += " AND l.status = $" + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += " AND l.created_at >= $" + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += " AND l.created_at < $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY l.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]LeadRow, 0, 64)
	for rows.Next() {
		var row LeadRow
		if err := rows.Scan(
			&row.ID, &row.Name, &row.Email, &row.Phone, &row.Company,
			&row.Source, &row.Status, &row.Priority, &row.Budget,
			&row.AgentName, &row.Notes, &row.CreatedAt, &row.UpdatedAt,
			&row.LastContact,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
