package transport

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Optional distinguishes an absent JSON field from an explicit null, so
// PATCH requests can clear nullable columns.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

type CreateLeadRequest struct {
	Name        string     `json:"name" validate:"required"`
	Email       string     `json:"email" validate:"required,email"`
	Phone       *string    `json:"phone"`
	Company     *string    `json:"company"`
	Source      *string    `json:"source"`
	Status      string     `json:"status" validate:"omitempty,oneof=new contacted qualified proposal negotiation won lost"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	Budget      *float64   `json:"budget" validate:"omitempty,gte=0"`
	AssignedTo  *uuid.UUID `json:"assignedTo"`
	Notes       *string    `json:"notes"`
	LastContact *time.Time `json:"lastContact"`
}

type UpdateLeadRequest struct {
	Name        *string             `json:"name" validate:"omitempty,min=1"`
	Email       *string             `json:"email" validate:"omitempty,email"`
	Phone       Optional[string]    `json:"phone"`
	Company     Optional[string]    `json:"company"`
	Source      Optional[string]    `json:"source"`
	Status      *string             `json:"status" validate:"omitempty,oneof=new contacted qualified proposal negotiation won lost"`
	Priority    Optional[string]    `json:"priority"`
	Budget      Optional[float64]   `json:"budget"`
	AssignedTo  Optional[uuid.UUID] `json:"assignedTo"`
	Notes       Optional[string]    `json:"notes"`
	LastContact Optional[time.Time] `json:"lastContact"`
}

type LeadResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       *string    `json:"phone"`
	Company     *string    `json:"company"`
	Source      *string    `json:"source"`
	Status      string     `json:"status"`
	Priority    *string    `json:"priority"`
	Budget      *float64   `json:"budget"`
	AssignedTo  *string    `json:"assignedTo"`
	Notes       *string    `json:"notes"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	LastContact *time.Time `json:"lastContact"`
}

type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type ListLeadsResponse struct {
	Leads      []LeadResponse `json:"leads"`
	Pagination Pagination     `json:"pagination"`
}
