package transport

import (
	"time"

	"salescrm_backend/internal/intelligence/engine"

	"github.com/google/uuid"
)

type ChatRequest struct {
	Message string     `json:"message" validate:"required"`
	LeadID  *uuid.UUID `json:"leadId,omitempty"`
}

type LeadResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	Company     string     `json:"company,omitempty"`
	Source      string     `json:"source,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority,omitempty"`
	Budget      float64    `json:"budget,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	LastContact *time.Time `json:"lastContact,omitempty"`
}

type InsightResponse struct {
	Lead    LeadResponse   `json:"lead"`
	Insight engine.Insight `json:"insight"`
}

type UrgentLead struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Urgency    string `json:"urgency"`
	NextAction string `json:"nextAction"`
}

type HotLead struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Status string `json:"status"`
}

type DashboardResponse struct {
	engine.DashboardSummary
	UrgentLeads []UrgentLead `json:"urgentLeads"`
	HotLeads    []HotLead    `json:"hotLeads"`
}

type LeadAnalysis struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	Email                 string `json:"email"`
	Status                string `json:"status"`
	Score                 int    `json:"score"`
	ScoreLabel            string `json:"scoreLabel"`
	ConversionProbability int    `json:"conversionProbability"`
	Urgency               string `json:"urgency"`
	NextAction            string `json:"nextAction"`
}

type AnalysisResponse struct {
	TotalAnalyzed int            `json:"totalAnalyzed"`
	Leads         []LeadAnalysis `json:"leads"`
}

func ToLeadResponse(lead engine.Lead) LeadResponse {
	return LeadResponse{
		ID:          lead.ID.String(),
		Name:        lead.Name,
		Email:       lead.Email,
		Phone:       lead.Phone,
		Company:     lead.Company,
		Source:      lead.Source,
		Status:      lead.Status,
		Priority:    lead.Priority,
		Budget:      lead.Budget,
		CreatedAt:   lead.CreatedAt,
		UpdatedAt:   lead.UpdatedAt,
		LastContact: lead.LastContact,
	}
}
