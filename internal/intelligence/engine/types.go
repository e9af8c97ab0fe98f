// Package engine implements the rule-based lead intelligence engine:
// scoring, urgency classification, recommendations, and the sales
// assistant chat responder. The engine is pure; its only external input
// besides the lead snapshot is an injectable clock.
package engine

import (
	"time"

	"github.com/google/uuid"
)

// Lead is the engine's input snapshot of a pipeline lead. Every field
// except Name and Status may be absent; the engine is total over any
// combination of missing fields.
type Lead struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Phone       string
	Company     string
	Source      string
	Status      string
	Priority    string
	Budget      float64
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
	LastContact *time.Time
}

// Urgency levels, ordered from least to most pressing.
const (
	UrgencyLow      = "low"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

// Insight is the full per-lead analysis.
type Insight struct {
	Score                 int      `json:"score"`
	ScoreLabel            string   `json:"scoreLabel"`
	ConversionProbability int      `json:"conversionProbability"`
	Urgency               string   `json:"urgency"`
	Recommendations       []string `json:"recommendations"`
	BestTimeToCall        string   `json:"bestTimeToCall"`
	NextAction            string   `json:"nextAction"`
	RiskFactors           []string `json:"riskFactors"`
	Opportunities         []string `json:"opportunities"`
}

// DashboardSummary aggregates insights across a set of leads.
type DashboardSummary struct {
	TotalLeads        int    `json:"totalLeads"`
	HotLeads          int    `json:"hotLeads"`
	NeedsAttention    int    `json:"needsAttention"`
	AvgScore          int    `json:"avgScore"`
	TopRecommendation string `json:"topRecommendation"`
}

// ChatContext carries the optional lead context for the chat responder.
type ChatContext struct {
	CurrentLead *Lead
	Leads       []Lead
}

// ChatResponse is the assistant's reply to a chat message.
type ChatResponse struct {
	Message     string      `json:"message"`
	Insights    *Insight    `json:"insights,omitempty"`
	Suggestions []string    `json:"suggestions,omitempty"`
	Data        interface{} `json:"data,omitempty"`
}
