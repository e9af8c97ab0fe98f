package handler

import (
	"context"
	"errors"
	"net/http"
	"sort"

	"salescrm_backend/internal/intelligence/engine"
	"salescrm_backend/internal/intelligence/transport"
	"salescrm_backend/platform/httpkit"
	"salescrm_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"

	// chatContextLimit bounds how many recent leads feed the chat context.
	chatContextLimit = 50
	// analysisLimit bounds the bulk analysis endpoint.
	analysisLimit = 100
)

type Handler struct {
	engine *engine.Engine
	leads  engine.LeadSource
	val    *validator.Validator
}

func New(engine *engine.Engine, leads engine.LeadSource, val *validator.Validator) *Handler {
	return &Handler{engine: engine, leads: leads, val: val}
}

// Chat answers an assistant message, optionally in the context of one lead
// plus the caller's recent leads.
func (h *Handler) Chat(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	chatCtx := engine.ChatContext{}

	if req.LeadID != nil {
		// A stale or foreign lead ID simply yields no lead context.
		if lead, err := h.leads.GetLead(c.Request.Context(), *req.LeadID); err == nil {
			chatCtx.CurrentLead = &lead
		}
	}

	leads, err := h.listVisibleLeads(c.Request.Context(), identity, chatContextLimit)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to process message", nil)
		return
	}
	chatCtx.Leads = leads

	httpkit.OK(c, h.engine.ProcessMessage(req.Message, chatCtx))
}

// LeadInsight returns the full analysis for one lead.
func (h *Handler) LeadInsight(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	lead, err := h.leads.GetLead(c.Request.Context(), leadID)
	if err != nil {
		if errors.Is(err, engine.ErrLeadNotFound) {
			httpkit.Error(c, http.StatusNotFound, "lead not found", nil)
			return
		}
		httpkit.Error(c, http.StatusInternalServerError, "failed to get lead insight", nil)
		return
	}

	httpkit.OK(c, transport.InsightResponse{
		Lead:    transport.ToLeadResponse(lead),
		Insight: h.engine.Insight(lead),
	})
}

// Dashboard returns aggregate insights plus the most urgent and hottest leads.
func (h *Handler) Dashboard(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	leads, err := h.listVisibleLeads(c.Request.Context(), identity, 0)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to get dashboard insights", nil)
		return
	}

	resp := transport.DashboardResponse{
		DashboardSummary: h.engine.DashboardInsights(leads),
		UrgentLeads:      make([]transport.UrgentLead, 0, 5),
		HotLeads:         make([]transport.HotLead, 0, 5),
	}

	for _, lead := range leads {
		if len(resp.UrgentLeads) >= 5 {
			break
		}
		urgency := h.engine.Urgency(lead)
		if urgency != engine.UrgencyHigh && urgency != engine.UrgencyCritical {
			continue
		}
		resp.UrgentLeads = append(resp.UrgentLeads, transport.UrgentLead{
			ID:         lead.ID.String(),
			Name:       lead.Name,
			Status:     lead.Status,
			Urgency:    urgency,
			NextAction: h.engine.NextAction(lead),
		})
	}

	type scored struct {
		lead  engine.Lead
		score int
	}
	hot := make([]scored, 0, len(leads))
	for _, lead := range leads {
		if score := h.engine.Score(lead); score >= 70 {
			hot = append(hot, scored{lead: lead, score: score})
		}
	}
	sort.SliceStable(hot, func(i, j int) bool { return hot[i].score > hot[j].score })
	if len(hot) > 5 {
		hot = hot[:5]
	}
	for _, item := range hot {
		resp.HotLeads = append(resp.HotLeads, transport.HotLead{
			ID:     item.lead.ID.String(),
			Name:   item.lead.Name,
			Score:  item.score,
			Status: item.lead.Status,
		})
	}

	httpkit.OK(c, resp)
}

// Analysis scores every visible lead and returns them ranked.
func (h *Handler) Analysis(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	leads, err := h.listVisibleLeads(c.Request.Context(), identity, analysisLimit)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to analyze leads", nil)
		return
	}

	analysis := make([]transport.LeadAnalysis, 0, len(leads))
	for _, lead := range leads {
		insight := h.engine.Insight(lead)
		analysis = append(analysis, transport.LeadAnalysis{
			ID:                    lead.ID.String(),
			Name:                  lead.Name,
			Email:                 lead.Email,
			Status:                lead.Status,
			Score:                 insight.Score,
			ScoreLabel:            insight.ScoreLabel,
			ConversionProbability: insight.ConversionProbability,
			Urgency:               insight.Urgency,
			NextAction:            insight.NextAction,
		})
	}

	sort.SliceStable(analysis, func(i, j int) bool { return analysis[i].Score > analysis[j].Score })

	httpkit.OK(c, transport.AnalysisResponse{
		TotalAnalyzed: len(analysis),
		Leads:         analysis,
	})
}

// listVisibleLeads scopes lead access: admins see everything, agents only
// their assigned leads.
func (h *Handler) listVisibleLeads(ctx context.Context, identity httpkit.Identity, limit int) ([]engine.Lead, error) {
	var assignedTo *uuid.UUID
	if !identity.HasRole("admin") {
		userID := identity.UserID()
		assignedTo = &userID
	}
	return h.leads.ListLeads(ctx, assignedTo, limit)
}
