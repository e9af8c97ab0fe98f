package handler

import (
	"net/http"
	"strconv"
	"strings"

	"salescrm_backend/internal/leads/repository"
	"salescrm_backend/internal/leads/service"
	"salescrm_backend/internal/leads/transport"
	"salescrm_backend/platform/httpkit"
	"salescrm_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/leads", h.List)
	rg.GET("/leads/:id", h.Get)
	rg.POST("/leads", h.Create)
	rg.PATCH("/leads/:id", h.Update)
	rg.DELETE("/leads/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	input := service.ListInput{
		Status: strings.ToLower(strings.TrimSpace(c.Query("status"))),
		Search: strings.TrimSpace(c.Query("search")),
		Page:   parseIntDefault(c.Query("page"), 1),
		// "limit" matches the page-size query param used by the web client
		PageSize: parseIntDefault(c.Query("limit"), 20),
	}

	leads, page, err := h.svc.List(c.Request.Context(), actor, input)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.ListLeadsResponse{
		Leads: make([]transport.LeadResponse, 0, len(leads)),
		Pagination: transport.Pagination{
			Total:      page.Total,
			Page:       page.Page,
			Limit:      page.PageSize,
			TotalPages: page.TotalPages,
		},
	}
	for _, lead := range leads {
		resp.Leads = append(resp.Leads, toLeadResponse(lead))
	}

	httpkit.OK(c, resp)
}

func (h *Handler) Get(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	lead, err := h.svc.Get(c.Request.Context(), actor, leadID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"lead": toLeadResponse(lead)})
}

func (h *Handler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.Create(c.Request.Context(), actor, service.CreateLeadInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Company:     req.Company,
		Source:      req.Source,
		Status:      req.Status,
		Priority:    req.Priority,
		Budget:      req.Budget,
		AssignedTo:  req.AssignedTo,
		Notes:       req.Notes,
		LastContact: req.LastContact,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, gin.H{
		"message": "lead created successfully",
		"lead":    toLeadResponse(lead),
	})
}

func (h *Handler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.Update(c.Request.Context(), actor, leadID, service.UpdateLeadInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       optional(req.Phone),
		Company:     optional(req.Company),
		Source:      optional(req.Source),
		Status:      req.Status,
		Priority:    optional(req.Priority),
		Budget:      optional(req.Budget),
		AssignedTo:  optional(req.AssignedTo),
		Notes:       optional(req.Notes),
		LastContact: optional(req.LastContact),
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{
		"message": "lead updated successfully",
		"lead":    toLeadResponse(lead),
	})
}

func (h *Handler) Delete(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), actor, leadID); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"message": "lead deleted successfully"})
}

func actorFrom(c *gin.Context) (service.Actor, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return service.Actor{}, false
	}
	return service.Actor{
		ID:      identity.UserID(),
		IsAdmin: identity.HasRole("admin"),
	}, true
}

// optional converts a tri-state JSON field into the repository's update
// shape: nil means "leave unchanged", a non-nil outer pointer sets the
// field, possibly to null.
func optional[T any](o transport.Optional[T]) **T {
	if !o.Set {
		return nil
	}
	value := o.Value
	return &value
}

func parseIntDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func toLeadResponse(lead repository.Lead) transport.LeadResponse {
	var assignedTo *string
	if lead.AssignedTo != nil {
		id := lead.AssignedTo.String()
		assignedTo = &id
	}

	return transport.LeadResponse{
		ID:          lead.ID.String(),
		Name:        lead.Name,
		Email:       lead.Email,
		Phone:       lead.Phone,
		Company:     lead.Company,
		Source:      lead.Source,
		Status:      lead.Status,
		Priority:    lead.Priority,
		Budget:      lead.Budget,
		AssignedTo:  assignedTo,
		Notes:       lead.Notes,
		CreatedAt:   lead.CreatedAt,
		UpdatedAt:   lead.UpdatedAt,
		LastContact: lead.LastContact,
	}
}
