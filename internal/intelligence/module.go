// Package intelligence provides the lead intelligence bounded context:
// lead scoring, urgency assessment, recommendations, dashboard aggregates,
// and the sales assistant chat.
package intelligence

import (
	"salescrm_backend/internal/intelligence/engine"
	"salescrm_backend/internal/intelligence/handler"
	apphttp "salescrm_backend/internal/http"
	"salescrm_backend/platform/clock"
	"salescrm_backend/platform/validator"
)

// Module is the intelligence bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	engine  *engine.Engine
}

// NewModule creates the intelligence module. Leads flow in through the
// LeadSource port so this context stays decoupled from lead storage.
func NewModule(leads engine.LeadSource, clk clock.Clock, val *validator.Validator) *Module {
	eng := engine.New(clk)

	return &Module{
		handler: handler.New(eng, leads, val),
		engine:  eng,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "intelligence"
}

// Engine exposes the insight engine for other modules (e.g. the follow-up
// reminder worker computes next actions with it).
func (m *Module) Engine() *engine.Engine {
	return m.engine
}

// RegisterRoutes mounts intelligence routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.POST("/assistant/chat", m.handler.Chat)
	ctx.Protected.GET("/assistant/dashboard", m.handler.Dashboard)
	ctx.Protected.GET("/assistant/analysis", m.handler.Analysis)
	ctx.Protected.GET("/leads/:id/insight", m.handler.LeadInsight)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
