package engine

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var greetingPattern = regexp.MustCompile(`^(hi|hello|hey|good morning|good afternoon)`)

// intent pairs a matcher with its response builder. Intents are evaluated
// in order; the first match wins.
type intent struct {
	match   func(message string) bool
	respond func(e *Engine, chatCtx ChatContext) ChatResponse
}

var intents = []intent{
	{
		match:   func(m string) bool { return greetingPattern.MatchString(m) },
		respond: (*Engine).respondGreeting,
	},
	{
		match:   func(m string) bool { return strings.Contains(m, "analyze") && strings.Contains(m, "lead") },
		respond: (*Engine).respondAnalyzeLead,
	},
	{
		match: func(m string) bool {
			return strings.Contains(m, "hot lead") || strings.Contains(m, "best lead")
		},
		respond: (*Engine).respondHotLeads,
	},
	{
		match:   func(m string) bool { return strings.Contains(m, "follow") },
		respond: (*Engine).respondFollowUpAdvice,
	},
	{
		match: func(m string) bool {
			return strings.Contains(m, "conversion") || strings.Contains(m, "convert")
		},
		respond: (*Engine).respondConversionTips,
	},
	{
		match:   func(m string) bool { return strings.Contains(m, "objection") },
		respond: (*Engine).respondObjectionHandling,
	},
	{
		match: func(m string) bool {
			return strings.Contains(m, "closing") || strings.Contains(m, "close deal")
		},
		respond: (*Engine).respondClosingTechniques,
	},
}

// ProcessMessage routes a chat message to the first matching intent and
// builds its response from the optional lead context.
func (e *Engine) ProcessMessage(message string, chatCtx ChatContext) ChatResponse {
	lowered := strings.ToLower(message)

	for _, candidate := range intents {
		if candidate.match(lowered) {
			return candidate.respond(e, chatCtx)
		}
	}

	return ChatResponse{
		Message: "I'm here to help with your sales process! Here are some things I can assist with:",
		Suggestions: []string{
			"Analyze my leads",
			"Show hot leads",
			"Follow-up best practices",
			"How to improve conversion?",
			"Objection handling tips",
			"Closing techniques",
		},
	}
}

func (e *Engine) respondGreeting(ChatContext) ChatResponse {
	return ChatResponse{
		Message: "Hello! I'm your AI Sales Assistant. I can help you with:\n\n" +
			"• Lead scoring and insights\n" +
			"• Follow-up recommendations\n" +
			"• Best time to call suggestions\n" +
			"• Conversion probability analysis\n" +
			"• Sales strategy tips\n\n" +
			"What would you like to know?",
		Suggestions: []string{
			"Analyze my leads",
			"Show hot leads",
			"Best practices for follow-ups",
			"How to improve conversion?",
		},
	}
}

func (e *Engine) respondAnalyzeLead(chatCtx ChatContext) ChatResponse {
	if chatCtx.CurrentLead == nil {
		return ChatResponse{
			Message:     "Please select a lead first, then I can provide detailed analysis.",
			Suggestions: []string{"Show all leads", "Filter hot leads", "Recent leads"},
		}
	}

	lead := *chatCtx.CurrentLead
	insight := e.Insight(lead)

	bullets := make([]string, 0, len(insight.Recommendations))
	for _, recommendation := range insight.Recommendations {
		bullets = append(bullets, "• "+recommendation)
	}

	return ChatResponse{
		Message: fmt.Sprintf("📊 **Lead Analysis: %s**\n\n"+
			"**Score:** %d/100 (%s)\n"+
			"**Conversion Probability:** %d%%\n"+
			"**Urgency:** %s\n\n"+
			"**Next Action:** %s\n\n"+
			"**Recommendations:**\n%s",
			lead.Name,
			insight.Score, insight.ScoreLabel,
			insight.ConversionProbability,
			strings.ToUpper(insight.Urgency),
			insight.NextAction,
			strings.Join(bullets, "\n"),
		),
		Insights: &insight,
	}
}

func (e *Engine) respondHotLeads(chatCtx ChatContext) ChatResponse {
	type scored struct {
		lead  Lead
		score int
	}

	hot := make([]scored, 0, len(chatCtx.Leads))
	for _, lead := range chatCtx.Leads {
		if score := e.Score(lead); score >= 70 {
			hot = append(hot, scored{lead: lead, score: score})
		}
	}
	sort.SliceStable(hot, func(i, j int) bool { return hot[i].score > hot[j].score })
	if len(hot) > 5 {
		hot = hot[:5]
	}

	if len(hot) == 0 {
		return ChatResponse{
			Message:     "No hot leads found at the moment. Focus on nurturing your existing leads to improve their scores.",
			Suggestions: []string{"How to improve lead scores?", "Lead nurturing tips", "Show all leads"},
		}
	}

	lines := make([]string, 0, len(hot))
	for i, item := range hot {
		lines = append(lines, fmt.Sprintf("%d. **%s** - Score: %d/100\n   Status: %s",
			i+1, item.lead.Name, item.score, item.lead.Status))
	}

	return ChatResponse{
		Message: fmt.Sprintf("🔥 **Top %d Hot Leads:**\n\n%s",
			len(hot), strings.Join(lines, "\n\n")),
		Suggestions: []string{"Analyze first lead", "Show follow-up tips", "Export hot leads"},
	}
}

func (e *Engine) respondFollowUpAdvice(ChatContext) ChatResponse {
	return ChatResponse{
		Message: "📞 **Follow-up Best Practices:**\n\n" +
			"**Timing:**\n" +
			"• First follow-up: Within 24 hours of initial contact\n" +
			"• Subsequent follow-ups: 2-3 days apart\n" +
			"• Best times: 10-11 AM or 2-4 PM\n\n" +
			"**Methods:**\n" +
			"• Day 1: Phone call\n" +
			"• Day 3: Email with value content\n" +
			"• Day 5: Phone + SMS\n" +
			"• Day 7: LinkedIn connection\n\n" +
			"**Key Tips:**\n" +
			"• Always provide value in each touchpoint\n" +
			"• Reference previous conversations\n" +
			"• Keep it short and action-oriented",
		Suggestions: []string{"Show overdue follow-ups", "Schedule follow-up", "Follow-up templates"},
	}
}

func (e *Engine) respondConversionTips(ChatContext) ChatResponse {
	return ChatResponse{
		Message: "📈 **Conversion Optimization Tips:**\n\n" +
			"**1. Speed to Lead**\n" +
			"Contact new leads within 5 minutes for 9x higher conversion\n\n" +
			"**2. Multi-touch Approach**\n" +
			"Use phone, email, and social media - 6-8 touches on average to convert\n\n" +
			"**3. Personalization**\n" +
			"Reference specific needs and pain points from discovery\n\n" +
			"**4. Social Proof**\n" +
			"Share relevant case studies and testimonials\n\n" +
			"**5. Create Urgency**\n" +
			"Limited-time offers or deadline-based incentives\n\n" +
			"**6. Handle Objections**\n" +
			"Prepare responses for common objections proactively",
		Suggestions: []string{"Show leads by stage", "Objection handling tips", "Closing techniques"},
	}
}

func (e *Engine) respondObjectionHandling(ChatContext) ChatResponse {
	return ChatResponse{
		Message: "🎯 **Common Objections & Responses:**\n\n" +
			"**\"It's too expensive\"**\n" +
			"→ Focus on ROI and value, not just cost. Break down cost per day/use.\n\n" +
			"**\"I need to think about it\"**\n" +
			"→ \"What specific concerns can I address right now?\"\n\n" +
			"**\"We're using a competitor\"**\n" +
			"→ Highlight unique differentiators, offer comparison or trial.\n\n" +
			"**\"Not the right time\"**\n" +
			"→ Schedule future follow-up, stay on their radar with value content.\n\n" +
			"**\"I need to check with my team\"**\n" +
			"→ Offer to present to the team or provide materials they can share.",
		Suggestions: []string{"More objection tips", "Closing techniques", "Negotiation strategies"},
	}
}

func (e *Engine) respondClosingTechniques(ChatContext) ChatResponse {
	return ChatResponse{
		Message: "🏆 **Effective Closing Techniques:**\n\n" +
			"**1. Assumptive Close**\n" +
			"\"Should we proceed with the standard or premium package?\"\n\n" +
			"**2. Urgency Close**\n" +
			"\"This pricing is available until Friday - shall we lock it in?\"\n\n" +
			"**3. Summary Close**\n" +
			"Recap all benefits and value before asking for commitment\n\n" +
			"**4. Question Close**\n" +
			"\"Is there any reason we shouldn't move forward today?\"\n\n" +
			"**5. Trial Close**\n" +
			"\"How does this solution sound so far?\" - gauge readiness",
		Suggestions: []string{"Negotiation tips", "Handle price objections", "Post-close follow-up"},
	}
}
