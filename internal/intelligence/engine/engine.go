package engine

import (
	"fmt"
	"math"
	"strings"
	"time"

	"salescrm_backend/platform/clock"
)

// Engine computes lead insights. It is stateless and safe for
// concurrent use; the clock is injected for deterministic tests.
type Engine struct {
	clock clock.Clock
}

func New(clk clock.Clock) *Engine {
	return &Engine{clock: clk}
}

// Score rates a lead 0-100 from contact completeness, budget, recency of
// activity, and acquisition source quality.
func (e *Engine) Score(lead Lead) int {
	score := 0.0

	if lead.Email != "" {
		score += weightHasEmail
	}
	if lead.Phone != "" {
		score += weightHasPhone
	}
	if lead.Company != "" {
		score += weightHasCompany
	}

	if lead.Budget > 0 {
		score += math.Min(lead.Budget/budgetCeiling, 1) * weightHasBudget
	}

	if lead.UpdatedAt != nil {
		switch days := e.daysBetween(*lead.UpdatedAt); {
		case days <= 1:
			score += weightRecency
		case days <= 3:
			score += weightRecency * 0.8
		case days <= 7:
			score += weightRecency * 0.5
		}
	}

	quality, ok := sourceQuality[strings.ToLower(lead.Source)]
	if !ok {
		quality = defaultSourceQuality
	}
	score += (quality / 100) * weightSourceQuality

	return int(math.Min(math.Round(score), 100))
}

// ScoreLabel names a score band.
func (e *Engine) ScoreLabel(score int) string {
	switch {
	case score >= 80:
		return "Hot Lead"
	case score >= 60:
		return "Warm Lead"
	case score >= 40:
		return "Nurturing"
	default:
		return "Cold Lead"
	}
}

// ConversionProbability blends pipeline progression (60%) with the lead
// score (40%).
func (e *Engine) ConversionProbability(lead Lead) int {
	statusScore, ok := statusScores[strings.ToLower(lead.Status)]
	if !ok {
		statusScore = defaultStatusScore
	}

	probability := statusScore*0.6 + float64(e.Score(lead))*0.4
	return int(math.Round(probability))
}

// Urgency classifies how soon a lead needs attention. Late-stage leads go
// critical quickly; any lead untouched for over a week is at least medium.
func (e *Engine) Urgency(lead Lead) string {
	days := e.daysSinceContact(lead)
	status := strings.ToLower(lead.Status)

	if status == "negotiation" && days > 2 {
		return UrgencyCritical
	}
	if status == "proposal" && days > 3 {
		return UrgencyCritical
	}
	if status == "qualified" && days > 2 {
		return UrgencyHigh
	}
	if status == "contacted" && days > 5 {
		return UrgencyHigh
	}
	if days > 7 {
		return UrgencyMedium
	}

	return UrgencyLow
}

// Recommendations returns up to five pieces of advice, most fundamental first.
func (e *Engine) Recommendations(lead Lead) []string {
	recommendations := make([]string, 0, 8)
	days := e.daysSinceContact(lead)
	status := strings.ToLower(lead.Status)

	if lead.Phone == "" {
		recommendations = append(recommendations, "Request phone number for faster communication")
	}
	if lead.Company == "" {
		recommendations = append(recommendations, "Identify company details for better qualification")
	}

	recommendations = append(recommendations, statusRecommendations[status]...)

	if days > 7 && status != "won" && status != "lost" {
		recommendations = append(recommendations,
			fmt.Sprintf("It's been %d days since last contact - reach out today!", days))
	}

	if lead.Budget <= 0 {
		recommendations = append(recommendations, "Qualify budget during next conversation")
	}

	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}
	return recommendations
}

// BestTimeToCall suggests a calling window based on the current hour.
func (e *Engine) BestTimeToCall() string {
	hour := e.clock.Now().Hour()

	switch {
	case hour < 9:
		return "Best time to call: 10:00 AM - 11:30 AM (Morning productivity window)"
	case hour < 12:
		return "Good time to call now! Morning hours have high answer rates"
	case hour < 14:
		return "Best time to call: 2:00 PM - 4:00 PM (Post-lunch productivity)"
	case hour < 17:
		return "Good time to call now! Afternoon decision-making hours"
	default:
		return "Best time to call: Tomorrow 10:00 AM - 11:30 AM"
	}
}

// NextAction names the single most useful thing to do for a lead.
func (e *Engine) NextAction(lead Lead) string {
	status := strings.ToLower(lead.Status)
	days := e.daysSinceContact(lead)

	switch {
	case status == "new":
		return "Make initial contact call"
	case status == "contacted" && days > 2:
		return "Send follow-up email with value proposition"
	case status == "contacted":
		return "Schedule discovery meeting"
	case status == "qualified":
		return "Prepare and send proposal"
	case status == "proposal" && days > 1:
		return "Follow up on proposal status"
	case status == "proposal":
		return "Wait for response, prepare negotiation strategy"
	case status == "negotiation":
		return "Close the deal - finalize terms"
	default:
		return "Review lead status and update CRM"
	}
}

// RiskFactors lists everything threatening the deal. Rules are independent;
// a long-neglected lead triggers both staleness warnings.
func (e *Engine) RiskFactors(lead Lead) []string {
	risks := make([]string, 0, 5)
	days := e.daysSinceContact(lead)
	status := strings.ToLower(lead.Status)

	if days > 14 {
		risks = append(risks, "Lead going cold - no contact in 2+ weeks")
	}
	if days > 7 {
		risks = append(risks, "Risk of losing interest - follow up needed")
	}
	if lead.Phone == "" && lead.Email == "" {
		risks = append(risks, "No contact information available")
	}
	if status == "proposal" && days > 5 {
		risks = append(risks, "Proposal may be stale - competitor risk")
	}
	if strings.ToLower(lead.Priority) == "low" && status == "qualified" {
		risks = append(risks, "Low priority qualified lead - may lose momentum")
	}

	return risks
}

// Opportunities lists positive signals worth acting on.
func (e *Engine) Opportunities(lead Lead) []string {
	opportunities := make([]string, 0, 5)
	status := strings.ToLower(lead.Status)

	if lead.Budget > 50000 {
		opportunities = append(opportunities, "High-value opportunity - prioritize personal attention")
	}
	if strings.ToLower(lead.Source) == "referral" {
		opportunities = append(opportunities, "Referral lead - higher trust, faster close potential")
	}
	if lead.Company != "" {
		opportunities = append(opportunities, "B2B opportunity - potential for larger deal size")
	}
	if status == "qualified" || status == "proposal" {
		opportunities = append(opportunities, "Advanced stage - focus on closing")
	}
	if lead.CreatedAt != nil && e.daysBetween(*lead.CreatedAt) < 3 {
		opportunities = append(opportunities, "Fresh lead - strike while interest is high")
	}

	return opportunities
}

// Insight assembles the complete analysis for one lead.
func (e *Engine) Insight(lead Lead) Insight {
	score := e.Score(lead)

	return Insight{
		Score:                 score,
		ScoreLabel:            e.ScoreLabel(score),
		ConversionProbability: e.ConversionProbability(lead),
		Urgency:               e.Urgency(lead),
		Recommendations:       e.Recommendations(lead),
		BestTimeToCall:        e.BestTimeToCall(),
		NextAction:            e.NextAction(lead),
		RiskFactors:           e.RiskFactors(lead),
		Opportunities:         e.Opportunities(lead),
	}
}

// DashboardInsights aggregates scores and urgency across all leads.
func (e *Engine) DashboardInsights(leads []Lead) DashboardSummary {
	if len(leads) == 0 {
		return DashboardSummary{
			TopRecommendation: "Start by adding new leads to your pipeline",
		}
	}

	scoreSum := 0
	hotLeads := 0
	needsAttention := 0
	for _, lead := range leads {
		score := e.Score(lead)
		scoreSum += score
		if score >= 70 {
			hotLeads++
		}
		urgency := e.Urgency(lead)
		if urgency == UrgencyHigh || urgency == UrgencyCritical {
			needsAttention++
		}
	}

	avgScore := int(math.Round(float64(scoreSum) / float64(len(leads))))

	var topRecommendation string
	switch {
	case needsAttention > 0:
		topRecommendation = fmt.Sprintf("%d leads need immediate attention - follow up today!", needsAttention)
	case hotLeads > 0:
		topRecommendation = fmt.Sprintf("Focus on your %d hot leads to maximize conversions", hotLeads)
	default:
		topRecommendation = "Nurture your leads with valuable content and regular follow-ups"
	}

	return DashboardSummary{
		TotalLeads:        len(leads),
		HotLeads:          hotLeads,
		NeedsAttention:    needsAttention,
		AvgScore:          avgScore,
		TopRecommendation: topRecommendation,
	}
}

// daysSinceContact measures from the last contact, falling back to the
// creation time, then to now (yielding zero).
func (e *Engine) daysSinceContact(lead Lead) int {
	reference := e.clock.Now()
	if lead.LastContact != nil {
		reference = *lead.LastContact
	} else if lead.CreatedAt != nil {
		reference = *lead.CreatedAt
	}
	return e.daysBetween(reference)
}

// daysBetween counts calendar-agnostic 24h periods between t and now,
// rounding any partial day up. Two instants on the same day still count
// as one day apart unless they are identical.
func (e *Engine) daysBetween(t time.Time) int {
	diff := e.clock.Now().Sub(t)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}
