package engine

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"salescrm_backend/platform/clock"
)

var testNow = time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return New(clock.Fixed{Time: testNow})
}

func hoursAgo(h int) *time.Time {
	t := testNow.Add(-time.Duration(h) * time.Hour)
	return &t
}

func daysAgo(d int) *time.Time {
	return hoursAgo(d * 24)
}

func TestScore_BareLeadGetsOnlyDefaultSourceQuality(t *testing.T) {
	e := newTestEngine()

	// No contact info, no budget, no activity: only the default source
	// quality contributes, (50/100)*15 = 7.5 rounded to 8.
	got := e.Score(Lead{Name: "Bare", Status: "new"})
	if got != 8 {
		t.Fatalf("expected score 8, got %d", got)
	}
}

func TestScore_FullyQualifiedReferralLead(t *testing.T) {
	e := newTestEngine()

	lead := Lead{
		Name:      "Full",
		Email:     "full@example.com",
		Phone:     "+31612345678",
		Company:   "Acme BV",
		Source:    "referral",
		Status:    "qualified",
		Budget:    10000,
		UpdatedAt: hoursAgo(0),
	}

	// 10 email + 15 phone + 10 company + 20 budget + 15 recency + 15 source.
	if got := e.Score(lead); got != 85 {
		t.Fatalf("expected score 85, got %d", got)
	}
}

func TestScore_BudgetScalesLinearlyUpToCeiling(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		budget float64
		want   int
	}{
		{0, 8},       // no budget component, default source only
		{5000, 18},   // half the ceiling, 10 of 20 points
		{10000, 28},  // full 20 points
		{250000, 28}, // capped at the ceiling
	}

	for _, tc := range tests {
		got := e.Score(Lead{Name: "B", Status: "new", Budget: tc.budget})
		if got != tc.want {
			t.Fatalf("budget %.0f: expected score %d, got %d", tc.budget, tc.want, got)
		}
	}
}

func TestScore_RecencyBands(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name      string
		updatedAt *time.Time
		want      int
	}{
		{"same instant", hoursAgo(0), 23}, // full 15 + 7.5 source
		{"one hour ago rounds up to a day", hoursAgo(1), 23},
		{"two days ago", daysAgo(2), 20},         // 15*0.8 + 7.5 source
		{"just over two days", hoursAgo(49), 20}, // ceil to 3, still the 0.8 band
		{"five days ago", daysAgo(5), 15},        // 7.5 recency + 7.5 source
		{"ten days ago", daysAgo(10), 8},         // recency expired
		{"never updated", nil, 8},
	}

	for _, tc := range tests {
		got := e.Score(Lead{Name: "R", Status: "new", UpdatedAt: tc.updatedAt})
		if got != tc.want {
			t.Fatalf("%s: expected score %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestScore_SourceQualityTable(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		source string
		want   int
	}{
		{"referral", 15},
		{"website", 12},
		{"linkedin", 11}, // 75/100*15 = 11.25 rounds down
		{"google_ads", 11}, // 70/100*15 = 10.5 rounds to 11
		{"facebook", 9},
		{"cold_call", 6},
		{"other", 8}, // 7.5 rounds to 8
		{"", 8},
		{"carrier_pigeon", 8},
		{"Referral", 15}, // matching is case-insensitive
	}

	for _, tc := range tests {
		got := e.Score(Lead{Name: "S", Status: "new", Source: tc.source})
		if got != tc.want {
			t.Fatalf("source %q: expected score %d, got %d", tc.source, tc.want, got)
		}
	}
}

func TestScoreLabel_Bands(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		score int
		want  string
	}{
		{100, "Hot Lead"},
		{80, "Hot Lead"},
		{79, "Warm Lead"},
		{60, "Warm Lead"},
		{59, "Nurturing"},
		{40, "Nurturing"},
		{39, "Cold Lead"},
		{0, "Cold Lead"},
	}

	for _, tc := range tests {
		if got := e.ScoreLabel(tc.score); got != tc.want {
			t.Fatalf("score %d: expected label %q, got %q", tc.score, tc.want, got)
		}
	}
}

func TestConversionProbability_BlendsStatusAndScore(t *testing.T) {
	e := newTestEngine()

	// Bare lead scores 8, so probability = status*0.6 + 8*0.4.
	tests := []struct {
		status string
		want   int
	}{
		{"new", 15},         // 12 + 3.2
		{"contacted", 27},   // 24 + 3.2
		{"qualified", 39},   // 36 + 3.2
		{"proposal", 48},    // 45 + 3.2
		{"negotiation", 54}, // 51 + 3.2
		{"won", 63},         // 60 + 3.2
		{"lost", 3},         // 0 + 3.2, lost zeroes the status component
		{"mystery", 15},     // unknown falls back to the "new" score
	}

	for _, tc := range tests {
		got := e.ConversionProbability(Lead{Name: "C", Status: tc.status})
		if got != tc.want {
			t.Fatalf("status %q: expected probability %d, got %d", tc.status, tc.want, got)
		}
	}
}

func TestUrgency_RuleOrder(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name        string
		status      string
		lastContact *time.Time
		want        string
	}{
		{"negotiation stale", "negotiation", daysAgo(3), UrgencyCritical},
		{"negotiation within window", "negotiation", daysAgo(2), UrgencyLow},
		{"negotiation long stale stays critical", "negotiation", daysAgo(30), UrgencyCritical},
		{"proposal stale", "proposal", daysAgo(4), UrgencyCritical},
		{"proposal within window", "proposal", daysAgo(3), UrgencyLow},
		{"qualified stale", "qualified", daysAgo(3), UrgencyHigh},
		{"qualified within window", "qualified", daysAgo(2), UrgencyLow},
		{"contacted stale", "contacted", daysAgo(6), UrgencyHigh},
		{"contacted within window", "contacted", daysAgo(5), UrgencyLow},
		{"any status over a week", "new", daysAgo(8), UrgencyMedium},
		{"fresh lead", "new", daysAgo(0), UrgencyLow},
		{"no timestamps at all", "new", nil, UrgencyLow},
	}

	for _, tc := range tests {
		got := e.Urgency(Lead{Name: "U", Status: tc.status, LastContact: tc.lastContact})
		if got != tc.want {
			t.Fatalf("%s: expected urgency %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestUrgency_FallsBackToCreatedAt(t *testing.T) {
	e := newTestEngine()

	lead := Lead{Name: "U", Status: "qualified", CreatedAt: daysAgo(3)}
	if got := e.Urgency(lead); got != UrgencyHigh {
		t.Fatalf("expected urgency high from created_at fallback, got %q", got)
	}

	// An explicit last contact takes precedence over created_at.
	lead.LastContact = daysAgo(1)
	if got := e.Urgency(lead); got != UrgencyLow {
		t.Fatalf("expected urgency low with recent last contact, got %q", got)
	}
}

func TestRecommendations_OrderAndCap(t *testing.T) {
	e := newTestEngine()

	// Six rules fire; only the first five survive the cap.
	lead := Lead{Name: "R", Status: "new", LastContact: daysAgo(10)}
	got := e.Recommendations(lead)

	want := []string{
		"Request phone number for faster communication",
		"Identify company details for better qualification",
		"Make initial contact within 24 hours for best results",
		"Prepare introduction pitch highlighting key value propositions",
		"It's been 10 days since last contact - reach out today!",
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d recommendations, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("recommendation %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestRecommendations_ClosedLeadsSkipStaleness(t *testing.T) {
	e := newTestEngine()

	lead := Lead{
		Name:        "Done",
		Phone:       "+31612345678",
		Company:     "Acme BV",
		Status:      "won",
		Budget:      25000,
		LastContact: daysAgo(30),
	}

	if got := e.Recommendations(lead); len(got) != 0 {
		t.Fatalf("expected no recommendations for a complete won lead, got %v", got)
	}

	lead.Status = "lost"
	if got := e.Recommendations(lead); len(got) != 0 {
		t.Fatalf("expected no recommendations for a complete lost lead, got %v", got)
	}
}

func TestRecommendations_BudgetQualification(t *testing.T) {
	e := newTestEngine()

	lead := Lead{
		Name:        "B",
		Phone:       "+31612345678",
		Company:     "Acme BV",
		Status:      "won",
		LastContact: daysAgo(0),
	}

	got := e.Recommendations(lead)
	if len(got) != 1 || got[0] != "Qualify budget during next conversation" {
		t.Fatalf("expected only the budget recommendation, got %v", got)
	}
}

func TestBestTimeToCall_HourBuckets(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{7, "Best time to call: 10:00 AM - 11:30 AM (Morning productivity window)"},
		{10, "Good time to call now! Morning hours have high answer rates"},
		{13, "Best time to call: 2:00 PM - 4:00 PM (Post-lunch productivity)"},
		{15, "Good time to call now! Afternoon decision-making hours"},
		{20, "Best time to call: Tomorrow 10:00 AM - 11:30 AM"},
	}

	for _, tc := range tests {
		e := New(clock.Fixed{Time: time.Date(2025, 6, 16, tc.hour, 30, 0, 0, time.UTC)})
		if got := e.BestTimeToCall(); got != tc.want {
			t.Fatalf("hour %d: expected %q, got %q", tc.hour, tc.want, got)
		}
	}
}

func TestNextAction_DecisionTree(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name        string
		status      string
		lastContact *time.Time
		want        string
	}{
		{"new", "new", nil, "Make initial contact call"},
		{"contacted stale", "contacted", daysAgo(3), "Send follow-up email with value proposition"},
		{"contacted fresh", "contacted", daysAgo(1), "Schedule discovery meeting"},
		{"qualified", "qualified", daysAgo(10), "Prepare and send proposal"},
		{"proposal stale", "proposal", daysAgo(2), "Follow up on proposal status"},
		{"proposal fresh", "proposal", daysAgo(1), "Wait for response, prepare negotiation strategy"},
		{"negotiation", "negotiation", daysAgo(0), "Close the deal - finalize terms"},
		{"won", "won", nil, "Review lead status and update CRM"},
		{"lost", "lost", nil, "Review lead status and update CRM"},
	}

	for _, tc := range tests {
		got := e.NextAction(Lead{Name: "N", Status: tc.status, LastContact: tc.lastContact})
		if got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestRiskFactors_RulesAreIndependent(t *testing.T) {
	e := newTestEngine()

	// A thoroughly neglected proposal with no contact details trips four
	// risks at once, including both staleness warnings.
	lead := Lead{Name: "Risky", Status: "proposal", LastContact: daysAgo(20)}
	got := e.RiskFactors(lead)

	want := []string{
		"Lead going cold - no contact in 2+ weeks",
		"Risk of losing interest - follow up needed",
		"No contact information available",
		"Proposal may be stale - competitor risk",
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d risks, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("risk %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestRiskFactors_LowPriorityQualified(t *testing.T) {
	e := newTestEngine()

	lead := Lead{
		Name:        "Momentum",
		Phone:       "+31612345678",
		Status:      "qualified",
		Priority:    "low",
		LastContact: daysAgo(1),
	}

	got := e.RiskFactors(lead)
	if len(got) != 1 || got[0] != "Low priority qualified lead - may lose momentum" {
		t.Fatalf("expected only the momentum risk, got %v", got)
	}
}

func TestRiskFactors_HealthyLeadHasNone(t *testing.T) {
	e := newTestEngine()

	lead := Lead{
		Name:        "Fine",
		Email:       "fine@example.com",
		Status:      "contacted",
		Priority:    "high",
		LastContact: daysAgo(1),
	}

	if got := e.RiskFactors(lead); len(got) != 0 {
		t.Fatalf("expected no risks, got %v", got)
	}
}

func TestOpportunities_AllSignals(t *testing.T) {
	e := newTestEngine()

	lead := Lead{
		Name:      "Golden",
		Company:   "Acme BV",
		Source:    "Referral",
		Status:    "qualified",
		Budget:    60000,
		CreatedAt: daysAgo(1),
	}

	want := []string{
		"High-value opportunity - prioritize personal attention",
		"Referral lead - higher trust, faster close potential",
		"B2B opportunity - potential for larger deal size",
		"Advanced stage - focus on closing",
		"Fresh lead - strike while interest is high",
	}

	got := e.Opportunities(lead)
	if len(got) != len(want) {
		t.Fatalf("expected %d opportunities, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("opportunity %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestOpportunities_Thresholds(t *testing.T) {
	e := newTestEngine()

	// Budget of exactly 50000 is not high-value, and three full days is no
	// longer fresh.
	lead := Lead{Name: "Edge", Status: "new", Budget: 50000, CreatedAt: daysAgo(3)}
	if got := e.Opportunities(lead); len(got) != 0 {
		t.Fatalf("expected no opportunities at the thresholds, got %v", got)
	}

	lead.Budget = 50001
	got := e.Opportunities(lead)
	if len(got) != 1 || got[0] != "High-value opportunity - prioritize personal attention" {
		t.Fatalf("expected only the high-value opportunity, got %v", got)
	}
}

func TestInsight_AssemblesAllFields(t *testing.T) {
	e := newTestEngine()

	lead := Lead{
		Name:        "Assembled",
		Email:       "a@example.com",
		Phone:       "+31612345678",
		Company:     "Acme BV",
		Source:      "referral",
		Status:      "negotiation",
		Budget:      10000,
		CreatedAt:   daysAgo(10),
		UpdatedAt:   hoursAgo(0),
		LastContact: daysAgo(3),
	}

	insight := e.Insight(lead)

	if insight.Score != 85 {
		t.Fatalf("expected score 85, got %d", insight.Score)
	}
	if insight.ScoreLabel != "Hot Lead" {
		t.Fatalf("expected Hot Lead, got %q", insight.ScoreLabel)
	}
	// negotiation 85*0.6 + score 85*0.4 = 85.
	if insight.ConversionProbability != 85 {
		t.Fatalf("expected conversion probability 85, got %d", insight.ConversionProbability)
	}
	if insight.Urgency != UrgencyCritical {
		t.Fatalf("expected critical urgency, got %q", insight.Urgency)
	}
	if insight.NextAction != "Close the deal - finalize terms" {
		t.Fatalf("unexpected next action %q", insight.NextAction)
	}
	if insight.BestTimeToCall == "" {
		t.Fatalf("expected a best-time-to-call suggestion")
	}
	if len(insight.Recommendations) == 0 {
		t.Fatalf("expected negotiation recommendations")
	}
}

func TestDashboardInsights_EmptyPipeline(t *testing.T) {
	e := newTestEngine()

	got := e.DashboardInsights(nil)
	if got.TotalLeads != 0 || got.HotLeads != 0 || got.NeedsAttention != 0 || got.AvgScore != 0 {
		t.Fatalf("expected zeroed summary, got %+v", got)
	}
	if got.TopRecommendation != "Start by adding new leads to your pipeline" {
		t.Fatalf("unexpected top recommendation %q", got.TopRecommendation)
	}
}

func TestDashboardInsights_HotLeadsMessage(t *testing.T) {
	e := newTestEngine()

	hot := Lead{
		Name:        "Hot",
		Email:       "hot@example.com",
		Phone:       "+31612345678",
		Company:     "Acme BV",
		Source:      "referral",
		Status:      "new",
		Budget:      10000,
		UpdatedAt:   hoursAgo(0),
		LastContact: daysAgo(0),
	}
	cold := Lead{Name: "Cold", Status: "new", LastContact: daysAgo(0)}

	got := e.DashboardInsights([]Lead{hot, cold})

	if got.TotalLeads != 2 {
		t.Fatalf("expected 2 leads, got %d", got.TotalLeads)
	}
	if got.HotLeads != 1 {
		t.Fatalf("expected 1 hot lead, got %d", got.HotLeads)
	}
	if got.NeedsAttention != 0 {
		t.Fatalf("expected no leads needing attention, got %d", got.NeedsAttention)
	}
	// Scores 85 and 8 average to 46.5, rounded to 47.
	if got.AvgScore != 47 {
		t.Fatalf("expected average score 47, got %d", got.AvgScore)
	}
	if got.TopRecommendation != "Focus on your 1 hot leads to maximize conversions" {
		t.Fatalf("unexpected top recommendation %q", got.TopRecommendation)
	}
}

func TestDashboardInsights_AttentionOutranksHot(t *testing.T) {
	e := newTestEngine()

	hot := Lead{
		Name:        "Hot",
		Email:       "hot@example.com",
		Phone:       "+31612345678",
		Company:     "Acme BV",
		Source:      "referral",
		Status:      "new",
		Budget:      10000,
		UpdatedAt:   hoursAgo(0),
		LastContact: daysAgo(0),
	}
	stale := Lead{Name: "Stale", Status: "qualified", LastContact: daysAgo(3)}

	got := e.DashboardInsights([]Lead{hot, stale})

	if got.NeedsAttention != 1 {
		t.Fatalf("expected 1 lead needing attention, got %d", got.NeedsAttention)
	}
	want := "1 leads need immediate attention - follow up today!"
	if got.TopRecommendation != want {
		t.Fatalf("expected %q, got %q", want, got.TopRecommendation)
	}
}

func TestDashboardInsights_NurtureFallback(t *testing.T) {
	e := newTestEngine()

	leads := []Lead{
		{Name: "A", Status: "new", LastContact: daysAgo(0)},
		{Name: "B", Status: "contacted", LastContact: daysAgo(1)},
	}

	got := e.DashboardInsights(leads)
	want := "Nurture your leads with valuable content and regular follow-ups"
	if got.TopRecommendation != want {
		t.Fatalf("expected %q, got %q", want, got.TopRecommendation)
	}
}

func TestDaysBetween_PartialDaysRoundUp(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name string
		t    time.Time
		want int
	}{
		{"same instant", testNow, 0},
		{"one minute ago", testNow.Add(-time.Minute), 1},
		{"exactly 24 hours", testNow.Add(-24 * time.Hour), 1},
		{"25 hours ago", testNow.Add(-25 * time.Hour), 2},
		{"one hour in the future", testNow.Add(time.Hour), 1},
	}

	for _, tc := range tests {
		if got := e.daysBetween(tc.t); got != tc.want {
			t.Fatalf("%s: expected %d days, got %d", tc.name, tc.want, got)
		}
	}
}

func TestRecommendations_StalenessMessageUsesDayCount(t *testing.T) {
	e := newTestEngine()

	for _, days := range []int{8, 15, 45} {
		lead := Lead{
			Name:        "Stale",
			Phone:       "+31612345678",
			Company:     "Acme BV",
			Status:      "contacted",
			Budget:      5000,
			LastContact: daysAgo(days),
		}

		got := e.Recommendations(lead)
		want := fmt.Sprintf("It's been %d days since last contact - reach out today!", days)

		found := false
		for _, recommendation := range got {
			if recommendation == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("days %d: expected %q in %v", days, want, got)
		}
		if strings.Contains(strings.Join(got, "\n"), "Request phone number") {
			t.Fatalf("days %d: phone recommendation should not fire, got %v", days, got)
		}
	}
}
