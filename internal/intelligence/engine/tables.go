package engine

// Scoring weights. Each contributes up to its value to the 0-100 score.
const (
	weightHasEmail      = 10.0
	weightHasPhone      = 15.0
	weightHasCompany    = 10.0
	weightHasBudget     = 20.0
	weightRecency       = 15.0
	weightSourceQuality = 15.0
)

// budgetCeiling is the budget at which the budget component maxes out.
const budgetCeiling = 10000.0

// sourceQuality rates acquisition channels on a 0-100 scale.
// Unknown or missing sources fall back to defaultSourceQuality.
var sourceQuality = map[string]float64{
	"referral":   100,
	"website":    80,
	"linkedin":   75,
	"google_ads": 70,
	"facebook":   60,
	"cold_call":  40,
	"other":      50,
}

const defaultSourceQuality = 50.0

// statusScores rates pipeline progression for conversion probability.
// Unknown or missing statuses fall back to defaultStatusScore.
var statusScores = map[string]float64{
	"new":         20,
	"contacted":   40,
	"qualified":   60,
	"proposal":    75,
	"negotiation": 85,
	"won":         100,
	"lost":        0,
}

const defaultStatusScore = 20.0

// statusRecommendations pairs stage-specific advice, appended in order.
var statusRecommendations = map[string][]string{
	"new": {
		"Make initial contact within 24 hours for best results",
		"Prepare introduction pitch highlighting key value propositions",
	},
	"contacted": {
		"Schedule a discovery call to understand needs",
		"Send relevant case studies or testimonials",
	},
	"qualified": {
		"Prepare customized proposal based on requirements",
		"Identify decision makers and stakeholders",
	},
	"proposal": {
		"Follow up on proposal within 48 hours",
		"Address any objections or concerns proactively",
	},
	"negotiation": {
		"Prepare flexible pricing options",
		"Highlight ROI and value over competitors",
	},
}
