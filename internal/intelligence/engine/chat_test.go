package engine

import (
	"strings"
	"testing"
)

func TestProcessMessage_Greeting(t *testing.T) {
	e := newTestEngine()

	for _, message := range []string{"hi", "Hello there", "HEY", "good morning team", "Good afternoon"} {
		got := e.ProcessMessage(message, ChatContext{})
		if !strings.Contains(got.Message, "AI Sales Assistant") {
			t.Fatalf("%q: expected greeting response, got %q", message, got.Message)
		}
		if len(got.Suggestions) != 4 {
			t.Fatalf("%q: expected 4 suggestions, got %d", message, len(got.Suggestions))
		}
	}
}

func TestProcessMessage_GreetingMatchesPrefixOnly(t *testing.T) {
	e := newTestEngine()

	// "hello" mid-sentence is not a greeting; with no other keyword the
	// fallback answers.
	got := e.ProcessMessage("please say hello to the team", ChatContext{})
	if !strings.Contains(got.Message, "I'm here to help") {
		t.Fatalf("expected fallback response, got %q", got.Message)
	}
}

func TestProcessMessage_AnalyzeWithoutLead(t *testing.T) {
	e := newTestEngine()

	got := e.ProcessMessage("Can you analyze this lead?", ChatContext{})
	if got.Message != "Please select a lead first, then I can provide detailed analysis." {
		t.Fatalf("unexpected message %q", got.Message)
	}
	if got.Insights != nil {
		t.Fatalf("expected no insights without a selected lead")
	}
}

func TestProcessMessage_AnalyzeCurrentLead(t *testing.T) {
	e := newTestEngine()

	lead := Lead{
		Name:        "Jane Prospect",
		Email:       "jane@example.com",
		Phone:       "+31612345678",
		Company:     "Acme BV",
		Source:      "referral",
		Status:      "qualified",
		Budget:      10000,
		UpdatedAt:   hoursAgo(0),
		LastContact: daysAgo(1),
	}

	got := e.ProcessMessage("analyze my lead", ChatContext{CurrentLead: &lead})

	if !strings.Contains(got.Message, "Lead Analysis: Jane Prospect") {
		t.Fatalf("expected analysis header with lead name, got %q", got.Message)
	}
	if got.Insights == nil {
		t.Fatalf("expected inline insights")
	}
	if got.Insights.Score != 85 {
		t.Fatalf("expected score 85 in insights, got %d", got.Insights.Score)
	}
	if !strings.Contains(got.Message, "85/100") {
		t.Fatalf("expected score in message, got %q", got.Message)
	}
}

func TestProcessMessage_FirstMatchWins(t *testing.T) {
	e := newTestEngine()

	// The message mentions follow-ups and conversion too, but the analyze
	// intent is checked first.
	got := e.ProcessMessage("analyze my lead before the follow up to improve conversion", ChatContext{})
	if got.Message != "Please select a lead first, then I can provide detailed analysis." {
		t.Fatalf("expected the analyze intent to win, got %q", got.Message)
	}

	// A greeting outranks everything after it.
	got = e.ProcessMessage("hello, show hot leads", ChatContext{})
	if !strings.Contains(got.Message, "AI Sales Assistant") {
		t.Fatalf("expected the greeting intent to win, got %q", got.Message)
	}
}

func TestProcessMessage_HotLeadsRankedByScore(t *testing.T) {
	e := newTestEngine()

	referral := Lead{
		Name: "Referral Rita", Email: "r@example.com", Phone: "+31600000001",
		Company: "Rita BV", Source: "referral", Status: "qualified",
		Budget: 10000, UpdatedAt: hoursAgo(0),
	}
	website := Lead{
		Name: "Website Wim", Email: "w@example.com", Phone: "+31600000002",
		Company: "Wim BV", Source: "website", Status: "contacted",
		Budget: 10000, UpdatedAt: hoursAgo(0),
	}
	cold := Lead{Name: "Cold Cees", Status: "new"}

	got := e.ProcessMessage("show my hot leads", ChatContext{Leads: []Lead{cold, website, referral}})

	if !strings.Contains(got.Message, "Top 2 Hot Leads") {
		t.Fatalf("expected two hot leads, got %q", got.Message)
	}
	rita := strings.Index(got.Message, "Referral Rita")
	wim := strings.Index(got.Message, "Website Wim")
	if rita < 0 || wim < 0 || rita > wim {
		t.Fatalf("expected Rita (85) ranked above Wim (82), got %q", got.Message)
	}
	if strings.Contains(got.Message, "Cold Cees") {
		t.Fatalf("cold lead should not appear, got %q", got.Message)
	}
}

func TestProcessMessage_HotLeadsEmpty(t *testing.T) {
	e := newTestEngine()

	got := e.ProcessMessage("any best leads today?", ChatContext{Leads: []Lead{{Name: "Meh", Status: "new"}}})
	if !strings.Contains(got.Message, "No hot leads found") {
		t.Fatalf("expected empty hot leads message, got %q", got.Message)
	}
}

func TestProcessMessage_KeywordIntents(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		message string
		marker  string
	}{
		{"when should I follow up?", "Follow-up Best Practices"},
		{"how do I improve conversion", "Conversion Optimization Tips"},
		{"tips to convert more", "Conversion Optimization Tips"},
		{"handling an objection about price", "Common Objections & Responses"},
		{"closing strategies please", "Effective Closing Techniques"},
		{"how to close deals faster", "Effective Closing Techniques"},
	}

	for _, tc := range tests {
		got := e.ProcessMessage(tc.message, ChatContext{})
		if !strings.Contains(got.Message, tc.marker) {
			t.Fatalf("%q: expected %q in response, got %q", tc.message, tc.marker, got.Message)
		}
	}
}

func TestProcessMessage_FallbackListsCapabilities(t *testing.T) {
	e := newTestEngine()

	got := e.ProcessMessage("what is the weather like", ChatContext{})
	if !strings.Contains(got.Message, "I'm here to help with your sales process!") {
		t.Fatalf("expected fallback message, got %q", got.Message)
	}
	if len(got.Suggestions) != 6 {
		t.Fatalf("expected 6 suggestions, got %d", len(got.Suggestions))
	}
}

func TestProcessMessage_CaseInsensitive(t *testing.T) {
	e := newTestEngine()

	got := e.ProcessMessage("SHOW HOT LEADS", ChatContext{})
	if !strings.Contains(got.Message, "No hot leads found") {
		t.Fatalf("expected hot leads intent regardless of casing, got %q", got.Message)
	}
}
