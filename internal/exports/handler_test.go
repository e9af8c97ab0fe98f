package exports

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestToCSVRecord_FullRow(t *testing.T) {
	id := uuid.New()
	created := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	updated := created.Add(48 * time.Hour)
	lastContact := created.Add(72 * time.Hour)

	row := LeadRow{
		ID:          id,
		Name:        "Acme BV",
		Email:       "buyer@acme.example",
		Phone:       strPtr("+31612345678"),
		Company:     strPtr("Acme"),
		Source:      strPtr("referral"),
		Status:      "proposal",
		Priority:    strPtr("high"),
		Budget:      floatPtr(12500.5),
		AgentName:   strPtr("Agent Jane"),
		Notes:       strPtr("wants demo"),
		CreatedAt:   created,
		UpdatedAt:   updated,
		LastContact: &lastContact,
	}

	record := toCSVRecord(row)
	if len(record) != len(csvHeader) {
		t.Fatalf("expected %d fields, got %d", len(csvHeader), len(record))
	}

	want := []string{
		id.String(), "Acme BV", "buyer@acme.example", "+31612345678", "Acme",
		"referral", "proposal", "high", "12500.50", "Agent Jane", "wants demo",
		"2025-06-01T10:30:00Z", "2025-06-03T10:30:00Z", "2025-06-04T10:30:00Z",
	}
	for i := range want {
		if record[i] != want[i] {
			t.Fatalf("field %s: expected %q, got %q", csvHeader[i], want[i], record[i])
		}
	}
}

func TestToCSVRecord_NullableFieldsAreEmpty(t *testing.T) {
	row := LeadRow{
		ID:        uuid.New(),
		Name:      "Sparse",
		Email:     "sparse@example.com",
		Status:    "new",
		CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	record := toCSVRecord(row)
	for _, i := range []int{3, 4, 5, 7, 8, 9, 10, 13} {
		if record[i] != "" {
			t.Fatalf("field %s: expected empty, got %q", csvHeader[i], record[i])
		}
	}
}
