package transport

import (
	"encoding/json"
	"testing"
)

func TestUpdateLeadRequest_DistinguishesAbsentNullAndValue(t *testing.T) {
	var req UpdateLeadRequest
	payload := `{"phone": "+31612345678", "company": null, "status": "qualified"}`
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !req.Phone.Set || req.Phone.Value == nil || *req.Phone.Value != "+31612345678" {
		t.Fatalf("expected phone set to a value, got %+v", req.Phone)
	}
	if !req.Company.Set || req.Company.Value != nil {
		t.Fatalf("expected company set to null, got %+v", req.Company)
	}
	if req.Source.Set {
		t.Fatalf("expected source untouched, got %+v", req.Source)
	}
	if req.Status == nil || *req.Status != "qualified" {
		t.Fatalf("expected status qualified, got %v", req.Status)
	}
	if req.Name != nil {
		t.Fatalf("expected name untouched, got %v", req.Name)
	}
}

func TestOptional_NumericAndClearing(t *testing.T) {
	var req UpdateLeadRequest
	payload := `{"budget": 25000, "assignedTo": null, "notes": ""}`
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !req.Budget.Set || req.Budget.Value == nil || *req.Budget.Value != 25000 {
		t.Fatalf("expected budget 25000, got %+v", req.Budget)
	}
	if !req.AssignedTo.Set || req.AssignedTo.Value != nil {
		t.Fatalf("expected assignedTo cleared, got %+v", req.AssignedTo)
	}
	// An empty string is a value, not a clear.
	if !req.Notes.Set || req.Notes.Value == nil || *req.Notes.Value != "" {
		t.Fatalf("expected notes set to empty string, got %+v", req.Notes)
	}
}

func TestOptional_RejectsWrongType(t *testing.T) {
	var req UpdateLeadRequest
	if err := json.Unmarshal([]byte(`{"budget": "lots"}`), &req); err == nil {
		t.Fatalf("expected a type error for a string budget")
	}
}
