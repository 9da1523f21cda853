package listutil

import (
	"net/url"
	"testing"
)

// TestParseFilterParams_Empty verifies defaults when no query values provided.
func TestParseFilterParams_Empty(t *testing.T) {
	fp := ParseFilterParams(url.Values{}, []string{"status", "training"})
	if fp.Search != "" {
		t.Errorf("expected empty search, got %q", fp.Search)
	}
	if len(fp.Filters) != 0 {
		t.Errorf("expected no filters, got %v", fp.Filters)
	}
}

// TestParseFilterParams_Recognised verifies only allowed keys are picked up.
func TestParseFilterParams_Recognised(t *testing.T) {
	q := url.Values{
		"q":        {"petrova"},
		"status":   {"paid"},
		"training": {"Karate"},
		"bogus":    {"x"},
	}
	fp := ParseFilterParams(q, []string{"status", "training"})
	if fp.Search != "petrova" {
		t.Errorf("search = %q, want petrova", fp.Search)
	}
	if fp.Filters["status"] != "paid" {
		t.Errorf("status = %q, want paid", fp.Filters["status"])
	}
	if fp.Filters["training"] != "Karate" {
		t.Errorf("training = %q, want Karate", fp.Filters["training"])
	}
	if _, ok := fp.Filters["bogus"]; ok {
		t.Error("unrecognised key leaked into filters")
	}
}

// TestParseFilterParams_EmptyValuesSkipped verifies blank params are omitted.
func TestParseFilterParams_EmptyValuesSkipped(t *testing.T) {
	q := url.Values{"status": {""}}
	fp := ParseFilterParams(q, []string{"status"})
	if _, ok := fp.Filters["status"]; ok {
		t.Error("empty filter value should be skipped")
	}
}
