package ranking_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/documark/triage/internal/catalog"
	"github.com/documark/triage/internal/ranking"
	"github.com/documark/triage/internal/scoring"
	"github.com/documark/triage/internal/summaries"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]string{"Engineering Drawings", "Legal Opinions", "Finance"})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return cat
}

func testSummaries() summaries.Provider {
	return summaries.NewStatic(map[string]string{
		"Engineering Drawings": "Technical specifications and engineering requirements document",
		"Legal Opinions":       "Legal analysis and compliance documentation",
		"Finance":              "Financial analysis and budget planning document",
	})
}

func TestAssembleOrdering(t *testing.T) {
	cat := testCatalog(t)

	rows, err := ranking.Assemble(cat, scoring.Vector{
		"Engineering Drawings": 0.3,
		"Legal Opinions":       0.9,
		"Finance":              0.5,
	}, testSummaries(), discard())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	wantOrder := []string{"Legal Opinions", "Finance", "Engineering Drawings"}
	for i, want := range wantOrder {
		if rows[i].Department != want {
			t.Errorf("row %d = %s, want %s", i, rows[i].Department, want)
		}
		if rows[i].Rank != i+1 {
			t.Errorf("row %d rank = %d, want %d", i, rows[i].Rank, i+1)
		}
	}

	for i := 0; i < len(rows)-1; i++ {
		if rows[i].Score < rows[i+1].Score {
			t.Errorf("rows not sorted descending at %d", i)
		}
	}
}

func TestAssembleTieBreaksByCatalogIndex(t *testing.T) {
	cat := testCatalog(t)

	rows, err := ranking.Assemble(cat, scoring.Vector{
		"Engineering Drawings": 0.5,
		"Legal Opinions":       0.5,
		"Finance":              0.2,
	}, testSummaries(), discard())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	wantOrder := []string{"Engineering Drawings", "Legal Opinions", "Finance"}
	for i, want := range wantOrder {
		if rows[i].Department != want {
			t.Errorf("row %d = %s, want %s", i, rows[i].Department, want)
		}
	}

	if ranking.Primary(rows) != "Engineering Drawings" {
		t.Errorf("primary = %s, want Engineering Drawings", ranking.Primary(rows))
	}
}

func TestAssembleCoverage(t *testing.T) {
	cat := testCatalog(t)

	rows, err := ranking.Assemble(cat, scoring.Vector{
		"Engineering Drawings": 0.0,
		"Legal Opinions":       0.0,
		"Finance":              0.0,
	}, testSummaries(), discard())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if len(rows) != cat.Size() {
		t.Fatalf("len(rows) = %d, want %d", len(rows), cat.Size())
	}

	seen := make(map[string]bool)
	for _, row := range rows {
		if seen[row.Department] {
			t.Errorf("department %s appears twice", row.Department)
		}
		seen[row.Department] = true
	}

	// Uniform zero scores fall back entirely to catalog order.
	if ranking.Primary(rows) != "Engineering Drawings" {
		t.Errorf("primary = %s, want catalog[0]", ranking.Primary(rows))
	}
}

func TestAssembleDeterminism(t *testing.T) {
	cat := testCatalog(t)
	scores := scoring.Vector{
		"Engineering Drawings": 0.5,
		"Legal Opinions":       0.5,
		"Finance":              0.5,
	}

	first, err := ranking.Assemble(cat, scores, testSummaries(), discard())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	for range 10 {
		again, err := ranking.Assemble(cat, scores, testSummaries(), discard())
		if err != nil {
			t.Fatalf("assemble: %v", err)
		}
		for i := range first {
			if again[i] != first[i] {
				t.Fatalf("row %d differs across runs: %+v vs %+v", i, first[i], again[i])
			}
		}
	}
}

func TestAssembleInvalidVector(t *testing.T) {
	cat := testCatalog(t)

	_, err := ranking.Assemble(cat, scoring.Vector{
		"Engineering Drawings": 0.5,
	}, testSummaries(), discard())
	if !errors.Is(err, scoring.ErrIncompleteVector) {
		t.Errorf("expected ErrIncompleteVector, got %v", err)
	}
}

func TestAssembleMissingSummaryFallback(t *testing.T) {
	cat := testCatalog(t)
	partial := summaries.NewStatic(map[string]string{
		"Finance": "Financial analysis and budget planning document",
	})

	rows, err := ranking.Assemble(cat, scoring.Vector{
		"Engineering Drawings": 0.9,
		"Legal Opinions":       0.5,
		"Finance":              0.2,
	}, partial, discard())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if rows[0].Summary != summaries.Fallback {
		t.Errorf("summary = %q, want fallback", rows[0].Summary)
	}
	if rows[2].Summary != "Financial analysis and budget planning document" {
		t.Errorf("summary = %q, want configured text", rows[2].Summary)
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.85, "85.00%"},
		{0.5, "50.00%"},
		{0.333, "33.30%"},
		{0, "0.00%"},
		{1, "100.00%"},
	}

	for _, tt := range tests {
		if got := ranking.FormatPercent(tt.score); got != tt.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestArtifactID(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Engineering Drawings", "engineering-drawings"},
		{"Purchase Order Correspondence", "purchase-order-correspondence"},
		{"HR Policies", "hr-policies"},
		{"Finance", "finance"},
		{"  Edge -- Case!! ", "edge-case"},
	}

	for _, tt := range tests {
		if got := ranking.ArtifactID(tt.label); got != tt.want {
			t.Errorf("ArtifactID(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}
