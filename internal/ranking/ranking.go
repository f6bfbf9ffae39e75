// Package ranking turns a relevance vector into the deterministic, dense
// 1-based table of department matches presented to callers. Every catalog
// department appears exactly once, even at score zero.
package ranking

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	"github.com/documark/triage/internal/catalog"
	"github.com/documark/triage/internal/scoring"
	"github.com/documark/triage/internal/summaries"
)

// Row is one entry of the ranked department table. Rows are created fresh
// per document and never mutated after assembly.
type Row struct {
	Rank         int     `json:"rank"`
	Department   string  `json:"department"`
	Score        float64 `json:"score"`
	ScoreDisplay string  `json:"score_display"`
	Summary      string  `json:"summary"`
	ArtifactID   string  `json:"artifact_id"`
}

// Assemble sorts the vector's departments by score descending, breaking ties
// by canonical catalog index ascending. The index tie-break, not label text
// or map iteration order, is what makes the output reproducible across runs
// and across independently computed vectors with coincidentally equal
// scores; the rank-1 row is the single primary department downstream routing
// depends on, so a top-score tie resolving to the lower index is intentional.
//
// A department without a summary gets the fallback text and a warning log;
// missing summaries never abort ranking. A vector that fails catalog
// validation is a configuration bug and returns an error.
func Assemble(
	cat *catalog.Catalog,
	scores scoring.Vector,
	provider summaries.Provider,
	logger *slog.Logger,
) ([]Row, error) {
	if err := scores.Validate(cat); err != nil {
		return nil, fmt.Errorf("assemble ranking: %w", err)
	}

	type entry struct {
		label string
		index int
		score float64
	}

	entries := make([]entry, 0, cat.Size())
	for i, label := range cat.Labels() {
		entries = append(entries, entry{
			label: label,
			index: i,
			score: scores[label],
		})
	}

	slices.SortFunc(entries, func(a, b entry) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})

	rows := make([]Row, len(entries))
	for i, e := range entries {
		summary, err := provider.SummaryFor(e.label)
		if err != nil {
			summary = summaries.Fallback
			logger.Warn(
				"missing department summary",
				"department", e.label,
				"error", err,
			)
		}

		rows[i] = Row{
			Rank:         i + 1,
			Department:   e.label,
			Score:        e.score,
			ScoreDisplay: FormatPercent(e.score),
			Summary:      summary,
			ArtifactID:   ArtifactID(e.label),
		}
	}

	return rows, nil
}

// Primary returns the department at rank 1, or "" for an empty table.
func Primary(rows []Row) string {
	if len(rows) == 0 {
		return ""
	}
	return rows[0].Department
}

// FormatPercent renders a [0,1] score as a percentage with two decimals.
func FormatPercent(score float64) string {
	return fmt.Sprintf("%.2f%%", score*100)
}
