package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/documark/triage/internal/catalog"
	"github.com/documark/triage/internal/extraction"
)

// DepartmentRule configures keyword scoring for one department. A document
// scores BaseScore with no keyword hits and approaches MatchScore as keyword
// coverage grows.
type DepartmentRule struct {
	Label      string
	Keywords   []string
	MatchScore float64
	BaseScore  float64
}

// KeywordScorer is the default scoring strategy: a deterministic keyword
// matcher over per-department rule sets. Identical text always yields an
// identical vector.
type KeywordScorer struct {
	catalog *catalog.Catalog
	rules   map[string]DepartmentRule
	floor   float64
}

// NewKeywordScorer creates a KeywordScorer. The rule set must cover the
// catalog exactly; a mismatch is a configuration bug and fails construction.
func NewKeywordScorer(cat *catalog.Catalog, rules []DepartmentRule, floor float64) (*KeywordScorer, error) {
	if floor < 0 || floor > 1 {
		return nil, fmt.Errorf("%w: floor = %v", ErrScoreOutOfRange, floor)
	}

	byLabel := make(map[string]DepartmentRule, len(rules))
	for _, rule := range rules {
		if !cat.Contains(rule.Label) {
			return nil, fmt.Errorf("%w: scoring rule for %s", catalog.ErrUnknownDepartment, rule.Label)
		}
		if rule.BaseScore < 0 || rule.BaseScore > 1 {
			return nil, fmt.Errorf("%w: %s base = %v", ErrScoreOutOfRange, rule.Label, rule.BaseScore)
		}
		if rule.MatchScore < 0 || rule.MatchScore > 1 {
			return nil, fmt.Errorf("%w: %s match = %v", ErrScoreOutOfRange, rule.Label, rule.MatchScore)
		}
		byLabel[rule.Label] = rule
	}

	if len(byLabel) != cat.Size() {
		return nil, fmt.Errorf("%w: %d rules for %d departments", ErrIncompleteVector, len(byLabel), cat.Size())
	}

	return &KeywordScorer{
		catalog: cat,
		rules:   byLabel,
		floor:   floor,
	}, nil
}

// Score produces the relevance vector for the text. Empty or whitespace-only
// text yields the uniform floor vector so classification degrades instead of
// aborting.
func (s *KeywordScorer) Score(_ context.Context, text extraction.NormalizedText) (Vector, error) {
	if text.Empty() {
		return Floor(s.catalog, s.floor), nil
	}

	lower := strings.ToLower(text.Text)

	v := make(Vector, s.catalog.Size())
	for _, label := range s.catalog.Labels() {
		v[label] = s.rules[label].score(lower)
	}

	return v, nil
}

// score interpolates between BaseScore and MatchScore by the fraction of the
// rule's keywords present in the lowercased text.
func (r DepartmentRule) score(lower string) float64 {
	if len(r.Keywords) == 0 {
		return r.BaseScore
	}

	matched := 0
	for _, kw := range r.Keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matched++
		}
	}

	coverage := float64(matched) / float64(len(r.Keywords))
	return r.BaseScore + (r.MatchScore-r.BaseScore)*coverage
}
