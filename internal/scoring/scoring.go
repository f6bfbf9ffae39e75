// Package scoring maps normalized document text to a per-department relevance
// vector. The scoring strategy is polymorphic behind the Scorer interface so
// the backing implementation can change without touching ranking or callers;
// every strategy must cover the catalog exactly, keep scores in [0,1], and
// degrade to a uniform floor vector on empty text instead of failing the
// pipeline.
package scoring

import (
	"context"
	"errors"
	"fmt"

	"github.com/documark/triage/internal/catalog"
	"github.com/documark/triage/internal/extraction"
)

// Vector errors. A coverage or bounds violation is a configuration bug, not
// an expected runtime condition.
var (
	ErrIncompleteVector = errors.New("score vector does not cover catalog")
	ErrScoreOutOfRange  = errors.New("score outside [0, 1]")
)

// Vector maps department labels to relevance scores in [0, 1].
type Vector map[string]float64

// Validate checks that the vector carries exactly one in-range score per
// catalog department: no omissions, no extras.
func (v Vector) Validate(cat *catalog.Catalog) error {
	if len(v) != cat.Size() {
		return fmt.Errorf("%w: %d entries for %d departments", ErrIncompleteVector, len(v), cat.Size())
	}

	for label, score := range v {
		if !cat.Contains(label) {
			return fmt.Errorf("%w: %s", catalog.ErrUnknownDepartment, label)
		}
		if score < 0 || score > 1 {
			return fmt.Errorf("%w: %s = %v", ErrScoreOutOfRange, label, score)
		}
	}

	return nil
}

// Floor returns a uniform vector assigning the floor score to every catalog
// department. Used when no usable text is available.
func Floor(cat *catalog.Catalog, floor float64) Vector {
	v := make(Vector, cat.Size())
	for _, label := range cat.Labels() {
		v[label] = floor
	}
	return v
}

// Scorer produces a relevance vector for normalized text. Implementations
// must be deterministic for identical text and stateless with respect to
// document content so invocations can run concurrently.
type Scorer interface {
	Score(ctx context.Context, text extraction.NormalizedText) (Vector, error)
}
