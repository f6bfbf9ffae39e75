// Package summaries provides per-department synopsis text for ranked results.
package summaries

import (
	"errors"
	"fmt"
)

// ErrMissingSummary indicates no summary is registered for a cataloged
// department. Callers recover with Fallback rather than aborting ranking.
var ErrMissingSummary = errors.New("no summary registered for department")

// Fallback is the placeholder text used when a department has no summary.
const Fallback = "No summary available"

// Provider maps a department label to a human-readable synopsis.
type Provider interface {
	SummaryFor(label string) (string, error)
}

// Static is a Provider backed by a fixed map loaded at configuration time.
type Static struct {
	entries map[string]string
}

// NewStatic creates a Static provider from the given label-to-summary map.
func NewStatic(entries map[string]string) *Static {
	copied := make(map[string]string, len(entries))
	for label, text := range entries {
		copied[label] = text
	}
	return &Static{entries: copied}
}

// SummaryFor returns the summary for the given label, or ErrMissingSummary
// if no non-empty entry exists.
func (s *Static) SummaryFor(label string) (string, error) {
	text, ok := s.entries[label]
	if !ok || text == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingSummary, label)
	}
	return text, nil
}
