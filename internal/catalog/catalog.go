// Package catalog defines the fixed, ordered set of department labels and
// their canonical indices. The catalog is built once at startup, is read-only
// afterward, and its ordering is the single source of truth for every
// tie-break downstream. Adding a department is a catalog change, never a
// scorer change.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors for catalog operations. ErrUnknownDepartment signals a
// configuration bug (a scorer or summary table out of sync with the catalog),
// never an expected runtime condition.
var (
	ErrEmptyCatalog      = errors.New("catalog requires at least one department")
	ErrEmptyLabel        = errors.New("department label must not be empty")
	ErrDuplicateLabel    = errors.New("duplicate department label")
	ErrUnknownDepartment = errors.New("unknown department")
)

// Catalog is an ordered, immutable sequence of department labels.
// Safe for concurrent readers; never mutated after construction.
type Catalog struct {
	labels []string
	index  map[string]int
}

// New creates a Catalog from the given labels, preserving their order as the
// canonical index order. Rejects empty input, blank labels, and duplicates.
func New(labels []string) (*Catalog, error) {
	if len(labels) == 0 {
		return nil, ErrEmptyCatalog
	}

	index := make(map[string]int, len(labels))
	ordered := make([]string, len(labels))

	for i, label := range labels {
		if strings.TrimSpace(label) == "" {
			return nil, fmt.Errorf("%w: position %d", ErrEmptyLabel, i)
		}
		if _, exists := index[label]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLabel, label)
		}
		index[label] = i
		ordered[i] = label
	}

	return &Catalog{labels: ordered, index: index}, nil
}

// Labels returns the department labels in canonical order.
// The returned slice is a copy.
func (c *Catalog) Labels() []string {
	labels := make([]string, len(c.labels))
	copy(labels, c.labels)
	return labels
}

// IndexOf returns the canonical index of the given label.
// Returns ErrUnknownDepartment if the label is not cataloged.
func (c *Catalog) IndexOf(label string) (int, error) {
	i, ok := c.index[label]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownDepartment, label)
	}
	return i, nil
}

// Contains reports whether the label is cataloged.
func (c *Catalog) Contains(label string) bool {
	_, ok := c.index[label]
	return ok
}

// Size returns the number of cataloged departments.
func (c *Catalog) Size() int {
	return len(c.labels)
}
