// Package priority classifies document urgency independently of department
// relevance. Severity rules are evaluated highest level first so that when
// keywords from several levels appear, the highest matched severity wins.
// No match and empty text both resolve to Low: under-escalation is the safer
// default for whatever queue consumes these results.
package priority

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/documark/triage/internal/extraction"
)

// Level is an ordered urgency classification: High > Medium > Low.
type Level string

// Priority levels.
const (
	LevelHigh   Level = "High"
	LevelMedium Level = "Medium"
	LevelLow    Level = "Low"
)

// Classification errors.
var (
	ErrInvalidLevel      = errors.New("invalid priority level")
	ErrInvalidConfidence = errors.New("confidence outside [0, 1]")
)

var severityOrder = []Level{LevelHigh, LevelMedium, LevelLow}

// Severity returns the level's position in the urgency ordering; lower is
// more urgent. Unknown levels sort last.
func (l Level) Severity() int {
	i := slices.Index(severityOrder, l)
	if i == -1 {
		return len(severityOrder)
	}
	return i
}

// ParseLevel validates a string as a known priority level.
func ParseLevel(s string) (Level, error) {
	l := Level(s)
	if !slices.Contains(severityOrder, l) {
		return "", fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return l, nil
}

// Result is a priority classification with its confidence.
type Result struct {
	Level      Level   `json:"level"`
	Confidence float64 `json:"confidence"`
}

// Classifier maps normalized text to a priority result. Implementations must
// be deterministic for identical text and never fail on empty input.
type Classifier interface {
	Classify(ctx context.Context, text extraction.NormalizedText) (Result, error)
}

// Rule binds a set of trigger keywords to a priority level and the
// confidence reported when the rule fires.
type Rule struct {
	Level      Level
	Keywords   []string
	Confidence float64
}

// KeywordClassifier is a deterministic rule-based Classifier. Rules are
// ordered by severity at construction; classification returns the first
// (most severe) rule with a keyword hit.
type KeywordClassifier struct {
	rules             []Rule
	defaultConfidence float64
}

// NewKeywordClassifier creates a KeywordClassifier from the given rules.
// defaultConfidence is reported when no rule fires.
func NewKeywordClassifier(rules []Rule, defaultConfidence float64) (*KeywordClassifier, error) {
	if defaultConfidence < 0 || defaultConfidence > 1 {
		return nil, fmt.Errorf("%w: default = %v", ErrInvalidConfidence, defaultConfidence)
	}

	ordered := make([]Rule, len(rules))
	copy(ordered, rules)

	for _, rule := range ordered {
		if _, err := ParseLevel(string(rule.Level)); err != nil {
			return nil, err
		}
		if rule.Confidence < 0 || rule.Confidence > 1 {
			return nil, fmt.Errorf("%w: %s = %v", ErrInvalidConfidence, rule.Level, rule.Confidence)
		}
	}

	slices.SortStableFunc(ordered, func(a, b Rule) int {
		return a.Level.Severity() - b.Level.Severity()
	})

	return &KeywordClassifier{
		rules:             ordered,
		defaultConfidence: defaultConfidence,
	}, nil
}

// Classify returns the highest matched severity for the text. Empty text and
// texts matching no rule both classify as Low with the default confidence.
func (c *KeywordClassifier) Classify(_ context.Context, text extraction.NormalizedText) (Result, error) {
	if text.Empty() {
		return Result{Level: LevelLow, Confidence: c.defaultConfidence}, nil
	}

	lower := strings.ToLower(text.Text)

	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return Result{Level: rule.Level, Confidence: rule.Confidence}, nil
			}
		}
	}

	return Result{Level: LevelLow, Confidence: c.defaultConfidence}, nil
}
