package priority_test

import (
	"context"
	"errors"
	"testing"

	"github.com/documark/triage/internal/extraction"
	"github.com/documark/triage/internal/priority"
)

func defaultRules() []priority.Rule {
	return []priority.Rule{
		{Level: priority.LevelHigh, Keywords: []string{"urgent"}, Confidence: 0.9},
		{Level: priority.LevelMedium, Keywords: []string{"important"}, Confidence: 0.7},
	}
}

func TestParseLevel(t *testing.T) {
	for _, valid := range []string{"High", "Medium", "Low"} {
		if _, err := priority.ParseLevel(valid); err != nil {
			t.Errorf("ParseLevel(%q): %v", valid, err)
		}
	}

	if _, err := priority.ParseLevel("critical"); !errors.Is(err, priority.ErrInvalidLevel) {
		t.Errorf("expected ErrInvalidLevel, got %v", err)
	}
}

func TestSeverityOrdering(t *testing.T) {
	if !(priority.LevelHigh.Severity() < priority.LevelMedium.Severity()) {
		t.Error("High must outrank Medium")
	}
	if !(priority.LevelMedium.Severity() < priority.LevelLow.Severity()) {
		t.Error("Medium must outrank Low")
	}
}

func TestNewKeywordClassifier(t *testing.T) {
	tests := []struct {
		name              string
		rules             []priority.Rule
		defaultConfidence float64
		wantErr           error
	}{
		{
			name:              "valid rules",
			rules:             defaultRules(),
			defaultConfidence: 0.6,
		},
		{
			name:              "invalid level",
			rules:             []priority.Rule{{Level: "Critical", Keywords: []string{"urgent"}, Confidence: 0.9}},
			defaultConfidence: 0.6,
			wantErr:           priority.ErrInvalidLevel,
		},
		{
			name:              "confidence out of range",
			rules:             []priority.Rule{{Level: priority.LevelHigh, Keywords: []string{"urgent"}, Confidence: 1.5}},
			defaultConfidence: 0.6,
			wantErr:           priority.ErrInvalidConfidence,
		},
		{
			name:              "default confidence out of range",
			rules:             defaultRules(),
			defaultConfidence: -1,
			wantErr:           priority.ErrInvalidConfidence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := priority.NewKeywordClassifier(tt.rules, tt.defaultConfidence)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	classifier, err := priority.NewKeywordClassifier(defaultRules(), 0.6)
	if err != nil {
		t.Fatalf("classifier: %v", err)
	}

	tests := []struct {
		name           string
		text           string
		wantLevel      priority.Level
		wantConfidence float64
	}{
		{
			name:           "urgent classifies high",
			text:           "URGENT: safety inspection required",
			wantLevel:      priority.LevelHigh,
			wantConfidence: 0.9,
		},
		{
			name:           "important classifies medium",
			text:           "Important update to vendor terms",
			wantLevel:      priority.LevelMedium,
			wantConfidence: 0.7,
		},
		{
			name:           "both signals resolve to highest severity",
			text:           "important and urgent directive",
			wantLevel:      priority.LevelHigh,
			wantConfidence: 0.9,
		},
		{
			name:           "no signal defaults low",
			text:           "routine maintenance summary",
			wantLevel:      priority.LevelLow,
			wantConfidence: 0.6,
		},
		{
			name:           "empty text defaults low",
			text:           "   ",
			wantLevel:      priority.LevelLow,
			wantConfidence: 0.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := classifier.Classify(context.Background(), extraction.NormalizedText{Text: tt.text})
			if err != nil {
				t.Fatalf("classify: %v", err)
			}
			if got.Level != tt.wantLevel {
				t.Errorf("level = %s, want %s", got.Level, tt.wantLevel)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestClassifyRuleOrderIndependent(t *testing.T) {
	// Rules supplied lowest severity first must still resolve to the
	// highest matched severity.
	reversed := []priority.Rule{
		{Level: priority.LevelMedium, Keywords: []string{"important"}, Confidence: 0.7},
		{Level: priority.LevelHigh, Keywords: []string{"urgent"}, Confidence: 0.9},
	}

	classifier, err := priority.NewKeywordClassifier(reversed, 0.6)
	if err != nil {
		t.Fatalf("classifier: %v", err)
	}

	got, err := classifier.Classify(context.Background(), extraction.NormalizedText{
		Text: "an important but also urgent memo",
	})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if got.Level != priority.LevelHigh {
		t.Errorf("level = %s, want High", got.Level)
	}
}
