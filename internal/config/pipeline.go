package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/documark/triage/internal/priority"
	"github.com/documark/triage/internal/ranking"
	"github.com/documark/triage/internal/scoring"
)

const (
	EnvPipelineStrategy   = "TRIAGE_PIPELINE_STRATEGY"
	EnvPipelineFloorScore = "TRIAGE_PIPELINE_FLOOR_SCORE"
	EnvPipelineMediaTypes = "TRIAGE_PIPELINE_MEDIA_TYPES"
)

// Scorer strategies selectable through configuration.
const (
	StrategyKeyword  = "keyword"
	StrategySemantic = "semantic"
)

// DepartmentConfig defines one catalog entry: its label, summary, and the
// keyword scoring rule applied when the keyword strategy is active.
type DepartmentConfig struct {
	Label      string   `toml:"label"`
	Summary    string   `toml:"summary"`
	Keywords   []string `toml:"keywords"`
	MatchScore float64  `toml:"match_score"`
	BaseScore  float64  `toml:"base_score"`
}

// PriorityRuleConfig defines one priority classification rule.
type PriorityRuleConfig struct {
	Level      string   `toml:"level"`
	Keywords   []string `toml:"keywords"`
	Confidence float64  `toml:"confidence"`
}

// PipelineConfig holds the department catalog, scorer strategy, priority
// rules, and accepted media types. Catalog order here is canonical: it fixes
// the index used for every ranking tie-break.
type PipelineConfig struct {
	Departments     []DepartmentConfig   `toml:"departments"`
	Strategy        string               `toml:"strategy"`
	FloorScore      *float64             `toml:"floor_score"`
	PriorityRules   []PriorityRuleConfig `toml:"priority_rules"`
	DefaultPriority *float64             `toml:"default_priority_confidence"`
	MediaTypes      []string             `toml:"media_types"`
}

// Floor returns the configured floor score. FloorScore is a pointer so that
// overlays can distinguish "unset" from an explicit zero.
func (c *PipelineConfig) Floor() float64 {
	if c.FloorScore == nil {
		return 0
	}
	return *c.FloorScore
}

// PriorityConfidence returns the confidence assigned when no priority rule
// matches.
func (c *PipelineConfig) PriorityConfidence() float64 {
	if c.DefaultPriority == nil {
		return 0.6
	}
	return *c.DefaultPriority
}

// Labels returns the department labels in canonical order.
func (c *PipelineConfig) Labels() []string {
	labels := make([]string, len(c.Departments))
	for i, dept := range c.Departments {
		labels[i] = dept.Label
	}
	return labels
}

// SummaryEntries returns the label-to-summary map for the summary provider.
func (c *PipelineConfig) SummaryEntries() map[string]string {
	entries := make(map[string]string, len(c.Departments))
	for _, dept := range c.Departments {
		if dept.Summary != "" {
			entries[dept.Label] = dept.Summary
		}
	}
	return entries
}

// ScoringRules returns the keyword scoring rules in canonical order.
func (c *PipelineConfig) ScoringRules() []scoring.DepartmentRule {
	rules := make([]scoring.DepartmentRule, len(c.Departments))
	for i, dept := range c.Departments {
		rules[i] = scoring.DepartmentRule{
			Label:      dept.Label,
			Keywords:   dept.Keywords,
			MatchScore: dept.MatchScore,
			BaseScore:  dept.BaseScore,
		}
	}
	return rules
}

// ClassifierRules returns the configured priority classification rules.
func (c *PipelineConfig) ClassifierRules() ([]priority.Rule, error) {
	rules := make([]priority.Rule, len(c.PriorityRules))
	for i, rc := range c.PriorityRules {
		level, err := priority.ParseLevel(rc.Level)
		if err != nil {
			return nil, fmt.Errorf("priority rule %d: %w", i, err)
		}
		rules[i] = priority.Rule{
			Level:      level,
			Keywords:   rc.Keywords,
			Confidence: rc.Confidence,
		}
	}
	return rules, nil
}

// Finalize applies defaults, environment variable overrides, and validation.
// agentEnabled gates the semantic strategy, which requires a configured agent.
func (c *PipelineConfig) Finalize(agentEnabled bool) error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate(agentEnabled)
}

// Merge overwrites fields set in overlay. FloorScore and DefaultPriority are
// pointers so an explicit zero in an overlay still overrides the base.
// Departments and priority rules replace wholesale rather than merging
// entry-by-entry: a partial catalog overlay would silently reorder canonical
// indices.
func (c *PipelineConfig) Merge(overlay *PipelineConfig) {
	if len(overlay.Departments) > 0 {
		c.Departments = overlay.Departments
	}
	if overlay.Strategy != "" {
		c.Strategy = overlay.Strategy
	}
	if overlay.FloorScore != nil {
		c.FloorScore = overlay.FloorScore
	}
	if len(overlay.PriorityRules) > 0 {
		c.PriorityRules = overlay.PriorityRules
	}
	if overlay.DefaultPriority != nil {
		c.DefaultPriority = overlay.DefaultPriority
	}
	if len(overlay.MediaTypes) > 0 {
		c.MediaTypes = overlay.MediaTypes
	}
}

func (c *PipelineConfig) loadDefaults() {
	if len(c.Departments) == 0 {
		c.Departments = defaultDepartments()
	}
	if c.Strategy == "" {
		c.Strategy = StrategyKeyword
	}
	if len(c.PriorityRules) == 0 {
		c.PriorityRules = []PriorityRuleConfig{
			{Level: "High", Keywords: []string{"urgent"}, Confidence: 0.9},
			{Level: "Medium", Keywords: []string{"important"}, Confidence: 0.7},
		}
	}
	if c.FloorScore == nil {
		floor := 0.0
		c.FloorScore = &floor
	}
	if c.DefaultPriority == nil {
		confidence := 0.6
		c.DefaultPriority = &confidence
	}
	if len(c.MediaTypes) == 0 {
		c.MediaTypes = []string{"txt", "pdf", "jpg", "jpeg", "png"}
	}
}

func (c *PipelineConfig) loadEnv() {
	if v := os.Getenv(EnvPipelineStrategy); v != "" {
		c.Strategy = v
	}
	if v := os.Getenv(EnvPipelineFloorScore); v != "" {
		var floor float64
		if _, err := fmt.Sscanf(v, "%f", &floor); err == nil {
			c.FloorScore = &floor
		}
	}
	if v := os.Getenv(EnvPipelineMediaTypes); v != "" {
		types := make([]string, 0)
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
		if len(types) > 0 {
			c.MediaTypes = types
		}
	}
}

func (c *PipelineConfig) validate(agentEnabled bool) error {
	if len(c.Departments) == 0 {
		return fmt.Errorf("at least one department required")
	}

	seen := make(map[string]struct{}, len(c.Departments))
	slugs := make(map[string]string, len(c.Departments))
	for i, dept := range c.Departments {
		if strings.TrimSpace(dept.Label) == "" {
			return fmt.Errorf("department %d: label required", i)
		}
		if _, exists := seen[dept.Label]; exists {
			return fmt.Errorf("duplicate department label: %s", dept.Label)
		}
		seen[dept.Label] = struct{}{}

		slug := ranking.ArtifactID(dept.Label)
		if prior, exists := slugs[slug]; exists {
			return fmt.Errorf("departments %q and %q collide on artifact id %q", prior, dept.Label, slug)
		}
		slugs[slug] = dept.Label

		if dept.MatchScore < 0 || dept.MatchScore > 1 {
			return fmt.Errorf("department %s: match_score %f outside [0, 1]", dept.Label, dept.MatchScore)
		}
		if dept.BaseScore < 0 || dept.BaseScore > 1 {
			return fmt.Errorf("department %s: base_score %f outside [0, 1]", dept.Label, dept.BaseScore)
		}
	}

	if floor := c.Floor(); floor < 0 || floor > 1 {
		return fmt.Errorf("floor_score %f outside [0, 1]", floor)
	}

	switch c.Strategy {
	case StrategyKeyword:
	case StrategySemantic:
		if !agentEnabled {
			return fmt.Errorf("semantic strategy requires a configured agent")
		}
	default:
		return fmt.Errorf("unknown strategy: %s", c.Strategy)
	}

	for i, rule := range c.PriorityRules {
		if _, err := priority.ParseLevel(rule.Level); err != nil {
			return fmt.Errorf("priority rule %d: %w", i, err)
		}
		if rule.Confidence < 0 || rule.Confidence > 1 {
			return fmt.Errorf("priority rule %d: confidence %f outside [0, 1]", i, rule.Confidence)
		}
	}
	if confidence := c.PriorityConfidence(); confidence < 0 || confidence > 1 {
		return fmt.Errorf("default_priority_confidence %f outside [0, 1]", confidence)
	}

	if len(c.MediaTypes) == 0 {
		return fmt.Errorf("at least one media type required")
	}

	return nil
}

func defaultDepartments() []DepartmentConfig {
	return []DepartmentConfig{
		{
			Label:      "Engineering Drawings",
			Summary:    "Technical specifications and engineering requirements document",
			Keywords:   []string{"engineering"},
			MatchScore: 0.85,
			BaseScore:  0.30,
		},
		{
			Label:      "Legal Opinions",
			Summary:    "Legal analysis and compliance documentation",
			Keywords:   []string{"legal"},
			MatchScore: 0.80,
			BaseScore:  0.25,
		},
		{
			Label:      "Finance",
			Summary:    "Financial analysis and budget planning document",
			Keywords:   []string{"finance"},
			MatchScore: 0.75,
			BaseScore:  0.35,
		},
		{
			Label:      "HR Policies",
			Summary:    "Human resources policies and procedures",
			Keywords:   []string{"hr"},
			MatchScore: 0.70,
			BaseScore:  0.28,
		},
		{
			Label:      "Safety Circulars",
			Summary:    "Safety protocols and emergency procedures",
			Keywords:   []string{"safety"},
			MatchScore: 0.90,
			BaseScore:  0.40,
		},
		{
			Label:      "Board Meeting Minutes",
			Summary:    "Board meeting discussions and resolutions",
			Keywords:   []string{"board"},
			MatchScore: 0.85,
			BaseScore:  0.32,
		},
		{
			Label:      "Maintenance Job Cards",
			Summary:    "Equipment maintenance and service records",
			Keywords:   []string{"maintenance"},
			MatchScore: 0.65,
			BaseScore:  0.22,
		},
		{
			Label:      "Incident Reports",
			Summary:    "Incident documentation and investigation reports",
			Keywords:   []string{"incident"},
			MatchScore: 0.75,
			BaseScore:  0.26,
		},
		{
			Label:      "Vendor Invoices",
			Summary:    "Vendor payment and invoice processing",
			Keywords:   []string{"vendor"},
			MatchScore: 0.70,
			BaseScore:  0.24,
		},
		{
			Label:      "Purchase Order Correspondence",
			Summary:    "Purchase order and procurement communications",
			Keywords:   []string{"purchase"},
			MatchScore: 0.68,
			BaseScore:  0.20,
		},
		{
			Label:      "Regulatory Directives",
			Summary:    "Regulatory compliance and directive documentation",
			Keywords:   []string{"regulatory"},
			MatchScore: 0.72,
			BaseScore:  0.18,
		},
	}
}
