package api

import (
	"fmt"

	"github.com/documark/triage/internal/config"
	"github.com/documark/triage/internal/extraction"
	"github.com/documark/triage/internal/priority"
	"github.com/documark/triage/internal/processing"
	"github.com/documark/triage/internal/scoring"
	"github.com/documark/triage/workflow"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Processing processing.System
}

// NewDomain creates all domain systems from the API runtime. The extractor,
// scorer, and classifier are assembled per configuration: vision extraction
// and the semantic strategy require a configured agent.
func NewDomain(cfg *config.Config, runtime *Runtime) (*Domain, error) {
	var vision *extraction.Vision
	if cfg.Agent.Enabled() {
		vision = extraction.NewVision(cfg.Agent.AgentConfig(), runtime.Logger)
	}

	scorer, err := newScorer(cfg, runtime)
	if err != nil {
		return nil, fmt.Errorf("scorer init failed: %w", err)
	}

	rules, err := cfg.Pipeline.ClassifierRules()
	if err != nil {
		return nil, fmt.Errorf("priority rules invalid: %w", err)
	}

	classifier, err := priority.NewKeywordClassifier(rules, cfg.Pipeline.PriorityConfidence())
	if err != nil {
		return nil, fmt.Errorf("classifier init failed: %w", err)
	}

	rt := &workflow.Runtime{
		Catalog:   runtime.Catalog,
		Extractor: extraction.NewRouter(vision, runtime.Logger),
		Scorer:    scorer,
		Priority:  classifier,
		Summaries: runtime.Summaries,
		Logger:    runtime.Logger,
	}

	return &Domain{
		Processing: processing.New(rt, cfg.Pipeline.MediaTypes, runtime.Logger),
	}, nil
}

func newScorer(cfg *config.Config, runtime *Runtime) (scoring.Scorer, error) {
	switch cfg.Pipeline.Strategy {
	case config.StrategySemantic:
		return scoring.NewSemanticScorer(
			runtime.Catalog,
			cfg.Agent.AgentConfig(),
			cfg.Pipeline.Floor(),
			runtime.Logger,
		)
	default:
		return scoring.NewKeywordScorer(
			runtime.Catalog,
			cfg.Pipeline.ScoringRules(),
			cfg.Pipeline.Floor(),
		)
	}
}
