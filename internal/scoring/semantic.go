package scoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/documark/triage/internal/catalog"
	"github.com/documark/triage/internal/extraction"
	"github.com/documark/triage/pkg/formatting"
)

// ErrScoreFailed indicates the semantic strategy could not obtain a usable
// response from the model.
var ErrScoreFailed = errors.New("semantic scoring failed")

// SemanticScorer is an agent-backed scoring strategy. The model is asked for
// a JSON object of per-department scores; the response is normalized against
// the catalog so the downstream contract holds regardless of model behavior:
// non-catalog labels are dropped, missing departments take the floor score,
// and values are clamped to [0, 1].
type SemanticScorer struct {
	catalog *catalog.Catalog
	agent   gaconfig.AgentConfig
	floor   float64
	logger  *slog.Logger
}

// NewSemanticScorer creates a SemanticScorer bound to the given agent configuration.
func NewSemanticScorer(
	cat *catalog.Catalog,
	agentCfg gaconfig.AgentConfig,
	floor float64,
	logger *slog.Logger,
) (*SemanticScorer, error) {
	if floor < 0 || floor > 1 {
		return nil, fmt.Errorf("%w: floor = %v", ErrScoreOutOfRange, floor)
	}

	return &SemanticScorer{
		catalog: cat,
		agent:   agentCfg,
		floor:   floor,
		logger:  logger.With("scorer", "semantic"),
	}, nil
}

// Score asks the model for per-department relevance and normalizes the
// response to the catalog. Empty text short-circuits to the floor vector
// without a model call.
func (s *SemanticScorer) Score(ctx context.Context, text extraction.NormalizedText) (Vector, error) {
	if text.Empty() {
		return Floor(s.catalog, s.floor), nil
	}

	a, err := agent.New(&s.agent)
	if err != nil {
		return nil, fmt.Errorf("%w: create agent: %w", ErrScoreFailed, err)
	}

	resp, err := a.Chat(ctx, s.prompt(text.Text))
	if err != nil {
		return nil, fmt.Errorf("%w: chat call: %w", ErrScoreFailed, err)
	}

	parsed, err := formatting.Parse[map[string]float64](resp.Content())
	if err != nil {
		return nil, fmt.Errorf("%w: parse response: %w", ErrScoreFailed, err)
	}

	return s.normalize(ctx, parsed), nil
}

func (s *SemanticScorer) prompt(text string) string {
	var sb strings.Builder
	sb.WriteString("Rate how relevant the document below is to each department. ")
	sb.WriteString("Respond with a single JSON object mapping every department name ")
	sb.WriteString("to a score between 0.0 and 1.0. Use exactly these department names:\n\n")

	for _, label := range s.catalog.Labels() {
		sb.WriteString("- ")
		sb.WriteString(label)
		sb.WriteString("\n")
	}

	sb.WriteString("\nDocument:\n\n")
	sb.WriteString(text)
	return sb.String()
}

func (s *SemanticScorer) normalize(ctx context.Context, raw map[string]float64) Vector {
	v := Floor(s.catalog, s.floor)

	for label, score := range raw {
		if !s.catalog.Contains(label) {
			s.logger.WarnContext(
				ctx, "dropping non-catalog label from model response",
				"label", label,
			)
			continue
		}
		v[label] = clamp(score)
	}

	return v
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
