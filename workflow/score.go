package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/documark/triage/internal/scoring"
)

// ScoreNode returns the state node that maps NormalizedText to a per-department
// relevance vector via the configured scoring strategy.
func ScoreNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		text, err := textFromState(s)
		if err != nil {
			return s, failStage(StageScore, err)
		}

		scores, err := rt.Scorer.Score(ctx, text)
		if err != nil {
			return s, failStage(StageScore, err)
		}

		if err := scores.Validate(rt.Catalog); err != nil {
			return s, failStage(StageScore, err)
		}

		rt.Logger.InfoContext(
			ctx, "score stage complete",
			"departments", len(scores),
		)

		s = s.Set(KeyScores, scores)
		return s, nil
	})
}

func scoresFromState(s state.State) (scoring.Vector, error) {
	val, ok := s.Get(KeyScores)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidState, KeyScores)
	}

	scores, ok := val.(scoring.Vector)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not Vector", ErrInvalidState, KeyScores)
	}

	return scores, nil
}
