package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/documark/triage/internal/priority"
)

// PrioritizeNode returns the state node that classifies document urgency.
// Priority is a separate concern from department relevance; the node only
// shares the read-only NormalizedText with the scorer.
func PrioritizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		text, err := textFromState(s)
		if err != nil {
			return s, failStage(StagePrioritize, err)
		}

		result, err := rt.Priority.Classify(ctx, text)
		if err != nil {
			return s, failStage(StagePrioritize, err)
		}

		rt.Logger.InfoContext(
			ctx, "prioritize stage complete",
			"level", result.Level,
			"confidence", result.Confidence,
		)

		s = s.Set(KeyPriority, result)
		return s, nil
	})
}

func priorityFromState(s state.State) (priority.Result, error) {
	val, ok := s.Get(KeyPriority)
	if !ok {
		return priority.Result{}, fmt.Errorf("%w: missing %s", ErrInvalidState, KeyPriority)
	}

	result, ok := val.(priority.Result)
	if !ok {
		return priority.Result{}, fmt.Errorf("%w: %s is not Result", ErrInvalidState, KeyPriority)
	}

	return result, nil
}
