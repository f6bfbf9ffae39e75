package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/documark/triage/internal/ranking"
)

// RankNode returns the state node that assembles the deterministic ranked
// department table from the score vector.
func RankNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		scores, err := scoresFromState(s)
		if err != nil {
			return s, failStage(StageRank, err)
		}

		rows, err := ranking.Assemble(rt.Catalog, scores, rt.Summaries, rt.Logger)
		if err != nil {
			return s, failStage(StageRank, err)
		}

		rt.Logger.InfoContext(
			ctx, "rank stage complete",
			"rows", len(rows),
			"primary", ranking.Primary(rows),
		)

		s = s.Set(KeyRows, rows)
		return s, nil
	})
}

func rowsFromState(s state.State) ([]ranking.Row, error) {
	val, ok := s.Get(KeyRows)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidState, KeyRows)
	}

	rows, ok := val.([]ranking.Row)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not []Row", ErrInvalidState, KeyRows)
	}

	return rows, nil
}
