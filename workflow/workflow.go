package workflow

import (
	"context"
	"fmt"
	"time"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/documark/triage/internal/ranking"
)

// Execute runs the processing pipeline for a single document. It builds the
// linear state graph (extract → score → prioritize → rank), executes it, and
// packages the final state into a Result. On a stage failure the returned
// error carries a StageError; no partial Result is ever returned.
func Execute(ctx context.Context, rt *Runtime, doc Document) (*Result, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initial := state.New(nil)
	initial = initial.Set(KeyDocument, doc)

	final, err := graph.Execute(ctx, initial)
	if err != nil {
		return nil, fmt.Errorf("execute pipeline: %w", err)
	}

	return extractResult(final)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("triage-pipeline")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("extract", ExtractNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("score", ScoreNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("prioritize", PrioritizeNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("rank", RankNode(rt)); err != nil {
		return nil, err
	}

	// Stages are strictly linear; there are no conditional branches and no
	// backward edges.
	if err := graph.AddEdge("extract", "score", nil); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("score", "prioritize", nil); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("prioritize", "rank", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("extract"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("rank"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*Result, error) {
	doc, err := documentFromState(s)
	if err != nil {
		return nil, err
	}

	text, err := textFromState(s)
	if err != nil {
		return nil, err
	}

	priorityResult, err := priorityFromState(s)
	if err != nil {
		return nil, err
	}

	rows, err := rowsFromState(s)
	if err != nil {
		return nil, err
	}

	lowConfidence := false
	if val, ok := s.Get(KeyLowConfidence); ok {
		if flagged, ok := val.(bool); ok {
			lowConfidence = flagged
		}
	}

	return &Result{
		DocumentID:        doc.ID,
		Filename:          doc.Filename,
		Language:          text.Language,
		Priority:          priorityResult,
		Departments:       rows,
		PrimaryDepartment: ranking.Primary(rows),
		LowConfidence:     lowConfidence,
		CompletedAt:       time.Now(),
	}, nil
}
