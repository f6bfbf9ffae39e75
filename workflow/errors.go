// Package workflow implements the document processing pipeline: a linear
// state graph (extract → score → prioritize → rank) executed once per
// document. Invocations are fully independent and may run in parallel; all
// shared inputs (catalog, rules, summaries) are read-only after startup.
package workflow

import (
	"errors"
	"fmt"
)

// ErrInvalidState indicates a missing or mistyped state bag entry, which is
// a programming error in node wiring.
var ErrInvalidState = errors.New("invalid pipeline state")

// StageError attributes a pipeline failure to the stage that raised it.
// Callers receive the failed stage and cause instead of a partial result.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func failStage(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}

// FailedStage extracts the failing stage from a pipeline error.
func FailedStage(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}
