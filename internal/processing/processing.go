// Package processing implements the document processing domain: media-type
// gating at the ingestion boundary, single and batch pipeline execution, and
// the HTTP surface that returns results to callers. Nothing is persisted;
// each document is processed in-process and its result returned synchronously.
package processing

import (
	"github.com/documark/triage/workflow"
)

// ProcessCommand carries one document to process.
type ProcessCommand struct {
	Data     []byte
	Filename string
}

// BatchResult reports the outcome of a single file within a batch.
// On success, Result is populated. On failure, Error describes the problem
// and Stage names the pipeline stage that failed, when one did.
type BatchResult struct {
	Filename string           `json:"filename"`
	Result   *workflow.Result `json:"result,omitempty"`
	Stage    string           `json:"stage,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// Failure is the payload returned for a failed document: the failing stage
// and the reason, never a half-populated result table.
type Failure struct {
	Stage  string `json:"stage"`
	Reason string `json:"reason"`
}

// FailureFromError builds a Failure payload, attributing the pipeline stage
// when the error carries one. Ingestion-boundary rejections have no stage.
func FailureFromError(err error) Failure {
	f := Failure{Reason: err.Error()}
	if stage, ok := workflow.FailedStage(err); ok {
		f.Stage = string(stage)
	}
	return f
}

// DepartmentInfo describes one catalog entry for the departments endpoint.
type DepartmentInfo struct {
	Index      int    `json:"index"`
	Label      string `json:"label"`
	Summary    string `json:"summary"`
	ArtifactID string `json:"artifact_id"`
}
