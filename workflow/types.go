package workflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/documark/triage/internal/priority"
	"github.com/documark/triage/internal/ranking"
)

// State bag keys used by pipeline nodes.
const (
	KeyDocument      = "document"
	KeyText          = "normalized_text"
	KeyScores        = "score_vector"
	KeyPriority      = "priority_result"
	KeyRows          = "ranked_rows"
	KeyLowConfidence = "low_confidence"
)

// Stage identifies a pipeline stage for failure attribution.
type Stage string

// Pipeline stages, in execution order. Transitions are linear with no
// backward edges and no retries; retry policy belongs to the ingestion layer.
const (
	StageExtract    Stage = "extract"
	StageScore      Stage = "score"
	StagePrioritize Stage = "prioritize"
	StageRank       Stage = "rank"
)

// Document is the unit of pipeline input. It is owned exclusively by one
// pipeline invocation; Data is dropped after extraction and never touched by
// later stages.
type Document struct {
	ID       uuid.UUID `json:"id"`
	Filename string    `json:"filename"`
	Size     int64     `json:"size"`
	Data     []byte    `json:"-"`
}

// WithoutData returns a copy of the document with its raw bytes released.
func (d Document) WithoutData() Document {
	d.Data = nil
	return d
}

// Result is the complete, immutable output of one pipeline invocation.
// Departments has exactly one row per catalog entry; LowConfidence marks
// documents that produced no usable text and were scored by the floor policy.
type Result struct {
	DocumentID        uuid.UUID       `json:"document_id"`
	Filename          string          `json:"filename"`
	Language          string          `json:"language"`
	Priority          priority.Result `json:"priority"`
	Departments       []ranking.Row   `json:"departments"`
	PrimaryDepartment string          `json:"primary_department"`
	LowConfidence     bool            `json:"low_confidence"`
	CompletedAt       time.Time       `json:"completed_at"`
}
