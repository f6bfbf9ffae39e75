package processing

import (
	"context"

	"github.com/documark/triage/workflow"
)

// System defines the public contract for document processing operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	Process(ctx context.Context, cmd ProcessCommand) (*workflow.Result, error)
	ProcessBatch(ctx context.Context, cmds []ProcessCommand) []BatchResult
	Departments() []DepartmentInfo
	MediaTypes() []string
}
