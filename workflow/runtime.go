package workflow

import (
	"log/slog"

	"github.com/documark/triage/internal/catalog"
	"github.com/documark/triage/internal/extraction"
	"github.com/documark/triage/internal/priority"
	"github.com/documark/triage/internal/scoring"
	"github.com/documark/triage/internal/summaries"
)

// Runtime bundles the read-only dependencies that pipeline nodes require.
// It is constructed once by higher-level composition code and shared across
// concurrent invocations.
type Runtime struct {
	Catalog   *catalog.Catalog
	Extractor extraction.Extractor
	Scorer    scoring.Scorer
	Priority  priority.Classifier
	Summaries summaries.Provider
	Logger    *slog.Logger
}
