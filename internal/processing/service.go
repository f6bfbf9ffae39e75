package processing

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/documark/triage/internal/ranking"
	"github.com/documark/triage/internal/summaries"
	"github.com/documark/triage/workflow"
)

type service struct {
	rt     *workflow.Runtime
	media  map[string]struct{}
	sorted []string
	logger *slog.Logger
}

// New creates a processing service implementing the System interface.
// mediaTypes is the configured set of accepted file extensions (without dots);
// anything else is rejected before the pipeline runs.
func New(rt *workflow.Runtime, mediaTypes []string, logger *slog.Logger) System {
	media := make(map[string]struct{}, len(mediaTypes))
	sorted := make([]string, 0, len(mediaTypes))
	for _, mt := range mediaTypes {
		normalized := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(mt), "."))
		if normalized == "" {
			continue
		}
		if _, exists := media[normalized]; exists {
			continue
		}
		media[normalized] = struct{}{}
		sorted = append(sorted, normalized)
	}
	slices.Sort(sorted)

	return &service{
		rt:     rt,
		media:  media,
		sorted: sorted,
		logger: logger.With("system", "processing"),
	}
}

func (s *service) Handler(maxUploadSize int64) *Handler {
	return NewHandler(s, s.logger, maxUploadSize)
}

// Process runs the pipeline for one document. Unsupported media types and
// empty uploads fail fast here, before any pipeline stage executes.
func (s *service) Process(ctx context.Context, cmd ProcessCommand) (*workflow.Result, error) {
	if err := s.validate(cmd); err != nil {
		return nil, err
	}

	doc := workflow.Document{
		ID:       uuid.New(),
		Filename: cmd.Filename,
		Size:     int64(len(cmd.Data)),
		Data:     cmd.Data,
	}

	result, err := workflow.Execute(ctx, s.rt, doc)
	if err != nil {
		s.logger.Error(
			"document processing failed",
			"document_id", doc.ID,
			"filename", doc.Filename,
			"error", err,
		)
		return nil, fmt.Errorf("process %s: %w", doc.Filename, err)
	}

	s.logger.Info(
		"document processed",
		"document_id", result.DocumentID,
		"filename", result.Filename,
		"primary", result.PrimaryDepartment,
		"priority", result.Priority.Level,
		"low_confidence", result.LowConfidence,
	)

	return result, nil
}

// ProcessBatch processes documents concurrently with bounded parallelism.
// Failures are isolated per file; one bad document never aborts the batch.
func (s *service) ProcessBatch(ctx context.Context, cmds []ProcessCommand) []BatchResult {
	results := make([]BatchResult, len(cmds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchWorkerCount(len(cmds)))

	for i, cmd := range cmds {
		g.Go(func() error {
			result, err := s.Process(gctx, cmd)
			if err != nil {
				failure := FailureFromError(err)
				results[i] = BatchResult{
					Filename: cmd.Filename,
					Stage:    failure.Stage,
					Error:    failure.Reason,
				}
				return nil
			}

			results[i] = BatchResult{
				Filename: cmd.Filename,
				Result:   result,
			}
			return nil
		})
	}

	g.Wait()
	return results
}

// Departments lists the catalog in canonical order with summaries and
// artifact identifiers.
func (s *service) Departments() []DepartmentInfo {
	labels := s.rt.Catalog.Labels()
	infos := make([]DepartmentInfo, len(labels))

	for i, label := range labels {
		summary, err := s.rt.Summaries.SummaryFor(label)
		if err != nil {
			summary = summaries.Fallback
		}

		infos[i] = DepartmentInfo{
			Index:      i,
			Label:      label,
			Summary:    summary,
			ArtifactID: ranking.ArtifactID(label),
		}
	}

	return infos
}

// MediaTypes returns the accepted file extensions, sorted.
func (s *service) MediaTypes() []string {
	return slices.Clone(s.sorted)
}

func (s *service) validate(cmd ProcessCommand) error {
	if strings.TrimSpace(cmd.Filename) == "" {
		return fmt.Errorf("%w: missing filename", ErrInvalidFile)
	}
	if len(cmd.Data) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyDocument, cmd.Filename)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(cmd.Filename)), ".")
	if ext == "" {
		return fmt.Errorf("%w: %s has no extension", ErrUnsupportedMedia, cmd.Filename)
	}
	if _, ok := s.media[ext]; !ok {
		return fmt.Errorf("%w: .%s", ErrUnsupportedMedia, ext)
	}

	return nil
}

func batchWorkerCount(n int) int {
	return max(min(runtime.NumCPU(), n), 1)
}
