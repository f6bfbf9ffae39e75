// Package infrastructure provides core service initialization for application
// startup. It assembles the common dependencies (logging, lifecycle, the
// department catalog, and summaries) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/documark/triage/internal/catalog"
	"github.com/documark/triage/internal/config"
	"github.com/documark/triage/internal/summaries"
	"github.com/documark/triage/pkg/lifecycle"
)

// Infrastructure holds the core systems required by all domain modules.
// The catalog and summary provider are built once from configuration and
// shared read-only across all request handling.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Catalog   *catalog.Catalog
	Summaries summaries.Provider
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cat, err := catalog.New(cfg.Pipeline.Labels())
	if err != nil {
		return nil, fmt.Errorf("catalog init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Catalog:   cat,
		Summaries: summaries.NewStatic(cfg.Pipeline.SummaryEntries()),
	}, nil
}

// Start registers infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	i.Lifecycle.OnStartup(func() {
		i.Logger.Info("infrastructure ready", "departments", i.Catalog.Size())
	})
	return nil
}
