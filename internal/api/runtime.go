package api

import (
	"github.com/documark/triage/internal/config"
	"github.com/documark/triage/internal/infrastructure"
)

// Runtime extends Infrastructure with a module-scoped logger.
type Runtime struct {
	*infrastructure.Infrastructure
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Catalog:   infra.Catalog,
			Summaries: infra.Summaries,
		},
	}
}
