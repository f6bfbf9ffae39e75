package api

import (
	"net/http"

	"github.com/documark/triage/internal/config"
	"github.com/documark/triage/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	handler := domain.Processing.Handler(cfg.API.MaxUploadSizeBytes())

	routes.Register(
		mux,
		handler.Routes(),
		handler.CatalogRoutes(),
		handler.MediaRoutes(),
	)
}
