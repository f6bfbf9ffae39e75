package processing

import (
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/documark/triage/pkg/handlers"
	"github.com/documark/triage/pkg/routes"
)

// Handler provides HTTP endpoints for document processing operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a Handler with the given system, logger, and upload size limit.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "processing"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for processing endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/process",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Process},
			{Method: "POST", Pattern: "/batch", Handler: h.Batch},
		},
	}
}

// CatalogRoutes returns the route group for catalog inspection endpoints.
func (h *Handler) CatalogRoutes() routes.Group {
	return routes.Group{
		Prefix: "/departments",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Departments},
		},
	}
}

// MediaRoutes returns the route group for the supported media types endpoint.
func (h *Handler) MediaRoutes() routes.Group {
	return routes.Group{
		Prefix: "/media-types",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.MediaTypes},
		},
	}
}

// Process accepts a multipart form upload with a single "file" field and
// returns the processing result, or a {stage, reason} failure payload.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	cmd := ProcessCommand{
		Data:     data,
		Filename: header.Filename,
	}

	result, err := h.sys.Process(r.Context(), cmd)
	if err != nil {
		h.logger.Error("processing failed", "filename", cmd.Filename, "error", err)
		handlers.RespondJSON(w, MapHTTPStatus(err), FailureFromError(err))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Batch accepts a multipart form upload with one or more "files" fields and
// returns per-file results. Individual failures do not fail the batch.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	cmds := make([]ProcessCommand, 0, len(r.MultipartForm.File["files"]))
	for _, header := range r.MultipartForm.File["files"] {
		data, err := readFile(header)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
			return
		}
		cmds = append(cmds, ProcessCommand{Data: data, Filename: header.Filename})
	}

	results := h.sys.ProcessBatch(r.Context(), cmds)
	handlers.RespondJSON(w, http.StatusOK, results)
}

// Departments returns the catalog in canonical order.
func (h *Handler) Departments(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.Departments())
}

// MediaTypes returns the configured accepted media types.
func (h *Handler) MediaTypes(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string][]string{
		"media_types": h.sys.MediaTypes(),
	})
}

func readFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
