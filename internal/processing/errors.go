package processing

import (
	"errors"
	"net/http"

	"github.com/documark/triage/workflow"
)

// Domain errors for processing operations.
var (
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrEmptyDocument    = errors.New("document is empty")
	ErrInvalidFile      = errors.New("invalid file")
	ErrFileTooLarge     = errors.New("file exceeds maximum upload size")
)

// MapHTTPStatus maps processing errors to HTTP status codes. Pipeline stage
// failures map to 422: the upload was well-formed but could not be processed.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrUnsupportedMedia) {
		return http.StatusUnsupportedMediaType
	}
	if errors.Is(err, ErrEmptyDocument) || errors.Is(err, ErrInvalidFile) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if _, ok := workflow.FailedStage(err); ok {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
