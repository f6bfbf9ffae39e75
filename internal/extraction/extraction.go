// Package extraction converts raw document bytes into normalized text with a
// best-effort language tag. Plain text media decode locally; image and PDF
// media are transcribed through the vision model. Extraction sits at the
// pipeline boundary: a document's raw bytes are not touched again once its
// text exists.
package extraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// Extraction errors. ErrNoText means no usable text could be produced and the
// pipeline fails at the extract stage; empty-but-extracted text is not an
// error and degrades downstream instead.
var (
	ErrNoText          = errors.New("no usable text extracted")
	ErrUnsupportedType = errors.New("no extractor for media type")
)

// NormalizedText is the read-only product of extraction, shared by the
// scorer and the priority classifier within a single pipeline invocation.
type NormalizedText struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// Empty reports whether the text is empty or whitespace-only.
func (t NormalizedText) Empty() bool {
	return strings.TrimSpace(t.Text) == ""
}

// Extractor converts raw document bytes and a filename into NormalizedText.
type Extractor interface {
	Extract(ctx context.Context, data []byte, filename string) (NormalizedText, error)
}

// Router dispatches extraction by file extension: plain decoding for text
// media, vision transcription for images and PDFs. A nil vision extractor
// restricts the router to plain text media.
type Router struct {
	plain  Plain
	vision *Vision
	logger *slog.Logger
}

// NewRouter creates a Router. vision may be nil when no agent is configured.
func NewRouter(vision *Vision, logger *slog.Logger) *Router {
	return &Router{
		vision: vision,
		logger: logger.With("system", "extraction"),
	}
}

// Extract dispatches to the extractor registered for the file's extension.
func (r *Router) Extract(ctx context.Context, data []byte, filename string) (NormalizedText, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".txt":
		return r.plain.Extract(ctx, data, filename)
	case ".pdf":
		if r.vision == nil {
			return NormalizedText{}, fmt.Errorf("%w: %s (vision agent not configured)", ErrUnsupportedType, ext)
		}
		return r.vision.ExtractPDF(ctx, data, filename)
	case ".jpg", ".jpeg", ".png":
		if r.vision == nil {
			return NormalizedText{}, fmt.Errorf("%w: %s (vision agent not configured)", ErrUnsupportedType, ext)
		}
		return r.vision.ExtractImage(ctx, data, filename)
	default:
		return NormalizedText{}, fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
}
