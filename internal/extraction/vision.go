package extraction

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	dcconfig "github.com/JaimeStill/document-context/pkg/config"
	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/encoding"
	"github.com/JaimeStill/document-context/pkg/image"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"golang.org/x/sync/errgroup"

	"github.com/documark/triage/pkg/formatting"
)

const transcribePrompt = `Transcribe every piece of legible text in this image, top to bottom,
preserving reading order. Respond with a JSON object of the form
{"text": "<the transcribed text>"}. If the image contains no legible text,
respond with {"text": ""}.`

type transcription struct {
	Text string `json:"text"`
}

// Vision transcribes image and PDF media through the vision model. PDF pages
// are rendered to PNG images concurrently and transcribed page by page; the
// per-page texts are joined in page order so output is stable for a given
// document.
type Vision struct {
	agent  gaconfig.AgentConfig
	logger *slog.Logger
}

// NewVision creates a Vision extractor bound to the given agent configuration.
func NewVision(agentCfg gaconfig.AgentConfig, logger *slog.Logger) *Vision {
	return &Vision{
		agent:  agentCfg,
		logger: logger.With("system", "extraction"),
	}
}

// ExtractImage transcribes a single image.
func (v *Vision) ExtractImage(ctx context.Context, data []byte, filename string) (NormalizedText, error) {
	format, err := imageFormat(filename)
	if err != nil {
		return NormalizedText{}, err
	}

	a, err := agent.New(&v.agent)
	if err != nil {
		return NormalizedText{}, fmt.Errorf("%w: create agent: %w", ErrNoText, err)
	}

	text, err := transcribe(ctx, a, data, format)
	if err != nil {
		return NormalizedText{}, fmt.Errorf("%w: %s: %w", ErrNoText, filename, err)
	}

	return NormalizedText{Text: text, Language: DetectLanguage(text)}, nil
}

// ExtractPDF renders each page of a PDF to an image and transcribes the pages
// with bounded concurrency. The document is validated with pdfcpu before any
// rendering work is scheduled.
func (v *Vision) ExtractPDF(ctx context.Context, data []byte, filename string) (NormalizedText, error) {
	pageCount, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return NormalizedText{}, fmt.Errorf("%w: %s: %w", ErrNoText, filename, err)
	}

	tempDir, err := os.MkdirTemp("", "triage-extract-*")
	if err != nil {
		return NormalizedText{}, fmt.Errorf("create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	pdfPath := filepath.Join(tempDir, "source.pdf")
	if err := os.WriteFile(pdfPath, data, 0600); err != nil {
		return NormalizedText{}, fmt.Errorf("write temp pdf: %w", err)
	}

	pages, err := renderPages(ctx, pdfPath)
	if err != nil {
		return NormalizedText{}, fmt.Errorf("%w: %s: %w", ErrNoText, filename, err)
	}

	v.logger.Info(
		"pdf pages rendered",
		"filename", filename,
		"page_count", pageCount,
	)

	texts := make([]string, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(len(pages)))

	for i, page := range pages {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			a, err := agent.New(&v.agent)
			if err != nil {
				return fmt.Errorf("create agent: %w", err)
			}

			text, err := transcribe(gctx, a, page, document.PNG)
			if err != nil {
				return fmt.Errorf("page %d: %w", i+1, err)
			}

			texts[i] = text
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return NormalizedText{}, fmt.Errorf("%w: %s: %w", ErrNoText, filename, err)
	}

	text := strings.TrimSpace(strings.Join(texts, "\n\n"))
	return NormalizedText{Text: text, Language: DetectLanguage(text)}, nil
}

func transcribe(ctx context.Context, a agent.Agent, data []byte, format document.ImageFormat) (string, error) {
	dataURI, err := encoding.EncodeImageDataURI(data, format)
	if err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	resp, err := a.Vision(ctx, transcribePrompt, []string{dataURI})
	if err != nil {
		return "", fmt.Errorf("vision call: %w", err)
	}

	parsed, err := formatting.Parse[transcription](resp.Content())
	if err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	return parsed.Text, nil
}

func renderPages(ctx context.Context, pdfPath string) ([][]byte, error) {
	pdfDoc, err := document.OpenPDF(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer pdfDoc.Close()

	renderer, err := image.NewImageMagickRenderer(dcconfig.DefaultImageConfig())
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	allPages, err := pdfDoc.ExtractAllPages()
	if err != nil {
		return nil, fmt.Errorf("extract pages: %w", err)
	}

	rendered := make([][]byte, len(allPages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(len(allPages)))

	for i, page := range allPages {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			data, err := page.ToImage(renderer, nil)
			if err != nil {
				return fmt.Errorf("render page %d: %w", i+1, err)
			}

			rendered[i] = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return rendered, nil
}

func imageFormat(filename string) (document.ImageFormat, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return document.PNG, nil
	case ".jpg", ".jpeg":
		return document.JPEG, nil
	default:
		return document.PNG, fmt.Errorf("%w: %q", ErrUnsupportedType, filepath.Ext(filename))
	}
}

func workerCount(pageCount int) int {
	return max(min(runtime.NumCPU(), pageCount), 1)
}
