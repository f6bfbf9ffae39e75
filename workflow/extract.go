package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/documark/triage/internal/extraction"
)

// ExtractNode returns the state node that converts the document's raw bytes
// into NormalizedText. The raw bytes are released from the state bag once
// text exists. Extraction producing no text at all fails the pipeline here;
// empty-but-extracted text only flags the invocation low-confidence and
// processing continues under the floor policies.
func ExtractNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		doc, err := documentFromState(s)
		if err != nil {
			return s, failStage(StageExtract, err)
		}

		text, err := rt.Extractor.Extract(ctx, doc.Data, doc.Filename)
		if err != nil {
			return s, failStage(StageExtract, err)
		}

		lowConfidence := text.Empty()
		if lowConfidence {
			rt.Logger.WarnContext(
				ctx, "document produced no usable text",
				"document_id", doc.ID,
				"filename", doc.Filename,
			)
		}

		rt.Logger.InfoContext(
			ctx, "extract stage complete",
			"document_id", doc.ID,
			"language", text.Language,
			"chars", len(text.Text),
		)

		s = s.Set(KeyDocument, doc.WithoutData())
		s = s.Set(KeyText, text)
		s = s.Set(KeyLowConfidence, lowConfidence)
		return s, nil
	})
}

func documentFromState(s state.State) (Document, error) {
	val, ok := s.Get(KeyDocument)
	if !ok {
		return Document{}, fmt.Errorf("%w: missing %s", ErrInvalidState, KeyDocument)
	}

	doc, ok := val.(Document)
	if !ok {
		return Document{}, fmt.Errorf("%w: %s is not Document", ErrInvalidState, KeyDocument)
	}

	return doc, nil
}

func textFromState(s state.State) (extraction.NormalizedText, error) {
	val, ok := s.Get(KeyText)
	if !ok {
		return extraction.NormalizedText{}, fmt.Errorf("%w: missing %s", ErrInvalidState, KeyText)
	}

	text, ok := val.(extraction.NormalizedText)
	if !ok {
		return extraction.NormalizedText{}, fmt.Errorf("%w: %s is not NormalizedText", ErrInvalidState, KeyText)
	}

	return text, nil
}
