package extraction

import (
	"context"
	"strings"
)

// Plain decodes text media directly: the bytes are normalized to valid UTF-8
// and tagged with a detected language. Whitespace-only output is returned
// as-is; downstream stages apply their floor policies.
type Plain struct{}

// Extract normalizes data to UTF-8 text with a best-effort language tag.
func (Plain) Extract(_ context.Context, data []byte, _ string) (NormalizedText, error) {
	text := strings.ToValidUTF8(string(data), "�")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	return NormalizedText{
		Text:     text,
		Language: DetectLanguage(text),
	}, nil
}
