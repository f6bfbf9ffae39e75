package formatting_test

import (
	"errors"
	"testing"

	"github.com/documark/triage/pkg/formatting"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n         int64
		precision int
		want      string
	}{
		{0, 2, "0 B"},
		{512, 0, "512 B"},
		{1024, 0, "1 KB"},
		{1536, 1, "1.5 KB"},
		{50 * 1024 * 1024, 0, "50 MB"},
		{1024 * 1024 * 1024, 2, "1.00 GB"},
	}

	for _, tt := range tests {
		if got := formatting.FormatBytes(tt.n, tt.precision); got != tt.want {
			t.Errorf("FormatBytes(%d, %d) = %q, want %q", tt.n, tt.precision, got, tt.want)
		}
	}
}

func TestParseBytes(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"50MB", 50 * 1024 * 1024, false},
		{"2 GB", 2 * 1024 * 1024 * 1024, false},
		{"1024", 1024, false},
		{"1.5 KB", 1536, false},
		{"100kb", 100 * 1024, false},
		{"", 0, true},
		{"fifty MB", 0, true},
		{"10 XB", 0, true},
	}

	for _, tt := range tests {
		got, err := formatting.ParseBytes(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseBytes(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseBytes(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBytes(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	type payload struct {
		Text string `json:"text"`
	}

	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{
			name:    "direct json",
			content: `{"text": "hello"}`,
			want:    "hello",
		},
		{
			name:    "fenced json",
			content: "```json\n{\"text\": \"fenced\"}\n```",
			want:    "fenced",
		},
		{
			name:    "fenced without language",
			content: "```\n{\"text\": \"bare\"}\n```",
			want:    "bare",
		},
		{
			name:    "surrounding whitespace",
			content: "  {\"text\": \"trimmed\"}  ",
			want:    "trimmed",
		},
		{
			name:    "not json",
			content: "I could not transcribe the document.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.Parse[payload](tt.content)
			if tt.wantErr {
				if !errors.Is(err, formatting.ErrParseFailed) {
					t.Fatalf("expected ErrParseFailed, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got.Text != tt.want {
				t.Errorf("text = %q, want %q", got.Text, tt.want)
			}
		})
	}
}

func TestParseMap(t *testing.T) {
	got, err := formatting.Parse[map[string]float64](`{"Finance": 0.75, "Legal Opinions": 0.25}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got["Finance"] != 0.75 {
		t.Errorf("Finance = %v", got["Finance"])
	}
}
