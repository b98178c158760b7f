package chat

import (
	"strings"
	"testing"

	"mediascribe/internal/core/config"
)

func configWith(backend, serverURL string) config.ChatConfig {
	return config.ChatConfig{Backend: backend, ServerURL: serverURL}
}

func TestFormatTranscript(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "numbers sentences",
			text: "Hello world. This is a test. Goodbye.",
			want: "1. Hello world\n2. This is a test\n3. Goodbye",
		},
		{
			name: "skips empty fragments",
			text: "One.. Two.  . Three",
			want: "1. One\n2. Two\n3. Three",
		},
		{
			name: "single sentence without period",
			text: "just some words",
			want: "1. just some words",
		},
		{
			name: "empty input",
			text: "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTranscript(tt.text); got != tt.want {
				t.Errorf("FormatTranscript() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	got := BuildPrompt("1. Hello world", "What was said?")

	if !strings.Contains(got, "1. Hello world") {
		t.Error("prompt missing the transcript")
	}
	if !strings.Contains(got, "Question: What was said?") {
		t.Error("prompt missing the question")
	}
	if !strings.Contains(got, "cannot be found in the transcription") {
		t.Error("prompt missing the grounding instruction")
	}
	if !strings.HasSuffix(got, "Answer:") {
		t.Error("prompt should end with the answer cue")
	}
}

func TestNewBackendSelection(t *testing.T) {
	t.Run("server url wins", func(t *testing.T) {
		a, err := New(configWith("anthropic", "http://localhost:8000"))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if a.Name() != "http" {
			t.Errorf("backend = %q, want http", a.Name())
		}
	})

	t.Run("unknown backend rejected", func(t *testing.T) {
		if _, err := New(configWith("bard", "")); err == nil {
			t.Error("expected error for unknown backend")
		}
	})
}
