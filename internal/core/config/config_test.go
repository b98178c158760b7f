package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Empty path",
			input:    "",
			expected: "",
		},
		{
			name:     "Absolute path",
			input:    "/absolute/path",
			expected: "/absolute/path",
		},
		{
			name:     "Home directory only",
			input:    "~",
			expected: home,
		},
		{
			name:     "Home directory with forward slash",
			input:    "~/scratch",
			expected: filepath.Join(home, "scratch"),
		},
		{
			name:     "Invalid tilde use (middle)",
			input:    "/path/~/test",
			expected: "/path/~/test",
		},
		{
			name:     "Invalid tilde use (no separator)",
			input:    "~user",
			expected: "~user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expandPath(tt.input)
			if got != tt.expected {
				t.Errorf("expandPath(%q) = %q; want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.normalize()

	if cfg.Pipeline.ChunkDurationMS != 30000 {
		t.Errorf("ChunkDurationMS = %d; want 30000", cfg.Pipeline.ChunkDurationMS)
	}
	if cfg.Pipeline.SizeThresholdBytes != 10*1024*1024 {
		t.Errorf("SizeThresholdBytes = %d; want 10 MiB", cfg.Pipeline.SizeThresholdBytes)
	}
	if cfg.Pipeline.Workers != 1 {
		t.Errorf("Workers = %d; want 1", cfg.Pipeline.Workers)
	}
	if len(cfg.Transcription.Providers) != 3 || cfg.Transcription.Providers[0] != "google-web" {
		t.Errorf("Providers = %v; want free provider first", cfg.Transcription.Providers)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("Port = %d; want 8000", cfg.Server.Port)
	}
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Pipeline.Workers = 4
	cfg.Transcription.Providers = []string{"openai-whisper"}
	cfg.normalize()

	if cfg.Pipeline.Workers != 4 {
		t.Errorf("Workers = %d; want 4", cfg.Pipeline.Workers)
	}
	if len(cfg.Transcription.Providers) != 1 {
		t.Errorf("Providers = %v; want explicit single provider", cfg.Transcription.Providers)
	}
}
