package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ConfigFileName = "config.yml"
	AppDirName     = "mediascribe"
)

// ConfigDir returns the standard config directory for mediascribe.
// Windows: %APPDATA%\mediascribe\
// macOS/Linux: ~/.config/mediascribe/
func ConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, AppDirName), nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppDirName), nil
}

// ConfigPath returns the path to the config file.
// e.g., ~/.config/mediascribe/config.yml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

type Config struct {
	// Pipeline tuning
	Pipeline PipelineConfig `yaml:"pipeline,omitempty"`

	// Speech-to-text provider order and settings
	Transcription TranscriptionConfig `yaml:"transcription,omitempty"`

	// Chat backend used to answer questions about the transcript
	Chat ChatConfig `yaml:"chat,omitempty"`

	// Server configuration for `mediascribe serve`
	Server ServerConfig `yaml:"server,omitempty"`
}

// PipelineConfig holds knobs for the media transcription pipeline.
type PipelineConfig struct {
	// ChunkDurationMS is the window size for oversized waveforms (default: 30000)
	ChunkDurationMS int `yaml:"chunk_duration_ms,omitempty"`

	// SizeThresholdBytes triggers chunking when the encoded waveform
	// exceeds it (default: 10 MiB, the provider payload limit)
	SizeThresholdBytes int64 `yaml:"size_threshold_bytes,omitempty"`

	// Workers is the number of chunks transcribed concurrently (default: 1)
	Workers int `yaml:"workers,omitempty"`

	// FFmpegPath overrides the ffmpeg binary looked up on PATH
	FFmpegPath string `yaml:"ffmpeg_path,omitempty"`

	// TempDir overrides the directory for intermediate waveforms
	TempDir string `yaml:"temp_dir,omitempty"`
}

// TranscriptionConfig selects and orders speech-to-text providers.
type TranscriptionConfig struct {
	// Providers in priority order. Known names: "google-web",
	// "google-cloud", "openai-whisper". Empty = all three, free first.
	Providers []string `yaml:"providers,omitempty"`

	// Language hint passed to providers (default: "en-US")
	Language string `yaml:"language,omitempty"`

	// ProviderTimeoutSec bounds each provider call (default: 60)
	ProviderTimeoutSec int `yaml:"provider_timeout_sec,omitempty"`
}

// ChatConfig holds the question-answering backend settings.
type ChatConfig struct {
	// Backend is "openai" or "anthropic" (default: "openai")
	Backend string `yaml:"backend,omitempty"`

	// Model overrides the backend's default model
	Model string `yaml:"model,omitempty"`

	// ServerURL, when set, routes questions to a running
	// `mediascribe serve` instead of calling the SDK directly
	ServerURL string `yaml:"server_url,omitempty"`
}

// ServerConfig holds HTTP server settings for `mediascribe serve`.
type ServerConfig struct {
	// Port is the HTTP listen port (default: 8000)
	Port int `yaml:"port,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			ChunkDurationMS:    30000,
			SizeThresholdBytes: 10 * 1024 * 1024,
			Workers:            1,
		},
		Transcription: TranscriptionConfig{
			Providers:          []string{"google-web", "google-cloud", "openai-whisper"},
			Language:           "en-US",
			ProviderTimeoutSec: 60,
		},
		Chat: ChatConfig{
			Backend: "openai",
		},
		Server: ServerConfig{
			Port: 8000,
		},
	}
}

// Exists checks if config file exists
func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config from ~/.config/mediascribe/config.yml
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.Pipeline.TempDir = expandPath(cfg.Pipeline.TempDir)
	cfg.normalize()

	return cfg, nil
}

// normalize fills zero values back in with defaults so a sparse config
// file never produces a zero chunk size or worker count.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Pipeline.ChunkDurationMS <= 0 {
		c.Pipeline.ChunkDurationMS = def.Pipeline.ChunkDurationMS
	}
	if c.Pipeline.SizeThresholdBytes <= 0 {
		c.Pipeline.SizeThresholdBytes = def.Pipeline.SizeThresholdBytes
	}
	if c.Pipeline.Workers <= 0 {
		c.Pipeline.Workers = def.Pipeline.Workers
	}
	if len(c.Transcription.Providers) == 0 {
		c.Transcription.Providers = def.Transcription.Providers
	}
	if c.Transcription.Language == "" {
		c.Transcription.Language = def.Transcription.Language
	}
	if c.Transcription.ProviderTimeoutSec <= 0 {
		c.Transcription.ProviderTimeoutSec = def.Transcription.ProviderTimeoutSec
	}
	if c.Chat.Backend == "" {
		c.Chat.Backend = def.Chat.Backend
	}
	if c.Server.Port <= 0 {
		c.Server.Port = def.Server.Port
	}
}

// expandPath expands the tilde (~) in the path to the user's home directory.
// It handles both forward and backward slashes to ensure cross-platform
// compatibility for configuration files.
func expandPath(path string) string {
	if path == "" {
		return ""
	}

	if strings.HasPrefix(path, "~") {
		// Only expand if it's explicitly "~", "~/", or "~\"
		if len(path) == 1 || path[1] == '/' || path[1] == '\\' {
			home, err := os.UserHomeDir()
			if err == nil {
				subPath := path[1:]
				if len(subPath) > 0 && (subPath[0] == '/' || subPath[0] == '\\') {
					subPath = subPath[1:]
				}
				return filepath.Join(home, subPath)
			}
		}
	}

	return path
}

// Save writes the config to ~/.config/mediascribe/config.yml
func Save(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	configPath, err := ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	header := "# mediascribe configuration file\n# Run 'mediascribe init' to regenerate with defaults\n\n"
	return os.WriteFile(configPath, []byte(header+string(data)), 0644)
}

// Init creates a new config.yml with default values
func Init() error {
	if Exists() {
		path, _ := ConfigPath()
		return fmt.Errorf("%s already exists", path)
	}
	return Save(DefaultConfig())
}

// LoadOrDefault loads config if it exists, otherwise returns defaults
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		cfg = DefaultConfig()
	}
	return cfg
}
