// Package chat answers natural-language questions using a transcript as
// context, through a pluggable completion backend.
package chat

import (
	"context"
	"fmt"

	"mediascribe/internal/core/config"
)

// Answerer is a chat-completion backend: one question in, one answer out.
type Answerer interface {
	Answer(ctx context.Context, prompt string) (string, error)

	// Name returns the backend name.
	Name() string
}

// New creates an Answerer based on configuration. A configured server URL
// takes priority and routes questions to a running `mediascribe serve`.
func New(cfg config.ChatConfig) (Answerer, error) {
	if cfg.ServerURL != "" {
		return NewHTTP(cfg.ServerURL), nil
	}

	switch cfg.Backend {
	case "", "openai":
		return NewOpenAI(cfg.Model)
	case "anthropic":
		return NewAnthropic(cfg.Model)
	default:
		return nil, fmt.Errorf("unsupported chat backend: %s", cfg.Backend)
	}
}
