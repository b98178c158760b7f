// Package transcribe turns canonical waveforms into text through an ordered
// chain of speech-recognition providers and assembles per-chunk results into
// a full transcript.
package transcribe

import (
	"context"
	"fmt"
	"time"

	"mediascribe/internal/core/config"
	"mediascribe/internal/core/logger"
)

// Provider is a single speech-to-text backend. Recognize returns the
// recognized text for one canonical waveform file. Implementations serialize
// their own calls, so one Provider value is safe for concurrent chunks.
type Provider interface {
	Recognize(ctx context.Context, wavPath string) (string, error)

	// Name returns the provider name for logs and error reports.
	Name() string
}

// Attempt records one failed provider call while walking the chain.
type Attempt struct {
	Provider string
	Err      error
}

// ExhaustedError reports that every provider in the chain failed for a chunk.
type ExhaustedError struct {
	Chunk    int
	Attempts []Attempt
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all %d providers failed for chunk %d", len(e.Attempts), e.Chunk)
}

// Chain tries providers in fixed priority order and returns the first
// success. Individual provider failures are logged and swallowed; only full
// exhaustion surfaces, as an *ExhaustedError.
type Chain struct {
	providers []Provider
	timeout   time.Duration
	log       *logger.Logger
}

// NewChain builds a provider chain from the configured priority order.
// Unknown provider names are rejected rather than silently skipped.
func NewChain(cfg config.TranscriptionConfig, log *logger.Logger) (*Chain, error) {
	if log == nil {
		log = logger.New()
	}

	var providers []Provider
	for _, name := range cfg.Providers {
		switch name {
		case "google-web":
			providers = append(providers, NewGoogleWeb(cfg.Language))
		case "google-cloud":
			providers = append(providers, NewGoogleCloud(cfg.Language))
		case "openai-whisper":
			providers = append(providers, NewOpenAIWhisper())
		default:
			return nil, fmt.Errorf("unknown transcription provider: %s", name)
		}
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("no transcription providers configured")
	}

	return &Chain{
		providers: providers,
		timeout:   time.Duration(cfg.ProviderTimeoutSec) * time.Second,
		log:       log,
	}, nil
}

// NewChainWith builds a chain from explicit providers, used by tests and by
// callers that construct providers themselves.
func NewChainWith(timeout time.Duration, log *logger.Logger, providers ...Provider) *Chain {
	if log == nil {
		log = logger.New()
	}
	return &Chain{providers: providers, timeout: timeout, log: log}
}

// Recognize walks the chain for one chunk. A missing credential, quota hit,
// network error, or timeout just moves on to the next provider.
func (c *Chain) Recognize(ctx context.Context, wavPath string, chunk int) (string, error) {
	var attempts []Attempt

	for _, p := range c.providers {
		text, err := c.recognizeOne(ctx, p, wavPath)
		if err == nil {
			c.log.WithField("provider", p.Name()).WithField("chunk", chunk).Debug("provider succeeded")
			return text, nil
		}
		c.log.WithField("provider", p.Name()).WithField("chunk", chunk).
			WithError(err).Warn("provider failed, trying next")
		attempts = append(attempts, Attempt{Provider: p.Name(), Err: err})

		if ctx.Err() != nil {
			break
		}
	}

	return "", &ExhaustedError{Chunk: chunk, Attempts: attempts}
}

func (c *Chain) recognizeOne(ctx context.Context, p Provider, wavPath string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return p.Recognize(ctx, wavPath)
}
