package transcribe

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIWhisper transcribes through the OpenAI Whisper API. The key comes
// from OPENAI_API_KEY; its absence is a normal failure, not fatal.
type OpenAIWhisper struct {
	mu    sync.Mutex
	model string
}

func NewOpenAIWhisper() *OpenAIWhisper {
	return &OpenAIWhisper{model: "whisper-1"}
}

func (o *OpenAIWhisper) Name() string { return "openai-whisper" }

func (o *OpenAIWhisper) Recognize(ctx context.Context, wavPath string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	client := openai.NewClient(apiKey)
	resp, err := client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    o.model,
		FilePath: wavPath,
	})
	if err != nil {
		return "", fmt.Errorf("transcription API error: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
