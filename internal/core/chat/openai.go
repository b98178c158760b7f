package chat

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI implements Answerer using OpenAI GPT (official SDK).
type OpenAI struct {
	client openai.Client
	model  openai.ChatModel
}

// NewOpenAI creates a new OpenAI answerer. The key comes from
// OPENAI_API_KEY.
func NewOpenAI(model string) (*OpenAI, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}

	m := openai.ChatModel(model)
	if model == "" {
		m = openai.ChatModelGPT4o
	}

	return &OpenAI{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  m,
	}, nil
}

// Name returns the backend name.
func (o *OpenAI) Name() string { return "openai" }

// Answer sends the grounded prompt as a single chat completion.
func (o *OpenAI) Answer(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a helpful assistant that provides accurate answers based on the given context."),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}
	return resp.Choices[0].Message.Content, nil
}
