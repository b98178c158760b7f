package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// HTTP implements Answerer against a running `mediascribe serve` instance,
// for setups that keep the chat credentials on one machine.
type HTTP struct {
	client  *http.Client
	baseURL string
}

func NewHTTP(baseURL string) *HTTP {
	return &HTTP{
		client:  &http.Client{Timeout: 90 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Name returns the backend name.
func (h *HTTP) Name() string { return "http" }

// Answer posts the prompt to the chat endpoint and returns the response
// text, retrying transient server errors.
func (h *HTTP) Answer(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(map[string]string{"message": prompt})
	if err != nil {
		return "", err
	}

	var body []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			h.baseURL+"/api/v1/chat", bytes.NewReader(reqBody))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := h.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error: %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("request rejected: %d", resp.StatusCode))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return "", err
	}

	var r struct {
		Response string `json:"response"`
		Error    string `json:"error"`
	}
	if err := json.Unmarshal(body, &r); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if r.Error != "" {
		return "", fmt.Errorf("chat service error: %s", r.Error)
	}
	return r.Response, nil
}
