package transcribe

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"mediascribe/internal/core/media"
)

const googleCloudEndpoint = "https://speech.googleapis.com/v1/speech:recognize"

// GoogleCloud is the credentialed Google Cloud Speech-to-Text provider.
// The API key comes from GOOGLE_CLOUD_SPEECH_API_KEY; a missing key is a
// normal, expected failure that just moves the chain along.
type GoogleCloud struct {
	mu       sync.Mutex
	client   *http.Client
	endpoint string
	language string
}

func NewGoogleCloud(language string) *GoogleCloud {
	return &GoogleCloud{
		client:   &http.Client{Timeout: 60 * time.Second},
		endpoint: googleCloudEndpoint,
		language: language,
	}
}

func (g *GoogleCloud) Name() string { return "google-cloud" }

func (g *GoogleCloud) Recognize(ctx context.Context, wavPath string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := os.Getenv("GOOGLE_CLOUD_SPEECH_API_KEY")
	if key == "" {
		return "", fmt.Errorf("GOOGLE_CLOUD_SPEECH_API_KEY not set")
	}

	pcm, err := media.ReadPCM16(wavPath)
	if err != nil {
		return "", fmt.Errorf("failed to read waveform: %w", err)
	}

	payload := map[string]any{
		"config": map[string]any{
			"encoding":        "LINEAR16",
			"sampleRateHertz": media.CanonicalSampleRate,
			"languageCode":    g.language,
		},
		"audio": map[string]any{
			"content": base64.StdEncoding.EncodeToString(pcm),
		},
	}
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	var body []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			g.endpoint+"?key="+key, bytes.NewReader(reqBody))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := g.client.Do(req)
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
			return backoff.Permanent(fmt.Errorf("request rejected: %d: %s", resp.StatusCode, tailStr(string(body), 200)))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 20 * time.Second
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return "", err
	}

	var r struct {
		Results []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &r); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	var parts []string
	for _, res := range r.Results {
		if len(res.Alternatives) > 0 && res.Alternatives[0].Transcript != "" {
			parts = append(parts, strings.TrimSpace(res.Alternatives[0].Transcript))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no speech recognized")
	}
	return strings.Join(parts, " "), nil
}

func tailStr(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
