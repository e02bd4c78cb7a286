// File: services/intelligence/tts.go
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TTSClient forwards text to the speech-synthesis service and returns the
// rendered audio bytes plus their content type.
type TTSClient struct {
	BaseURL string
	client  *http.Client
}

func NewTTSClient(baseURL string) *TTSClient {
	return &TTSClient{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

func (c *TTSClient) Synthesize(ctx context.Context, text string) ([]byte, string, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/synthesize", bytes.NewReader(body))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("tts service http %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("tts read failed: %w", err)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	return audio, contentType, nil
}
