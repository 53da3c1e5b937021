package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type TTSClient interface {
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
}

type ttsClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewTTSClient builds a client for the external text-to-speech service.
// The service shares a host with the speech-to-text service, different
// endpoint.
func NewTTSClient(baseURL string) TTSClient {
	if baseURL == "" {
		baseURL = defaultSpeechServiceURL
	}
	return &ttsClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type ttsRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

func (c *ttsClient) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	jsonBody, err := json.Marshal(ttsRequest{Text: text, Language: language})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/synthesize", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("TTS service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("TTS service error: %s - %s", resp.Status, string(respBody))
	}

	return io.ReadAll(resp.Body)
}
