package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const defaultSpeechServiceURL = "http://speech:8000"

// ErrNotRecognized means the speech service produced no usable text in any
// of the attempt languages.
var ErrNotRecognized = errors.New("speech could not be recognized")

// defaultAttemptLanguages is the ordered list of recognition language hints.
// The order is significant: English (Indian) is tried before Hindi.
var defaultAttemptLanguages = []string{"en-IN", "hi-IN"}

type TranscriptionClient interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

type speechClient struct {
	baseURL    string
	languages  []string
	httpClient *http.Client
}

// NewSpeechClient builds a client for the external speech-to-text service.
// languages overrides the recognition-attempt order; nil keeps the default.
func NewSpeechClient(baseURL string, languages []string) TranscriptionClient {
	if baseURL == "" {
		baseURL = defaultSpeechServiceURL
	}
	if len(languages) == 0 {
		languages = defaultAttemptLanguages
	}
	return &speechClient{
		baseURL:   baseURL,
		languages: languages,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Transcribe runs one recognition attempt per configured language, in order,
// and returns the first non-empty transcript. Transport failures are not
// retried; only an empty transcript advances to the next language hint.
func (c *speechClient) Transcribe(ctx context.Context, audio []byte) (string, error) {
	for _, language := range c.languages {
		text, err := c.transcribeOnce(ctx, audio, language)
		if err != nil {
			return "", err
		}
		if text != "" {
			return text, nil
		}
	}
	return "", ErrNotRecognized
}

type sttResponse struct {
	Text string `json:"text"`
}

func (c *speechClient) transcribeOnce(ctx context.Context, audio []byte, language string) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	if err := writer.WriteField("language", language); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transcribe", body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("speech service unreachable: %w", err)
	}
	defer resp.Body.Close()

	// The service answers 422 when it heard nothing it could transcribe in
	// the hinted language; that is not a transport failure.
	if resp.StatusCode == http.StatusUnprocessableEntity {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("speech service error: %s - %s", resp.Status, string(respBody))
	}

	var result sttResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Text, nil
}
