// Package tts synthesizes spoken panda replies. Failure is non-fatal: the
// caller keeps the text reply and drops the audio.
package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SampleRate is the PCM rate the speech endpoint emits (protocol-mandated).
const SampleRate = 24000

// Client streams 16-bit mono PCM for a text via the hosted speech endpoint.
type Client struct {
	HTTPClient *http.Client
	APIKey     string
	BaseURL    string
	Voice      string
}

func New(apiKey, baseURL, voice string) *Client {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		APIKey:     apiKey,
		BaseURL:    baseURL,
		Voice:      voice,
	}
}

type speechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

// Synthesize returns the full PCM buffer for text.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("tts api key missing")
	}
	body, _ := json.Marshal(speechRequest{
		Model:          "tts-1",
		Input:          text,
		Voice:          c.Voice,
		ResponseFormat: "pcm",
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/audio/speech", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tts error: status=%d body=%s", resp.StatusCode, string(b))
	}
	pcm, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tts read: %w", err)
	}
	if len(pcm) == 0 {
		return nil, fmt.Errorf("tts: no audio data received")
	}
	return pcm, nil
}
