package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/Shriiii01/know-your-local-offers/internal/infrastructure/config"
)

// Transcriber handles communication with an OpenAI-compatible audio transcription API
type Transcriber struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewTranscriber creates a new audio transcription client
func NewTranscriber(cfg *config.OpenAIConfig) *Transcriber {
	return &Transcriber{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		model:      cfg.TranscribeModel,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Transcribe uploads audio bytes and returns the recognized text. The
// language hint is an ISO 639-1 code and may be empty for auto-detection.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, filename, language string) (string, error) {
	if t.apiKey == "" {
		return "", fmt.Errorf("transcription API key is not configured")
	}
	if len(audio) == 0 {
		return "", fmt.Errorf("no audio data provided")
	}
	if filename == "" {
		filename = "audio.wav"
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := writer.WriteField("model", t.model); err != nil {
		return "", fmt.Errorf("failed to write model field: %w", err)
	}
	if language != "" {
		if err := writer.WriteField("language", language); err != nil {
			return "", fmt.Errorf("failed to write language field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("transcription API returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return strings.TrimSpace(result.Text), nil
}
