package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Shriiii01/know-your-local-offers/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Synthesizer converts reply text to speech. English text goes through the
// primary provider when a key is configured; everything else, and any primary
// failure, falls back to the public translate endpoint.
type Synthesizer struct {
	elevenLabs config.ElevenLabsConfig
	fallback   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewSynthesizer creates a new speech synthesizer
func NewSynthesizer(elevenLabs config.ElevenLabsConfig, tts config.TTSConfig, logger *zap.Logger) *Synthesizer {
	return &Synthesizer{
		elevenLabs: elevenLabs,
		fallback:   strings.TrimSuffix(tts.FallbackBaseURL, "/"),
		httpClient: &http.Client{Timeout: elevenLabs.Timeout},
		logger:     logger,
	}
}

// Synthesize converts text to MP3 audio. The language is an ISO 639-1 code
// and defaults to English when empty.
func (s *Synthesizer) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("no text provided")
	}
	if language == "" {
		language = "en"
	}

	if language == "en" && s.elevenLabs.APIKey != "" {
		audio, err := s.synthesizeElevenLabs(ctx, text)
		if err == nil {
			return audio, nil
		}
		s.logger.Warn("primary speech provider failed, using fallback", zap.Error(err))
	}

	return s.synthesizeFallback(ctx, text, language)
}

func (s *Synthesizer) synthesizeElevenLabs(ctx context.Context, text string) ([]byte, error) {
	body, err := json.Marshal(map[string]any{
		"text":     text,
		"model_id": "eleven_multilingual_v2",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s",
		strings.TrimSuffix(s.elevenLabs.BaseURL, "/"), s.elevenLabs.VoiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", s.elevenLabs.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("speech API returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}

	return data, nil
}

func (s *Synthesizer) synthesizeFallback(ctx context.Context, text, language string) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("q", text)
	q.Set("tl", language)
	q.Set("client", "tw-ob")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.fallback+"/translate_tts?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fallback speech endpoint returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}

	return data, nil
}
