package ocr

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

// Client extracts text from uploaded document images via an external OCR service
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Result holds the text recognized from a single document image
type Result struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// NewClient creates a new OCR client
func NewClient(cfg *config.OCRConfig) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// ExtractText uploads an image and returns just the recognized text
func (c *Client) ExtractText(ctx context.Context, image []byte, filename string) (string, error) {
	result, err := c.Extract(ctx, image, filename)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

// Extract uploads an image and returns the recognized text
func (c *Client) Extract(ctx context.Context, image []byte, filename string) (*Result, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("OCR service is not configured")
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("no image data provided")
	}
	if filename == "" {
		filename = "document.jpg"
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build form file: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("failed to write image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse/image", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("OCR service returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	result.Text = strings.TrimSpace(result.Text)

	return &result, nil
}
