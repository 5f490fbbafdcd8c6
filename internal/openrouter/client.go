package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dslh/mcp-imagegen/internal/types"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1/chat/completions"
	DefaultReferer = "https://github.com/openrouter-image-gen-mcp"
	DefaultTitle   = "OpenRouter Image Generator MCP"
	DefaultTimeout = 120 * time.Second
)

var (
	ErrMissingAPIKey = errors.New("OPENROUTER_API_KEY environment variable is required")
	ErrNoImage       = errors.New("no image generated in response")
	ErrNoEditedImage = errors.New("no edited image generated in response")
)

// UpstreamError is returned when OpenRouter answers with a non-2xx status
type UpstreamError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("OpenRouter API error: %d %s - %s", e.StatusCode, e.Status, e.Body)
}

// Config holds the connection settings for the chat completions endpoint
type Config struct {
	APIKey  string
	BaseURL string
	Referer string
	Title   string
	Timeout time.Duration

	// HTTPClient overrides the client built from Timeout
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to the OpenRouter chat completions API with image output enabled
type Client struct {
	apiKey  string
	baseURL string
	referer string
	title   string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a client, filling unset fields of cfg with defaults
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		apiKey:  cfg.APIKey,
		baseURL: orDefault(cfg.BaseURL, DefaultBaseURL),
		referer: orDefault(cfg.Referer, DefaultReferer),
		title:   orDefault(cfg.Title, DefaultTitle),
		http:    cfg.HTTPClient,
		logger:  cfg.Logger,
	}
	if c.http == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.http = &http.Client{Timeout: timeout}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// GenerateImage asks the model for a new image and returns it as a data URI
func (c *Client) GenerateImage(ctx context.Context, prompt, model string) (string, error) {
	req := chatRequest{
		Model:      types.ModelOrDefault(model),
		Modalities: []string{"text", "image"},
		Messages: []message{{
			Role:    "user",
			Content: []contentBlock{textBlock("Generate an image: " + prompt)},
		}},
	}

	resp, err := c.complete(ctx, req)
	if err != nil {
		return "", err
	}
	url, ok := resp.firstImageURL()
	if !ok {
		return "", ErrNoImage
	}
	return url, nil
}

// EditImage sends an existing image with edit instructions and returns the
// edited image as a data URI
func (c *Client) EditImage(ctx context.Context, imageURL, editPrompt, model string) (string, error) {
	req := chatRequest{
		Model:      types.ModelOrDefault(model),
		Modalities: []string{"text", "image"},
		Messages: []message{{
			Role: "user",
			Content: []contentBlock{
				imageBlock(imageURL),
				textBlock("Edit this image: " + editPrompt),
			},
		}},
	}

	resp, err := c.complete(ctx, req)
	if err != nil {
		return "", err
	}
	url, ok := resp.firstImageURL()
	if !ok {
		return "", ErrNoEditedImage
	}
	return url, nil
}

func (c *Client) complete(ctx context.Context, body chatRequest) (*chatResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", c.referer)
	req.Header.Set("X-Title", c.title)

	c.logger.Debug("Calling OpenRouter", "model", body.Model, "url", c.baseURL)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OpenRouter request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenRouter response: %w", err)
	}

	c.logger.Debug("OpenRouter responded", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       string(data),
		}
	}

	var out chatResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode OpenRouter response: %w", err)
	}
	return &out, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
