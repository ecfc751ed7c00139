package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultHTTPTimeout = 60 * time.Second

// Config captures the runtime settings required to talk to the inference API.
type Config struct {
	BaseURL        string
	APIToken       string
	TimeoutSeconds int
}

// Client calls hosted model endpoints of the Hugging Face Inference API shape:
// POST {base}/models/{model} with {"inputs": ...}.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client (useful for tests).
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs an inference client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			BaseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			APIToken:       strings.TrimSpace(cfg.APIToken),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Score is one label with its model confidence.
type Score struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// StatusError reports a non-success HTTP response from the inference API.
type StatusError struct {
	StatusCode int
	Model      string
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inference request: model %s: http %d: %s", e.Model, e.StatusCode, e.Message)
}

// Classify runs a text-classification model and returns all label scores.
func (c *Client) Classify(ctx context.Context, model, text string) ([]Score, error) {
	body, err := c.invoke(ctx, model, text)
	if err != nil {
		return nil, err
	}

	// Classification endpoints answer [[{label,score},...]] for a single
	// input, but some models flatten to [{label,score},...]. Accept both.
	var nested [][]Score
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 {
		return nested[0], nil
	}
	var flat []Score
	if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}
	return nil, fmt.Errorf("inference response: model %s: unexpected classification payload: %s", model, snippet(body))
}

// Translate runs a translation model and returns the translated text.
func (c *Client) Translate(ctx context.Context, model, text string) (string, error) {
	body, err := c.invoke(ctx, model, text)
	if err != nil {
		return "", err
	}

	var results []struct {
		TranslationText string `json:"translation_text"`
	}
	if err := json.Unmarshal(body, &results); err != nil || len(results) == 0 {
		return "", fmt.Errorf("inference response: model %s: unexpected translation payload: %s", model, snippet(body))
	}
	return results[0].TranslationText, nil
}

type inferenceRequest struct {
	Inputs  string           `json:"inputs"`
	Options inferenceOptions `json:"options"`
}

type inferenceOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

func (c *Client) invoke(ctx context.Context, model, text string) ([]byte, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("inference request: model id required")
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("inference request: input text required")
	}

	payload := inferenceRequest{
		Inputs:  text,
		Options: inferenceOptions{WaitForModel: true},
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("inference request: encode body: %w", err)
	}

	endpoint := c.cfg.BaseURL + "/models/" + model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("inference request: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference request: model %s: %w", model, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("inference request: model %s: read body: %w", model, err)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Model:      model,
			Message:    apiErrorMessage(body),
		}
	}
	return body, nil
}

// apiErrorMessage extracts the error field the API puts in failure bodies,
// falling back to a trimmed snippet of the raw body.
func apiErrorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return snippet(body)
}

func snippet(body []byte) string {
	clean := strings.Join(strings.Fields(string(body)), " ")
	const limit = 160
	runes := []rune(clean)
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	if clean == "" {
		return "<empty>"
	}
	return clean
}
