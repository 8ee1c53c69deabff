// Package llm is a minimal client for a local Ollama server's generate API.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

// Defaults used when NewClient is given zero values.
const (
	DefaultURL     = "http://localhost:11434/api/generate"
	DefaultModel   = "llama3"
	DefaultTimeout = 60 * time.Second
)

// maxErrorBody caps how much of an upstream error body is echoed back.
const maxErrorBody = 512

// ErrUpstream indicates the inference server could not be reached or
// returned an unusable response.
var ErrUpstream = errors.New("llm upstream error")

// Generator produces a completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// GenerateRequest is the body posted to the generate endpoint.
type GenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// Client talks to an Ollama-compatible /api/generate endpoint with
// streaming disabled.
type Client struct {
	url   string
	model string
	http  *http.Client
}

// NewClient creates a Client. Empty url or model and a non-positive timeout
// fall back to the package defaults.
func NewClient(url, model string, timeout time.Duration) *Client {
	if strings.TrimSpace(url) == "" {
		url = DefaultURL
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url:   url,
		model: model,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				// The inference server is local; never route through a proxy.
				Proxy: nil,
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:          10,
				IdleConnTimeout:       90 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
	}
}

// Model returns the model used when a request does not name one.
func (c *Client) Model() string {
	return c.model
}

// Generate sends prompt to the inference server and returns the "response"
// field of its reply. A reply without that field yields the empty string.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("%w: client is nil", ErrUpstream)
	}
	if model == "" {
		model = c.model
	}

	payload, err := json.Marshal(GenerateRequest{Model: model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %w", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s: %s", ErrUpstream, resp.Status, upstreamMessage(body))
	}

	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", ErrUpstream, err)
	}
	return out.Response, nil
}

// upstreamMessage extracts Ollama's {"error": "..."} message, falling back
// to a truncated raw body.
func upstreamMessage(body []byte) string {
	var out generateResponse
	if err := json.Unmarshal(body, &out); err == nil && out.Error != "" {
		return out.Error
	}
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return s
}
