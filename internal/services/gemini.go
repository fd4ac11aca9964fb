// Gemini API implementation of the pipeline's text generator
//
// Calls the generateContent REST endpoint directly rather than going through
// an SDK; the pipeline only needs raw candidate text back.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/desertthunder/mixgen/internal/shared"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-pro"

	// DefaultGenerateTimeout bounds a single model invocation. The request is
	// raced against this deadline; if the deadline wins the call fails with
	// [shared.ErrTimeout] and the in-flight response is abandoned.
	DefaultGenerateTimeout = 50 * time.Second
)

// GeminiService implements the generation pipeline's Generator interface
// against the Gemini generateContent API.
type GeminiService struct {
	apiKey     string
	model      string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// GeminiOpts contains configuration options for creating a GeminiService.
type GeminiOpts struct {
	Config     shared.GeminiConfig
	BaseURL    string        // API base URL override, used in tests
	Timeout    time.Duration // Per-call deadline (default 50s)
	HTTPClient *http.Client
}

// NewGeminiService creates a Gemini client from injected configuration.
//
// A missing API key is not rejected here: the credential check happens per
// call so the failure flows through the pipeline's retry path the same way
// transient errors do.
func NewGeminiService(opts GeminiOpts) *GeminiService {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultGeminiBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultGenerateTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	model := opts.Config.Model
	if model == "" {
		model = defaultGeminiModel
	}

	return &GeminiService{
		apiKey:     opts.Config.APIKey,
		model:      model,
		baseURL:    opts.BaseURL,
		timeout:    opts.Timeout,
		httpClient: opts.HTTPClient,
	}
}

// Name returns the service name.
func (g *GeminiService) Name() string {
	return "Gemini"
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateText sends the prompt to the model and returns the raw candidate
// text, bounded by the configured timeout.
func (g *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("%w: gemini api_key is not set", shared.ErrMissingCredentials)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	apiURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, url.QueryEscape(g.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: model did not respond within %s", shared.ErrTimeout, g.timeout)
		}
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: gemini API status %d: %s", shared.ErrAPIRequest, resp.StatusCode, respBody)
	}

	var data geminiResponse
	if err := json.Unmarshal(respBody, &data); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(data.Candidates) == 0 || len(data.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: gemini response contained no candidates", shared.ErrAPIRequest)
	}

	return data.Candidates[0].Content.Parts[0].Text, nil
}
