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
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/thedadreport/family-recipe-garden/internal/config"
	"github.com/thedadreport/family-recipe-garden/internal/shared"
)

const anthropicVersion = "2023-06-01"

// ClaudeClient implements the TextGenerator interface for an
// Anthropic-compatible messages endpoint. Transient failures (network
// errors, timeouts, 5xx) are retried with exponential backoff; 4xx
// responses fail immediately.
type ClaudeClient struct {
	apiURL string
	apiKey string
	model  string
	http   *retryablehttp.Client
}

// NewClaudeClient creates a new ClaudeClient from the given configuration.
func NewClaudeClient(cfg *config.Config) *ClaudeClient {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.MaxRetries
	rc.RetryWaitMin = time.Second
	rc.RetryWaitMax = 8 * time.Second
	rc.Logger = nil
	// Timeout applies per attempt, so a hung request never consumes the
	// whole retry budget.
	rc.HTTPClient = &http.Client{Timeout: cfg.RequestTimeout}
	rc.CheckRetry = checkRetry
	// Surface the final response instead of swallowing it, so status
	// classification below sees what the server last said.
	rc.ErrorHandler = func(resp *http.Response, err error, _ int) (*http.Response, error) {
		return resp, err
	}
	rc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, _ int) {
		if n, ok := req.Context().Value(attemptCounterKey{}).(*int32); ok {
			atomic.AddInt32(n, 1)
		}
	}

	return &ClaudeClient{
		apiURL: cfg.APIURL,
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		http:   rc,
	}
}

type attemptCounterKey struct{}

func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, nil
	}
	if resp != nil && resp.StatusCode >= 500 {
		return true, nil
	}
	return false, nil
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model string `json:"model"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// GenerateContent sends the prompt to the messages endpoint and returns the
// first text block of the response.
func (c *ClaudeClient) GenerateContent(ctx context.Context, prompt string, maxTokens int) (ContentResponse, error) {
	body, err := json.Marshal(claudeRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to encode request: %w", err)
	}

	var attempts int32
	ctx = context.WithValue(ctx, attemptCounterKey{}, &attempts)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
		req.Header.Set("anthropic-version", anthropicVersion)
	}

	resp, err := c.http.Do(req)
	made := int(atomic.LoadInt32(&attempts))
	if err != nil {
		kind := KindNetwork
		var nerr net.Error
		if errors.As(err, &nerr) && nerr.Timeout() || errors.Is(err, context.DeadlineExceeded) {
			kind = KindTimeout
		}
		return ContentResponse{}, &Error{Kind: kind, Attempts: made, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return ContentResponse{}, &Error{Kind: KindServerError, Status: resp.StatusCode, Attempts: made}
	}
	if resp.StatusCode >= 400 {
		return ContentResponse{}, &Error{Kind: KindClientError, Status: resp.StatusCode, Attempts: made}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return ContentResponse{}, &Error{Kind: KindNetwork, Attempts: made, Err: err}
	}

	var parsed claudeResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return ContentResponse{}, &Error{Kind: KindMalformed, Attempts: made, Err: err}
	}
	if len(parsed.Content) == 0 || parsed.Content[0].Text == "" {
		return ContentResponse{}, &Error{Kind: KindMalformed, Attempts: made, Err: errors.New("response contains no text content")}
	}

	text := parsed.Content[0].Text
	usage := shared.TokenUsage{
		PromptTokens:     parsed.Usage.InputTokens,
		CompletionTokens: parsed.Usage.OutputTokens,
		TotalTokens:      parsed.Usage.InputTokens + parsed.Usage.OutputTokens,
		Model:            parsed.Model,
	}
	if usage.TotalTokens == 0 {
		usage.PromptTokens = shared.EstimateTokens(prompt)
		usage.CompletionTokens = shared.EstimateTokens(text)
		usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
		usage.Model = c.model
	}

	return ContentResponse{Content: text, Usage: usage, Attempts: made}, nil
}
