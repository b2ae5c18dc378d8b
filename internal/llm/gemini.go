package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/thedadreport/family-recipe-garden/internal/config"
	"github.com/thedadreport/family-recipe-garden/internal/shared"
)

// GeminiClient implements the TextGenerator interface using the Gemini API.
// Retries are left to the underlying SDK; failures classify like any other
// backend so the orchestrators treat both providers the same.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a new GeminiClient.
func NewGeminiClient(ctx context.Context, cfg *config.Config) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: cfg.Model}, nil
}

// GenerateContent sends the prompt to the Gemini API and returns the
// generated text.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, maxTokens int) (ContentResponse, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetMaxOutputTokens(int32(maxTokens))

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		kind := KindNetwork
		if errors.Is(err, context.DeadlineExceeded) {
			kind = KindTimeout
		}
		return ContentResponse{}, &Error{Kind: kind, Attempts: 1, Err: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ContentResponse{}, &Error{Kind: KindMalformed, Attempts: 1, Err: errors.New("response contains no candidates")}
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok || text == "" {
		return ContentResponse{}, &Error{Kind: KindMalformed, Attempts: 1, Err: errors.New("response part is not text")}
	}

	usage := shared.TokenUsage{Model: c.model}
	if resp.UsageMetadata != nil {
		usage.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		usage.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	} else {
		usage.PromptTokens = shared.EstimateTokens(prompt)
		usage.CompletionTokens = shared.EstimateTokens(string(text))
		usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	}

	return ContentResponse{Content: string(text), Usage: usage, Attempts: 1}, nil
}

// Close closes the underlying client connection.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}
