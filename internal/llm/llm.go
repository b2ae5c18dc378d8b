package llm

import (
	"context"

	"github.com/thedadreport/family-recipe-garden/internal/shared"
)

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content  string
	Usage    shared.TokenUsage
	Attempts int
}

// TextGenerator is an interface for generating text from a prompt with a
// response token budget. Implementations must be safe for concurrent use.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string, maxTokens int) (ContentResponse, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}
