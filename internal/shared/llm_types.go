package shared

import (
	"time"
)

// TokenUsage tracks the tokens consumed by a generation request. When the
// endpoint does not report usage, values are estimated from text length.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// CallMeta holds operational metadata for a single generation call.
type CallMeta struct {
	AgentName string
	Usage     TokenUsage
	Latency   time.Duration
	Attempts  int
	Fallback  bool
}

// EstimateTokens gives a rough token count for English text, roughly one
// token per four characters.
func EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}
