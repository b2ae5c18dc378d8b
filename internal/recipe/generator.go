package recipe

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/thedadreport/family-recipe-garden/internal/jsonutil"
	"github.com/thedadreport/family-recipe-garden/internal/llm"
	"github.com/thedadreport/family-recipe-garden/internal/shared"
)

const (
	maxTokensGenerate = 1500
	maxTokensScale    = 1000
)

// Generator turns a situation and family profile into a recipe. Generation
// failures of any kind resolve to a fallback recipe, never an error: the
// caller always gets something cookable.
type Generator struct {
	textGen        llm.TextGenerator
	variationDelay time.Duration

	mu            sync.Mutex
	lastSituation string
	lastProfile   UserProfile
	hasLast       bool
}

// NewGenerator creates a new Generator.
func NewGenerator(textGen llm.TextGenerator) *Generator {
	return &Generator{textGen: textGen, variationDelay: time.Second}
}

// Result is the outcome of one generation. When GenErr is set the recipe is
// a fallback and Meta.Fallback is true.
type Result struct {
	Recipe *Recipe
	Meta   shared.CallMeta
	GenErr error
}

// Generate produces a recipe for the situation and remembers the request so
// RetryLast can re-run it.
func (g *Generator) Generate(ctx context.Context, situation string, profile UserProfile) Result {
	g.mu.Lock()
	g.lastSituation = situation
	g.lastProfile = profile
	g.hasLast = true
	g.mu.Unlock()

	return g.generate(ctx, situation, profile)
}

// RetryLast re-runs the most recent Generate request. Returns an error only
// when nothing has been generated yet.
func (g *Generator) RetryLast(ctx context.Context) (Result, error) {
	g.mu.Lock()
	situation, profile, ok := g.lastSituation, g.lastProfile, g.hasLast
	g.mu.Unlock()
	if !ok {
		return Result{}, errors.New("no previous generation to retry")
	}
	return g.generate(ctx, situation, profile), nil
}

func (g *Generator) generate(ctx context.Context, situation string, profile UserProfile) Result {
	start := time.Now()
	meta := shared.CallMeta{AgentName: "RecipeGenerator"}

	prompt, err := BuildPrompt(situation, profile)
	if err != nil {
		return g.fallbackResult(situation, profile, meta, start, err)
	}

	resp, err := g.textGen.GenerateContent(ctx, prompt, maxTokensGenerate)
	meta.Usage = resp.Usage
	meta.Attempts = resp.Attempts
	if err != nil {
		return g.fallbackResult(situation, profile, meta, start, err)
	}

	r, err := Parse(resp.Content, situation, profile)
	if err != nil {
		return g.fallbackResult(situation, profile, meta, start, err)
	}

	meta.Latency = time.Since(start)
	return Result{Recipe: r, Meta: meta}
}

func (g *Generator) fallbackResult(situation string, profile UserProfile, meta shared.CallMeta, start time.Time, cause error) Result {
	meta.Fallback = true
	meta.Latency = time.Since(start)
	return Result{Recipe: Fallback(situation, profile), Meta: meta, GenErr: cause}
}

// GenerateVariations produces up to count recipes for the same situation,
// nudging the prompt per iteration so results differ. A short pause between
// calls keeps backends from rate limiting.
func (g *Generator) GenerateVariations(ctx context.Context, situation string, profile UserProfile, count int) []Result {
	results := make([]Result, 0, count)
	for i := 0; i < count; i++ {
		modified := profile
		if i > 0 {
			modified.Ingredients += fmt.Sprintf(" (variation %d)", i+1)
		}
		results = append(results, g.generate(ctx, situation, modified))

		if i < count-1 && g.variationDelay > 0 {
			select {
			case <-ctx.Done():
				return results
			case <-time.After(g.variationDelay):
			}
		}
	}
	return results
}

// DietaryVariant rewrites a saved recipe for a dietary modification. Unlike
// Generate there is no sensible fallback for an arbitrary base recipe, so
// failures return an error.
func (g *Generator) DietaryVariant(ctx context.Context, base *Recipe, modification string) (*Recipe, shared.CallMeta, error) {
	start := time.Now()
	meta := shared.CallMeta{AgentName: "DietaryVariant"}

	prompt, err := BuildDietaryVariantPrompt(base, modification)
	if err != nil {
		return nil, meta, err
	}
	resp, err := g.textGen.GenerateContent(ctx, prompt, maxTokensGenerate)
	meta.Usage = resp.Usage
	meta.Attempts = resp.Attempts
	meta.Latency = time.Since(start)
	if err != nil {
		return nil, meta, err
	}

	var raw rawRecipe
	if err := jsonutil.Unmarshal(resp.Content, &raw); err != nil {
		return nil, meta, err
	}
	title := fmt.Sprintf("%s (%s)", base.Title, modification)
	return mergeVariant(base, raw, title), meta, nil
}

// Scale rewrites a recipe's quantities for a new serving count.
func (g *Generator) Scale(ctx context.Context, base *Recipe, newServings int) (*Recipe, shared.CallMeta, error) {
	start := time.Now()
	meta := shared.CallMeta{AgentName: "ScaleRecipe"}

	current := leadingInt(base.Servings, 4)
	prompt, err := BuildScalePrompt(base, current, newServings)
	if err != nil {
		return nil, meta, err
	}
	resp, err := g.textGen.GenerateContent(ctx, prompt, maxTokensScale)
	meta.Usage = resp.Usage
	meta.Attempts = resp.Attempts
	meta.Latency = time.Since(start)
	if err != nil {
		return nil, meta, err
	}

	var raw rawRecipe
	if err := jsonutil.Unmarshal(resp.Content, &raw); err != nil {
		return nil, meta, err
	}

	out := *base
	out.ID = shared.NextID()
	out.CreatedAt = time.Now()
	out.Title = fmt.Sprintf("%s (%d servings)", base.Title, newServings)
	out.Servings = fmt.Sprintf("%d", newServings)
	if s := raw.Ingredients.Strings(); len(s) > 0 {
		out.Ingredients = s
	}
	if s := raw.Instructions.Strings(); len(s) > 0 {
		out.Instructions = s
	}
	if s := raw.Tips.Strings(); len(s) > 0 {
		out.Tips = s
	}
	if raw.TotalTime != "" {
		out.TotalTime = string(raw.TotalTime)
	}
	return &out, meta, nil
}

// leadingInt parses the digits at the start of text, so "4-6 servings"
// reads as 4.
func leadingInt(text string, fallback int) int {
	n, seen := 0, false
	for _, r := range text {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		seen = true
	}
	if !seen || n == 0 {
		return fallback
	}
	return n
}
