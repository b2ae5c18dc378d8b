package recipe

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/thedadreport/family-recipe-garden/internal/llm"
)

type mockTextGen struct {
	content    string
	err        error
	calls      int
	lastPrompt string
	lastTokens int
}

func (m *mockTextGen) GenerateContent(_ context.Context, prompt string, maxTokens int) (llm.ContentResponse, error) {
	m.calls++
	m.lastPrompt = prompt
	m.lastTokens = maxTokens
	if m.err != nil {
		return llm.ContentResponse{Attempts: 1}, m.err
	}
	return llm.ContentResponse{Content: m.content, Attempts: 1}, nil
}

func TestGenerate(t *testing.T) {
	profile := DefaultProfile()

	t.Run("Success", func(t *testing.T) {
		gen := NewGenerator(&mockTextGen{content: `{"title": "Lemon Chicken", "totalTime": "35 minutes"}`})
		result := gen.Generate(context.Background(), SituationGeneral, profile)
		if result.GenErr != nil {
			t.Fatalf("Expected no generation error, got %v", result.GenErr)
		}
		if result.Meta.Fallback {
			t.Error("Successful generation must not be flagged as fallback")
		}
		if result.Recipe.Title != "Lemon Chicken" {
			t.Errorf("Unexpected title: %q", result.Recipe.Title)
		}
	})

	t.Run("BackendFailureFallsBack", func(t *testing.T) {
		gen := NewGenerator(&mockTextGen{err: &llm.Error{Kind: llm.KindServerError, Status: 503, Attempts: 3}})
		result := gen.Generate(context.Background(), SituationOnePot, profile)
		if result.GenErr == nil {
			t.Fatal("Expected the generation error to be reported")
		}
		if !result.Meta.Fallback {
			t.Error("Fallback flag must be set")
		}
		if result.Recipe == nil || result.Recipe.Title != "One-Pot Chicken and Vegetables" {
			t.Error("Expected the one-pot fallback recipe")
		}
	})

	t.Run("MalformedResponseFallsBack", func(t *testing.T) {
		gen := NewGenerator(&mockTextGen{content: "Sure! Here's an idea: pasta."})
		result := gen.Generate(context.Background(), SituationGeneral, profile)
		if result.GenErr == nil || !result.Meta.Fallback {
			t.Fatal("Unparseable output must resolve to a fallback")
		}
	})

	t.Run("TokenBudget", func(t *testing.T) {
		mock := &mockTextGen{content: `{"title": "x"}`}
		NewGenerator(mock).Generate(context.Background(), SituationGeneral, profile)
		if mock.lastTokens != 1500 {
			t.Errorf("Expected 1500 max tokens, got %d", mock.lastTokens)
		}
	})
}

func TestRetryLast(t *testing.T) {
	gen := NewGenerator(&mockTextGen{content: `{"title": "x"}`})

	if _, err := gen.RetryLast(context.Background()); err == nil {
		t.Fatal("Expected an error before any generation")
	}

	gen.Generate(context.Background(), SituationDumpBake, UserProfile{Adults: 1, Kids: 2})
	result, err := gen.RetryLast(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Recipe.Situation != SituationDumpBake {
		t.Error("Retry should re-run the last situation")
	}
}

func TestGenerateVariations(t *testing.T) {
	mock := &mockTextGen{content: `{"title": "x"}`}
	gen := NewGenerator(mock)
	gen.variationDelay = 0

	results := gen.GenerateVariations(context.Background(), SituationGeneral, DefaultProfile(), 3)
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	if mock.calls != 3 {
		t.Errorf("Expected 3 backend calls, got %d", mock.calls)
	}
	if !strings.Contains(mock.lastPrompt, "(variation 3)") {
		t.Error("Later variations should nudge the prompt")
	}
	if results[0].Recipe.ID == results[1].Recipe.ID {
		t.Error("Variations must have distinct ids")
	}
}

func TestDietaryVariant(t *testing.T) {
	base := &Recipe{
		ID:           1,
		Title:        "Mac and Cheese",
		Servings:     "4",
		TotalTime:    "30 minutes",
		Ingredients:  []string{"pasta", "cheddar"},
		Instructions: []string{"Boil", "Mix"},
	}

	t.Run("MergesOntoBase", func(t *testing.T) {
		gen := NewGenerator(&mockTextGen{content: `{"title": "Vegan Mac", "ingredients": ["pasta", "cashew sauce"]}`})
		out, _, err := gen.DietaryVariant(context.Background(), base, "vegan")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if out.Title != "Vegan Mac" {
			t.Errorf("Unexpected title: %q", out.Title)
		}
		if len(out.Ingredients) != 2 || out.Ingredients[1] != "cashew sauce" {
			t.Error("Ingredients should come from the response")
		}
		if len(out.Instructions) != 2 {
			t.Error("Missing fields keep the base values")
		}
		if out.ID == base.ID {
			t.Error("Variant gets a new id")
		}
	})

	t.Run("FailurePropagates", func(t *testing.T) {
		gen := NewGenerator(&mockTextGen{err: errors.New("down")})
		if _, _, err := gen.DietaryVariant(context.Background(), base, "vegan"); err == nil {
			t.Fatal("Expected an error")
		}
	})
}

func TestScale(t *testing.T) {
	base := &Recipe{
		ID:          1,
		Title:       "Chili",
		Servings:    "4-6",
		Ingredients: []string{"2 lbs beef"},
	}

	mock := &mockTextGen{content: `{"ingredients": ["4 lbs beef"], "totalTime": "90 minutes"}`}
	gen := NewGenerator(mock)
	out, _, err := gen.Scale(context.Background(), base, 8)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out.Title != "Chili (8 servings)" {
		t.Errorf("Unexpected title: %q", out.Title)
	}
	if out.Servings != "8" {
		t.Errorf("Unexpected servings: %q", out.Servings)
	}
	if out.TotalTime != "90 minutes" {
		t.Errorf("Unexpected total time: %q", out.TotalTime)
	}
	if mock.lastTokens != 1000 {
		t.Errorf("Expected 1000 max tokens for scaling, got %d", mock.lastTokens)
	}
	if !strings.Contains(mock.lastPrompt, "from 4 servings to 8 servings") {
		t.Error("Prompt should carry the parsed current serving count")
	}
}
