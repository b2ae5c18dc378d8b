package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/thedadreport/family-recipe-garden/internal/config"
	"github.com/thedadreport/family-recipe-garden/internal/planner"
	"github.com/thedadreport/family-recipe-garden/internal/recipe"
)

// newBackend serves canned generation text in the messages-endpoint shape.
// An empty text means respond with HTTP 500 instead.
func newBackend(t *testing.T, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if text == "" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		resp := map[string]any{
			"content": []map[string]any{{"type": "text", "text": text}},
			"model":   "test-model",
			"usage":   map[string]int{"input_tokens": 100, "output_tokens": 50},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func newTestApp(t *testing.T, backendURL string) *App {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		APIURL:         backendURL,
		Model:          "test-model",
		Provider:       "claude",
		MaxRetries:     0,
		RequestTimeout: 5 * time.Second,
		DataDir:        dir,
		MetricsDBPath:  filepath.Join(dir, "metrics.db"),
		BudgetDiscount: 0.8,
	}
	a, err := NewFromConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestGeneratePlanFallsBackWhenBackendIsDown(t *testing.T) {
	backend := newBackend(t, "")
	defer backend.Close()
	a := newTestApp(t, backend.URL)
	ctx := context.Background()

	res, err := a.GeneratePlan(ctx, planner.PlanGeneral, planner.DefaultWeeklyProfile())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.GenErr == nil {
		t.Fatal("Expected a generation error to be reported")
	}
	if !res.Meta.Fallback {
		t.Error("Expected fallback to be flagged")
	}
	if len(res.Plan.Meals) != 5 {
		t.Fatalf("Expected 5 meals, got %d", len(res.Plan.Meals))
	}
	for i, m := range res.Plan.Meals {
		if m.IsExpanded {
			t.Errorf("Expected meal %d to be unexpanded", i)
		}
	}
	if len(res.Plan.ShoppingList) == 0 {
		t.Error("Expected a shopping list on the fallback plan")
	}
	if a.Plans.Len() != 1 {
		t.Errorf("Expected plan to be saved, store has %d items", a.Plans.Len())
	}

	usage, err := a.Metrics.GetDailyUsage(ctx, 1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(usage) != 1 || usage[0].Fallbacks != 1 {
		t.Errorf("Expected one recorded fallback, got %+v", usage)
	}
}

func TestGenerateRecipeSavesResult(t *testing.T) {
	backend := newBackend(t, `{"title": "Skillet Chicken", "totalTime": "25 minutes", "servings": "4", "ingredients": ["1 lb chicken"], "instructions": ["Cook it"]}`)
	defer backend.Close()
	a := newTestApp(t, backend.URL)

	res, err := a.GenerateRecipe(context.Background(), recipe.SituationGeneral, recipe.DefaultProfile())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.GenErr != nil {
		t.Fatalf("Expected a clean generation, got %v", res.GenErr)
	}
	if res.Recipe.Title != "Skillet Chicken" {
		t.Errorf("Expected title 'Skillet Chicken', got %q", res.Recipe.Title)
	}

	saved, err := a.Recipes.Get(res.Recipe.ID)
	if err != nil {
		t.Fatalf("Expected recipe to be saved, got %v", err)
	}
	if saved.Title != res.Recipe.Title {
		t.Errorf("Expected saved title %q, got %q", res.Recipe.Title, saved.Title)
	}
}

func TestPlanAlternativesSavesEachPlan(t *testing.T) {
	backend := newBackend(t, `{"meals": [{"day": "Monday", "title": "Tacos", "description": "Beef tacos"}]}`)
	defer backend.Close()
	a := newTestApp(t, backend.URL)

	profile := planner.DefaultWeeklyProfile()
	profile.DinnersNeeded = 2
	results, err := a.PlanAlternatives(context.Background(), planner.PlanGeneral, profile, 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 plans, got %d", len(results))
	}
	if results[0].Plan.ID == results[1].Plan.ID {
		t.Error("Alternatives must have distinct ids")
	}
	if a.Plans.Len() != 2 {
		t.Errorf("Expected both plans saved, store has %d items", a.Plans.Len())
	}
}

func TestExpandMealPersistsPlan(t *testing.T) {
	down := newBackend(t, "")
	defer down.Close()
	a := newTestApp(t, down.URL)
	ctx := context.Background()

	res, err := a.GeneratePlan(ctx, planner.PlanGeneral, planner.DefaultWeeklyProfile())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	planID := res.Plan.ID

	// Bring the backend up for the expansion.
	up := newBackend(t, `{"prepTime": "10 minutes", "cookTime": "20 minutes", "totalTime": "30 minutes", "ingredients": ["2 lbs chicken"], "instructions": ["Season", "Roast"]}`)
	defer up.Close()
	a2 := newTestApp(t, up.URL)
	if err := a2.Plans.Save(res.Plan); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	plan, err := a2.ExpandMeal(ctx, planID, 1, planner.DefaultWeeklyProfile())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !plan.Meals[1].IsExpanded {
		t.Error("Expected meal 1 to be expanded")
	}
	if plan.Meals[0].IsExpanded {
		t.Error("Expected meal 0 to stay unexpanded")
	}

	reloaded, err := a2.Plans.Get(planID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !reloaded.Meals[1].IsExpanded {
		t.Error("Expected expansion to be persisted")
	}

	if _, err := a2.ExpandMeal(ctx, planID, 99, planner.DefaultWeeklyProfile()); err == nil {
		t.Error("Expected an error for an out-of-range meal index")
	}
}

func TestClipFailureIsAnError(t *testing.T) {
	backend := newBackend(t, "{}")
	defer backend.Close()
	a := newTestApp(t, backend.URL)

	pageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer pageServer.Close()

	if _, err := a.ClipRecipe(context.Background(), pageServer.URL); err == nil {
		t.Fatal("Expected an error, got nil")
	}
	if a.Recipes.Len() != 0 {
		t.Errorf("Expected nothing saved, store has %d items", a.Recipes.Len())
	}
}
