// Package app wires the generation backends, stores, and metrics together
// and exposes the operations the CLI fronts.
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/thedadreport/family-recipe-garden/internal/clipper"
	"github.com/thedadreport/family-recipe-garden/internal/config"
	"github.com/thedadreport/family-recipe-garden/internal/llm"
	"github.com/thedadreport/family-recipe-garden/internal/metrics"
	"github.com/thedadreport/family-recipe-garden/internal/planner"
	"github.com/thedadreport/family-recipe-garden/internal/recipe"
	"github.com/thedadreport/family-recipe-garden/internal/shared"
	"github.com/thedadreport/family-recipe-garden/internal/storage"
)

// App holds the application's dependencies.
type App struct {
	cfg *config.Config

	textGen       llm.TextGenerator
	generator     *recipe.Generator
	mealPlanner   *planner.Planner
	recipeClipper *clipper.Clipper

	Recipes *storage.RecipeStore
	Plans   *storage.PlanStore
	Metrics *metrics.Store

	closer llm.Closer
}

// NewApp assembles an App from already-constructed dependencies.
func NewApp(
	cfg *config.Config,
	textGen llm.TextGenerator,
	recipes *storage.RecipeStore,
	plans *storage.PlanStore,
	metricsStore *metrics.Store,
) *App {
	return &App{
		cfg:           cfg,
		textGen:       textGen,
		generator:     recipe.NewGenerator(textGen),
		mealPlanner:   planner.NewPlanner(textGen, cfg.BudgetDiscount),
		recipeClipper: clipper.NewClipper(textGen, recipes),
		Recipes:       recipes,
		Plans:         plans,
		Metrics:       metricsStore,
	}
}

// NewFromConfig builds the full dependency graph from configuration: the
// generation backend selected by the provider, both JSON stores, and the
// metrics database.
func NewFromConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	var textGen llm.TextGenerator
	var closer llm.Closer
	switch cfg.Provider {
	case "gemini":
		client, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
		}
		textGen = client
		closer = client
	default:
		textGen = llm.NewClaudeClient(cfg)
	}

	recipes, err := storage.NewRecipeStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize recipe store: %w", err)
	}
	plans, err := storage.NewPlanStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize plan store: %w", err)
	}
	metricsStore, err := metrics.NewStore(cfg.MetricsDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics store: %w", err)
	}

	a := NewApp(cfg, textGen, recipes, plans, metricsStore)
	a.closer = closer
	return a, nil
}

// Close releases the backend client and the metrics database.
func (a *App) Close() error {
	if a.closer != nil {
		if err := a.closer.Close(); err != nil {
			log.Printf("Warning: failed to close backend client: %v", err)
		}
	}
	if a.Metrics != nil {
		return a.Metrics.Close()
	}
	return nil
}

func (a *App) record(ctx context.Context, meta shared.CallMeta) {
	if a.Metrics == nil {
		return
	}
	if err := a.Metrics.RecordMeta(ctx, meta); err != nil {
		log.Printf("Warning: failed to record metrics for %s: %v", meta.AgentName, err)
	}
}

// GenerateRecipe generates a recipe for the situation and saves it. The
// returned result is a fallback when the backend was unavailable; that is
// reported through Result.GenErr, not an error.
func (a *App) GenerateRecipe(ctx context.Context, situation string, profile recipe.UserProfile) (recipe.Result, error) {
	res := a.generator.Generate(ctx, situation, profile)
	a.record(ctx, res.Meta)
	if res.GenErr != nil {
		log.Printf("Generation failed, serving fallback recipe: %v", res.GenErr)
	}
	if err := a.Recipes.Save(res.Recipe); err != nil {
		return res, fmt.Errorf("failed to save recipe: %w", err)
	}
	return res, nil
}

// RetryRecipe re-runs the most recent recipe request and saves the result.
func (a *App) RetryRecipe(ctx context.Context) (recipe.Result, error) {
	res, err := a.generator.RetryLast(ctx)
	if err != nil {
		return recipe.Result{}, err
	}
	a.record(ctx, res.Meta)
	if err := a.Recipes.Save(res.Recipe); err != nil {
		return res, fmt.Errorf("failed to save recipe: %w", err)
	}
	return res, nil
}

// RecipeVariations generates several takes on the same situation and saves
// the batch in one write.
func (a *App) RecipeVariations(ctx context.Context, situation string, profile recipe.UserProfile, count int) ([]recipe.Result, error) {
	results := a.generator.GenerateVariations(ctx, situation, profile, count)
	recipes := make([]*recipe.Recipe, 0, len(results))
	for _, res := range results {
		a.record(ctx, res.Meta)
		recipes = append(recipes, res.Recipe)
	}
	if err := a.Recipes.SaveAll(recipes); err != nil {
		return results, fmt.Errorf("failed to save recipes: %w", err)
	}
	return results, nil
}

// DietaryVariant rewrites a saved recipe for a dietary modification and
// saves the variant alongside the original.
func (a *App) DietaryVariant(ctx context.Context, recipeID int64, modification string) (*recipe.Recipe, error) {
	base, err := a.Recipes.Get(recipeID)
	if err != nil {
		return nil, err
	}
	variant, meta, err := a.generator.DietaryVariant(ctx, base, modification)
	a.record(ctx, meta)
	if err != nil {
		return nil, err
	}
	if err := a.Recipes.Save(variant); err != nil {
		return nil, fmt.Errorf("failed to save variant: %w", err)
	}
	return variant, nil
}

// ScaleRecipe rewrites a saved recipe for a new serving count and saves the
// scaled copy.
func (a *App) ScaleRecipe(ctx context.Context, recipeID int64, servings int) (*recipe.Recipe, error) {
	base, err := a.Recipes.Get(recipeID)
	if err != nil {
		return nil, err
	}
	scaled, meta, err := a.generator.Scale(ctx, base, servings)
	a.record(ctx, meta)
	if err != nil {
		return nil, err
	}
	if err := a.Recipes.Save(scaled); err != nil {
		return nil, fmt.Errorf("failed to save scaled recipe: %w", err)
	}
	return scaled, nil
}

// GeneratePlan generates a weekly meal plan and saves it. Backend failures
// surface as a saved fallback plan, reported through PlanResult.GenErr.
func (a *App) GeneratePlan(ctx context.Context, planType string, profile planner.WeeklyProfile) (planner.PlanResult, error) {
	res := a.mealPlanner.GeneratePlan(ctx, planType, profile)
	a.record(ctx, res.Meta)
	if res.GenErr != nil {
		log.Printf("Generation failed, serving fallback plan: %v", res.GenErr)
	}
	if err := a.Plans.Save(res.Plan); err != nil {
		return res, fmt.Errorf("failed to save plan: %w", err)
	}
	return res, nil
}

// RetryPlan re-runs the most recent plan request and saves the result.
func (a *App) RetryPlan(ctx context.Context) (planner.PlanResult, error) {
	res, err := a.mealPlanner.RetryLast(ctx)
	if err != nil {
		return planner.PlanResult{}, err
	}
	a.record(ctx, res.Meta)
	if err := a.Plans.Save(res.Plan); err != nil {
		return res, fmt.Errorf("failed to save plan: %w", err)
	}
	return res, nil
}

// PlanAlternatives generates several plans of the same type and saves the
// batch in one write.
func (a *App) PlanAlternatives(ctx context.Context, planType string, profile planner.WeeklyProfile, count int) ([]planner.PlanResult, error) {
	results := a.mealPlanner.Alternatives(ctx, planType, profile, count)
	plans := make([]*planner.MealPlan, 0, len(results))
	for _, res := range results {
		a.record(ctx, res.Meta)
		plans = append(plans, res.Plan)
	}
	if err := a.Plans.SaveAll(plans); err != nil {
		return results, fmt.Errorf("failed to save plans: %w", err)
	}
	return results, nil
}

// ExpandMeal fills in recipe details for one meal of a saved plan and
// persists the updated plan. The slot is always expanded afterwards, with a
// generic fallback when generation failed.
func (a *App) ExpandMeal(ctx context.Context, planID int64, mealIndex int, profile planner.WeeklyProfile) (*planner.MealPlan, error) {
	plan, err := a.Plans.Get(planID)
	if err != nil {
		return nil, err
	}
	res, err := a.mealPlanner.ExpandMeal(ctx, plan, mealIndex, profile)
	if err != nil {
		return nil, err
	}
	a.record(ctx, res.Meta)
	if res.GenErr != nil {
		log.Printf("Expansion failed, applied generic details: %v", res.GenErr)
	}
	if err := a.Plans.Save(plan); err != nil {
		return nil, fmt.Errorf("failed to save expanded plan: %w", err)
	}
	return plan, nil
}

// ModifyPlanForDiet rewrites a saved plan for a dietary restriction and
// saves the modified copy.
func (a *App) ModifyPlanForDiet(ctx context.Context, planID int64, restriction string) (*planner.MealPlan, error) {
	base, err := a.Plans.Get(planID)
	if err != nil {
		return nil, err
	}
	modified, meta, err := a.mealPlanner.ModifyForDiet(ctx, base, restriction)
	a.record(ctx, meta)
	if err != nil {
		return nil, err
	}
	if err := a.Plans.Save(modified); err != nil {
		return nil, fmt.Errorf("failed to save modified plan: %w", err)
	}
	return modified, nil
}

// CombinedShoppingList consolidates several saved plans into one shopping
// list via the backend.
func (a *App) CombinedShoppingList(ctx context.Context, planIDs []int64) ([]planner.ShoppingSection, string, error) {
	plans := make([]*planner.MealPlan, 0, len(planIDs))
	for _, id := range planIDs {
		plan, err := a.Plans.Get(id)
		if err != nil {
			return nil, "", fmt.Errorf("plan %d: %w", id, err)
		}
		plans = append(plans, plan)
	}
	sections, totalCost, meta, err := a.mealPlanner.CombinedShoppingList(ctx, plans)
	a.record(ctx, meta)
	return sections, totalCost, err
}

// PrepSchedule generates a Sunday prep schedule for a saved plan and
// persists it onto the plan.
func (a *App) PrepSchedule(ctx context.Context, planID int64, prepTimeAvailable int) (*planner.MealPlan, error) {
	plan, err := a.Plans.Get(planID)
	if err != nil {
		return nil, err
	}
	tasks, meta, err := a.mealPlanner.PrepSchedule(ctx, plan, prepTimeAvailable)
	a.record(ctx, meta)
	if err != nil {
		return nil, err
	}
	plan.PrepSchedule = tasks
	if err := a.Plans.Save(plan); err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}
	return plan, nil
}

// ClipRecipe imports a recipe from a URL. Unlike generation there is no
// fallback: a failed clip is an error.
func (a *App) ClipRecipe(ctx context.Context, url string) (*recipe.Recipe, error) {
	return a.recipeClipper.ClipURL(ctx, url)
}
