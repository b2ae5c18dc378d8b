package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/thedadreport/family-recipe-garden/internal/app"
	"github.com/thedadreport/family-recipe-garden/internal/config"
	"github.com/thedadreport/family-recipe-garden/internal/metrics"
	"github.com/thedadreport/family-recipe-garden/internal/planner"
	"github.com/thedadreport/family-recipe-garden/internal/recipe"
	"github.com/thedadreport/family-recipe-garden/internal/storage"
)

func main() {
	ctx := context.Background()

	// Optional local overrides.
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	application, err := app.NewFromConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	switch os.Args[1] {
	case "recipe":
		runRecipe(ctx, application)
	case "plan":
		runPlan(ctx, application)
	case "expand":
		runExpand(ctx, application)
	case "clip":
		runClip(ctx, application)
	case "list":
		runList(application)
	case "search":
		runSearch(application)
	case "favorite":
		runFavorite(application)
	case "delete":
		runDelete(application)
	case "export":
		runExport(application)
	case "import":
		runImport(application)
	case "stats":
		runStats(application, cfg)
	case "metrics-cleanup":
		runMetricsCleanup(ctx, application)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runRecipe(ctx context.Context, application *app.App) {
	cmd := flag.NewFlagSet("recipe", flag.ExitOnError)
	situation := cmd.String("situation", recipe.SituationGeneral, "One of: "+strings.Join(recipe.Situations(), ", "))
	adults := cmd.Int("adults", 2, "Number of adults")
	kids := cmd.Int("kids", 2, "Number of kids")
	ingredients := cmd.String("ingredients", "", "Available ingredients, comma-separated")
	dietary := cmd.String("dietary", "", "Dietary preferences, comma-separated")
	timeAvailable := cmd.String("time", "under30", "Time available: under30, 30-60, 60plus")
	cookingLevel := cmd.String("level", "intermediate", "Cooking skill level")
	variations := cmd.Int("variations", 1, "Number of recipes to generate")
	cmd.Parse(os.Args[2:])

	profile := recipe.UserProfile{
		Adults:        *adults,
		Kids:          *kids,
		Ingredients:   *ingredients,
		TimeAvailable: *timeAvailable,
		CookingLevel:  *cookingLevel,
	}
	if *dietary != "" {
		profile.DietaryPrefs = splitList(*dietary)
	}

	if *variations > 1 {
		results, err := application.RecipeVariations(ctx, *situation, profile, *variations)
		if err != nil {
			log.Fatalf("Generation failed: %v", err)
		}
		for i, res := range results {
			fmt.Printf("--- Option %d ---\n%s\n", i+1, recipe.ShareText(res.Recipe))
		}
		return
	}

	res, err := application.GenerateRecipe(ctx, *situation, profile)
	if err != nil {
		log.Fatalf("Generation failed: %v", err)
	}
	fmt.Print(recipe.ShareText(res.Recipe))
	fmt.Printf("\nSaved as recipe %d.\n", res.Recipe.ID)
}

func runPlan(ctx context.Context, application *app.App) {
	cmd := flag.NewFlagSet("plan", flag.ExitOnError)
	planType := cmd.String("type", planner.PlanGeneral, "One of: "+strings.Join(planner.PlanTypes(), ", "))
	adults := cmd.Int("adults", 2, "Number of adults")
	kids := cmd.Int("kids", 2, "Number of kids")
	kidAges := cmd.String("kid-ages", "", "Kid ages, e.g. \"4, 7\"")
	dinners := cmd.Int("dinners", 5, "Dinners needed this week")
	timeLimit := cmd.Int("time-limit", 45, "Weeknight cooking limit in minutes")
	prepTime := cmd.Int("prep-time", 120, "Sunday prep time in minutes")
	budget := cmd.String("budget", "", "Weekly grocery budget")
	cuisine := cmd.String("cuisine", "familiar comfort food", "Cuisine preference")
	dietary := cmd.String("dietary", "", "Dietary restrictions, comma-separated")
	alternatives := cmd.Int("alternatives", 1, "Number of plans to generate")
	cmd.Parse(os.Args[2:])

	profile := planner.WeeklyProfile{
		Adults:             *adults,
		Kids:               *kids,
		KidAges:            *kidAges,
		CookingLevel:       "intermediate",
		DinnersNeeded:      *dinners,
		WeeknightTimeLimit: *timeLimit,
		PrepTimeAvailable:  *prepTime,
		ShoppingFrequency:  "once-per-week",
		WeeklyBudget:       *budget,
		CuisinePreference:  *cuisine,
	}
	if *dietary != "" {
		profile.DietaryRestrictions = splitList(*dietary)
	}

	if *alternatives > 1 {
		results, err := application.PlanAlternatives(ctx, *planType, profile, *alternatives)
		if err != nil {
			log.Fatalf("Planning failed: %v", err)
		}
		for i, res := range results {
			fmt.Printf("--- Option %d ---\n", i+1)
			printPlan(res.Plan)
		}
		return
	}

	res, err := application.GeneratePlan(ctx, *planType, profile)
	if err != nil {
		log.Fatalf("Planning failed: %v", err)
	}
	printPlan(res.Plan)
}

func printPlan(plan *planner.MealPlan) {
	fmt.Println("=== WEEKLY MEAL PLAN ===")
	for i, m := range plan.Meals {
		fmt.Printf("%d. %-10s %s\n", i, m.Day, m.Title)
		if m.Description != "" {
			fmt.Printf("   %s\n", m.Description)
		}
	}
	fmt.Println()
	fmt.Print(planner.ShoppingListText(plan.ShoppingList, plan.TotalCost))
	if plan.Notes != "" {
		fmt.Printf("\nNotes: %s\n", plan.Notes)
	}
	fmt.Printf("\nSaved as plan %d.\n", plan.ID)
}

func runExpand(ctx context.Context, application *app.App) {
	cmd := flag.NewFlagSet("expand", flag.ExitOnError)
	planID := cmd.Int64("plan", 0, "Plan id")
	meal := cmd.Int("meal", 0, "Meal index within the plan")
	cmd.Parse(os.Args[2:])

	if *planID == 0 {
		log.Fatal("The -plan flag is required")
	}

	plan, err := application.ExpandMeal(ctx, *planID, *meal, planner.DefaultWeeklyProfile())
	if err != nil {
		log.Fatalf("Expansion failed: %v", err)
	}

	m := plan.Meals[*meal]
	fmt.Printf("%s: %s\n", m.Day, m.Title)
	fmt.Printf("Prep: %s | Cook: %s | Total: %s\n\n", m.PrepTime, m.CookTime, m.TotalTime)
	fmt.Println("Ingredients:")
	for _, ing := range m.Ingredients {
		fmt.Printf("• %s\n", ing)
	}
	fmt.Println("\nInstructions:")
	for i, step := range m.Instructions {
		fmt.Printf("%d. %s\n", i+1, step)
	}
}

func runClip(ctx context.Context, application *app.App) {
	cmd := flag.NewFlagSet("clip", flag.ExitOnError)
	url := cmd.String("url", "", "Recipe page URL")
	cmd.Parse(os.Args[2:])

	if *url == "" {
		log.Fatal("The -url flag is required")
	}

	r, err := application.ClipRecipe(ctx, *url)
	if err != nil {
		log.Fatalf("Clip failed: %v", err)
	}
	fmt.Print(recipe.ShareText(r))
	fmt.Printf("\nSaved as recipe %d.\n", r.ID)
}

func runList(application *app.App) {
	cmd := flag.NewFlagSet("list", flag.ExitOnError)
	kind := cmd.String("kind", "recipes", "What to list: recipes or plans")
	limit := cmd.Int("limit", 20, "Maximum number of entries")
	cmd.Parse(os.Args[2:])

	switch *kind {
	case "recipes":
		for _, r := range application.Recipes.Recent(*limit) {
			marker := " "
			if r.IsFavorite {
				marker = "*"
			}
			fmt.Printf("%s %d  %s (%s, serves %s)\n", marker, r.ID, r.Title, r.TotalTime, r.Servings)
		}
	case "plans":
		for _, p := range application.Plans.Recent(*limit) {
			fmt.Printf("  %d  %s plan, %d dinners, created %s\n", p.ID, p.PlanType, len(p.Meals), p.CreatedAt.Format("2006-01-02"))
		}
	default:
		log.Fatalf("Unknown kind %q: use recipes or plans", *kind)
	}
}

func runSearch(application *app.App) {
	cmd := flag.NewFlagSet("search", flag.ExitOnError)
	term := cmd.String("term", "", "Text to search for")
	situation := cmd.String("situation", "", "Filter by situation")
	favorites := cmd.Bool("favorites", false, "Only favorites")
	cmd.Parse(os.Args[2:])

	filters := storage.RecipeFilters{SearchTerm: *term, Situation: *situation}
	if *favorites {
		fav := true
		filters.IsFavorite = &fav
	}

	results := application.Recipes.Search(filters)
	if len(results) == 0 {
		fmt.Println("No recipes found.")
		return
	}
	for _, r := range results {
		fmt.Printf("%d  %s\n", r.ID, r.Title)
	}
}

func runFavorite(application *app.App) {
	cmd := flag.NewFlagSet("favorite", flag.ExitOnError)
	id := cmd.Int64("id", 0, "Recipe id")
	cmd.Parse(os.Args[2:])

	if *id == 0 {
		log.Fatal("The -id flag is required")
	}
	fav, err := application.Recipes.ToggleFavorite(*id)
	if err != nil {
		log.Fatalf("Failed to toggle favorite: %v", err)
	}
	if fav {
		fmt.Printf("Recipe %d marked as a favorite.\n", *id)
	} else {
		fmt.Printf("Recipe %d removed from favorites.\n", *id)
	}
}

func runDelete(application *app.App) {
	cmd := flag.NewFlagSet("delete", flag.ExitOnError)
	recipeID := cmd.Int64("recipe", 0, "Recipe id to delete")
	planID := cmd.Int64("plan", 0, "Plan id to delete")
	cmd.Parse(os.Args[2:])

	switch {
	case *recipeID != 0:
		if err := application.Recipes.Delete(*recipeID); err != nil {
			log.Fatalf("Failed to delete recipe: %v", err)
		}
		fmt.Printf("Deleted recipe %d.\n", *recipeID)
	case *planID != 0:
		if err := application.Plans.Delete(*planID); err != nil {
			log.Fatalf("Failed to delete plan: %v", err)
		}
		fmt.Printf("Deleted plan %d.\n", *planID)
	default:
		log.Fatal("Provide -recipe or -plan")
	}
}

func runExport(application *app.App) {
	cmd := flag.NewFlagSet("export", flag.ExitOnError)
	kind := cmd.String("kind", "recipes", "What to export: recipes or plans")
	out := cmd.String("out", "", "Output file (default stdout)")
	cmd.Parse(os.Args[2:])

	var data []byte
	var err error
	switch *kind {
	case "recipes":
		data, err = application.Recipes.Export()
	case "plans":
		data, err = application.Plans.Export()
	default:
		log.Fatalf("Unknown kind %q: use recipes or plans", *kind)
	}
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	if *out == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	fmt.Printf("Exported %s to %s.\n", *kind, *out)
}

func runImport(application *app.App) {
	cmd := flag.NewFlagSet("import", flag.ExitOnError)
	kind := cmd.String("kind", "recipes", "What to import: recipes or plans")
	file := cmd.String("file", "", "File exported by the export command")
	mode := cmd.String("mode", "merge", "Import mode: merge or replace")
	cmd.Parse(os.Args[2:])

	if *file == "" {
		log.Fatal("The -file flag is required")
	}
	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *file, err)
	}

	importMode := storage.ImportMode(*mode)
	if importMode != storage.ImportMerge && importMode != storage.ImportReplace {
		log.Fatalf("Unknown mode %q: use merge or replace", *mode)
	}

	switch *kind {
	case "recipes":
		err = application.Recipes.Import(data, importMode)
	case "plans":
		err = application.Plans.Import(data, importMode)
	default:
		log.Fatalf("Unknown kind %q: use recipes or plans", *kind)
	}
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	fmt.Printf("Imported %s from %s.\n", *kind, *file)
}

func runStats(application *app.App, cfg *config.Config) {
	stats := struct {
		Recipes storage.RecipeStats `json:"recipes"`
		Plans   storage.PlanStats   `json:"plans"`
		Health  metrics.SysHealth   `json:"health"`
	}{
		Recipes: application.Recipes.Stats(),
		Plans:   application.Plans.Stats(),
		Health:  metrics.GetSysHealth(cfg.DataDir),
	}

	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		log.Fatalf("Failed to render stats: %v", err)
	}
	fmt.Println(string(data))
}

func runMetricsCleanup(ctx context.Context, application *app.App) {
	cmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
	days := cmd.Int("days", 30, "Keep records for the last N days")
	cmd.Parse(os.Args[2:])

	affected, err := application.Metrics.Cleanup(ctx, *days)
	if err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}
	fmt.Printf("Removed %d old metric records.\n", affected)
}

func splitList(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func printUsage() {
	fmt.Println("Usage: family-recipe-garden <command> [flags]")
	fmt.Println("\nCommands:")
	fmt.Println("  recipe             Generate a dinner recipe for tonight")
	fmt.Println("  plan               Generate a weekly meal plan with shopping list")
	fmt.Println("  expand             Fill in full recipe details for one planned meal")
	fmt.Println("  clip               Import a recipe from a URL")
	fmt.Println("  list               List saved recipes or plans")
	fmt.Println("  search             Search saved recipes")
	fmt.Println("  favorite           Toggle a recipe's favorite flag")
	fmt.Println("  delete             Delete a saved recipe or plan")
	fmt.Println("  export             Export a collection as JSON")
	fmt.Println("  import             Import a previously exported collection")
	fmt.Println("  stats              Show collection statistics")
	fmt.Println("  metrics-cleanup    Remove old metric records")
}
