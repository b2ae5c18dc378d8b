package planner

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/thedadreport/family-recipe-garden/internal/format"
)

//go:embed general_plan_prompt.md
var generalPlanPrompt string

//go:embed budget_plan_prompt.md
var budgetPlanPrompt string

//go:embed time_saving_plan_prompt.md
var timeSavingPlanPrompt string

//go:embed plan_response_format.md
var planResponseFormat string

//go:embed expand_meal_prompt.md
var expandMealPrompt string

//go:embed diet_modify_prompt.md
var dietModifyPrompt string

//go:embed combined_shopping_prompt.md
var combinedShoppingPrompt string

//go:embed prep_schedule_prompt.md
var prepSchedulePrompt string

type planPromptData struct {
	Adults              int
	KidsText            string
	CookingLevel        string
	DinnersNeeded       int
	WeeknightTimeLimit  int
	PrepTimeAvailable   int
	Proteins            string
	KitchenEquipment    string
	PrepMethods         string
	ShoppingFrequency   string
	WeeklyBudget        string
	DietaryRestrictions string
	CuisinePreference   string
	IncludePrepSchedule bool
}

func kidsText(kids int, kidAges string) string {
	if kidAges == "" {
		return fmt.Sprintf("%d", kids)
	}
	return fmt.Sprintf("%d (ages: %s)", kids, kidAges)
}

// BuildPlanPrompt renders the weekly-plan prompt for a plan type. Unknown
// types render the general prompt.
func BuildPlanPrompt(planType string, profile WeeklyProfile) (string, error) {
	data := planPromptData{
		Adults:              profile.Adults,
		KidsText:            kidsText(profile.Kids, profile.KidAges),
		CookingLevel:        profile.CookingLevel,
		DinnersNeeded:       profile.DinnersNeeded,
		WeeknightTimeLimit:  profile.WeeknightTimeLimit,
		PrepTimeAvailable:   profile.PrepTimeAvailable,
		ShoppingFrequency:   profile.ShoppingFrequency,
		DietaryRestrictions: format.ListOr(profile.DietaryRestrictions, "None"),
		CuisinePreference:   profile.CuisinePreference,
		IncludePrepSchedule: profile.PrepTimeAvailable > 0,
	}

	var body string
	switch planType {
	case PlanBudget:
		body = budgetPlanPrompt
		data.WeeklyBudget = format.Or(profile.WeeklyBudget, "tight budget")
		data.Proteins = format.Or(profile.Proteins, "chicken thighs, ground beef, etc.")
	case PlanTimeSaving:
		body = timeSavingPlanPrompt
		data.WeeklyBudget = format.Or(profile.WeeklyBudget, "moderate budget")
		data.KitchenEquipment = format.ListOr(profile.KitchenEquipment, "slow cooker, instant pot, food processor, etc.")
		data.PrepMethods = format.ListOr(profile.PrepMethods, "batch cooking, freezer meals, pre-chopped ingredients, etc.")
	default:
		body = generalPlanPrompt
		data.WeeklyBudget = format.Or(profile.WeeklyBudget, "moderate budget")
		data.Proteins = format.Or(profile.Proteins, "chicken, ground beef, etc.")
		data.KitchenEquipment = format.ListOr(profile.KitchenEquipment, "slow cooker, sheet pans, etc.")
	}

	rendered, err := render("plan", body, data)
	if err != nil {
		return "", err
	}
	tail, err := render("plan_format", planResponseFormat, data)
	if err != nil {
		return "", err
	}
	return rendered + "\n\n" + tail, nil
}

type expandPromptData struct {
	Title              string
	Description        string
	Adults             int
	KidsText           string
	CookingLevel       string
	WeeknightTimeLimit int
}

// BuildExpandPrompt renders the prompt that turns a plan slot into a full
// recipe.
func BuildExpandPrompt(meal DayMeal, profile WeeklyProfile) (string, error) {
	return render("expand", expandMealPrompt, expandPromptData{
		Title:              meal.Title,
		Description:        meal.Description,
		Adults:             profile.Adults,
		KidsText:           kidsText(profile.Kids, profile.KidAges),
		CookingLevel:       profile.CookingLevel,
		WeeknightTimeLimit: profile.WeeknightTimeLimit,
	})
}

type mealListPromptData struct {
	MealTitles        string
	Modification      string
	PrepTimeAvailable int
}

// BuildDietModifyPrompt renders the prompt that rewrites a plan's meals for
// a dietary restriction.
func BuildDietModifyPrompt(plan *MealPlan, modification string) (string, error) {
	return render("diet", dietModifyPrompt, mealListPromptData{
		MealTitles:   joinTitles(plan.Meals),
		Modification: modification,
	})
}

// BuildCombinedShoppingPrompt renders the prompt that consolidates multiple
// plans into a single shopping list.
func BuildCombinedShoppingPrompt(plans []*MealPlan) (string, error) {
	var titles []string
	for _, plan := range plans {
		for _, meal := range plan.Meals {
			titles = append(titles, meal.Title)
		}
	}
	return render("combined", combinedShoppingPrompt, mealListPromptData{
		MealTitles: strings.Join(titles, ", "),
	})
}

// BuildPrepSchedulePrompt renders the prompt that generates a Sunday prep
// schedule for an existing plan.
func BuildPrepSchedulePrompt(plan *MealPlan, prepTimeAvailable int) (string, error) {
	return render("prep", prepSchedulePrompt, mealListPromptData{
		MealTitles:        joinTitles(plan.Meals),
		PrepTimeAvailable: prepTimeAvailable,
	})
}

func joinTitles(meals []DayMeal) string {
	titles := make([]string, len(meals))
	for i, meal := range meals {
		titles[i] = meal.Title
	}
	return strings.Join(titles, ", ")
}

func render(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
