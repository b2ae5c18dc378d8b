package recipe

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/thedadreport/family-recipe-garden/internal/format"
)

//go:embed general_prompt.md
var generalPrompt string

//go:embed protein_random_prompt.md
var proteinRandomPrompt string

//go:embed stretch_protein_prompt.md
var stretchProteinPrompt string

//go:embed tomorrow_lunch_prompt.md
var tomorrowLunchPrompt string

//go:embed one_pot_prompt.md
var onePotPrompt string

//go:embed dump_bake_prompt.md
var dumpBakePrompt string

//go:embed response_format.md
var responseFormat string

//go:embed dietary_variant_prompt.md
var dietaryVariantPrompt string

//go:embed scale_prompt.md
var scalePrompt string

// promptData carries display-ready strings into the prompt templates. Every
// field is resolved before rendering so no template ever sees a blank value.
type promptData struct {
	Adults          int
	Kids            int
	TimeText        string
	CookingLevel    string
	DietaryPrefs    string
	CuisineText     string
	SeasonalText    string
	MealTypeText    string
	MethodText      string
	Protein         string
	IngredientsText string
}

func timeText(timeAvailable string) string {
	switch timeAvailable {
	case "under30":
		return "Under 30 minutes"
	case "30-60":
		return "30-60 minutes"
	case "60plus":
		return "60+ minutes"
	default:
		return "flexible timing"
	}
}

func seasonalText(seasonal bool) string {
	if seasonal {
		return "use seasonal ingredients (August summer produce)"
	}
	return "use any available ingredients"
}

// BuildPrompt renders the generation prompt for a situation. Unknown
// situations render the general prompt.
func BuildPrompt(situation string, profile UserProfile) (string, error) {
	people := profile.Adults + profile.Kids
	data := promptData{
		Adults:       profile.Adults,
		Kids:         profile.Kids,
		TimeText:     timeText(profile.TimeAvailable),
		CookingLevel: profile.CookingLevel,
		DietaryPrefs: format.ListOr(profile.DietaryPrefs, "None"),
		CuisineText:  format.Or(profile.Cuisine, "any cuisine style"),
		SeasonalText: seasonalText(profile.Seasonal),
		MealTypeText: format.Or(profile.MealType, "whole meal"),
		MethodText:   format.Or(profile.CookingMethod, "any method"),
	}

	var body string
	switch situation {
	case SituationProteinRandom:
		body = proteinRandomPrompt
		data.Protein = format.Or(profile.FirstIngredient(), "chicken")
		data.IngredientsText = format.Or(profile.Ingredients, "onions, garlic, potatoes")
	case SituationStretchProtein:
		body = stretchProteinPrompt
		if first := profile.FirstIngredient(); first != "" {
			data.Protein = fmt.Sprintf("%s (small amount for %d people)", first, people)
		} else {
			data.Protein = fmt.Sprintf("small amount of protein for %d people", people)
		}
		data.IngredientsText = format.Or(profile.Ingredients, "pasta, rice, beans, vegetables")
	case SituationTomorrowLunch:
		body = tomorrowLunchPrompt
		data.IngredientsText = format.Or(profile.Ingredients, "chicken, vegetables, rice")
	case SituationOnePot:
		body = onePotPrompt
		data.IngredientsText = format.Or(profile.Ingredients, "protein and vegetables")
	case SituationDumpBake:
		body = dumpBakePrompt
		data.IngredientsText = format.Or(profile.Ingredients, "protein and vegetables")
	default:
		body = generalPrompt
		data.IngredientsText = format.Or(profile.Ingredients, "chef's choice")
	}

	rendered, err := render("recipe", body, data)
	if err != nil {
		return "", err
	}
	return rendered + "\n\n" + strings.TrimRight(responseFormat, "\n"), nil
}

type variantPromptData struct {
	Title        string
	Ingredients  string
	Instructions string
	Modification string
}

// BuildDietaryVariantPrompt renders the prompt that rewrites a recipe for a
// dietary modification.
func BuildDietaryVariantPrompt(base *Recipe, modification string) (string, error) {
	return render("variant", dietaryVariantPrompt, variantPromptData{
		Title:        base.Title,
		Ingredients:  strings.Join(base.Ingredients, ", "),
		Instructions: strings.Join(base.Instructions, " "),
		Modification: modification,
	})
}

type scalePromptData struct {
	CurrentServings int
	NewServings     int
	ScaleFactor     string
	Ingredients     string
}

// BuildScalePrompt renders the prompt that rescales a recipe's quantities.
func BuildScalePrompt(base *Recipe, currentServings, newServings int) (string, error) {
	factor := float64(newServings) / float64(currentServings)
	return render("scale", scalePrompt, scalePromptData{
		CurrentServings: currentServings,
		NewServings:     newServings,
		ScaleFactor:     fmt.Sprintf("%g", factor),
		Ingredients:     strings.Join(base.Ingredients, "\n"),
	})
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
