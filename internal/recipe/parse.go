package recipe

import (
	"strconv"
	"time"

	"github.com/thedadreport/family-recipe-garden/internal/jsonutil"
	"github.com/thedadreport/family-recipe-garden/internal/shared"
)

// rawRecipe tolerates the shapes models actually return: numbers where
// strings were asked for, scalars where lists were asked for.
type rawRecipe struct {
	Title        jsonutil.FlexString `json:"title"`
	TotalTime    jsonutil.FlexString `json:"totalTime"`
	Servings     jsonutil.FlexString `json:"servings"`
	Ingredients  jsonutil.StringList `json:"ingredients"`
	Instructions jsonutil.StringList `json:"instructions"`
	Tips         jsonutil.StringList `json:"tips"`
	Notes        jsonutil.FlexString `json:"notes"`
}

// Parse decodes generated text into a Recipe, applying defaults for every
// missing field. The profile supplies the servings default and the metadata
// echoed onto the recipe.
func Parse(text, situation string, profile UserProfile) (*Recipe, error) {
	var raw rawRecipe
	if err := jsonutil.Unmarshal(text, &raw); err != nil {
		return nil, err
	}

	r := &Recipe{
		ID:            shared.NextID(),
		Title:         string(raw.Title),
		TotalTime:     string(raw.TotalTime),
		Servings:      string(raw.Servings),
		Ingredients:   raw.Ingredients.Strings(),
		Instructions:  raw.Instructions.Strings(),
		Tips:          raw.Tips.Strings(),
		Notes:         string(raw.Notes),
		Situation:     situation,
		CookingMethod: profile.CookingMethod,
		Seasonal:      profile.Seasonal,
		Cuisine:       profile.Cuisine,
		MealType:      profile.MealType,
		CreatedAt:     time.Now(),
	}
	applyDefaults(r, profile)
	return r, nil
}

func applyDefaults(r *Recipe, profile UserProfile) {
	if r.Title == "" {
		r.Title = "Untitled Recipe"
	}
	if r.TotalTime == "" {
		r.TotalTime = "30 minutes"
	}
	if r.Servings == "" {
		r.Servings = strconv.Itoa(profile.Adults + profile.Kids)
	}
}

// mergeVariant overlays generated fields onto a copy of the base recipe,
// keeping the base value wherever the model omitted a field.
func mergeVariant(base *Recipe, raw rawRecipe, fallbackTitle string) *Recipe {
	out := *base
	out.ID = shared.NextID()
	out.CreatedAt = time.Now()
	out.Title = fallbackTitle
	if raw.Title != "" {
		out.Title = string(raw.Title)
	}
	if s := raw.Ingredients.Strings(); len(s) > 0 {
		out.Ingredients = s
	}
	if s := raw.Instructions.Strings(); len(s) > 0 {
		out.Instructions = s
	}
	if s := raw.Tips.Strings(); len(s) > 0 {
		out.Tips = s
	}
	if raw.Notes != "" {
		out.Notes = string(raw.Notes)
	}
	return &out
}
