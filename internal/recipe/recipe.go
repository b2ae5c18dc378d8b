package recipe

import (
	"strings"
	"time"
)

// Recipe is a single dinner recipe. The JSON field names match the export
// format used by saved-collection files, so exported data round-trips.
type Recipe struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	TotalTime     string    `json:"totalTime"`
	Servings      string    `json:"servings"`
	Ingredients   []string  `json:"ingredients"`
	Instructions  []string  `json:"instructions"`
	Tips          []string  `json:"tips"`
	Notes         string    `json:"notes"`
	IsFavorite    bool      `json:"isFavorite"`
	Situation     string    `json:"situation,omitempty"`
	CookingMethod string    `json:"cookingMethod,omitempty"`
	Seasonal      bool      `json:"seasonal,omitempty"`
	Cuisine       string    `json:"cuisine,omitempty"`
	MealType      string    `json:"mealType,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (r *Recipe) ItemID() int64              { return r.ID }
func (r *Recipe) SetItemID(id int64)         { r.ID = id }
func (r *Recipe) ItemCreatedAt() time.Time   { return r.CreatedAt }
func (r *Recipe) SetItemCreatedAt(t time.Time) { r.CreatedAt = t }

// UserProfile describes the family a recipe is generated for.
type UserProfile struct {
	Adults        int      `json:"adults"`
	Kids          int      `json:"kids"`
	DietaryPrefs  []string `json:"dietaryPrefs"`
	TimeAvailable string   `json:"timeAvailable"` // "under30", "30-60", "60plus"
	CookingLevel  string   `json:"cookingLevel"`
	Ingredients   string   `json:"ingredients"` // free text, comma-separated
	CookingMethod string   `json:"cookingMethod"`
	Seasonal      bool     `json:"seasonal"`
	Cuisine       string   `json:"cuisine"`
	MealType      string   `json:"mealType"`
}

// DefaultProfile returns the profile used when the caller supplies nothing.
func DefaultProfile() UserProfile {
	return UserProfile{
		Adults:        2,
		Kids:          2,
		TimeAvailable: "under30",
		CookingLevel:  "intermediate",
		MealType:      "whole-meal",
	}
}

// FirstIngredient returns the first comma-separated entry of the free-text
// ingredients field, used as the protein for protein-centric situations.
func (p UserProfile) FirstIngredient() string {
	if p.Ingredients == "" {
		return ""
	}
	return strings.TrimSpace(strings.Split(p.Ingredients, ",")[0])
}

// Situations supported by the recipe generator. Unknown situations fall
// through to general.
const (
	SituationGeneral        = "general"
	SituationProteinRandom  = "protein-random"
	SituationStretchProtein = "stretch-protein"
	SituationTomorrowLunch  = "tomorrow-lunch"
	SituationOnePot         = "one-pot"
	SituationDumpBake       = "dump-bake"
)

// Situations lists every supported situation value.
func Situations() []string {
	return []string{
		SituationGeneral,
		SituationProteinRandom,
		SituationStretchProtein,
		SituationTomorrowLunch,
		SituationOnePot,
		SituationDumpBake,
	}
}
