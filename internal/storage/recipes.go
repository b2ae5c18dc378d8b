package storage

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/thedadreport/family-recipe-garden/internal/recipe"
)

const (
	recipesFile = "saved-recipes.json"
	maxRecipes  = 1000
)

// RecipeStore persists the saved-recipe collection.
type RecipeStore struct {
	*store[*recipe.Recipe]
}

// NewRecipeStore opens (or creates) the recipe collection in dataDir.
func NewRecipeStore(dataDir string) (*RecipeStore, error) {
	s, err := newStore[*recipe.Recipe](filepath.Join(dataDir, recipesFile), maxRecipes)
	if err != nil {
		return nil, err
	}
	return &RecipeStore{store: s}, nil
}

// RecipeFilters narrows a recipe search. Zero-valued fields are ignored;
// the boolean filters use pointers so false is still a filter.
type RecipeFilters struct {
	SearchTerm    string
	Situation     string
	Cuisine       string
	MealType      string
	CookingMethod string
	IsFavorite    *bool
	Seasonal      *bool
}

// Search returns the recipes matching every set filter. The search term
// matches title, notes, ingredients, and instructions, case-insensitively.
func (s *RecipeStore) Search(filters RecipeFilters) []*recipe.Recipe {
	var out []*recipe.Recipe
	term := strings.ToLower(filters.SearchTerm)

	for _, r := range s.All() {
		if term != "" {
			haystack := strings.ToLower(strings.Join(append([]string{
				r.Title, r.Notes,
			}, append(r.Ingredients, r.Instructions...)...), " "))
			if !strings.Contains(haystack, term) {
				continue
			}
		}
		if filters.Situation != "" && r.Situation != filters.Situation {
			continue
		}
		if filters.Cuisine != "" && r.Cuisine != filters.Cuisine {
			continue
		}
		if filters.MealType != "" && r.MealType != filters.MealType {
			continue
		}
		if filters.CookingMethod != "" && r.CookingMethod != filters.CookingMethod {
			continue
		}
		if filters.IsFavorite != nil && r.IsFavorite != *filters.IsFavorite {
			continue
		}
		if filters.Seasonal != nil && r.Seasonal != *filters.Seasonal {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ToggleFavorite flips the favorite flag and returns the new state.
func (s *RecipeStore) ToggleFavorite(id int64) (bool, error) {
	r, err := s.Get(id)
	if err != nil {
		return false, err
	}
	r.IsFavorite = !r.IsFavorite
	if err := s.Save(r); err != nil {
		return false, err
	}
	return r.IsFavorite, nil
}

// Favorites returns every favorited recipe.
func (s *RecipeStore) Favorites() []*recipe.Recipe {
	fav := true
	return s.Search(RecipeFilters{IsFavorite: &fav})
}

// Recent returns the newest recipes, most recent first.
func (s *RecipeStore) Recent(limit int) []*recipe.Recipe {
	recipes := s.All()
	sort.SliceStable(recipes, func(i, j int) bool {
		return recipes[i].CreatedAt.After(recipes[j].CreatedAt)
	})
	if limit > 0 && len(recipes) > limit {
		recipes = recipes[:limit]
	}
	return recipes
}

// RecipeStats summarizes the saved collection.
type RecipeStats struct {
	TotalRecipes  int            `json:"totalRecipes"`
	FavoriteCount int            `json:"favoriteCount"`
	BySituation   map[string]int `json:"recipesBySituation"`
	ByCuisine     map[string]int `json:"recipesByCuisine"`
	ByMealType    map[string]int `json:"recipesByMealType"`
}

// Stats computes collection statistics.
func (s *RecipeStore) Stats() RecipeStats {
	stats := RecipeStats{
		BySituation: map[string]int{},
		ByCuisine:   map[string]int{},
		ByMealType:  map[string]int{},
	}
	for _, r := range s.All() {
		stats.TotalRecipes++
		if r.IsFavorite {
			stats.FavoriteCount++
		}
		if r.Situation != "" {
			stats.BySituation[r.Situation]++
		}
		if r.Cuisine != "" {
			stats.ByCuisine[r.Cuisine]++
		}
		if r.MealType != "" {
			stats.ByMealType[r.MealType]++
		}
	}
	return stats
}
