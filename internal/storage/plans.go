package storage

import (
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/thedadreport/family-recipe-garden/internal/format"
	"github.com/thedadreport/family-recipe-garden/internal/planner"
)

const (
	plansFile = "saved-meal-plans.json"
	maxPlans  = 500
)

// PlanStore persists the saved meal-plan collection.
type PlanStore struct {
	*store[*planner.MealPlan]
}

// NewPlanStore opens (or creates) the plan collection in dataDir.
func NewPlanStore(dataDir string) (*PlanStore, error) {
	s, err := newStore[*planner.MealPlan](filepath.Join(dataDir, plansFile), maxPlans)
	if err != nil {
		return nil, err
	}
	return &PlanStore{store: s}, nil
}

// PlanFilters narrows a plan search. Zero-valued fields are ignored.
type PlanFilters struct {
	SearchTerm      string
	PlanType        string
	CreatedAfter    time.Time
	CreatedBefore   time.Time
	HasPrepSchedule *bool
	MinCost         *float64
	MaxCost         *float64
}

// Search returns the plans matching every set filter. The search term
// matches notes, meal titles and descriptions, and shopping list items.
func (s *PlanStore) Search(filters PlanFilters) []*planner.MealPlan {
	var out []*planner.MealPlan
	term := strings.ToLower(filters.SearchTerm)

	for _, p := range s.All() {
		if term != "" && !planMatches(p, term) {
			continue
		}
		if filters.PlanType != "" && p.PlanType != filters.PlanType {
			continue
		}
		if !filters.CreatedAfter.IsZero() && p.CreatedAt.Before(filters.CreatedAfter) {
			continue
		}
		if !filters.CreatedBefore.IsZero() && p.CreatedAt.After(filters.CreatedBefore) {
			continue
		}
		if filters.HasPrepSchedule != nil && (len(p.PrepSchedule) > 0) != *filters.HasPrepSchedule {
			continue
		}
		if filters.MinCost != nil || filters.MaxCost != nil {
			cost, ok := format.ParseCost(p.TotalCost)
			if ok {
				if filters.MinCost != nil && cost < *filters.MinCost {
					continue
				}
				if filters.MaxCost != nil && cost > *filters.MaxCost {
					continue
				}
			}
		}
		out = append(out, p)
	}
	return out
}

func planMatches(p *planner.MealPlan, term string) bool {
	parts := []string{p.Notes}
	for _, meal := range p.Meals {
		parts = append(parts, meal.Title, meal.Description)
	}
	for _, section := range p.ShoppingList {
		for _, item := range section.Items {
			parts = append(parts, item.Item)
		}
	}
	return strings.Contains(strings.ToLower(strings.Join(parts, " ")), term)
}

// Recent returns the newest plans, most recent first.
func (s *PlanStore) Recent(limit int) []*planner.MealPlan {
	plans := s.All()
	sort.SliceStable(plans, func(i, j int) bool {
		return plans[i].CreatedAt.After(plans[j].CreatedAt)
	})
	if limit > 0 && len(plans) > limit {
		plans = plans[:limit]
	}
	return plans
}

// IngredientCount is one entry in the most-used-ingredients ranking.
type IngredientCount struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}

// AllIngredients counts every shopping list item across all plans, most
// used first. Ties order alphabetically so the ranking is stable.
func (s *PlanStore) AllIngredients() []IngredientCount {
	counts := map[string]int{}
	for _, p := range s.All() {
		for _, section := range p.ShoppingList {
			for _, item := range section.Items {
				counts[strings.ToLower(item.Item)]++
			}
		}
	}

	out := make([]IngredientCount, 0, len(counts))
	for item, count := range counts {
		out = append(out, IngredientCount{Item: item, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Item < out[j].Item
	})
	return out
}

// PlanStats summarizes the saved collection.
type PlanStats struct {
	TotalPlans          int               `json:"totalPlans"`
	PlansByType         map[string]int    `json:"plansByType"`
	AverageCost         float64           `json:"averageCost"`
	TotalMealsPlanned   int               `json:"totalMealsPlanned"`
	MostUsedIngredients []IngredientCount `json:"mostUsedIngredients"`
}

// Stats computes collection statistics. Average cost covers only plans
// with a parseable total.
func (s *PlanStore) Stats() PlanStats {
	stats := PlanStats{PlansByType: map[string]int{}}

	var totalCost float64
	var costed int
	for _, p := range s.All() {
		stats.TotalPlans++
		stats.PlansByType[p.PlanType]++
		stats.TotalMealsPlanned += len(p.Meals)
		if cost, ok := format.ParseCost(p.TotalCost); ok {
			totalCost += cost
			costed++
		}
	}
	if costed > 0 {
		stats.AverageCost = totalCost / float64(costed)
	}

	top := s.AllIngredients()
	if len(top) > 20 {
		top = top[:20]
	}
	stats.MostUsedIngredients = top
	return stats
}

// CombinedShoppingList merges the shopping lists of several saved plans.
// Matching items within a section concatenate their quantities; unknown
// plan ids are skipped.
func (s *PlanStore) CombinedShoppingList(planIDs []int64) []planner.ShoppingSection {
	var order []string
	combined := map[string]*planner.ShoppingSection{}

	for _, id := range planIDs {
		p, err := s.Get(id)
		if err != nil {
			continue
		}
		for _, section := range p.ShoppingList {
			merged, ok := combined[section.Section]
			if !ok {
				merged = &planner.ShoppingSection{Section: section.Section}
				combined[section.Section] = merged
				order = append(order, section.Section)
			}
			for _, item := range section.Items {
				if existing := findItem(merged, item.Item); existing != nil {
					existing.Quantity += ", " + item.Quantity
				} else {
					merged.Items = append(merged.Items, item)
				}
			}
		}
	}

	out := make([]planner.ShoppingSection, 0, len(order))
	for _, name := range order {
		out = append(out, *combined[name])
	}
	return out
}

func findItem(section *planner.ShoppingSection, name string) *planner.ShoppingItem {
	for i := range section.Items {
		if strings.EqualFold(section.Items[i].Item, name) {
			return &section.Items[i]
		}
	}
	return nil
}

// Archive removes plans older than the given number of days and returns
// how many were removed.
func (s *PlanStore) Archive(daysOld int) (int, error) {
	cutoff := time.Now().AddDate(0, 0, -daysOld)

	var removed int
	for _, p := range s.All() {
		if !p.CreatedAt.IsZero() && p.CreatedAt.Before(cutoff) {
			if err := s.Delete(p.ID); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}
