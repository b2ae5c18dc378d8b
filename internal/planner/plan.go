package planner

import "time"

// Plan types supported by the weekly planner. Unknown types fall through
// to general.
const (
	PlanGeneral    = "general"
	PlanBudget     = "budget"
	PlanTimeSaving = "time-saving"
)

// PlanTypes lists every supported plan type value.
func PlanTypes() []string {
	return []string{PlanGeneral, PlanBudget, PlanTimeSaving}
}

// ShoppingItem is one line of a shopping list section.
type ShoppingItem struct {
	Item          string `json:"item"`
	Quantity      string `json:"quantity"`
	EstimatedCost string `json:"estimatedCost,omitempty"`
}

// ShoppingSection groups shopping items by store section.
type ShoppingSection struct {
	Section string         `json:"section"`
	Items   []ShoppingItem `json:"items"`
}

// PrepTask is a block of prep work scheduled for a day.
type PrepTask struct {
	Day        string   `json:"day"`
	Tasks      []string `json:"tasks"`
	TimeNeeded string   `json:"timeNeeded"`
}

// DayMeal is one dinner slot in a weekly plan. The recipe detail fields are
// empty until the meal is expanded.
type DayMeal struct {
	Day          string   `json:"day"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	PrepTime     string   `json:"prepTime,omitempty"`
	CookTime     string   `json:"cookTime,omitempty"`
	TotalTime    string   `json:"totalTime,omitempty"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Instructions []string `json:"instructions,omitempty"`
	Tips         []string `json:"tips,omitempty"`
	PrepAhead    []string `json:"prepAhead,omitempty"`
	IsExpanded   bool     `json:"isExpanded"`
}

// MealPlan is a full week of dinners with its shopping list.
type MealPlan struct {
	ID           int64             `json:"id"`
	PlanType     string            `json:"planType"`
	Meals        []DayMeal         `json:"meals"`
	ShoppingList []ShoppingSection `json:"shoppingList"`
	TotalCost    string            `json:"totalCost,omitempty"`
	PrepSchedule []PrepTask        `json:"prepSchedule,omitempty"`
	Notes        string            `json:"notes"`
	CreatedAt    time.Time         `json:"createdAt"`
}

func (p *MealPlan) ItemID() int64                { return p.ID }
func (p *MealPlan) SetItemID(id int64)           { p.ID = id }
func (p *MealPlan) ItemCreatedAt() time.Time     { return p.CreatedAt }
func (p *MealPlan) SetItemCreatedAt(t time.Time) { p.CreatedAt = t }

// WeeklyProfile describes the family and constraints a weekly plan is
// generated for.
type WeeklyProfile struct {
	Adults              int      `json:"adults"`
	Kids                int      `json:"kids"`
	KidAges             string   `json:"kidAges"`
	CookingLevel        string   `json:"cookingLevel"`
	DinnersNeeded       int      `json:"dinnersNeeded"`
	WeeknightTimeLimit  int      `json:"weeknightTimeLimit"` // minutes
	PrepTimeAvailable   int      `json:"prepTimeAvailable"`  // minutes, Sunday
	Proteins            string   `json:"proteins"`
	KitchenEquipment    []string `json:"kitchenEquipment"`
	ShoppingFrequency   string   `json:"shoppingFrequency"`
	WeeklyBudget        string   `json:"weeklyBudget"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
	CuisinePreference   string   `json:"cuisinePreference"`
	PrepMethods         []string `json:"prepMethods"`
}

// DefaultWeeklyProfile returns the profile used when the caller supplies
// nothing.
func DefaultWeeklyProfile() WeeklyProfile {
	return WeeklyProfile{
		Adults:             2,
		Kids:               2,
		CookingLevel:       "intermediate",
		DinnersNeeded:      5,
		WeeknightTimeLimit: 45,
		PrepTimeAvailable:  120,
		ShoppingFrequency:  "once-per-week",
		CuisinePreference:  "familiar comfort food",
	}
}

// Expansion holds the full recipe detail generated for one meal slot.
type Expansion struct {
	PrepTime     string
	CookTime     string
	TotalTime    string
	Ingredients  []string
	Instructions []string
	Tips         []string
	PrepAhead    []string
}

// ApplyExpansion writes recipe details onto the meal at the given index and
// marks it expanded. Out-of-range indexes are ignored.
func (p *MealPlan) ApplyExpansion(index int, exp Expansion) {
	if index < 0 || index >= len(p.Meals) {
		return
	}
	m := &p.Meals[index]
	m.PrepTime = exp.PrepTime
	m.CookTime = exp.CookTime
	m.TotalTime = exp.TotalTime
	m.Ingredients = exp.Ingredients
	m.Instructions = exp.Instructions
	m.Tips = exp.Tips
	m.PrepAhead = exp.PrepAhead
	m.IsExpanded = true
}
