package planner

import (
	"fmt"
	"time"

	"github.com/thedadreport/family-recipe-garden/internal/jsonutil"
	"github.com/thedadreport/family-recipe-garden/internal/shared"
)

type rawShoppingItem struct {
	Item          jsonutil.FlexString `json:"item"`
	Quantity      jsonutil.FlexString `json:"quantity"`
	EstimatedCost jsonutil.FlexString `json:"estimatedCost"`
}

type rawShoppingSection struct {
	Section jsonutil.FlexString `json:"section"`
	Items   []rawShoppingItem   `json:"items"`
}

type rawPrepTask struct {
	Day        jsonutil.FlexString `json:"day"`
	Tasks      jsonutil.StringList `json:"tasks"`
	TimeNeeded jsonutil.FlexString `json:"timeNeeded"`
}

type rawMeal struct {
	Day         jsonutil.FlexString `json:"day"`
	Title       jsonutil.FlexString `json:"title"`
	Description jsonutil.FlexString `json:"description"`
}

type rawPlan struct {
	Meals        []rawMeal            `json:"meals"`
	ShoppingList []rawShoppingSection `json:"shoppingList"`
	PrepSchedule []rawPrepTask        `json:"prepSchedule"`
	TotalCost    jsonutil.FlexString  `json:"totalCost"`
	Notes        jsonutil.FlexString  `json:"notes"`
}

// ParsePlan decodes generated text into a MealPlan. The meal list is
// normalized to exactly profile.DinnersNeeded entries: extra meals are
// dropped, missing ones are filled from the fallback table so a short
// response still yields a complete week.
func ParsePlan(text, planType string, profile WeeklyProfile) (*MealPlan, error) {
	var raw rawPlan
	if err := jsonutil.Unmarshal(text, &raw); err != nil {
		return nil, err
	}
	if len(raw.Meals) == 0 {
		return nil, fmt.Errorf("%w: plan contains no meals", jsonutil.ErrInvalidJSON)
	}

	meals := make([]DayMeal, 0, profile.DinnersNeeded)
	for i, m := range raw.Meals {
		if i >= profile.DinnersNeeded {
			break
		}
		meals = append(meals, DayMeal{
			Day:         string(m.Day),
			Title:       string(m.Title),
			Description: string(m.Description),
		})
	}
	if len(meals) < profile.DinnersNeeded {
		meals = append(meals, fallbackMeals(planType, profile.DinnersNeeded)[len(meals):]...)
	}

	plan := &MealPlan{
		ID:           shared.NextID(),
		PlanType:     planType,
		Meals:        meals,
		ShoppingList: convertSections(raw.ShoppingList),
		TotalCost:    string(raw.TotalCost),
		PrepSchedule: convertPrepTasks(raw.PrepSchedule),
		Notes:        string(raw.Notes),
		CreatedAt:    time.Now(),
	}
	return plan, nil
}

func convertSections(raw []rawShoppingSection) []ShoppingSection {
	sections := make([]ShoppingSection, 0, len(raw))
	for _, s := range raw {
		items := make([]ShoppingItem, 0, len(s.Items))
		for _, it := range s.Items {
			items = append(items, ShoppingItem{
				Item:          string(it.Item),
				Quantity:      string(it.Quantity),
				EstimatedCost: string(it.EstimatedCost),
			})
		}
		sections = append(sections, ShoppingSection{Section: string(s.Section), Items: items})
	}
	return sections
}

func convertPrepTasks(raw []rawPrepTask) []PrepTask {
	if len(raw) == 0 {
		return nil
	}
	tasks := make([]PrepTask, 0, len(raw))
	for _, t := range raw {
		tasks = append(tasks, PrepTask{
			Day:        string(t.Day),
			Tasks:      t.Tasks.Strings(),
			TimeNeeded: string(t.TimeNeeded),
		})
	}
	return tasks
}

type rawExpansion struct {
	PrepTime     jsonutil.FlexString `json:"prepTime"`
	CookTime     jsonutil.FlexString `json:"cookTime"`
	TotalTime    jsonutil.FlexString `json:"totalTime"`
	Ingredients  jsonutil.StringList `json:"ingredients"`
	Instructions jsonutil.StringList `json:"instructions"`
	Tips         jsonutil.StringList `json:"tips"`
	PrepAhead    jsonutil.StringList `json:"prepAhead"`
}

// ParseExpansion decodes generated text into meal recipe details.
func ParseExpansion(text string) (Expansion, error) {
	var raw rawExpansion
	if err := jsonutil.Unmarshal(text, &raw); err != nil {
		return Expansion{}, err
	}
	return Expansion{
		PrepTime:     string(raw.PrepTime),
		CookTime:     string(raw.CookTime),
		TotalTime:    string(raw.TotalTime),
		Ingredients:  raw.Ingredients.Strings(),
		Instructions: raw.Instructions.Strings(),
		Tips:         raw.Tips.Strings(),
		PrepAhead:    raw.PrepAhead.Strings(),
	}, nil
}
