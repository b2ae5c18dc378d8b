package planner

import (
	"time"

	"github.com/thedadreport/family-recipe-garden/internal/format"
	"github.com/thedadreport/family-recipe-garden/internal/shared"
)

type fallbackMeal struct {
	Day         string
	Title       string
	Description string
}

var fallbackPlanMeals = map[string][]fallbackMeal{
	PlanGeneral: {
		{"Monday", "One-Pot Chicken and Rice", "Easy one-pot meal with chicken, rice, and vegetables"},
		{"Tuesday", "Sheet Pan Sausage and Vegetables", "Simple sheet pan dinner with Italian sausage"},
		{"Wednesday", "Quick Beef Tacos", "Family-friendly taco night with ground beef"},
		{"Thursday", "Baked Chicken with Sweet Potatoes", "Healthy baked chicken with roasted sweet potatoes"},
		{"Friday", "Pasta with Meat Sauce", "Classic comfort food with hearty meat sauce"},
	},
	PlanBudget: {
		{"Monday", "Hearty Bean and Rice Bowl", "Budget-friendly protein with beans and rice"},
		{"Tuesday", "Egg Fried Rice", "Use leftover rice with eggs and frozen vegetables"},
		{"Wednesday", "Lentil Soup with Bread", "Filling lentil soup that stretches the budget"},
		{"Thursday", "Pasta with Simple Tomato Sauce", "Basic pasta dish with canned tomatoes"},
		{"Friday", "Chicken Thigh and Potato Bake", "Inexpensive chicken thighs with potatoes"},
	},
	PlanTimeSaving: {
		{"Monday", "Slow Cooker Chicken", "Set it in the morning, dinner ready when you get home"},
		{"Tuesday", "15-Minute Pasta", "Quick pasta with pre-prepped ingredients"},
		{"Wednesday", "Sheet Pan Fajitas", "Everything cooks on one pan"},
		{"Thursday", "Instant Pot Rice and Beans", "Pressure cooker makes this super fast"},
		{"Friday", "Pre-Made Freezer Meal", "Heat up meal prepped on Sunday"},
	},
}

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// fallbackMeals returns exactly n meal slots for a plan type, cycling the
// template table for weeks longer than five dinners.
func fallbackMeals(planType string, n int) []DayMeal {
	table, ok := fallbackPlanMeals[planType]
	if !ok {
		table = fallbackPlanMeals[PlanGeneral]
	}

	meals := make([]DayMeal, 0, n)
	for i := 0; i < n; i++ {
		tmpl := table[i%len(table)]
		meals = append(meals, DayMeal{
			Day:         weekdays[i%len(weekdays)],
			Title:       tmpl.Title,
			Description: tmpl.Description,
		})
	}
	return meals
}

// FallbackShoppingList builds a staple shopping list. Budget plans get
// item costs scaled down by the discount factor.
func FallbackShoppingList(planType string, discount float64) []ShoppingSection {
	sections := []ShoppingSection{
		{
			Section: "Meat & Poultry",
			Items: []ShoppingItem{
				{Item: "Chicken thighs", Quantity: "2 lbs", EstimatedCost: "$8.00"},
				{Item: "Ground beef", Quantity: "1 lb", EstimatedCost: "$7.00"},
			},
		},
		{
			Section: "Produce",
			Items: []ShoppingItem{
				{Item: "Yellow onions", Quantity: "2 large", EstimatedCost: "$2.00"},
				{Item: "Bell peppers", Quantity: "3", EstimatedCost: "$4.00"},
				{Item: "Garlic", Quantity: "1 head", EstimatedCost: "$1.00"},
				{Item: "Carrots", Quantity: "1 lb bag", EstimatedCost: "$2.00"},
			},
		},
		{
			Section: "Pantry",
			Items: []ShoppingItem{
				{Item: "Rice", Quantity: "2 lb bag", EstimatedCost: "$3.00"},
				{Item: "Pasta", Quantity: "2 boxes", EstimatedCost: "$4.00"},
				{Item: "Olive oil", Quantity: "1 bottle", EstimatedCost: "$6.00"},
				{Item: "Canned tomatoes", Quantity: "3 cans", EstimatedCost: "$5.00"},
			},
		},
		{
			Section: "Dairy",
			Items: []ShoppingItem{
				{Item: "Eggs", Quantity: "1 dozen", EstimatedCost: "$3.00"},
				{Item: "Parmesan cheese", Quantity: "8 oz", EstimatedCost: "$5.00"},
			},
		},
	}

	if planType == PlanBudget {
		for si := range sections {
			for ii := range sections[si].Items {
				if cost, ok := format.ParseCost(sections[si].Items[ii].EstimatedCost); ok {
					sections[si].Items[ii].EstimatedCost = format.Cost(cost * discount)
				}
			}
		}
	}
	return sections
}

// FallbackPlan builds a complete weekly plan without calling any backend.
// Unknown plan types get the general meal table.
func FallbackPlan(planType string, profile WeeklyProfile, discount float64) *MealPlan {
	shoppingList := FallbackShoppingList(planType, discount)

	var total float64
	for _, section := range shoppingList {
		for _, item := range section.Items {
			if cost, ok := format.ParseCost(item.EstimatedCost); ok {
				total += cost
			}
		}
	}

	var prepSchedule []PrepTask
	if planType == PlanTimeSaving {
		prepSchedule = []PrepTask{
			{
				Day: "Sunday",
				Tasks: []string{
					"Wash and chop all vegetables",
					"Season proteins and store in fridge",
					"Cook rice for the week",
					"Prep freezer meal for Friday",
				},
				TimeNeeded: "60 minutes",
			},
		}
	}

	return &MealPlan{
		ID:           shared.NextID(),
		PlanType:     planType,
		Meals:        fallbackMeals(planType, profile.DinnersNeeded),
		ShoppingList: shoppingList,
		TotalCost:    format.Cost(total),
		PrepSchedule: prepSchedule,
		Notes:        "This plan focuses on simple, family-friendly meals with minimal prep.",
		CreatedAt:    time.Now(),
	}
}

// FallbackExpansion returns generic recipe details for a meal slot when
// expansion fails.
func FallbackExpansion() Expansion {
	return Expansion{
		PrepTime:  "15 minutes",
		CookTime:  "30 minutes",
		TotalTime: "45 minutes",
		Ingredients: []string{
			"Main protein (chicken, beef, etc.)",
			"Vegetables (onion, garlic, etc.)",
			"Starch (rice, pasta, potatoes)",
			"Seasonings (salt, pepper, herbs)",
			"Cooking oil or butter",
		},
		Instructions: []string{
			"Prep all ingredients first",
			"Heat oil in large pan or pot",
			"Cook protein until done",
			"Add vegetables and cook until tender",
			"Add seasonings and combine",
			"Serve hot with starch",
		},
		Tips: []string{
			"Taste and adjust seasoning",
			"Don't overcook the vegetables",
			"Let meat rest before serving",
		},
		PrepAhead: []string{
			"Chop vegetables ahead of time",
			"Season protein the night before",
		},
	}
}
