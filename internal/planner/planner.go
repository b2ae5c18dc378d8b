package planner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/thedadreport/family-recipe-garden/internal/jsonutil"
	"github.com/thedadreport/family-recipe-garden/internal/llm"
	"github.com/thedadreport/family-recipe-garden/internal/shared"
)

const (
	maxTokensPlan     = 3000
	maxTokensExpand   = 1000
	maxTokensDiet     = 2000
	maxTokensCombined = 1500
	maxTokensPrep     = 1000

	defaultBudgetDiscount = 0.8
)

// Planner turns a plan type and weekly profile into a meal plan. Like the
// recipe generator, plan generation and meal expansion always produce a
// usable result: failures resolve to fallbacks, never errors.
type Planner struct {
	textGen          llm.TextGenerator
	budgetDiscount   float64
	alternativeDelay time.Duration

	mu           sync.Mutex
	lastPlanType string
	lastProfile  WeeklyProfile
	hasLast      bool
}

// NewPlanner creates a new Planner. A zero budgetDiscount selects the
// default fallback discount for budget plans.
func NewPlanner(textGen llm.TextGenerator, budgetDiscount float64) *Planner {
	if budgetDiscount <= 0 {
		budgetDiscount = defaultBudgetDiscount
	}
	return &Planner{
		textGen:          textGen,
		budgetDiscount:   budgetDiscount,
		alternativeDelay: 2 * time.Second,
	}
}

// PlanResult is the outcome of one plan generation. When GenErr is set the
// plan is a fallback and Meta.Fallback is true.
type PlanResult struct {
	Plan   *MealPlan
	Meta   shared.CallMeta
	GenErr error
}

// GeneratePlan produces a weekly plan and remembers the request so
// RetryLast can re-run it.
func (p *Planner) GeneratePlan(ctx context.Context, planType string, profile WeeklyProfile) PlanResult {
	p.mu.Lock()
	p.lastPlanType = planType
	p.lastProfile = profile
	p.hasLast = true
	p.mu.Unlock()

	return p.generate(ctx, planType, profile)
}

// RetryLast re-runs the most recent GeneratePlan request.
func (p *Planner) RetryLast(ctx context.Context) (PlanResult, error) {
	p.mu.Lock()
	planType, profile, ok := p.lastPlanType, p.lastProfile, p.hasLast
	p.mu.Unlock()
	if !ok {
		return PlanResult{}, errors.New("no previous plan to retry")
	}
	return p.generate(ctx, planType, profile), nil
}

func (p *Planner) generate(ctx context.Context, planType string, profile WeeklyProfile) PlanResult {
	start := time.Now()
	meta := shared.CallMeta{AgentName: "MealPlanner"}

	prompt, err := BuildPlanPrompt(planType, profile)
	if err != nil {
		return p.fallbackResult(planType, profile, meta, start, err)
	}

	resp, err := p.textGen.GenerateContent(ctx, prompt, maxTokensPlan)
	meta.Usage = resp.Usage
	meta.Attempts = resp.Attempts
	if err != nil {
		return p.fallbackResult(planType, profile, meta, start, err)
	}

	plan, err := ParsePlan(resp.Content, planType, profile)
	if err != nil {
		return p.fallbackResult(planType, profile, meta, start, err)
	}

	meta.Latency = time.Since(start)
	return PlanResult{Plan: plan, Meta: meta}
}

func (p *Planner) fallbackResult(planType string, profile WeeklyProfile, meta shared.CallMeta, start time.Time, cause error) PlanResult {
	meta.Fallback = true
	meta.Latency = time.Since(start)
	return PlanResult{Plan: FallbackPlan(planType, profile, p.budgetDiscount), Meta: meta, GenErr: cause}
}

// ExpandResult is the outcome of expanding one meal slot.
type ExpandResult struct {
	Meta   shared.CallMeta
	GenErr error
}

// ExpandMeal fills in full recipe details for the meal at index, mutating
// the plan in place. Failures apply the generic fallback expansion so the
// slot is always expanded afterwards.
func (p *Planner) ExpandMeal(ctx context.Context, plan *MealPlan, index int, profile WeeklyProfile) (ExpandResult, error) {
	if index < 0 || index >= len(plan.Meals) {
		return ExpandResult{}, fmt.Errorf("meal index %d out of range (plan has %d meals)", index, len(plan.Meals))
	}

	start := time.Now()
	meta := shared.CallMeta{AgentName: "MealExpander"}

	prompt, err := BuildExpandPrompt(plan.Meals[index], profile)
	if err != nil {
		plan.ApplyExpansion(index, FallbackExpansion())
		meta.Fallback = true
		meta.Latency = time.Since(start)
		return ExpandResult{Meta: meta, GenErr: err}, nil
	}

	resp, err := p.textGen.GenerateContent(ctx, prompt, maxTokensExpand)
	meta.Usage = resp.Usage
	meta.Attempts = resp.Attempts
	if err == nil {
		var exp Expansion
		if exp, err = ParseExpansion(resp.Content); err == nil {
			plan.ApplyExpansion(index, exp)
			meta.Latency = time.Since(start)
			return ExpandResult{Meta: meta}, nil
		}
	}

	plan.ApplyExpansion(index, FallbackExpansion())
	meta.Fallback = true
	meta.Latency = time.Since(start)
	return ExpandResult{Meta: meta, GenErr: err}, nil
}

// Alternatives produces up to count plans of the same type, nudging the
// cuisine preference per iteration so results differ.
func (p *Planner) Alternatives(ctx context.Context, planType string, profile WeeklyProfile, count int) []PlanResult {
	results := make([]PlanResult, 0, count)
	for i := 0; i < count; i++ {
		modified := profile
		if i > 0 {
			modified.CuisinePreference += fmt.Sprintf(" (variation %d)", i+1)
		}
		results = append(results, p.generate(ctx, planType, modified))

		if i < count-1 && p.alternativeDelay > 0 {
			select {
			case <-ctx.Done():
				return results
			case <-time.After(p.alternativeDelay):
			}
		}
	}
	return results
}

// ModifyForDiet rewrites a plan's meals and shopping list for a dietary
// restriction. There is no sensible fallback for an arbitrary base plan, so
// failures return an error.
func (p *Planner) ModifyForDiet(ctx context.Context, base *MealPlan, restriction string) (*MealPlan, shared.CallMeta, error) {
	start := time.Now()
	meta := shared.CallMeta{AgentName: "DietModifier"}

	prompt, err := BuildDietModifyPrompt(base, restriction)
	if err != nil {
		return nil, meta, err
	}
	resp, err := p.textGen.GenerateContent(ctx, prompt, maxTokensDiet)
	meta.Usage = resp.Usage
	meta.Attempts = resp.Attempts
	meta.Latency = time.Since(start)
	if err != nil {
		return nil, meta, err
	}

	var raw rawPlan
	if err := jsonutil.Unmarshal(resp.Content, &raw); err != nil {
		return nil, meta, err
	}
	if len(raw.Meals) == 0 {
		return nil, meta, fmt.Errorf("%w: modified plan contains no meals", jsonutil.ErrInvalidJSON)
	}

	out := *base
	out.ID = shared.NextID()
	out.CreatedAt = time.Now()
	out.Meals = make([]DayMeal, 0, len(raw.Meals))
	for _, m := range raw.Meals {
		out.Meals = append(out.Meals, DayMeal{
			Day:         string(m.Day),
			Title:       string(m.Title),
			Description: string(m.Description),
		})
	}
	if sections := convertSections(raw.ShoppingList); len(sections) > 0 {
		out.ShoppingList = sections
	}
	if raw.TotalCost != "" {
		out.TotalCost = string(raw.TotalCost)
	}
	if raw.Notes != "" {
		out.Notes = string(raw.Notes)
	}
	return &out, meta, nil
}

// CombinedShoppingList consolidates the meals of several plans into one
// shopping list.
func (p *Planner) CombinedShoppingList(ctx context.Context, plans []*MealPlan) ([]ShoppingSection, string, shared.CallMeta, error) {
	start := time.Now()
	meta := shared.CallMeta{AgentName: "ShoppingCombiner"}

	prompt, err := BuildCombinedShoppingPrompt(plans)
	if err != nil {
		return nil, "", meta, err
	}
	resp, err := p.textGen.GenerateContent(ctx, prompt, maxTokensCombined)
	meta.Usage = resp.Usage
	meta.Attempts = resp.Attempts
	meta.Latency = time.Since(start)
	if err != nil {
		return nil, "", meta, err
	}

	var raw rawPlan
	if err := jsonutil.Unmarshal(resp.Content, &raw); err != nil {
		return nil, "", meta, err
	}
	return convertSections(raw.ShoppingList), string(raw.TotalCost), meta, nil
}

// PrepSchedule generates a Sunday prep schedule for an existing plan.
func (p *Planner) PrepSchedule(ctx context.Context, plan *MealPlan, prepTimeAvailable int) ([]PrepTask, shared.CallMeta, error) {
	start := time.Now()
	meta := shared.CallMeta{AgentName: "PrepScheduler"}

	prompt, err := BuildPrepSchedulePrompt(plan, prepTimeAvailable)
	if err != nil {
		return nil, meta, err
	}
	resp, err := p.textGen.GenerateContent(ctx, prompt, maxTokensPrep)
	meta.Usage = resp.Usage
	meta.Attempts = resp.Attempts
	meta.Latency = time.Since(start)
	if err != nil {
		return nil, meta, err
	}

	var raw rawPlan
	if err := jsonutil.Unmarshal(resp.Content, &raw); err != nil {
		return nil, meta, err
	}
	return convertPrepTasks(raw.PrepSchedule), meta, nil
}
