package recipe

import (
	"strconv"
	"time"

	"github.com/thedadreport/family-recipe-garden/internal/shared"
)

// fallbackRecipe is a reliable kitchen-tested template used when generation
// fails. Servings and metadata come from the caller's profile.
type fallbackRecipe struct {
	Title        string
	TotalTime    string
	Ingredients  []string
	Instructions []string
	Tips         []string
	Notes        string
}

var fallbackRecipes = map[string]fallbackRecipe{
	SituationGeneral: {
		Title:     "Garden Herb Pasta with Lemon",
		TotalTime: "25 minutes",
		Ingredients: []string{
			"1 lb good pasta (bucatini or spaghetti)",
			"1/4 cup best-quality olive oil",
			"3 garlic cloves, thinly sliced",
			"Zest and juice of 2 lemons",
			"1/2 cup freshly grated Parmigiano-Reggiano",
			"2 cups mixed fresh herbs (basil, parsley, mint)",
			"Flaky sea salt and freshly ground black pepper",
			"2 tbsp unsalted butter",
		},
		Instructions: []string{
			"Bring a large pot of water to boil. Salt generously - it should taste like seawater",
			"Cook pasta until just shy of al dente",
			"Warm olive oil in large skillet. Add garlic, cook until fragrant",
			"Reserve pasta water, then drain pasta",
			"Add pasta to skillet with garlic oil. Toss with pasta water",
			"Remove from heat. Add lemon, butter, cheese, and herbs",
			"Taste and adjust seasoning. Serve immediately",
		},
		Tips: []string{
			"Pasta water creates the silky sauce",
			"Taste and adjust as you go",
			"Kids can help wash herbs",
		},
		Notes: "Works with any seasonal vegetables. Use the best ingredients you can find.",
	},
	SituationProteinRandom: {
		Title:     "Quick Chicken and Rice Skillet",
		TotalTime: "30 minutes",
		Ingredients: []string{
			"1 lb chicken thighs, cut into pieces",
			"1 cup jasmine rice",
			"2 cups chicken broth",
			"1 onion, diced",
			"2 cloves garlic, minced",
			"1 bell pepper, chopped",
			"1 tsp paprika",
			"Salt and pepper to taste",
			"2 tbsp olive oil",
		},
		Instructions: []string{
			"Heat oil in large skillet over medium-high heat",
			"Season chicken with salt, pepper, and paprika",
			"Cook chicken until browned, remove and set aside",
			"Add onion and pepper to same pan, cook 5 minutes",
			"Add garlic and rice, stir for 1 minute",
			"Add broth and chicken back to pan",
			"Bring to boil, reduce heat, cover and simmer 18 minutes",
			"Let stand 5 minutes, then fluff and serve",
		},
		Tips: []string{
			"Use chicken thighs for more flavor",
			"Don't lift the lid while cooking rice",
			"Add frozen peas in the last 5 minutes",
		},
		Notes: "Works with any protein and leftover vegetables.",
	},
	SituationStretchProtein: {
		Title:     "Hearty Pasta with Small Amount of Meat",
		TotalTime: "35 minutes",
		Ingredients: []string{
			"1/2 lb ground beef or turkey",
			"1 lb pasta (penne or rigatoni)",
			"1 can (28 oz) crushed tomatoes",
			"1 can (15 oz) white beans, drained",
			"1 onion, diced",
			"3 cloves garlic, minced",
			"2 tsp Italian seasoning",
			"1/2 cup grated Parmesan",
			"2 tbsp olive oil",
		},
		Instructions: []string{
			"Cook pasta according to package directions",
			"Heat oil in large pan, cook onion until soft",
			"Add garlic and meat, cook until browned",
			"Add tomatoes, beans, and Italian seasoning",
			"Simmer 15 minutes until thickened",
			"Toss with cooked pasta and Parmesan",
			"Serve hot with extra cheese",
		},
		Tips: []string{
			"Beans add protein and make it more filling",
			"Use good canned tomatoes for best flavor",
			"Leftovers are even better the next day",
		},
		Notes: "Stretches small amounts of protein to feed everyone well.",
	},
	SituationOnePot: {
		Title:     "One-Pot Chicken and Vegetables",
		TotalTime: "35 minutes",
		Ingredients: []string{
			"1 lb chicken thighs",
			"2 cups potatoes, cubed",
			"1 cup carrots, sliced",
			"1 onion, chopped",
			"3 cloves garlic, minced",
			"2 cups chicken broth",
			"1 tsp thyme",
			"Salt and pepper",
			"2 tbsp olive oil",
		},
		Instructions: []string{
			"Heat oil in large Dutch oven",
			"Season and brown chicken on both sides",
			"Add vegetables and garlic to pot",
			"Pour in broth, add thyme and seasonings",
			"Bring to boil, then reduce heat",
			"Cover and simmer 25 minutes",
			"Check that chicken is cooked through",
			"Serve hot from the pot",
		},
		Tips: []string{
			"Cut vegetables same size for even cooking",
			"Use whatever vegetables you have on hand",
			"Great for leftovers",
		},
		Notes: "Everything cooks in one pot for easy cleanup.",
	},
	SituationDumpBake: {
		Title:     "Sheet Pan Chicken and Vegetables",
		TotalTime: "40 minutes",
		Ingredients: []string{
			"1 lb chicken thighs or breasts",
			"2 cups baby potatoes, halved",
			"2 cups mixed vegetables (broccoli, carrots, bell peppers)",
			"3 tbsp olive oil",
			"2 tsp garlic powder",
			"1 tsp paprika",
			"Salt and pepper",
			"Fresh herbs (optional)",
		},
		Instructions: []string{
			"Preheat oven to 425°F",
			"Toss all ingredients on sheet pan",
			"Season generously with salt and pepper",
			"Spread in single layer",
			"Bake 35-40 minutes until chicken is cooked",
			"Check vegetables are tender",
			"Serve directly from pan",
		},
		Tips: []string{
			"Don't overcrowd the pan",
			"Cut vegetables similar sizes",
			"Line pan with parchment for easy cleanup",
		},
		Notes: "Simple sheet pan dinner with minimal cleanup.",
	},
	SituationTomorrowLunch: {
		Title:     "Make-Ahead Grain Bowl",
		TotalTime: "45 minutes",
		Ingredients: []string{
			"2 cups quinoa or brown rice",
			"1 lb protein (chicken, chickpeas, or tofu)",
			"4 cups mixed roasted vegetables",
			"1/2 cup nuts or seeds",
			"Simple vinaigrette",
			"2 tbsp olive oil",
			"Salt and pepper",
			"Fresh herbs",
		},
		Instructions: []string{
			"Cook grain according to package directions",
			"Roast vegetables at 400°F for 25 minutes",
			"Cook protein until done",
			"Let everything cool slightly",
			"Combine grain, vegetables, and protein",
			"Add nuts and herbs",
			"Dress lightly and toss",
			"Store extras in fridge for lunches",
		},
		Tips: []string{
			"Keep dressing on the side for lunches",
			"Add fresh elements when serving",
			"Great cold or reheated",
		},
		Notes: "Makes dinner plus 2-4 lunch portions that taste good the next day.",
	},
}

// Fallback builds a reliable recipe for the situation without calling any
// backend. Unknown situations get the general template.
func Fallback(situation string, profile UserProfile) *Recipe {
	base, ok := fallbackRecipes[situation]
	if !ok {
		base = fallbackRecipes[SituationGeneral]
	}

	return &Recipe{
		ID:            shared.NextID(),
		Title:         base.Title,
		TotalTime:     base.TotalTime,
		Servings:      strconv.Itoa(profile.Adults + profile.Kids),
		Ingredients:   base.Ingredients,
		Instructions:  base.Instructions,
		Tips:          base.Tips,
		Notes:         base.Notes,
		Situation:     situation,
		CookingMethod: profile.CookingMethod,
		Seasonal:      profile.Seasonal,
		Cuisine:       profile.Cuisine,
		MealType:      profile.MealType,
		CreatedAt:     time.Now(),
	}
}
