package recipe

import (
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	profile := DefaultProfile()

	t.Run("GeneralDefaults", func(t *testing.T) {
		prompt, err := BuildPrompt(SituationGeneral, profile)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !strings.Contains(prompt, "Create a family recipe for 2 adults and 2 kids") {
			t.Error("Prompt missing family line")
		}
		if !strings.Contains(prompt, "Main ingredients to use: chef's choice") {
			t.Error("Empty ingredients should render as chef's choice")
		}
		if !strings.Contains(prompt, "Dietary preferences: None") {
			t.Error("Empty dietary prefs should render as None")
		}
		if !strings.HasSuffix(prompt, "Your entire response must be valid JSON only.") {
			t.Error("Prompt must end with the JSON-only instruction")
		}
	})

	t.Run("ProteinRandomUsesFirstIngredient", func(t *testing.T) {
		p := profile
		p.Ingredients = "ground turkey, rice, peppers"
		prompt, err := BuildPrompt(SituationProteinRandom, p)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !strings.Contains(prompt, "Protein: ground turkey") {
			t.Error("Protein should be the first listed ingredient")
		}
	})

	t.Run("StretchProteinMentionsHeadcount", func(t *testing.T) {
		prompt, err := BuildPrompt(SituationStretchProtein, profile)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !strings.Contains(prompt, "small amount of protein for 4 people") {
			t.Error("Stretch prompt should mention total headcount")
		}
	})

	t.Run("UnknownSituationFallsToGeneral", func(t *testing.T) {
		got, err := BuildPrompt("mystery-basket", profile)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		want, _ := BuildPrompt(SituationGeneral, profile)
		if got != want {
			t.Error("Unknown situation should render the general prompt")
		}
	})

	t.Run("NoUnresolvedPlaceholders", func(t *testing.T) {
		for _, situation := range Situations() {
			prompt, err := BuildPrompt(situation, UserProfile{Adults: 1})
			if err != nil {
				t.Fatalf("%s: %v", situation, err)
			}
			if strings.Contains(prompt, "{{") || strings.Contains(prompt, "<no value>") {
				t.Errorf("%s: prompt has unresolved placeholders", situation)
			}
		}
	})
}

func TestParse(t *testing.T) {
	profile := DefaultProfile()

	t.Run("AppliesDefaults", func(t *testing.T) {
		r, err := Parse(`{"ingredients": ["1 lb pasta"]}`, SituationGeneral, profile)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if r.Title != "Untitled Recipe" {
			t.Errorf("Expected default title, got %q", r.Title)
		}
		if r.TotalTime != "30 minutes" {
			t.Errorf("Expected default time, got %q", r.TotalTime)
		}
		if r.Servings != "4" {
			t.Errorf("Expected servings from profile, got %q", r.Servings)
		}
		if r.Instructions == nil || r.Tips == nil {
			t.Error("List fields must never be nil")
		}
	})

	t.Run("FencedResponse", func(t *testing.T) {
		text := "```json\n{\"title\": \"Taco Night\", \"servings\": 4}\n```"
		r, err := Parse(text, SituationGeneral, profile)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if r.Title != "Taco Night" {
			t.Errorf("Expected Taco Night, got %q", r.Title)
		}
		if r.Servings != "4" {
			t.Errorf("Numeric servings should become display text, got %q", r.Servings)
		}
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		if _, err := Parse("I suggest making pasta tonight!", SituationGeneral, profile); err == nil {
			t.Fatal("Expected an error for non-JSON text")
		}
	})

	t.Run("EchoesProfileMetadata", func(t *testing.T) {
		p := profile
		p.CookingMethod = "sheet-pan"
		p.Seasonal = true
		p.Cuisine = "italian"
		r, err := Parse(`{"title": "Roast"}`, SituationDumpBake, p)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if r.Situation != SituationDumpBake || r.CookingMethod != "sheet-pan" || !r.Seasonal || r.Cuisine != "italian" {
			t.Error("Recipe should carry the profile metadata")
		}
	})
}

func TestFallback(t *testing.T) {
	profile := UserProfile{Adults: 2, Kids: 3}

	r := Fallback(SituationOnePot, profile)
	if r.Title != "One-Pot Chicken and Vegetables" {
		t.Errorf("Unexpected fallback title: %q", r.Title)
	}
	if r.Servings != "5" {
		t.Errorf("Expected computed servings 5, got %q", r.Servings)
	}
	if r.ID == 0 || r.CreatedAt.IsZero() {
		t.Error("Fallback must have id and createdAt")
	}
	if r.IsFavorite {
		t.Error("Fallback recipes start unfavorited")
	}

	unknown := Fallback("mystery-basket", profile)
	if unknown.Title != fallbackRecipes[SituationGeneral].Title {
		t.Error("Unknown situation should use the general template")
	}
	if unknown.Situation != "mystery-basket" {
		t.Error("Requested situation is kept on the recipe")
	}
}

func TestShareText(t *testing.T) {
	r := &Recipe{
		Title:        "Taco Night",
		Servings:     "4",
		TotalTime:    "25 minutes",
		Ingredients:  []string{"1 lb ground beef", "8 tortillas"},
		Instructions: []string{"Brown the beef", "Warm the tortillas"},
		Tips:         []string{"Let everyone build their own"},
		Notes:        "Leftovers make great nachos.",
	}

	text := ShareText(r)
	for _, want := range []string{
		"TACO NIGHT\n==========\n",
		"Serves: 4\n",
		"Total Time: 25 minutes\n",
		"INGREDIENTS:\n• 1 lb ground beef\n",
		"INSTRUCTIONS:\n1. Brown the beef\n2. Warm the tortillas\n",
		"TIPS:\n• Let everyone build their own\n",
		"NOTES:\nLeftovers make great nachos.\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Share text missing %q:\n%s", want, text)
		}
	}

	bare := &Recipe{Title: "Rice", Servings: "2", TotalTime: "15 minutes"}
	text = ShareText(bare)
	if strings.Contains(text, "TIPS:") || strings.Contains(text, "NOTES:") {
		t.Error("Empty tips and notes sections should be omitted")
	}
}
