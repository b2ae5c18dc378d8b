// Package clipper imports recipes from the web. It fetches a page, strips
// the markup noise, and has the generation backend restructure what is left
// into a saved recipe.
package clipper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/thedadreport/family-recipe-garden/internal/format"
	"github.com/thedadreport/family-recipe-garden/internal/llm"
	"github.com/thedadreport/family-recipe-garden/internal/recipe"
	"github.com/thedadreport/family-recipe-garden/internal/storage"
)

// SituationClipped tags recipes imported from a URL rather than generated.
const SituationClipped = "clipped"

const (
	clipTokenBudget = 1500

	// Pages longer than this are truncated before prompting. Recipe content
	// sits near the top of the text once scripts and navigation are gone.
	maxContentChars = 20000
)

// Clipper fetches recipe pages and turns them into saved recipes. Unlike
// the generator there is no fallback: a clip either works or errors.
type Clipper struct {
	textGen llm.TextGenerator
	store   *storage.RecipeStore
	client  *http.Client
}

// NewClipper creates a Clipper backed by the given generator and store.
func NewClipper(textGen llm.TextGenerator, store *storage.RecipeStore) *Clipper {
	return &Clipper{
		textGen: textGen,
		store:   store,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// ClipURL fetches the URL, extracts the recipe, and saves it.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*recipe.Recipe, error) {
	content, err := c.fetchAndCleanHTML(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}
	content = format.Truncate(content, maxContentChars)

	prompt := fmt.Sprintf(`Extract the recipe from the following web page text.

Respond in this EXACT JSON format:
{
  "title": "Recipe Name",
  "totalTime": "X minutes",
  "servings": "X people",
  "ingredients": ["ingredient with amount", "ingredient with amount"],
  "instructions": ["step 1", "step 2", "step 3"],
  "tips": ["helpful tip"],
  "notes": "any extra notes from the page"
}

Page text:
%s

Your entire response must be valid JSON only.`, content)

	resp, err := c.textGen.GenerateContent(ctx, prompt, clipTokenBudget)
	if err != nil {
		return nil, fmt.Errorf("recipe extraction failed: %w", err)
	}

	r, err := recipe.Parse(resp.Content, SituationClipped, recipe.UserProfile{Adults: 2, Kids: 2})
	if err != nil {
		return nil, fmt.Errorf("failed to parse extracted recipe: %w", err)
	}
	if r.Notes == "" {
		r.Notes = "Clipped from " + url
	} else {
		r.Notes += "\nClipped from " + url
	}

	if err := c.store.Save(r); err != nil {
		return nil, fmt.Errorf("failed to save clipped recipe: %w", err)
	}
	return r, nil
}

func (c *Clipper) fetchAndCleanHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return doc.Find("body").Text(), nil
}
