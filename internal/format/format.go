// Package format holds small text-formatting helpers shared by the prompt
// builders, fallbacks, and export renderers.
package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Minutes renders a minute count as display text ("45 minutes", "1h 30m").
func Minutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d minutes", minutes)
	}
	hours := minutes / 60
	rest := minutes % 60
	if rest == 0 {
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, rest)
}

var nonCost = regexp.MustCompile(`[^0-9.]`)

// ParseCost extracts a dollar amount from display text like "$8.00".
// Returns false when the text holds no parseable number.
func ParseCost(text string) (float64, bool) {
	cleaned := nonCost.ReplaceAllString(text, "")
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Cost renders a dollar amount as "$X.XX".
func Cost(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// Servings renders a family size as display text, e.g.
// "4 (2 adults, 2 kids)".
func Servings(adults, kids int) string {
	total := adults + kids
	var parts []string
	if adults > 0 {
		parts = append(parts, plural(adults, "adult"))
	}
	if kids > 0 {
		parts = append(parts, plural(kids, "kid"))
	}
	if len(parts) == 0 {
		return strconv.Itoa(total)
	}
	return fmt.Sprintf("%d (%s)", total, strings.Join(parts, ", "))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// List joins items as a natural-language list: "a", "a and b",
// "a, b, and c".
func List(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

// ListOr joins a set as a natural-language list, substituting fallback
// when the set is empty. Used by prompt builders so empty profile fields
// never render as empty strings.
func ListOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return List(items)
}

// Or returns text, or fallback when text is blank.
func Or(text, fallback string) string {
	if strings.TrimSpace(text) == "" {
		return fallback
	}
	return text
}

// Truncate shortens text to at most max runes, appending an ellipsis when
// something was cut.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return strings.TrimSpace(string(runes[:max])) + "..."
}
