package recipe

import (
	"fmt"
	"strings"
)

// ShareText renders a recipe as plain text for copying or sharing.
func ShareText(r *Recipe) string {
	var b strings.Builder

	title := strings.ToUpper(r.Title)
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(r.Title)) + "\n\n")

	fmt.Fprintf(&b, "Serves: %s\n", r.Servings)
	fmt.Fprintf(&b, "Total Time: %s\n\n", r.TotalTime)

	b.WriteString("INGREDIENTS:\n")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, "• %s\n", ing)
	}
	b.WriteString("\n")

	b.WriteString("INSTRUCTIONS:\n")
	for i, step := range r.Instructions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}

	if len(r.Tips) > 0 {
		b.WriteString("\nTIPS:\n")
		for _, tip := range r.Tips {
			fmt.Fprintf(&b, "• %s\n", tip)
		}
	}

	if r.Notes != "" {
		fmt.Fprintf(&b, "\nNOTES:\n%s\n", r.Notes)
	}

	return b.String()
}
