package planner

import (
	"fmt"
	"strings"

	"github.com/thedadreport/family-recipe-garden/internal/format"
)

// ShoppingListText renders a shopping list as plain text for copying.
func ShoppingListText(sections []ShoppingSection, totalCost string) string {
	var b strings.Builder
	b.WriteString("WEEKLY SHOPPING LIST\n\n")

	for _, section := range sections {
		b.WriteString(strings.ToUpper(section.Section) + ":\n")
		for _, item := range section.Items {
			fmt.Fprintf(&b, "• %s - %s", item.Item, item.Quantity)
			if item.EstimatedCost != "" {
				fmt.Fprintf(&b, " (%s)", displayCost(item.EstimatedCost))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if totalCost != "" {
		fmt.Fprintf(&b, "ESTIMATED TOTAL: %s\n", displayCost(totalCost))
	}
	return b.String()
}

// displayCost normalizes cost text to "$X.XX", leaving already-formatted
// or unparseable text alone.
func displayCost(cost string) string {
	if strings.Contains(cost, "$") {
		return cost
	}
	if v, ok := format.ParseCost(cost); ok {
		return format.Cost(v)
	}
	return cost
}
