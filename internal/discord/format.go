package discord

import (
	"fmt"
	"strings"

	"github.com/osse101/CraftCalc_Go/internal/domain"
)

const truncationReserve = 64

// formatMaterials renders a bill of materials followed by any warnings,
// cutting the list short when it would not fit in one embed.
func formatMaterials(materials []domain.MaterialAmount, warnings []string) string {
	var sb strings.Builder

	if len(materials) == 0 {
		sb.WriteString("_Nothing to gather._")
	}

	var footer strings.Builder
	for _, w := range warnings {
		fmt.Fprintf(&footer, "\n⚠️ %s", w)
	}
	budget := maxEmbedDescription - footer.Len() - truncationReserve

	for idx, m := range materials {
		line := fmt.Sprintf("• **%s** × %d\n", m.Name, m.Quantity)
		if sb.Len()+len(line) > budget {
			fmt.Fprintf(&sb, "…and %d more\n", len(materials)-idx)
			break
		}
		sb.WriteString(line)
	}

	if footer.Len() > 0 {
		sb.WriteString(footer.String())
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatList renders shopping list entries in insertion order
func formatList(list *domain.ShoppingList) string {
	if list == nil || len(list.Entries) == 0 {
		return MsgListEmpty
	}

	var sb strings.Builder
	for idx, e := range list.Entries {
		fmt.Fprintf(&sb, "%d. **%s** × %d\n", idx+1, e.Item, e.Quantity)
	}
	return strings.TrimRight(sb.String(), "\n")
}
