package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/osse101/CraftCalc_Go/internal/domain"
)

func newItemsCommand(f *rootFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "items [query]",
		Short: "List craftable items, optionally filtered by name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, _, err := f.openCatalog()
			if err != nil {
				return err
			}

			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			items := cat.Search(query, limit)

			if f.asJSON {
				if items == nil {
					items = []domain.ItemSummary{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ITEM\tMAKES\tINPUTS")
			for _, item := range items {
				recipe, _ := cat.Recipe(item.Name)
				fmt.Fprintf(tw, "%s\t%g\t%s\n", item.Name, recipe.OutputQty, formatInputs(recipe.Inputs))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of items to show (0 for all)")
	return cmd
}

func formatInputs(inputs map[string]float64) string {
	parts := make([]string, 0, len(inputs))
	for _, name := range sortedNames(inputs) {
		parts = append(parts, fmt.Sprintf("%g %s", inputs[name], name))
	}
	return strings.Join(parts, ", ")
}

func sortedNames(m map[string]float64) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
