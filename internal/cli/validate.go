package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osse101/CraftCalc_Go/internal/calculator"
	"github.com/osse101/CraftCalc_Go/internal/domain"
	"github.com/osse101/CraftCalc_Go/internal/worker"
)

func newValidateCommand(f *rootFlags) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog and expand every recipe once",
		Long: `validate loads the catalog, reports loader warnings, then expands every
recipe to surface circular dependencies and step limit failures. It exits
non-zero when any recipe cannot be expanded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, warnings, err := f.openCatalog()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, w := range warnings {
				fmt.Fprintln(out, "warning:", w)
			}

			engine := calculator.New(cat, f.engineOptions())
			items := cat.Items()
			errs := make([]error, len(items))

			pool := worker.NewPool(workers, len(items))
			pool.Start(cmd.Context())
			for i, item := range items {
				pool.Enqueue(worker.JobFunc(func(ctx context.Context) error {
					_, errs[i] = engine.Expand(ctx, item.Name, 1)
					return errs[i]
				}))
			}
			pool.Stop()
			if err := cmd.Context().Err(); err != nil {
				return err
			}

			var failed int
			for i, err := range errs {
				if err != nil {
					failed++
					fmt.Fprintf(out, "error: %s: %v\n", items[i].Name, err)
				}
			}

			fmt.Fprintf(out, "%d recipes, %d raw materials, %d warnings, %d failures\n",
				cat.RecipeCount(), len(cat.RawMaterials()), len(warnings), failed)
			if failed > 0 {
				return fmt.Errorf("%w: %d recipes failed to expand", domain.ErrInvalidCatalog, failed)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "parallel expansions (0 uses GOMAXPROCS)")
	return cmd
}
