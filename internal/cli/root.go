package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/osse101/CraftCalc_Go/internal/calculator"
	"github.com/osse101/CraftCalc_Go/internal/catalog"
	"github.com/osse101/CraftCalc_Go/internal/config"
)

// flags shared by every subcommand
type rootFlags struct {
	recipes    string
	raw        string
	catalogHCL string
	maxSteps   int
	strict     bool
	partial    bool
	asJSON     bool
}

// NewRootCommand builds the craftcalc command tree
func NewRootCommand() *cobra.Command {
	f := &rootFlags{}

	root := &cobra.Command{
		Use:   "craftcalc",
		Short: "Crafting cost calculator",
		Long: `craftcalc expands crafted items into the raw materials needed to build them.

The catalog is read from a recipes.json / raw_materials.json pair, or from a
single HCL file when --catalog is given.

Examples:
  craftcalc calc Table 2
  craftcalc total Table=2 Lamp=1 --json
  craftcalc items cop
  craftcalc validate --catalog configs/catalog.hcl`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.recipes, "recipes", config.DefaultRecipesPath, "Path to recipes.json")
	pf.StringVar(&f.raw, "raw", config.DefaultRawMaterialsPath, "Path to raw_materials.json")
	pf.StringVar(&f.catalogHCL, "catalog", "", "Path to an HCL catalog (overrides --recipes and --raw)")
	pf.IntVar(&f.maxSteps, "max-steps", calculator.DefaultMaxSteps, "Maximum expansion steps per calculation")
	pf.BoolVar(&f.strict, "strict", false, "Fail on items that are neither recipes nor raw materials")
	pf.BoolVar(&f.partial, "partial", false, "Return a partial result instead of failing at the step limit")
	pf.BoolVar(&f.asJSON, "json", false, "Print JSON instead of a table")

	root.AddCommand(
		newCalcCommand(f),
		newTotalCommand(f),
		newItemsCommand(f),
		newValidateCommand(f),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (f *rootFlags) openCatalog() (*catalog.Catalog, []string, error) {
	if f.catalogHCL != "" {
		return catalog.OpenHCL(f.catalogHCL)
	}
	return catalog.Open(f.recipes, f.raw)
}

func (f *rootFlags) engineOptions() calculator.Options {
	opts := calculator.DefaultOptions()
	opts.MaxSteps = f.maxSteps
	opts.AllowPartialOnStepLimit = f.partial
	if f.strict {
		opts.UnknownItems = calculator.UnknownAsError
	}
	return opts
}

// openEngine loads the catalog and prints its warnings to stderr
func (f *rootFlags) openEngine(cmd *cobra.Command) (*calculator.Engine, *catalog.Catalog, error) {
	cat, warnings, err := f.openCatalog()
	if err != nil {
		return nil, nil, err
	}
	for _, w := range warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}
	return calculator.New(cat, f.engineOptions()), cat, nil
}
