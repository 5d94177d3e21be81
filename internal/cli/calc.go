package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/osse101/CraftCalc_Go/internal/calculator"
	"github.com/osse101/CraftCalc_Go/internal/domain"
)

type calcOutput struct {
	Requests  []calculator.Request    `json:"requests"`
	Materials []domain.MaterialAmount `json:"materials"`
	Warnings  []string                `json:"warnings"`
	Steps     int                     `json:"steps"`
	Partial   bool                    `json:"partial"`
}

func newCalcCommand(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "calc <item> [quantity]",
		Short: "Expand one item into raw materials",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := calculator.Request{Item: args[0], Quantity: 1}
			if len(args) == 2 {
				qty, err := parseQuantity(args[1])
				if err != nil {
					return err
				}
				req.Quantity = qty
			}

			engine, _, err := f.openEngine(cmd)
			if err != nil {
				return err
			}
			res, err := engine.Expand(cmd.Context(), req.Item, req.Quantity)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), f.asJSON, []calculator.Request{req}, res)
		},
	}
}

func newTotalCommand(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "total <item=quantity>...",
		Short: "Total the raw materials for several items",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs := make([]calculator.Request, 0, len(args))
			for _, arg := range args {
				req, err := parseRequest(arg)
				if err != nil {
					return err
				}
				reqs = append(reqs, req)
			}

			engine, _, err := f.openEngine(cmd)
			if err != nil {
				return err
			}
			res, err := engine.Aggregate(cmd.Context(), reqs)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), f.asJSON, reqs, res)
		},
	}
}

// parseRequest reads "item=quantity"; a bare item means quantity 1
func parseRequest(arg string) (calculator.Request, error) {
	item, qtyText, found := strings.Cut(arg, "=")
	item = strings.TrimSpace(item)
	if item == "" {
		return calculator.Request{}, fmt.Errorf("%w: empty item in %q", domain.ErrInvalidInput, arg)
	}
	if !found {
		return calculator.Request{Item: item, Quantity: 1}, nil
	}
	qty, err := parseQuantity(qtyText)
	if err != nil {
		return calculator.Request{}, err
	}
	return calculator.Request{Item: item, Quantity: qty}, nil
}

// maxQuantity matches the cap the HTTP API enforces on requested quantities
const maxQuantity = 1000000

func parseQuantity(s string) (float64, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || qty < 1 || qty > maxQuantity {
		return 0, fmt.Errorf("%w: quantity must be a whole number from 1 to %d, got %q", domain.ErrInvalidInput, maxQuantity, s)
	}
	return float64(qty), nil
}

func printResult(w io.Writer, asJSON bool, reqs []calculator.Request, res *calculator.Result) error {
	if asJSON {
		warnings := res.Warnings
		if warnings == nil {
			warnings = []string{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(calcOutput{
			Requests:  reqs,
			Materials: res.Materials.Sorted(),
			Warnings:  warnings,
			Steps:     res.Steps,
			Partial:   res.Partial,
		})
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MATERIAL\tQUANTITY")
	for _, m := range res.Materials.Sorted() {
		fmt.Fprintf(tw, "%s\t%d\n", m.Name, m.Quantity)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, warning := range res.Warnings {
		fmt.Fprintln(w, "warning:", warning)
	}
	return nil
}
