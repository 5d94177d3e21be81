package calculator

import (
	"context"

	"github.com/osse101/CraftCalc_Go/internal/logger"
	"github.com/osse101/CraftCalc_Go/internal/metrics"
)

// Request is one (item, quantity) line of an aggregation
type Request struct {
	Item     string  `json:"item" validate:"required,max=200"`
	Quantity float64 `json:"quantity" validate:"gt=0"`
}

// Aggregate expands every request independently and sums the rounded results.
// The first failing request aborts the whole aggregation; the returned error is
// a *RequestError wrapping the cause.
func (e *Engine) Aggregate(ctx context.Context, requests []Request) (*Result, error) {
	log := logger.FromContext(ctx)
	out := &Result{Materials: Materials{}}
	seen := make(map[string]bool)

	for i, req := range requests {
		res, err := e.expand(ctx, req.Item, req.Quantity)
		if err != nil {
			metrics.RecordCalculation(metrics.KindAggregate, outcome(err))
			log.Debug("Aggregation aborted", "index", i, "item", req.Item, "error", err)
			return nil, &RequestError{Index: i, Item: req.Item, Err: err}
		}

		if err := out.Materials.addChecked(res.Materials); err != nil {
			metrics.RecordCalculation(metrics.KindAggregate, metrics.OutcomeError)
			log.Debug("Aggregation total out of range", "index", i, "item", req.Item, "error", err)
			return nil, &RequestError{Index: i, Item: req.Item, Err: err}
		}
		out.Steps += res.Steps
		out.Partial = out.Partial || res.Partial
		for _, w := range res.Warnings {
			if !seen[w] {
				seen[w] = true
				out.Warnings = append(out.Warnings, w)
			}
		}
	}

	if out.Partial {
		metrics.RecordCalculation(metrics.KindAggregate, metrics.OutcomePartial)
	} else {
		metrics.RecordCalculation(metrics.KindAggregate, metrics.OutcomeSuccess)
	}
	log.Debug("Aggregation complete", "requests", len(requests), "materials", len(out.Materials))
	return out, nil
}

// Aggregate is a convenience wrapper using DefaultOptions and a background context
func Aggregate(catalog Catalog, requests []Request) (Materials, error) {
	res, err := New(catalog, DefaultOptions()).Aggregate(context.Background(), requests)
	if err != nil {
		return nil, err
	}
	return res.Materials, nil
}
