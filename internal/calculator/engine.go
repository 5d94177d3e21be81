// Package calculator expands craftable items into the raw materials they
// ultimately consume.
//
// An Engine is immutable and may be shared between goroutines. Every top-level
// call (Expand, or each request inside Aggregate) runs in its own session with
// its own traversal path and memo cache, so nothing computed for one
// calculation is ever visible to another.
package calculator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/osse101/CraftCalc_Go/internal/domain"
	"github.com/osse101/CraftCalc_Go/internal/logger"
	"github.com/osse101/CraftCalc_Go/internal/metrics"
)

// Catalog is the read-only recipe data the engine expands against
type Catalog interface {
	IsRaw(name string) bool
	Recipe(name string) (domain.Recipe, bool)
}

// UnknownItemPolicy decides what happens to items with no recipe and no raw entry
type UnknownItemPolicy int

const (
	// UnknownAsRaw treats the item as an implicit raw material and records a warning
	UnknownAsRaw UnknownItemPolicy = iota
	// UnknownAsError fails the calculation with an UnknownItemError
	UnknownAsError
)

// ParseUnknownItemPolicy maps "raw" and "error" to a policy
func ParseUnknownItemPolicy(s string) (UnknownItemPolicy, error) {
	switch s {
	case "", "raw":
		return UnknownAsRaw, nil
	case "error":
		return UnknownAsError, nil
	default:
		return UnknownAsRaw, fmt.Errorf("%w: unknown item policy %q (want raw or error)", domain.ErrInvalidInput, s)
	}
}

func (p UnknownItemPolicy) String() string {
	if p == UnknownAsError {
		return "error"
	}
	return "raw"
}

const (
	DefaultMaxSteps = 10000
	DefaultMemoSize = 4096
)

// Options tune a single Engine
type Options struct {
	// MaxSteps caps the nodes visited per top-level expansion; <= 0 uses DefaultMaxSteps.
	MaxSteps int
	// UnknownItems selects the unknown-item policy.
	UnknownItems UnknownItemPolicy
	// AllowPartialOnStepLimit returns a best-effort result instead of failing
	// when MaxSteps is exceeded.
	AllowPartialOnStepLimit bool
	// MemoSize bounds the per-calculation memo; 0 or less disables memoization.
	MemoSize int
}

// DefaultOptions returns the options used by the convenience functions
func DefaultOptions() Options {
	return Options{
		MaxSteps:     DefaultMaxSteps,
		UnknownItems: UnknownAsRaw,
		MemoSize:     DefaultMemoSize,
	}
}

// Result is the outcome of one calculation
type Result struct {
	Materials Materials
	Warnings  []string
	Steps     int
	Partial   bool
}

// Engine resolves expansion requests against a catalog
type Engine struct {
	catalog Catalog
	opts    Options
}

// New creates an engine over catalog
func New(catalog Catalog, opts Options) *Engine {
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = DefaultMaxSteps
	}
	if opts.MemoSize < 0 {
		opts.MemoSize = 0
	}
	return &Engine{catalog: catalog, opts: opts}
}

// Options returns the effective engine options
func (e *Engine) Options() Options {
	return e.opts
}

// Expand computes the raw materials needed for quantity units of item.
// A non-positive quantity or an empty item name yields an empty result.
func (e *Engine) Expand(ctx context.Context, item string, quantity float64) (*Result, error) {
	res, err := e.expand(ctx, item, quantity)
	if err != nil {
		metrics.RecordCalculation(metrics.KindExpand, outcome(err))
		return nil, err
	}
	if res.Partial {
		metrics.RecordCalculation(metrics.KindExpand, metrics.OutcomePartial)
	} else {
		metrics.RecordCalculation(metrics.KindExpand, metrics.OutcomeSuccess)
	}
	return res, nil
}

// Expand is a convenience wrapper using DefaultOptions and a background context
func Expand(catalog Catalog, item string, quantity float64) (Materials, error) {
	res, err := New(catalog, DefaultOptions()).Expand(context.Background(), item, quantity)
	if err != nil {
		return nil, err
	}
	return res.Materials, nil
}

func (e *Engine) expand(ctx context.Context, item string, quantity float64) (*Result, error) {
	if item == "" || !(quantity > 0) || math.IsInf(quantity, 1) {
		return &Result{Materials: Materials{}}, nil
	}

	log := logger.FromContext(ctx)
	s := e.newSession(ctx)

	raw, err := s.visit(item, quantity)
	metrics.RecordExpansionSteps(s.steps)
	if err != nil {
		log.Debug("Expansion failed", "item", item, "quantity", quantity, "steps", s.steps, "error", err)
		return nil, err
	}

	if s.limitHit {
		limitErr := &StepLimitError{Limit: e.opts.MaxSteps, Partial: true}
		s.warn(limitErr.Error())
		log.Warn("Expansion step limit reached, returning partial result", "item", item, "limit", e.opts.MaxSteps)
	}

	materials, err := raw.finalize()
	if err != nil {
		log.Debug("Expansion total out of range", "item", item, "quantity", quantity, "error", err)
		return nil, err
	}

	log.Debug("Expansion complete", "item", item, "quantity", quantity, "steps", s.steps, "materials", len(materials))
	return &Result{
		Materials: materials,
		Warnings:  s.warnings,
		Steps:     s.steps,
		Partial:   s.limitHit,
	}, nil
}

type memoKey struct {
	item     string
	quantity float64
}

// memoEntry is a finished subtree together with the steps it cost below its
// root, so a hit is charged exactly what recomputing it would cost.
type memoEntry struct {
	sum   totals
	steps int
}

// session is the state of one top-level expansion
type session struct {
	ctx      context.Context
	catalog  Catalog
	opts     Options
	memo     *lru.Cache[memoKey, memoEntry]
	path     []string
	onPath   map[string]bool
	steps    int
	limitHit bool
	warnings []string
	warned   map[string]bool
}

func (e *Engine) newSession(ctx context.Context) *session {
	s := &session{
		ctx:     ctx,
		catalog: e.catalog,
		opts:    e.opts,
		onPath:  make(map[string]bool),
		warned:  make(map[string]bool),
	}
	if e.opts.MemoSize > 0 {
		memo, err := lru.New[memoKey, memoEntry](e.opts.MemoSize)
		if err != nil {
			logger.FromContext(ctx).Warn("Memo disabled", "size", e.opts.MemoSize, "error", err)
		}
		s.memo = memo
	}
	return s
}

// step counts a node visit. It returns false once a partial-mode limit has been
// hit, meaning the caller should contribute nothing further.
func (s *session) step() (bool, error) {
	if err := s.ctx.Err(); err != nil {
		return false, err
	}
	if s.limitHit {
		return false, nil
	}
	s.steps++
	if s.steps > s.opts.MaxSteps {
		if !s.opts.AllowPartialOnStepLimit {
			return false, &StepLimitError{Limit: s.opts.MaxSteps}
		}
		s.limitHit = true
		return false, nil
	}
	return true, nil
}

func (s *session) visit(item string, quantity float64) (totals, error) {
	ok, err := s.step()
	if err != nil || !ok {
		return nil, err
	}

	if s.catalog.IsRaw(item) {
		return totals{item: quantity}, nil
	}

	recipe, found := s.catalog.Recipe(item)
	if !found {
		return s.unknown(item, quantity)
	}

	if s.onPath[item] {
		cycle := make([]string, len(s.path), len(s.path)+1)
		copy(cycle, s.path)
		return nil, &CycleError{Path: append(cycle, item)}
	}

	key := memoKey{item: item, quantity: quantity}
	if s.memo != nil {
		// A hit that would cross the limit is recomputed so the limit trips at
		// the same node, with the same partial totals, as without the memo.
		if cached, hit := s.memo.Get(key); hit && s.steps+cached.steps <= s.opts.MaxSteps {
			s.steps += cached.steps
			return cached.sum, nil
		}
	}
	start := s.steps

	s.push(item)
	defer s.pop(item)

	craftCount := quantity / recipe.OutputQty
	sum := make(totals)
	for _, ingredient := range sortedIngredients(recipe.Inputs) {
		sub, err := s.visit(ingredient, recipe.Inputs[ingredient]*craftCount)
		if err != nil {
			return nil, err
		}
		sum.add(sub)
	}

	// A subtree cut short by the step limit is incomplete and must not be reused.
	if s.memo != nil && !s.limitHit {
		s.memo.Add(key, memoEntry{sum: sum, steps: s.steps - start})
	}
	return sum, nil
}

func (s *session) unknown(item string, quantity float64) (totals, error) {
	if s.opts.UnknownItems == UnknownAsError {
		path := make([]string, len(s.path), len(s.path)+1)
		copy(path, s.path)
		return nil, &UnknownItemError{Item: item, Path: append(path, item)}
	}

	if !s.warned[item] {
		s.warned[item] = true
		metrics.UnknownItemsTotal.Inc()
		logger.FromContext(s.ctx).Warn("Unknown item treated as raw material", "item", item)
		s.warn(fmt.Sprintf("'%s' is not a known recipe or raw material; treated as raw", item))
	}
	return totals{item: quantity}, nil
}

func (s *session) push(item string) {
	s.path = append(s.path, item)
	s.onPath[item] = true
}

func (s *session) pop(item string) {
	s.path = s.path[:len(s.path)-1]
	delete(s.onPath, item)
}

func (s *session) warn(msg string) {
	s.warnings = append(s.warnings, msg)
}

// sortedIngredients fixes the visiting order so step counting and warnings are
// reproducible; the totals themselves do not depend on it.
func sortedIngredients(inputs map[string]float64) []string {
	names := make([]string, 0, len(inputs))
	for name := range inputs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func outcome(err error) string {
	var (
		cycleErr   *CycleError
		unknownErr *UnknownItemError
		limitErr   *StepLimitError
	)
	switch {
	case errors.As(err, &cycleErr):
		return metrics.OutcomeCycle
	case errors.As(err, &unknownErr):
		return metrics.OutcomeUnknown
	case errors.As(err, &limitErr):
		return metrics.OutcomeStepLimit
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeCancelled
	default:
		return metrics.OutcomeError
	}
}
