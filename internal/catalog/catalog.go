// Package catalog holds the read-only recipe table and raw-material set the
// calculator expands against.
//
// A Catalog is built once at start-up and never mutated afterwards, so it can be
// shared between goroutines without locking.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/osse101/CraftCalc_Go/internal/domain"
)

// Catalog is an immutable recipe table plus raw-material set
type Catalog struct {
	recipes  map[string]domain.Recipe
	raw      map[string]struct{}
	names    []string
	rawNames []string
}

// New builds a catalog from recipe definitions and raw material names.
// Inputs are copied; a zero OutputQty becomes domain.DefaultOutputQty.
func New(recipes map[string]domain.Recipe, rawMaterials []string) *Catalog {
	c := &Catalog{
		recipes: make(map[string]domain.Recipe, len(recipes)),
		raw:     make(map[string]struct{}, len(rawMaterials)),
	}

	for name, r := range recipes {
		inputs := make(map[string]float64, len(r.Inputs))
		for ing, qty := range r.Inputs {
			inputs[ing] = qty
		}
		if r.OutputQty == 0 {
			r.OutputQty = domain.DefaultOutputQty
		}
		r.Name = name
		r.Inputs = inputs
		c.recipes[name] = r
		c.names = append(c.names, name)
	}

	for _, name := range rawMaterials {
		if _, dup := c.raw[name]; dup {
			continue
		}
		c.raw[name] = struct{}{}
		c.rawNames = append(c.rawNames, name)
	}

	sort.Strings(c.names)
	sort.Strings(c.rawNames)
	return c
}

// IsRaw reports whether name is a designated raw material
func (c *Catalog) IsRaw(name string) bool {
	_, ok := c.raw[name]
	return ok
}

// Recipe returns the recipe for name, if any. Raw classification is not
// considered here; callers that need the expansion priority check IsRaw first.
func (c *Catalog) Recipe(name string) (domain.Recipe, bool) {
	r, ok := c.recipes[name]
	return r, ok
}

// Known reports whether name is either a raw material or has a recipe
func (c *Catalog) Known(name string) bool {
	if c.IsRaw(name) {
		return true
	}
	_, ok := c.recipes[name]
	return ok
}

// RecipeCount returns the number of recipes in the catalog
func (c *Catalog) RecipeCount() int {
	return len(c.recipes)
}

// RawMaterials returns the raw material names sorted lexicographically
func (c *Catalog) RawMaterials() []string {
	out := make([]string, len(c.rawNames))
	copy(out, c.rawNames)
	return out
}

// Items returns every craftable item sorted by name
func (c *Catalog) Items() []domain.ItemSummary {
	items := make([]domain.ItemSummary, 0, len(c.names))
	for _, name := range c.names {
		items = append(items, c.summary(name))
	}
	return items
}

// Search returns craftable items whose name contains query, ignoring case.
// An empty query matches everything. limit <= 0 means no limit.
func (c *Catalog) Search(query string, limit int) []domain.ItemSummary {
	// Casers keep internal state and must not be shared across goroutines.
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(query))

	var items []domain.ItemSummary
	for _, name := range c.names {
		if needle != "" && !strings.Contains(fold.String(name), needle) {
			continue
		}
		items = append(items, c.summary(name))
		if limit > 0 && len(items) >= limit {
			break
		}
	}
	return items
}

func (c *Catalog) summary(name string) domain.ItemSummary {
	r := c.recipes[name]
	return domain.ItemSummary{
		Name:        name,
		Description: r.Description,
		ImagePath:   r.ImagePath,
	}
}

// CheckHealth fails when the catalog holds nothing to calculate
func (c *Catalog) CheckHealth(ctx context.Context) error {
	if len(c.recipes) == 0 && len(c.raw) == 0 {
		return fmt.Errorf("%w: catalog is empty", domain.ErrInvalidCatalog)
	}
	return nil
}
