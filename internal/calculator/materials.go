package calculator

import (
	"fmt"
	"math"
	"sort"

	"github.com/osse101/CraftCalc_Go/internal/domain"
)

// RoundingEpsilon is added before rounding so totals that are whole numbers
// mathematically but land just below them in floating point still round up.
const RoundingEpsilon = 1e-5

// Materials is a bill of materials: raw material name to whole units required
type Materials map[string]int

// Add merges other into m by pointwise addition
func (m Materials) Add(other Materials) {
	for name, qty := range other {
		m[name] += qty
	}
}

// Merge returns the pointwise sum of a and b without modifying either
func Merge(a, b Materials) Materials {
	out := make(Materials, len(a)+len(b))
	out.Add(a)
	out.Add(b)
	return out
}

// Sorted returns the entries ordered by name (byte-wise, so case-sensitive)
func (m Materials) Sorted() []domain.MaterialAmount {
	out := make([]domain.MaterialAmount, 0, len(m))
	for name, qty := range m {
		out = append(out, domain.MaterialAmount{Name: name, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// totals accumulates unrounded quantities during one traversal
type totals map[string]float64

func (t totals) add(other totals) {
	for name, qty := range other {
		t[name] += qty
	}
}

// maxTotal is the first rounded value that no longer fits in an int
const maxTotal = float64(math.MaxInt)

// addChecked merges other into m, failing instead of wrapping past math.MaxInt.
// m is left untouched on error.
func (m Materials) addChecked(other Materials) error {
	for name, qty := range other {
		if m[name] > math.MaxInt-qty {
			return fmt.Errorf("%w: '%s'", domain.ErrQuantityOverflow, name)
		}
	}
	m.Add(other)
	return nil
}

// finalize rounds every accumulated quantity once and drops zero entries
func (t totals) finalize() (Materials, error) {
	out := make(Materials, len(t))
	for name, qty := range t {
		r := math.Round(qty + RoundingEpsilon)
		if !(r < maxTotal) {
			return nil, fmt.Errorf("%w: '%s' needs %g", domain.ErrQuantityOverflow, name, qty)
		}
		n := int(r)
		if n == 0 {
			continue
		}
		out[name] = n
	}
	return out, nil
}
