// Package strategy holds the allocation strategies that search the grid for
// an anchor coordinate. Strategies are looked up by name so the engine can
// be configured without knowing concrete types.
package strategy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// factories maps a strategy name to its constructor.
var factories = map[string]func() types.Strategy{
	types.StrategyRowMajor: func() types.Strategy { return RowMajor{} },
}

// Register adds a strategy constructor under name, replacing any previous
// registration. It is not safe for concurrent use and belongs in init
// functions or test setup.
func Register(name string, f func() types.Strategy) {
	factories[name] = f
}

// New returns the strategy registered under name. Returns an error wrapping
// types.ErrStrategyUnknown for unregistered names.
func New(name string) (types.Strategy, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %s)", types.ErrStrategyUnknown, name, strings.Join(Names(), ", "))
	}
	return f(), nil
}

// Names lists the registered strategy names in sorted order.
func Names() []string {
	out := make([]string, 0, len(factories))
	for name := range factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// RowMajor is the reference strategy: a linear scan in ascending
// (row, shelf, zone) order returning the first valid coordinate.
type RowMajor struct{}

func (RowMajor) Name() string { return types.StrategyRowMajor }

// Allocate returns the first unoccupied coordinate, in scan order, at which
// the item's quality constraint holds.
func (s RowMajor) Allocate(item types.Item, grid types.GridView) (types.Coordinate, bool) {
	for c := range types.Coordinates() {
		if grid.Get(c).Occupied {
			continue
		}
		if Fits(item, c, grid) {
			return c, true
		}
	}
	return types.Coordinate{}, false
}

// Fits reports whether item can be anchored at c given the current grid:
// every coordinate the item would claim must be in bounds and unoccupied,
// and a Fragile item additionally needs c.Row below its max row.
func Fits(item types.Item, c types.Coordinate, grid types.GridView) bool {
	if !c.InBounds() {
		return false
	}
	switch q := item.Constraint().(type) {
	case types.Fragile:
		if c.Row >= q.MaxRow {
			return false
		}
	case types.Oversized:
		if q.Span < 1 || q.Span > types.GridSize-c.Zone {
			return false
		}
	}
	for _, cell := range Claim(item, c) {
		if !cell.InBounds() || grid.Get(cell).Occupied {
			return false
		}
	}
	return true
}

// Claim returns the coordinates an item anchored at c occupies, anchor
// first.
func Claim(item types.Item, c types.Coordinate) []types.Coordinate {
	return c.Run(item.Constraint().Cells())
}
