// Package grid implements the fixed storage cube. Every coordinate in
// [0, GridSize)³ has exactly one cell from construction on; only cell values
// change.
package grid

import (
	"fmt"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Grid stores one Cell per coordinate, indexed by Coordinate.Index. Grid is
// not safe for concurrent use; the placement engine serializes access.
type Grid struct {
	cells    []types.Cell
	occupied int
}

// New returns a grid with every cell unoccupied and empty.
func New() *Grid {
	return &Grid{cells: make([]types.Cell, types.CellCount)}
}

// Get returns the cell at c, or the zero Cell when c is out of bounds.
func (g *Grid) Get(c types.Coordinate) types.Cell {
	i := c.Index()
	if i < 0 {
		return types.Cell{}
	}
	return g.cells[i]
}

// Set replaces the cell at c. It panics when c is out of bounds: the key set
// is fixed and callers only write coordinates a strategy returned.
func (g *Grid) Set(c types.Coordinate, cell types.Cell) {
	i := c.Index()
	if i < 0 {
		panic(fmt.Sprintf("grid: coordinate %s out of bounds", c))
	}
	switch prev := g.cells[i].Occupied; {
	case !prev && cell.Occupied:
		g.occupied++
	case prev && !cell.Occupied:
		g.occupied--
	}
	g.cells[i] = cell
}

// Clear resets the cell at c to unoccupied with no resident.
func (g *Grid) Clear(c types.Coordinate) {
	g.Set(c, types.Cell{})
}

// Free reports whether c is in bounds and unoccupied.
func (g *Grid) Free(c types.Coordinate) bool {
	return c.InBounds() && !g.Get(c).Occupied
}

// Occupied returns the number of occupied cells.
func (g *Grid) Occupied() int { return g.occupied }

// Len returns the number of cells, which is always types.CellCount.
func (g *Grid) Len() int { return len(g.cells) }
