package types

import (
	"fmt"
	"iter"
)

// GridSize is the edge length of the storage cube. Rows, shelves and zones
// all range over [0, GridSize).
const GridSize = 10

// CellCount is the number of coordinates in the storage cube.
const CellCount = GridSize * GridSize * GridSize

// Coordinate identifies one storage slot. Two coordinates are equal iff all
// three components match; occupancy is grid state, never part of the key.
type Coordinate struct {
	Row   int `json:"row"`
	Shelf int `json:"shelf"`
	Zone  int `json:"zone"`
}

// InBounds reports whether every component lies in [0, GridSize).
func (c Coordinate) InBounds() bool {
	return inRange(c.Row) && inRange(c.Shelf) && inRange(c.Zone)
}

func inRange(v int) bool { return v >= 0 && v < GridSize }

// Index returns the row-major position of c in the cube, or -1 when c is out
// of bounds.
func (c Coordinate) Index() int {
	if !c.InBounds() {
		return -1
	}
	return (c.Row*GridSize+c.Shelf)*GridSize + c.Zone
}

// CoordinateAt is the inverse of Index.
func CoordinateAt(index int) Coordinate {
	return Coordinate{
		Row:   index / (GridSize * GridSize),
		Shelf: (index / GridSize) % GridSize,
		Zone:  index % GridSize,
	}
}

// Less orders coordinates by (row, shelf, zone).
func (c Coordinate) Less(o Coordinate) bool {
	return c.Index() < o.Index()
}

// Run returns the n coordinates starting at c and advancing along the zone
// axis on the same row and shelf. The result may extend past the grid edge;
// callers check InBounds.
func (c Coordinate) Run(n int) []Coordinate {
	if n <= 0 {
		return nil
	}
	out := make([]Coordinate, n)
	for i := range n {
		out[i] = Coordinate{Row: c.Row, Shelf: c.Shelf, Zone: c.Zone + i}
	}
	return out
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.Row, c.Shelf, c.Zone)
}

// Coordinates yields every coordinate of the cube in ascending
// (row, shelf, zone) order: row outermost, zone innermost.
func Coordinates() iter.Seq[Coordinate] {
	return func(yield func(Coordinate) bool) {
		for row := range GridSize {
			for shelf := range GridSize {
				for zone := range GridSize {
					if !yield(Coordinate{Row: row, Shelf: shelf, Zone: zone}) {
						return
					}
				}
			}
		}
	}
}
