package types

// Cell is the grid state of one coordinate. Resident is set only at an
// item's anchor; the other cells of a multi-cell claim are occupied with no
// resident.
type Cell struct {
	Occupied bool
	Resident *Item
}

// GridView is read-only access to the storage grid. Filters and strategies
// receive a GridView and must not mutate grid state.
type GridView interface {
	// Get returns the cell at c. Out-of-bounds coordinates yield the zero
	// Cell.
	Get(c Coordinate) Cell
}

// Filter is a named admission predicate. An item is admitted only when every
// filter in the chain returns true.
type Filter interface {
	Name() string
	Admit(item Item, grid GridView) bool
}

// Strategy searches the grid for an anchor coordinate satisfying the item's
// quality and slot availability. Allocate is a pure function of grid state;
// it returns false when no coordinate is valid.
type Strategy interface {
	Name() string
	Allocate(item Item, grid GridView) (Coordinate, bool)
}

// Warehouse is the typed operation set of an allocation engine.
type Warehouse interface {
	// Add places the item. Returns a *PlacementError wrapping
	// ErrBlockedByFilter, ErrFailedAllocation, ErrFailedAdd, ErrDuplicateID or
	// ErrDuplicateName on failure; state is unchanged on every failure path.
	Add(item Item) error

	// Remove releases every coordinate held by the item with the given id.
	// Returns a *RemoveError wrapping ErrFailedRemove if the id is absent.
	Remove(id uint32) error

	// Alphabetical returns all placed items ordered by case-insensitive name.
	Alphabetical() []Item

	// FindByID returns the placed item with the given id.
	FindByID(id uint32) (Item, bool)

	// FindByName returns the placed item indexed under name.
	FindByName(name string) (Item, bool)

	// PositionsOf returns the coordinates held by the item, anchor first.
	PositionsOf(id uint32) ([]Coordinate, bool)

	// Expired returns every Fragile item expiring on or before ref, or nil
	// when there is none.
	Expired(ref Date) []Item
}

// Placement describes where one item sits.
type Placement struct {
	Item      Item         `json:"item"`
	Anchor    Coordinate   `json:"anchor"`
	Positions []Coordinate `json:"positions"`
}

// Stats summarizes grid usage.
type Stats struct {
	Items         int `json:"items"`
	OccupiedCells int `json:"occupied_cells"`
	FreeCells     int `json:"free_cells"`
}
