package types

import "time"

// EventKind names a state change recorded by the engine.
type EventKind string

// Event kinds.
const (
	EventPlaced  EventKind = "placed"
	EventRemoved EventKind = "removed"
)

// Event describes one successful Add or Remove. Positions lists the
// coordinates claimed (placed) or released (removed), anchor first.
type Event struct {
	Kind      EventKind
	Item      Item
	Positions []Coordinate
	At        time.Time
}
