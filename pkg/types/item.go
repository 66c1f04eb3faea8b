package types

import (
	"encoding/json"
	"fmt"
)

// Item is an inventory record. Items are values: the engine stores copies
// and never mutates them. Updating an item means Remove then Add.
type Item struct {
	ID       uint32  // Unique among currently placed items.
	Name     string  // Display and sort key.
	Quantity uint32  // Units held in the slot.
	Quality  Quality // Placement constraint; nil is treated as Normal.
}

// Constraint returns the item's quality, substituting Normal for nil.
func (it Item) Constraint() Quality {
	if it.Quality == nil {
		return Normal{}
	}
	return it.Quality
}

func (it Item) String() string {
	return fmt.Sprintf("%d - %s, quantity: %d, quality: %s", it.ID, it.Name, it.Quantity, it.Constraint())
}

// itemJSON is the wire shape of an Item; the quality variant is flattened
// into kind-specific optional fields.
type itemJSON struct {
	ID       uint32      `json:"id"`
	Name     string      `json:"name"`
	Quantity uint32      `json:"quantity"`
	Quality  QualityKind `json:"quality"`
	Expires  *Date       `json:"expires,omitempty"`
	MaxRow   *int        `json:"max_row,omitempty"`
	Span     *int        `json:"span,omitempty"`
}

// MarshalJSON encodes the item with its quality flattened.
func (it Item) MarshalJSON() ([]byte, error) {
	out := itemJSON{
		ID:       it.ID,
		Name:     it.Name,
		Quantity: it.Quantity,
		Quality:  it.Constraint().Kind(),
	}
	switch q := it.Constraint().(type) {
	case Fragile:
		exp, row := q.Expiration, q.MaxRow
		out.Expires, out.MaxRow = &exp, &row
	case Oversized:
		span := q.Span
		out.Span = &span
	}
	return json.Marshal(out)
}
