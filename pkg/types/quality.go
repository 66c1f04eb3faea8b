package types

import "fmt"

// QualityKind names a Quality variant.
type QualityKind string

// Quality kinds.
const (
	KindNormal    QualityKind = "normal"
	KindFragile   QualityKind = "fragile"
	KindOversized QualityKind = "oversized"
)

// Quality is the placement constraint attached to an item. The set of
// variants is closed: Normal, Fragile and Oversized.
type Quality interface {
	Kind() QualityKind
	// Cells is the number of coordinates an item of this quality claims.
	Cells() int
	String() string

	sealed()
}

// Normal has no placement constraint and occupies one coordinate.
type Normal struct{}

func (Normal) Kind() QualityKind { return KindNormal }
func (Normal) Cells() int        { return 1 }
func (Normal) String() string    { return "Normal" }
func (Normal) sealed()           {}

// Fragile occupies one coordinate whose row is strictly below MaxRow and
// expires on Expiration.
type Fragile struct {
	Expiration Date
	MaxRow     int
}

func (Fragile) Kind() QualityKind { return KindFragile }
func (Fragile) Cells() int        { return 1 }
func (f Fragile) String() string {
	return fmt.Sprintf("Fragile (Expiration: %s, Row: %d)", f.Expiration, f.MaxRow)
}
func (Fragile) sealed() {}

// Oversized occupies Span contiguous zones on one row and shelf, starting at
// the anchor coordinate.
type Oversized struct {
	Span int
}

func (Oversized) Kind() QualityKind { return KindOversized }
func (o Oversized) Cells() int      { return o.Span }
func (o Oversized) String() string {
	return fmt.Sprintf("Oversized (Continuous Zones: %d)", o.Span)
}
func (Oversized) sealed() {}
