// Package filter provides admission filters and the chain that combines
// them. A chain admits an item only when every registered filter does.
package filter

import "github.com/mesh-intelligence/stockroom/pkg/types"

// Filter names.
const (
	NameMaxSpan        = "max-span"
	NameMinFlexibility = "min-flexibility"
)

// MaxSpan rejects Oversized items whose span exceeds Cutoff.
type MaxSpan struct {
	Cutoff int
}

func (MaxSpan) Name() string { return NameMaxSpan }

// Admit passes every non-Oversized item.
func (f MaxSpan) Admit(item types.Item, _ types.GridView) bool {
	q, ok := item.Constraint().(types.Oversized)
	if !ok {
		return true
	}
	return q.Span <= f.Cutoff
}

// MinFlexibility rejects Fragile items whose max row is below Cutoff, i.e.
// items that would leave too few eligible rows.
type MinFlexibility struct {
	Cutoff int
}

func (MinFlexibility) Name() string { return NameMinFlexibility }

// Admit passes every non-Fragile item.
func (f MinFlexibility) Admit(item types.Item, _ types.GridView) bool {
	q, ok := item.Constraint().(types.Fragile)
	if !ok {
		return true
	}
	return q.MaxRow >= f.Cutoff
}

// Chain is an ordered set of filters combined with logical AND.
type Chain struct {
	filters []types.Filter
}

// NewChain returns a chain holding the given filters. Nil filters are
// skipped.
func NewChain(filters ...types.Filter) *Chain {
	c := &Chain{}
	for _, f := range filters {
		c.Register(f)
	}
	return c
}

// FromConfig builds the chain described by cfg. A zero cutoff leaves the
// corresponding filter out.
func FromConfig(cfg types.FilterConfig) *Chain {
	c := NewChain()
	if cfg.MaxSpan > 0 {
		c.Register(MaxSpan{Cutoff: cfg.MaxSpan})
	}
	if cfg.MinFlexibility > 0 {
		c.Register(MinFlexibility{Cutoff: cfg.MinFlexibility})
	}
	return c
}

// Register appends a filter to the chain.
func (c *Chain) Register(f types.Filter) {
	if f == nil {
		return
	}
	c.filters = append(c.filters, f)
}

// Admit reports whether every filter admits the item. On rejection it also
// returns the name of the first rejecting filter. An empty chain admits
// everything.
func (c *Chain) Admit(item types.Item, grid types.GridView) (bool, string) {
	if c == nil {
		return true, ""
	}
	for _, f := range c.filters {
		if !f.Admit(item, grid) {
			return false, f.Name()
		}
	}
	return true, ""
}

// Names lists the registered filters in order.
func (c *Chain) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.filters))
	for _, f := range c.filters {
		out = append(out, f.Name())
	}
	return out
}

// Len returns the number of registered filters.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.filters)
}

// Filters returns a copy of the registered filters in order.
func (c *Chain) Filters() []types.Filter {
	if c == nil {
		return nil
	}
	return append([]types.Filter(nil), c.filters...)
}
