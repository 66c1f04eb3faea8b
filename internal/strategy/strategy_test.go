package strategy

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stockroom/internal/grid"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func occupy(g *grid.Grid, cs ...types.Coordinate) {
	for _, c := range cs {
		g.Set(c, types.Cell{Occupied: true})
	}
}

func TestNew(t *testing.T) {
	s, err := New(types.StrategyRowMajor)
	require.NoError(t, err)
	assert.Equal(t, types.StrategyRowMajor, s.Name())

	_, err = New("random")
	assert.True(t, errors.Is(err, types.ErrStrategyUnknown))
	assert.Contains(t, err.Error(), types.StrategyRowMajor, "error lists the registered strategies")
	assert.Equal(t, []string{types.StrategyRowMajor}, Names())
}

func TestRowMajor_EmptyGridAnchorsAtOrigin(t *testing.T) {
	g := grid.New()
	items := []types.Item{
		{ID: 1, Quality: types.Normal{}},
		{ID: 2, Quality: types.Fragile{MaxRow: 1}},
		{ID: 3, Quality: types.Oversized{Span: 3}},
		{ID: 4},
	}
	for _, it := range items {
		c, ok := RowMajor{}.Allocate(it, g)
		require.True(t, ok, "item %d", it.ID)
		assert.Equal(t, types.Coordinate{}, c, "item %d", it.ID)
	}
}

func TestRowMajor_NextNormalAfterOrigin(t *testing.T) {
	g := grid.New()
	occupy(g, types.Coordinate{})
	c, ok := RowMajor{}.Allocate(types.Item{ID: 1, Quality: types.Normal{}}, g)
	require.True(t, ok)
	assert.Equal(t, types.Coordinate{Row: 0, Shelf: 0, Zone: 1}, c)
}

func TestRowMajor_OversizedChecksWholeSpan(t *testing.T) {
	g := grid.New()
	// (0,0,0) free, (0,0,1) taken: a span of 3 starting at zone 0 must be
	// skipped even though its first cell is free.
	occupy(g, types.Coordinate{Zone: 1})
	c, ok := RowMajor{}.Allocate(types.Item{ID: 1, Quality: types.Oversized{Span: 3}}, g)
	require.True(t, ok)
	assert.Equal(t, types.Coordinate{Row: 0, Shelf: 0, Zone: 2}, c)
}

func TestRowMajor_OversizedRespectsGridEdge(t *testing.T) {
	g := grid.New()
	// Leave only zones 8 and 9 free on the first shelf.
	for z := range 8 {
		occupy(g, types.Coordinate{Zone: z})
	}
	c, ok := RowMajor{}.Allocate(types.Item{ID: 1, Quality: types.Oversized{Span: 3}}, g)
	require.True(t, ok)
	assert.Equal(t, types.Coordinate{Row: 0, Shelf: 1, Zone: 0}, c)

	c, ok = RowMajor{}.Allocate(types.Item{ID: 2, Quality: types.Oversized{Span: 2}}, g)
	require.True(t, ok)
	assert.Equal(t, types.Coordinate{Row: 0, Shelf: 0, Zone: 8}, c)
}

func TestRowMajor_OversizedTooWide(t *testing.T) {
	g := grid.New()
	_, ok := RowMajor{}.Allocate(types.Item{ID: 1, Quality: types.Oversized{Span: types.GridSize + 1}}, g)
	assert.False(t, ok)

	c, ok := RowMajor{}.Allocate(types.Item{ID: 2, Quality: types.Oversized{Span: types.GridSize}}, g)
	require.True(t, ok)
	assert.Equal(t, types.Coordinate{}, c)

	_, ok = RowMajor{}.Allocate(types.Item{ID: 3, Quality: types.Oversized{Span: 0}}, g)
	assert.False(t, ok, "span 0 can never be placed")
}

func TestFits_SpanNearIntLimit(t *testing.T) {
	g := grid.New()
	item := types.Item{ID: 1, Quality: types.Oversized{Span: math.MaxInt}}
	for _, c := range []types.Coordinate{{}, {Zone: 1}, {Zone: types.GridSize - 1}} {
		assert.False(t, Fits(item, c, g), "anchor %s", c)
	}
	_, ok := RowMajor{}.Allocate(item, g)
	assert.False(t, ok)
}

func TestFits_AnchorOutOfBounds(t *testing.T) {
	g := grid.New()
	assert.False(t, Fits(types.Item{Quality: types.Normal{}}, types.Coordinate{Zone: -1}, g))
	assert.False(t, Fits(types.Item{Quality: types.Oversized{Span: 2}}, types.Coordinate{Zone: math.MinInt}, g))
	assert.False(t, Fits(types.Item{Quality: types.Normal{}}, types.Coordinate{Row: types.GridSize}, g))
}

func TestRowMajor_FragileRowLimit(t *testing.T) {
	g := grid.New()
	// Fill row 0 completely.
	for c := range types.Coordinates() {
		if c.Row > 0 {
			break
		}
		occupy(g, c)
	}
	_, ok := RowMajor{}.Allocate(types.Item{ID: 1, Quality: types.Fragile{MaxRow: 1}}, g)
	assert.False(t, ok, "max row 1 only allows row 0")

	c, ok := RowMajor{}.Allocate(types.Item{ID: 2, Quality: types.Fragile{MaxRow: 2}}, g)
	require.True(t, ok)
	assert.Equal(t, types.Coordinate{Row: 1, Shelf: 0, Zone: 0}, c)

	_, ok = RowMajor{}.Allocate(types.Item{ID: 3, Quality: types.Fragile{MaxRow: 0}}, g)
	assert.False(t, ok)
}

func TestRowMajor_FullGrid(t *testing.T) {
	g := grid.New()
	for c := range types.Coordinates() {
		occupy(g, c)
	}
	_, ok := RowMajor{}.Allocate(types.Item{ID: 1, Quality: types.Normal{}}, g)
	assert.False(t, ok)
}

func TestRowMajor_DoesNotMutateGrid(t *testing.T) {
	g := grid.New()
	occupy(g, types.Coordinate{Zone: 1})
	before := g.Occupied()
	_, _ = RowMajor{}.Allocate(types.Item{ID: 1, Quality: types.Oversized{Span: 4}}, g)
	assert.Equal(t, before, g.Occupied())
}

func TestClaim(t *testing.T) {
	anchor := types.Coordinate{Row: 1, Shelf: 1, Zone: 5}
	assert.Equal(t, []types.Coordinate{anchor}, Claim(types.Item{Quality: types.Normal{}}, anchor))
	assert.Len(t, Claim(types.Item{Quality: types.Oversized{Span: 3}}, anchor), 3)
}
