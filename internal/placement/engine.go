// Package placement implements the allocation engine: it owns the grid and
// the item indices, runs the admission filters and the allocation strategy,
// and keeps grid and indices consistent across Add and Remove.
package placement

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mesh-intelligence/stockroom/internal/filter"
	"github.com/mesh-intelligence/stockroom/internal/grid"
	"github.com/mesh-intelligence/stockroom/internal/strategy"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Operation names passed to a Recorder.
const (
	OpAdd    = "add"
	OpRemove = "remove"
)

// Engine is the allocation engine. All methods are safe for concurrent use;
// mutations are serialized by a single lock.
type Engine struct {
	mu sync.RWMutex

	grid      *grid.Grid
	byID      map[uint32]types.Item
	byName    map[string]uint32
	positions map[uint32][]types.Coordinate

	strategy types.Strategy
	filters  *filter.Chain
	names    types.NamePolicy

	logger   *slog.Logger
	sink     EventSink
	recorder Recorder
	now      func() time.Time
}

var _ types.Warehouse = (*Engine)(nil)

// New returns an engine with an empty grid. Without options it uses the
// row-major strategy, no filters and unique names.
func New(opts ...Option) *Engine {
	e := &Engine{
		grid:      grid.New(),
		byID:      make(map[uint32]types.Item),
		byName:    make(map[string]uint32),
		positions: make(map[uint32][]types.Coordinate),
		strategy:  strategy.RowMajor{},
		filters:   filter.NewChain(),
		names:     types.NamesUnique,
		logger:    slog.New(slog.DiscardHandler),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Add places item on the grid. Checks run in order: duplicate id, duplicate
// name (unique policy only), filter chain, strategy. On any failure the
// grid and indices are left unchanged.
func (e *Engine) Add(item types.Item) error {
	e.mu.Lock()
	ev, err := e.add(item)
	if err == nil {
		e.emit(ev)
	}
	stats := e.statsLocked()
	e.mu.Unlock()

	e.observe(OpAdd, err, stats)
	return err
}

func (e *Engine) add(item types.Item) (types.Event, error) {
	if _, dup := e.byID[item.ID]; dup {
		return types.Event{}, e.reject(item, "", types.ErrDuplicateID)
	}
	if e.names == types.NamesUnique {
		if _, dup := e.byName[item.Name]; dup {
			return types.Event{}, e.reject(item, "", types.ErrDuplicateName)
		}
	}
	if ok, by := e.filters.Admit(item, e.grid); !ok {
		return types.Event{}, e.reject(item, by, types.ErrBlockedByFilter)
	}
	anchor, ok := e.strategy.Allocate(item, e.grid)
	if !ok {
		return types.Event{}, e.reject(item, "", types.ErrFailedAllocation)
	}
	// The anchor must fit whichever strategy produced it.
	if !strategy.Fits(item, anchor, e.grid) {
		return types.Event{}, e.reject(item, "", fmt.Errorf("%w: anchor %s not valid", types.ErrFailedAdd, anchor))
	}

	claim := strategy.Claim(item, anchor)
	resident := item
	for i, c := range claim {
		cell := types.Cell{Occupied: true}
		if i == 0 {
			cell.Resident = &resident
		}
		e.grid.Set(c, cell)
	}
	prevID, hadName := e.byName[item.Name]
	e.byID[item.ID] = item
	e.byName[item.Name] = item.ID
	e.positions[item.ID] = claim

	if err := e.checkPlaced(item, claim); err != nil {
		for _, c := range claim {
			e.grid.Clear(c)
		}
		delete(e.byID, item.ID)
		delete(e.positions, item.ID)
		if hadName {
			e.byName[item.Name] = prevID
		} else {
			delete(e.byName, item.Name)
		}
		return types.Event{}, e.reject(item, "", fmt.Errorf("%w: %v", types.ErrFailedAdd, err))
	}

	e.logger.Debug("item placed",
		"id", item.ID,
		"name", item.Name,
		"anchor", anchor.String(),
		"cells", len(claim))
	return types.Event{
		Kind:      types.EventPlaced,
		Item:      item,
		Positions: slices.Clone(claim),
		At:        e.now(),
	}, nil
}

// checkPlaced confirms a just-written placement is visible in the grid.
func (e *Engine) checkPlaced(item types.Item, claim []types.Coordinate) error {
	if len(claim) == 0 {
		return errors.New("empty claim")
	}
	anchor := e.grid.Get(claim[0])
	if anchor.Resident == nil || anchor.Resident.ID != item.ID {
		return fmt.Errorf("anchor %s does not hold item %d", claim[0], item.ID)
	}
	for _, c := range claim {
		if !e.grid.Get(c).Occupied {
			return fmt.Errorf("cell %s not occupied", c)
		}
	}
	return nil
}

func (e *Engine) reject(item types.Item, by string, err error) error {
	e.logger.Info("item rejected",
		"id", item.ID,
		"name", item.Name,
		"reason", err.Error(),
		"filter", by)
	return &types.PlacementError{Item: item, Filter: by, Err: err}
}

// Remove releases every coordinate held by the item with the given id and
// drops it from the indices.
func (e *Engine) Remove(id uint32) error {
	e.mu.Lock()
	ev, err := e.remove(id)
	if err == nil {
		e.emit(ev)
	}
	stats := e.statsLocked()
	e.mu.Unlock()

	e.observe(OpRemove, err, stats)
	return err
}

func (e *Engine) remove(id uint32) (types.Event, error) {
	item, ok := e.byID[id]
	if !ok {
		e.logger.Info("remove rejected", "id", id, "reason", types.ErrFailedRemove.Error())
		return types.Event{}, &types.RemoveError{ID: id, Err: types.ErrFailedRemove}
	}
	held := e.positions[id]
	for _, c := range held {
		e.grid.Clear(c)
	}
	delete(e.byID, id)
	delete(e.positions, id)
	if owner, ok := e.byName[item.Name]; ok && owner == id {
		delete(e.byName, item.Name)
	}

	e.logger.Debug("item removed", "id", id, "name", item.Name, "cells", len(held))
	return types.Event{
		Kind:      types.EventRemoved,
		Item:      item,
		Positions: held,
		At:        e.now(),
	}, nil
}

func (e *Engine) emit(ev types.Event) {
	if e.sink == nil {
		return
	}
	if err := e.sink.Record(ev); err != nil {
		e.logger.Warn("event sink failed", "id", ev.Item.ID, "kind", string(ev.Kind), "error", err)
	}
}

func (e *Engine) observe(op string, err error, stats types.Stats) {
	if e.recorder != nil {
		e.recorder.Observe(op, err, stats)
	}
}

// Alphabetical returns every placed item ordered by lower-cased name, ties
// broken by id.
func (e *Engine) Alphabetical() []types.Item {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]types.Item, 0, len(e.byID))
	for _, it := range e.byID {
		out = append(out, it)
	}
	slices.SortFunc(out, func(a, b types.Item) int {
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

func (e *Engine) FindByID(id uint32) (types.Item, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	it, ok := e.byID[id]
	return it, ok
}

// FindByName is exact and case-sensitive.
func (e *Engine) FindByName(name string) (types.Item, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	id, ok := e.byName[name]
	if !ok {
		return types.Item{}, false
	}
	it, ok := e.byID[id]
	return it, ok
}

// PositionsOf returns a copy of the coordinates held by the item, anchor
// first.
func (e *Engine) PositionsOf(id uint32) ([]types.Coordinate, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	pos, ok := e.positions[id]
	if !ok {
		return nil, false
	}
	return slices.Clone(pos), true
}

// Expired returns every Fragile item whose expiration is on or before ref,
// sorted by id. It returns nil when no item qualifies.
func (e *Engine) Expired(ref types.Date) []types.Item {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []types.Item
	for _, it := range e.byID {
		q, ok := it.Constraint().(types.Fragile)
		if ok && q.Expiration.OnOrBefore(ref) {
			out = append(out, it)
		}
	}
	slices.SortFunc(out, func(a, b types.Item) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Layout returns one placement per item, ordered by anchor in scan order.
func (e *Engine) Layout() []types.Placement {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]types.Placement, 0, len(e.byID))
	for id, it := range e.byID {
		pos := e.positions[id]
		out = append(out, types.Placement{Item: it, Anchor: pos[0], Positions: slices.Clone(pos)})
	}
	slices.SortFunc(out, func(a, b types.Placement) int {
		return cmp.Compare(a.Anchor.Index(), b.Anchor.Index())
	})
	return out
}

// Cell returns the grid cell at c.
func (e *Engine) Cell(c types.Coordinate) types.Cell {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid.Get(c)
}

func (e *Engine) Stats() types.Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.statsLocked()
}

func (e *Engine) statsLocked() types.Stats {
	occ := e.grid.Occupied()
	return types.Stats{
		Items:         len(e.byID),
		OccupiedCells: occ,
		FreeCells:     types.CellCount - occ,
	}
}

// StrategyName and FilterNames describe the engine configuration.
func (e *Engine) StrategyName() string { return e.strategy.Name() }

func (e *Engine) FilterNames() []string { return e.filters.Names() }

// Verify checks that grid and indices agree: every indexed item holds
// exactly its claimed cells with the resident at the anchor, no cell is
// claimed twice, and no cell is occupied without an owner.
func (e *Engine) Verify() error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	owner := make(map[int]uint32, e.grid.Occupied())
	for id, it := range e.byID {
		pos, ok := e.positions[id]
		if !ok || len(pos) == 0 {
			return fmt.Errorf("item %d has no positions", id)
		}
		if len(pos) != it.Constraint().Cells() {
			return fmt.Errorf("item %d holds %d cells, want %d", id, len(pos), it.Constraint().Cells())
		}
		for i, c := range pos {
			if prev, taken := owner[c.Index()]; taken {
				return fmt.Errorf("cell %s claimed by items %d and %d", c, prev, id)
			}
			owner[c.Index()] = id
			cell := e.grid.Get(c)
			if !cell.Occupied {
				return fmt.Errorf("cell %s of item %d not occupied", c, id)
			}
			if i == 0 && (cell.Resident == nil || cell.Resident.ID != id) {
				return fmt.Errorf("anchor %s does not hold item %d", c, id)
			}
		}
	}
	if len(e.positions) != len(e.byID) {
		return fmt.Errorf("position index has %d entries, item index %d", len(e.positions), len(e.byID))
	}
	if len(owner) != e.grid.Occupied() {
		return fmt.Errorf("%d cells occupied, %d owned", e.grid.Occupied(), len(owner))
	}
	for name, id := range e.byName {
		it, ok := e.byID[id]
		if !ok || it.Name != name {
			return fmt.Errorf("name %q points at missing item %d", name, id)
		}
	}
	return nil
}
