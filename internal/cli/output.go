package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// printer renders results as text or, in JSON mode, as one JSON document
// per result.
type printer struct {
	w        io.Writer
	jsonMode bool
}

func (p printer) json(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(p.w, string(data))
	return err
}

func (p printer) message(msg string) error {
	if p.jsonMode {
		return p.json(map[string]string{"message": msg})
	}
	_, err := fmt.Fprintln(p.w, msg)
	return err
}

func (p printer) failure(err error) error {
	if p.jsonMode {
		return p.json(map[string]string{"error": err.Error()})
	}
	_, werr := fmt.Fprintln(p.w, "error:", err)
	return werr
}

func (p printer) item(it types.Item) error {
	if p.jsonMode {
		return p.json(it)
	}
	_, err := fmt.Fprintln(p.w, it)
	return err
}

func (p printer) items(items []types.Item, empty string) error {
	if p.jsonMode {
		if items == nil {
			items = []types.Item{}
		}
		return p.json(items)
	}
	if len(items) == 0 {
		return p.message(empty)
	}
	for _, it := range items {
		if _, err := fmt.Fprintln(p.w, it); err != nil {
			return err
		}
	}
	return nil
}

func (p printer) positions(pos []types.Coordinate) error {
	if p.jsonMode {
		return p.json(pos)
	}
	for _, c := range pos {
		if _, err := fmt.Fprintln(p.w, c); err != nil {
			return err
		}
	}
	return nil
}

// layout prints one "(row, shelf, zone) -> item" line per placement.
func (p printer) layout(layout []types.Placement) error {
	if p.jsonMode {
		return p.json(layout)
	}
	if len(layout) == 0 {
		return p.message("The stockroom is empty")
	}
	for _, pl := range layout {
		if _, err := fmt.Fprintf(p.w, "%s -> %s\n", pl.Anchor, pl.Item); err != nil {
			return err
		}
	}
	return nil
}

func (p printer) stats(s types.Stats) error {
	if p.jsonMode {
		return p.json(s)
	}
	_, err := fmt.Fprintf(p.w, "items: %d, occupied cells: %d, free cells: %d\n", s.Items, s.OccupiedCells, s.FreeCells)
	return err
}
