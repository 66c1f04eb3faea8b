package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// ErrUnknownCommand is returned by the shell for an unrecognized command.
var ErrUnknownCommand = errors.New("unknown command")

func parseID(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return uint32(n), nil
}

func parseUint32(field, s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	return uint32(n), nil
}

func parseInt(field, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	return n, nil
}

// buildQuality turns a quality keyword and its parameters into a Quality.
// expires and maxRow apply to fragile items, span to oversized ones.
func buildQuality(kind, expires string, maxRow, span int) (types.Quality, error) {
	switch types.QualityKind(strings.ToLower(strings.TrimSpace(kind))) {
	case "", types.KindNormal:
		return types.Normal{}, nil
	case types.KindFragile:
		d, err := types.ParseDate(expires)
		if err != nil {
			return nil, err
		}
		return types.Fragile{Expiration: d, MaxRow: maxRow}, nil
	case types.KindOversized:
		return types.Oversized{Span: span}, nil
	default:
		return nil, fmt.Errorf("%w: %q (want normal, fragile or oversized)", types.ErrInvalidQuality, kind)
	}
}

// parseItemArgs parses the shell form
//
//	<id> <name> <qty> normal
//	<id> <name> <qty> fragile <dd-mm-yyyy> <max_row>
//	<id> <name> <qty> oversized <span>
func parseItemArgs(args []string) (types.Item, error) {
	if len(args) < 4 {
		return types.Item{}, errors.New("usage: add <id> <name> <qty> normal|fragile <dd-mm-yyyy> <max_row>|oversized <span>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return types.Item{}, err
	}
	qty, err := parseUint32("quantity", args[2])
	if err != nil {
		return types.Item{}, err
	}

	var (
		expires      string
		maxRow, span int
	)
	rest := args[4:]
	switch types.QualityKind(strings.ToLower(args[3])) {
	case types.KindNormal:
		if len(rest) != 0 {
			return types.Item{}, errors.New("normal takes no parameters")
		}
	case types.KindFragile:
		if len(rest) != 2 {
			return types.Item{}, errors.New("fragile needs <dd-mm-yyyy> <max_row>")
		}
		expires = rest[0]
		if maxRow, err = parseInt("max row", rest[1]); err != nil {
			return types.Item{}, err
		}
	case types.KindOversized:
		if len(rest) != 1 {
			return types.Item{}, errors.New("oversized needs <span>")
		}
		if span, err = parseInt("span", rest[0]); err != nil {
			return types.Item{}, err
		}
	}
	q, err := buildQuality(args[3], expires, maxRow, span)
	if err != nil {
		return types.Item{}, err
	}
	return types.Item{ID: id, Name: args[1], Quantity: qty, Quality: q}, nil
}
