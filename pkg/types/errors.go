package types

import (
	"errors"
	"fmt"
)

// Allocation errors. Add and Remove return them wrapped in a PlacementError
// or RemoveError; match with errors.Is.
var (
	ErrBlockedByFilter  = errors.New("blocked by filter")
	ErrFailedAllocation = errors.New("no valid position")
	ErrFailedAdd        = errors.New("placement check failed")
	ErrFailedRemove     = errors.New("item not found")
	ErrDuplicateID      = errors.New("duplicate item id")
	ErrDuplicateName    = errors.New("duplicate item name")
)

// Input errors raised while turning raw text into typed requests.
var (
	ErrInvalidDate    = errors.New("invalid date format")
	ErrInvalidQuality = errors.New("invalid quality")
)

// PlacementError reports a failed Add together with the rejected item.
type PlacementError struct {
	Item   Item
	Filter string // Name of the rejecting filter when Err is ErrBlockedByFilter.
	Err    error
}

func (e *PlacementError) Error() string {
	switch {
	case errors.Is(e.Err, ErrBlockedByFilter) && e.Filter != "":
		return fmt.Sprintf("the item %s triggered filter %s", e.Item, e.Filter)
	case errors.Is(e.Err, ErrBlockedByFilter):
		return fmt.Sprintf("the item %s triggered some filter", e.Item)
	case errors.Is(e.Err, ErrFailedAllocation):
		return fmt.Sprintf("the allocator could not find a position for item %s", e.Item)
	default:
		return fmt.Sprintf("could not add item %s: %v", e.Item, e.Err)
	}
}

func (e *PlacementError) Unwrap() error { return e.Err }

// RemoveError reports a failed Remove.
type RemoveError struct {
	ID  uint32
	Err error
}

func (e *RemoveError) Error() string {
	return fmt.Sprintf("could not remove item with id %d: %v", e.ID, e.Err)
}

func (e *RemoveError) Unwrap() error { return e.Err }
