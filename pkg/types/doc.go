// Package types defines the stockroom domain model: grid coordinates, item
// qualities, items, the Warehouse, Filter, Strategy and GridView interfaces,
// engine configuration, and the standard errors returned by allocation
// operations.
//
// Implementations live under internal/: the grid in internal/grid, the
// reference filters in internal/filter, the row-major scan in
// internal/strategy, and the allocation engine in internal/placement.
package types
