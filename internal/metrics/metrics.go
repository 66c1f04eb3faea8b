// Package metrics exports engine activity as Prometheus metrics on a
// private registry. A Recorder is handed to the placement engine and can be
// dumped to a node_exporter textfile.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Outcome labels.
const (
	OutcomeOK               = "ok"
	OutcomeBlockedByFilter  = "blocked_by_filter"
	OutcomeFailedAllocation = "failed_allocation"
	OutcomeFailedAdd        = "failed_add"
	OutcomeFailedRemove     = "failed_remove"
	OutcomeDuplicateID      = "duplicate_id"
	OutcomeDuplicateName    = "duplicate_name"
	OutcomeError            = "error"
)

var outcomes = []struct {
	err   error
	label string
}{
	{types.ErrBlockedByFilter, OutcomeBlockedByFilter},
	{types.ErrFailedAllocation, OutcomeFailedAllocation},
	{types.ErrFailedAdd, OutcomeFailedAdd},
	{types.ErrFailedRemove, OutcomeFailedRemove},
	{types.ErrDuplicateID, OutcomeDuplicateID},
	{types.ErrDuplicateName, OutcomeDuplicateName},
}

// Outcome maps an operation error to its metric label.
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	for _, o := range outcomes {
		if errors.Is(err, o.err) {
			return o.label
		}
	}
	return OutcomeError
}

// Recorder counts operations by outcome and tracks grid usage. It satisfies
// placement.Recorder and is safe for concurrent use.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	items      prometheus.Gauge
	occupied   prometheus.Gauge
}

// NewRecorder registers the stockroom metrics on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stockroom",
			Name:      "operations_total",
			Help:      "Add and remove operations by outcome.",
		}, []string{"op", "outcome"}),
		items: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "stockroom",
			Name:      "items",
			Help:      "Items currently placed.",
		}),
		occupied: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "stockroom",
			Name:      "occupied_cells",
			Help:      "Grid cells currently occupied.",
		}),
	}
	r.registry.MustRegister(r.operations, r.items, r.occupied)
	return r
}

// Observe records one operation and the grid usage after it.
func (r *Recorder) Observe(op string, err error, stats types.Stats) {
	r.operations.WithLabelValues(op, Outcome(err)).Inc()
	r.items.Set(float64(stats.Items))
	r.occupied.Set(float64(stats.OccupiedCells))
}

// Registry exposes the private registry, e.g. for an HTTP handler.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteTextfile writes the current metrics to path in the text exposition
// format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
