package placement

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mesh-intelligence/stockroom/internal/filter"
	"github.com/mesh-intelligence/stockroom/internal/strategy"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// EventSink receives an event for every successful Add and Remove. A sink
// error is logged and does not fail the operation.
type EventSink interface {
	Record(ev types.Event) error
}

// Recorder observes the outcome of every mutating operation together with
// the grid usage after it.
type Recorder interface {
	Observe(op string, err error, stats types.Stats)
}

// Option configures engine construction.
type Option func(*Engine)

// WithStrategy selects the allocation strategy. The default is row-major.
func WithStrategy(s types.Strategy) Option {
	return func(e *Engine) {
		if s != nil {
			e.strategy = s
		}
	}
}

// WithFilters appends admission filters to the engine's chain.
func WithFilters(filters ...types.Filter) Option {
	return func(e *Engine) {
		for _, f := range filters {
			e.filters.Register(f)
		}
	}
}

// WithNamePolicy decides how name collisions are handled.
func WithNamePolicy(p types.NamePolicy) Option {
	return func(e *Engine) {
		if p != "" {
			e.names = p
		}
	}
}

// WithLogger sets the structured logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithEventSink attaches a sink for placed and removed events.
func WithEventSink(s EventSink) Option {
	return func(e *Engine) {
		e.sink = s
	}
}

// WithRecorder attaches an operation recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// withClock overrides the event timestamp source in tests.
func withClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewFromConfig validates cfg and builds an engine with the configured
// strategy, filter chain and name policy. Extra options are applied last.
func NewFromConfig(cfg types.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	s, err := strategy.New(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	chain := filter.FromConfig(cfg.Filters)
	base := []Option{WithStrategy(s), WithNamePolicy(cfg.Names)}
	e := New(append(base, opts...)...)
	e.filters = mergeChains(chain, e.filters)
	return e, nil
}

func mergeChains(first, second *filter.Chain) *filter.Chain {
	out := filter.NewChain()
	for _, c := range []*filter.Chain{first, second} {
		for _, f := range c.Filters() {
			out.Register(f)
		}
	}
	return out
}
