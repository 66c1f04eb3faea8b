package types

import "errors"

// Config holds engine and CLI settings. The CLI fills it from config.yaml,
// STOCKROOM_* environment variables and flags.
type Config struct {
	Strategy string       `json:"strategy" yaml:"strategy" mapstructure:"strategy"`
	Names    NamePolicy   `json:"names" yaml:"names" mapstructure:"names"`
	Filters  FilterConfig `json:"filters" yaml:"filters" mapstructure:"filters"`
	Journal  bool         `json:"journal" yaml:"journal" mapstructure:"journal"`
	DataDir  string       `json:"data_dir,omitempty" yaml:"data_dir,omitempty" mapstructure:"data_dir"`
}

// FilterConfig holds the admission filter cutoffs. A zero cutoff disables
// the corresponding filter.
type FilterConfig struct {
	// MaxSpan rejects Oversized items whose span exceeds it.
	MaxSpan int `json:"max_span" yaml:"max_span" mapstructure:"max_span"`
	// MinFlexibility rejects Fragile items whose max row is below it.
	MinFlexibility int `json:"min_flexibility" yaml:"min_flexibility" mapstructure:"min_flexibility"`
}

// NamePolicy decides what Add does when an item's name is already indexed.
type NamePolicy string

// Name policies.
const (
	// NamesUnique rejects a name collision with ErrDuplicateName.
	NamesUnique NamePolicy = "unique"
	// NamesLastWriteWins points the name index at the newest item.
	NamesLastWriteWins NamePolicy = "last-write-wins"
)

// Supported strategy names.
const (
	StrategyRowMajor = "row-major"
)

// Default filter cutoffs.
const (
	DefaultMaxSpan        = 3
	DefaultMinFlexibility = 2
)

// Config validation errors.
var (
	ErrStrategyEmpty     = errors.New("strategy must not be empty")
	ErrStrategyUnknown   = errors.New("unknown strategy")
	ErrNamePolicyUnknown = errors.New("unknown name policy")
	ErrCutoffInvalid     = errors.New("filter cutoff must not be negative")
)

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Strategy: StrategyRowMajor,
		Names:    NamesUnique,
		Filters: FilterConfig{
			MaxSpan:        DefaultMaxSpan,
			MinFlexibility: DefaultMinFlexibility,
		},
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure. An empty name policy is accepted and means
// NamesUnique. Strategy names are resolved against the strategy registry
// when the engine is built.
func (c Config) Validate() error {
	if c.Strategy == "" {
		return ErrStrategyEmpty
	}
	switch c.Names {
	case "", NamesUnique, NamesLastWriteWins:
	default:
		return ErrNamePolicyUnknown
	}
	if c.Filters.MaxSpan < 0 || c.Filters.MinFlexibility < 0 {
		return ErrCutoffInvalid
	}
	return nil
}
