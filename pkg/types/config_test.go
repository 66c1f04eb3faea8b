package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty strategy returns ErrStrategyEmpty",
			config:  Config{Strategy: ""},
			wantErr: ErrStrategyEmpty,
		},
		{
			name:    "unregistered strategy name is left to the registry",
			config:  Config{Strategy: "best-fit"},
			wantErr: nil,
		},
		{
			name:    "unknown name policy returns ErrNamePolicyUnknown",
			config:  Config{Strategy: StrategyRowMajor, Names: "first-write-wins"},
			wantErr: ErrNamePolicyUnknown,
		},
		{
			name:    "negative span cutoff returns ErrCutoffInvalid",
			config:  Config{Strategy: StrategyRowMajor, Filters: FilterConfig{MaxSpan: -1}},
			wantErr: ErrCutoffInvalid,
		},
		{
			name:    "negative flexibility cutoff returns ErrCutoffInvalid",
			config:  Config{Strategy: StrategyRowMajor, Filters: FilterConfig{MinFlexibility: -2}},
			wantErr: ErrCutoffInvalid,
		},
		{
			name:    "empty name policy is valid",
			config:  Config{Strategy: StrategyRowMajor},
			wantErr: nil,
		},
		{
			name:    "default config is valid",
			config:  DefaultConfig(),
			wantErr: nil,
		},
		{
			name:    "last-write-wins is valid",
			config:  Config{Strategy: StrategyRowMajor, Names: NamesLastWriteWins},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefaultConfigCutoffs(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Filters.MaxSpan != 3 {
		t.Fatalf("expected max span 3, got %d", cfg.Filters.MaxSpan)
	}
	if cfg.Filters.MinFlexibility != 2 {
		t.Fatalf("expected min flexibility 2, got %d", cfg.Filters.MinFlexibility)
	}
	if cfg.Names != NamesUnique {
		t.Fatalf("expected unique names, got %q", cfg.Names)
	}
}
