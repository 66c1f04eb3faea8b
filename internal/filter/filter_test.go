package filter

import (
	"testing"

	"github.com/mesh-intelligence/stockroom/internal/grid"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func fragile(maxRow int) types.Item {
	return types.Item{ID: 1, Name: "glass", Quality: types.Fragile{Expiration: types.Date{Day: 1, Month: 1, Year: 2030}, MaxRow: maxRow}}
}

func oversized(span int) types.Item {
	return types.Item{ID: 2, Name: "beam", Quality: types.Oversized{Span: span}}
}

func normal() types.Item {
	return types.Item{ID: 3, Name: "box", Quality: types.Normal{}}
}

func TestMaxSpan(t *testing.T) {
	f := MaxSpan{Cutoff: 3}
	g := grid.New()
	tests := []struct {
		name string
		item types.Item
		want bool
	}{
		{"span below cutoff", oversized(2), true},
		{"span at cutoff", oversized(3), true},
		{"span above cutoff", oversized(4), false},
		{"fragile passes", fragile(0), true},
		{"normal passes", normal(), true},
		{"nil quality passes", types.Item{ID: 4}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Admit(tt.item, g); got != tt.want {
				t.Fatalf("Admit = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMinFlexibility(t *testing.T) {
	f := MinFlexibility{Cutoff: 2}
	g := grid.New()
	tests := []struct {
		name string
		item types.Item
		want bool
	}{
		{"max row below cutoff", fragile(1), false},
		{"max row at cutoff", fragile(2), true},
		{"max row above cutoff", fragile(9), true},
		{"oversized passes", oversized(10), true},
		{"normal passes", normal(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Admit(tt.item, g); got != tt.want {
				t.Fatalf("Admit = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChainAdmit(t *testing.T) {
	g := grid.New()
	chain := NewChain(MaxSpan{Cutoff: 3}, MinFlexibility{Cutoff: 2})

	if ok, _ := chain.Admit(normal(), g); !ok {
		t.Fatal("normal item rejected")
	}
	ok, by := chain.Admit(oversized(4), g)
	if ok || by != NameMaxSpan {
		t.Fatalf("expected rejection by %s, got ok=%v by=%q", NameMaxSpan, ok, by)
	}
	ok, by = chain.Admit(fragile(1), g)
	if ok || by != NameMinFlexibility {
		t.Fatalf("expected rejection by %s, got ok=%v by=%q", NameMinFlexibility, ok, by)
	}

	// Order does not change the verdict.
	reversed := NewChain(MinFlexibility{Cutoff: 2}, MaxSpan{Cutoff: 3})
	for _, it := range []types.Item{normal(), oversized(4), fragile(1), oversized(3), fragile(5)} {
		a, _ := chain.Admit(it, g)
		b, _ := reversed.Admit(it, g)
		if a != b {
			t.Fatalf("order changed verdict for %s", it)
		}
	}
}

func TestEmptyChainAdmitsEverything(t *testing.T) {
	var nilChain *Chain
	if ok, _ := nilChain.Admit(oversized(100), nil); !ok {
		t.Fatal("nil chain rejected item")
	}
	if ok, _ := NewChain().Admit(fragile(0), nil); !ok {
		t.Fatal("empty chain rejected item")
	}
}

func TestFromConfig(t *testing.T) {
	c := FromConfig(types.FilterConfig{MaxSpan: 3, MinFlexibility: 2})
	names := c.Names()
	if len(names) != 2 || names[0] != NameMaxSpan || names[1] != NameMinFlexibility {
		t.Fatalf("unexpected filters %v", names)
	}
	if FromConfig(types.FilterConfig{}).Len() != 0 {
		t.Fatal("zero cutoffs must disable filters")
	}
	if FromConfig(types.FilterConfig{MinFlexibility: 4}).Len() != 1 {
		t.Fatal("expected only the flexibility filter")
	}
}
