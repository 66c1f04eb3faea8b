package types

import "testing"

func TestCoordinatesOrder(t *testing.T) {
	var got []Coordinate
	for c := range Coordinates() {
		got = append(got, c)
	}
	if len(got) != CellCount {
		t.Fatalf("expected %d coordinates, got %d", CellCount, len(got))
	}
	if got[0] != (Coordinate{0, 0, 0}) {
		t.Fatalf("expected first coordinate (0, 0, 0), got %s", got[0])
	}
	if got[1] != (Coordinate{0, 0, 1}) {
		t.Fatalf("expected second coordinate (0, 0, 1), got %s", got[1])
	}
	if got[GridSize] != (Coordinate{0, 1, 0}) {
		t.Fatalf("expected shelf to advance after zones, got %s", got[GridSize])
	}
	if got[GridSize*GridSize] != (Coordinate{1, 0, 0}) {
		t.Fatalf("expected row to advance after shelves, got %s", got[GridSize*GridSize])
	}
	for i := 1; i < len(got); i++ {
		if !got[i-1].Less(got[i]) {
			t.Fatalf("coordinates not ascending at %d: %s then %s", i, got[i-1], got[i])
		}
	}
}

func TestCoordinatesStopsEarly(t *testing.T) {
	n := 0
	for range Coordinates() {
		n++
		if n == 5 {
			break
		}
	}
	if n != 5 {
		t.Fatalf("expected to stop after 5, got %d", n)
	}
}

func TestCoordinateIndexRoundTrip(t *testing.T) {
	for c := range Coordinates() {
		if got := CoordinateAt(c.Index()); got != c {
			t.Fatalf("CoordinateAt(Index(%s)) = %s", c, got)
		}
	}
}

func TestCoordinateInBounds(t *testing.T) {
	tests := []struct {
		c    Coordinate
		want bool
	}{
		{Coordinate{0, 0, 0}, true},
		{Coordinate{9, 9, 9}, true},
		{Coordinate{10, 0, 0}, false},
		{Coordinate{0, -1, 0}, false},
		{Coordinate{0, 0, GridSize}, false},
	}
	for _, tt := range tests {
		if got := tt.c.InBounds(); got != tt.want {
			t.Errorf("%s.InBounds() = %v, want %v", tt.c, got, tt.want)
		}
		if !tt.want && tt.c.Index() != -1 {
			t.Errorf("%s.Index() = %d, want -1", tt.c, tt.c.Index())
		}
	}
}

func TestCoordinateRun(t *testing.T) {
	run := Coordinate{Row: 2, Shelf: 3, Zone: 7}.Run(3)
	want := []Coordinate{{2, 3, 7}, {2, 3, 8}, {2, 3, 9}}
	if len(run) != len(want) {
		t.Fatalf("expected %d coordinates, got %d", len(want), len(run))
	}
	for i := range want {
		if run[i] != want[i] {
			t.Fatalf("run[%d] = %s, want %s", i, run[i], want[i])
		}
	}
	if (Coordinate{}).Run(0) != nil {
		t.Fatal("expected nil run for n=0")
	}
}

func TestCoordinateString(t *testing.T) {
	if got := (Coordinate{1, 2, 3}).String(); got != "(1, 2, 3)" {
		t.Fatalf("unexpected string %q", got)
	}
}
