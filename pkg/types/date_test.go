package types

import (
	"errors"
	"testing"
)

func TestDateOnOrBefore(t *testing.T) {
	exp := Date{Day: 1, Month: 1, Year: 1999}
	tests := []struct {
		name string
		ref  Date
		want bool
	}{
		{"later day and month", Date{2, 2, 1999}, true},
		{"same day", Date{1, 1, 1999}, true},
		{"previous year", Date{1, 1, 1998}, false},
		{"later year earlier month", Date{31, 12, 1998}, false},
		{"next year earlier day", Date{1, 1, 2000}, true},
		{"same month later day", Date{5, 1, 1999}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exp.OnOrBefore(tt.ref); got != tt.want {
				t.Fatalf("%s.OnOrBefore(%s) = %v, want %v", exp, tt.ref, got, tt.want)
			}
		})
	}
}

func TestDateCompareYearDominates(t *testing.T) {
	a := Date{Day: 31, Month: 12, Year: 1998}
	b := Date{Day: 1, Month: 1, Year: 1999}
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Fatalf("unexpected ordering between %s and %s", a, b)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "01-01-1999", want: Date{1, 1, 1999}},
		{in: " 2 - 2 - 1999 ", want: Date{2, 2, 1999}},
		{in: "31-12-2024", want: Date{31, 12, 2024}},
		{in: "1999-01", wantErr: true},
		{in: "aa-01-1999", wantErr: true},
		{in: "00-01-1999", wantErr: true},
		{in: "01-13-1999", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Fatalf("expected ErrInvalidDate, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateString(t *testing.T) {
	if got := (Date{Day: 1, Month: 2, Year: 1999}).String(); got != "01-02-1999" {
		t.Fatalf("unexpected string %q", got)
	}
}
