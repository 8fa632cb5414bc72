package numberutils

import "testing"

func TestToIntWithDefault(t *testing.T) {
	tests := []struct {
		name string
		in   string
		def  int
		want int
	}{
		{name: "valid", in: "42", def: 0, want: 42},
		{name: "empty falls back", in: "", def: 10, want: 10},
		{name: "garbage falls back", in: "abc", def: 10, want: 10},
		{name: "negative", in: "-3", def: 0, want: -3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ToIntWithDefault(tc.in, tc.def); got != tc.want {
				t.Fatalf("ToIntWithDefault(%q, %d) = %d, want %d", tc.in, tc.def, got, tc.want)
			}
		})
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{name: "integral", in: 51, want: "51"},
		{name: "two decimals", in: 51.51, want: "51.51"},
		{name: "negative fraction", in: -0.13, want: "-0.13"},
		{name: "zero", in: 0, want: "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatFloat(tc.in); got != tc.want {
				t.Fatalf("FormatFloat(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestIsFloatInRange(t *testing.T) {
	tests := []struct {
		name string
		num  float64
		min  float64
		max  float64
		want bool
	}{
		{name: "inside", num: 45, min: -90, max: 90, want: true},
		{name: "lower bound", num: -90, min: -90, max: 90, want: true},
		{name: "upper bound", num: 90, min: -90, max: 90, want: true},
		{name: "below", num: -90.1, min: -90, max: 90, want: false},
		{name: "above", num: 180.1, min: -180, max: 180, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsFloatInRange(tc.num, tc.min, tc.max); got != tc.want {
				t.Fatalf("IsFloatInRange(%v, %v, %v) = %t, want %t", tc.num, tc.min, tc.max, got, tc.want)
			}
		})
	}
}

func TestToFloat64WithError(t *testing.T) {
	if got, err := ToFloat64WithError("51.51"); err != nil || got != 51.51 {
		t.Fatalf("ToFloat64WithError(51.51) = (%v, %v), want (51.51, nil)", got, err)
	}
	if _, err := ToFloat64WithError("north"); err == nil {
		t.Fatal("ToFloat64WithError(north) error = nil, want parse error")
	}
}
