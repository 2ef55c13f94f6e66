package utils

import (
	"math"
	"testing"
)

func TestParseLatLng(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *LatLng
	}{
		{
			name:  "plain coordinate pair",
			input: "7.2045, 124.2407",
			want:  &LatLng{Lat: 7.2045, Lng: 124.2407},
		},
		{
			name:  "no space after comma",
			input: "7.2045,124.2407",
			want:  &LatLng{Lat: 7.2045, Lng: 124.2407},
		},
		{
			name:  "negative coordinates",
			input: "-6.2, -106.8",
			want:  &LatLng{Lat: -6.2, Lng: -106.8},
		},
		{
			name:  "street address is not a coordinate",
			input: "Purok 4, Barangay Poblacion",
			want:  nil,
		},
		{
			name:  "three segments",
			input: "7.2, 124.2, 0",
			want:  nil,
		},
		{
			name:  "single token",
			input: "abc",
			want:  nil,
		},
		{
			name:  "latitude out of range",
			input: "95.0, 124.0",
			want:  nil,
		},
		{
			name:  "longitude out of range",
			input: "7.0, 190.0",
			want:  nil,
		},
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLatLng(tt.input)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("ParseLatLng(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got != nil && (got.Lat != tt.want.Lat || got.Lng != tt.want.Lng) {
				t.Errorf("ParseLatLng(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestHaversineDistance(t *testing.T) {
	// Cotabato City to Datu Odin Sinsuat, roughly 12 km apart
	got := HaversineDistance(7.2236, 124.2464, 7.1575, 124.3290)
	if got < 10 || got > 14 {
		t.Errorf("HaversineDistance = %v km, expected roughly 12 km", got)
	}

	if d := HaversineDistance(7.2, 124.2, 7.2, 124.2); math.Abs(d) > 1e-9 {
		t.Errorf("distance to self = %v, want 0", d)
	}
}
