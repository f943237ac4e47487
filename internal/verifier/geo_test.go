package verifier

import (
	"math"
	"testing"
)

func TestHaversineKm_IdenticalPoints(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{45.4215, -75.6972},
		{-33.8688, 151.2093},
		{90, 0},
	}

	for _, p := range points {
		if d := HaversineKm(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("expected exactly 0 for identical points (%v), got %v", p, d)
		}
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	d1 := HaversineKm(43.6532, -79.3832, 45.4215, -75.6972)
	d2 := HaversineKm(45.4215, -75.6972, 43.6532, -79.3832)

	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("expected symmetric distances, got %v and %v", d1, d2)
	}
}

func TestHaversineKm_KnownDistance(t *testing.T) {
	// Toronto to Ottawa is roughly 350 km
	d := HaversineKm(43.6532, -79.3832, 45.4215, -75.6972)

	if d < 330 || d > 370 {
		t.Errorf("expected Toronto-Ottawa distance near 350 km, got %v", d)
	}
}

func TestHaversineKm_Antipodal(t *testing.T) {
	// Half the Earth's circumference, just over 20000 km
	d := HaversineKm(0, 0, 0, 180)

	if math.IsNaN(d) {
		t.Fatal("expected finite distance for antipodal points, got NaN")
	}
	if d < 20000 || d > 20050 {
		t.Errorf("expected antipodal distance near 20015 km, got %v", d)
	}
}

func TestInitialBearing_CardinalDirections(t *testing.T) {
	tests := []struct {
		name     string
		lat2     float64
		lon2     float64
		expected float64
	}{
		{"due north", 1, 0, 0},
		{"due east", 0, 1, 90},
		{"due south", -1, 0, 180},
		{"due west", 0, -1, 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := InitialBearing(0, 0, tt.lat2, tt.lon2)
			if math.Abs(b-tt.expected) > 0.5 {
				t.Errorf("expected bearing %v, got %v", tt.expected, b)
			}
		})
	}
}

func TestCompassPoint(t *testing.T) {
	tests := []struct {
		bearing  float64
		expected string
	}{
		{0, "N"},
		{45, "NE"},
		{90, "E"},
		{135, "SE"},
		{180, "S"},
		{225, "SW"},
		{270, "W"},
		{315, "NW"},
		{359, "N"},
		{22, "N"},
		{23, "NE"},
	}

	for _, tt := range tests {
		if got := CompassPoint(tt.bearing); got != tt.expected {
			t.Errorf("CompassPoint(%v): expected %s, got %s", tt.bearing, tt.expected, got)
		}
	}
}
