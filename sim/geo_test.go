package sim

import (
	"math"
	"testing"
)

func TestDistance_IdenticalPoints_Zero(t *testing.T) {
	c := Coordinate{Lon: -111.048614, Lat: 45.670256}
	if d := Distance(c, c); d != 0 {
		t.Errorf("Distance(c, c): got %v, want 0", d)
	}
}

func TestDistance_Symmetric(t *testing.T) {
	a := Coordinate{Lon: -111.048614, Lat: 45.670256}
	b := Coordinate{Lon: -111.059246, Lat: 45.671103}
	d1 := Distance(a, b)
	d2 := Distance(b, a)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("Distance not symmetric: %v vs %v", d1, d2)
	}
	if d1 <= 0 {
		t.Errorf("Distance between distinct points: got %v, want > 0", d1)
	}
}

func TestDistance_OneDegreeLatitude_MatchesReference(t *testing.T) {
	// One degree of latitude is ~111,000 m anywhere on the sphere.
	a := Coordinate{Lon: 0, Lat: 45}
	b := Coordinate{Lon: 0, Lat: 46}
	got := Distance(a, b)
	want := 111000.0
	if math.Abs(got-want)/want > 0.01 {
		t.Errorf("one degree latitude: got %v m, want %v m ±1%%", got, want)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{1.234, 1.23},
		{1.236, 1.24},
		{0.0, 0.0},
		{-3.14159, -3.14},
	}
	for _, c := range cases {
		if got := round2(c.in); got != c.want {
			t.Errorf("round2(%v): got %v, want %v", c.in, got, c.want)
		}
	}
}
