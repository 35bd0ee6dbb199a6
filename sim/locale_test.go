package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func makeLocale(t *testing.T, pads ...PadSpec) *Locale {
	t.Helper()
	return NewLocale("lib", LocaleSpec{RackPads: pads, Occupancy: 10})
}

func TestLocale_NearestPad_PicksClosest(t *testing.T) {
	l := makeLocale(t,
		PadSpec{Lon: -111.050, Lat: 45.670, Racks: 1, Cap: 5},
		PadSpec{Lon: -111.051, Lat: 45.671, Racks: 1, Cap: 5},
	)
	from := Coordinate{Lon: -111.051, Lat: 45.6711}

	got := l.NearestPad(from, nil)

	require.NotNil(t, got)
	require.Equal(t, Coordinate{Lon: -111.051, Lat: 45.671}, got.Coordinates())
}

func TestLocale_NearestPad_TieKeepsFirstRegistered(t *testing.T) {
	// GIVEN two pads at the same coordinate
	l := makeLocale(t,
		PadSpec{Lon: -111.050, Lat: 45.670, Racks: 1, Cap: 1},
		PadSpec{Lon: -111.050, Lat: 45.670, Racks: 1, Cap: 2},
	)

	// WHEN searching from anywhere
	got := l.NearestPad(Coordinate{Lon: -111.049, Lat: 45.669}, nil)

	// THEN the first-registered pad wins the tie
	require.NotNil(t, got)
	require.Equal(t, 1, got.Capacity())
}

func TestLocale_NearestPad_RespectsExclusion(t *testing.T) {
	l := makeLocale(t,
		PadSpec{Lon: -111.050, Lat: 45.670, Racks: 1, Cap: 5},
		PadSpec{Lon: -111.060, Lat: 45.680, Racks: 1, Cap: 5},
	)
	from := Coordinate{Lon: -111.050, Lat: 45.670}
	near := l.NearestPad(from, nil)

	got := l.NearestPad(from, map[string]bool{near.Name(): true})

	require.NotNil(t, got)
	require.NotEqual(t, near.Name(), got.Name())
}

func TestLocale_NearestAvailablePad_SkipsFullPads(t *testing.T) {
	// GIVEN a near pad that is full and a far pad with room
	l := makeLocale(t,
		PadSpec{Lon: -111.050, Lat: 45.670, Racks: 1, Cap: 1},
		PadSpec{Lon: -111.060, Lat: 45.680, Racks: 1, Cap: 1},
	)
	from := Coordinate{Lon: -111.050, Lat: 45.670}
	l.Pads()[0].AddBiker(NewBiker("a", nil, Coordinate{}))

	// WHEN searching for an available pad
	got := l.NearestAvailablePad(from)

	// THEN the far pad is returned
	require.NotNil(t, got)
	require.Equal(t, Coordinate{Lon: -111.060, Lat: 45.680}, got.Coordinates())
}

func TestLocale_NearestAvailablePad_AllFull_ReturnsNil(t *testing.T) {
	l := makeLocale(t, PadSpec{Lon: -111.050, Lat: 45.670, Racks: 1, Cap: 1})
	l.Pads()[0].AddBiker(NewBiker("a", nil, Coordinate{}))

	if got := l.NearestAvailablePad(Coordinate{}); got != nil {
		t.Errorf("all pads full: got %v, want nil", got.Name())
	}
}

func TestLocale_ZeroPads_BothQueriesReturnNil(t *testing.T) {
	// GIVEN a locale with no pads
	l := NewLocale("empty", LocaleSpec{Occupancy: 5})

	// THEN both nearest-pad queries return nil
	if got := l.NearestPad(Coordinate{}, nil); got != nil {
		t.Errorf("NearestPad on padless locale: got %v, want nil", got.Name())
	}
	if got := l.NearestAvailablePad(Coordinate{}); got != nil {
		t.Errorf("NearestAvailablePad on padless locale: got %v, want nil", got.Name())
	}
}
