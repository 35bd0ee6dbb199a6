package sim

import "testing"

func TestBiker_Destination_PeeksWithoutAdvancing(t *testing.T) {
	b := NewBiker("abc", []string{"lib", "gym"}, Coordinate{})

	for i := 0; i < 3; i++ {
		dest, ok := b.Destination()
		if !ok || dest != "lib" {
			t.Fatalf("Destination peek %d: got (%q, %v), want (lib, true)", i, dest, ok)
		}
	}
}

func TestBiker_AdvanceSchedule_States(t *testing.T) {
	// GIVEN a biker with a two-entry itinerary
	b := NewBiker("abc", []string{"lib", "gym"}, Coordinate{})

	// WHEN advancing through and past the end
	// THEN the states classify each transition
	if got := b.AdvanceSchedule(); got != AdvanceOK {
		t.Errorf("first advance: got %v, want AdvanceOK", got)
	}
	if got := b.AdvanceSchedule(); got != AdvanceLastStop {
		t.Errorf("second advance: got %v, want AdvanceLastStop", got)
	}
	if got := b.AdvanceSchedule(); got != AdvanceExhausted {
		t.Errorf("third advance: got %v, want AdvanceExhausted", got)
	}

	if _, ok := b.Destination(); ok {
		t.Error("Destination after exhaustion: got ok=true, want false")
	}
}

func TestBiker_EmptyItinerary(t *testing.T) {
	b := NewBiker("abc", nil, Coordinate{})
	if _, ok := b.Destination(); ok {
		t.Error("empty itinerary: Destination ok=true, want false")
	}
	if got := b.AdvanceSchedule(); got != AdvanceExhausted {
		t.Errorf("empty itinerary advance: got %v, want AdvanceExhausted", got)
	}
}
