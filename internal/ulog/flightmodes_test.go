package ulog

import "testing"

func TestFlightModeChanges(t *testing.T) {
	l := &Log{
		LastTimestamp: 10_000,
		Topics: []*Topic{{
			Name:       "vehicle_status",
			Timestamps: []uint64{1000, 2000, 3000, 4000, 5000},
			Data:       Data{"nav_state": {0, 0, 2, 2, 3}},
		}},
	}
	got := FlightModeChanges(l)
	want := []ModeChange{{1000, 0}, {3000, 2}, {5000, 3}, {10_000, ModeEnd}}
	if len(got) != len(want) {
		t.Fatalf("got %d changes, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("change %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFlightModeChangesWithoutStatus(t *testing.T) {
	if got := FlightModeChanges(&Log{}); len(got) != 0 {
		t.Fatalf("expected no changes, got %+v", got)
	}
}
