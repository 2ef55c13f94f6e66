package models

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from RideStatus
		to   RideStatus
		want bool
	}{
		{"requested to assigned", RideStatusRequested, RideStatusAssigned, true},
		{"requested to accepted (direct claim)", RideStatusRequested, RideStatusAccepted, true},
		{"requested to cancelled", RideStatusRequested, RideStatusCancelled, true},
		{"assigned to accepted", RideStatusAssigned, RideStatusAccepted, true},
		{"assigned back to requested (rejection)", RideStatusAssigned, RideStatusRequested, true},
		{"assigned to cancelled", RideStatusAssigned, RideStatusCancelled, true},
		{"accepted to in_progress", RideStatusAccepted, RideStatusInProgress, true},
		{"accepted to cancelled", RideStatusAccepted, RideStatusCancelled, true},
		{"in_progress to completed", RideStatusInProgress, RideStatusCompleted, true},
		{"in_progress to cancelled", RideStatusInProgress, RideStatusCancelled, true},

		{"no accepted to completed shortcut", RideStatusAccepted, RideStatusCompleted, false},
		{"no requested to completed", RideStatusRequested, RideStatusCompleted, false},
		{"no requested to in_progress", RideStatusRequested, RideStatusInProgress, false},
		{"no in_progress back to accepted", RideStatusInProgress, RideStatusAccepted, false},
		{"completed is terminal", RideStatusCompleted, RideStatusCancelled, false},
		{"cancelled is terminal", RideStatusCancelled, RideStatusRequested, false},
		{"no self transition", RideStatusAccepted, RideStatusAccepted, false},
		{"unknown status goes nowhere", RideStatus("started"), RideStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := map[RideStatus]bool{
		RideStatusRequested:  false,
		RideStatusAssigned:   false,
		RideStatusAccepted:   false,
		RideStatusInProgress: false,
		RideStatusCompleted:  true,
		RideStatusCancelled:  true,
	}
	for status, want := range terminal {
		if got := status.IsTerminal(); got != want {
			t.Errorf("%s.IsTerminal() = %v, want %v", status, got, want)
		}
	}
}

func TestFareDue(t *testing.T) {
	ride := Ride{EstimatedFare: 75}
	if got := ride.FareDue(); got != 75 {
		t.Errorf("FareDue without final fare = %v, want 75", got)
	}

	final := 90.0
	ride.FinalFare = &final
	if got := ride.FareDue(); got != 90 {
		t.Errorf("FareDue with final fare = %v, want 90", got)
	}
}

func TestValidRideStatus(t *testing.T) {
	for _, s := range []RideStatus{
		RideStatusRequested, RideStatusAssigned, RideStatusAccepted,
		RideStatusInProgress, RideStatusCompleted, RideStatusCancelled,
	} {
		if !ValidRideStatus(s) {
			t.Errorf("ValidRideStatus(%s) = false", s)
		}
	}
	for _, s := range []RideStatus{"started", "arrived", "", "COMPLETED"} {
		if ValidRideStatus(s) {
			t.Errorf("ValidRideStatus(%q) = true", s)
		}
	}
}
