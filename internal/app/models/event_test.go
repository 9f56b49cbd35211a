package models

import "testing"

func TestEventStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   EventStatus
		to     EventStatus
		expect bool
	}{
		{name: "scheduled to completed", from: EventScheduled, to: EventCompleted, expect: true},
		{name: "scheduled to cancelled", from: EventScheduled, to: EventCancelled, expect: true},
		{name: "completed is terminal", from: EventCompleted, to: EventScheduled, expect: false},
		{name: "cancelled is terminal", from: EventCancelled, to: EventScheduled, expect: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.expect {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.expect)
			}
		})
	}
}

func TestEventStatusAcceptsRegistrations(t *testing.T) {
	if !EventScheduled.AcceptsRegistrations() {
		t.Error("expected scheduled events to accept registrations")
	}
	if !EventCompleted.AcceptsRegistrations() {
		t.Error("expected completed events to accept registrations for attendance backfill")
	}
	if EventCancelled.AcceptsRegistrations() {
		t.Error("expected cancelled events to refuse registrations")
	}
}
