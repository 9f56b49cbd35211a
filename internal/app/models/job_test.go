package models

import "testing"

func TestJobStatusCanTransitionTo(t *testing.T) {
	if !JobStatusOpen.CanTransitionTo(JobStatusClosed) {
		t.Error("expected OPEN -> CLOSED to be allowed")
	}
	if !JobStatusClosed.CanTransitionTo(JobStatusOpen) {
		t.Error("expected CLOSED -> OPEN to be allowed")
	}
	if JobStatusOpen.CanTransitionTo(JobStatusOpen) {
		t.Error("expected OPEN -> OPEN to be rejected")
	}
}

func TestApplicationStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   ApplicationStatus
		to     ApplicationStatus
		expect bool
	}{
		{name: "pending to shortlisted", from: ApplicationPending, to: ApplicationShortlisted, expect: true},
		{name: "pending to rejected", from: ApplicationPending, to: ApplicationRejected, expect: true},
		{name: "pending straight to selected is blocked", from: ApplicationPending, to: ApplicationSelected, expect: false},
		{name: "shortlisted to selected", from: ApplicationShortlisted, to: ApplicationSelected, expect: true},
		{name: "shortlisted to rejected", from: ApplicationShortlisted, to: ApplicationRejected, expect: true},
		{name: "selected is terminal", from: ApplicationSelected, to: ApplicationPending, expect: false},
		{name: "rejected is terminal", from: ApplicationRejected, to: ApplicationShortlisted, expect: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.expect {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.expect)
			}
		})
	}
}
