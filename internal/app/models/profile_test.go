package models

import "testing"

func TestApprovalStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   ApprovalStatus
		to     ApprovalStatus
		expect bool
	}{
		{name: "pending to approved", from: ApprovalPending, to: ApprovalApproved, expect: true},
		{name: "pending to rejected", from: ApprovalPending, to: ApprovalRejected, expect: true},
		{name: "approved back to pending", from: ApprovalApproved, to: ApprovalPending, expect: true},
		{name: "rejected back to pending", from: ApprovalRejected, to: ApprovalPending, expect: true},
		{name: "approved to rejected is blocked", from: ApprovalApproved, to: ApprovalRejected, expect: false},
		{name: "rejected to approved is blocked", from: ApprovalRejected, to: ApprovalApproved, expect: false},
		{name: "same status is not a transition", from: ApprovalPending, to: ApprovalPending, expect: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.expect {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.expect)
			}
		})
	}
}

func TestApprovalStatusIsValid(t *testing.T) {
	for _, s := range []ApprovalStatus{ApprovalPending, ApprovalApproved, ApprovalRejected} {
		if !s.IsValid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if ApprovalStatus("DRAFT").IsValid() {
		t.Error("expected DRAFT to be invalid")
	}
}

func TestPlacementStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   PlacementStatus
		to     PlacementStatus
		expect bool
	}{
		{name: "not placed to in process", from: PlacementNotPlaced, to: PlacementInProcess, expect: true},
		{name: "not placed straight to placed", from: PlacementNotPlaced, to: PlacementPlaced, expect: true},
		{name: "in process to placed", from: PlacementInProcess, to: PlacementPlaced, expect: true},
		{name: "placed is terminal", from: PlacementPlaced, to: PlacementInProcess, expect: false},
		{name: "in process back to not placed is blocked", from: PlacementInProcess, to: PlacementNotPlaced, expect: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.expect {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.expect)
			}
		})
	}
}
