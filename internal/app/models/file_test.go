package models

import "testing"

func TestFileStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   FileStatus
		to     FileStatus
		expect bool
	}{
		{name: "pending to verified", from: FileStatusPending, to: FileStatusVerified, expect: true},
		{name: "pending to rejected", from: FileStatusPending, to: FileStatusRejected, expect: true},
		{name: "verified is terminal", from: FileStatusVerified, to: FileStatusRejected, expect: false},
		{name: "rejected is terminal", from: FileStatusRejected, to: FileStatusPending, expect: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.expect {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.expect)
			}
		})
	}
}

func TestFileTypeIsValid(t *testing.T) {
	for _, ft := range []FileType{FileTypeResume, FileTypeMarksheet, FileTypeCertificate, FileTypePhoto, FileTypeOfferLetter} {
		if !ft.IsValid() {
			t.Errorf("expected %s to be valid", ft)
		}
	}
	if FileType("TRANSCRIPT").IsValid() {
		t.Error("expected TRANSCRIPT to be invalid")
	}
}
