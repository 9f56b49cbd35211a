package helpers

import (
	"context"
	"testing"
)

func TestClientIPRoundTrip(t *testing.T) {
	ctx := WithClientIP(context.Background(), "198.51.100.4")
	ip := ClientIPFromContext(ctx)
	if ip == nil || *ip != "198.51.100.4" {
		t.Fatalf("expected 198.51.100.4, got %v", ip)
	}
}

func TestClientIPMissing(t *testing.T) {
	if ip := ClientIPFromContext(context.Background()); ip != nil {
		t.Fatalf("expected nil, got %q", *ip)
	}
	if ip := ClientIPFromContext(WithClientIP(context.Background(), "")); ip != nil {
		t.Fatalf("expected nil for empty IP, got %q", *ip)
	}
}
