package net

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithRequest(context.Background(), "req-123")
	if got := RequestID(ctx); got != "req-123" {
		t.Fatalf("got %q", got)
	}
}

func TestWithRequestEmptyIsNoop(t *testing.T) {
	t.Parallel()

	ctx := WithRequest(context.Background(), "")
	if got := RequestID(ctx); got != "" {
		t.Fatalf("empty id should not be stored: %q", got)
	}
}
