package main

import (
	"context"
	"testing"
	"time"
)

func TestSetupMetrics(t *testing.T) {
	shutdown, err := setupMetrics(context.Background(), "", false)
	if err != nil {
		t.Fatalf("no endpoint: %s", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("no-op shutdown failed: %s", err)
	}

	// The exporter connects lazily: nothing needs to listen on the endpoint.
	shutdown, err = setupMetrics(context.Background(), "localhost:4317", true)
	if err != nil {
		t.Fatalf("insecure exporter: %s", err)
	}
	if shutdown == nil {
		t.Fatal("nil shutdown function")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	// The final export may fail without a collector; only the shutdown itself matters.
	_ = shutdown(ctx)
}
