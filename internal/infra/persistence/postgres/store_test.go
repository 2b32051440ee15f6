package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
)

func TestNewStoreOpenError(t *testing.T) {
	openMu.Lock()
	original := sqlOpen
	openMu.Unlock()
	sentinel := errors.New("driver unavailable")
	sqlOpen = func(driverName, dsn string) (*sql.DB, error) {
		if driverName != defaultDriver {
			t.Fatalf("unexpected driver %q", driverName)
		}
		if dsn != defaultDSN {
			t.Fatalf("expected default DSN for empty input, got %q", dsn)
		}
		return nil, sentinel
	}
	defer func() {
		openMu.Lock()
		sqlOpen = original
		openMu.Unlock()
	}()

	_, err := NewStore(context.Background(), "")
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped open error, got %v", err)
	}
	if !strings.Contains(err.Error(), "open postgres") {
		t.Fatalf("error missing context: %v", err)
	}
}

func TestNewStorePingError(t *testing.T) {
	// An unreachable host fails on the initial ping rather than at open time.
	_, err := NewStore(context.Background(), "postgres://127.0.0.1:1/synapsecore?sslmode=disable&connect_timeout=1")
	if err == nil {
		t.Fatalf("expected ping failure for unreachable server")
	}
	if !strings.Contains(err.Error(), "ping postgres") {
		t.Fatalf("error missing context: %v", err)
	}
}
