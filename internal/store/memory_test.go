package store

import (
	"context"
	"testing"
	"time"

	"github.com/somechocolate/tableau-embedded-analytics/internal/core"
)

func TestInMemoryTokenStore(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryTokenStore()

	now := time.Now()
	active := core.TokenMetadata{
		JTI:       "active-token",
		Subject:   "alice@example.com",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
	expired := core.TokenMetadata{
		JTI:       "expired-token",
		Subject:   "bob@example.com",
		IssuedAt:  now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	}

	if err := s.Save(ctx, active); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	if err := s.Save(ctx, expired); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	got, err := s.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive() unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].JTI != "active-token" {
		t.Errorf("ListActive() = %+v, want only the active token", got)
	}

	deleted, err := s.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired() unexpected error: %v", err)
	}
	if deleted != 1 {
		t.Errorf("DeleteExpired() = %d, want 1", deleted)
	}
}
