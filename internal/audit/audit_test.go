package audit

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/somechocolate/tableau-embedded-analytics/internal/core"
)

func entry(id, subject string) core.AuditEntry {
	return core.AuditEntry{
		ID:      id,
		Time:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Action:  "token.issue",
		Subject: subject,
		Granted: true,
	}
}

func TestInMemoryAuditor_GetRecent(t *testing.T) {
	a := NewInMemoryAuditor()
	for _, e := range []core.AuditEntry{
		entry("a", "one@example.com"),
		entry("b", "two@example.com"),
		entry("c", "three@example.com"),
	} {
		if err := a.Log(e); err != nil {
			t.Fatalf("Log() error = %v", err)
		}
	}

	t.Run("Limit Smaller Than Log", func(t *testing.T) {
		got, err := a.GetRecent(2)
		if err != nil {
			t.Fatalf("GetRecent() error = %v", err)
		}
		want := []core.AuditEntry{
			entry("b", "two@example.com"),
			entry("c", "three@example.com"),
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("GetRecent() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Limit Larger Than Log", func(t *testing.T) {
		got, err := a.GetRecent(10)
		if err != nil {
			t.Fatalf("GetRecent() error = %v", err)
		}
		if len(got) != 3 {
			t.Errorf("GetRecent() returned %d entries, want 3", len(got))
		}
	})
}

func TestInMemoryAuditor_Find(t *testing.T) {
	a := NewInMemoryAuditor()
	_ = a.Log(entry("a", "one@example.com"))
	_ = a.Log(entry("b", "two@example.com"))
	_ = a.Log(entry("c", "two@example.com"))

	got, err := a.Find(func(e core.AuditEntry) bool {
		return e.Subject == "two@example.com"
	}, 1)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Find() returned %d entries, want 1", len(got))
	}
	// limited results keep the most recent match
	if got[0].ID != "c" {
		t.Errorf("Find() returned entry %q, want %q", got[0].ID, "c")
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("token-a")
	b := Fingerprint("token-b")

	if a == b {
		t.Error("Fingerprint() returned the same value for different tokens")
	}
	if a != Fingerprint("token-a") {
		t.Error("Fingerprint() is not stable for the same token")
	}
	if a == "token-a" {
		t.Error("Fingerprint() must not return the token itself")
	}
}
