package membership

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/eugenenazirov/ghreport/internal/report"
)

const sampleMemberships = `[
  {"state": "active", "role": "admin", "organization": {"login": "acme"},
   "user": {"login": "mona", "name": "Mona Lisa", "email": "mona@example.com", "url": "https://api.github.com/users/mona"}},
  {"state": "pending", "role": "member", "organization": {"login": "acme"},
   "user": {"login": "hubot"}}
]`

func TestMemoryStoreLoadAndLookup(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if err := store.Load(strings.NewReader(sampleMemberships)); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 memberships, got %d", store.Len())
	}

	m, err := store.OrganizationMembership(context.Background(), "Mona", "ACME")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Role != "admin" || m.User.Email != "mona@example.com" {
		t.Fatalf("unexpected membership: %+v", m)
	}

	if _, err := store.OrganizationMembership(context.Background(), "mona", "other-org"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	testCases := []string{
		`not json`,
		`{"state": "active"}`,
		`[{"state": "active", "organization": {"login": "acme"}, "user": {}}]`,
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("case_%d", idx), func(t *testing.T) {
			store := NewMemoryStore()
			if err := store.Load(strings.NewReader(tc)); err == nil {
				t.Fatalf("expected error for %q", tc)
			}
			if store.Len() != 0 {
				t.Fatalf("expected no partial load, got %d entries", store.Len())
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "memberships.json")
	if err := os.WriteFile(path, []byte(sampleMemberships), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	store, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 memberships, got %d", store.Len())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestMemoryStoreHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	store.Put("acme", "mona", report.Membership{State: "active"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.OrganizationMembership(ctx, "mona", "acme"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	var wg sync.WaitGroup

	for i := 0; i < 32; i++ {
		wg.Add(2)

		go func(offset int) {
			defer wg.Done()
			store.Put("acme", fmt.Sprintf("user-%d", offset), report.Membership{State: "active"})
		}(i)

		go func(offset int) {
			defer wg.Done()
			_, _ = store.OrganizationMembership(context.Background(), fmt.Sprintf("user-%d", offset), "acme")
		}(i)
	}

	wg.Wait()

	if store.Len() != 32 {
		t.Fatalf("expected 32 memberships, got %d", store.Len())
	}
}
