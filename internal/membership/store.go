package membership

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/eugenenazirov/ghreport/internal/report"
)

// ErrNotFound indicates the user has no recorded membership in the organization.
var ErrNotFound = errors.New("membership not found")

// MemoryStore keeps memberships in-memory and guards access with a RWMutex.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[key]report.Membership
}

type key struct {
	org   string
	login string
}

func newKey(org, login string) key {
	return key{org: strings.ToLower(org), login: strings.ToLower(login)}
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[key]report.Membership)}
}

// LoadFile reads a JSON array of memberships from path into a new store.
func LoadFile(path string) (*MemoryStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open memberships: %w", err)
	}
	defer f.Close()

	store := NewMemoryStore()
	if err := store.Load(f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return store, nil
}

// Load adds every membership in the JSON array read from r. Each entry needs
// organization.login and user.login.
func (s *MemoryStore) Load(r io.Reader) error {
	var memberships []report.Membership
	if err := json.NewDecoder(r).Decode(&memberships); err != nil {
		return fmt.Errorf("decode memberships: %w", err)
	}

	for i, m := range memberships {
		if m.Organization.Login == "" || m.User.Login == "" {
			return fmt.Errorf("membership %d: organization.login and user.login are required", i)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range memberships {
		s.entries[newKey(m.Organization.Login, m.User.Login)] = m
	}
	return nil
}

// Put records a membership for login in org.
func (s *MemoryStore) Put(org, login string, m report.Membership) {
	s.mu.Lock()
	s.entries[newKey(org, login)] = m
	s.mu.Unlock()
}

// Len returns the number of stored memberships.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// OrganizationMembership implements report.MembershipLookup. Logins and
// organizations match case-insensitively.
func (s *MemoryStore) OrganizationMembership(ctx context.Context, login, org string) (report.Membership, error) {
	if err := ctx.Err(); err != nil {
		return report.Membership{}, err
	}

	s.mu.RLock()
	m, ok := s.entries[newKey(org, login)]
	s.mu.RUnlock()

	if !ok {
		return report.Membership{}, fmt.Errorf("%s in %s: %w", login, org, ErrNotFound)
	}
	return m, nil
}
