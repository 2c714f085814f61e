// Package session holds the client-side session credentials: the current
// auth token and the active tenant identifier. The store is the single owner
// of this state; the transport reads it on every request and login/logout
// (and detected session expiry) are the only writers.
package session

import "sync"

// Store defines the interface for session credential storage. Reads of absent
// values return the empty string, never an error. Implementations must be
// safe for concurrent use: many in-flight requests read the store while a
// login or an expiry-triggered clear may write it.
type Store interface {
	// Token returns the current session token, or "" if not logged in.
	Token() string

	// Tenant returns the active tenant ID, or "" if no tenant is selected.
	Tenant() string

	// SetSession stores both credentials. Called on successful login.
	SetSession(token, tenant string) error

	// Clear removes both credentials. Called on logout and on session expiry.
	Clear() error
}

// MemStore is an in-memory Store. It is the test double for the transport
// and also backs one-shot invocations that never persist a session.
type MemStore struct {
	mu     sync.Mutex
	token  string
	tenant string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *MemStore) Tenant() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tenant
}

func (s *MemStore) SetSession(token, tenant string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.tenant = tenant
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.tenant = ""
	return nil
}

var _ Store = &MemStore{}
var _ Store = &FileStore{}
