package verify

import (
	"sync"

	"SparqlScanner/internal/domain"
)

// VerifiedSet accumulates a record's verified endpoints, at most one per URL.
// It is safe for concurrent use.
type VerifiedSet struct {
	mu      sync.Mutex
	byURL   map[string]struct{}
	entries []domain.VerifiedEndpoint
}

// NewVerifiedSet builds an empty set.
func NewVerifiedSet() *VerifiedSet {
	return &VerifiedSet{byURL: map[string]struct{}{}}
}

// Add inserts the endpoint unless its URL is already present. The first arrival wins.
func (s *VerifiedSet) Add(endpoint domain.VerifiedEndpoint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byURL[endpoint.URL]; ok {
		return false
	}
	s.byURL[endpoint.URL] = struct{}{}
	s.entries = append(s.entries, endpoint)
	return true
}

// Len returns the number of verified endpoints.
func (s *VerifiedSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Endpoints returns a copy of the entries in arrival order.
func (s *VerifiedSet) Endpoints() []domain.VerifiedEndpoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.VerifiedEndpoint, len(s.entries))
	copy(out, s.entries)
	return out
}
