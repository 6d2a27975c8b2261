package app

import "sync"

// Store hands out one Ledger per session id. Ledger operations themselves
// run on the single request goroutine that owns the session; the store's
// lock only guards the session map.
type Store struct {
	mu      sync.Mutex
	ledgers map[string]*Ledger
}

func NewStore() *Store {
	return &Store{ledgers: make(map[string]*Ledger)}
}

// GetOrCreate returns the ledger for id, creating an empty one on first use.
// Concurrent callers with the same id always see the same ledger.
func (s *Store) GetOrCreate(id string) *Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.ledgers[id]; ok {
		return l
	}
	l := NewLedger()
	s.ledgers[id] = l
	return l
}

// Drop discards a session's ledger. No-op for unknown ids.
func (s *Store) Drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ledgers, id)
}
