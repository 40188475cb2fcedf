package corpus

import "sync"

// Store holds the process-wide default corpus. It is written once
// during startup (command-line file or default-directory load) and only
// read afterwards; the lock makes that discipline safe rather than
// assumed. Requests never write here, so two in-flight calls can never
// observe each other's corpus.
type Store struct {
	mu  sync.RWMutex
	res *Resource
}

// NewStore creates an empty default-corpus store.
func NewStore() *Store {
	return &Store{}
}

// Load sets the default corpus. Startup-time only.
func (s *Store) Load(res *Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.res = res
}

// Get returns the default corpus, or false when none was loaded.
func (s *Store) Get() (*Resource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.res == nil {
		return nil, false
	}
	return s.res, true
}
