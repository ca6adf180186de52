package config

import (
	"sync"
)

// ChangeFunc is called with the new snapshot after a successful write.
type ChangeFunc func(Snapshot)

// Store holds the current configuration. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	snap     Snapshot
	version  uint64
	handlers []ChangeFunc
}

// NewStore creates a store holding the defaults.
func NewStore() *Store {
	return &Store{snap: DefaultSnapshot()}
}

// Get returns a copy of the current snapshot.
func (s *Store) Get() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// Version increments on every successful write.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Set validates p and applies it. On error nothing changes.
func (s *Store) Set(p Partial) error {
	if err := p.validate(); err != nil {
		return err
	}
	if p.IsEmpty() {
		return nil
	}

	s.mu.Lock()
	s.snap = s.snap.apply(p)
	s.version++
	snap := s.snap.Clone()
	handlers := append([]ChangeFunc(nil), s.handlers...)
	s.mu.Unlock()

	for _, h := range handlers {
		h(snap.Clone())
	}
	return nil
}

// Reset replaces the snapshot with the defaults updated by p. It is how a
// reloaded settings file takes effect: keys missing from the file return
// to their defaults.
func (s *Store) Reset(p Partial) error {
	if err := p.validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.snap = DefaultSnapshot().apply(p)
	s.version++
	snap := s.snap.Clone()
	handlers := append([]ChangeFunc(nil), s.handlers...)
	s.mu.Unlock()

	for _, h := range handlers {
		h(snap.Clone())
	}
	return nil
}

// OnChange registers h to run after every successful write.
func (s *Store) OnChange(h ChangeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, h)
}

// SetSettings parses a flat settings map and applies it.
func (s *Store) SetSettings(m map[string]any) error {
	p, err := ParseSettings(m)
	if err != nil {
		return err
	}
	return s.Set(p)
}

// Settings returns the current snapshot as a flat settings map.
func (s *Store) Settings() map[string]any {
	return s.Get().Settings()
}
