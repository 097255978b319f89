// Package store is an in-memory registry of compiled programs, keyed by
// a generated ID, for the HTTP server: a client compiles source once and
// runs it by ID afterward instead of resending and recompiling it every
// time.
package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ciphron/scdl"
)

// ProgramStore stores compiled programs and looks them up by ID.
type ProgramStore interface {
	// Save registers p under a fresh ID and returns it.
	Save(p *scdl.Program) string
	// Get returns the program registered under id, if any.
	Get(id string) (*scdl.Program, error)
}

type programStore struct {
	sync.RWMutex
	programs map[string]*scdl.Program
}

// New returns an empty, concurrency-safe ProgramStore.
func New() ProgramStore {
	return &programStore{programs: make(map[string]*scdl.Program)}
}

// Save implements ProgramStore.
func (s *programStore) Save(p *scdl.Program) string {
	id := uuid.New().String()
	s.Lock()
	s.programs[id] = p
	s.Unlock()
	return id
}

// Get implements ProgramStore.
func (s *programStore) Get(id string) (*scdl.Program, error) {
	s.RLock()
	p, ok := s.programs[id]
	s.RUnlock()
	if !ok {
		return nil, fmt.Errorf("program with id %s not found", id)
	}
	return p, nil
}
