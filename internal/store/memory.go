package store

import (
	"context"
	"sync"

	"github.com/GregMSThompson/dashboard-builder/internal/catalog"
	"github.com/GregMSThompson/dashboard-builder/internal/layout"
)

// dashboardStore keeps one widget collection per user in process memory.
// Layouts are lost on restart.
type dashboardStore struct {
	mu      sync.RWMutex
	layouts map[string]layout.Collection
	seed    func() layout.Collection
}

// NewDashboardStore returns an empty store. A user's first read or mutation
// starts from seed().
func NewDashboardStore(seed func() layout.Collection) *dashboardStore {
	if seed == nil {
		seed = func() layout.Collection { return layout.Collection{} }
	}
	return &dashboardStore{layouts: make(map[string]layout.Collection), seed: seed}
}

// Get returns the user's current collection.
func (s *dashboardStore) Get(_ context.Context, uid string) (layout.Collection, error) {
	s.mu.RLock()
	c, ok := s.layouts[uid]
	s.mu.RUnlock()
	if ok {
		return c, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(uid), nil
}

// Apply runs fn on the user's collection and stores its result as one whole
// replacement. When fn fails nothing is stored.
func (s *dashboardStore) Apply(_ context.Context, uid string, fn func(layout.Collection) (layout.Collection, error)) (layout.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.loadLocked(uid))
	if err != nil {
		return layout.Collection{}, err
	}
	s.layouts[uid] = next
	return next, nil
}

// Replace stores c as the user's collection.
func (s *dashboardStore) Replace(_ context.Context, uid string, c layout.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layouts[uid] = c
	return nil
}

func (s *dashboardStore) loadLocked(uid string) layout.Collection {
	c, ok := s.layouts[uid]
	if !ok {
		c = s.seed()
		s.layouts[uid] = c
	}
	return c
}

// selectionStore is the persistence stub for the data filter panel. It only
// remembers each user's selected field ids for the life of the process.
type selectionStore struct {
	mu         sync.RWMutex
	selections map[string]catalog.Selection
}

func NewSelectionStore() *selectionStore {
	return &selectionStore{selections: make(map[string]catalog.Selection)}
}

func (s *selectionStore) Get(_ context.Context, uid string) (catalog.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(catalog.Selection{}, s.selections[uid]...), nil
}

// Apply runs fn on the user's selection and stores its result while holding
// the lock, so concurrent edits of one user never overwrite each other.
func (s *selectionStore) Apply(_ context.Context, uid string, fn func(catalog.Selection) catalog.Selection) (catalog.Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(catalog.Selection{}, fn(append(catalog.Selection{}, s.selections[uid]...))...)
	s.selections[uid] = next
	return append(catalog.Selection{}, next...), nil
}
