package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory drawing store for development and testing.
type MemoryStore struct {
	mu       sync.RWMutex
	drawings map[string]*Drawing
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drawings: make(map[string]*Drawing)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Drawing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drawings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

func (s *MemoryStore) Put(ctx context.Context, d *Drawing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawings[d.ID] = d
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drawings, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]Info, 0, len(s.drawings))
	for _, d := range s.drawings {
		infos = append(infos, d.info())
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].UpdatedAt.After(infos[j].UpdatedAt)
	})
	return infos, nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
