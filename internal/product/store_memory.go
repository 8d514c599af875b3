package product

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
)

const firstID int64 = 1

// ErrIDSpaceExhausted is returned when the counter can no longer move forward.
var ErrIDSpaceExhausted = errors.New("product id space exhausted")

type MemStore struct {
	mu     sync.RWMutex
	m      map[int64]Product
	nextID int64
}

func NewMemStore() *MemStore {
	return &MemStore{
		m:      map[int64]Product{},
		nextID: firstID,
	}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Save(ctx context.Context, p Product) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case p.ID < 0 || p.ID == math.MaxInt64:
		return Product{}, ErrIDSpaceExhausted
	case p.ID == 0:
		if s.nextID == math.MaxInt64 {
			return Product{}, ErrIDSpaceExhausted
		}
		p.ID = s.nextID
		s.nextID++
	case p.ID >= s.nextID:
		s.nextID = p.ID + 1
	}

	s.m[p.ID] = p
	return p, nil
}

func (s *MemStore) FindByID(ctx context.Context, id int64) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.m[id]
	return p, ok, nil
}

func (s *MemStore) FindAll(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) DeleteByID(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.m, id)
	return nil
}
