package repo

import (
	"context"
	"slices"
	"sync"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
)

// MemoryStore is an in-process KVStore. Subscribers are called synchronously
// after the write, outside the lock.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
	subs   map[string]map[int]func([]byte)
	nextID int
}

var _ contracts.KVStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string][]byte),
		subs:   make(map[string]map[int]func([]byte)),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[key]
	return slices.Clone(v), ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.values[key] = slices.Clone(value)
	fns := make([]func([]byte), 0, len(s.subs[key]))
	for _, fn := range s.subs[key] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(slices.Clone(value))
	}
	return nil
}

func (s *MemoryStore) Subscribe(ctx context.Context, key string, fn func([]byte)) (func(), error) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	if s.subs[key] == nil {
		s.subs[key] = make(map[int]func([]byte))
	}
	s.subs[key][id] = fn
	s.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs[key], id)
			if len(s.subs[key]) == 0 {
				delete(s.subs, key)
			}
			s.mu.Unlock()
		})
	}

	if done := ctx.Done(); done != nil {
		go func() {
			<-done
			unsubscribe()
		}()
	}
	return unsubscribe, nil
}
