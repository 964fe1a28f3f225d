package orders

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"
)

// MemoryRepository keeps orders in a map guarded by a RWMutex.
type MemoryRepository struct {
	mu     sync.RWMutex
	orders map[int64]Order
	nextID int64
}

// NewMemoryRepository returns an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{orders: make(map[int64]Order)}
}

func (m *MemoryRepository) Create(_ context.Context, o Order) (Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	o.ID = m.nextID
	m.orders[o.ID] = o
	return o, nil
}

func (m *MemoryRepository) Get(_ context.Context, id int64) (Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o, nil
}

func (m *MemoryRepository) List(_ context.Context) ([]Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.SortedFunc(maps.Values(m.orders), func(a, b Order) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	}), nil
}

func (m *MemoryRepository) Update(_ context.Context, id int64, fn func(*Order) error) (Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	if err := fn(&o); err != nil {
		return Order{}, err
	}
	o.ID = id
	m.orders[id] = o
	return o, nil
}

func (m *MemoryRepository) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.orders[id]; !ok {
		return ErrNotFound
	}
	delete(m.orders, id)
	return nil
}
