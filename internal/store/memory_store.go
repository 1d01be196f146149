package store

import (
	"context"
	"sync"

	"bistrot-counter/internal/model"
)

// MemoryStore is an in-memory Store, used by tests and dry runs in place of
// the file or Postgres backends.
type MemoryStore struct {
	mu     sync.RWMutex
	orders map[string]model.Order
	stats  *model.Statistics
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orders: make(map[string]model.Order),
		stats:  model.NewStatistics(),
	}
}

// Persist stores a copy of the order and folds it into the statistics. The
// returned handle is the order ID.
func (s *MemoryStore) Persist(ctx context.Context, order *model.Order) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[order.ID] = *order
	s.stats.Apply(order)

	return order.ID, nil
}

// Statistics returns a copy of the current aggregates.
func (s *MemoryStore) Statistics(ctx context.Context) (*model.Statistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := model.NewStatistics()
	stats.TotalOrders = s.stats.TotalOrders
	stats.RevenueTotal = s.stats.RevenueTotal
	for name, count := range s.stats.ItemCounts {
		stats.ItemCounts[name] = count
	}
	for hour, count := range s.stats.HourCounts {
		stats.HourCounts[hour] = count
	}

	return stats, nil
}

// Get returns a persisted order by ID.
func (s *MemoryStore) Get(id string) (*model.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, false
	}
	return &order, true
}

// Orders returns copies of all persisted orders, in no particular order.
func (s *MemoryStore) Orders() []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]model.Order, 0, len(s.orders))
	for _, order := range s.orders {
		orders = append(orders, order)
	}
	return orders
}

// Len returns the number of persisted orders.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.orders)
}
