package repository

import (
	"context"
	"sync"

	"clinic-cart-service/models"
)

// In-memory implementations used as test doubles and as the degraded
// fallback when no redis is configured. Error fields let tests inject
// storage failures.

type MemoryCartRepository struct {
	mu      sync.Mutex
	carts   map[models.CartKind][]models.LineItem
	SaveErr error
}

func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{carts: make(map[models.CartKind][]models.LineItem)}
}

func (m *MemoryCartRepository) Load(_ context.Context, kind models.CartKind) ([]models.LineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]models.LineItem, len(m.carts[kind]))
	copy(items, m.carts[kind])
	return items, nil
}

func (m *MemoryCartRepository) Save(_ context.Context, kind models.CartKind, items []models.LineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	stored := make([]models.LineItem, len(items))
	copy(stored, items)
	m.carts[kind] = stored
	return nil
}

type MemoryOrderLog struct {
	mu        sync.Mutex
	orders    []models.Order
	AppendErr error
}

func NewMemoryOrderLog() *MemoryOrderLog {
	return &MemoryOrderLog{}
}

func (m *MemoryOrderLog) Append(_ context.Context, order models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.orders = append(m.orders, order)
	return nil
}

func (m *MemoryOrderLog) List(_ context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	orders := make([]models.Order, len(m.orders))
	copy(orders, m.orders)
	return orders, nil
}

type MemoryFeedbackLog struct {
	mu        sync.Mutex
	entries   []models.FeedbackEntry
	AppendErr error
}

func NewMemoryFeedbackLog() *MemoryFeedbackLog {
	return &MemoryFeedbackLog{}
}

func (m *MemoryFeedbackLog) Append(_ context.Context, entry models.FeedbackEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MemoryFeedbackLog) List(_ context.Context) ([]models.FeedbackEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]models.FeedbackEntry, len(m.entries))
	copy(entries, m.entries)
	return entries, nil
}
