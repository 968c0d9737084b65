package services

import (
	"context"
	"sync"

	"clinic-cart-service/apperrors"
	"clinic-cart-service/catalog"
	"clinic-cart-service/models"
	"clinic-cart-service/pricing"
	"clinic-cart-service/repository"

	"go.uber.org/zap"
)

// CartStore is the sole mutator of the two carts and the single source
// of truth for totals. Catalog data is read-only input; presentation
// consumes only Snapshot and Totals.
type CartStore struct {
	mu       sync.Mutex
	carts    map[models.CartKind][]models.LineItem
	repo     repository.CartRepository
	catalog  catalog.Catalog
	policy   pricing.Policy
	logger   *zap.Logger
	onChange func()
}

// NewCartStore loads both carts from the repository. A missing or
// unreadable persisted cart starts empty.
func NewCartStore(ctx context.Context, repo repository.CartRepository, cat catalog.Catalog, policy pricing.Policy, logger *zap.Logger) *CartStore {
	s := &CartStore{
		carts:   make(map[models.CartKind][]models.LineItem, 2),
		repo:    repo,
		catalog: cat,
		policy:  policy,
		logger:  logger,
	}

	for _, kind := range []models.CartKind{models.KindProduct, models.KindService} {
		items, err := repo.Load(ctx, kind)
		if err != nil || items == nil {
			items = []models.LineItem{}
		}
		s.carts[kind] = items
	}
	return s
}

// SetOnChange registers a callback invoked after every successful
// mutation, so the rendering layer re-draws instead of polling.
func (s *CartStore) SetOnChange(fn func()) {
	s.onChange = fn
}

func (s *CartStore) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

func (s *CartStore) lookup(kind models.CartKind, id string) (catalog.Item, bool) {
	if kind == models.KindService {
		return s.catalog.FindService(id)
	}
	return s.catalog.FindProduct(id)
}

// AddOrMerge adds a catalog item to the target cart. If the item is
// already present its quantity is incremented; name and price are kept
// from the first add. Insertion order is preserved.
func (s *CartStore) AddOrMerge(ctx context.Context, kind models.CartKind, itemID string, quantity int) error {
	if quantity < 1 {
		return apperrors.ErrInvalidQuantity
	}
	item, ok := s.lookup(kind, itemID)
	if !ok {
		return apperrors.ErrUnknownCatalogItem
	}

	s.mu.Lock()
	merged := false
	items := s.carts[kind]
	for i := range items {
		if items[i].ID == itemID {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.carts[kind] = append(items, models.LineItem{
			ID:        item.ID,
			Name:      item.Name,
			UnitPrice: item.Price,
			Quantity:  quantity,
			Image:     item.Image,
		})
	}
	s.mu.Unlock()

	return s.persist(ctx, kind)
}

// IncrementQuantity bumps a line item by one. Unknown ids are a no-op:
// the UI and state can race and a stale button press is not an error.
func (s *CartStore) IncrementQuantity(ctx context.Context, kind models.CartKind, id string) error {
	s.mu.Lock()
	changed := false
	items := s.carts[kind]
	for i := range items {
		if items[i].ID == id {
			items[i].Quantity++
			changed = true
			break
		}
	}
	s.mu.Unlock()

	if !changed {
		return nil
	}
	return s.persist(ctx, kind)
}

// DecrementQuantity lowers a line item by one; at quantity 1 the item is
// removed entirely. A zero-quantity line is never stored.
func (s *CartStore) DecrementQuantity(ctx context.Context, kind models.CartKind, id string) error {
	s.mu.Lock()
	changed := false
	items := s.carts[kind]
	for i := range items {
		if items[i].ID != id {
			continue
		}
		if items[i].Quantity <= 1 {
			s.carts[kind] = append(items[:i], items[i+1:]...)
		} else {
			items[i].Quantity--
		}
		changed = true
		break
	}
	s.mu.Unlock()

	if !changed {
		return nil
	}
	return s.persist(ctx, kind)
}

// Remove deletes a line item regardless of quantity; no-op if absent.
func (s *CartStore) Remove(ctx context.Context, kind models.CartKind, id string) error {
	s.mu.Lock()
	changed := false
	items := s.carts[kind]
	for i := range items {
		if items[i].ID == id {
			s.carts[kind] = append(items[:i], items[i+1:]...)
			changed = true
			break
		}
	}
	s.mu.Unlock()

	if !changed {
		return nil
	}
	return s.persist(ctx, kind)
}

// Clear empties both carts. Used by checkout after the order is recorded.
func (s *CartStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.carts[models.KindProduct] = []models.LineItem{}
	s.carts[models.KindService] = []models.LineItem{}
	s.mu.Unlock()

	return s.persist(ctx, models.KindProduct, models.KindService)
}

// Snapshot returns a detached copy of both carts.
func (s *CartStore) Snapshot() models.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := models.CartSnapshot{
		Products: make([]models.LineItem, len(s.carts[models.KindProduct])),
		Services: make([]models.LineItem, len(s.carts[models.KindService])),
	}
	copy(snap.Products, s.carts[models.KindProduct])
	copy(snap.Services, s.carts[models.KindService])
	return snap
}

// Totals recomputes the aggregate totals from current cart contents on
// every call; nothing is cached.
func (s *CartStore) Totals() models.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.policy.TotalsFor(s.carts[models.KindProduct], s.carts[models.KindService])
}

// persist writes the given carts back to the repository. The in-memory
// state has already changed; a failed save degrades to session-only
// operation and is reported as ErrPersistenceUnavailable.
func (s *CartStore) persist(ctx context.Context, kinds ...models.CartKind) error {
	s.notify()

	var saveErr error
	for _, kind := range kinds {
		s.mu.Lock()
		items := make([]models.LineItem, len(s.carts[kind]))
		copy(items, s.carts[kind])
		s.mu.Unlock()

		if err := s.repo.Save(ctx, kind, items); err != nil {
			s.logger.Warn("cart save failed, continuing in memory",
				zap.String("cart", string(kind)), zap.Error(err))
			saveErr = err
		}
	}

	if saveErr != nil {
		return apperrors.Wrap(apperrors.ErrPersistenceUnavailable, saveErr)
	}
	return nil
}
