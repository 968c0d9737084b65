package repository

import (
	"context"
	"encoding/json"
	"time"

	"clinic-cart-service/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Keys in the persistent store. The cart keys each hold a serialized
// line-item array; the log keys are append-only lists.
const (
	KeyProducts    = "cart.products"
	KeyServices    = "cart.services"
	KeyOrderLog    = "order.log"
	KeyFeedbackLog = "feedback.log"
)

// CartKey maps a cart kind to its storage key.
func CartKey(kind models.CartKind) string {
	if kind == models.KindService {
		return KeyServices
	}
	return KeyProducts
}

// CartRepository persists one line-item list per cart kind.
//
// Load is fail-soft: a missing key or an undecodable payload yields an
// empty cart and a nil error. The in-memory cart is the source of truth
// for the session; Save errors are surfaced so callers can warn, but a
// broken store must never prevent the cart from coming up.
type CartRepository interface {
	Load(ctx context.Context, kind models.CartKind) ([]models.LineItem, error)
	Save(ctx context.Context, kind models.CartKind, items []models.LineItem) error
}

// RedisCartRepository implements CartRepository on a redis key per cart.
type RedisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisCartRepository(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCartRepository {
	return &RedisCartRepository{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *RedisCartRepository) Load(ctx context.Context, kind models.CartKind) ([]models.LineItem, error) {
	data, err := r.client.Get(ctx, CartKey(kind)).Bytes()
	if err == redis.Nil {
		return []models.LineItem{}, nil
	}
	if err != nil {
		r.logger.Warn("cart load failed, starting empty",
			zap.String("key", CartKey(kind)), zap.Error(err))
		return []models.LineItem{}, nil
	}

	return decodeLineItems(data, r.logger), nil
}

func (r *RedisCartRepository) Save(ctx context.Context, kind models.CartKind, items []models.LineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, CartKey(kind), data, r.ttl).Err()
}

// decodeLineItems parses a persisted cart, dropping entries that are
// structurally invalid rather than failing the whole load.
func decodeLineItems(data []byte, logger *zap.Logger) []models.LineItem {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		if logger != nil {
			logger.Warn("discarding malformed cart payload", zap.Error(err))
		}
		return []models.LineItem{}
	}

	items := make([]models.LineItem, 0, len(raw))
	for _, entry := range raw {
		var li models.LineItem
		if err := json.Unmarshal(entry, &li); err != nil || li.ID == "" || li.Quantity < 1 {
			if logger != nil {
				logger.Warn("skipping invalid cart entry", zap.ByteString("entry", entry))
			}
			continue
		}
		items = append(items, li)
	}
	return items
}
