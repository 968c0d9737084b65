package repository

import (
	"context"
	"encoding/json"

	"clinic-cart-service/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// OrderLog is append-only: committed orders are never rewritten or
// removed. Append must be durable before the caller clears the cart.
type OrderLog interface {
	Append(ctx context.Context, order models.Order) error
	List(ctx context.Context) ([]models.Order, error)
}

// RedisOrderLog keeps orders in a redis list under order.log.
type RedisOrderLog struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisOrderLog(client *redis.Client, logger *zap.Logger) *RedisOrderLog {
	return &RedisOrderLog{client: client, logger: logger}
}

func (r *RedisOrderLog) Append(ctx context.Context, order models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return r.client.RPush(ctx, KeyOrderLog, data).Err()
}

func (r *RedisOrderLog) List(ctx context.Context) ([]models.Order, error) {
	vals, err := r.client.LRange(ctx, KeyOrderLog, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(vals))
	for _, v := range vals {
		var o models.Order
		if err := json.Unmarshal([]byte(v), &o); err != nil {
			r.logger.Warn("skipping unreadable order log entry", zap.Error(err))
			continue
		}
		orders = append(orders, o)
	}
	return orders, nil
}
