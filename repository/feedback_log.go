package repository

import (
	"context"
	"encoding/json"

	"clinic-cart-service/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// FeedbackLog stores visitor feedback submissions, append-only.
type FeedbackLog interface {
	Append(ctx context.Context, entry models.FeedbackEntry) error
	List(ctx context.Context) ([]models.FeedbackEntry, error)
}

// RedisFeedbackLog keeps feedback entries in a redis list.
type RedisFeedbackLog struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisFeedbackLog(client *redis.Client, logger *zap.Logger) *RedisFeedbackLog {
	return &RedisFeedbackLog{client: client, logger: logger}
}

func (r *RedisFeedbackLog) Append(ctx context.Context, entry models.FeedbackEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return r.client.RPush(ctx, KeyFeedbackLog, data).Err()
}

func (r *RedisFeedbackLog) List(ctx context.Context) ([]models.FeedbackEntry, error) {
	vals, err := r.client.LRange(ctx, KeyFeedbackLog, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]models.FeedbackEntry, 0, len(vals))
	for _, v := range vals {
		var fe models.FeedbackEntry
		if err := json.Unmarshal([]byte(v), &fe); err != nil {
			r.logger.Warn("skipping unreadable feedback entry", zap.Error(err))
			continue
		}
		entries = append(entries, fe)
	}
	return entries, nil
}
