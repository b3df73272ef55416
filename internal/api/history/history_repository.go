package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// historyKey is the single key-value entry holding the JSON-encoded search
// history array.
const historyKey = "wanderland:search_history"

var _ Repository = (*RedisRepository)(nil)

// Repository persists the search-history list as one JSON blob.
type Repository interface {
	Load(ctx context.Context) ([]string, error)
	Store(ctx context.Context, entries []string) error
	Clear(ctx context.Context) error
}

type RedisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func (r *RedisRepository) Load(ctx context.Context) ([]string, error) {
	val, err := r.client.Get(ctx, historyKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to load search history: %w", err)
	}

	var entries []string
	if err := json.Unmarshal([]byte(val), &entries); err != nil {
		return nil, fmt.Errorf("failed to decode search history: %w", err)
	}
	return entries, nil
}

func (r *RedisRepository) Store(ctx context.Context, entries []string) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode search history: %w", err)
	}
	if err := r.client.Set(ctx, historyKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store search history: %w", err)
	}
	return nil
}

func (r *RedisRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, historyKey).Err(); err != nil {
		return fmt.Errorf("failed to clear search history: %w", err)
	}
	return nil
}
