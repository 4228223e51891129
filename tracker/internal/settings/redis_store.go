package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Krimson/exstats/pkg/exstats"
	"github.com/redis/go-redis/v9"
)

// RedisStore хранит настройки в Redis как JSON
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore создает новый экземпляр RedisStore
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
	}
}

func settingsKey(profile string) string {
	return fmt.Sprintf("settings:%s", profile)
}

func (r *RedisStore) Load(ctx context.Context, profile string) (*exstats.Options, error) {
	data, err := r.client.Get(ctx, settingsKey(profile)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrSettingsNotFound, profile)
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	var opts exstats.Options
	if err := json.Unmarshal([]byte(data), &opts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	return &opts, nil
}

func (r *RedisStore) Save(ctx context.Context, profile string, opts *exstats.Options) error {
	data, err := json.Marshal(opts)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := r.client.Set(ctx, settingsKey(profile), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
