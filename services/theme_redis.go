package services

import (
	"context"
	"fmt"

	"portfolio/models"

	"github.com/redis/rueidis"
)

// RedisThemeStore keeps preferences in Redis under <prefix>theme:<visitor>
type RedisThemeStore struct {
	client rueidis.Client
	prefix string
}

// NewRedisThemeStore connects to Redis
func NewRedisThemeStore(addrs []string, password, prefix string) (*RedisThemeStore, error) {
	if len(addrs) == 0 {
		return nil, fmt.Errorf("redis addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  addrs,
		Password:     password,
		DisableCache: true,
	})
	if err != nil {
		return nil, &StoreError{Op: OpThemeInit, Err: err}
	}
	return NewRedisThemeStoreWithClient(client, prefix), nil
}

// NewRedisThemeStoreWithClient wraps an existing client
func NewRedisThemeStoreWithClient(client rueidis.Client, prefix string) *RedisThemeStore {
	return &RedisThemeStore{client: client, prefix: prefix}
}

func (s *RedisThemeStore) key(visitor string) string {
	return s.prefix + "theme:" + visitor
}

func (s *RedisThemeStore) Get(ctx context.Context, visitor string) (models.Theme, bool, error) {
	cmd := s.client.B().Get().Key(s.key(visitor)).Build()
	val, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", false, nil
		}
		return "", false, &StoreError{Op: OpThemeGet, Err: err}
	}
	return models.Theme(val), true, nil
}

func (s *RedisThemeStore) Set(ctx context.Context, visitor string, theme models.Theme) error {
	cmd := s.client.B().Set().Key(s.key(visitor)).Value(string(theme)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return &StoreError{Op: OpThemeSet, Err: err}
	}
	return nil
}

func (s *RedisThemeStore) Close() error {
	s.client.Close()
	return nil
}
