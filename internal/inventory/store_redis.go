package inventory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "inventario:products"

// RedisStore keeps products as JSON entries of a single list. RPUSH is
// atomic, which gives the same per-append guarantee as the memory store.
type RedisStore struct {
	rdb   *redis.Client
	key   string
	newID IDFunc
}

func NewRedisStore(rdb *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{rdb: rdb, key: key, newID: RandomID}
}

func (s *RedisStore) Close() error { return s.rdb.Close() }

func (s *RedisStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.rdb.Ping(ctx).Err()
	})
}

func (s *RedisStore) List(ctx context.Context) ([]Product, error) {
	var raw []string
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		var err error
		raw, err = s.rdb.LRange(ctx, s.key, 0, -1).Result()
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]Product, 0, len(raw))
	for i, item := range raw {
		var p Product
		if err := json.Unmarshal([]byte(item), &p); err != nil {
			return nil, fmt.Errorf("decode product at index %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *RedisStore) Add(ctx context.Context, name string, price float64) (Product, error) {
	p := newProduct(s.newID, name, price)

	b, err := json.Marshal(p)
	if err != nil {
		return Product{}, fmt.Errorf("encode product: %w", err)
	}

	err = withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.rdb.RPush(ctx, s.key, b).Err()
	})
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *RedisStore) Len(ctx context.Context) (int, error) {
	var n int64
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		var err error
		n, err = s.rdb.LLen(ctx, s.key).Result()
		return err
	})
	return int(n), err
}
