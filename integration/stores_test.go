//go:build integration
// +build integration

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"Inventario/internal/inventory"
)

func checkInsertionOrder(t *testing.T, ctx context.Context, s inventory.Store) {
	t.Helper()

	before, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	suffix := time.Now().UnixNano()
	names := []string{fmt.Sprintf("Burger-%d", suffix), fmt.Sprintf("Sprite-%d", suffix)}
	prices := []float64{1.0, 0.5}
	for i, name := range names {
		if _, err := s.Add(ctx, name, prices[i]); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}

	after, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(after) != len(before)+2 {
		t.Fatalf("len=%d want=%d", len(after), len(before)+2)
	}
	tail := after[len(after)-2:]
	for i, p := range tail {
		if p.Name != names[i] || p.Price != prices[i] || p.Stock != 0 {
			t.Fatalf("products[%d]=%+v want name=%s price=%v", len(before)+i, p, names[i], prices[i])
		}
	}
}

func TestPostgresStore_InsertionOrder(t *testing.T) {
	dsn := getenv("DATABASE_URL", "")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := inventory.OpenPostgres(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	checkInsertionOrder(t, ctx, s)
}

func TestRedisStore_InsertionOrder(t *testing.T) {
	addr := getenv("REDIS_ADDR", "")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	key := fmt.Sprintf("inventario:e2e:%d", time.Now().UnixNano())
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	s := inventory.NewRedisStore(rdb, key)
	t.Cleanup(func() {
		_ = rdb.Del(context.Background(), key).Err()
		_ = s.Close()
	})

	checkInsertionOrder(t, ctx, s)
}
