package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"Inventario/internal/config"
	"Inventario/internal/inventory"
	"Inventario/pkg/kit"
	"Inventario/web"
)

func runServe(ctx context.Context, cfg config.Config) error {
	log := kit.NewLogger(service, cfg.LogFile)
	defer func() { _ = log.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := inventory.NewMetrics(reg)

	store, closeStore, err := openStore(ctx, cfg, log, metrics)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore.Close(); err != nil {
			log.Warn("close store failed", zap.Error(err))
		}
	}()

	renderer, err := newRenderer(cfg.TemplatesDir)
	if err != nil {
		return err
	}

	s := &inventory.Server{
		Store:    store,
		Renderer: renderer,
		Log:      log,
		Metrics:  metrics,
	}
	h := inventory.NewHandler(s, inventory.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,
		AddLimitPerMin: cfg.AddRateLimitPerMin,
	})

	log.Info("inventory configured",
		zap.String("backend", cfg.StoreBackend),
		zap.Bool("seeded", cfg.StoreBackend == config.BackendMemory && cfg.SeedDefaults),
	)
	return kit.RunHTTPServer(ctx, ":"+cfg.Port, h, log)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openStore(ctx context.Context, cfg config.Config, log *zap.Logger, m *inventory.Metrics) (inventory.Store, io.Closer, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		s, err := inventory.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil

	case config.BackendRedis:
		s := inventory.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), cfg.RedisKey)
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		return s, s, nil

	case config.BackendMemory:
		opts := []inventory.MemOption{
			inventory.WithLogger(log),
			inventory.WithRecoveryHook(m.LockRecovered),
		}
		if cfg.SeedDefaults {
			opts = append(opts, inventory.WithProducts(inventory.DefaultProducts()))
		}
		return inventory.NewMemStore(opts...), nopCloser{}, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.StoreBackend)
}

func newRenderer(dir string) (*inventory.TemplateRenderer, error) {
	var (
		fsys    fs.FS = web.Templates
		pattern       = web.TemplatesPattern
	)
	if dir != "" {
		fsys, pattern = os.DirFS(dir), "*.html"
	}
	return inventory.NewTemplateRenderer(fsys, pattern)
}
