// Package app wires configuration into the store backend and session
// registry shared by the server, SSH and local TUI binaries.
package app

import (
	"context"
	"fmt"

	"signal-desk/internal/cache"
	"signal-desk/internal/config"
	"signal-desk/internal/db"
	"signal-desk/internal/market"
	"signal-desk/internal/metrics"
	"signal-desk/internal/service"
	"signal-desk/internal/store"
	"signal-desk/internal/tier"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/trace"
)

// Store namespaces, one per binary. Each process caches its sessions in
// memory, so processes must not share a namespace.
const (
	NamespaceAPI   = "api"
	NamespaceSSH   = "ssh"
	NamespaceLocal = "local"
)

var (
	initRedisFunc    = cache.InitRedis
	initPostgresFunc = db.InitPostgres
)

// OpenStore connects the backend named by cfg.StoreBackend. An unreachable
// Redis degrades to the in-memory store; a failing Postgres is an error.
// The returned func releases the connection.
func OpenStore(ctx context.Context, cfg *config.Config, tracer trace.Tracer) (store.KV, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case config.StoreMemory:
		log.Info("using in-memory store")
		return store.NewMemoryKV(), noop, nil

	case config.StorePostgres:
		pool, err := initPostgresFunc(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("open postgres store: %w", err)
		}
		if pool == nil {
			log.Warn("postgres store requested without DATABASE_URL, using in-memory store")
			return store.NewMemoryKV(), noop, nil
		}
		kv := store.NewPostgresKV(pool, tracer)
		if err := kv.RunMigrations(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("run kv migrations: %w", err)
		}
		return kv, pool.Close, nil

	default:
		client, err := initRedisFunc(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, using in-memory store", "err", err)
			return store.NewMemoryKV(), noop, nil
		}
		return store.NewRedisKV(client, tracer), func() { _ = client.Close() }, nil
	}
}

// NewSessionService builds the session registry from cfg with its keys under
// namespace. m may be nil.
func NewSessionService(cfg *config.Config, tracer trace.Tracer, kv store.KV, namespace string, m *metrics.Metrics) *service.SessionService {
	return service.NewSessionService(tracer, kv, service.SessionServiceConfig{
		Hours:     market.NewHours(cfg.MarketLocation),
		Tiers:     tier.NewManager(cfg.Secrets()),
		Logger:    log.Default(),
		Metrics:   m,
		Namespace: namespace,
	})
}
