// Package rediscache implementa el caché del dashboard sobre Redis.
// Los errores de red degradan a cache miss: el dashboard nunca falla por Redis.
package rediscache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/jhoicas/pos-api/internal/application/analytics"
	"github.com/jhoicas/pos-api/pkg/config"
)

var _ analytics.Cache = (*Cache)(nil)

// Cache adaptador de analytics.Cache sobre go-redis.
type Cache struct {
	client *redis.Client
	log    zerolog.Logger
}

// New conecta a Redis y devuelve el caché. Si cfg.Addr está vacío o la
// conexión falla, devuelve nil (el caller debe caer en analytics.NoopCache).
func New(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) *Cache {
	if cfg.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis no disponible, dashboard sin caché")
		_ = client.Close()
		return nil
	}
	return &Cache{client: client, log: log}
}

// Get obtiene un valor del caché. Un error de red cuenta como miss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug().Err(err).Str("key", key).Msg("redis get falló")
		}
		return nil, false
	}
	return raw, true
}

// Set guarda un valor con TTL. Los errores solo se loguean.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Debug().Err(err).Str("key", key).Msg("redis set falló")
	}
}

// Close cierra la conexión.
func (c *Cache) Close() error {
	return c.client.Close()
}
