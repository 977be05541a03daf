package analytics

import (
	"context"
	"time"
)

// Cache guarda resúmenes serializados del dashboard. Las implementaciones
// nunca deben dejar caer el caso de uso: un miss o un error de red se
// tratan igual (se recalcula).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// NoopCache implementación nula para entornos sin Redis.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]byte, bool) { return nil, false }

func (NoopCache) Set(context.Context, string, []byte, time.Duration) {}
