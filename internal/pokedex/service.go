package pokedex

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Cache is the subset of the redis wrapper the service needs.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Fetcher retrieves upstream content.
type Fetcher interface {
	Pokemon(ctx context.Context, name string) ([]byte, error)
}

// Service is a read-through cache over the upstream content API. Cache
// failures degrade to a direct fetch, never to a request failure.
type Service struct {
	fetcher Fetcher
	cache   Cache
	ttl     time.Duration
	logger  *zap.Logger
}

// NewService builds the service.
func NewService(fetcher Fetcher, cache Cache, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{fetcher: fetcher, cache: cache, ttl: ttl, logger: logger}
}

// Pokemon returns the cached content document, fetching upstream on miss.
func (s *Service) Pokemon(ctx context.Context, name string) (json.RawMessage, error) {
	key := "pokedex:pokemon:" + name

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	body, err := s.fetcher.Pokemon(ctx, name)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, body, s.ttl); err != nil {
			s.logger.Warn("pokedex cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return body, nil
}
