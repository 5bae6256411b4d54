package pokedex

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/pokewiki/pkg/util"
)

type fakeFetcher struct {
	calls int
	body  []byte
	err   error
}

func (f *fakeFetcher) Pokemon(context.Context, string) ([]byte, error) {
	f.calls++
	return f.body, f.err
}

type mapCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	failing bool
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return nil, errors.New("cache down")
	}
	val, ok := c.entries[key]
	if !ok {
		return nil, errors.New("miss")
	}
	return val, nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errors.New("cache down")
	}
	c.entries[key] = value
	return nil
}

func TestService_ReadThrough(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{body: []byte(`{"name":"pikachu"}`)}
	cache := newMapCache()
	svc := NewService(fetcher, cache, time.Minute, zap.NewNop())
	ctx := context.Background()

	body, err := svc.Pokemon(ctx, "pikachu")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"pikachu"}`, string(body))
	assert.Equal(t, 1, fetcher.calls)

	// Second call is served from cache.
	body, err = svc.Pokemon(ctx, "pikachu")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"pikachu"}`, string(body))
	assert.Equal(t, 1, fetcher.calls)
}

func TestService_CacheFailureDegradesToFetch(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{body: []byte(`{"name":"ditto"}`)}
	cache := newMapCache()
	cache.failing = true
	svc := NewService(fetcher, cache, time.Minute, zap.NewNop())

	body, err := svc.Pokemon(context.Background(), "ditto")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"ditto"}`, string(body))
	assert.Equal(t, 1, fetcher.calls)
}

func TestService_NilCache(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{body: []byte(`{}`)}
	svc := NewService(fetcher, nil, time.Minute, zap.NewNop())

	_, err := svc.Pokemon(context.Background(), "eevee")
	require.NoError(t, err)
}

func TestClient_Pokemon(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pokemon/pikachu":
			_, _ = w.Write([]byte(`{"name":"pikachu"}`))
		case "/pokemon/slowpoke":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL)
	ctx := context.Background()

	body, err := client.Pokemon(ctx, "Pikachu")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"pikachu"}`, string(body))

	_, err = client.Pokemon(ctx, "missingno")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)

	_, err = client.Pokemon(ctx, "slowpoke")
	require.Error(t, err)
}
