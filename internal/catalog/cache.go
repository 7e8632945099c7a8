package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned by a Cache when the key is absent.
var ErrCacheMiss = errors.New("catalog: cache miss")

// Cache stores serialized search results.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache is a Cache backed by Redis.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return val, err
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// CachedSearcher serves repeated searches from a Cache. Cache failures fall
// through to the wrapped Searcher.
type CachedSearcher struct {
	next  Searcher
	cache Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewCachedSearcher(next Searcher, cache Cache, ttl time.Duration, log *zap.Logger) *CachedSearcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedSearcher{next: next, cache: cache, ttl: ttl, log: log.Named("catalog_cache")}
}

// Search implements Searcher.
func (s *CachedSearcher) Search(ctx context.Context, q Query) ([]Game, error) {
	key := CacheKey(q)

	raw, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		var games []Game
		if jsonErr := json.Unmarshal(raw, &games); jsonErr == nil {
			return games, nil
		}
		s.log.Warn("Discarding unreadable cache entry", zap.String("key", key))
	case !errors.Is(err, ErrCacheMiss):
		s.log.Warn("Cache lookup failed", zap.String("key", key), zap.Error(err))
	}

	games, err := s.next.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(games); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
			s.log.Warn("Cache store failed", zap.String("key", key), zap.Error(err))
		}
	}
	return games, nil
}

// CacheKey identifies a query; names are compared case-insensitively.
func CacheKey(q Query) string {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	name := strings.ToLower(strings.TrimSpace(q.Name))
	return fmt.Sprintf("catalog:search:%s:%s:%s:%s", q.Platform, q.Sort, strconv.Itoa(limit), name)
}
