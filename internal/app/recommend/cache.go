package recommend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/yigit/degreeplan/internal/app/models"
)

// Cache errors
var (
	ErrCacheMiss          = errors.New("cache: key not found")
	ErrCacheConnection    = errors.New("cache: connection failed")
	ErrCacheSerialization = errors.New("cache: serialization failed")
)

// KeyPrefix namespaces recommendation keys
const KeyPrefix = "recommend:"

// DefaultTTL is how long a ranking stays cached when no TTL is configured
const DefaultTTL = 10 * time.Minute

// Cache stores JSON values with a TTL
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// RedisCache is a Cache backed by Redis
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis and checks the connection
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}
	return &RedisCache{client: client}, nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Get reads and decodes a JSON value. It returns ErrCacheMiss when the key is absent.
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheSerialization, err)
	}
	return nil
}

// Set encodes and stores a value
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheSerialization, err)
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

// CachedClient serves repeated requests from a cache. Failed fetches are not cached.
type CachedClient struct {
	source Source
	cache  Cache
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedClient wraps source with cache
func NewCachedClient(source Source, cache Cache, ttl time.Duration, lgr zerolog.Logger) *CachedClient {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedClient{source: source, cache: cache, ttl: ttl, logger: lgr}
}

// Fetch returns the cached ranking for req or asks the source and caches its answer
func (c *CachedClient) Fetch(ctx context.Context, req Request) ([]models.Recommendation, error) {
	key := CacheKey(req)

	var cached []models.Recommendation
	err := c.cache.Get(ctx, key, &cached)
	switch {
	case err == nil:
		return cached, nil
	case !errors.Is(err, ErrCacheMiss):
		c.logger.Warn().Err(err).Str("key", key).Msg("Recommendation cache read failed")
	}

	recs, err := c.source.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []models.Recommendation{}
	}
	if err := c.cache.Set(ctx, key, recs, c.ttl); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Recommendation cache write failed")
	}
	return recs, nil
}

// CacheKey hashes the request; the order of the input codes does not matter
func CacheKey(req Request) string {
	passed := append([]string{}, req.Passed...)
	candidates := append([]string{}, req.Candidates...)
	sort.Strings(passed)
	sort.Strings(candidates)

	h := sha256.New()
	h.Write([]byte(strings.Join(passed, "|")))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(candidates, "|")))
	return KeyPrefix + hex.EncodeToString(h.Sum(nil))
}
