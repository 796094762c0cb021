package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tastebook/tastebook/pkg/logger"
)

// CacheConfig holds response cache configuration
type CacheConfig struct {
	TTL time.Duration
	// Prefixes of paths worth caching. Catalog data barely changes;
	// recipe reads are cached per-viewer because membership flags differ.
	CacheablePrefixes []string
}

// DefaultCacheConfig returns the cache policy for the recipe API
func DefaultCacheConfig(ttl time.Duration) CacheConfig {
	return CacheConfig{
		TTL: ttl,
		CacheablePrefixes: []string{
			"/api/ingredients",
			"/api/tags",
			"/api/recipes",
		},
	}
}

// CacheMiddleware caches GET responses in Redis
func CacheMiddleware(redisClient *redis.Client, config CacheConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if redisClient == nil || c.Method() != fiber.MethodGet {
			return c.Next()
		}
		if !isCacheablePath(c.Path(), config.CacheablePrefixes) {
			return c.Next()
		}

		cacheKey := cacheKeyFor(c)
		ctx := context.Background()

		if cached, err := redisClient.Get(ctx, cacheKey).Bytes(); err == nil && len(cached) > 0 {
			logger.Logger.Debug().
				Str("path", c.Path()).
				Msg("Gateway cache hit")
			c.Set("X-Cache", "HIT")
			c.Set("Content-Type", "application/json")
			return c.Send(cached)
		}

		err := c.Next()

		if c.Response().StatusCode() == fiber.StatusOK {
			body := c.Response().Body()
			if cacheErr := redisClient.Set(ctx, cacheKey, body, config.TTL).Err(); cacheErr != nil {
				logger.Logger.Warn().
					Err(cacheErr).
					Str("path", c.Path()).
					Msg("Failed to cache response")
			}
			c.Set("X-Cache", "MISS")
		}

		return err
	}
}

// cacheKeyFor builds a key from method, path, query and the caller's token,
// so personalized membership flags never leak between viewers.
func cacheKeyFor(c *fiber.Ctx) string {
	raw := fmt.Sprintf("%s:%s:%s:%s",
		c.Method(),
		c.Path(),
		string(c.Request().URI().QueryString()),
		c.Get("Authorization"),
	)
	hash := sha256.Sum256([]byte(raw))
	return "gateway:cache:" + hex.EncodeToString(hash[:])
}

func isCacheablePath(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
