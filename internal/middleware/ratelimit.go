package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/rvillanueva/resort-backoffice/internal/config"
)

// bucketScript refills and takes from a token bucket atomically.  State is
// two hash fields per key: remaining tokens and the last refill timestamp.
var bucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill_tokens = tonumber(ARGV[3])
local interval_ms = tonumber(ARGV[4])
local ttl_seconds = tonumber(ARGV[5])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])
if tokens == nil or last_refill == nil then
	tokens = capacity
	last_refill = now_ms
end

local elapsed = math.max(0, now_ms - last_refill)
local intervals = math.floor(elapsed / interval_ms)
if intervals > 0 then
	tokens = math.min(capacity, tokens + intervals * refill_tokens)
	last_refill = last_refill + intervals * interval_ms
end

local allowed = 0
if tokens > 0 then
	tokens = tokens - 1
	allowed = 1
end

redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)
return {allowed, tokens}
`)

// RateLimit applies a per-client token bucket backed by Redis, keyed by
// client IP and route.  Without Redis it degrades to pass-through; if the
// script itself errors the request is allowed so a Redis outage never takes
// the API down with it.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	intervalMS := cfg.RefillInterval.Milliseconds()
	ttlSec := int64(cfg.TTL / time.Second)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := fmt.Sprintf("%s:%s:%s", cfg.Prefix, c.RealIP(), c.Path())
			res, err := bucketScript.Run(c.Request().Context(), rdb,
				[]string{key},
				time.Now().UnixMilli(), cfg.Capacity, cfg.RefillTokens, intervalMS, ttlSec).Slice()
			if err != nil || len(res) != 2 {
				return next(c)
			}
			allowed, _ := res[0].(int64)
			remaining, _ := res[1].(int64)
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			if allowed != 1 {
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
			}
			return next(c)
		}
	}
}
