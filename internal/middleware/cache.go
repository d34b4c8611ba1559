package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/rvillanueva/resort-backoffice/internal/config"
)

// bodyRecorder duplicates the response body into a buffer while forwarding
// it to the client, up to a size cap.
type bodyRecorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	limit  int
}

func (w *bodyRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	if w.limit <= 0 || w.buf.Len()+len(b) <= w.limit {
		w.buf.Write(b)
	} else {
		w.limit = -1 // over cap: stop recording, entry won't be stored
	}
	return w.ResponseWriter.Write(b)
}

// ResponseCache caches successful GET responses in Redis keyed by route and
// query string.  Only 200s are stored; anything else passes through.  A nil
// Redis client or disabled config turns the middleware into a no-op, so the
// server runs fine without Redis.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}

			sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
			key := fmt.Sprintf("%s:%x", cfg.Prefix, sum)
			ctx := c.Request().Context()

			if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.JSONBlob(http.StatusOK, body)
			}

			rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
			c.Response().Writer = rec
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			if rec.status == http.StatusOK && rec.limit >= 0 {
				_ = rdb.SetEx(context.Background(), key, rec.buf.Bytes(), ttl).Err()
			}
			return nil
		}
	}
}
