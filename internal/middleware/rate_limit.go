package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/deppfellow/jod-api/internal/config"
	"github.com/deppfellow/jod-api/internal/errs"
	"github.com/deppfellow/jod-api/internal/server"
)

const (
	rateLimitKeyPrefix = "jod-api:ratelimit:"
	redisStoreTimeout  = 100 * time.Millisecond
)

// RateLimitMiddleware limits requests per client IP.
//
// With Redis configured the count is shared by every replica (fixed window).
// Otherwise each process keeps its own token bucket in memory.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit returns the enforcing middleware, or a pass-through when rate
// limiting is disabled.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	cfg := r.server.Config.RateLimit
	if !cfg.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/status"
		},
		Store: r.store(cfg),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewBadRequestError("Could not identify client", false, nil, nil, nil)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			r.server.Logger.Warn().Str("client", identifier).Str("path", c.Path()).Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError(int(cfg.Window.Seconds()))
		},
	})
}

func (r *RateLimitMiddleware) store(cfg config.RateLimitConfig) middleware.RateLimiterStore {
	if r.server.Redis != nil {
		return NewRedisRateLimitStore(r.server.Redis, cfg.Requests, cfg.Window, r.server.Logger)
	}

	return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(cfg.Requests) / cfg.Window.Seconds()),
		Burst:     cfg.Requests,
		ExpiresIn: 3 * cfg.Window,
	})
}

// RecordRateLimitHit sends a RateLimitHit custom event to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}

// RedisRateLimitStore is a fixed-window counter kept in Redis.
type RedisRateLimitStore struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger *zerolog.Logger
	now    func() time.Time
}

var _ middleware.RateLimiterStore = (*RedisRateLimitStore)(nil)

func NewRedisRateLimitStore(client *redis.Client, limit int, window time.Duration, logger *zerolog.Logger) *RedisRateLimitStore {
	return &RedisRateLimitStore{
		client: client,
		limit:  limit,
		window: window,
		logger: logger,
		now:    time.Now,
	}
}

// Allow counts one request for identifier in the current window.
// It fails open: any Redis error lets the request through.
func (s *RedisRateLimitStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisStoreTimeout)
	defer cancel()

	key := s.key(identifier)

	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, s.window)
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("rate limit store unavailable, allowing request")
		return true, nil
	}

	return incr.Val() <= int64(s.limit), nil
}

func (s *RedisRateLimitStore) key(identifier string) string {
	bucket := s.now().UnixNano() / int64(s.window)
	return fmt.Sprintf("%s%s:%s", rateLimitKeyPrefix, identifier, strconv.FormatInt(bucket, 10))
}
