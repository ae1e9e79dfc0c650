package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kingrain94/tenant-items-api/internal/tenant"
	"github.com/kingrain94/tenant-items-api/pkg/logger"
)

const rateWindow = time.Minute

type RateLimitMiddleware struct {
	redis  redis.Cmdable
	logger *logger.Logger
}

func NewRateLimitMiddleware(redis redis.Cmdable, logger *logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		redis:  redis,
		logger: logger,
	}
}

// TenantRateLimit caps requests per tenant schema per minute.
func (m *RateLimitMiddleware) TenantRateLimit(limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		schema, _ := tenant.SchemaFromContext(c.Request.Context())
		m.limit(c, "rate_limit:tenant:"+schema, limit, "Rate limit exceeded")
	}
}

// GlobalRateLimit caps requests per client IP per minute.
func (m *RateLimitMiddleware) GlobalRateLimit(limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.limit(c, "rate_limit:global:"+c.ClientIP(), limit, "Global rate limit exceeded")
	}
}

// limit is a fixed-window counter. Redis failures let the request through.
func (m *RateLimitMiddleware) limit(c *gin.Context, key string, limit int, detail string) {
	current, err := m.hit(c.Request.Context(), key)
	if err != nil {
		m.logger.Warn("Redis error in rate limiting, allowing request", zap.String("key", key), zap.Error(err))
		c.Next()
		return
	}

	reset := strconv.FormatInt(time.Now().Add(rateWindow).Unix(), 10)
	remaining := limit - int(current)
	if remaining < 0 {
		remaining = 0
	}
	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Header("X-RateLimit-Reset", reset)

	if int(current) > limit {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"code":   http.StatusTooManyRequests,
			"detail": detail,
		})
		return
	}

	c.Next()
}

func (m *RateLimitMiddleware) hit(ctx context.Context, key string) (int64, error) {
	pipe := m.redis.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, rateWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("rate limit pipeline: %w", err)
	}
	return incr.Val(), nil
}
