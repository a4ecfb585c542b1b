package middleware

import (
	"github.com/haierkeys/shared-notes-service/pkg/app"
	"github.com/haierkeys/shared-notes-service/pkg/code"
	"github.com/haierkeys/shared-notes-service/pkg/limiter"

	"github.com/gin-gonic/gin"
)

// RateLimiter creates the rate limiting middleware (supports dependency injection).
// It is the first gate in the pipeline, evaluated before authentication.
// RateLimiter 创建限流中间件（支持依赖注入），在认证之前执行
func RateLimiter(l *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		key := limiter.Key(app.GetRequestIP(c), c.Request.Method, path)
		limit := l.LimitFor(path)

		allowed, err := l.Allow(c.Request.Context(), key, limit)
		if err != nil {
			// counter store failure surfaces as an error, never a silent pass
			response := app.NewResponse(c)
			response.ToErrorResponse(code.ErrorServerInternal.WithDetails(err.Error()))
			c.Abort()
			return
		}
		if !allowed {
			response := app.NewResponse(c)
			response.ToErrorResponse(code.ErrorTooManyRequests.WithMsgf(
				"cannot hit this api route more than %d times per minute", limit))
			c.Abort()
			return
		}

		c.Next()
	}
}
