package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ishala/illegal-waste-reporter-BE/controllers"
	"github.com/ishala/illegal-waste-reporter-BE/ratelimit"
)

// RateLimit throttles by client IP within scope. A nil limiter disables it.
func RateLimit(limiter ratelimit.Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		if !limiter.Allow(scope + ":" + c.ClientIP()) {
			controllers.RespondError(c, controllers.NewHTTPError(http.StatusTooManyRequests, controllers.CodeRateLimited, "Rate limit exceeded"))
			return
		}
		c.Next()
	}
}
