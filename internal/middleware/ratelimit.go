package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimiter 每 IP 請求頻率限制，保護訂票熱路徑
func RateLimiter(limit int64, period time.Duration) gin.HandlerFunc {
	store := memory.NewStore()
	instance := limiter.New(store, limiter.Rate{
		Period: period,
		Limit:  limit,
	})
	return ginlimiter.NewMiddleware(instance)
}
