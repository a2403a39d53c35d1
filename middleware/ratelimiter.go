package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/sandeepvarma05/event-planner-backend/utils"
)

// RateLimiter returns a Gin middleware that limits requests per IP.
// Uses the shared Redis client when available so limits hold across
// replicas; falls back to an in-memory store otherwise.
func RateLimiter() gin.HandlerFunc {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  100,
	}

	var store limiter.Store
	if utils.RedisClient != nil {
		s, err := sredis.NewStoreWithOptions(utils.RedisClient, limiter.StoreOptions{
			Prefix: "ratelimit",
		})
		if err != nil {
			log.Printf("⚠️ Redis rate-limit store unavailable, using memory: %v", err)
			store = memory.NewStore()
		} else {
			store = s
		}
	} else {
		store = memory.NewStore()
	}

	instance := limiter.New(store, rate)
	return ginlimiter.NewMiddleware(instance)
}
