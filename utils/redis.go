package utils

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis connects the shared Redis client. Redis backs the API rate
// limiter and the invite-code lookup cache; the app degrades gracefully
// when it is unavailable.
func InitRedis() error {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return err
	}

	RedisClient = client
	log.Println("✅ Redis connected:", addr)
	return nil
}

// CacheInviteCode stores a short invite code → member id mapping so the
// accept endpoint can resolve codes without a table scan.
func CacheInviteCode(ctx context.Context, code, memberID string, ttl time.Duration) {
	if RedisClient == nil {
		return
	}
	if err := RedisClient.Set(ctx, "invite_code:"+code, memberID, ttl).Err(); err != nil {
		log.Printf("⚠️ Failed to cache invite code: %v", err)
	}
}

// LookupInviteCode returns the cached member id for a code, or "" on miss.
func LookupInviteCode(ctx context.Context, code string) string {
	if RedisClient == nil {
		return ""
	}
	val, err := RedisClient.Get(ctx, "invite_code:"+code).Result()
	if err != nil {
		return ""
	}
	return val
}
