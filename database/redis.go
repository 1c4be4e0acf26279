package database

import (
	"context"
	"log"
	"splitshare-backend/config"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// ConnectRedis sets up the balance cache. The server runs fine without it,
// every cached read just falls through to postgres.
func ConnectRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr: config.AppConfig.RedisURL,
	})

	_, err := Redis.Ping(context.Background()).Result()
	if err != nil {
		log.Println("⚠️  Redis not available, running without cache:", err)
		Redis = nil
		return
	}

	log.Println("✅ Redis connected successfully")
}
