package initializers

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

func ConnectRedis(config *Config) {
	opt, err := redis.ParseURL(config.RedisUrl)
	if err != nil {
		log.Fatal("Invalid REDIS_URL:", err)
	}

	RedisClient = redis.NewClient(opt)

	if err := RedisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
}
