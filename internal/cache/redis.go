package cache

import (
	"log"

	"github.com/redis/go-redis/v9"
)

// NewRedis creates a Redis client when REDIS_ADDR is configured. A nil
// return means "no cache": callers fall through to the database, the same
// degrade-and-continue policy the push dispatcher uses.
func NewRedis(addr, password string) *redis.Client {
	if addr == "" {
		log.Println("REDIS_ADDR not set, directory cache disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	log.Printf("Redis client created (addr: %s)\n", addr)
	return rdb
}
