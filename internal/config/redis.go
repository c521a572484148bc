package config

// Redis fronts the revocation set so the per-request lookup usually
// costs one cache read instead of a database query. The cache is an
// optimization only: when the connection cannot be established at
// startup this constructor returns nil and every revocation lookup goes
// to MySQL instead.

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client from environment variables.
// REDIS_URL takes precedence when set (redis://[:password@]host:port/db);
// otherwise REDIS_HOST/REDIS_PORT, REDIS_PASSWORD and REDIS_DB are read
// individually. The returned client may be nil if no server is
// reachable.
func NewRedisClient() *redis.Client {
	var opts *redis.Options
	if url := os.Getenv("REDIS_URL"); url != "" {
		parsed, err := redis.ParseURL(url)
		if err != nil {
			return nil
		}
		opts = parsed
	} else {
		host := os.Getenv("REDIS_HOST")
		port := os.Getenv("REDIS_PORT")
		if host == "" || port == "" {
			return nil
		}
		dbNum := 0
		if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
			if n, err := strconv.Atoi(dbStr); err == nil {
				dbNum = n
			}
		}
		opts = &redis.Options{
			Addr:     host + ":" + port,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       dbNum,
		}
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
