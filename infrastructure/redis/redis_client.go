package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RedisClient struct {
	client *goredis.Client
}

func NewRedisClient(config RedisConfig) *RedisClient {
	return &RedisClient{
		client: goredis.NewClient(&goredis.Options{
			Addr:        config.Host + ":" + config.Port,
			Password:    config.Password,
			DB:          config.DB,
			DialTimeout: 5 * time.Second,
		}),
	}
}

// NewRedisClientFrom wraps an existing go-redis client.
func NewRedisClientFrom(client *goredis.Client) *RedisClient {
	return &RedisClient{client: client}
}

func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

func (r *RedisClient) Client() *goredis.Client {
	return r.client
}
