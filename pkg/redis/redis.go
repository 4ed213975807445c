package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var ctx = context.Background()

// Client wraps go-redis with a default TTL for application caching
type Client struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClient connects to the redis instance at addr. ttl applies to Set.
func NewClient(addr string, ttl time.Duration) *Client {
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})
	return &Client{client: client, ttl: ttl}
}

// Set stores a value under key with the default TTL
func (r *Client) Set(key string, value interface{}) error {
	return r.client.Set(ctx, key, value, r.ttl).Err()
}

// SetWithTTL stores a value under key with an explicit TTL
func (r *Client) SetWithTTL(key string, value interface{}, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Get returns the string value stored under key
func (r *Client) Get(key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

// Del removes key
func (r *Client) Del(key string) error {
	return r.client.Del(ctx, key).Err()
}

// Ping verifies connectivity
func (r *Client) Ping() error {
	return r.client.Ping(ctx).Err()
}
