package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

var Rdb *redis.Client

var ErrDisabled = errors.New("cache disabled")

// Init connects the shared client. An empty addr leaves the cache
// disabled; callers degrade to in-memory behaviour.
func Init(addr string) {
	if addr == "" {
		return
	}
	Rdb = redis.NewClient(&redis.Options{
		Addr: addr,
	})
}

func Enabled() bool {
	return Rdb != nil
}

func Set(key string, value string) error {
	if Rdb == nil {
		return ErrDisabled
	}
	return Rdb.Set(context.Background(), key, value, 0).Err()
}

func Get(key string) (string, error) {
	if Rdb == nil {
		return "", ErrDisabled
	}
	return Rdb.Get(context.Background(), key).Result()
}
