package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisMock *Redis

// Redis is a shared miniredis server with a client connected to it.
type Redis struct {
	Server *miniredis.Miniredis
	Client *redis.Client
}

// NewRedis starts the shared miniredis server once.
func NewRedis() *Redis {
	redisOnce.Do(func() {
		redisMock = openRedis()
	})
	return redisMock
}

func openRedis() *Redis {
	server, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	return &Redis{
		Server: server,
		Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
	}
}

// URL returns a redis:// URL pointing at the mock server.
func (r *Redis) URL() string {
	return "redis://" + r.Server.Addr()
}

// ClearRedis removes every key from the mock server.
func (r *Redis) ClearRedis() error {
	return r.Client.FlushAll(context.TODO()).Err()
}
