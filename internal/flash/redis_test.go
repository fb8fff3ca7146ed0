package flash

import (
	"context"
	"testing"
	"time"

	"url-shortener-console/internal/view"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// unreachableStore points at a port nothing listens on
func unreachableStore() *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	return NewRedisStore(client, time.Minute)
}

func TestRedisStore_ErrorsAreWrapped(t *testing.T) {
	s := unreachableStore()
	ctx := context.Background()

	err := s.Push(ctx, "sid", view.Notice{Message: "hello"})
	assert.ErrorContains(t, err, "redis push error")

	_, err = s.Pop(ctx, "sid")
	assert.ErrorContains(t, err, "redis pop error")
}

func TestRedisStore_PushNothingSkipsRedis(t *testing.T) {
	assert.NoError(t, unreachableStore().Push(context.Background(), "sid"))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "flash:abc", key("abc"))
}
