package flash

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"url-shortener-console/internal/view"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps notices in a Redis list per session so several console
// instances behind a load balancer see the same flashes
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func key(sid string) string {
	return fmt.Sprintf("flash:%s", sid)
}

func (s *RedisStore) Push(ctx context.Context, sid string, notices ...view.Notice) error {
	if len(notices) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(notices))
	for _, n := range notices {
		data, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("failed to marshal notice: %w", err)
		}
		values = append(values, data)
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key(sid), values...)
		pipe.Expire(ctx, key(sid), s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis push error: %w", err)
	}
	return nil
}

func (s *RedisStore) Pop(ctx context.Context, sid string) ([]view.Notice, error) {
	var lrange *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		lrange = pipe.LRange(ctx, key(sid), 0, -1)
		pipe.Del(ctx, key(sid))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis pop error: %w", err)
	}

	raw := lrange.Val()
	if len(raw) == 0 {
		return nil, nil
	}

	notices := make([]view.Notice, 0, len(raw))
	for _, item := range raw {
		var n view.Notice
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			return nil, fmt.Errorf("failed to unmarshal notice: %w", err)
		}
		notices = append(notices, n)
	}
	return notices, nil
}

// InitRedis creates a Redis client and checks the connection
func InitRedis(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,

		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}
