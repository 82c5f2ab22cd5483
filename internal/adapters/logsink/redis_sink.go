package logsink

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "departure-optimizer:search-log"

// RedisSink appends each written line to a Redis list with RPUSH.
type RedisSink struct {
	client  *redis.Client
	key     string
	timeout time.Duration
}

func NewRedisSink(url, key string) (*RedisSink, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if key == "" {
		key = DefaultRedisKey
	}

	return &RedisSink{
		client:  redis.NewClient(opts),
		key:     key,
		timeout: 2 * time.Second,
	}, nil
}

// Write pushes one list element per non-empty line in p.
func (s *RedisSink) Write(p []byte) (int, error) {
	lines := strings.Split(strings.TrimRight(string(p), "\n"), "\n")

	values := make([]any, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			values = append(values, l)
		}
	}
	if len(values) == 0 {
		return len(p), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.client.RPush(ctx, s.key, values...).Err(); err != nil {
		return 0, fmt.Errorf("redis rpush %q: %w", s.key, err)
	}
	return len(p), nil
}

func (s *RedisSink) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (s *RedisSink) Close() error {
	if err := s.client.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
		return err
	}
	return nil
}
