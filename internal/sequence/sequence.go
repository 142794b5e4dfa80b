// Package sequence provides the monotonic operation-number counter shared by
// every transaction of this account type.
package sequence

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// TransactionSequence is the counter name used to stamp operation numbers.
const TransactionSequence = "TransactionSequences"

// Generator produces the next value of a named monotonic counter.
type Generator interface {
	Next(ctx context.Context, counter string) (int64, error)
}

// RedisGenerator implements Generator on a Redis INCR per counter name.
// INCR is atomic, so concurrent callers always observe distinct, strictly
// increasing values.
type RedisGenerator struct {
	client *redis.Client
}

func NewRedisGenerator(client *redis.Client) *RedisGenerator {
	return &RedisGenerator{client: client}
}

func (g *RedisGenerator) Next(ctx context.Context, counter string) (int64, error) {
	next, err := g.client.Incr(ctx, "sequence:"+counter).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence %s: %w", counter, err)
	}
	return next, nil
}
