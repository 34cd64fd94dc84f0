package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arnoldongithub/atlantic-anvil/internal/domain"
	"github.com/arnoldongithub/atlantic-anvil/internal/ports"
)

const defaultRedisPrefix = "anvil:summarize"

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	Addr        string
	Password    string
	DB          int
	Prefix      string
	DialTimeout time.Duration
}

// RedisQueue keeps a set of enqueued article ids for dedup and a list of pending jobs.
type RedisQueue struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

var _ ports.SummaryQueue = (*RedisQueue)(nil)

// NewRedisQueue connects lazily; the first Enqueue surfaces connection errors.
func NewRedisQueue(opts RedisOptions) *RedisQueue {
	if opts.Prefix == "" {
		opts.Prefix = defaultRedisPrefix
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 5 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: opts.DialTimeout,
	})
	return &RedisQueue{client: client, prefix: opts.Prefix, now: time.Now}
}

// Enqueue registers articleID once. Repeats return domain.ErrDuplicate.
func (q *RedisQueue) Enqueue(ctx context.Context, articleID string) error {
	added, err := q.client.SAdd(ctx, q.enqueuedKey(), articleID).Result()
	if err != nil {
		return fmt.Errorf("redis sadd: %w", err)
	}
	if added == 0 {
		return domain.ErrDuplicate
	}

	payload, err := newJobPayload(articleID, q.now())
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}

	if err := q.client.LPush(ctx, q.pendingKey(), payload).Err(); err != nil {
		// Drop the marker so the dedup set only holds ids that reached the pending list.
		_ = q.client.SRem(ctx, q.enqueuedKey(), articleID).Err()
		return fmt.Errorf("redis lpush: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (q *RedisQueue) Close() error {
	return q.client.Close()
}

func (q *RedisQueue) enqueuedKey() string { return q.prefix + ":enqueued" }
func (q *RedisQueue) pendingKey() string  { return q.prefix + ":pending" }
