package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// RunLedger decides whether this instance owns the current run of a job.
// With several instances sharing one ledger, each interval fires exactly once.
type RunLedger interface {
	// TryAcquire claims the run slot for jobName for roughly one interval.
	// Returns true if this caller owns the run, false if another instance
	// already claimed it.
	TryAcquire(ctx context.Context, jobName string, interval time.Duration) (bool, error)
	Close() error
}

// RedisRunLedger implements RunLedger on Redis. The claim is a SETNX with a
// TTL slightly shorter than the interval so clock drift between instances
// cannot permanently starve a job.
type RedisRunLedger struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisRunLedger connects to Redis and verifies the connection
func NewRedisRunLedger(cfg config.RedisConfig) (*RedisRunLedger, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisRunLedger{
		client:    client,
		keyPrefix: "scheduler:run:",
	}, nil
}

// NewRedisRunLedgerWithClient creates a ledger with an existing Redis client
func NewRedisRunLedgerWithClient(client *redis.Client, keyPrefix string) *RedisRunLedger {
	if keyPrefix == "" {
		keyPrefix = "scheduler:run:"
	}
	return &RedisRunLedger{client: client, keyPrefix: keyPrefix}
}

// TryAcquire implements RunLedger using an atomic SETNX with TTL
func (l *RedisRunLedger) TryAcquire(ctx context.Context, jobName string, interval time.Duration) (bool, error) {
	key := l.keyPrefix + jobName

	acquired, err := l.client.SetNX(ctx, key, "1", claimTTL(interval)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim run slot for %s: %w", jobName, err)
	}
	return acquired, nil
}

// Close closes the Redis client
func (l *RedisRunLedger) Close() error {
	return l.client.Close()
}

// LocalRunLedger is an in-process RunLedger used when Redis is unavailable.
// It only deduplicates runs within a single instance.
type LocalRunLedger struct {
	mu     sync.Mutex
	claims map[string]time.Time
}

// NewLocalRunLedger creates an in-process run ledger
func NewLocalRunLedger() *LocalRunLedger {
	return &LocalRunLedger{claims: make(map[string]time.Time)}
}

// TryAcquire implements RunLedger
func (l *LocalRunLedger) TryAcquire(_ context.Context, jobName string, interval time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if expiry, ok := l.claims[jobName]; ok && now.Before(expiry) {
		return false, nil
	}
	l.claims[jobName] = now.Add(claimTTL(interval))
	return true, nil
}

// Close implements RunLedger
func (l *LocalRunLedger) Close() error {
	return nil
}

// claimTTL shaves a fraction off the interval so the next tick is never
// blocked by its own claim.
func claimTTL(interval time.Duration) time.Duration {
	ttl := interval - interval/10
	if ttl <= 0 {
		ttl = interval
	}
	return ttl
}

var (
	_ RunLedger = (*RedisRunLedger)(nil)
	_ RunLedger = (*LocalRunLedger)(nil)
)
