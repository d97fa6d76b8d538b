package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const (
	defaultLockTTL   = 10 * time.Second
	lockRetryBackoff = 25 * time.Millisecond
	lockRetryLimit   = 200
)

// Redis stores documents as plain string values under an optional prefix.
// Updates are serialised through a redislock lock and committed with
// MULTI/EXEC.
type Redis struct {
	client  *redis.Client
	locker  *redislock.Client
	prefix  string
	lockKey string
	lockTTL time.Duration
}

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{
		client:  client,
		locker:  redislock.New(client),
		prefix:  prefix,
		lockKey: "lock:" + prefix + "documents",
		lockTTL: defaultLockTTL,
	}
}

func (r *Redis) key(key string) string { return r.prefix + key }

// Get implements Reader.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage/redis: get %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements Writer.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("storage/redis: set %s: %w", key, err)
	}
	return nil
}

// Delete implements Writer.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("storage/redis: delete %s: %w", key, err)
	}
	return nil
}

// Update implements Store.
func (r *Redis) Update(ctx context.Context, fn func(context.Context, Tx) error) error {
	lock, err := r.locker.Obtain(ctx, r.lockKey, r.lockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(lockRetryBackoff), lockRetryLimit),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return ErrBusy
	}
	if err != nil {
		return fmt.Errorf("storage/redis: obtain lock: %w", err)
	}
	defer func() {
		_ = lock.Release(context.WithoutCancel(ctx))
	}()

	tx := &redisTx{store: r, staged: make(map[string][]byte)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if len(tx.staged) == 0 {
		return nil
	}
	keys := make([]string, 0, len(tx.staged))
	for key := range tx.staged {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			value := tx.staged[key]
			if value == nil {
				pipe.Del(ctx, r.key(key))
				continue
			}
			pipe.Set(ctx, r.key(key), value, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("storage/redis: commit: %w", err)
	}
	return nil
}

// Keys implements Store.
func (r *Redis) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, globEscaper.Replace(r.prefix)+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if key == r.lockKey || !strings.HasPrefix(key, r.prefix) {
			continue
		}
		keys = append(keys, strings.TrimPrefix(key, r.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("storage/redis: scan: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// globEscaper quotes the metacharacters of a SCAN MATCH pattern.
var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// Close releases the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}

type redisTx struct {
	store  *Redis
	staged map[string][]byte
}

func (tx *redisTx) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if value, ok := tx.staged[key]; ok {
		if value == nil {
			return nil, false, nil
		}
		return clone(value), true, nil
	}
	return tx.store.Get(ctx, key)
}

func (tx *redisTx) Set(_ context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	tx.staged[key] = clone(value)
	return nil
}

func (tx *redisTx) Delete(_ context.Context, key string) error {
	tx.staged[key] = nil
	return nil
}
