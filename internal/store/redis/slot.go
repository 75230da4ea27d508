package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultMaxTxRetries bounds optimistic transaction retries when another
// writer touches the key between WATCH and EXEC.
const DefaultMaxTxRetries = 10

// Slot stores the card collection under a single Redis string key.
type Slot struct {
	client     *redis.Client
	key        string
	maxRetries int
}

// NewSlot creates a Redis-backed slot for key.
func NewSlot(client *redis.Client, key string) *Slot {
	return &Slot{
		client:     client,
		key:        key,
		maxRetries: DefaultMaxTxRetries,
	}
}

// Key returns the Redis key in use.
func (s *Slot) Key() string { return s.key }

// Read returns the stored payload or "" on a missing key.
func (s *Slot) Read(ctx context.Context) (string, error) {
	payload, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get %s: %w", s.key, err)
	}
	return payload, nil
}

// Update performs a WATCH/GET/MULTI/SET/EXEC cycle, retrying when the key
// changed under us. This gives other instances sharing the key the same
// whole-collection read-modify-write guarantee a single process has.
func (s *Slot) Update(ctx context.Context, fn func(string) (string, error)) error {
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, s.key).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("failed to get %s: %w", s.key, err)
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if next == "" {
				pipe.Del(ctx, s.key)
				return nil
			}
			pipe.Set(ctx, s.key, next, 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err := s.client.Watch(ctx, txf, s.key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("failed to update %s: too many concurrent writers after %d attempts", s.key, s.maxRetries)
}

// Delete removes the key.
func (s *Slot) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", s.key, err)
	}
	return nil
}

func (s *Slot) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Slot) Name() string { return "redis" }

// Close closes the underlying client.
func (s *Slot) Close() error {
	return s.client.Close()
}
