package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	keyPrefix     = "orders:idempotency:"
	pendingMarker = "pending"
)

// IdempotencyStore maps a client-supplied key to the order it created.
// A key is claimed before the order is written, so only one caller inserts.
type IdempotencyStore interface {
	// Claim reserves key. claimed is false when another caller holds it;
	// id is then the stored order id, or 0 while that order is still being written.
	Claim(ctx context.Context, key string) (id uint64, claimed bool, err error)
	// Complete replaces the claim with the committed order id.
	Complete(ctx context.Context, key string, id uint64) error
	// Release drops a claim whose order was not stored.
	Release(ctx context.Context, key string) error
}

type Store struct {
	rdb      *redis.Client
	ttl      time.Duration
	claimTTL time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl, claimTTL: time.Minute}
}

func (s *Store) Claim(ctx context.Context, key string) (uint64, bool, error) {
	ok, err := s.rdb.SetNX(ctx, keyPrefix+key, pendingMarker, s.claimTTL).Result()
	if err != nil {
		return 0, false, err
	}
	if ok {
		return 0, true, nil
	}

	v, err := s.rdb.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		// claim expired or was released between SETNX and GET
		return s.Claim(ctx, key)
	}
	if err != nil {
		return 0, false, err
	}
	if v == pendingMarker {
		return 0, false, nil
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt idempotency value %q: %w", v, err)
	}
	return id, false, nil
}

func (s *Store) Complete(ctx context.Context, key string, id uint64) error {
	return s.rdb.Set(ctx, keyPrefix+key, strconv.FormatUint(id, 10), s.ttl).Err()
}

func (s *Store) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, keyPrefix+key).Err()
}

var _ IdempotencyStore = (*Store)(nil)
