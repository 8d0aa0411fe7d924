package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"localgame-server/logging"
)

const maxTxAttempts = 10

// CatalogRedisClient stores ordered venue members as a sorted set plus one JSON blob per member.
type CatalogRedisClient struct {
	client *redis.Client
	ctx    context.Context
	logger *zap.Logger
}

// NewCatalogRedisClient wraps a go-redis client. Call Ping to check connectivity.
func NewCatalogRedisClient(ctx context.Context, client *redis.Client, logger *zap.Logger) *CatalogRedisClient {
	return &CatalogRedisClient{
		client: client,
		ctx:    ctx,
		logger: logging.Component(logger, "CatalogRedisClient"),
	}
}

// Set sets a key-value pair in Redis
func (r *CatalogRedisClient) Set(key, value string) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}

// Get retrieves the value for a given key from Redis
func (r *CatalogRedisClient) Get(key string) (string, error) {
	val, err := r.client.Get(r.ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return val, err
}

// watch runs fn under WATCH on keys and retries when another client wins the race.
func (r *CatalogRedisClient) watch(ctx context.Context, fn func(tx *redis.Tx) error, keys ...string) error {
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err := r.client.Watch(ctx, fn, keys...)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		r.logger.Debug("watched keys changed, retrying", zap.Strings("keys", keys), zap.Int("attempt", attempt))
	}
	return fmt.Errorf("%w: %v after %d attempts", ErrTxConflict, keys, maxTxAttempts)
}

// UpdateValue reads key, applies fn and writes the result with WATCH/MULTI so
// concurrent updates never overwrite each other.
func (r *CatalogRedisClient) UpdateValue(key string, fn UpdateFunc) (string, error) {
	var stored string
	err := r.watch(r.ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(r.ctx, key).Result()
		found := true
		if errors.Is(err, redis.Nil) {
			found = false
		} else if err != nil {
			return err
		}

		next, err := fn(current, found)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(r.ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(r.ctx, key, next, 0)
			return nil
		})
		if err == nil {
			stored = next
		}
		return err
	}, key)
	if err != nil {
		return "", fmt.Errorf("failed to update %s: %w", key, err)
	}
	return stored, nil
}

// ReplaceMembersWithJSON rewrites setKey and the data of its old and new members in one MULTI.
func (r *CatalogRedisClient) ReplaceMembersWithJSON(ctx context.Context, setKey string, members []SetMember) error {
	blobs := make([][]byte, len(members))
	for i, m := range members {
		jsonData, err := json.Marshal(m.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal JSON for %s: %w", m.Key, err)
		}
		blobs[i] = jsonData
	}

	err := r.watch(ctx, func(tx *redis.Tx) error {
		old, err := tx.ZRange(ctx, setKey, 0, -1).Result()
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if len(old) > 0 {
				pipe.Del(ctx, old...)
			}
			pipe.Del(ctx, setKey)
			if len(members) == 0 {
				return nil
			}
			scored := make([]*redis.Z, len(members))
			for i, m := range members {
				scored[i] = &redis.Z{Score: float64(i), Member: m.Key}
				pipe.Set(ctx, m.Key, blobs[i], 0)
			}
			pipe.ZAdd(ctx, setKey, scored...)
			return nil
		})
		return err
	}, setKey)
	if err != nil {
		return fmt.Errorf("failed to replace members of %s: %w", setKey, err)
	}

	r.logger.Debug("replaced members", zap.String("set", setKey), zap.Int("members", len(members)))
	return nil
}

// GetMembersInOrder returns the JSON data of every member of setKey, lowest score first.
// The set is watched so a concurrent replace cannot hand back a mix of two catalogs.
// Members whose blob is missing are skipped.
func (r *CatalogRedisClient) GetMembersInOrder(setKey string) ([]string, error) {
	var objects []string
	err := r.watch(r.ctx, func(tx *redis.Tx) error {
		objects = nil
		members, err := tx.ZRange(r.ctx, setKey, 0, -1).Result()
		if err != nil {
			return fmt.Errorf("failed to read members of %s: %w", setKey, err)
		}
		if len(members) == 0 {
			return nil
		}

		var values *redis.SliceCmd
		_, err = tx.TxPipelined(r.ctx, func(pipe redis.Pipeliner) error {
			values = pipe.MGet(r.ctx, members...)
			return nil
		})
		if err != nil {
			return err
		}

		objects = make([]string, 0, len(members))
		for i, val := range values.Val() {
			s, ok := val.(string)
			if !ok {
				r.logger.Warn("skipping member without data", zap.String("member", members[i]))
				continue
			}
			objects = append(objects, s)
		}
		return nil
	}, setKey)
	if err != nil {
		return nil, err
	}
	return objects, nil
}

func (r *CatalogRedisClient) GetContext() context.Context {
	return r.ctx
}

func (r *CatalogRedisClient) Ping() error {
	_, err := r.client.Ping(r.ctx).Result()
	return err
}

func (r *CatalogRedisClient) Keys(pattern string) ([]string, error) {
	return r.client.Keys(r.ctx, pattern).Result()
}

func (r *CatalogRedisClient) Del(key string) error {
	return r.client.Del(r.ctx, key).Err()
}
