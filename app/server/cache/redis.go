package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"socialmedia/app/server/metrics"
	shared "socialmedia/app/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var errStaleFeed = errors.New("feed generation changed")

type RedisFeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("error connecting to redis at %s: %v", addr, err)
	}

	return client, nil
}

func NewRedisFeedCache(client *redis.Client, ttl time.Duration) *RedisFeedCache {
	return &RedisFeedCache{client: client, ttl: ttl}
}

func observe(operation string, start time.Time) {
	metrics.FeedCacheDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (c *RedisFeedCache) Get(ctx context.Context, sorting shared.PostSorting) ([]*shared.PostWithLikes, bool) {
	defer observe("get", time.Now())

	cached, err := c.client.Get(ctx, FeedKey(sorting)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zap.L().Warn("feed cache get failed", zap.String("sorting", string(sorting)), zap.Error(err))
		}
		return nil, false
	}

	var posts []*shared.PostWithLikes
	if err := json.Unmarshal([]byte(cached), &posts); err != nil {
		zap.L().Warn("feed cache entry is corrupt", zap.String("sorting", string(sorting)), zap.Error(err))
		return nil, false
	}

	zap.L().Debug("feed cache hit", zap.String("sorting", string(sorting)))
	return posts, true
}

// Generation returns the current feed generation. Errors read as -1, which
// never matches, so Set is skipped while redis is unhealthy.
func (c *RedisFeedCache) Generation(ctx context.Context) int64 {
	gen, err := c.client.Get(ctx, GenerationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0
		}
		zap.L().Warn("feed cache generation read failed", zap.Error(err))
		return -1
	}
	return gen
}

// Set stores posts only if the generation is still the one read before the
// store query. The check and the write run under WATCH, so an Invalidate in
// between aborts the transaction.
func (c *RedisFeedCache) Set(ctx context.Context, sorting shared.PostSorting, generation int64, posts []*shared.PostWithLikes) {
	defer observe("set", time.Now())

	if generation < 0 {
		return
	}

	data, err := json.Marshal(posts)
	if err != nil {
		zap.L().Warn("error encoding feed for cache", zap.Error(err))
		return
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, GenerationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return errStaleFeed
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, FeedKey(sorting), data, c.ttl)
			return nil
		})
		return err
	}, GenerationKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleFeed), errors.Is(err, redis.TxFailedErr):
		zap.L().Debug("skipped stale feed cache write", zap.String("sorting", string(sorting)))
	default:
		zap.L().Warn("feed cache set failed", zap.String("sorting", string(sorting)), zap.Error(err))
	}
}

func (c *RedisFeedCache) Invalidate(ctx context.Context) {
	defer observe("invalidate", time.Now())

	keys := make([]string, 0, len(shared.PostSortings))
	for _, sorting := range shared.PostSortings {
		keys = append(keys, FeedKey(sorting))
	}

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, GenerationKey)
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		zap.L().Warn("feed cache invalidate failed", zap.Error(err))
	}
}

func (c *RedisFeedCache) Close() error {
	return c.client.Close()
}
