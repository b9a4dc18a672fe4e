package cache

import (
	"context"
	"testing"
	"time"

	shared "socialmedia/app/shared"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedKey(t *testing.T) {
	assert.Equal(t, "feed:posts:most_likes", FeedKey(shared.PostSortingMostLikes))
	assert.Equal(t, "feed:posts:new", FeedKey(shared.PostSortingNew))
}

func TestNoop(t *testing.T) {
	var c FeedCache = Noop{}
	ctx := context.Background()
	assert.Equal(t, int64(0), c.Generation(ctx))
	c.Set(ctx, shared.PostSortingNew, 0, []*shared.PostWithLikes{{Likes: 1}})
	posts, ok := c.Get(ctx, shared.PostSortingNew)
	assert.False(t, ok)
	assert.Nil(t, posts)
	c.Invalidate(ctx)
	assert.NoError(t, c.Close())
}

func TestRedisUnavailableIsMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewRedisFeedCache(client, time.Second)
	defer c.Close()

	ctx := context.Background()
	gen := c.Generation(ctx)
	assert.Equal(t, int64(-1), gen)
	c.Set(ctx, shared.PostSortingOld, gen, []*shared.PostWithLikes{{Likes: 2}})
	_, ok := c.Get(ctx, shared.PostSortingOld)
	assert.False(t, ok)
	c.Invalidate(ctx)
}

func TestRedisFeedGeneration(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewRedisFeedCache(client, time.Minute)
	defer c.Close()

	ctx := context.Background()
	posts := []*shared.PostWithLikes{{Post: shared.Post{Id: 1, Body: "first"}, Likes: 2}}

	gen := c.Generation(ctx)
	assert.Equal(t, int64(0), gen)

	// a write landed after gen was read
	c.Invalidate(ctx)
	c.Set(ctx, shared.PostSortingNew, gen, posts)
	_, ok := c.Get(ctx, shared.PostSortingNew)
	assert.False(t, ok)
	assert.False(t, mr.Exists(FeedKey(shared.PostSortingNew)))

	gen = c.Generation(ctx)
	assert.Equal(t, int64(1), gen)
	c.Set(ctx, shared.PostSortingNew, gen, posts)

	cached, ok := c.Get(ctx, shared.PostSortingNew)
	require.True(t, ok)
	require.Len(t, cached, 1)
	assert.Equal(t, "first", cached[0].Body)
	assert.Equal(t, time.Minute, mr.TTL(FeedKey(shared.PostSortingNew)))

	c.Invalidate(ctx)
	_, ok = c.Get(ctx, shared.PostSortingNew)
	assert.False(t, ok)
	assert.Equal(t, int64(2), c.Generation(ctx))
}

func TestNewRedisClientFailsFast(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_, err := NewRedisClient(ctx, "127.0.0.1:1", "", 0)
	assert.Error(t, err)
}
