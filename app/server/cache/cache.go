package cache

import (
	"context"

	shared "socialmedia/app/shared"
)

// FeedCache holds serialized post lists per sorting. It is best-effort:
// failures are logged and reported as misses.
//
// Readers take Generation before querying the store and pass it to Set.
// Invalidate bumps the generation, so a list read before a write is never
// stored after that write's invalidation.
type FeedCache interface {
	Get(ctx context.Context, sorting shared.PostSorting) ([]*shared.PostWithLikes, bool)
	Generation(ctx context.Context) int64
	Set(ctx context.Context, sorting shared.PostSorting, generation int64, posts []*shared.PostWithLikes)
	Invalidate(ctx context.Context)
	Close() error
}

const GenerationKey = "feed:posts:gen"

func FeedKey(sorting shared.PostSorting) string {
	return "feed:posts:" + string(sorting)
}

type Noop struct{}

func (Noop) Get(ctx context.Context, sorting shared.PostSorting) ([]*shared.PostWithLikes, bool) {
	return nil, false
}
func (Noop) Generation(ctx context.Context) int64 { return 0 }
func (Noop) Set(ctx context.Context, sorting shared.PostSorting, generation int64, posts []*shared.PostWithLikes) {
}
func (Noop) Invalidate(ctx context.Context) {}
func (Noop) Close() error                   { return nil }
