package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix = "user:%d"
	BlogKeyPrefix = "blog:%d"
	BlogListKey   = "blogs:recent"
)

const (
	UserTTL     = 5 * time.Minute
	BlogTTL     = 30 * time.Minute
	BlogListTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func BlogKey(blogID uint) string {
	return fmt.Sprintf(BlogKeyPrefix, blogID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateBlog(ctx context.Context, blogID uint) {
	Invalidate(ctx, BlogKey(blogID))
	Invalidate(ctx, BlogListKey)
}

func InvalidateBlogList(ctx context.Context) {
	Invalidate(ctx, BlogListKey)
}
