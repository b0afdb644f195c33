package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix    = "user:%s"
	ArticleKeyPrefix = "article:%s"
)

const (
	UserTTL    = 5 * time.Minute
	ArticleTTL = 10 * time.Minute
)

func UserKey(userID string) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ArticleKey(articleID string) string {
	return fmt.Sprintf(ArticleKeyPrefix, articleID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID string) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateArticle(ctx context.Context, articleID string) {
	Invalidate(ctx, ArticleKey(articleID))
}
