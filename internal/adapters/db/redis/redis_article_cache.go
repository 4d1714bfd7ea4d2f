package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/model"
	"github.com/redis/go-redis/v9"
)

const articleKeyPrefix = "article:"

// cachedArticle is the stored form. The author's password hash and email never
// leave the database.
type cachedArticle struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Category       string    `json:"category"`
	CreatedAt      time.Time `json:"created_at"`
	AuthorID       int64     `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
}

type RedisArticleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisArticleCache(client *redis.Client, ttl time.Duration) *RedisArticleCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisArticleCache{client: client, ttl: ttl}
}

func articleKey(id int64) string {
	return articleKeyPrefix + strconv.FormatInt(id, 10)
}

func (r *RedisArticleCache) Get(ctx context.Context, id int64) (model.Article, bool, error) {
	raw, err := r.client.Get(ctx, articleKey(id)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return model.Article{}, false, nil
	case err != nil:
		return model.Article{}, false, err
	}

	var c cachedArticle
	if err := json.Unmarshal(raw, &c); err != nil {
		// unreadable entry, drop it so the next read repopulates
		_ = r.client.Del(ctx, articleKey(id)).Err()
		return model.Article{}, false, err
	}

	return model.Article{
		ID:        c.ID,
		Title:     c.Title,
		Content:   c.Content,
		Category:  c.Category,
		CreatedAt: c.CreatedAt,
		AuthorID:  c.AuthorID,
		Author:    model.User{ID: c.AuthorID, Username: c.AuthorUsername},
	}, true, nil
}

func (r *RedisArticleCache) Set(ctx context.Context, a model.Article) error {
	raw, err := json.Marshal(cachedArticle{
		ID:             a.ID,
		Title:          a.Title,
		Content:        a.Content,
		Category:       a.Category,
		CreatedAt:      a.CreatedAt,
		AuthorID:       a.AuthorID,
		AuthorUsername: a.Author.Username,
	})
	if err != nil {
		return err
	}
	return r.client.Set(ctx, articleKey(a.ID), raw, r.ttl).Err()
}

func (r *RedisArticleCache) Invalidate(ctx context.Context, id int64) error {
	return r.client.Del(ctx, articleKey(id)).Err()
}

// NopArticleCache is used when no Redis address is configured.
type NopArticleCache struct{}

func (NopArticleCache) Get(context.Context, int64) (model.Article, bool, error) {
	return model.Article{}, false, nil
}

func (NopArticleCache) Set(context.Context, model.Article) error { return nil }

func (NopArticleCache) Invalidate(context.Context, int64) error { return nil }
