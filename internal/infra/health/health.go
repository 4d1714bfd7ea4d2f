package health

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Checker reports whether the service's backing stores are reachable.
type Checker struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewChecker builds a checker. rdb may be nil when no cache is configured.
func NewChecker(db *gorm.DB, rdb *redis.Client) *Checker {
	return &Checker{db: db, redis: rdb}
}

func (c *Checker) Check(ctx context.Context) error {
	if err := c.db.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if c.redis != nil {
		if err := c.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}
