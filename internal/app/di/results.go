package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	challengeadapters "stock_frame/internal/feature/challenge/adapters"
	"stock_frame/internal/feature/challenge/usecase"
	"stock_frame/internal/platform/cache"
)

// NewResultRepository creates the ResultRepository used by the use cases.
// When Redis is available the gorm repository is wrapped with a read-through cache
// whose entries expire after ttl(now) at each write.
func NewResultRepository(rdb *redis.Client, db *gorm.DB, ttl cache.TTLFunc) usecase.ResultRepository {
	repo := challengeadapters.NewResultRepository(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingResultRepository(rdb, ttl, repo, "results")
}
