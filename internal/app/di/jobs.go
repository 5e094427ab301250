package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	jobadapters "jobboard/internal/feature/jobs/adapters"
	jobusecase "jobboard/internal/feature/jobs/usecase"
	"jobboard/internal/platform/cache"
)

// NewJobRepository returns the gorm catalog, wrapped in the Redis listing
// cache when a client is available.
func NewJobRepository(db *gorm.DB, rdb *redis.Client, listTTL time.Duration) jobusecase.JobRepository {
	repo := jobadapters.NewJobGorm(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingJobRepository(rdb, listTTL, repo, "jobs")
}
