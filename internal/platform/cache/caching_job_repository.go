// Package cache provides Redis-backed decorators for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"jobboard/internal/feature/jobs/domain/entity"
	"jobboard/internal/feature/jobs/domain/query"
	"jobboard/internal/feature/jobs/usecase"
	"jobboard/internal/shared/pagination"
)

// CachingJobRepository decorates a JobRepository with a Redis cache for
// filtered listings. Listing keys carry a generation counter that every write
// bumps, so a listing read before a write is never served after it.
type CachingJobRepository struct {
	usecase.JobRepository

	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.JobRepository = (*CachingJobRepository)(nil)

// listEntry is the cached form of one List result.
type listEntry struct {
	Jobs  []entity.Job `json:"jobs"`
	Total int64        `json:"total"`
}

// NewCachingJobRepository wraps inner. A ttl of 0 means one minute and an
// empty namespace means "jobs". A nil rdb disables caching.
func NewCachingJobRepository(rdb *redis.Client, ttl time.Duration, inner usecase.JobRepository, namespace string) *CachingJobRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "jobs"
	}
	return &CachingJobRepository{JobRepository: inner, rdb: rdb, ttl: ttl, namespace: namespace}
}

// List serves a listing from cache, falling back to the inner repository.
func (c *CachingJobRepository) List(ctx context.Context, filter query.Filter, page pagination.Page) ([]entity.Job, int64, error) {
	if c.rdb == nil {
		return c.JobRepository.List(ctx, filter, page)
	}

	gen, err := c.generation(ctx)
	if err != nil {
		return c.JobRepository.List(ctx, filter, page)
	}
	key := c.listKey(gen, filter, page)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var e listEntry
		if err := json.Unmarshal(b, &e); err == nil {
			return e.Jobs, e.Total, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	jobs, total, err := c.JobRepository.List(ctx, filter, page)
	if err != nil {
		return nil, 0, err
	}
	if b, err := json.Marshal(listEntry{Jobs: jobs, Total: total}); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return jobs, total, nil
}

func (c *CachingJobRepository) Create(ctx context.Context, job *entity.Job) error {
	if err := c.JobRepository.Create(ctx, job); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachingJobRepository) Update(ctx context.Context, job *entity.Job) error {
	if err := c.JobRepository.Update(ctx, job); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachingJobRepository) DeleteWithApplications(ctx context.Context, id uint) error {
	if err := c.JobRepository.DeleteWithApplications(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// invalidate moves listings to a new generation, then drops the old entries.
// If the bump fails, stale entries live until their ttl.
func (c *CachingJobRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Incr(ctx, c.genKey()).Err()
	_ = c.deleteByPattern(ctx, c.namespace+":list:*")
}

func (c *CachingJobRepository) genKey() string { return c.namespace + ":gen" }

// generation is the current listing generation, 0 before the first write.
func (c *CachingJobRepository) generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, c.genKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// listKey encodes the generation, every filter condition and the page.
// url.Values sorts keys, so equal queries share a key.
func (c *CachingJobRepository) listKey(gen int64, f query.Filter, p pagination.Page) string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(p.Number))
	v.Set("limit", strconv.Itoa(p.Size))
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Location != "" {
		v.Set("location", f.Location)
	}
	if f.Type != "" {
		v.Set("type", string(f.Type))
	}
	if f.MinSalary != nil {
		v.Set("minSalary", strconv.FormatFloat(*f.MinSalary, 'f', -1, 64))
	}
	if f.MaxSalary != nil {
		v.Set("maxSalary", strconv.FormatFloat(*f.MaxSalary, 'f', -1, 64))
	}
	return c.namespace + ":list:" + strconv.FormatInt(gen, 10) + ":" + v.Encode()
}

// deleteByPattern deletes all keys matching pattern using SCAN.
func (c *CachingJobRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			return nil
		}
	}
}
