// Package adapters provides the gorm-backed job catalog.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	appentity "jobboard/internal/feature/applications/domain/entity"
	"jobboard/internal/feature/jobs/domain/entity"
	"jobboard/internal/feature/jobs/domain/query"
	"jobboard/internal/feature/jobs/usecase"
	"jobboard/internal/shared/pagination"
)

const newestFirst = "posted_at DESC, id DESC"

type jobGorm struct {
	db *gorm.DB
}

var _ usecase.JobRepository = (*jobGorm)(nil)

// NewJobGorm creates the catalog store on top of db.
func NewJobGorm(db *gorm.DB) *jobGorm {
	return &jobGorm{db: db}
}

// Create inserts job without touching associations.
func (r *jobGorm) Create(ctx context.Context, job *entity.Job) error {
	if job == nil {
		return errors.New("job is nil")
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(job).Error
}

// FindByID returns usecase.ErrJobNotFound when the id does not resolve.
func (r *jobGorm) FindByID(ctx context.Context, id uint) (*entity.Job, error) {
	var job entity.Job
	if err := r.db.WithContext(ctx).First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

// Update writes the mutable columns. PostedByID and PostedAt are never written.
func (r *jobGorm) Update(ctx context.Context, job *entity.Job) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Job{ID: job.ID}).
		Select("title", "company", "location", "description", "requirements", "min_salary", "max_salary", "type").
		Updates(job)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrJobNotFound
	}
	return nil
}

// DeleteWithApplications deletes the job's applications first, then the job,
// atomically. The job row is locked up front so no application can be added
// between the two deletes.
func (r *jobGorm) DeleteWithApplications(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job entity.Job
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").Take(&job, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrJobNotFound
			}
			return err
		}
		if err := tx.Where("job_id = ?", id).Delete(&appentity.Application{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Job{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrJobNotFound
		}
		return nil
	})
}

// List applies filter, counts the matches and loads one page.
func (r *jobGorm) List(ctx context.Context, filter query.Filter, page pagination.Page) ([]entity.Job, int64, error) {
	filtered := func() *gorm.DB {
		return applyFilter(r.db.WithContext(ctx).Model(&entity.Job{}), filter)
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	jobs := []entity.Job{}
	err := filtered().Order(newestFirst).Offset(page.Offset()).Limit(page.Size).Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// ListWithPoster loads one unfiltered page with the owner's id and name.
func (r *jobGorm) ListWithPoster(ctx context.Context, page pagination.Page) ([]entity.Job, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Job{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	jobs := []entity.Job{}
	err := r.db.WithContext(ctx).
		Preload("Poster", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name") }).
		Order(newestFirst).Offset(page.Offset()).Limit(page.Size).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// ListByOwner returns all jobs of ownerID, newest first.
func (r *jobGorm) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Job, error) {
	jobs := []entity.Job{}
	err := r.db.WithContext(ctx).Where("posted_by_id = ?", ownerID).Order(newestFirst).Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// Count returns the number of jobs.
func (r *jobGorm) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.Job{}).Count(&n).Error
	return n, err
}

// applyFilter translates a query.Filter into WHERE clauses combined with AND.
func applyFilter(db *gorm.DB, f query.Filter) *gorm.DB {
	if f.Search != "" {
		p := query.LikePattern(f.Search)
		db = db.Where(
			`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(requirements) LIKE ? ESCAPE '\' OR LOWER(company) LIKE ? ESCAPE '\')`,
			p, p, p, p,
		)
	}
	if f.Location != "" {
		db = db.Where(`LOWER(location) LIKE ? ESCAPE '\'`, query.LikePattern(f.Location))
	}
	if f.Type != "" {
		db = db.Where("type = ?", f.Type)
	}
	if f.MinSalary != nil {
		db = db.Where("max_salary >= ?", *f.MinSalary)
	}
	if f.MaxSalary != nil {
		db = db.Where("min_salary <= ?", *f.MaxSalary)
	}
	return db
}
