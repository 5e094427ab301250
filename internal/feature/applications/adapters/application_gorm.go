// Package adapters provides the gorm-backed application ledger.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jobboard/internal/feature/applications/domain/entity"
	"jobboard/internal/feature/applications/usecase"
	jobentity "jobboard/internal/feature/jobs/domain/entity"
	jobusecase "jobboard/internal/feature/jobs/usecase"
	"jobboard/internal/platform/db"
	"jobboard/internal/shared/pagination"
)

type applicationGorm struct {
	db *gorm.DB
}

var (
	_ usecase.ApplicationRepository = (*applicationGorm)(nil)
	_ jobusecase.ApplicantIndex     = (*applicationGorm)(nil)
)

// NewApplicationGorm creates the ledger on top of db.
func NewApplicationGorm(db *gorm.DB) *applicationGorm {
	return &applicationGorm{db: db}
}

// Create inserts app while holding a share lock on its job, so a concurrent
// job deletion either waits for the insert and removes it with the job or
// wins first and makes Create return usecase.ErrJobNotFound. The
// (job_seeker_id, job_id) unique index turns a second application into
// usecase.ErrAlreadyApplied.
func (r *applicationGorm) Create(ctx context.Context, app *entity.Application) error {
	if app == nil {
		return errors.New("application is nil")
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job jobentity.Job
		if err := tx.Clauses(clause.Locking{Strength: "SHARE"}).Select("id").Take(&job, app.JobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrJobNotFound
			}
			return err
		}
		return tx.Omit(clause.Associations).Create(app).Error
	})
	if db.IsDuplicateKey(err) {
		return usecase.ErrAlreadyApplied
	}
	return err
}

// FindByID returns usecase.ErrApplicationNotFound when the id does not resolve.
func (r *applicationGorm) FindByID(ctx context.Context, id uint) (*entity.Application, error) {
	var app entity.Application
	if err := r.db.WithContext(ctx).First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

// ListBySeeker loads one page of a seeker's applications, newest first, with the job.
func (r *applicationGorm) ListBySeeker(ctx context.Context, seekerID uint, page pagination.Page) ([]entity.Application, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Application{}).Where("job_seeker_id = ?", seekerID).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	apps := []entity.Application{}
	err = r.db.WithContext(ctx).
		Preload("Job").
		Where("job_seeker_id = ?", seekerID).
		Order("applied_at DESC, id DESC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

// ListByJob loads every application of a job, oldest first, with the
// seeker's public fields. The password hash is never selected.
func (r *applicationGorm) ListByJob(ctx context.Context, jobID uint) ([]entity.Application, error) {
	apps := []entity.Application{}
	err := r.db.WithContext(ctx).
		Preload("JobSeeker", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "resume_url")
		}).
		Where("job_id = ?", jobID).
		Order("applied_at ASC, id ASC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// UpdateStatus sets the status of id and reloads it.
func (r *applicationGorm) UpdateStatus(ctx context.Context, id uint, status entity.Status) (*entity.Application, error) {
	res := r.db.WithContext(ctx).Model(&entity.Application{ID: id}).Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, usecase.ErrApplicationNotFound
	}
	return r.FindByID(ctx, id)
}

// ApplicantIDs maps each of jobIDs to its applicants' ids, oldest application first.
// Jobs without applications are absent from the map.
func (r *applicationGorm) ApplicantIDs(ctx context.Context, jobIDs []uint) (map[uint][]uint, error) {
	out := make(map[uint][]uint, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		JobID       uint
		JobSeekerID uint
	}
	err := r.db.WithContext(ctx).
		Model(&entity.Application{}).
		Select("job_id", "job_seeker_id").
		Where("job_id IN ?", jobIDs).
		Order("applied_at ASC, id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.JobID] = append(out[row.JobID], row.JobSeekerID)
	}
	return out, nil
}

// Count returns the number of applications.
func (r *applicationGorm) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.Application{}).Count(&n).Error
	return n, err
}
