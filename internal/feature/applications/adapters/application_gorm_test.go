package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobboard/internal/feature/applications/domain/entity"
	"jobboard/internal/feature/applications/usecase"
	identityentity "jobboard/internal/feature/identity/domain/entity"
	jobentity "jobboard/internal/feature/jobs/domain/entity"
	platformdb "jobboard/internal/platform/db"
	"jobboard/internal/shared/pagination"
)

var baseTime = time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := platformdb.OpenSQLite(":memory:")
	require.NoError(t, err, "failed to initialize test database")
	require.NoError(t, platformdb.Migrate(db), "failed to migrate tables")
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *identityentity.User {
	t.Helper()
	u := &identityentity.User{Name: "Seeker " + email, Email: email, Password: "hash", Role: identityentity.RoleJobSeeker, ResumeURL: "https://cdn/" + email}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedJob(t *testing.T, db *gorm.DB, title string) *jobentity.Job {
	t.Helper()
	j := &jobentity.Job{Title: title, Company: "Acme", Location: "Remote", Description: "d", Requirements: "r",
		Type: jobentity.TypeFullTime, PostedByID: 99, PostedAt: baseTime}
	require.NoError(t, db.Omit("Poster").Create(j).Error)
	return j
}

func apply(t *testing.T, repo *applicationGorm, seeker, job uint, minute int) *entity.Application {
	t.Helper()
	app := &entity.Application{JobSeekerID: seeker, JobID: job, Status: entity.StatusPending,
		AppliedAt: baseTime.Add(time.Duration(minute) * time.Minute)}
	require.NoError(t, repo.Create(context.Background(), app))
	return app
}

func TestApplicationGorm_CreateRejectsDuplicatePair(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationGorm(db)
	ctx := context.Background()

	seeker := seedUser(t, db, "s@example.com")
	job := seedJob(t, db, "Go Dev")
	other := seedJob(t, db, "Rust Dev")

	first := apply(t, repo, seeker.ID, job.ID, 0)
	assert.NotZero(t, first.ID)

	err := repo.Create(ctx, &entity.Application{JobSeekerID: seeker.ID, JobID: job.ID, Status: entity.StatusPending, AppliedAt: baseTime})
	assert.ErrorIs(t, err, usecase.ErrAlreadyApplied)

	// same seeker, other job is fine
	apply(t, repo, seeker.ID, other.ID, 1)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	assert.Error(t, repo.Create(ctx, nil))
}

func TestApplicationGorm_CreateRequiresLiveJob(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationGorm(db)
	ctx := context.Background()

	seeker := seedUser(t, db, "s@example.com")
	job := seedJob(t, db, "Go Dev")
	require.NoError(t, db.Delete(&jobentity.Job{}, job.ID).Error)

	err := repo.Create(ctx, &entity.Application{JobSeekerID: seeker.ID, JobID: job.ID, Status: entity.StatusPending, AppliedAt: baseTime})
	assert.ErrorIs(t, err, usecase.ErrJobNotFound)
	err = repo.Create(ctx, &entity.Application{JobSeekerID: seeker.ID, JobID: 12345, Status: entity.StatusPending, AppliedAt: baseTime})
	assert.ErrorIs(t, err, usecase.ErrJobNotFound)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "no orphaned application is stored")
}

func TestApplicationGorm_FindAndUpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationGorm(db)
	ctx := context.Background()

	app := apply(t, repo, seedUser(t, db, "a@example.com").ID, seedJob(t, db, "Go").ID, 0)

	found, err := repo.FindByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, found.Status)

	updated, err := repo.UpdateStatus(ctx, app.ID, entity.StatusInterviewed)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInterviewed, updated.Status)

	// any transition is allowed, including back to Pending
	updated, err = repo.UpdateStatus(ctx, app.ID, entity.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, updated.Status)

	_, err = repo.FindByID(ctx, 404)
	assert.ErrorIs(t, err, usecase.ErrApplicationNotFound)
	_, err = repo.UpdateStatus(ctx, 404, entity.StatusHired)
	assert.ErrorIs(t, err, usecase.ErrApplicationNotFound)
}

func TestApplicationGorm_ListBySeeker(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationGorm(db)
	ctx := context.Background()

	seeker := seedUser(t, db, "s@example.com")
	other := seedUser(t, db, "o@example.com")
	for i := 0; i < 12; i++ {
		apply(t, repo, seeker.ID, seedJob(t, db, "Job").ID, i)
	}
	apply(t, repo, other.ID, seedJob(t, db, "Other").ID, 100)

	apps, total, err := repo.ListBySeeker(ctx, seeker.ID, pagination.Page{Number: 1, Size: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 12, total)
	require.Len(t, apps, 10)
	assert.True(t, apps[0].AppliedAt.After(apps[1].AppliedAt), "newest first")
	require.NotNil(t, apps[0].Job)
	assert.Equal(t, "Job", apps[0].Job.Title)

	apps, _, err = repo.ListBySeeker(ctx, seeker.ID, pagination.Page{Number: 2, Size: 10})
	require.NoError(t, err)
	assert.Len(t, apps, 2)
}

func TestApplicationGorm_ListByJobAndApplicantIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationGorm(db)
	ctx := context.Background()

	job := seedJob(t, db, "Go")
	empty := seedJob(t, db, "Nobody")
	late := seedUser(t, db, "late@example.com")
	early := seedUser(t, db, "early@example.com")
	apply(t, repo, late.ID, job.ID, 10)
	apply(t, repo, early.ID, job.ID, 1)

	apps, err := repo.ListByJob(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, early.ID, apps[0].JobSeekerID, "oldest first")
	require.NotNil(t, apps[0].JobSeeker)
	assert.Equal(t, "early@example.com", apps[0].JobSeeker.Email)
	assert.Equal(t, "https://cdn/early@example.com", apps[0].JobSeeker.ResumeURL)
	assert.Empty(t, apps[0].JobSeeker.Password, "password is never loaded")

	ids, err := repo.ApplicantIDs(ctx, []uint{job.ID, empty.ID})
	require.NoError(t, err)
	assert.Equal(t, []uint{early.ID, late.ID}, ids[job.ID])
	_, ok := ids[empty.ID]
	assert.False(t, ok)

	ids, err = repo.ApplicantIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
