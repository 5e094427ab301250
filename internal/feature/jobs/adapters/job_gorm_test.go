package adapters

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appentity "jobboard/internal/feature/applications/domain/entity"
	identityentity "jobboard/internal/feature/identity/domain/entity"
	"jobboard/internal/feature/jobs/domain/entity"
	"jobboard/internal/feature/jobs/domain/query"
	"jobboard/internal/feature/jobs/usecase"
	platformdb "jobboard/internal/platform/db"
	"jobboard/internal/shared/pagination"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := platformdb.OpenSQLite(":memory:")
	require.NoError(t, err, "failed to initialize test database")
	require.NoError(t, platformdb.Migrate(db), "failed to migrate tables")
	return db
}

var baseTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func seedJob(t *testing.T, repo *jobGorm, owner uint, i int, mutate func(*entity.Job)) *entity.Job {
	t.Helper()
	job := &entity.Job{
		Title:        fmt.Sprintf("Job %d", i),
		Company:      "Acme",
		Location:     "Remote",
		Description:  "Build things",
		Requirements: "Go",
		Type:         entity.TypeFullTime,
		PostedByID:   owner,
		PostedAt:     baseTime.Add(time.Duration(i) * time.Minute),
	}
	if mutate != nil {
		mutate(job)
	}
	require.NoError(t, repo.Create(context.Background(), job))
	return job
}

func TestJobGorm_CreateFindUpdate(t *testing.T) {
	repo := NewJobGorm(setupTestDB(t))
	ctx := context.Background()

	job := seedJob(t, repo, 1, 0, func(j *entity.Job) { j.MinSalary = 50000; j.MaxSalary = 70000 })
	require.NotZero(t, job.ID)

	found, err := repo.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Job 0", found.Title)
	assert.Equal(t, 50000.0, found.MinSalary)
	assert.Equal(t, uint(1), found.PostedByID)

	found.Title = "Senior Job"
	found.MinSalary = 0
	found.PostedByID = 99 // must not be written
	require.NoError(t, repo.Update(ctx, found))

	reloaded, err := repo.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Senior Job", reloaded.Title)
	assert.Equal(t, 0.0, reloaded.MinSalary, "zero salary is written")
	assert.Equal(t, uint(1), reloaded.PostedByID, "owner is immutable")

	_, err = repo.FindByID(ctx, 12345)
	assert.ErrorIs(t, err, usecase.ErrJobNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &entity.Job{ID: 12345, Title: "x"}), usecase.ErrJobNotFound)
}

func TestJobGorm_DeleteWithApplications(t *testing.T) {
	db := setupTestDB(t)
	repo := NewJobGorm(db)
	ctx := context.Background()

	doomed := seedJob(t, repo, 1, 0, nil)
	kept := seedJob(t, repo, 1, 1, nil)
	for seeker := uint(10); seeker < 13; seeker++ {
		require.NoError(t, db.Create(&appentity.Application{JobSeekerID: seeker, JobID: doomed.ID, Status: appentity.StatusPending, AppliedAt: baseTime}).Error)
	}
	require.NoError(t, db.Create(&appentity.Application{JobSeekerID: 10, JobID: kept.ID, Status: appentity.StatusPending, AppliedAt: baseTime}).Error)

	require.NoError(t, repo.DeleteWithApplications(ctx, doomed.ID))

	_, err := repo.FindByID(ctx, doomed.ID)
	assert.ErrorIs(t, err, usecase.ErrJobNotFound)

	var remaining int64
	require.NoError(t, db.Model(&appentity.Application{}).Where("job_id = ?", doomed.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)
	require.NoError(t, db.Model(&appentity.Application{}).Where("job_id = ?", kept.ID).Count(&remaining).Error)
	assert.EqualValues(t, 1, remaining, "other jobs' applications survive")

	assert.ErrorIs(t, repo.DeleteWithApplications(ctx, doomed.ID), usecase.ErrJobNotFound)
}

func TestJobGorm_List_Pagination(t *testing.T) {
	repo := NewJobGorm(setupTestDB(t))
	ctx := context.Background()
	for i := 0; i < 20; i++ {
		seedJob(t, repo, 1, i, nil)
	}

	jobs, total, err := repo.List(ctx, query.Filter{}, pagination.Page{Number: 1, Size: 9})
	require.NoError(t, err)
	assert.EqualValues(t, 20, total)
	require.Len(t, jobs, 9)
	assert.Equal(t, "Job 19", jobs[0].Title, "newest first")
	assert.Equal(t, 3, pagination.TotalPages(total, 9))

	jobs, _, err = repo.List(ctx, query.Filter{}, pagination.Page{Number: 3, Size: 9})
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Job 0", jobs[1].Title)

	jobs, _, err = repo.List(ctx, query.Filter{}, pagination.Page{Number: 4, Size: 9})
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestJobGorm_List_Filters(t *testing.T) {
	repo := NewJobGorm(setupTestDB(t))
	ctx := context.Background()

	seedJob(t, repo, 1, 0, func(j *entity.Job) {
		j.Title = "Backend Engineer"
		j.Location = "Berlin, DE"
		j.MinSalary, j.MaxSalary = 50000, 70000
	})
	seedJob(t, repo, 1, 1, func(j *entity.Job) {
		j.Title = "Designer"
		j.Company = "GoPixel"
		j.Location = "Lisbon"
		j.Type = entity.TypeContract
		j.MinSalary, j.MaxSalary = 30000, 40000
	})
	seedJob(t, repo, 1, 2, func(j *entity.Job) {
		j.Title = "Intern"
		j.Description = "Learn 100% of the stack"
		j.Requirements = "curiosity"
		j.Type = entity.TypeInternship
	})

	f := func(v float64) *float64 { return &v }
	tests := []struct {
		name   string
		filter query.Filter
		want   []string
	}{
		{"no filter", query.Filter{}, []string{"Intern", "Designer", "Backend Engineer"}},
		{"search title case-insensitive", query.Filter{Search: "backend"}, []string{"Backend Engineer"}},
		{"search company", query.Filter{Search: "gopixel"}, []string{"Designer"}},
		{"search requirements", query.Filter{Search: "CURIOSITY"}, []string{"Intern"}},
		{"search matches several fields", query.Filter{Search: "go"}, []string{"Designer", "Backend Engineer"}},
		{"percent is literal", query.Filter{Search: "100%"}, []string{"Intern"}},
		{"underscore is literal", query.Filter{Search: "b_c"}, nil},
		{"location substring", query.Filter{Location: "berlin"}, []string{"Backend Engineer"}},
		{"type exact", query.Filter{Type: entity.TypeContract}, []string{"Designer"}},
		{"unknown type matches nothing", query.Filter{Type: "Gig"}, nil},
		{"salary overlap", query.Filter{MinSalary: f(60000)}, []string{"Backend Engineer"}},
		{"salary above range", query.Filter{MinSalary: f(80000)}, nil},
		{"max bound", query.Filter{MaxSalary: f(35000)}, []string{"Intern", "Designer"}},
		{"both bounds", query.Filter{MinSalary: f(35000), MaxSalary: f(45000)}, []string{"Designer"}},
		{"combined with AND", query.Filter{Search: "go", Type: entity.TypeFullTime}, []string{"Backend Engineer"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, total, err := repo.List(ctx, tt.filter, pagination.Page{Number: 1, Size: 10})
			require.NoError(t, err)

			var titles []string
			for _, j := range jobs {
				titles = append(titles, j.Title)
			}
			assert.Equal(t, tt.want, titles)
			assert.EqualValues(t, len(tt.want), total)
		})
	}
}

func TestJobGorm_ListWithPosterAndByOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewJobGorm(db)
	ctx := context.Background()

	owner := &identityentity.User{Name: "Acme HR", Email: "hr@acme.test", Password: "x", Role: identityentity.RoleEmployer}
	require.NoError(t, db.Create(owner).Error)

	seedJob(t, repo, owner.ID, 0, nil)
	seedJob(t, repo, owner.ID, 1, nil)
	seedJob(t, repo, 777, 2, nil) // owner was deleted

	jobs, total, err := repo.ListWithPoster(ctx, pagination.Page{Number: 1, Size: 9})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, jobs, 3)
	assert.Nil(t, jobs[0].Poster, "dangling owner reference")
	require.NotNil(t, jobs[1].Poster)
	assert.Equal(t, "Acme HR", jobs[1].Poster.Name)
	assert.Empty(t, jobs[1].Poster.Password, "only id and name are loaded")

	mine, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "Job 1", mine[0].Title)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}
