package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard/internal/feature/applications/domain/entity"
	"jobboard/internal/feature/applications/usecase"
	jobentity "jobboard/internal/feature/jobs/domain/entity"
	"jobboard/internal/shared/authz"
	"jobboard/internal/shared/pagination"
)

type mockApplicationRepository struct {
	CreateFunc       func(ctx context.Context, app *entity.Application) error
	FindByIDFunc     func(ctx context.Context, id uint) (*entity.Application, error)
	ListBySeekerFunc func(ctx context.Context, seekerID uint, page pagination.Page) ([]entity.Application, int64, error)
	ListByJobFunc    func(ctx context.Context, jobID uint) ([]entity.Application, error)
	UpdateStatusFunc func(ctx context.Context, id uint, status entity.Status) (*entity.Application, error)
	ApplicantIDsFunc func(ctx context.Context, jobIDs []uint) (map[uint][]uint, error)
}

func (m *mockApplicationRepository) Create(ctx context.Context, app *entity.Application) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, app)
	}
	app.ID = 1
	return nil
}

func (m *mockApplicationRepository) FindByID(ctx context.Context, id uint) (*entity.Application, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, usecase.ErrApplicationNotFound
}

func (m *mockApplicationRepository) ListBySeeker(ctx context.Context, seekerID uint, page pagination.Page) ([]entity.Application, int64, error) {
	if m.ListBySeekerFunc != nil {
		return m.ListBySeekerFunc(ctx, seekerID, page)
	}
	return nil, 0, nil
}

func (m *mockApplicationRepository) ListByJob(ctx context.Context, jobID uint) ([]entity.Application, error) {
	if m.ListByJobFunc != nil {
		return m.ListByJobFunc(ctx, jobID)
	}
	return nil, nil
}

func (m *mockApplicationRepository) UpdateStatus(ctx context.Context, id uint, status entity.Status) (*entity.Application, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return &entity.Application{ID: id, Status: status}, nil
}

func (m *mockApplicationRepository) ApplicantIDs(ctx context.Context, jobIDs []uint) (map[uint][]uint, error) {
	if m.ApplicantIDsFunc != nil {
		return m.ApplicantIDsFunc(ctx, jobIDs)
	}
	return map[uint][]uint{}, nil
}

// jobsByID is a JobReader over a fixed set of jobs.
type jobsByID map[uint]*jobentity.Job

func (m jobsByID) FindByID(_ context.Context, id uint) (*jobentity.Job, error) {
	if j, ok := m[id]; ok {
		return j, nil
	}
	return nil, usecase.ErrJobNotFound
}

var catalog = jobsByID{7: {ID: 7, PostedByID: 3}}

func TestApplicationUsecase_Apply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		jobID   uint
		create  func(ctx context.Context, app *entity.Application) error
		wantErr error
	}{
		{name: "success", jobID: 7},
		{name: "failure: missing job id", jobID: 0, wantErr: usecase.ErrMissingJobID},
		{name: "failure: unknown job", jobID: 8, wantErr: usecase.ErrJobNotFound},
		{
			name:    "failure: duplicate",
			jobID:   7,
			create:  func(context.Context, *entity.Application) error { return usecase.ErrAlreadyApplied },
			wantErr: usecase.ErrAlreadyApplied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stored *entity.Application
			repo := &mockApplicationRepository{CreateFunc: func(ctx context.Context, app *entity.Application) error {
				if tt.create != nil {
					return tt.create(ctx, app)
				}
				stored = app
				return nil
			}}
			uc := usecase.NewApplicationUsecase(repo, catalog)

			app, err := uc.Apply(context.Background(), 5, tt.jobID, usecase.Links{Resume: " https://r ", CoverLetter: ""})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Same(t, stored, app)
			assert.Equal(t, entity.StatusPending, app.Status)
			assert.Equal(t, uint(5), app.JobSeekerID)
			assert.Equal(t, "https://r", app.ResumeLink)
			assert.False(t, app.AppliedAt.IsZero())
		})
	}
}

func TestApplicationUsecase_ListMine(t *testing.T) {
	t.Parallel()

	repo := &mockApplicationRepository{ListBySeekerFunc: func(ctx context.Context, seekerID uint, page pagination.Page) ([]entity.Application, int64, error) {
		assert.Equal(t, uint(5), seekerID)
		return []entity.Application{{ID: 1}}, 11, nil
	}}
	uc := usecase.NewApplicationUsecase(repo, catalog)

	res, err := uc.ListMine(context.Background(), 5, pagination.Page{Number: 2, Size: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 11, res.Total)
	assert.Equal(t, 2, res.TotalPages)
	assert.Len(t, res.Applications, 1)

	boom := errors.New("db down")
	uc = usecase.NewApplicationUsecase(&mockApplicationRepository{
		ListBySeekerFunc: func(context.Context, uint, pagination.Page) ([]entity.Application, int64, error) { return nil, 0, boom },
	}, catalog)
	_, err = uc.ListMine(context.Background(), 5, pagination.Page{Number: 1, Size: 10})
	assert.ErrorIs(t, err, boom)
}

func TestApplicationUsecase_ListMine_JobApplicants(t *testing.T) {
	t.Parallel()

	repo := &mockApplicationRepository{
		ListBySeekerFunc: func(context.Context, uint, pagination.Page) ([]entity.Application, int64, error) {
			return []entity.Application{
				{ID: 1, JobID: 7, Job: &jobentity.Job{ID: 7}},
				{ID: 2, JobID: 8, Job: &jobentity.Job{ID: 8}},
				{ID: 3, JobID: 9},
			}, 3, nil
		},
		ApplicantIDsFunc: func(ctx context.Context, jobIDs []uint) (map[uint][]uint, error) {
			assert.Equal(t, []uint{7, 8}, jobIDs)
			return map[uint][]uint{7: {4, 5}}, nil
		},
	}
	uc := usecase.NewApplicationUsecase(repo, catalog)

	res, err := uc.ListMine(context.Background(), 5, pagination.Page{Number: 1, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, []uint{4, 5}, res.Applications[0].Job.Applicants)
	assert.Equal(t, []uint{}, res.Applications[1].Job.Applicants)
	assert.Nil(t, res.Applications[2].Job)

	boom := errors.New("ledger down")
	repo.ApplicantIDsFunc = func(context.Context, []uint) (map[uint][]uint, error) { return nil, boom }
	_, err = uc.ListMine(context.Background(), 5, pagination.Page{Number: 1, Size: 10})
	assert.ErrorIs(t, err, boom)
}

func TestApplicationUsecase_ListForJob(t *testing.T) {
	t.Parallel()

	listed := false
	repo := &mockApplicationRepository{ListByJobFunc: func(ctx context.Context, jobID uint) ([]entity.Application, error) {
		listed = true
		return []entity.Application{{ID: 1, JobID: jobID}}, nil
	}}
	uc := usecase.NewApplicationUsecase(repo, catalog)
	ctx := context.Background()

	_, err := uc.ListForJob(ctx, 8, 3)
	assert.ErrorIs(t, err, usecase.ErrJobNotFound)
	_, err = uc.ListForJob(ctx, 7, 4)
	assert.ErrorIs(t, err, authz.ErrForbidden)
	assert.False(t, listed)

	apps, err := uc.ListForJob(ctx, 7, 3)
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestApplicationUsecase_UpdateStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		appID   uint
		caller  uint
		status  string
		wantErr error
	}{
		{"success", 1, 3, "Hired", nil},
		{"success: back to pending", 1, 3, "Pending", nil},
		{"failure: unknown status", 1, 3, "Ghosted", usecase.ErrInvalidStatus},
		{"failure: lowercase status", 1, 3, "hired", usecase.ErrInvalidStatus},
		{"failure: status checked before lookup", 404, 3, "", usecase.ErrInvalidStatus},
		{"failure: application not found", 404, 3, "Reviewed", usecase.ErrApplicationNotFound},
		{"failure: not the job owner", 1, 4, "Reviewed", authz.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			updated := false
			repo := &mockApplicationRepository{
				FindByIDFunc: func(ctx context.Context, id uint) (*entity.Application, error) {
					if id == 1 {
						return &entity.Application{ID: 1, JobID: 7, Status: entity.StatusReviewed}, nil
					}
					return nil, usecase.ErrApplicationNotFound
				},
				UpdateStatusFunc: func(ctx context.Context, id uint, status entity.Status) (*entity.Application, error) {
					updated = true
					return &entity.Application{ID: id, JobID: 7, Status: status}, nil
				},
			}
			uc := usecase.NewApplicationUsecase(repo, catalog)

			app, err := uc.UpdateStatus(context.Background(), tt.appID, tt.caller, tt.status)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, updated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, entity.Status(tt.status), app.Status)
		})
	}
}
