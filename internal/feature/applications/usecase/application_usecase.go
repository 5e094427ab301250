package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/feature/applications/domain/entity"
	jobentity "jobboard/internal/feature/jobs/domain/entity"
	"jobboard/internal/shared/authz"
	"jobboard/internal/shared/pagination"
)

// ApplicationRepository abstracts the ledger. Defined by the consumer.
type ApplicationRepository interface {
	// Create inserts app. Returns ErrAlreadyApplied when the seeker already applied to the job.
	Create(ctx context.Context, app *entity.Application) error
	// FindByID returns ErrApplicationNotFound when the id does not resolve.
	FindByID(ctx context.Context, id uint) (*entity.Application, error)
	// ListBySeeker returns one page, newest applied first, with Job loaded.
	ListBySeeker(ctx context.Context, seekerID uint, page pagination.Page) ([]entity.Application, int64, error)
	// ListByJob returns all applications of a job, oldest first, with JobSeeker loaded.
	ListByJob(ctx context.Context, jobID uint) ([]entity.Application, error)
	// UpdateStatus sets the status and returns the stored record.
	UpdateStatus(ctx context.Context, id uint, status entity.Status) (*entity.Application, error)
	// ApplicantIDs returns the seeker ids per job, oldest application first.
	ApplicantIDs(ctx context.Context, jobIDs []uint) (map[uint][]uint, error)
}

// JobReader resolves jobs for existence and ownership checks.
type JobReader interface {
	FindByID(ctx context.Context, id uint) (*jobentity.Job, error)
}

// Links are the optional document links of an application.
type Links struct {
	Resume      string
	CoverLetter string
}

// ApplicationPage is one page of a seeker's applications.
type ApplicationPage struct {
	Applications []entity.Application
	Page         pagination.Page
	Total        int64
	TotalPages   int
}

type applicationUsecase struct {
	apps ApplicationRepository
	jobs JobReader
	now  func() time.Time
}

// NewApplicationUsecase wires the ledger.
func NewApplicationUsecase(apps ApplicationRepository, jobs JobReader) *applicationUsecase {
	return &applicationUsecase{apps: apps, jobs: jobs, now: time.Now}
}

// Apply records that seekerID applied to jobID with status Pending.
func (u *applicationUsecase) Apply(ctx context.Context, seekerID, jobID uint, links Links) (*entity.Application, error) {
	if jobID == 0 {
		return nil, ErrMissingJobID
	}
	if _, err := u.jobs.FindByID(ctx, jobID); err != nil {
		return nil, err
	}

	app := &entity.Application{
		JobSeekerID:     seekerID,
		JobID:           jobID,
		Status:          entity.StatusPending,
		AppliedAt:       u.now(),
		ResumeLink:      strings.TrimSpace(links.Resume),
		CoverLetterLink: strings.TrimSpace(links.CoverLetter),
	}
	if err := u.apps.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// ListMine returns a page of seekerID's applications with their jobs. Each
// job carries its applicants like any other job listing.
func (u *applicationUsecase) ListMine(ctx context.Context, seekerID uint, page pagination.Page) (*ApplicationPage, error) {
	apps, total, err := u.apps.ListBySeeker(ctx, seekerID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	if err := u.attachApplicants(ctx, apps); err != nil {
		return nil, err
	}
	return &ApplicationPage{
		Applications: apps,
		Page:         page,
		Total:        total,
		TotalPages:   pagination.TotalPages(total, page.Size),
	}, nil
}

// ListForJob returns the applicants of a job owned by ownerID.
func (u *applicationUsecase) ListForJob(ctx context.Context, jobID, ownerID uint) ([]entity.Application, error) {
	job, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwnership(job.PostedByID, ownerID); err != nil {
		return nil, err
	}
	apps, err := u.apps.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	return apps, nil
}

// UpdateStatus moves an application to status. Only the owner of the job may do so.
func (u *applicationUsecase) UpdateStatus(ctx context.Context, appID, ownerID uint, status string) (*entity.Application, error) {
	st, err := entity.ParseStatus(strings.TrimSpace(status))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	app, err := u.apps.FindByID(ctx, appID)
	if err != nil {
		return nil, err
	}
	job, err := u.jobs.FindByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwnership(job.PostedByID, ownerID); err != nil {
		return nil, err
	}
	return u.apps.UpdateStatus(ctx, appID, st)
}

// attachApplicants fills Applicants on the expanded jobs of apps.
func (u *applicationUsecase) attachApplicants(ctx context.Context, apps []entity.Application) error {
	var ids []uint
	for i := range apps {
		if apps[i].Job != nil {
			ids = append(ids, apps[i].Job.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	byJob, err := u.apps.ApplicantIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load applicants: %w", err)
	}
	for i := range apps {
		if job := apps[i].Job; job != nil {
			job.Applicants = byJob[job.ID]
			if job.Applicants == nil {
				job.Applicants = []uint{}
			}
		}
	}
	return nil
}
