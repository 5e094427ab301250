package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"jobboard/internal/feature/jobs/domain/entity"
	"jobboard/internal/feature/jobs/domain/query"
	"jobboard/internal/shared/authz"
	"jobboard/internal/shared/pagination"
)

// JobRepository abstracts job persistence. Defined by the consumer.
type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	// FindByID returns ErrJobNotFound when the id does not resolve.
	FindByID(ctx context.Context, id uint) (*entity.Job, error)
	// Update writes every mutable column of job. Returns ErrJobNotFound when the row is gone.
	Update(ctx context.Context, job *entity.Job) error
	// DeleteWithApplications removes the job's applications and then the job in one transaction.
	DeleteWithApplications(ctx context.Context, id uint) error
	// List returns one page of matching jobs, newest first, and the total match count.
	List(ctx context.Context, filter query.Filter, page pagination.Page) ([]entity.Job, int64, error)
	// ListWithPoster is List without a filter and with Poster loaded.
	ListWithPoster(ctx context.Context, page pagination.Page) ([]entity.Job, int64, error)
	// ListByOwner returns all jobs of ownerID, newest first.
	ListByOwner(ctx context.Context, ownerID uint) ([]entity.Job, error)
}

// ApplicantIndex reads the job seeker ids per job from the application ledger.
type ApplicantIndex interface {
	ApplicantIDs(ctx context.Context, jobIDs []uint) (map[uint][]uint, error)
}

// JobInput carries the fields of a new job.
type JobInput struct {
	Title        string
	Company      string
	Location     string
	Description  string
	Requirements string
	MinSalary    float64
	MaxSalary    float64
	Type         string
}

// JobPatch carries the fields to change. Nil or blank values keep the stored value.
type JobPatch struct {
	Title        *string
	Company      *string
	Location     *string
	Description  *string
	Requirements *string
	MinSalary    *float64
	MaxSalary    *float64
	Type         *string
}

// JobPage is one page of a listing.
type JobPage struct {
	Jobs       []entity.Job
	Page       pagination.Page
	Total      int64
	TotalPages int
}

type jobUsecase struct {
	jobs       JobRepository
	applicants ApplicantIndex
	now        func() time.Time
}

// NewJobUsecase wires the catalog.
func NewJobUsecase(jobs JobRepository, applicants ApplicantIndex) *jobUsecase {
	return &jobUsecase{jobs: jobs, applicants: applicants, now: time.Now}
}

// normalizeSalary maps negative and non-finite values to 0.
func normalizeSalary(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func (in JobInput) validate() error {
	required := []struct{ name, value string }{
		{"title", in.Title},
		{"company", in.Company},
		{"location", in.Location},
		{"description", in.Description},
		{"requirements", in.Requirements},
	}
	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	return nil
}

func parseType(s string) (entity.EmploymentType, error) {
	t, err := entity.ParseEmploymentType(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidJobType, err)
	}
	return t, nil
}

// Create stores a new job owned by ownerID.
func (u *jobUsecase) Create(ctx context.Context, ownerID uint, in JobInput) (*entity.Job, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	jobType, err := parseType(in.Type)
	if err != nil {
		return nil, err
	}

	job := &entity.Job{
		Title:        strings.TrimSpace(in.Title),
		Company:      strings.TrimSpace(in.Company),
		Location:     strings.TrimSpace(in.Location),
		Description:  in.Description,
		Requirements: in.Requirements,
		MinSalary:    normalizeSalary(in.MinSalary),
		MaxSalary:    normalizeSalary(in.MaxSalary),
		Type:         jobType,
		PostedByID:   ownerID,
		PostedAt:     u.now(),
	}
	if err := u.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	job.Applicants = []uint{}
	return job, nil
}

// owned loads jobID and checks that ownerID owns it.
func (u *jobUsecase) owned(ctx context.Context, jobID, ownerID uint) (*entity.Job, error) {
	job, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwnership(job.PostedByID, ownerID); err != nil {
		return nil, err
	}
	return job, nil
}

func applyText(dst *string, v *string) {
	if v != nil && strings.TrimSpace(*v) != "" {
		*dst = *v
	}
}

// Update changes the supplied fields of a job owned by ownerID.
func (u *jobUsecase) Update(ctx context.Context, jobID, ownerID uint, patch JobPatch) (*entity.Job, error) {
	job, err := u.owned(ctx, jobID, ownerID)
	if err != nil {
		return nil, err
	}

	applyText(&job.Title, patch.Title)
	applyText(&job.Company, patch.Company)
	applyText(&job.Location, patch.Location)
	applyText(&job.Description, patch.Description)
	applyText(&job.Requirements, patch.Requirements)
	if patch.MinSalary != nil {
		job.MinSalary = normalizeSalary(*patch.MinSalary)
	}
	if patch.MaxSalary != nil {
		job.MaxSalary = normalizeSalary(*patch.MaxSalary)
	}
	if patch.Type != nil && strings.TrimSpace(*patch.Type) != "" {
		t, err := parseType(*patch.Type)
		if err != nil {
			return nil, err
		}
		job.Type = t
	}

	if err := u.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return u.withApplicant(ctx, job)
}

// Delete removes a job owned by ownerID together with its applications.
func (u *jobUsecase) Delete(ctx context.Context, jobID, ownerID uint) error {
	if _, err := u.owned(ctx, jobID, ownerID); err != nil {
		return err
	}
	return u.jobs.DeleteWithApplications(ctx, jobID)
}

// DeleteAny removes any job with its applications. Admin only.
func (u *jobUsecase) DeleteAny(ctx context.Context, jobID uint) error {
	return u.jobs.DeleteWithApplications(ctx, jobID)
}

// GetByID returns a job owned by ownerID.
func (u *jobUsecase) GetByID(ctx context.Context, jobID, ownerID uint) (*entity.Job, error) {
	job, err := u.owned(ctx, jobID, ownerID)
	if err != nil {
		return nil, err
	}
	return u.withApplicant(ctx, job)
}

// GetPublic returns any job without an ownership check.
func (u *jobUsecase) GetPublic(ctx context.Context, jobID uint) (*entity.Job, error) {
	job, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return u.withApplicant(ctx, job)
}

// List returns a filtered page of the catalog.
func (u *jobUsecase) List(ctx context.Context, filter query.Filter, page pagination.Page) (*JobPage, error) {
	jobs, total, err := u.jobs.List(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return u.page(ctx, jobs, total, page)
}

// ListAll returns an unfiltered page with owner names. Admin only.
func (u *jobUsecase) ListAll(ctx context.Context, page pagination.Page) (*JobPage, error) {
	jobs, total, err := u.jobs.ListWithPoster(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return u.page(ctx, jobs, total, page)
}

// ListByOwner returns every job of ownerID.
func (u *jobUsecase) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Job, error) {
	jobs, err := u.jobs.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner jobs: %w", err)
	}
	if err := u.attachApplicants(ctx, jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (u *jobUsecase) page(ctx context.Context, jobs []entity.Job, total int64, page pagination.Page) (*JobPage, error) {
	if err := u.attachApplicants(ctx, jobs); err != nil {
		return nil, err
	}
	return &JobPage{
		Jobs:       jobs,
		Page:       page,
		Total:      total,
		TotalPages: pagination.TotalPages(total, page.Size),
	}, nil
}

func (u *jobUsecase) withApplicant(ctx context.Context, job *entity.Job) (*entity.Job, error) {
	jobs := []entity.Job{*job}
	if err := u.attachApplicants(ctx, jobs); err != nil {
		return nil, err
	}
	return &jobs[0], nil
}

// attachApplicants fills the derived Applicants view from the ledger.
func (u *jobUsecase) attachApplicants(ctx context.Context, jobs []entity.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	ids := make([]uint, len(jobs))
	for i := range jobs {
		ids[i] = jobs[i].ID
	}
	byJob, err := u.applicants.ApplicantIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load applicants: %w", err)
	}
	for i := range jobs {
		jobs[i].Applicants = byJob[jobs[i].ID]
		if jobs[i].Applicants == nil {
			jobs[i].Applicants = []uint{}
		}
	}
	return nil
}
