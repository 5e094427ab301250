// Package usecase implements the admin dashboard: counts, user and job moderation.
package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	identityentity "jobboard/internal/feature/identity/domain/entity"
	jobusecase "jobboard/internal/feature/jobs/usecase"
	"jobboard/internal/shared/pagination"
)

// Counter returns the size of one collection.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// UserDirectory lists and removes accounts.
type UserDirectory interface {
	List(ctx context.Context) ([]identityentity.User, error)
	Delete(ctx context.Context, id uint) error
}

// JobModerator lists and removes any job.
type JobModerator interface {
	ListAll(ctx context.Context, page pagination.Page) (*jobusecase.JobPage, error)
	DeleteAny(ctx context.Context, jobID uint) error
}

// Stats are the dashboard totals.
type Stats struct {
	Users        int64
	Jobs         int64
	Applications int64
}

type adminUsecase struct {
	users     UserDirectory
	jobs      JobModerator
	userCount Counter
	jobCount  Counter
	appCount  Counter
}

// NewAdminUsecase wires the dashboard.
func NewAdminUsecase(users UserDirectory, jobs JobModerator, userCount, jobCount, appCount Counter) *adminUsecase {
	return &adminUsecase{users: users, jobs: jobs, userCount: userCount, jobCount: jobCount, appCount: appCount}
}

// Stats counts users, jobs and applications concurrently.
func (u *adminUsecase) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { s.Users, err = u.userCount.Count(ctx); return })
	g.Go(func() (err error) { s.Jobs, err = u.jobCount.Count(ctx); return })
	g.Go(func() (err error) { s.Applications, err = u.appCount.Count(ctx); return })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to count: %w", err)
	}
	return &s, nil
}

// ListUsers returns every account, newest first.
func (u *adminUsecase) ListUsers(ctx context.Context) ([]identityentity.User, error) {
	return u.users.List(ctx)
}

// DeleteUser removes an account. Its jobs and applications are left in place.
func (u *adminUsecase) DeleteUser(ctx context.Context, id uint) error {
	return u.users.Delete(ctx, id)
}

// ListJobs returns a page of every job with the owner's name.
func (u *adminUsecase) ListJobs(ctx context.Context, page pagination.Page) (*jobusecase.JobPage, error) {
	return u.jobs.ListAll(ctx, page)
}

// DeleteJob removes any job and its applications.
func (u *adminUsecase) DeleteJob(ctx context.Context, jobID uint) error {
	return u.jobs.DeleteAny(ctx, jobID)
}
