// Package di wires repositories, usecases and handlers together.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"jobboard/internal/app/config"
	adminhandler "jobboard/internal/feature/admin/transport/handler"
	adminusecase "jobboard/internal/feature/admin/usecase"
	appadapters "jobboard/internal/feature/applications/adapters"
	apphandler "jobboard/internal/feature/applications/transport/handler"
	appusecase "jobboard/internal/feature/applications/usecase"
	identityadapters "jobboard/internal/feature/identity/adapters"
	identityhandler "jobboard/internal/feature/identity/transport/handler"
	identityusecase "jobboard/internal/feature/identity/usecase"
	jobadapters "jobboard/internal/feature/jobs/adapters"
	jobhandler "jobboard/internal/feature/jobs/transport/handler"
	jobusecase "jobboard/internal/feature/jobs/usecase"
	resumehandler "jobboard/internal/feature/resume/transport/handler"
	resumeusecase "jobboard/internal/feature/resume/usecase"
	jwtmw "jobboard/internal/platform/jwt"
	"jobboard/internal/shared/ratelimiter"
)

// Handlers holds every HTTP handler the router mounts.
type Handlers struct {
	Identity     *identityhandler.IdentityHandler
	Jobs         *jobhandler.JobHandler
	Applications *apphandler.ApplicationHandler
	Admin        *adminhandler.AdminHandler
	Resume       *resumehandler.ResumeHandler
	// LoginLimiter is nil when login attempts are not limited.
	LoginLimiter ratelimiter.RateLimiterInterface
}

// NewHandlers builds the object graph. rdb and store may be nil.
func NewHandlers(cfg config.Config, db *gorm.DB, rdb *redis.Client, store resumeusecase.ResumeStore) *Handlers {
	users := identityadapters.NewUserGorm(db)
	apps := appadapters.NewApplicationGorm(db)
	jobs := NewJobRepository(db, rdb, cfg.Cache.JobListTTL)

	tokens := jwtmw.NewGenerator(cfg.Auth.JWTSecret, jwtmw.TTLs{
		JobSeeker: cfg.Auth.JobSeekerTTL,
		Employer:  cfg.Auth.EmployerTTL,
		Admin:     cfg.Auth.AdminTTL,
	})

	identityUC := identityusecase.NewIdentityUsecase(users, tokens, cfg.Auth.BcryptCost)
	jobUC := jobusecase.NewJobUsecase(jobs, apps)
	appUC := appusecase.NewApplicationUsecase(apps, jobs)
	adminUC := adminusecase.NewAdminUsecase(users, jobUC, users, jobadapters.NewJobGorm(db), apps)
	resumeUC := resumeusecase.NewResumeUsecase(store, users, cfg.Storage.MaxResumeBytes)

	return &Handlers{
		Identity:     identityhandler.NewIdentityHandler(identityUC),
		Jobs:         jobhandler.NewJobHandler(jobUC),
		Applications: apphandler.NewApplicationHandler(appUC),
		Admin:        adminhandler.NewAdminHandler(adminUC),
		Resume:       resumehandler.NewResumeHandler(resumeUC),
		LoginLimiter: NewLoginLimiter(rdb, cfg.Auth.LoginRateLimitPerMinute),
	}
}

// NewLoginLimiter returns nil when Redis is absent or the limit is 0.
func NewLoginLimiter(rdb *redis.Client, perMinute int) ratelimiter.RateLimiterInterface {
	if rdb == nil || perMinute <= 0 {
		return nil
	}
	rl, err := ratelimiter.NewRateLimiter(rdb, "ratelimit:login", perMinute, time.Minute)
	if err != nil {
		return nil
	}
	return rl
}
