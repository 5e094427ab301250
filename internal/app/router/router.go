// Package router mounts every endpoint on a gin engine.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"jobboard/internal/api"
	"jobboard/internal/app/di"
	"jobboard/internal/feature/identity/domain/entity"
	platformhandler "jobboard/internal/platform/http/handler"
	"jobboard/internal/platform/http/middleware"
	jwtmw "jobboard/internal/platform/jwt"
	"jobboard/internal/shared/ratelimiter"
)

// Options are the router settings that do not come from the handlers.
type Options struct {
	JWTSecret   string
	CORSOrigins []string
	// StaticDir, when set, is served under /views.
	StaticDir string
	// DB answers /readyz. Nil skips the readiness route.
	DB platformhandler.Pinger
}

// NewRouter builds the engine with the middleware chain and every route group.
func NewRouter(opts Options, h *di.Handlers) *gin.Engine {
	api.UseJSONFieldNames()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLog(), corsMiddleware(opts.CORSOrigins))

	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)
	if opts.DB != nil {
		r.GET("/readyz", platformhandler.Ready(opts.DB))
	}
	if opts.StaticDir != "" {
		r.Static("/views", opts.StaticDir)
	}

	auth := jwtmw.AuthRequired(opts.JWTSecret)
	login := ratelimiter.Middleware(h.LoginLimiter)

	// job seekers
	user := r.Group("/user")
	user.POST("/signUp", h.Identity.Signup(entity.RoleJobSeeker))
	user.POST("/login", login, h.Identity.Login(entity.RoleJobSeeker))
	seeker := user.Group("", auth, jwtmw.RequireRole(entity.RoleJobSeeker))
	{
		seeker.GET("/profile", h.Identity.Profile)
		seeker.GET("/getJobs", h.Jobs.ListJobs)
		seeker.GET("/jobs/:jobId", h.Jobs.GetJob)
		seeker.POST("/apply-job", h.Applications.Apply)
		seeker.GET("/my-applications", h.Applications.MyApplications)
		seeker.POST("/upload-resume", h.Resume.Upload)
	}

	// recruiters
	recruiter := r.Group("/recruiter")
	recruiter.POST("/signUp", h.Identity.Signup(entity.RoleEmployer))
	recruiter.POST("/login", login, h.Identity.Login(entity.RoleEmployer))
	employer := recruiter.Group("", auth, jwtmw.RequireRole(entity.RoleEmployer))
	{
		employer.GET("/profile", h.Identity.Profile)
		employer.POST("/jobs", h.Jobs.PostJob)
		employer.GET("/my-jobs", h.Jobs.MyJobs)
		employer.GET("/my-jobs/:jobId", h.Jobs.MyJob)
		employer.PATCH("/jobs/:jobId", h.Jobs.EditJob)
		employer.DELETE("/jobs/:jobId", h.Jobs.DeleteJob)
		employer.GET("/jobs/:jobId/applicants", h.Applications.Applicants)
		employer.PATCH("/applications/:applicationId/status", h.Applications.UpdateStatus)
	}

	// admins
	admin := r.Group("/admin")
	admin.POST("/signUp", h.Identity.Signup(entity.RoleAdmin))
	admin.POST("/login", login, h.Identity.Login(entity.RoleAdmin))
	staff := admin.Group("", auth, jwtmw.RequireRole(entity.RoleAdmin))
	{
		staff.GET("/stats", h.Admin.Stats)
		staff.GET("/users", h.Admin.Users)
		staff.DELETE("/users/:userId", h.Admin.DeleteUser)
		staff.GET("/jobs", h.Admin.Jobs)
		staff.DELETE("/jobs/:jobId", h.Admin.DeleteJob)
	}

	return r
}

// corsMiddleware allows the configured origins, or any origin when none is set.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
