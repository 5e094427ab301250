// Package handler provides the HTTP handlers of the jobs feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/internal/api"
	"jobboard/internal/feature/jobs/domain/entity"
	"jobboard/internal/feature/jobs/domain/query"
	"jobboard/internal/feature/jobs/transport/http/dto"
	"jobboard/internal/feature/jobs/usecase"
	jwtmw "jobboard/internal/platform/jwt"
	"jobboard/internal/shared/authz"
	"jobboard/internal/shared/pagination"
)

// JobUsecase is the catalog as seen by the handlers.
type JobUsecase interface {
	Create(ctx context.Context, ownerID uint, in usecase.JobInput) (*entity.Job, error)
	Update(ctx context.Context, jobID, ownerID uint, patch usecase.JobPatch) (*entity.Job, error)
	Delete(ctx context.Context, jobID, ownerID uint) error
	GetByID(ctx context.Context, jobID, ownerID uint) (*entity.Job, error)
	GetPublic(ctx context.Context, jobID uint) (*entity.Job, error)
	List(ctx context.Context, filter query.Filter, page pagination.Page) (*usecase.JobPage, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]entity.Job, error)
}

// JobHandler serves the job seeker and recruiter catalog endpoints.
type JobHandler struct {
	jobs JobUsecase
}

func NewJobHandler(jobs JobUsecase) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// fail maps catalog errors to a status. Unknown errors are logged and hidden.
func fail(c *gin.Context, err error, forbidden, internal string) {
	switch {
	case errors.Is(err, usecase.ErrMissingField), errors.Is(err, usecase.ErrInvalidJobType):
		api.Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrJobNotFound):
		api.Fail(c, http.StatusNotFound, "Job not found.")
	case errors.Is(err, authz.ErrForbidden):
		api.Fail(c, http.StatusForbidden, forbidden)
	default:
		slog.Error(internal, "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
		api.Fail(c, http.StatusInternalServerError, internal)
	}
}

func caller(c *gin.Context) (uint, bool) {
	id, ok := jwtmw.UserID(c)
	if !ok {
		api.Fail(c, http.StatusUnauthorized, "No token provided, authorization denied.")
	}
	return id, ok
}

// ListJobs handles GET /user/getJobs.
func (h *JobHandler) ListJobs(c *gin.Context) {
	values := c.Request.URL.Query()
	page, err := h.jobs.List(c.Request.Context(), query.FromValues(values), pagination.FromValues(values, pagination.DefaultSize))
	if err != nil {
		fail(c, err, "", "Server error while fetching jobs.")
		return
	}
	c.JSON(http.StatusOK, dto.NewJobPageRes(page))
}

// GetJob handles GET /user/jobs/:jobId.
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, ok := api.ParamID(c, "jobId")
	if !ok {
		return
	}
	job, err := h.jobs.GetPublic(c.Request.Context(), jobID)
	if err != nil {
		fail(c, err, "", "Server error while fetching job details.")
		return
	}
	c.JSON(http.StatusOK, dto.JobEnvelope{Job: dto.NewJobRes(job)})
}

// PostJob handles POST /recruiter/jobs.
func (h *JobHandler) PostJob(c *gin.Context) {
	ownerID, ok := caller(c)
	if !ok {
		return
	}
	var req dto.CreateJobReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("post job validation failed", "error", err, "remote_addr", c.ClientIP())
		api.Fail(c, http.StatusBadRequest, api.BindMessage(err))
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), ownerID, req.Input())
	if err != nil {
		fail(c, err, "", "Server error while posting job.")
		return
	}
	slog.Info("job posted", "job_id", job.ID, "owner_id", ownerID)
	c.JSON(http.StatusCreated, dto.JobEnvelope{Message: "Job posted successfully!", Job: dto.NewJobRes(job)})
}

// MyJobs handles GET /recruiter/my-jobs.
func (h *JobHandler) MyJobs(c *gin.Context) {
	ownerID, ok := caller(c)
	if !ok {
		return
	}
	jobs, err := h.jobs.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		fail(c, err, "", "Server error while fetching your jobs.")
		return
	}
	c.JSON(http.StatusOK, dto.JobsEnvelope{Jobs: dto.NewJobList(jobs)})
}

// MyJob handles GET /recruiter/my-jobs/:jobId.
func (h *JobHandler) MyJob(c *gin.Context) {
	ownerID, ok := caller(c)
	if !ok {
		return
	}
	jobID, ok := api.ParamID(c, "jobId")
	if !ok {
		return
	}
	job, err := h.jobs.GetByID(c.Request.Context(), jobID, ownerID)
	if err != nil {
		fail(c, err, "You are not authorized to view this job.", "Server error while fetching job details.")
		return
	}
	c.JSON(http.StatusOK, dto.JobEnvelope{Job: dto.NewJobRes(job)})
}

// EditJob handles PATCH /recruiter/jobs/:jobId.
func (h *JobHandler) EditJob(c *gin.Context) {
	ownerID, ok := caller(c)
	if !ok {
		return
	}
	jobID, ok := api.ParamID(c, "jobId")
	if !ok {
		return
	}
	var req dto.UpdateJobReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("edit job validation failed", "error", err, "job_id", jobID)
		api.Fail(c, http.StatusBadRequest, api.BindMessage(err))
		return
	}

	job, err := h.jobs.Update(c.Request.Context(), jobID, ownerID, req.Patch())
	if err != nil {
		fail(c, err, "You are not authorized to edit this job.", "Server error while editing job.")
		return
	}
	slog.Info("job updated", "job_id", jobID, "owner_id", ownerID)
	c.JSON(http.StatusOK, dto.JobEnvelope{Message: "Job updated successfully!", Job: dto.NewJobRes(job)})
}

// DeleteJob handles DELETE /recruiter/jobs/:jobId.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	ownerID, ok := caller(c)
	if !ok {
		return
	}
	jobID, ok := api.ParamID(c, "jobId")
	if !ok {
		return
	}
	if err := h.jobs.Delete(c.Request.Context(), jobID, ownerID); err != nil {
		fail(c, err, "You are not authorized to delete this job.", "Server error while deleting job.")
		return
	}
	slog.Info("job deleted", "job_id", jobID, "owner_id", ownerID)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Job deleted successfully!"})
}
