// Package handler provides the HTTP handlers of the applications feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/internal/api"
	"jobboard/internal/feature/applications/domain/entity"
	"jobboard/internal/feature/applications/transport/http/dto"
	"jobboard/internal/feature/applications/usecase"
	jwtmw "jobboard/internal/platform/jwt"
	"jobboard/internal/shared/authz"
	"jobboard/internal/shared/pagination"
)

// ApplicationUsecase is the ledger as seen by the handlers.
type ApplicationUsecase interface {
	Apply(ctx context.Context, seekerID, jobID uint, links usecase.Links) (*entity.Application, error)
	ListMine(ctx context.Context, seekerID uint, page pagination.Page) (*usecase.ApplicationPage, error)
	ListForJob(ctx context.Context, jobID, ownerID uint) ([]entity.Application, error)
	UpdateStatus(ctx context.Context, appID, ownerID uint, status string) (*entity.Application, error)
}

type ApplicationHandler struct {
	apps ApplicationUsecase
}

func NewApplicationHandler(apps ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{apps: apps}
}

func fail(c *gin.Context, err error, forbidden, internal string) {
	switch {
	case errors.Is(err, usecase.ErrMissingJobID):
		api.Fail(c, http.StatusBadRequest, "jobId is required")
	case errors.Is(err, usecase.ErrInvalidStatus):
		api.Fail(c, http.StatusBadRequest, "Invalid application status provided.")
	case errors.Is(err, usecase.ErrAlreadyApplied):
		api.Fail(c, http.StatusConflict, "You have already applied for this job.")
	case errors.Is(err, usecase.ErrJobNotFound):
		api.Fail(c, http.StatusNotFound, "Job not found.")
	case errors.Is(err, usecase.ErrApplicationNotFound):
		api.Fail(c, http.StatusNotFound, "Application not found.")
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

// Apply handles POST /user/apply-job.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	seekerID, ok := caller(c)
	if !ok {
		return
	}
	var req dto.ApplyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("apply validation failed", "error", err, "seeker_id", seekerID)
		api.Fail(c, http.StatusBadRequest, api.BindMessage(err))
		return
	}

	app, err := h.apps.Apply(c.Request.Context(), seekerID, req.JobID, usecase.Links{
		Resume:      req.ResumeLink,
		CoverLetter: req.CoverLetterLink,
	})
	if err != nil {
		fail(c, err, "", "Server error while submitting application.")
		return
	}
	slog.Info("application submitted", "application_id", app.ID, "job_id", app.JobID, "seeker_id", seekerID)
	c.JSON(http.StatusCreated, dto.ApplicationEnvelope{
		Message:     "Application submitted successfully!",
		Application: dto.NewApplicationRes(app),
	})
}

// MyApplications handles GET /user/my-applications.
func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	seekerID, ok := caller(c)
	if !ok {
		return
	}
	page := pagination.FromValues(c.Request.URL.Query(), pagination.DefaultSize)
	res, err := h.apps.ListMine(c.Request.Context(), seekerID, page)
	if err != nil {
		fail(c, err, "", "Server error while fetching your applications.")
		return
	}
	c.JSON(http.StatusOK, dto.NewApplicationPageRes(res))
}

// Applicants handles GET /recruiter/jobs/:jobId/applicants.
func (h *ApplicationHandler) Applicants(c *gin.Context) {
	ownerID, ok := caller(c)
	if !ok {
		return
	}
	jobID, ok := api.ParamID(c, "jobId")
	if !ok {
		return
	}
	apps, err := h.apps.ListForJob(c.Request.Context(), jobID, ownerID)
	if err != nil {
		fail(c, err, "You are not authorized to view applicants for this job.", "Server error while fetching applicants.")
		return
	}
	c.JSON(http.StatusOK, dto.ApplicantsRes{Applicants: dto.NewApplicationList(apps)})
}

// UpdateStatus handles PATCH /recruiter/applications/:applicationId/status.
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	ownerID, ok := caller(c)
	if !ok {
		return
	}
	appID, ok := api.ParamID(c, "applicationId")
	if !ok {
		return
	}
	var req dto.StatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, api.BindMessage(err))
		return
	}

	app, err := h.apps.UpdateStatus(c.Request.Context(), appID, ownerID, req.Status)
	if err != nil {
		fail(c, err, "You are not authorized to update this application.", "Server error while updating application status.")
		return
	}
	slog.Info("application status updated", "application_id", appID, "status", app.Status, "owner_id", ownerID)
	c.JSON(http.StatusOK, dto.ApplicationEnvelope{
		Message:     "Application status updated successfully!",
		Application: dto.NewApplicationRes(app),
	})
}
