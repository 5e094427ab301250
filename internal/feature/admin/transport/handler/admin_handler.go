// Package handler provides the admin dashboard endpoints.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/internal/api"
	"jobboard/internal/feature/admin/transport/http/dto"
	"jobboard/internal/feature/admin/usecase"
	identityentity "jobboard/internal/feature/identity/domain/entity"
	identitydto "jobboard/internal/feature/identity/transport/http/dto"
	identityusecase "jobboard/internal/feature/identity/usecase"
	jobdto "jobboard/internal/feature/jobs/transport/http/dto"
	jobusecase "jobboard/internal/feature/jobs/usecase"
	"jobboard/internal/shared/pagination"
)

// AdminUsecase defines the dashboard operations.
type AdminUsecase interface {
	Stats(ctx context.Context) (*usecase.Stats, error)
	ListUsers(ctx context.Context) ([]identityentity.User, error)
	DeleteUser(ctx context.Context, id uint) error
	ListJobs(ctx context.Context, page pagination.Page) (*jobusecase.JobPage, error)
	DeleteJob(ctx context.Context, jobID uint) error
}

type AdminHandler struct {
	admin AdminUsecase
}

func NewAdminHandler(admin AdminUsecase) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func internalError(c *gin.Context, err error, message string) {
	slog.Error(message, "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
	api.Fail(c, http.StatusInternalServerError, message)
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	s, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		internalError(c, err, "Error fetching dashboard stats.")
		return
	}
	c.JSON(http.StatusOK, dto.NewStatsRes(s))
}

// Users handles GET /admin/users.
func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context())
	if err != nil {
		internalError(c, err, "Error fetching users.")
		return
	}
	c.JSON(http.StatusOK, dto.UsersRes{Users: identitydto.NewUserList(users)})
}

// DeleteUser handles DELETE /admin/users/:userId.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := api.ParamID(c, "userId")
	if !ok {
		return
	}
	if err := h.admin.DeleteUser(c.Request.Context(), id); err != nil {
		if errors.Is(err, identityusecase.ErrUserNotFound) {
			api.Fail(c, http.StatusNotFound, "User not found.")
			return
		}
		internalError(c, err, "Error deleting user.")
		return
	}
	slog.Info("user deleted by admin", "user_id", id)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "User deleted successfully."})
}

// Jobs handles GET /admin/jobs.
func (h *AdminHandler) Jobs(c *gin.Context) {
	page := pagination.FromValues(c.Request.URL.Query(), pagination.DefaultAdminSize)
	res, err := h.admin.ListJobs(c.Request.Context(), page)
	if err != nil {
		internalError(c, err, "Error fetching jobs.")
		return
	}
	c.JSON(http.StatusOK, jobdto.NewJobPageRes(res))
}

// DeleteJob handles DELETE /admin/jobs/:jobId.
func (h *AdminHandler) DeleteJob(c *gin.Context) {
	id, ok := api.ParamID(c, "jobId")
	if !ok {
		return
	}
	if err := h.admin.DeleteJob(c.Request.Context(), id); err != nil {
		if errors.Is(err, jobusecase.ErrJobNotFound) {
			api.Fail(c, http.StatusNotFound, "Job not found.")
			return
		}
		internalError(c, err, "Error deleting job.")
		return
	}
	slog.Info("job deleted by admin", "job_id", id)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Job and all associated applications deleted successfully."})
}
