// Package handler provides the resume upload endpoint.
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/internal/api"
	identityusecase "jobboard/internal/feature/identity/usecase"
	"jobboard/internal/feature/resume/usecase"
	jwtmw "jobboard/internal/platform/jwt"
)

// formField is the multipart field carrying the file.
const formField = "resume"

// multipartOverhead allows for boundaries and headers around the file.
const multipartOverhead = 64 << 10

// ResumeUsecase defines resume uploads.
type ResumeUsecase interface {
	Upload(ctx context.Context, userID uint, filename string, body io.Reader) (string, error)
	MaxBytes() int64
}

type ResumeHandler struct {
	resumes ResumeUsecase
}

func NewResumeHandler(resumes ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{resumes: resumes}
}

// UploadRes is the body of a successful upload.
type UploadRes struct {
	Message   string `json:"message"`
	ResumeURL string `json:"resumeUrl"`
}

func (h *ResumeHandler) tooLarge(c *gin.Context) {
	api.Fail(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large. The limit is %d KB.", h.resumes.MaxBytes()>>10))
}

// Upload handles POST /user/upload-resume.
func (h *ResumeHandler) Upload(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		api.Fail(c, http.StatusUnauthorized, "No token provided, authorization denied.")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.resumes.MaxBytes()+multipartOverhead)
	fh, err := c.FormFile(formField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.tooLarge(c)
			return
		}
		api.Fail(c, http.StatusBadRequest, "No file uploaded.")
		return
	}
	f, err := fh.Open()
	if err != nil {
		slog.Error("open uploaded resume", "error", err, "user_id", userID)
		api.Fail(c, http.StatusInternalServerError, "Server error during resume upload.")
		return
	}
	defer f.Close()

	url, err := h.resumes.Upload(c.Request.Context(), userID, fh.Filename, f)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNoFile):
			api.Fail(c, http.StatusBadRequest, "No file uploaded.")
		case errors.Is(err, usecase.ErrUnsupportedType):
			api.Fail(c, http.StatusBadRequest, "Invalid file type. Only PDF and DOCX files are allowed.")
		case errors.Is(err, usecase.ErrFileTooLarge):
			h.tooLarge(c)
		case errors.Is(err, usecase.ErrStorageUnavailable):
			api.Fail(c, http.StatusServiceUnavailable, "Resume storage is not available.")
		case errors.Is(err, identityusecase.ErrUserNotFound):
			api.Fail(c, http.StatusNotFound, "User not found.")
		default:
			slog.Error("resume upload failed", "error", err, "user_id", userID)
			api.Fail(c, http.StatusInternalServerError, "Server error during resume upload.")
		}
		return
	}
	slog.Info("resume uploaded", "user_id", userID, "url", url)
	c.JSON(http.StatusOK, UploadRes{Message: "Resume uploaded successfully!", ResumeURL: url})
}
