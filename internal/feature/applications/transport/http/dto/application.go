// Package dto defines the request and response bodies of the applications feature.
package dto

import (
	"time"

	"jobboard/internal/feature/applications/domain/entity"
	"jobboard/internal/feature/applications/usecase"
	jobdto "jobboard/internal/feature/jobs/transport/http/dto"
)

// ApplyReq is the body of POST /user/apply-job.
type ApplyReq struct {
	JobID           uint   `json:"jobId" binding:"required"`
	ResumeLink      string `json:"resumeLink" binding:"omitempty,url,max=1024"`
	CoverLetterLink string `json:"coverLetterLink" binding:"omitempty,url,max=1024"`
}

// StatusReq is the body of PATCH /recruiter/applications/:applicationId/status.
type StatusReq struct {
	Status string `json:"status" binding:"required"`
}

// SeekerRes is the applicant expansion shown to recruiters.
type SeekerRes struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	ResumeURL string `json:"resumeUrl,omitempty"`
}

// ApplicationRes is the representation of one application.
type ApplicationRes struct {
	ID              uint           `json:"id"`
	JobID           uint           `json:"jobId"`
	JobSeekerID     uint           `json:"jobSeekerId"`
	Status          string         `json:"status"`
	AppliedAt       time.Time      `json:"appliedAt"`
	ResumeLink      string         `json:"resumeLink,omitempty"`
	CoverLetterLink string         `json:"coverLetterLink,omitempty"`
	Job             *jobdto.JobRes `json:"job,omitempty"`
	JobSeeker       *SeekerRes     `json:"jobSeeker,omitempty"`
}

func NewApplicationRes(a *entity.Application) ApplicationRes {
	res := ApplicationRes{
		ID:              a.ID,
		JobID:           a.JobID,
		JobSeekerID:     a.JobSeekerID,
		Status:          string(a.Status),
		AppliedAt:       a.AppliedAt,
		ResumeLink:      a.ResumeLink,
		CoverLetterLink: a.CoverLetterLink,
	}
	if a.Job != nil {
		job := jobdto.NewJobRes(a.Job)
		res.Job = &job
	}
	if a.JobSeeker != nil {
		res.JobSeeker = &SeekerRes{
			ID:        a.JobSeeker.ID,
			Name:      a.JobSeeker.Name,
			Email:     a.JobSeeker.Email,
			ResumeURL: a.JobSeeker.ResumeURL,
		}
	}
	return res
}

func NewApplicationList(apps []entity.Application) []ApplicationRes {
	out := make([]ApplicationRes, 0, len(apps))
	for i := range apps {
		out = append(out, NewApplicationRes(&apps[i]))
	}
	return out
}

// ApplicationEnvelope wraps a single application.
type ApplicationEnvelope struct {
	Message     string         `json:"message"`
	Application ApplicationRes `json:"application"`
}

// ApplicantsRes is the body of GET /recruiter/jobs/:jobId/applicants.
type ApplicantsRes struct {
	Applicants []ApplicationRes `json:"applicants"`
}

// ApplicationPageRes is a page of the caller's applications.
type ApplicationPageRes struct {
	Applications      []ApplicationRes `json:"applications"`
	CurrentPage       int              `json:"currentPage"`
	TotalPages        int              `json:"totalPages"`
	TotalApplications int64            `json:"totalApplications"`
}

func NewApplicationPageRes(p *usecase.ApplicationPage) ApplicationPageRes {
	return ApplicationPageRes{
		Applications:      NewApplicationList(p.Applications),
		CurrentPage:       p.Page.Number,
		TotalPages:        p.TotalPages,
		TotalApplications: p.Total,
	}
}
