// Package dto defines the request and response bodies of the jobs feature.
package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"jobboard/internal/feature/jobs/domain/entity"
	"jobboard/internal/feature/jobs/usecase"
)

// Salary accepts a JSON number or a numeric string. Anything else decodes to 0.
type Salary float64

// UnmarshalJSON never fails; unparsable input becomes 0.
func (s *Salary) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			*s = 0
			return nil
		}
		b = []byte(strings.TrimSpace(str))
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		*s = 0
		return nil
	}
	*s = Salary(v)
	return nil
}

// CreateJobReq is the body of POST /recruiter/jobs.
type CreateJobReq struct {
	Title        string `json:"title" binding:"max=200"`
	Company      string `json:"company" binding:"max=200"`
	Location     string `json:"location" binding:"max=200"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	MinSalary    Salary `json:"minSalary"`
	MaxSalary    Salary `json:"maxSalary"`
	Type         string `json:"type"`
}

// Input converts the body for the usecase.
func (r CreateJobReq) Input() usecase.JobInput {
	return usecase.JobInput{
		Title:        r.Title,
		Company:      r.Company,
		Location:     r.Location,
		Description:  r.Description,
		Requirements: r.Requirements,
		MinSalary:    float64(r.MinSalary),
		MaxSalary:    float64(r.MaxSalary),
		Type:         r.Type,
	}
}

// UpdateJobReq is the body of PATCH /recruiter/jobs/:jobId. Absent fields stay unchanged.
type UpdateJobReq struct {
	Title        *string `json:"title" binding:"omitempty,max=200"`
	Company      *string `json:"company" binding:"omitempty,max=200"`
	Location     *string `json:"location" binding:"omitempty,max=200"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	MinSalary    *Salary `json:"minSalary"`
	MaxSalary    *Salary `json:"maxSalary"`
	Type         *string `json:"type"`
}

// Patch converts the body for the usecase.
func (r UpdateJobReq) Patch() usecase.JobPatch {
	return usecase.JobPatch{
		Title:        r.Title,
		Company:      r.Company,
		Location:     r.Location,
		Description:  r.Description,
		Requirements: r.Requirements,
		MinSalary:    salaryPtr(r.MinSalary),
		MaxSalary:    salaryPtr(r.MaxSalary),
		Type:         r.Type,
	}
}

func salaryPtr(s *Salary) *float64 {
	if s == nil {
		return nil
	}
	v := float64(*s)
	return &v
}

// PosterRes is the owner expansion of the admin listing.
type PosterRes struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// JobRes is the public representation of a job.
type JobRes struct {
	ID           uint       `json:"id"`
	Title        string     `json:"title"`
	Company      string     `json:"company"`
	Location     string     `json:"location"`
	Description  string     `json:"description"`
	Requirements string     `json:"requirements"`
	MinSalary    float64    `json:"minSalary"`
	MaxSalary    float64    `json:"maxSalary"`
	Type         string     `json:"type"`
	PostedBy     uint       `json:"postedBy"`
	Poster       *PosterRes `json:"poster,omitempty"`
	PostedAt     time.Time  `json:"postedAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	Applicants   []uint     `json:"applicants"`
}

// NewJobRes maps an entity to its response.
func NewJobRes(j *entity.Job) JobRes {
	res := JobRes{
		ID:           j.ID,
		Title:        j.Title,
		Company:      j.Company,
		Location:     j.Location,
		Description:  j.Description,
		Requirements: j.Requirements,
		MinSalary:    j.MinSalary,
		MaxSalary:    j.MaxSalary,
		Type:         string(j.Type),
		PostedBy:     j.PostedByID,
		PostedAt:     j.PostedAt,
		UpdatedAt:    j.UpdatedAt,
		Applicants:   j.Applicants,
	}
	if res.Applicants == nil {
		res.Applicants = []uint{}
	}
	if j.Poster != nil {
		res.Poster = &PosterRes{ID: j.Poster.ID, Name: j.Poster.Name}
	}
	return res
}

// NewJobList maps a slice, never returning nil.
func NewJobList(jobs []entity.Job) []JobRes {
	out := make([]JobRes, 0, len(jobs))
	for i := range jobs {
		out = append(out, NewJobRes(&jobs[i]))
	}
	return out
}

// JobPageRes is a page of the catalog.
type JobPageRes struct {
	Jobs        []JobRes `json:"jobs"`
	CurrentPage int      `json:"currentPage"`
	TotalPages  int      `json:"totalPages"`
	TotalJobs   int64    `json:"totalJobs"`
}

// NewJobPageRes maps a usecase page.
func NewJobPageRes(p *usecase.JobPage) JobPageRes {
	return JobPageRes{
		Jobs:        NewJobList(p.Jobs),
		CurrentPage: p.Page.Number,
		TotalPages:  p.TotalPages,
		TotalJobs:   p.Total,
	}
}

// JobEnvelope wraps a single job.
type JobEnvelope struct {
	Message string `json:"message,omitempty"`
	Job     JobRes `json:"job"`
}

// JobsEnvelope wraps an unpaginated list.
type JobsEnvelope struct {
	Jobs []JobRes `json:"jobs"`
}
