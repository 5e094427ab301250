// Package entity defines the domain entities for the applications feature.
package entity

import (
	"fmt"
	"time"

	identityentity "jobboard/internal/feature/identity/domain/entity"
	jobentity "jobboard/internal/feature/jobs/domain/entity"
)

// Status is the review state of an application. Any status may move to any other.
type Status string

const (
	StatusPending     Status = "Pending"
	StatusReviewed    Status = "Reviewed"
	StatusInterviewed Status = "Interviewed"
	StatusRejected    Status = "Rejected"
	StatusHired       Status = "Hired"
)

// ParseStatus validates s against the known statuses.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusReviewed, StatusInterviewed, StatusRejected, StatusHired:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// Application links one job seeker to one job. The pair is unique.
type Application struct {
	ID          uint `gorm:"primaryKey"`
	JobSeekerID uint `gorm:"not null;uniqueIndex:idx_applications_seeker_job,priority:1"`
	JobID       uint `gorm:"not null;uniqueIndex:idx_applications_seeker_job,priority:2;index:idx_applications_job"`

	Status Status `gorm:"size:32;not null;default:'Pending'"`

	AppliedAt       time.Time `gorm:"not null;index"`
	ResumeLink      string    `gorm:"size:1024"`
	CoverLetterLink string    `gorm:"size:1024"`
	UpdatedAt       time.Time

	// Job and JobSeeker are expansions loaded by listings.
	Job       *jobentity.Job       `gorm:"foreignKey:JobID"`
	JobSeeker *identityentity.User `gorm:"foreignKey:JobSeekerID"`
}
