// Package entity defines the domain entities for the jobs feature.
package entity

import (
	"fmt"
	"time"

	identityentity "jobboard/internal/feature/identity/domain/entity"
)

// EmploymentType is the closed set of employment arrangements a job can offer.
type EmploymentType string

const (
	TypeFullTime   EmploymentType = "Full-time"
	TypePartTime   EmploymentType = "Part-time"
	TypeContract   EmploymentType = "Contract"
	TypeInternship EmploymentType = "Internship"
	TypeTemporary  EmploymentType = "Temporary"
)

// ParseEmploymentType validates s. The empty string yields the Full-time default.
func ParseEmploymentType(s string) (EmploymentType, error) {
	if s == "" {
		return TypeFullTime, nil
	}
	t := EmploymentType(s)
	switch t {
	case TypeFullTime, TypePartTime, TypeContract, TypeInternship, TypeTemporary:
		return t, nil
	}
	return "", fmt.Errorf("unknown employment type %q", s)
}

// Job is a posting owned by an employer.
type Job struct {
	ID           uint   `gorm:"primaryKey"`
	Title        string `gorm:"size:255;not null"`
	Company      string `gorm:"size:255;not null"`
	Location     string `gorm:"size:255;not null"`
	Description  string `gorm:"type:text;not null"`
	Requirements string `gorm:"type:text;not null"`

	MinSalary float64 `gorm:"not null;default:0"`
	MaxSalary float64 `gorm:"not null;default:0"`

	Type EmploymentType `gorm:"size:32;not null;default:'Full-time';index"`

	// PostedByID references the owning employer and never changes after creation.
	PostedByID uint `gorm:"not null;index"`

	// Poster is loaded only by listings that show the owner's name.
	Poster *identityentity.User `gorm:"foreignKey:PostedByID"`

	PostedAt  time.Time `gorm:"not null;index"`
	UpdatedAt time.Time

	// Applicants holds the job seeker ids that applied, oldest first.
	// Computed from applications on read, never stored.
	Applicants []uint `gorm:"-"`
}
