// Package entity defines the domain entities for the identity feature.
package entity

import (
	"fmt"
	"time"
)

// Role is the closed set of account types a user can hold.
type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// ParseRole converts a stored or claimed role string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleJobSeeker, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}

// String returns the wire value of the role.
func (r Role) String() string { return string(r) }

// User represents a registered account.
type User struct {
	// ID is generated by the database.
	ID uint `gorm:"primaryKey"`

	// Name is the display name shown to recruiters and admins.
	Name string `gorm:"size:255;not null"`

	// Email is unique across all users regardless of role.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash. Never exposed to callers.
	Password string `gorm:"size:255;not null"`

	// Role is fixed by the sign-up endpoint that created the account.
	Role Role `gorm:"size:32;not null;index"`

	// ResumeURL points at the most recently uploaded resume, if any.
	ResumeURL string `gorm:"size:1024"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
