// Package usecase implements the job catalog.
package usecase

import "errors"

var (
	// ErrJobNotFound is returned when a job id does not resolve.
	ErrJobNotFound = errors.New("job not found")

	// ErrMissingField is wrapped with the name of the absent field.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidJobType is returned for employment types outside the closed set.
	ErrInvalidJobType = errors.New("invalid job type")
)
