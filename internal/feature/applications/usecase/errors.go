package usecase

import (
	"errors"

	jobusecase "jobboard/internal/feature/jobs/usecase"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("already applied to this job")
	ErrInvalidStatus       = errors.New("invalid application status")
	ErrMissingJobID        = errors.New("job id is required")

	// ErrJobNotFound is the catalog's sentinel so callers match one value.
	ErrJobNotFound = jobusecase.ErrJobNotFound
)
