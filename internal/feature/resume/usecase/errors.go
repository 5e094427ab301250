package usecase

import "errors"

var (
	ErrNoFile             = errors.New("no file uploaded")
	ErrFileTooLarge       = errors.New("file too large")
	ErrUnsupportedType    = errors.New("invalid file type, only PDF and DOCX files are allowed")
	ErrStorageUnavailable = errors.New("resume storage is not configured")
)
