// Package usecase validates and stores job seeker resumes.
package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	identityentity "jobboard/internal/feature/identity/domain/entity"
)

// DefaultMaxBytes is the resume size limit when none is configured.
const DefaultMaxBytes int64 = 5 << 20

var allowedTypes = []string{
	"application/pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// ResumeStore is the object storage used for uploads.
type ResumeStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// ResumeOwners records the latest resume on the user.
type ResumeOwners interface {
	UpdateResumeURL(ctx context.Context, id uint, url string) (*identityentity.User, error)
}

type resumeUsecase struct {
	store    ResumeStore
	users    ResumeOwners
	maxBytes int64
	newID    func() string
}

// NewResumeUsecase wires uploads. A nil store makes every upload fail with
// ErrStorageUnavailable.
func NewResumeUsecase(store ResumeStore, users ResumeOwners, maxBytes int64) *resumeUsecase {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &resumeUsecase{store: store, users: users, maxBytes: maxBytes, newID: uuid.NewString}
}

// MaxBytes is the accepted upload size.
func (u *resumeUsecase) MaxBytes() int64 { return u.maxBytes }

// Upload checks the content of body, stores it and points the user's
// ResumeURL at it. The stored object is removed again if the user update fails.
func (u *resumeUsecase) Upload(ctx context.Context, userID uint, filename string, body io.Reader) (string, error) {
	if u.store == nil {
		return "", ErrStorageUnavailable
	}
	if body == nil {
		return "", ErrNoFile
	}

	data, err := io.ReadAll(io.LimitReader(body, u.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return "", ErrNoFile
	}
	if int64(len(data)) > u.maxBytes {
		return "", ErrFileTooLarge
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedTypes...) {
		return "", fmt.Errorf("%w: got %s", ErrUnsupportedType, mtype.String())
	}

	key := fmt.Sprintf("resumes/%d/%s-%s", userID, u.newID(), safeName(filename, mtype.Extension()))
	if err := u.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), mtype.String()); err != nil {
		return "", fmt.Errorf("failed to store resume: %w", err)
	}

	url := u.store.URL(key)
	if _, err := u.users.UpdateResumeURL(ctx, userID, url); err != nil {
		if delErr := u.store.Delete(ctx, key); delErr != nil {
			slog.Warn("orphaned resume object", "key", key, "error", delErr)
		}
		return "", err
	}
	return url, nil
}

// safeName keeps the base name of filename with only URL-safe characters.
func safeName(filename, ext string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	name := strings.Trim(b.String(), "._")
	if name == "" {
		name = "resume" + ext
	}
	return name
}
