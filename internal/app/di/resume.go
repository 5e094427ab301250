package di

import (
	"context"
	"log/slog"

	"jobboard/internal/app/config"
	resumeadapters "jobboard/internal/feature/resume/adapters"
	resumeusecase "jobboard/internal/feature/resume/usecase"
)

// NewResumeStore connects to object storage. It returns nil, and uploads
// answer 503, when storage is not configured or unreachable.
func NewResumeStore(ctx context.Context, cfg config.Storage) resumeusecase.ResumeStore {
	if cfg.Endpoint == "" {
		slog.Warn("object storage not configured; resume uploads disabled")
		return nil
	}
	store, err := resumeadapters.NewMinioStore(ctx, resumeadapters.StoreConfig{
		Endpoint:      cfg.Endpoint,
		AccessKey:     cfg.AccessKey,
		SecretKey:     cfg.SecretKey,
		Bucket:        cfg.Bucket,
		UseSSL:        cfg.UseSSL,
		PublicBaseURL: cfg.PublicBaseURL,
	})
	if err != nil {
		slog.Warn("object storage unavailable; resume uploads disabled", "endpoint", cfg.Endpoint, "error", err)
		return nil
	}
	return store
}
