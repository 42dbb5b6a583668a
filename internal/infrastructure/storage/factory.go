package storage

import (
	"context"
	"fmt"

	catalogapp "github.com/pimify/backend/internal/application/catalog"
	"github.com/pimify/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// New returns the object storage selected by cfg.Driver. S3 buckets are
// created on first use.
func New(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (catalogapp.ObjectStorageService, error) {
	switch cfg.Driver {
	case config.StorageLocal, "":
		return NewLocalObjectStorage(cfg.MediaRoot, cfg.MediaURL)
	case config.StorageS3:
		s3Storage, err := NewS3ObjectStorage(&cfg.S3, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s3Storage, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
