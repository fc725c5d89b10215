package storage

import (
	"context"
	"fmt"

	"github.com/princinho/stonevitrine/config"
)

// New builds the uploader selected by UPLOAD_DRIVER.
func New(ctx context.Context, cfg *config.Configuration) (Uploader, error) {
	switch cfg.UploadDriver {
	case "local", "":
		return NewLocalUploader(cfg.UploadDir, cfg.UploadPublicPath)
	case "r2":
		return NewR2Uploader(ctx, R2Config{
			Bucket:          cfg.R2Bucket,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			Endpoint:        cfg.R2Endpoint,
			PublicDomain:    cfg.R2PublicDomain,
		})
	case "gcs":
		return NewGCSUploader(ctx, cfg.GCSBucket, cfg.CredentialsFile)
	}
	return nil, fmt.Errorf("unknown upload driver %q", cfg.UploadDriver)
}
