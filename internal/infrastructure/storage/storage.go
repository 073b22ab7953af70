package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/jhoicas/estatedesk-api/internal/domain/filing"
	"github.com/jhoicas/estatedesk-api/pkg/config"
)

// New construye el almacenamiento configurado por STORAGE_DRIVER.
func New(ctx context.Context, cfg config.StorageConfig) (filing.Storage, error) {
	switch cfg.Driver {
	case config.StorageLocal:
		return NewLocalDisk(cfg.LocalRoot, cfg.PublicURL)
	case config.StorageS3:
		return NewS3(ctx, S3Options{
			Endpoint: cfg.S3.Endpoint,
			Bucket:   cfg.S3.Bucket,
			Region:   cfg.S3.Region,
			Credential: aws.Credentials{
				AccessKeyID:     cfg.S3.AccessKey,
				SecretAccessKey: cfg.S3.SecretKey,
			},
			LinkExpireIn: time.Duration(cfg.S3.URLExpireMinutes) * time.Minute,
		})
	default:
		return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Driver)
	}
}
