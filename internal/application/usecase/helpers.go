package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/estatedesk-api/internal/domain"
	"github.com/jhoicas/estatedesk-api/pkg/logger"
	"github.com/jhoicas/estatedesk-api/pkg/slug"
)

const maxSlugAttempts = 100

// BlobRemover borra objetos del almacenamiento de documentos.
type BlobRemover interface {
	Delete(ctx context.Context, path string) error
}

// uniqueSlug genera el slug de source y agrega -2, -3, ... hasta encontrar uno libre.
func uniqueSlug(ctx context.Context, source, fallback string, exists func(context.Context, string) (bool, error)) (string, error) {
	base := slug.Make(source)
	if base == "" {
		base = fallback
	}
	for n := 1; n <= maxSlugAttempts; n++ {
		candidate := slug.WithSuffix(base, n)
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: no free slug for %q", domain.ErrDuplicate, base)
}

// removeBlobs borra los objetos de documentos ya eliminados en la base. Los fallos solo se registran.
func removeBlobs(ctx context.Context, blobs BlobRemover, log *logger.Logger, paths []string) {
	if blobs == nil {
		return
	}
	for _, p := range paths {
		if err := blobs.Delete(ctx, p); err != nil {
			log.Warn().Err(err).Str("path", p).Msg("no se pudo borrar el archivo del almacenamiento")
		}
	}
}

func validationError(field, msg string) error {
	verr := domain.NewValidationError()
	verr.Add(field, msg)
	return verr
}
