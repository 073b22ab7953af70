package filing

import (
	"context"
	"io"
)

// Storage puerto de almacenamiento de archivos de documentos. Las rutas son relativas
// y usan "/" como separador.
type Storage interface {
	Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error
	Exists(ctx context.Context, path string) (bool, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	// URL dirección de descarga: pública para disco local, prefirmada para S3.
	URL(ctx context.Context, path string) (string, error)
	Delete(ctx context.Context, path string) error
}
