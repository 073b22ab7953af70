// Package storage implementaciones del puerto filing.Storage: disco local (afero) y S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"

	"github.com/jhoicas/estatedesk-api/internal/domain/filing"
)

var _ filing.Storage = (*Local)(nil)

// Local almacenamiento sobre un afero.Fs; las URLs apuntan a publicURL (servido en /storage).
type Local struct {
	fs        afero.Fs
	publicURL string
}

// NewLocal construye el almacenamiento sobre fs (MemMapFs en pruebas).
func NewLocal(fs afero.Fs, publicURL string) *Local {
	return &Local{fs: fs, publicURL: strings.TrimRight(publicURL, "/")}
}

// NewLocalDisk almacenamiento en disco con raíz en root; crea el directorio si no existe.
func NewLocalDisk(root, publicURL string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return NewLocal(afero.NewBasePathFs(afero.NewOsFs(), root), publicURL), nil
}

func (s *Local) Put(ctx context.Context, p string, r io.Reader, size int64, contentType string) error {
	key, err := cleanKey(p)
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(path.Dir(key), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	f, err := s.fs.Create(key)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = s.fs.Remove(key)
		return fmt.Errorf("write file: %w", err)
	}
	return f.Close()
}

func (s *Local) Exists(ctx context.Context, p string) (bool, error) {
	key, err := cleanKey(p)
	if err != nil {
		return false, err
	}
	return afero.Exists(s.fs, key)
}

func (s *Local) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	key, err := cleanKey(p)
	if err != nil {
		return nil, err
	}
	return s.fs.Open(key)
}

// URL publicURL + ruta con cada segmento escapado.
func (s *Local) URL(ctx context.Context, p string) (string, error) {
	key, err := cleanKey(p)
	if err != nil {
		return "", err
	}
	parts := strings.Split(key, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return s.publicURL + "/" + strings.Join(parts, "/"), nil
}

// Delete borra el archivo; no falla si ya no existe.
func (s *Local) Delete(ctx context.Context, p string) error {
	key, err := cleanKey(p)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(key); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// cleanKey normaliza la ruta y rechaza las que escapan de la raíz.
func cleanKey(p string) (string, error) {
	key := path.Clean(strings.TrimPrefix(p, "/"))
	if key == "." || key == ".." || strings.HasPrefix(key, "../") {
		return "", fmt.Errorf("invalid storage path %q", p)
	}
	return key, nil
}
