package repository

import (
	"context"

	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
)

// DocumentRepository puerto de persistencia para Document.
type DocumentRepository interface {
	Create(ctx context.Context, d *entity.Document) error
	GetByID(ctx context.Context, id int64) (*entity.Document, error)
	// ListByOwner documentos del dueño, más recientes primero. folder vacío = todos;
	// si no, coincide la carpeta exacta o cualquier subcarpeta (folder + "/...").
	ListByOwner(ctx context.Context, owner entity.DocumentOwner, folder string) ([]*entity.Document, error)
	// Folders carpetas distintas usadas por los documentos del dueño.
	Folders(ctx context.Context, owner entity.DocumentOwner) ([]string, error)
	ListVisibleForUnit(ctx context.Context, unitID int64) ([]*entity.Document, error)
	UpdateVisibility(ctx context.Context, id int64, v entity.Visibility) error
	Delete(ctx context.Context, id int64) error
	// DeleteSubtree borra los documentos del dueño y de todos sus descendientes
	// (zona -> edificios -> unidades) y devuelve las rutas de almacenamiento borradas.
	DeleteSubtree(ctx context.Context, owner entity.DocumentOwner) ([]string, error)
}
