package dto

import (
	"time"

	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/internal/domain/filing"
)

// DocumentResponse salida de un documento.
type DocumentResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Path              string    `json:"path"`
	FolderPath        *string   `json:"folder_path,omitempty"`
	FolderName        string    `json:"folder_name,omitempty"`
	DocumentType      *string   `json:"document_type,omitempty"`
	DocumentTypeLabel string    `json:"document_type_label,omitempty"`
	Year              *int      `json:"year,omitempty"`
	Size              int64     `json:"size"`
	Type              string    `json:"type"`
	OwnerType         string    `json:"owner_type"`
	OwnerID           int64     `json:"owner_id"`
	VisibleToTenants  string    `json:"visible_to_tenants"`
	CreatedAt         time.Time `json:"created_at"`
}

// FolderResponse carpeta con su nombre visible.
type FolderResponse struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// DocumentListResponse documentos del dueño, más recientes primero.
type DocumentListResponse struct {
	Items   []DocumentResponse `json:"items"`
	Folders []FolderResponse   `json:"folders,omitempty"`
	View    string             `json:"view,omitempty"`
}

// DocumentURLResponse URL de descarga.
type DocumentURLResponse struct {
	URL string `json:"url"`
}

// DocumentTypesResponse catálogo de tipos por categoría.
type DocumentTypesResponse struct {
	CompanyAccounts []filing.TypeLabel `json:"company_accounts"`
	CompanyClaims   []filing.TypeLabel `json:"company_claims"`
}

// NewDocumentResponse mapea la entidad a la respuesta.
func NewDocumentResponse(d *entity.Document) DocumentResponse {
	out := DocumentResponse{
		ID:               d.ID,
		Name:             d.Name,
		Path:             d.Path,
		FolderPath:       d.FolderPath,
		DocumentType:     d.DocumentType,
		Year:             d.Year,
		Size:             d.Size,
		Type:             d.Type,
		OwnerType:        string(d.Owner.Kind),
		OwnerID:          d.Owner.ID,
		VisibleToTenants: string(d.VisibleToTenants),
		CreatedAt:        d.CreatedAt,
	}
	if d.FolderPath != nil {
		out.FolderName = filing.FolderDisplayName(*d.FolderPath)
	}
	if d.DocumentType != nil {
		out.DocumentTypeLabel = filing.DocumentTypeLabel(*d.DocumentType)
	}
	return out
}
