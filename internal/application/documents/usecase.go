// Package documents carga, listado, visibilidad y descarga de documentos de zonas,
// edificios y unidades.
package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/jhoicas/estatedesk-api/internal/application/dto"
	"github.com/jhoicas/estatedesk-api/internal/domain"
	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/internal/domain/filing"
	"github.com/jhoicas/estatedesk-api/internal/domain/repository"
	"github.com/jhoicas/estatedesk-api/pkg/logger"
)

// maxNameAttempts límite de sufijos " (n)" al buscar un nombre libre.
const maxNameAttempts = 1000

// ViewAll vista de carpetas que muestra todos los documentos de la zona.
const ViewAll = "all"

// Resultados de carga registrados en métricas.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)

// UploadRecorder registra el resultado de cada carga (métricas).
type UploadRecorder interface {
	UploadResult(owner, result string)
}

type nopRecorder struct{}

func (nopRecorder) UploadResult(string, string) {}

// UploadInput archivo y metadatos de una carga. Body nil = no se envió archivo.
type UploadInput struct {
	Owner       entity.OwnerKind
	Slug        string
	FileName    string
	Size        int64
	ContentType string
	Body        io.Reader

	// Solo zonas.
	Category     string
	Year         *int
	DocumentType *string

	// Solo unidades: yes | no (vacío = no).
	VisibleToTenants string
}

// UseCase casos de uso de documentos.
type UseCase struct {
	repos   repository.Repos
	storage filing.Storage
	maxSize int64
	metrics UploadRecorder
	log     *logger.Logger
}

// NewUseCase construye el caso de uso. maxSize <= 0 usa filing.DefaultMaxSize; metrics puede ser nil.
func NewUseCase(repos repository.Repos, storage filing.Storage, maxSize int64, metrics UploadRecorder, log *logger.Logger) *UseCase {
	if maxSize <= 0 {
		maxSize = filing.DefaultMaxSize
	}
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &UseCase{repos: repos, storage: storage, maxSize: maxSize, metrics: metrics, log: log.Component("documents")}
}

// owner dueño resuelto con su cadena de slugs.
type owner struct {
	ref   entity.DocumentOwner
	chain filing.Chain
}

// Upload valida, almacena y registra un documento. El archivo se guarda y verifica antes
// de insertar la fila; si la inserción falla se borra el archivo.
func (uc *UseCase) Upload(ctx context.Context, in UploadInput) (*dto.DocumentResponse, error) {
	doc, err := uc.upload(ctx, in)
	if err != nil {
		result := ResultFailed
		if !errors.Is(err, domain.ErrStorageFailed) && !errors.Is(err, domain.ErrFileMissingAfterStore) {
			result = ResultRejected
		}
		uc.metrics.UploadResult(string(in.Owner), result)
		uc.log.Error().Err(err).
			Str("owner", string(in.Owner)).
			Str("owner_slug", in.Slug).
			Str("file", in.FileName).
			Msg("carga de documento fallida")
		return nil, &domain.UploadError{Reason: err}
	}
	uc.metrics.UploadResult(string(in.Owner), ResultOK)
	uc.log.Info().
		Str("owner", string(in.Owner)).
		Str("owner_slug", in.Slug).
		Str("path", doc.Path).
		Int64("size", doc.Size).
		Msg("documento cargado")
	out := dto.NewDocumentResponse(doc)
	return &out, nil
}

func (uc *UseCase) upload(ctx context.Context, in UploadInput) (*entity.Document, error) {
	if in.Body == nil || strings.TrimSpace(in.FileName) == "" {
		return nil, domain.ErrNoFile
	}
	if !in.Owner.Valid() {
		return nil, fmt.Errorf("%w: unknown owner type %q", domain.ErrInvalidInput, in.Owner)
	}
	if err := filing.CheckFile(in.Owner, in.FileName, in.Size, uc.maxSize); err != nil {
		return nil, err
	}

	doc := &entity.Document{Size: in.Size, VisibleToTenants: entity.VisibleNo}
	folder := ""
	switch in.Owner {
	case entity.OwnerZone:
		p := filing.Placement{Category: filing.Category(in.Category), Year: in.Year, DocumentType: in.DocumentType}
		if p.Category == "" {
			p.Category = filing.CategoryGeneral
		}
		if err := filing.ValidatePlacement(p); err != nil {
			return nil, err
		}
		folder = filing.FolderPath(p)
		doc.FolderPath = &folder
		if p.Category != filing.CategoryGeneral {
			doc.Year, doc.DocumentType = p.Year, p.DocumentType
		}
	case entity.OwnerUnit:
		if in.VisibleToTenants != "" {
			v := entity.Visibility(in.VisibleToTenants)
			if !v.Valid() {
				verr := domain.NewValidationError()
				verr.Add("visible_to_tenants", "must be yes or no")
				return nil, verr
			}
			doc.VisibleToTenants = v
		}
	}

	o, err := uc.resolve(ctx, in.Owner, in.Slug)
	if err != nil {
		return nil, err
	}
	doc.Owner = o.ref

	base := filing.BaseName(in.FileName)
	if base == "" {
		return nil, domain.ErrNoFile
	}
	dir := filing.Directory(in.Owner, o.chain, folder)
	name, err := uc.freeName(ctx, dir, base)
	if err != nil {
		return nil, err
	}
	doc.Name = name
	doc.Path = path.Join(dir, name)
	doc.Type = contentType(in.ContentType, name)

	if err := uc.storage.Put(ctx, doc.Path, in.Body, in.Size, doc.Type); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}
	ok, err := uc.storage.Exists(ctx, doc.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}
	if !ok {
		return nil, domain.ErrFileMissingAfterStore
	}
	if err := uc.repos.Documents.Create(ctx, doc); err != nil {
		if derr := uc.storage.Delete(ctx, doc.Path); derr != nil {
			uc.log.Warn().Err(derr).Str("path", doc.Path).Msg("no se pudo borrar el archivo huérfano")
		}
		return nil, fmt.Errorf("save document: %w", err)
	}
	return doc, nil
}

// freeName primer nombre libre en dir: base, "base (1).ext", "base (2).ext", ...
func (uc *UseCase) freeName(ctx context.Context, dir, base string) (string, error) {
	for n := 0; n < maxNameAttempts; n++ {
		candidate := filing.CandidateName(base, n)
		taken, err := uc.storage.Exists(ctx, path.Join(dir, candidate))
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: no free file name for %q", domain.ErrStorageFailed, base)
}

// resolve busca el dueño por slug y arma su cadena zona/edificio/unidad.
func (uc *UseCase) resolve(ctx context.Context, kind entity.OwnerKind, slug string) (*owner, error) {
	switch kind {
	case entity.OwnerZone:
		z, err := uc.repos.Zones.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if z == nil {
			return nil, domain.ErrNotFound
		}
		return &owner{ref: entity.ZoneOwner(z.ID), chain: filing.Chain{Zone: z.Slug}}, nil
	case entity.OwnerBuilding:
		b, err := uc.repos.Buildings.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, domain.ErrNotFound
		}
		z, err := uc.repos.Zones.GetByID(ctx, b.ZoneID)
		if err != nil {
			return nil, err
		}
		if z == nil {
			return nil, domain.ErrNotFound
		}
		return &owner{ref: entity.BuildingOwner(b.ID), chain: filing.Chain{Zone: z.Slug, Building: b.Slug}}, nil
	case entity.OwnerUnit:
		u, err := uc.repos.Units.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, domain.ErrNotFound
		}
		b, err := uc.repos.Buildings.GetByID(ctx, u.BuildingID)
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, domain.ErrNotFound
		}
		z, err := uc.repos.Zones.GetByID(ctx, b.ZoneID)
		if err != nil {
			return nil, err
		}
		if z == nil {
			return nil, domain.ErrNotFound
		}
		return &owner{
			ref:   entity.UnitOwner(u.ID),
			chain: filing.Chain{Zone: z.Slug, Building: b.Slug, Unit: u.Slug},
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown owner type %q", domain.ErrInvalidInput, kind)
	}
}

// List documentos del dueño, más recientes primero. Para zonas view es "all" (o vacío)
// o una carpeta; se incluyen las carpetas existentes.
func (uc *UseCase) List(ctx context.Context, kind entity.OwnerKind, slug, view string) (*dto.DocumentListResponse, error) {
	o, err := uc.resolve(ctx, kind, slug)
	if err != nil {
		return nil, err
	}
	folder := ""
	out := &dto.DocumentListResponse{}
	if kind == entity.OwnerZone {
		if view == "" {
			view = ViewAll
		}
		if view != ViewAll {
			folder = strings.Trim(view, "/")
		}
		out.View = view
		folders, err := uc.repos.Documents.Folders(ctx, o.ref)
		if err != nil {
			return nil, err
		}
		out.Folders = make([]dto.FolderResponse, 0, len(folders))
		for _, f := range folders {
			out.Folders = append(out.Folders, dto.FolderResponse{Path: f, Name: filing.FolderDisplayName(f)})
		}
	}
	docs, err := uc.repos.Documents.ListByOwner(ctx, o.ref, folder)
	if err != nil {
		return nil, err
	}
	out.Items = make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out.Items = append(out.Items, dto.NewDocumentResponse(d))
	}
	return out, nil
}

// ToggleVisibility alterna visible_to_tenants; solo cambia metadatos.
func (uc *UseCase) ToggleVisibility(ctx context.Context, docID int64) (*dto.ActionResult, error) {
	d, err := uc.get(ctx, docID)
	if err != nil {
		return nil, err
	}
	next := d.VisibleToTenants.Toggle()
	if err := uc.repos.Documents.UpdateVisibility(ctx, d.ID, next); err != nil {
		return nil, err
	}
	d.VisibleToTenants = next
	msg := "Document is now hidden from tenants."
	if next == entity.VisibleYes {
		msg = "Document is now visible to tenants."
	}
	return &dto.ActionResult{Message: msg, Data: dto.NewDocumentResponse(d)}, nil
}

// URL dirección de descarga del documento.
func (uc *UseCase) URL(ctx context.Context, docID int64) (*dto.DocumentURLResponse, error) {
	d, err := uc.get(ctx, docID)
	if err != nil {
		return nil, err
	}
	return uc.URLFor(ctx, d)
}

// URLFor dirección de descarga de un documento ya cargado (portal).
func (uc *UseCase) URLFor(ctx context.Context, d *entity.Document) (*dto.DocumentURLResponse, error) {
	u, err := uc.storage.URL(ctx, d.Path)
	if err != nil {
		return nil, fmt.Errorf("document url: %w", err)
	}
	return &dto.DocumentURLResponse{URL: u}, nil
}

// Download abre el archivo del documento; el llamador cierra el lector.
func (uc *UseCase) Download(ctx context.Context, docID int64) (*entity.Document, io.ReadCloser, error) {
	d, err := uc.get(ctx, docID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := uc.storage.Open(ctx, d.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open document: %w", err)
	}
	return d, rc, nil
}

// Delete borra la fila y después el archivo (best effort).
func (uc *UseCase) Delete(ctx context.Context, docID int64) (*dto.ActionResult, error) {
	d, err := uc.get(ctx, docID)
	if err != nil {
		return nil, err
	}
	if err := uc.repos.Documents.Delete(ctx, d.ID); err != nil {
		return nil, err
	}
	if err := uc.storage.Delete(ctx, d.Path); err != nil {
		uc.log.Warn().Err(err).Str("path", d.Path).Msg("no se pudo borrar el archivo del almacenamiento")
	}
	return &dto.ActionResult{Message: fmt.Sprintf("Document %s deleted.", d.Name)}, nil
}

// DocumentTypes catálogo de tipos de documento por categoría.
func (uc *UseCase) DocumentTypes() dto.DocumentTypesResponse {
	return dto.DocumentTypesResponse{
		CompanyAccounts: append([]filing.TypeLabel(nil), filing.AccountTypes...),
		CompanyClaims:   append([]filing.TypeLabel(nil), filing.ClaimTypes...),
	}
}

func (uc *UseCase) get(ctx context.Context, id int64) (*entity.Document, error) {
	d, err := uc.repos.Documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func contentType(declared, name string) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}
