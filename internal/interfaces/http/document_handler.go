package http

import (
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estatedesk-api/internal/application/documents"
	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
)

// DocumentHandler maneja los documentos de zonas, edificios y unidades.
type DocumentHandler struct {
	uc *documents.UseCase
}

// NewDocumentHandler construye el handler de documentos.
func NewDocumentHandler(uc *documents.UseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// Upload devuelve el handler de carga para el tipo de dueño.
//
// @Summary      Cargar documento (multipart, campo "file")
// @Tags         documents
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        slug                path      string  true   "slug del dueño"
// @Param        file                formData  file    true   "archivo"
// @Param        category            formData  string  false  "solo zonas: company_accounts | company_claims | general"
// @Param        year                formData  int     false  "solo zonas"
// @Param        document_type       formData  string  false  "solo zonas"
// @Param        visible_to_tenants  formData  string  false  "solo unidades: yes | no"
// @Success      201  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/manager/zones/{slug}/documents [post]
// @Router       /api/manager/buildings/{slug}/documents [post]
// @Router       /api/manager/units/{slug}/documents [post]
func (h *DocumentHandler) Upload(kind entity.OwnerKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := documents.UploadInput{
			Owner:            kind,
			Slug:             c.Params("slug"),
			Category:         strings.TrimSpace(c.FormValue("category")),
			VisibleToTenants: strings.TrimSpace(c.FormValue("visible_to_tenants")),
		}
		if v := strings.TrimSpace(c.FormValue("year")); v != "" {
			year, err := strconv.Atoi(v)
			if err != nil {
				return respondError(c, validationError("year", "year must be a number"))
			}
			in.Year = &year
		}
		if v := strings.TrimSpace(c.FormValue("document_type")); v != "" {
			in.DocumentType = &v
		}

		// Sin archivo (o sin multipart) Body queda nil: el caso de uso responde "no file uploaded".
		if fh, err := c.FormFile("file"); err == nil {
			f, err := fh.Open()
			if err != nil {
				return badBody(c)
			}
			defer f.Close()
			in.FileName = fh.Filename
			in.Size = fh.Size
			in.ContentType = fh.Header.Get(fiber.HeaderContentType)
			in.Body = f
		}

		out, err := h.uc.Upload(c.UserContext(), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// List devuelve el handler de listado para el tipo de dueño.
//
// @Summary      Documentos del dueño, más recientes primero
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        slug  path   string  true   "slug del dueño"
// @Param        view  query  string  false  "solo zonas: all o una carpeta"
// @Success      200  {object}  dto.DocumentListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manager/zones/{slug}/documents [get]
// @Router       /api/manager/buildings/{slug}/documents [get]
// @Router       /api/manager/units/{slug}/documents [get]
func (h *DocumentHandler) List(kind entity.OwnerKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.uc.List(c.UserContext(), kind, c.Params("slug"), c.Query("view"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// Types godoc
// @Summary      Catálogo de tipos de documento por categoría
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DocumentTypesResponse
// @Router       /api/manager/documents/types [get]
func (h *DocumentHandler) Types(c *fiber.Ctx) error {
	return c.JSON(h.uc.DocumentTypes())
}

// ToggleVisibility godoc
// @Summary      Alternar la visibilidad del documento para inquilinos
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "id del documento"
// @Success      200  {object}  dto.ActionResult
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manager/documents/{id}/visibility [patch]
func (h *DocumentHandler) ToggleVisibility(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	out, err := h.uc.ToggleVisibility(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// URL godoc
// @Summary      Dirección de descarga del documento
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "id del documento"
// @Success      200  {object}  dto.DocumentURLResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manager/documents/{id}/url [get]
func (h *DocumentHandler) URL(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	out, err := h.uc.URL(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Descargar el archivo del documento
// @Tags         documents
// @Security     Bearer
// @Produce      octet-stream
// @Param        id  path  int  true  "id del documento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manager/documents/{id}/download [get]
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	doc, rc, err := h.uc.Download(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return sendDocument(c, doc, rc)
}

// Delete godoc
// @Summary      Eliminar documento
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "id del documento"
// @Success      200  {object}  dto.ActionResult
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manager/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	out, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// sendDocument envía el archivo como adjunto. fasthttp cierra rc al terminar el envío.
func sendDocument(c *fiber.Ctx, doc *entity.Document, rc io.ReadCloser) error {
	c.Attachment(doc.Name)
	c.Set(fiber.HeaderContentType, doc.Type)
	return c.SendStream(rc, int(doc.Size))
}
