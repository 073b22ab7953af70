package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estatedesk-api/internal/application/documents"
	"github.com/jhoicas/estatedesk-api/internal/application/portal"
)

// PortalHandler vistas del inquilino autenticado. El inquilino sale siempre del token.
type PortalHandler struct {
	uc   *portal.UseCase
	docs *documents.UseCase
}

// NewPortalHandler construye el handler del portal.
func NewPortalHandler(uc *portal.UseCase, docs *documents.UseCase) *PortalHandler {
	return &PortalHandler{uc: uc, docs: docs}
}

// Me godoc
// @Summary      Datos del inquilino, su unidad, edificio y zona
// @Tags         portal
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PortalMeResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/portal/me [get]
func (h *PortalHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetTenantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Documents godoc
// @Summary      Documentos visibles de la unidad del inquilino
// @Tags         portal
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DocumentListResponse
// @Router       /api/portal/documents [get]
func (h *PortalHandler) Documents(c *fiber.Ctx) error {
	out, err := h.uc.Documents(c.UserContext(), GetTenantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DocumentURL godoc
// @Summary      Dirección de descarga de un documento visible
// @Tags         portal
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "id del documento"
// @Success      200  {object}  dto.DocumentURLResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/portal/documents/{id}/url [get]
func (h *PortalHandler) DocumentURL(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	doc, err := h.uc.VisibleDocument(c.UserContext(), GetTenantID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.docs.URLFor(c.UserContext(), doc)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DownloadDocument godoc
// @Summary      Descargar un documento visible
// @Tags         portal
// @Security     Bearer
// @Produce      octet-stream
// @Param        id  path  int  true  "id del documento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/portal/documents/{id}/download [get]
func (h *PortalHandler) DownloadDocument(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	doc, err := h.uc.VisibleDocument(c.UserContext(), GetTenantID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	_, rc, err := h.docs.Download(c.UserContext(), doc.ID)
	if err != nil {
		return respondError(c, err)
	}
	return sendDocument(c, doc, rc)
}
