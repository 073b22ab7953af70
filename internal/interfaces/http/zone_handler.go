package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estatedesk-api/internal/application/dto"
	"github.com/jhoicas/estatedesk-api/internal/application/usecase"
)

// ZoneHandler maneja las zonas.
type ZoneHandler struct {
	uc  *usecase.ZoneUseCase
	val *Validator
}

// NewZoneHandler construye el handler de zonas.
func NewZoneHandler(uc *usecase.ZoneUseCase, val *Validator) *ZoneHandler {
	return &ZoneHandler{uc: uc, val: val}
}

// Create godoc
// @Summary      Crear zona
// @Tags         zones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateZoneRequest  true  "nombre"
// @Success      201   {object}  dto.ZoneResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/manager/zones [post]
func (h *ZoneHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateZoneRequest
	if ok, err := bindJSON(c, h.val, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar zonas
// @Tags         zones
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ZoneResponse
// @Router       /api/manager/zones [get]
func (h *ZoneHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetBySlug godoc
// @Summary      Zona con sus edificios
// @Tags         zones
// @Security     Bearer
// @Produce      json
// @Param        slug  path  string  true  "slug de la zona"
// @Success      200   {object}  dto.ZoneDetailResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/manager/zones/{slug} [get]
func (h *ZoneHandler) GetBySlug(c *fiber.Ctx) error {
	out, err := h.uc.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Units godoc
// @Summary      Unidades de todos los edificios de la zona
// @Tags         zones
// @Security     Bearer
// @Produce      json
// @Param        slug  path  string  true  "slug de la zona"
// @Success      200   {array}  dto.UnitResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/manager/zones/{slug}/units [get]
func (h *ZoneHandler) Units(c *fiber.Ctx) error {
	out, err := h.uc.Units(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Tenants godoc
// @Summary      Inquilinos de la zona
// @Tags         zones
// @Security     Bearer
// @Produce      json
// @Param        slug  path  string  true  "slug de la zona"
// @Success      200   {array}  dto.TenantResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/manager/zones/{slug}/tenants [get]
func (h *ZoneHandler) Tenants(c *fiber.Ctx) error {
	out, err := h.uc.Tenants(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar zona (en cascada)
// @Tags         zones
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "id de la zona"
// @Success      200  {object}  dto.ActionResult
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manager/zones/{id} [delete]
func (h *ZoneHandler) Delete(c *fiber.Ctx) error {
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
