package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estatedesk-api/internal/application/dto"
	"github.com/jhoicas/estatedesk-api/internal/application/listing"
	"github.com/jhoicas/estatedesk-api/internal/application/usecase"
)

// UnitHandler maneja las unidades y su listado.
type UnitHandler struct {
	uc      *usecase.UnitUseCase
	listing *listing.UseCase
	val     *Validator
}

// NewUnitHandler construye el handler de unidades.
func NewUnitHandler(uc *usecase.UnitUseCase, listingUC *listing.UseCase, val *Validator) *UnitHandler {
	return &UnitHandler{uc: uc, listing: listingUC, val: val}
}

// Create godoc
// @Summary      Crear unidad
// @Tags         units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUnitRequest  true  "edificio, nombre, tipo, dirección"
// @Success      201   {object}  dto.UnitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/manager/units [post]
func (h *UnitHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUnitRequest
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
// @Summary      Listar unidades con búsqueda, filtros y orden
// @Tags         units
// @Security     Bearer
// @Produce      json
// @Param        search       query  string  false  "búsqueda"
// @Param        building_id  query  int     false  "edificio"
// @Param        zone_id      query  int     false  "zona"
// @Param        vacancy      query  string  false  "available | unavailable | pending"
// @Param        type         query  string  false  "tipo de unidad"
// @Param        sort         query  string  false  "campo de orden"
// @Param        dir          query  string  false  "asc | desc"
// @Success      200  {object}  dto.UnitListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/manager/units [get]
func (h *UnitHandler) List(c *fiber.Ctx) error {
	var q dto.UnitListQuery
	if ok, err := bindQuery(c, h.val, &q); !ok {
		return err
	}
	out, err := h.listing.Units(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetBySlug godoc
// @Summary      Unidad con edificio, zona e inquilinos
// @Tags         units
// @Security     Bearer
// @Produce      json
// @Param        slug  path  string  true  "slug de la unidad"
// @Success      200   {object}  dto.UnitDetailResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/manager/units/{slug} [get]
func (h *UnitHandler) GetBySlug(c *fiber.Ctx) error {
	out, err := h.uc.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateVacancy godoc
// @Summary      Cambiar la ocupación de la unidad
// @Tags         units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "id de la unidad"
// @Param        body  body  dto.UpdateVacancyRequest  true  "nuevo estado"
// @Success      200   {object}  dto.ActionResult
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/manager/units/{id}/vacancy [patch]
func (h *UnitHandler) UpdateVacancy(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	var in dto.UpdateVacancyRequest
	if ok, err := bindJSON(c, h.val, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateVacancy(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar unidad (en cascada)
// @Tags         units
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "id de la unidad"
// @Success      200  {object}  dto.ActionResult
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manager/units/{id} [delete]
func (h *UnitHandler) Delete(c *fiber.Ctx) error {
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
