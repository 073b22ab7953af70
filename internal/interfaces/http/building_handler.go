package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estatedesk-api/internal/application/dto"
	"github.com/jhoicas/estatedesk-api/internal/application/listing"
	"github.com/jhoicas/estatedesk-api/internal/application/usecase"
)

// BuildingHandler maneja los edificios y su listado.
type BuildingHandler struct {
	uc      *usecase.BuildingUseCase
	listing *listing.UseCase
	val     *Validator
}

// NewBuildingHandler construye el handler de edificios.
func NewBuildingHandler(uc *usecase.BuildingUseCase, listingUC *listing.UseCase, val *Validator) *BuildingHandler {
	return &BuildingHandler{uc: uc, listing: listingUC, val: val}
}

// Create godoc
// @Summary      Crear edificio
// @Tags         buildings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBuildingRequest  true  "zona, nombre, calle"
// @Success      201   {object}  dto.BuildingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/manager/buildings [post]
func (h *BuildingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBuildingRequest
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
// @Summary      Listar edificios con búsqueda, filtro por zona y orden
// @Tags         buildings
// @Security     Bearer
// @Produce      json
// @Param        search   query  string  false  "búsqueda"
// @Param        zone_id  query  int     false  "zona"
// @Param        sort     query  string  false  "campo de orden"
// @Param        dir      query  string  false  "asc | desc"
// @Param        toggle   query  string  false  "alternar orden sobre el campo"
// @Success      200  {object}  dto.BuildingListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/manager/buildings [get]
func (h *BuildingHandler) List(c *fiber.Ctx) error {
	var q dto.BuildingListQuery
	if ok, err := bindQuery(c, h.val, &q); !ok {
		return err
	}
	out, err := h.listing.Buildings(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetBySlug godoc
// @Summary      Edificio con su zona, unidades y ocupación
// @Tags         buildings
// @Security     Bearer
// @Produce      json
// @Param        slug  path  string  true  "slug del edificio"
// @Success      200   {object}  dto.BuildingDetailResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/manager/buildings/{slug} [get]
func (h *BuildingHandler) GetBySlug(c *fiber.Ctx) error {
	out, err := h.uc.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar edificio (en cascada)
// @Tags         buildings
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "id del edificio"
// @Success      200  {object}  dto.ActionResult
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manager/buildings/{id} [delete]
func (h *BuildingHandler) Delete(c *fiber.Ctx) error {
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
