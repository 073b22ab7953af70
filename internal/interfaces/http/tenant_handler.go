package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estatedesk-api/internal/application/dto"
	"github.com/jhoicas/estatedesk-api/internal/application/lease"
	"github.com/jhoicas/estatedesk-api/internal/application/listing"
	"github.com/jhoicas/estatedesk-api/internal/application/portal"
	"github.com/jhoicas/estatedesk-api/internal/application/reports"
)

// TenantHandler maneja inquilinos: alta, estado, listado, estado de cuenta y acceso al portal.
type TenantHandler struct {
	uc        *lease.TenantUseCase
	listing   *listing.UseCase
	portal    *portal.UseCase
	statement *reports.StatementUseCase
	val       *Validator
}

// NewTenantHandler construye el handler de inquilinos.
func NewTenantHandler(uc *lease.TenantUseCase, listingUC *listing.UseCase, portalUC *portal.UseCase, statement *reports.StatementUseCase, val *Validator) *TenantHandler {
	return &TenantHandler{uc: uc, listing: listingUC, portal: portalUC, statement: statement, val: val}
}

// Create godoc
// @Summary      Registrar inquilino en una unidad
// @Tags         tenants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "id de la unidad"
// @Param        body  body  dto.CreateTenantRequest  true  "datos del inquilino y contrato"
// @Success      201   {object}  dto.TenantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/manager/units/{id}/tenants [post]
func (h *TenantHandler) Create(c *fiber.Ctx) error {
	unitID, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	var in dto.CreateTenantRequest
	if ok, err := bindJSON(c, h.val, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), unitID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar inquilinos con búsqueda, filtros y orden
// @Tags         tenants
// @Security     Bearer
// @Produce      json
// @Param        search       query  string  false  "búsqueda"
// @Param        building_id  query  int     false  "edificio"
// @Param        zone_id      query  int     false  "zona"
// @Param        status       query  string  false  "active | inactive | terminated"
// @Param        portal       query  string  false  "has_user | no_user"
// @Param        sort         query  string  false  "campo de orden"
// @Param        dir          query  string  false  "asc | desc"
// @Success      200  {object}  dto.TenantListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/manager/tenants [get]
func (h *TenantHandler) List(c *fiber.Ctx) error {
	var q dto.TenantListQuery
	if ok, err := bindQuery(c, h.val, &q); !ok {
		return err
	}
	out, err := h.listing.Tenants(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Inquilino con unidad, edificio, zona y cuenta del portal
// @Tags         tenants
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "id del inquilino"
// @Success      200  {object}  dto.TenantDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manager/tenants/{id} [get]
func (h *TenantHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar el estado del inquilino
// @Tags         tenants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                            true  "id del inquilino"
// @Param        body  body  dto.ChangeTenantStatusRequest  true  "nuevo estado"
// @Success      200   {object}  dto.ActionResult
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/manager/tenants/{id}/status [patch]
func (h *TenantHandler) ChangeStatus(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	var in dto.ChangeTenantStatusRequest
	if ok, err := bindJSON(c, h.val, &in); !ok {
		return err
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar inquilino
// @Tags         tenants
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "id del inquilino"
// @Success      200  {object}  dto.ActionResult
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manager/tenants/{id} [delete]
func (h *TenantHandler) Delete(c *fiber.Ctx) error {
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

// Statement godoc
// @Summary      Estado de cuenta del inquilino en PDF
// @Tags         tenants
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  int  true  "id del inquilino"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manager/tenants/{id}/statement.pdf [get]
func (h *TenantHandler) Statement(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	pdf, filename, err := h.statement.Generate(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}

// CreatePortalAccess godoc
// @Summary      Dar acceso al portal (devuelve la contraseña temporal una sola vez)
// @Tags         tenants
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "id del inquilino"
// @Success      201  {object}  dto.PortalAccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/manager/tenants/{id}/portal-access [post]
func (h *TenantHandler) CreatePortalAccess(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	out, err := h.portal.CreateAccess(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemovePortalAccess godoc
// @Summary      Quitar el acceso al portal
// @Tags         tenants
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "id del inquilino"
// @Success      200  {object}  dto.ActionResult
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/manager/tenants/{id}/portal-access [delete]
func (h *TenantHandler) RemovePortalAccess(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	out, err := h.portal.RemoveAccess(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
