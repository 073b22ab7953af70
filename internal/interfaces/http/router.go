package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estatedesk-api/internal/application/auth"
	"github.com/jhoicas/estatedesk-api/internal/application/documents"
	"github.com/jhoicas/estatedesk-api/internal/application/lease"
	"github.com/jhoicas/estatedesk-api/internal/application/listing"
	"github.com/jhoicas/estatedesk-api/internal/application/portal"
	"github.com/jhoicas/estatedesk-api/internal/application/reports"
	"github.com/jhoicas/estatedesk-api/internal/application/usecase"
	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ZoneUC      *usecase.ZoneUseCase
	BuildingUC  *usecase.BuildingUseCase
	UnitUC      *usecase.UnitUseCase
	TenantUC    *lease.TenantUseCase
	PortalUC    *portal.UseCase
	DocumentUC  *documents.UseCase
	ListingUC   *listing.UseCase
	StatementUC *reports.StatementUseCase
	Validator   *Validator
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	val := deps.Validator
	if val == nil {
		val = NewValidator()
	}
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, val)
	api.Post("/auth/login", authHandler.Login)

	// Cualquier usuario autenticado
	api.Put("/auth/password", AuthMiddleware(deps.JWTSecret), authHandler.ChangePassword)

	// Back office (staff)
	manager := api.Group("/manager", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleStaff))
	manager.Post("/staff", authHandler.CreateStaff)

	docHandler := NewDocumentHandler(deps.DocumentUC)

	zoneHandler := NewZoneHandler(deps.ZoneUC, val)
	zones := manager.Group("/zones")
	zones.Get("/", zoneHandler.List)
	zones.Post("/", zoneHandler.Create)
	zones.Get("/:slug", zoneHandler.GetBySlug)
	zones.Get("/:slug/units", zoneHandler.Units)
	zones.Get("/:slug/tenants", zoneHandler.Tenants)
	zones.Get("/:slug/documents", docHandler.List(entity.OwnerZone))
	zones.Post("/:slug/documents", docHandler.Upload(entity.OwnerZone))
	zones.Delete("/:id", zoneHandler.Delete)

	buildingHandler := NewBuildingHandler(deps.BuildingUC, deps.ListingUC, val)
	buildings := manager.Group("/buildings")
	buildings.Get("/", buildingHandler.List)
	buildings.Post("/", buildingHandler.Create)
	buildings.Get("/:slug", buildingHandler.GetBySlug)
	buildings.Get("/:slug/documents", docHandler.List(entity.OwnerBuilding))
	buildings.Post("/:slug/documents", docHandler.Upload(entity.OwnerBuilding))
	buildings.Delete("/:id", buildingHandler.Delete)

	tenantHandler := NewTenantHandler(deps.TenantUC, deps.ListingUC, deps.PortalUC, deps.StatementUC, val)

	unitHandler := NewUnitHandler(deps.UnitUC, deps.ListingUC, val)
	units := manager.Group("/units")
	units.Get("/", unitHandler.List)
	units.Post("/", unitHandler.Create)
	units.Get("/:slug", unitHandler.GetBySlug)
	units.Get("/:slug/documents", docHandler.List(entity.OwnerUnit))
	units.Post("/:slug/documents", docHandler.Upload(entity.OwnerUnit))
	units.Patch("/:id/vacancy", unitHandler.UpdateVacancy)
	units.Post("/:id/tenants", tenantHandler.Create)
	units.Delete("/:id", unitHandler.Delete)

	tenants := manager.Group("/tenants")
	tenants.Get("/", tenantHandler.List)
	tenants.Get("/:id", tenantHandler.Get)
	tenants.Patch("/:id/status", tenantHandler.ChangeStatus)
	tenants.Delete("/:id", tenantHandler.Delete)
	tenants.Get("/:id/statement.pdf", tenantHandler.Statement)
	tenants.Post("/:id/portal-access", tenantHandler.CreatePortalAccess)
	tenants.Delete("/:id/portal-access", tenantHandler.RemovePortalAccess)

	docs := manager.Group("/documents")
	docs.Get("/types", docHandler.Types)
	docs.Patch("/:id/visibility", docHandler.ToggleVisibility)
	docs.Get("/:id/url", docHandler.URL)
	docs.Get("/:id/download", docHandler.Download)
	docs.Delete("/:id", docHandler.Delete)

	// Portal del inquilino
	portalHandler := NewPortalHandler(deps.PortalUC, deps.DocumentUC)
	portalGroup := api.Group("/portal",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleTenant),
		RequirePasswordChanged(deps.AuthUC),
	)
	portalGroup.Get("/me", portalHandler.Me)
	portalGroup.Get("/documents", portalHandler.Documents)
	portalGroup.Get("/documents/:id/url", portalHandler.DocumentURL)
	portalGroup.Get("/documents/:id/download", portalHandler.DownloadDocument)
}
