package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estatedesk-api/internal/application/auth"
	"github.com/jhoicas/estatedesk-api/internal/application/documents"
	"github.com/jhoicas/estatedesk-api/internal/application/dto"
	"github.com/jhoicas/estatedesk-api/internal/application/lease"
	"github.com/jhoicas/estatedesk-api/internal/application/portal"
	"github.com/jhoicas/estatedesk-api/internal/application/reports"
	"github.com/jhoicas/estatedesk-api/internal/application/usecase"
	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/internal/infrastructure/pdf"
	"github.com/jhoicas/estatedesk-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/estatedesk-api/internal/interfaces/http"
	"github.com/jhoicas/estatedesk-api/internal/testutil/memstore"
	"github.com/jhoicas/estatedesk-api/pkg/logger"
)

type testAPI struct {
	app   *fiber.App
	store *memstore.Store
	staff string
}

// newTestAPI monta el router completo sobre el store en memoria y un almacenamiento afero.
// El listado no se monta: necesita Postgres.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := memstore.New()
	repos := store.Repos()
	files := storage.NewLocal(afero.NewMemMapFs(), "/storage")
	log := logger.Nop()

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(repos.Users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 5, Issuer: testIssuer}),
		ZoneUC:      usecase.NewZoneUseCase(repos, store, files, log),
		BuildingUC:  usecase.NewBuildingUseCase(repos, store, files, log),
		UnitUC:      usecase.NewUnitUseCase(repos, store, files, log),
		TenantUC:    lease.NewTenantUseCase(repos, store, nil, log),
		PortalUC:    portal.NewUseCase(repos, store, nil, log),
		DocumentUC:  documents.NewUseCase(repos, files, 0, nil, log),
		StatementUC: reports.NewStatementUseCase(repos, pdf.NewMarotoStatementGenerator("EstateDesk")),
		JWTSecret:   testJWTSecret,
	})
	return &testAPI{app: app, store: store, staff: tokenForRole(t, entity.RoleStaff)}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (a *testAPI) upload(t *testing.T, path, fileName, content string, fields map[string]string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		part, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, a.staff)
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func bearer(t *testing.T, token string) string {
	t.Helper()
	require.NotEmpty(t, token)
	return "Bearer " + token
}

func tenantBody(email string) map[string]interface{} {
	return map[string]interface{}{
		"first_name":       "Grace",
		"last_name":        "Hopper",
		"email":            email,
		"rent":             "1200.50",
		"lease_start_date": "2026-01-01",
		"lease_end_date":   "2027-01-01",
	}
}

func TestRouter_JerarquiaYOcupacion(t *testing.T) {
	api := newTestAPI(t)

	var zone dto.ZoneResponse
	resp := api.do(t, http.MethodPost, "/api/manager/zones", api.staff, map[string]string{"name": "North Side"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &zone)
	assert.Equal(t, "north-side", zone.Slug)

	var building dto.BuildingResponse
	resp = api.do(t, http.MethodPost, "/api/manager/buildings", api.staff, map[string]interface{}{"zone_id": zone.ID, "name": "Tower A", "street": "High Street"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &building)

	var unit dto.UnitResponse
	resp = api.do(t, http.MethodPost, "/api/manager/units", api.staff, map[string]interface{}{
		"building_id": building.ID, "name": "Flat 1", "type": "Flat", "address": "1 High Street",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &unit)
	assert.Equal(t, "available", unit.Vacancy)

	resp = api.do(t, http.MethodPost, fmt.Sprintf("/api/manager/units/%d/tenants", unit.ID), api.staff, tenantBody("grace@example.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	var detail dto.UnitDetailResponse
	resp = api.do(t, http.MethodGet, "/api/manager/units/"+unit.Slug, api.staff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &detail)
	assert.Equal(t, "unavailable", detail.Vacancy)
	require.NotNil(t, detail.CurrentTenant)
	assert.Equal(t, "Grace Hopper", detail.CurrentTenant.FullName)

	var errBody dto.ErrorResponse
	resp = api.do(t, http.MethodPost, fmt.Sprintf("/api/manager/units/%d/tenants", unit.ID), api.staff, tenantBody("other@example.com"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	decode(t, resp, &errBody)
	assert.Equal(t, "UNIT_OCCUPIED", errBody.Code)

	resp = api.do(t, http.MethodDelete, fmt.Sprintf("/api/manager/zones/%d", zone.ID), api.staff, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(t, http.MethodGet, "/api/manager/units/"+unit.Slug, api.staff, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_ValidacionPorCampo(t *testing.T) {
	api := newTestAPI(t)

	var errBody dto.ErrorResponse
	resp := api.do(t, http.MethodPost, "/api/manager/zones", api.staff, map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, resp, &errBody)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Contains(t, errBody.Fields, "name")

	fx := api.store.SeedHierarchy()
	body := tenantBody("not-an-email")
	body["lease_end_date"] = "01/01/2027"
	resp = api.do(t, http.MethodPost, fmt.Sprintf("/api/manager/units/%d/tenants", fx.Unit.ID), api.staff, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody = dto.ErrorResponse{}
	decode(t, resp, &errBody)
	assert.Contains(t, errBody.Fields, "email")
	assert.Contains(t, errBody.Fields, "lease_end_date")

	resp = api.do(t, http.MethodPatch, "/api/manager/units/abc/vacancy", api.staff, map[string]string{"vacancy": "pending"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_InquilinoNoEntraAlBackOffice(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(t, http.MethodGet, "/api/manager/zones", tokenForRole(t, entity.RoleTenant), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(t, http.MethodGet, "/api/manager/zones", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_CargaDeDocumentos(t *testing.T) {
	api := newTestAPI(t)
	fx := api.store.SeedHierarchy()

	var doc dto.DocumentResponse
	resp := api.upload(t, "/api/manager/units/"+fx.Unit.Slug+"/documents", "lease.pdf", "%PDF-1.4 lease", map[string]string{"visible_to_tenants": "yes"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &doc)
	assert.Equal(t, "lease.pdf", doc.Name)
	assert.Equal(t, "yes", doc.VisibleToTenants)

	var errBody dto.ErrorResponse
	resp = api.upload(t, "/api/manager/buildings/"+fx.Building.Slug+"/documents", "photo.png", "png", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, resp, &errBody)
	assert.Equal(t, "FILE_TYPE_NOT_ALLOWED", errBody.Code)
	assert.Contains(t, errBody.Message, "Failed to upload document:")

	errBody = dto.ErrorResponse{}
	resp = api.upload(t, "/api/manager/units/"+fx.Unit.Slug+"/documents", "", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, resp, &errBody)
	assert.Equal(t, "NO_FILE", errBody.Code)

	errBody = dto.ErrorResponse{}
	resp = api.upload(t, "/api/manager/zones/"+fx.Zone.Slug+"/documents", "accounts.pdf", "x", map[string]string{"category": "company_accounts"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, resp, &errBody)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.NotEmpty(t, errBody.Fields)

	var list dto.DocumentListResponse
	resp = api.do(t, http.MethodGet, "/api/manager/units/"+fx.Unit.Slug+"/documents", api.staff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &list)
	require.Len(t, list.Items, 1)

	resp = api.do(t, http.MethodGet, fmt.Sprintf("/api/manager/documents/%d/download", doc.ID), api.staff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 lease", string(raw))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "lease.pdf")

	var toggled dto.ActionResult
	resp = api.do(t, http.MethodPatch, fmt.Sprintf("/api/manager/documents/%d/visibility", doc.ID), api.staff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &toggled)
	assert.Equal(t, "Document is now hidden from tenants.", toggled.Message)
}

func TestRouter_PortalDelInquilino(t *testing.T) {
	api := newTestAPI(t)
	fx := api.store.SeedHierarchy()
	tenant := api.store.SeedTenant(fx.Unit.ID, "ada@example.com", entity.TenantActive)

	resp := api.upload(t, "/api/manager/units/"+fx.Unit.Slug+"/documents", "welcome.txt", "hello", map[string]string{"visible_to_tenants": "yes"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var visible dto.DocumentResponse
	decode(t, resp, &visible)
	resp = api.upload(t, "/api/manager/units/"+fx.Unit.Slug+"/documents", "internal.txt", "secret", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var hidden dto.DocumentResponse
	decode(t, resp, &hidden)

	var access dto.PortalAccessResponse
	resp = api.do(t, http.MethodPost, fmt.Sprintf("/api/manager/tenants/%d/portal-access", tenant.ID), api.staff, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &access)

	resp = api.do(t, http.MethodPost, fmt.Sprintf("/api/manager/tenants/%d/portal-access", tenant.ID), api.staff, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	var login dto.LoginResponse
	resp = api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ada@example.com", Password: access.TemporaryPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &login)
	tok := bearer(t, login.Token)

	var errBody dto.ErrorResponse
	resp = api.do(t, http.MethodGet, "/api/portal/me", tok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	decode(t, resp, &errBody)
	assert.Equal(t, "PASSWORD_CHANGE_REQUIRED", errBody.Code)

	resp = api.do(t, http.MethodPut, "/api/auth/password", tok, dto.ChangePasswordRequest{CurrentPassword: access.TemporaryPassword, NewPassword: "my-own-password"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var me dto.PortalMeResponse
	resp = api.do(t, http.MethodGet, "/api/portal/me", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &me)
	assert.Equal(t, tenant.ID, me.Tenant.ID)
	assert.Equal(t, fx.Unit.Slug, me.Unit.Slug)

	var docs dto.DocumentListResponse
	resp = api.do(t, http.MethodGet, "/api/portal/documents", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &docs)
	require.Len(t, docs.Items, 1)
	assert.Equal(t, visible.ID, docs.Items[0].ID)

	resp = api.do(t, http.MethodGet, fmt.Sprintf("/api/portal/documents/%d/download", visible.ID), tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "hello", string(raw))

	resp = api.do(t, http.MethodGet, fmt.Sprintf("/api/portal/documents/%d/url", hidden.ID), tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(t, http.MethodGet, "/api/manager/zones", tok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_EstadoDeCuentaPDF(t *testing.T) {
	api := newTestAPI(t)
	fx := api.store.SeedHierarchy()
	tenant := api.store.SeedTenant(fx.Unit.ID, "ada@example.com", entity.TenantActive)

	resp := api.do(t, http.MethodGet, fmt.Sprintf("/api/manager/tenants/%d/statement.pdf", tenant.ID), api.staff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp = api.do(t, http.MethodGet, "/api/manager/tenants/999/statement.pdf", api.staff, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_CambioDeEstadoLiberaLaUnidad(t *testing.T) {
	api := newTestAPI(t)
	fx := api.store.SeedHierarchy()

	var created dto.TenantResponse
	resp := api.do(t, http.MethodPost, fmt.Sprintf("/api/manager/units/%d/tenants", fx.Unit.ID), api.staff, tenantBody("grace@example.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &created)

	var res dto.ActionResult
	resp = api.do(t, http.MethodPatch, fmt.Sprintf("/api/manager/tenants/%d/status", created.ID), api.staff, map[string]string{"status": "terminated"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &res)
	assert.Equal(t, "Tenant status updated from active to terminated.", res.Message)

	var detail dto.TenantDetailResponse
	resp = api.do(t, http.MethodGet, fmt.Sprintf("/api/manager/tenants/%d", created.ID), api.staff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &detail)
	assert.Equal(t, "terminated", detail.Status)
	assert.Equal(t, "available", detail.Unit.Vacancy)
}
