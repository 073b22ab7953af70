package dto

// PortalAccessResponse credenciales temporales; la contraseña solo se devuelve una vez.
type PortalAccessResponse struct {
	UserID            int64  `json:"user_id"`
	Email             string `json:"email"`
	TemporaryPassword string `json:"temporary_password"`
}

// PortalMeResponse vista del inquilino autenticado.
type PortalMeResponse struct {
	Tenant   TenantResponse   `json:"tenant"`
	Unit     UnitResponse     `json:"unit"`
	Building BuildingResponse `json:"building"`
	Zone     ZoneResponse     `json:"zone"`
}
