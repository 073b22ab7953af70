package entity

import "time"

// Roles de usuario.
const (
	RoleStaff  = "staff"
	RoleTenant = "tenant"
)

// User cuenta de acceso. Los usuarios con rol tenant están ligados 1:1 a un Tenant.
type User struct {
	ID                 int64
	Name               string
	Email              string
	PasswordHash       string
	Role               string
	TenantID           *int64
	MustChangePassword bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
