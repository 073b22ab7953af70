package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TenantStatus estado del contrato del inquilino.
type TenantStatus string

const (
	TenantActive     TenantStatus = "active"
	TenantInactive   TenantStatus = "inactive"
	TenantTerminated TenantStatus = "terminated"
)

// Valid indica si el valor pertenece al enum.
func (s TenantStatus) Valid() bool {
	switch s {
	case TenantActive, TenantInactive, TenantTerminated:
		return true
	}
	return false
}

// Tenant persona que arrienda una unidad.
type Tenant struct {
	ID             int64
	Title          *string
	FirstName      string
	LastName       string
	Email          string
	Phone          *string
	UnitID         int64
	Rent           decimal.Decimal
	LeaseStartDate *time.Time
	LeaseEndDate   *time.Time
	RentDueDate    *time.Time
	Status         TenantStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName nombre y apellido sin espacios sobrantes.
func (t *Tenant) FullName() string {
	return strings.TrimSpace(t.FirstName + " " + t.LastName)
}

// IsActive atajo para Status == active.
func (t *Tenant) IsActive() bool {
	return t.Status == TenantActive
}
