// Package occupancy deriva el estado de ocupación de una unidad a partir de sus inquilinos.
//
// Reglas:
//   - una unidad con al menos un inquilino activo está "unavailable";
//   - sin inquilinos activos vuelve a "available";
//   - "pending" solo se fija a mano y solo mientras no haya inquilinos activos.
package occupancy

import (
	"math"
	"time"

	"github.com/jhoicas/estatedesk-api/internal/domain"
	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
)

// LeaseWarningWindow ventana para marcar un contrato como "por vencer".
const LeaseWarningWindow = 30 * 24 * time.Hour

// Derive calcula la ocupación según el número de inquilinos activos.
func Derive(activeTenants int) entity.Vacancy {
	if activeTenants > 0 {
		return entity.VacancyUnavailable
	}
	return entity.VacancyAvailable
}

// CanAdmit verifica si un inquilino con el estado dado puede ocupar la unidad.
// activeOthers es el número de inquilinos activos de la unidad sin contar al propio inquilino.
func CanAdmit(activeOthers int, status entity.TenantStatus) error {
	if status == entity.TenantActive && activeOthers > 0 {
		return domain.ErrUnitOccupied
	}
	return nil
}

// ValidateManualVacancy valida un cambio de ocupación hecho por un gestor.
// "unavailable" solo lo produce Derive.
func ValidateManualVacancy(target entity.Vacancy, activeTenants int) error {
	switch target {
	case entity.VacancyAvailable, entity.VacancyPending:
		if activeTenants > 0 {
			return domain.ErrInvalidVacancy
		}
		return nil
	default:
		return domain.ErrInvalidVacancy
	}
}

// Rate porcentaje entero de unidades ocupadas; 0 si no hay unidades.
func Rate(occupied, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(occupied) / float64(total) * 100))
}

// LeaseExpiringSoon true si el fin del contrato es futuro y cae dentro de los próximos 30 días.
// Sin fecha de fin no hay aviso.
func LeaseExpiringSoon(end *time.Time, now time.Time) bool {
	return end != nil && end.After(now) && !end.After(now.Add(LeaseWarningWindow))
}

// RentOverdue true si la fecha de pago ya pasó. Sin fecha no hay mora.
func RentOverdue(due *time.Time, now time.Time) bool {
	return due != nil && due.Before(now)
}

// Flags banderas de contrato calculadas para un inquilino.
type Flags struct {
	LeaseExpiringSoon bool
	RentOverdue       bool
}

// FlagsFor calcula las banderas del inquilino en el instante now.
func FlagsFor(t *entity.Tenant, now time.Time) Flags {
	return Flags{
		LeaseExpiringSoon: LeaseExpiringSoon(t.LeaseEndDate, now),
		RentOverdue:       RentOverdue(t.RentDueDate, now),
	}
}
