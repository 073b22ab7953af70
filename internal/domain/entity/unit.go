package entity

import (
	"fmt"
	"time"
)

// Vacancy estado de ocupación de una unidad.
type Vacancy string

const (
	VacancyAvailable   Vacancy = "available"
	VacancyUnavailable Vacancy = "unavailable"
	VacancyPending     Vacancy = "pending"
)

// Valid indica si el valor pertenece al enum.
func (v Vacancy) Valid() bool {
	switch v {
	case VacancyAvailable, VacancyUnavailable, VacancyPending:
		return true
	}
	return false
}

// Unit unidad arrendable dentro de un edificio.
type Unit struct {
	ID         int64
	Name       string
	Slug       string
	Type       string
	Address    string
	Postcode   *string
	BuildingID int64
	Vacancy    Vacancy
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UnitSlugSource texto base del slug de unidad: nombre, slug del edificio y segundos unix.
func UnitSlugSource(name, buildingSlug string, at time.Time) string {
	return fmt.Sprintf("%s-%s-%d", name, buildingSlug, at.Unix())
}
