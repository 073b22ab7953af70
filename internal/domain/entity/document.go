package entity

import (
	"fmt"
	"time"
)

// OwnerKind tipo de entidad dueña de un documento.
type OwnerKind string

const (
	OwnerZone     OwnerKind = "zone"
	OwnerBuilding OwnerKind = "building"
	OwnerUnit     OwnerKind = "unit"
)

// Valid indica si el valor pertenece al enum.
func (k OwnerKind) Valid() bool {
	switch k {
	case OwnerZone, OwnerBuilding, OwnerUnit:
		return true
	}
	return false
}

// DocumentOwner referencia tipada al dueño de un documento (zona, edificio o unidad).
type DocumentOwner struct {
	Kind OwnerKind
	ID   int64
}

// ZoneOwner, BuildingOwner y UnitOwner constructores de conveniencia.
func ZoneOwner(id int64) DocumentOwner     { return DocumentOwner{Kind: OwnerZone, ID: id} }
func BuildingOwner(id int64) DocumentOwner { return DocumentOwner{Kind: OwnerBuilding, ID: id} }
func UnitOwner(id int64) DocumentOwner     { return DocumentOwner{Kind: OwnerUnit, ID: id} }

func (o DocumentOwner) String() string {
	return fmt.Sprintf("%s:%d", o.Kind, o.ID)
}

// Visibility bandera de visibilidad para inquilinos.
type Visibility string

const (
	VisibleYes Visibility = "yes"
	VisibleNo  Visibility = "no"
)

// Valid indica si el valor pertenece al enum.
func (v Visibility) Valid() bool {
	return v == VisibleYes || v == VisibleNo
}

// Toggle alterna yes <-> no.
func (v Visibility) Toggle() Visibility {
	if v == VisibleYes {
		return VisibleNo
	}
	return VisibleYes
}

// Document archivo adjunto a una zona, edificio o unidad.
type Document struct {
	ID               int64
	Name             string
	Path             string
	FolderPath       *string
	DocumentType     *string
	Year             *int
	Size             int64
	Type             string // MIME
	Owner            DocumentOwner
	VisibleToTenants Visibility
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// VisibleToTenant regla única de visibilidad: solo documentos de unidad marcados "yes".
func (d *Document) VisibleToTenant() bool {
	return d.Owner.Kind == OwnerUnit && d.VisibleToTenants == VisibleYes
}
