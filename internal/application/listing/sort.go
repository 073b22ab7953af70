package listing

import (
	"github.com/jhoicas/estatedesk-api/internal/application/dto"
	"github.com/jhoicas/estatedesk-api/internal/domain/repository"
)

// Fields campos de orden aceptados por un listado y su campo por defecto.
type Fields struct {
	allowed map[string]bool
	def     string
}

func fields(def string, names ...string) Fields {
	f := Fields{allowed: make(map[string]bool, len(names)), def: def}
	for _, n := range names {
		f.allowed[n] = true
	}
	return f
}

var (
	BuildingFields = fields("name", "name", "street", "zone", "units_count", "occupancy", "created_at")
	UnitFields     = fields("name", "name", "type", "vacancy", "postcode", "building", "zone", "created_at")
	TenantFields   = fields("first_name", "first_name", "last_name", "full_name", "email", "rent", "status",
		"lease_end_date", "building", "zone", "created_at")
)

// Allowed indica si el campo se puede usar para ordenar.
func (f Fields) Allowed(field string) bool {
	return f.allowed[field]
}

// Next alterna la dirección si se vuelve a pedir el mismo campo; un campo nuevo empieza en asc.
func Next(current repository.Sort, field string) repository.Sort {
	if current.Field == field {
		if current.Dir == repository.Asc {
			return repository.Sort{Field: field, Dir: repository.Desc}
		}
		return repository.Sort{Field: field, Dir: repository.Asc}
	}
	return repository.Sort{Field: field, Dir: repository.Asc}
}

// Resolve arma el orden efectivo desde la consulta: sort/dir actuales y, si viene,
// toggle=<campo>. Un campo desconocido cae al campo por defecto.
func (f Fields) Resolve(q dto.ListQuery) repository.Sort {
	cur := repository.Sort{Field: q.Sort, Dir: repository.SortDir(q.Dir)}
	if !f.allowed[cur.Field] {
		cur.Field = f.def
	}
	if cur.Dir != repository.Desc {
		cur.Dir = repository.Asc
	}
	if q.Toggle != "" {
		if !f.allowed[q.Toggle] {
			return cur
		}
		return Next(cur, q.Toggle)
	}
	return cur
}

func sortState(s repository.Sort) dto.SortState {
	return dto.SortState{Field: s.Field, Dir: string(s.Dir)}
}
