package entity

import "time"

// Building edificio dentro de una zona.
type Building struct {
	ID        int64
	Name      string
	Slug      string
	Street    *string
	ZoneID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SlugSource texto base del slug: nombre y calle (si existe).
func (b *Building) SlugSource() string {
	if b.Street == nil || *b.Street == "" {
		return b.Name
	}
	return b.Name + "-" + *b.Street
}
