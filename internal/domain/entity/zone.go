package entity

import "time"

// Zone área geográfica que agrupa edificios.
type Zone struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
