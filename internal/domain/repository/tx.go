package repository

import "context"

// Repos conjunto de repositorios atados a una misma transacción.
type Repos struct {
	Zones     ZoneRepository
	Buildings BuildingRepository
	Units     UnitRepository
	Tenants   TenantRepository
	Documents DocumentRepository
	Users     UserRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
