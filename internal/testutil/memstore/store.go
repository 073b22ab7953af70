// Package memstore implementación en memoria de los puertos de repositorio y del TxRunner
// para pruebas de casos de uso. Reproduce las restricciones únicas y los borrados en
// cascada del esquema PostgreSQL; una transacción fallida restaura el estado previo.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estatedesk-api/internal/domain"
	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/internal/domain/repository"
)

var (
	_ repository.TxRunner        = (*Store)(nil)
	_ repository.StatsRepository = (*Store)(nil)
)

type tables struct {
	nextID    int64
	zones     map[int64]entity.Zone
	buildings map[int64]entity.Building
	units     map[int64]entity.Unit
	tenants   map[int64]entity.Tenant
	documents map[int64]entity.Document
	users     map[int64]entity.User
}

func newTables() *tables {
	return &tables{
		zones:     map[int64]entity.Zone{},
		buildings: map[int64]entity.Building{},
		units:     map[int64]entity.Unit{},
		tenants:   map[int64]entity.Tenant{},
		documents: map[int64]entity.Document{},
		users:     map[int64]entity.User{},
	}
}

func (t *tables) clone() *tables {
	c := newTables()
	c.nextID = t.nextID
	for k, v := range t.zones {
		c.zones[k] = v
	}
	for k, v := range t.buildings {
		c.buildings[k] = v
	}
	for k, v := range t.units {
		c.units[k] = v
	}
	for k, v := range t.tenants {
		c.tenants[k] = v
	}
	for k, v := range t.documents {
		c.documents[k] = v
	}
	for k, v := range t.users {
		c.users[k] = v
	}
	return c
}

// Store base de datos en memoria.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex
	t    *tables

	// FailDocumentCreate fuerza un error en DocumentRepository.Create (prueba de limpieza).
	FailDocumentCreate error
	// Now reloj para created_at/updated_at.
	Now func() time.Time
}

// New construye un Store vacío.
func New() *Store {
	return &Store{t: newTables(), Now: time.Now}
}

// Repos devuelve los repositorios sobre este Store.
func (s *Store) Repos() repository.Repos {
	return repository.Repos{
		Zones:     &ZoneRepo{s: s},
		Buildings: &BuildingRepo{s: s},
		Units:     &UnitRepo{s: s},
		Tenants:   &TenantRepo{s: s},
		Documents: &DocumentRepo{s: s},
		Users:     &UserRepo{s: s},
	}
}

// Run serializa las transacciones; si fn falla se restaura la foto previa.
func (s *Store) Run(ctx context.Context, fn func(r repository.Repos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.t.clone()
	s.mu.Unlock()

	if err := fn(s.Repos()); err != nil {
		s.mu.Lock()
		s.t = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) id() int64 {
	s.t.nextID++
	return s.t.nextID
}

func (s *Store) stamp() time.Time {
	return s.Now().UTC()
}

// ── cascadas ─────────────────────────────────────────────────────────────────

func (s *Store) deleteZone(id int64) {
	for bid, b := range s.t.buildings {
		if b.ZoneID == id {
			s.deleteBuilding(bid)
		}
	}
	delete(s.t.zones, id)
}

func (s *Store) deleteBuilding(id int64) {
	for uid, u := range s.t.units {
		if u.BuildingID == id {
			s.deleteUnit(uid)
		}
	}
	delete(s.t.buildings, id)
}

func (s *Store) deleteUnit(id int64) {
	for tid, t := range s.t.tenants {
		if t.UnitID == id {
			s.deleteTenant(tid)
		}
	}
	delete(s.t.units, id)
}

func (s *Store) deleteTenant(id int64) {
	for uid, u := range s.t.users {
		if u.TenantID != nil && *u.TenantID == id {
			delete(s.t.users, uid)
		}
	}
	delete(s.t.tenants, id)
}

// ── Stats ────────────────────────────────────────────────────────────────────

// CountBuildings implementa repository.StatsRepository.
func (s *Store) CountBuildings(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.t.buildings), nil
}

// CountUnits implementa repository.StatsRepository.
func (s *Store) CountUnits(ctx context.Context, vacancy entity.Vacancy) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, u := range s.t.units {
		if vacancy == "" || u.Vacancy == vacancy {
			n++
		}
	}
	return n, nil
}

// CountTenants implementa repository.StatsRepository.
func (s *Store) CountTenants(ctx context.Context, status entity.TenantStatus) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.t.tenants {
		if status == "" || t.Status == status {
			n++
		}
	}
	return n, nil
}

// AverageRent implementa repository.StatsRepository.
func (s *Store) AverageRent(ctx context.Context, status entity.TenantStatus) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	n := 0
	for _, t := range s.t.tenants {
		if status == "" || t.Status == status {
			sum = sum.Add(t.Rent)
			n++
		}
	}
	if n == 0 {
		return decimal.Zero, nil
	}
	return sum.Div(decimal.NewFromInt(int64(n))), nil
}

// ── Zones ────────────────────────────────────────────────────────────────────

// ZoneRepo implementa repository.ZoneRepository.
type ZoneRepo struct{ s *Store }

func (r *ZoneRepo) Create(ctx context.Context, z *entity.Zone) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.t.zones {
		if e.Name == z.Name || e.Slug == z.Slug {
			return domain.ErrDuplicate
		}
	}
	z.ID = r.s.id()
	z.CreatedAt, z.UpdatedAt = r.s.stamp(), r.s.stamp()
	r.s.t.zones[z.ID] = *z
	return nil
}

func (r *ZoneRepo) GetByID(ctx context.Context, id int64) (*entity.Zone, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if z, ok := r.s.t.zones[id]; ok {
		return &z, nil
	}
	return nil, nil
}

func (r *ZoneRepo) GetBySlug(ctx context.Context, slug string) (*entity.Zone, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, z := range r.s.t.zones {
		if z.Slug == slug {
			return &z, nil
		}
	}
	return nil, nil
}

func (r *ZoneRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	z, err := r.GetBySlug(ctx, slug)
	return z != nil, err
}

func (r *ZoneRepo) List(ctx context.Context) ([]*entity.Zone, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Zone, 0, len(r.s.t.zones))
	for _, z := range r.s.t.zones {
		z := z
		out = append(out, &z)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ZoneRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.deleteZone(id)
	return nil
}

// ── Buildings ────────────────────────────────────────────────────────────────

// BuildingRepo implementa repository.BuildingRepository.
type BuildingRepo struct{ s *Store }

func (r *BuildingRepo) Create(ctx context.Context, b *entity.Building) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.t.zones[b.ZoneID]; !ok {
		return domain.ErrNotFound
	}
	for _, e := range r.s.t.buildings {
		if e.Slug == b.Slug {
			return domain.ErrDuplicate
		}
	}
	b.ID = r.s.id()
	b.CreatedAt, b.UpdatedAt = r.s.stamp(), r.s.stamp()
	r.s.t.buildings[b.ID] = *b
	return nil
}

func (r *BuildingRepo) GetByID(ctx context.Context, id int64) (*entity.Building, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b, ok := r.s.t.buildings[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (r *BuildingRepo) GetBySlug(ctx context.Context, slug string) (*entity.Building, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.t.buildings {
		if b.Slug == slug {
			return &b, nil
		}
	}
	return nil, nil
}

func (r *BuildingRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	b, err := r.GetBySlug(ctx, slug)
	return b != nil, err
}

func (r *BuildingRepo) ListByZone(ctx context.Context, zoneID int64) ([]*entity.Building, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Building
	for _, b := range r.s.t.buildings {
		if b.ZoneID == zoneID {
			b := b
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *BuildingRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.deleteBuilding(id)
	return nil
}

// ── Units ────────────────────────────────────────────────────────────────────

// UnitRepo implementa repository.UnitRepository.
type UnitRepo struct{ s *Store }

func (r *UnitRepo) Create(ctx context.Context, u *entity.Unit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.t.buildings[u.BuildingID]; !ok {
		return domain.ErrNotFound
	}
	for _, e := range r.s.t.units {
		if e.Slug == u.Slug {
			return domain.ErrDuplicate
		}
	}
	if u.Vacancy == "" {
		u.Vacancy = entity.VacancyAvailable
	}
	u.ID = r.s.id()
	u.CreatedAt, u.UpdatedAt = r.s.stamp(), r.s.stamp()
	r.s.t.units[u.ID] = *u
	return nil
}

func (r *UnitRepo) GetByID(ctx context.Context, id int64) (*entity.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.t.units[id]; ok {
		return &u, nil
	}
	return nil, nil
}

// GetForUpdate en memoria equivale a GetByID: Run ya serializa las transacciones.
func (r *UnitRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Unit, error) {
	return r.GetByID(ctx, id)
}

func (r *UnitRepo) GetBySlug(ctx context.Context, slug string) (*entity.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.t.units {
		if u.Slug == slug {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UnitRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	u, err := r.GetBySlug(ctx, slug)
	return u != nil, err
}

func (r *UnitRepo) ListByBuilding(ctx context.Context, buildingID int64) ([]*entity.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Unit
	for _, u := range r.s.t.units {
		if u.BuildingID == buildingID {
			u := u
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *UnitRepo) ListByZone(ctx context.Context, zoneID int64) ([]*entity.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Unit
	for _, u := range r.s.t.units {
		if b, ok := r.s.t.buildings[u.BuildingID]; ok && b.ZoneID == zoneID {
			u := u
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *UnitRepo) UpdateVacancy(ctx context.Context, id int64, v entity.Vacancy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.t.units[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Vacancy = v
	u.UpdatedAt = r.s.stamp()
	r.s.t.units[id] = u
	return nil
}

func (r *UnitRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.deleteUnit(id)
	return nil
}

// ── Tenants ──────────────────────────────────────────────────────────────────

// TenantRepo implementa repository.TenantRepository.
type TenantRepo struct{ s *Store }

func (r *TenantRepo) Create(ctx context.Context, t *entity.Tenant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.t.units[t.UnitID]; !ok {
		return domain.ErrNotFound
	}
	for _, e := range r.s.t.tenants {
		if strings.EqualFold(e.Email, t.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	if t.Status == "" {
		t.Status = entity.TenantActive
	}
	t.ID = r.s.id()
	t.CreatedAt, t.UpdatedAt = r.s.stamp(), r.s.stamp()
	r.s.t.tenants[t.ID] = *t
	return nil
}

func (r *TenantRepo) GetByID(ctx context.Context, id int64) (*entity.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.t.tenants[id]; ok {
		return &t, nil
	}
	return nil, nil
}

// GetForUpdate en memoria equivale a GetByID.
func (r *TenantRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Tenant, error) {
	return r.GetByID(ctx, id)
}

func (r *TenantRepo) ListByUnit(ctx context.Context, unitID int64) ([]*entity.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Tenant
	for _, t := range r.s.t.tenants {
		if t.UnitID == unitID {
			t := t
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TenantRepo) ListByZone(ctx context.Context, zoneID int64) ([]*entity.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Tenant
	for _, t := range r.s.t.tenants {
		u := r.s.t.units[t.UnitID]
		if b, ok := r.s.t.buildings[u.BuildingID]; ok && b.ZoneID == zoneID {
			t := t
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TenantRepo) CountActiveByUnit(ctx context.Context, unitID, exceptID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, t := range r.s.t.tenants {
		if t.UnitID == unitID && t.ID != exceptID && t.Status == entity.TenantActive {
			n++
		}
	}
	return n, nil
}

func (r *TenantRepo) UpdateStatus(ctx context.Context, id int64, status entity.TenantStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.t.tenants[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.Status = status
	t.UpdatedAt = r.s.stamp()
	r.s.t.tenants[id] = t
	return nil
}

func (r *TenantRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.deleteTenant(id)
	return nil
}

// ── Documents ────────────────────────────────────────────────────────────────

// DocumentRepo implementa repository.DocumentRepository.
type DocumentRepo struct{ s *Store }

func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailDocumentCreate != nil {
		return r.s.FailDocumentCreate
	}
	if d.VisibleToTenants == "" {
		d.VisibleToTenants = entity.VisibleNo
	}
	d.ID = r.s.id()
	d.CreatedAt, d.UpdatedAt = r.s.stamp(), r.s.stamp()
	r.s.t.documents[d.ID] = *d
	return nil
}

func (r *DocumentRepo) GetByID(ctx context.Context, id int64) (*entity.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d, ok := r.s.t.documents[id]; ok {
		return &d, nil
	}
	return nil, nil
}

func (r *DocumentRepo) ListByOwner(ctx context.Context, owner entity.DocumentOwner, folder string) ([]*entity.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Document
	for _, d := range r.s.t.documents {
		if d.Owner != owner {
			continue
		}
		if folder != "" {
			if d.FolderPath == nil || (*d.FolderPath != folder && !strings.HasPrefix(*d.FolderPath, folder+"/")) {
				continue
			}
		}
		d := d
		out = append(out, &d)
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *DocumentRepo) Folders(ctx context.Context, owner entity.DocumentOwner) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, d := range r.s.t.documents {
		if d.Owner == owner && d.FolderPath != nil && !seen[*d.FolderPath] {
			seen[*d.FolderPath] = true
			out = append(out, *d.FolderPath)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *DocumentRepo) ListVisibleForUnit(ctx context.Context, unitID int64) ([]*entity.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Document
	for _, d := range r.s.t.documents {
		if d.Owner == entity.UnitOwner(unitID) && d.VisibleToTenant() {
			d := d
			out = append(out, &d)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *DocumentRepo) UpdateVisibility(ctx context.Context, id int64, v entity.Visibility) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.t.documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.VisibleToTenants = v
	d.UpdatedAt = r.s.stamp()
	r.s.t.documents[id] = d
	return nil
}

func (r *DocumentRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.t.documents, id)
	return nil
}

func (r *DocumentRepo) DeleteSubtree(ctx context.Context, owner entity.DocumentOwner) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	owners := map[entity.DocumentOwner]bool{owner: true}
	switch owner.Kind {
	case entity.OwnerZone:
		for _, b := range r.s.t.buildings {
			if b.ZoneID == owner.ID {
				owners[entity.BuildingOwner(b.ID)] = true
			}
		}
		fallthrough
	case entity.OwnerBuilding:
		for _, u := range r.s.t.units {
			if owners[entity.BuildingOwner(u.BuildingID)] {
				owners[entity.UnitOwner(u.ID)] = true
			}
		}
	}
	var paths []string
	for id, d := range r.s.t.documents {
		if owners[d.Owner] {
			paths = append(paths, d.Path)
			delete(r.s.t.documents, id)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func sortNewestFirst(docs []*entity.Document) {
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].ID > docs[j].ID
		}
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
}

// ── Users ────────────────────────────────────────────────────────────────────

// UserRepo implementa repository.UserRepository.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.t.users {
		if u.TenantID != nil && e.TenantID != nil && *e.TenantID == *u.TenantID {
			return domain.ErrPortalAccessExists
		}
		if strings.EqualFold(e.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	u.ID = r.s.id()
	u.CreatedAt, u.UpdatedAt = r.s.stamp(), r.s.stamp()
	r.s.t.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.t.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.t.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByTenantID(ctx context.Context, tenantID int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.t.users {
		if u.TenantID != nil && *u.TenantID == tenantID {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.t.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = hash
	u.MustChangePassword = false
	u.UpdatedAt = r.s.stamp()
	r.s.t.users[id] = u
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.t.users, id)
	return nil
}
