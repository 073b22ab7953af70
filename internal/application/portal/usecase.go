// Package portal acceso de inquilinos al portal: alta y baja de la cuenta y vistas de autoservicio.
package portal

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/estatedesk-api/internal/application/dto"
	"github.com/jhoicas/estatedesk-api/internal/domain"
	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/internal/domain/repository"
	"github.com/jhoicas/estatedesk-api/pkg/logger"
)

const (
	passwordLength   = 12
	passwordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Acciones registradas en métricas.
const (
	ActionCreate = "create"
	ActionRemove = "remove"
)

// ActionRecorder registra altas y bajas de acceso (métricas).
type ActionRecorder interface {
	PortalAction(action string)
}

type nopRecorder struct{}

func (nopRecorder) PortalAction(string) {}

// UseCase casos de uso del portal.
type UseCase struct {
	repos   repository.Repos
	tx      repository.TxRunner
	metrics ActionRecorder
	log     *logger.Logger
}

// NewUseCase construye el caso de uso. metrics puede ser nil.
func NewUseCase(repos repository.Repos, tx repository.TxRunner, metrics ActionRecorder, log *logger.Logger) *UseCase {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &UseCase{repos: repos, tx: tx, metrics: metrics, log: log.Component("portal")}
}

// CreateAccess crea la cuenta de portal del inquilino con una contraseña temporal.
// La contraseña en claro solo se devuelve aquí; se guarda su hash bcrypt.
func (uc *UseCase) CreateAccess(ctx context.Context, tenantID int64) (*dto.PortalAccessResponse, error) {
	password, err := temporaryPassword()
	if err != nil {
		return nil, fmt.Errorf("generate password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	var user *entity.User
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		t, err := r.Tenants.GetForUpdate(ctx, tenantID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		existing, err := r.Users.GetByTenantID(ctx, t.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrPortalAccessExists
		}
		id := t.ID
		user = &entity.User{
			Name:               t.FullName(),
			Email:              t.Email,
			PasswordHash:       string(hash),
			Role:               entity.RoleTenant,
			TenantID:           &id,
			MustChangePassword: true,
		}
		return r.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.PortalAction(ActionCreate)
	uc.log.Info().Int64("tenant_id", tenantID).Int64("user_id", user.ID).Msg("acceso al portal creado")
	return &dto.PortalAccessResponse{UserID: user.ID, Email: user.Email, TemporaryPassword: password}, nil
}

// RemoveAccess elimina la cuenta de portal; el inquilino no se modifica.
func (uc *UseCase) RemoveAccess(ctx context.Context, tenantID int64) (*dto.ActionResult, error) {
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		t, err := r.Tenants.GetForUpdate(ctx, tenantID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		user, err := r.Users.GetByTenantID(ctx, t.ID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrNoPortalAccess
		}
		return r.Users.Delete(ctx, user.ID)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.PortalAction(ActionRemove)
	uc.log.Info().Int64("tenant_id", tenantID).Msg("acceso al portal eliminado")
	return &dto.ActionResult{Message: "Portal access removed."}, nil
}

// Me vista del inquilino autenticado con su unidad, edificio y zona.
func (uc *UseCase) Me(ctx context.Context, tenantID int64) (*dto.PortalMeResponse, error) {
	t, err := uc.repos.Tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	u, err := uc.repos.Units.GetByID(ctx, t.UnitID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	b, err := uc.repos.Buildings.GetByID(ctx, u.BuildingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	z, err := uc.repos.Zones.GetByID(ctx, b.ZoneID)
	if err != nil {
		return nil, err
	}
	if z == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.PortalMeResponse{
		Tenant:   dto.NewTenantResponse(t, time.Now()),
		Unit:     dto.NewUnitResponse(u),
		Building: dto.NewBuildingResponse(b),
		Zone:     dto.NewZoneResponse(z),
	}, nil
}

// Documents documentos de la unidad del inquilino marcados como visibles.
// Documentos de zona o edificio nunca se exponen al inquilino.
func (uc *UseCase) Documents(ctx context.Context, tenantID int64) (*dto.DocumentListResponse, error) {
	t, err := uc.repos.Tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	docs, err := uc.repos.Documents.ListVisibleForUnit(ctx, t.UnitID)
	if err != nil {
		return nil, err
	}
	out := &dto.DocumentListResponse{Items: make([]dto.DocumentResponse, 0, len(docs))}
	for _, d := range docs {
		out.Items = append(out.Items, dto.NewDocumentResponse(d))
	}
	return out, nil
}

// VisibleDocument devuelve el documento si el inquilino puede verlo; ErrNotFound si no,
// para no revelar documentos ajenos.
func (uc *UseCase) VisibleDocument(ctx context.Context, tenantID, docID int64) (*entity.Document, error) {
	t, err := uc.repos.Tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	d, err := uc.repos.Documents.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if d == nil || !d.VisibleToTenant() || d.Owner.ID != t.UnitID {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func temporaryPassword() (string, error) {
	max := big.NewInt(int64(len(passwordAlphabet)))
	buf := make([]byte, passwordLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = passwordAlphabet[n.Int64()]
	}
	return string(buf), nil
}
