package occupancy_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/estatedesk-api/internal/domain"
	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/internal/domain/occupancy"
)

func TestDerive(t *testing.T) {
	assert.Equal(t, entity.VacancyAvailable, occupancy.Derive(0))
	assert.Equal(t, entity.VacancyUnavailable, occupancy.Derive(1))
	assert.Equal(t, entity.VacancyUnavailable, occupancy.Derive(3))
}

func TestCanAdmit(t *testing.T) {
	assert.NoError(t, occupancy.CanAdmit(0, entity.TenantActive))
	assert.ErrorIs(t, occupancy.CanAdmit(1, entity.TenantActive), domain.ErrUnitOccupied)
	// inactivos y terminados no ocupan la unidad
	assert.NoError(t, occupancy.CanAdmit(1, entity.TenantInactive))
	assert.NoError(t, occupancy.CanAdmit(2, entity.TenantTerminated))
}

func TestValidateManualVacancy(t *testing.T) {
	assert.NoError(t, occupancy.ValidateManualVacancy(entity.VacancyPending, 0))
	assert.NoError(t, occupancy.ValidateManualVacancy(entity.VacancyAvailable, 0))
	assert.ErrorIs(t, occupancy.ValidateManualVacancy(entity.VacancyPending, 1), domain.ErrInvalidVacancy)
	assert.ErrorIs(t, occupancy.ValidateManualVacancy(entity.VacancyUnavailable, 0), domain.ErrInvalidVacancy)
	assert.ErrorIs(t, occupancy.ValidateManualVacancy(entity.Vacancy("rented"), 0), domain.ErrInvalidVacancy)
}

func TestRate(t *testing.T) {
	assert.Equal(t, 0, occupancy.Rate(0, 0))
	assert.Equal(t, 0, occupancy.Rate(0, 5))
	assert.Equal(t, 100, occupancy.Rate(4, 4))
	assert.Equal(t, 67, occupancy.Rate(2, 3))
	assert.Equal(t, 33, occupancy.Rate(1, 3))
	assert.Equal(t, 50, occupancy.Rate(1, 2))
}

func TestLeaseExpiringSoon(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	at := func(d time.Time) *time.Time { return &d }
	assert.True(t, occupancy.LeaseExpiringSoon(at(now.AddDate(0, 0, 10)), now))
	assert.True(t, occupancy.LeaseExpiringSoon(at(now.Add(occupancy.LeaseWarningWindow)), now))
	assert.False(t, occupancy.LeaseExpiringSoon(at(now.AddDate(0, 0, 31)), now))
	assert.False(t, occupancy.LeaseExpiringSoon(at(now.AddDate(0, 0, -1)), now), "un contrato vencido no está por vencer")
	assert.False(t, occupancy.LeaseExpiringSoon(nil, now), "sin fecha de fin no hay aviso")
}

func TestRentOverdue(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 1)
	assert.True(t, occupancy.RentOverdue(&past, now))
	assert.False(t, occupancy.RentOverdue(&future, now))
	assert.False(t, occupancy.RentOverdue(nil, now))
}

func TestFlagsFor(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, -3)
	end := now.AddDate(0, 0, 5)
	tenant := &entity.Tenant{LeaseEndDate: &end, RentDueDate: &due}
	f := occupancy.FlagsFor(tenant, now)
	assert.True(t, f.LeaseExpiringSoon)
	assert.True(t, f.RentOverdue)

	f = occupancy.FlagsFor(&entity.Tenant{}, now)
	assert.False(t, f.LeaseExpiringSoon)
	assert.False(t, f.RentOverdue)
}
