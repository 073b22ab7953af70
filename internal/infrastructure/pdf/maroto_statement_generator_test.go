package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estatedesk-api/internal/application/reports"
	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
	"github.com/jhoicas/estatedesk-api/internal/domain/occupancy"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0.00", formatMoney(decimal.Zero))
	assert.Equal(t, "950.00", formatMoney(decimal.RequireFromString("950")))
	assert.Equal(t, "1,200.50", formatMoney(decimal.RequireFromString("1200.5")))
	assert.Equal(t, "999,999.99", formatMoney(decimal.RequireFromString("999999.99")))
}

func TestGenerateStatementPDF(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	postcode := "N1 9GU"
	s := &reports.Statement{
		Tenant: &entity.Tenant{
			ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
			Rent: decimal.RequireFromString("1200.50"), LeaseStartDate: &start, LeaseEndDate: &end,
			Status: entity.TenantActive,
		},
		Unit:        &entity.Unit{Name: "Flat 1", Type: "flat", Address: "1 High Street", Postcode: &postcode},
		Building:    &entity.Building{Name: "Tower A"},
		Zone:        &entity.Zone{Name: "North"},
		Flags:       occupancy.Flags{LeaseExpiringSoon: true},
		Documents:   []*entity.Document{{Name: "lease.pdf", CreatedAt: start}},
		GeneratedAt: start.AddDate(0, 11, 10),
	}

	out, err := NewMarotoStatementGenerator("estatedesk").GenerateStatementPDF(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
