// Package pdf genera la constancia de arrendamiento en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tenancy statement + fecha │ Zona / Edificio         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INQUILINO: Nombre + email + teléfono + estado               │
//	│  INMUEBLE: Unidad, dirección, código postal                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTRATO: Inicio | Fin | Renta | Vencimiento de renta       │
//	│  AVISOS: contrato por vencer / renta vencida                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DOCUMENTOS compartidos con el inquilino                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estatedesk-api/internal/application/reports"
)

const dateLayout = "02 Jan 2006"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarn    = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoStatementGenerator implementa reports.StatementGenerator usando Maroto v2.
type MarotoStatementGenerator struct {
	appName string
}

// NewMarotoStatementGenerator construye el generador; appName va como autor del PDF.
func NewMarotoStatementGenerator(appName string) *MarotoStatementGenerator {
	return &MarotoStatementGenerator{appName: appName}
}

// GenerateStatementPDF genera el PDF y devuelve sus bytes.
func (g *MarotoStatementGenerator) GenerateStatementPDF(_ context.Context, s *reports.Statement) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Tenancy statement", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tenantRow(s))
	m.AddRows(propertyRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(leaseRow(s))
	if r := noticeRow(s); r != nil {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(documentRows(s)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar constancia: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + fecha (izq) y zona/edificio (der).
func headerRow(s *reports.Statement) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("TENANCY STATEMENT", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Issued "+s.GeneratedAt.Format(dateLayout), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(s.Zone.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New(s.Building.Name, props.Text{
				Size: 9, Align: align.Right, Top: 7, Color: colorGray,
			}),
		),
	)
}

// tenantRow: datos del inquilino.
func tenantRow(s *reports.Statement) core.Row {
	t := s.Tenant
	name := t.FullName()
	if t.Title != nil && *t.Title != "" {
		name = *t.Title + " " + name
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("TENANT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Phone: %s   |   Status: %s",
				t.Email, nonEmpty(t.Phone, "-"), t.Status,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// propertyRow: unidad y dirección.
func propertyRow(s *reports.Statement) core.Row {
	u := s.Unit
	address := u.Address
	if u.Postcode != nil && *u.Postcode != "" {
		address += ", " + *u.Postcode
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PROPERTY", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s (%s)", u.Name, u.Type), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(address, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// leaseRow: fechas y renta en cuatro columnas.
func leaseRow(s *reports.Statement) core.Row {
	t := s.Tenant
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(value, props.Text{Size: 10, Top: 6}),
		)
	}
	return row.New(14).Add(
		cell("LEASE START", formatDate(t.LeaseStartDate)),
		cell("LEASE END", formatDate(t.LeaseEndDate)),
		cell("MONTHLY RENT", formatMoney(t.Rent)),
		cell("RENT DUE", formatDate(t.RentDueDate)),
	)
}

// noticeRow: avisos de contrato por vencer y renta vencida; nil si no hay.
func noticeRow(s *reports.Statement) core.Row {
	var notices []string
	if s.Flags.LeaseExpiringSoon {
		notices = append(notices, "Lease expires within 30 days.")
	}
	if s.Flags.RentOverdue {
		notices = append(notices, "Rent payment is overdue.")
	}
	if len(notices) == 0 {
		return nil
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(strings.Join(notices, "   "), props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorWarn, Top: 2,
		}),
	))
}

// documentRows: lista de documentos compartidos con el inquilino.
func documentRows(s *reports.Statement) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("SHARED DOCUMENTS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	if len(s.Documents) == 0 {
		return append(rows, row.New(6).Add(col.New(12).Add(
			text.New("No documents have been shared.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	for _, d := range s.Documents {
		rows = append(rows, row.New(6).Add(
			col.New(9).Add(text.New(d.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(d.CreatedAt.Format(dateLayout), props.Text{
				Size: 8, Top: 1, Align: align.Right, Color: colorGray,
			})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func formatDate(d *time.Time) string {
	if d == nil {
		return "-"
	}
	return d.Format(dateLayout)
}

func nonEmpty(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}

// formatMoney formatea con separador de miles y dos decimales.
// Ej: 1200.5 → "1,200.50", 999999.99 → "999,999.99"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + frac
}
