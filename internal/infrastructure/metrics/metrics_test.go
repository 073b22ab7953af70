package metrics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estatedesk-api/internal/application/documents"
	"github.com/jhoicas/estatedesk-api/internal/application/lease"
	"github.com/jhoicas/estatedesk-api/internal/application/portal"
	"github.com/jhoicas/estatedesk-api/internal/infrastructure/metrics"
)

// Los puertos de métricas de los casos de uso los cumple *metrics.Metrics.
var (
	_ documents.UploadRecorder = (*metrics.Metrics)(nil)
	_ lease.TransitionRecorder = (*metrics.Metrics)(nil)
	_ portal.ActionRecorder    = (*metrics.Metrics)(nil)
)

func TestMetrics_Contadores(t *testing.T) {
	m := metrics.New()
	m.UploadResult("unit", documents.ResultOK)
	m.UploadResult("unit", documents.ResultOK)
	m.UploadResult("zone", documents.ResultRejected)
	m.TenantTransition("none", "active")
	m.PortalAction(portal.ActionCreate)
	m.ObserveHTTP("GET", "/api/manager/zones", 200, 15*time.Millisecond)

	expected := `
# HELP estatedesk_document_uploads_total Document uploads by owner kind and result.
# TYPE estatedesk_document_uploads_total counter
estatedesk_document_uploads_total{owner="unit",result="ok"} 2
estatedesk_document_uploads_total{owner="zone",result="rejected"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "estatedesk_document_uploads_total"))

	n, err := testutil.GatherAndCount(m.Registry(),
		"estatedesk_tenant_status_transitions_total",
		"estatedesk_portal_access_actions_total",
		"estatedesk_http_requests_total",
	)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestMetrics_NilNoHaceNada(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.UploadResult("unit", "ok")
		m.TenantTransition("active", "inactive")
		m.PortalAction("remove")
		m.ObserveHTTP("GET", "/", 200, time.Second)
	})
}
