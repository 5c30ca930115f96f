package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/crm-api/pkg/metrics"
)

func TestIncLeadStatusChange(t *testing.T) {
	before := testutil.ToFloat64(metrics.LeadStatusChanges.WithLabelValues("new", "won"))
	metrics.IncLeadStatusChange("new", "won")
	after := testutil.ToFloat64(metrics.LeadStatusChanges.WithLabelValues("new", "won"))
	assert.Equal(t, before+1, after)
}

func TestIncOrderCreated(t *testing.T) {
	before := testutil.ToFloat64(metrics.OrdersCreated.WithLabelValues("created"))
	metrics.IncOrderCreated("created")
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.OrdersCreated.WithLabelValues("created")))
}

func TestRecordHistogramas(t *testing.T) {
	metrics.RecordHTTPRequestDuration("GET", "/api/leads", "200", 12*time.Millisecond)
	metrics.RecordDBQueryDuration("select", "wp_leads", 3*time.Millisecond)
	assert.Positive(t, testutil.CollectAndCount(metrics.HTTPRequestDuration))
	assert.Positive(t, testutil.CollectAndCount(metrics.DBQueryDuration))
}
