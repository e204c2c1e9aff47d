package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	m := NewWithRegisterer("test", prometheus.NewRegistry())

	m.RecordHTTP(http.MethodPost, "/api/v1/bookings", http.StatusConflict, 20*time.Millisecond)
	m.RecordHTTP(http.MethodPost, "/api/v1/bookings", http.StatusConflict, 30*time.Millisecond)
	m.RecordAdmission("admitted")
	m.RecordLicenseCheck("check", "error")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/bookings", "409")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AdmissionDecisions.WithLabelValues("admitted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LicenseChecks.WithLabelValues("check", "error")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordHTTP(http.MethodGet, "/health", http.StatusOK, time.Millisecond)
		m.RecordAdmission("day_full")
		m.RecordLicenseCheck("activate", "success")
	})
}
