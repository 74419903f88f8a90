package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPaymentsReconciled_Increments(t *testing.T) {
	before := testutil.ToFloat64(PaymentsReconciled.WithLabelValues(SourceWebhook, OutcomeApplied))
	PaymentsReconciled.WithLabelValues(SourceWebhook, OutcomeApplied).Inc()
	after := testutil.ToFloat64(PaymentsReconciled.WithLabelValues(SourceWebhook, OutcomeApplied))
	assert.Equal(t, before+1, after)
}

func TestHandler_ExposesMetrics(t *testing.T) {
	CheckoutsStarted.WithLabelValues("product").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "academy_checkouts_started_total")
}
