package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserve_SinInitNoFalla(t *testing.T) {
	// Antes de Init los collectors son nil; los helpers no deben entrar en pánico.
	if httpRequests != nil {
		t.Skip("métricas ya inicializadas por otro test")
	}
	assert.NotPanics(t, func() {
		ObserveHTTPRequest("GET", "/api/invoices", 200, time.Millisecond)
		ObserveInvoicesReturned("list", 3)
		ObserveExport("xlsx", ResultSuccess, time.Millisecond)
	})
}

func TestObserve_ConInit(t *testing.T) {
	Init(nil)
	Init(nil) // idempotente

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/invoices/filter", "422"))
	ObserveHTTPRequest("GET", "/api/invoices/filter", 422, 5*time.Millisecond)
	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/invoices/filter", "422"))
	assert.Equal(t, before+1, after)

	ObserveExport("", "", time.Millisecond)
	assert.GreaterOrEqual(t, testutil.ToFloat64(exportTotal.WithLabelValues("unknown", ResultSuccess)), 1.0)
}
