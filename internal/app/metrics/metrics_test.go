package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew_RegistersCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.QuotesTotal.WithLabelValues("ME", "pdf").Inc()
	m.UnpricedLinesTotal.WithLabelValues("Visita").Inc()
	m.UnpricedLinesTotal.WithLabelValues("Visita").Inc()

	expected := `
# HELP orcamento_unpriced_lines_total Quote lines priced at zero because no price row matched
# TYPE orcamento_unpriced_lines_total counter
orcamento_unpriced_lines_total{service="Visita"} 2
`
	if err := testutil.CollectAndCompare(m.UnpricedLinesTotal, strings.NewReader(expected)); err != nil {
		t.Errorf("Unexpected metric value: %v", err)
	}
	if got := testutil.ToFloat64(m.QuotesTotal.WithLabelValues("ME", "pdf")); got != 1 {
		t.Errorf("quotes_total = %v, want 1", got)
	}
}

func TestNew_NilRegistry(t *testing.T) {
	if m := New(nil); m.Handler() == nil {
		t.Fatal("Handler returned nil")
	}
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.PDFErrorsTotal.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "orcamento_pdf_errors_total 1") {
		t.Errorf("body missing pdf error counter:\n%s", rec.Body.String())
	}
}
