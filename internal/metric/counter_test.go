package metric

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestCounterIncrementAndServe(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCounterWithRegistry(reg, "test_requests_total", "requests", "method", "outcome")
	c.Increment("POST", "ok")
	c.Increment("POST", "ok")
	c.Increment("GET", "invalid")

	if got := c.Value("POST", "ok"); got != 2 {
		t.Fatalf("expected 2, got %v", got)
	}
	if got := c.Value("GET", "invalid"); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}

	rec := httptest.NewRecorder()
	HandlerFor(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `test_requests_total{method="POST",outcome="ok"} 2`) {
		t.Fatalf("expected exposition to include counter, got %s", body)
	}
}
