package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandlerExposesRecordedMetrics(t *testing.T) {
	done := BeginRequest()
	done("get", "/api/v1/products", http.StatusOK)
	RecordLogin("success")
	RecordOrderCreated()
	RecordTask("order:status_email", errors.New("smtp down"))

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`eticaret_http_requests_total{method="GET",route="/api/v1/products",status="200"}`,
		`eticaret_auth_login_attempts_total{result="success"}`,
		`eticaret_orders_created_total`,
		`eticaret_queue_tasks_total{status="failed",type="order:status_email"}`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}
}
