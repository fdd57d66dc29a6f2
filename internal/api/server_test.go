package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tornsuite/consigliere/internal/config"
	"github.com/tornsuite/consigliere/internal/monitor"
)

type stubStatus struct {
	status monitor.Status
}

func (s *stubStatus) Status() monitor.Status { return s.status }

type stubChecker struct {
	err error
}

func (s *stubChecker) HealthCheck() error { return s.err }

func newTestRouter(checkErr error) http.Handler {
	mon := &stubStatus{status: monitor.Status{TickCount: 9, CompanyEnabled: true}}
	return NewRouter(mon, &stubChecker{err: checkErr}, &config.Config{
		CORSAllowOrigins: []string{"*"},
	})
}

func doGet(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRootKeepAlive(t *testing.T) {
	rec := doGet(t, newTestRouter(nil), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "alive" {
		t.Errorf("body = %v", body)
	}
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestRouter(nil)
	if rec := doGet(t, h, "/health"); rec.Code != http.StatusOK {
		t.Errorf("/health status = %d", rec.Code)
	}
	if rec := doGet(t, h, "/health/state"); rec.Code != http.StatusOK {
		t.Errorf("/health/state status = %d", rec.Code)
	}
}

func TestHealthStateUnavailable(t *testing.T) {
	h := newTestRouter(errors.New("database locked"))
	rec := doGet(t, h, "/health/state")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error.Code != "STATE_UNAVAILABLE" {
		t.Errorf("error code = %q", body.Error.Code)
	}
}

func TestGetStatus(t *testing.T) {
	rec := doGet(t, newTestRouter(nil), "/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var status monitor.Status
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if status.TickCount != 9 || !status.CompanyEnabled {
		t.Errorf("status = %+v", status)
	}
}
