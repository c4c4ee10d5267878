package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danmuck/chaosctl/internal/controls"
	"github.com/danmuck/chaosctl/internal/testutil/testlog"
)

type nopModule struct{}

func (nopModule) Hooks() controls.Hooks               { return controls.Hooks{} }
func (nopModule) Capabilities() controls.Capabilities { return controls.Capabilities{} }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	reg := controls.NewRegistry()
	if err := reg.Register("pkg.mod", nopModule{}); err != nil {
		t.Fatalf("register module: %v", err)
	}

	srv := New(Config{Name: "chaosctl-test"}, reg)
	srv.SetControls([]controls.Control{
		{Name: "tracing", Provider: &controls.Provider{Module: "pkg.mod", Secrets: []string{"db"}}},
		{Name: "broken", Provider: &controls.Provider{Module: "missing.mod"}},
	})
	return srv
}

func doRequest(t *testing.T, srv *Server, method, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %s %s response: %v body=%s", method, path, err, rr.Body.String())
	}
	return rr, body
}

func TestHealthAndReady(t *testing.T) {
	testlog.Start(t)
	srv := newTestServer(t)

	rr, body := doRequest(t, srv, http.MethodGet, "/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if body["status"] != "ok" || body["service"] != "chaosctl-test" {
		t.Fatalf("unexpected health body: %#v", body)
	}

	rr, body = doRequest(t, srv, http.MethodGet, "/ready")
	if rr.Code != http.StatusOK || body["ready"] != true {
		t.Fatalf("unexpected ready response: %d %#v", rr.Code, body)
	}
}

func TestListControlsReportsResolution(t *testing.T) {
	testlog.Start(t)
	srv := newTestServer(t)

	rr, body := doRequest(t, srv, http.MethodGet, "/controls")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	list, ok := body["controls"].([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("expected two controls, got %#v", body)
	}
	first := list[0].(map[string]any)
	if first["name"] != "tracing" || first["resolved"] != true {
		t.Fatalf("unexpected first control: %#v", first)
	}
	second := list[1].(map[string]any)
	if second["name"] != "broken" || second["resolved"] != false {
		t.Fatalf("unexpected second control: %#v", second)
	}
}

func TestGetControlDetailAndMiss(t *testing.T) {
	testlog.Start(t)
	srv := newTestServer(t)

	rr, body := doRequest(t, srv, http.MethodGet, "/controls/tracing")
	if rr.Code != http.StatusOK || body["module"] != "pkg.mod" {
		t.Fatalf("unexpected detail response: %d %#v", rr.Code, body)
	}

	rr, _ = doRequest(t, srv, http.MethodGet, "/controls/nope")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown control, got %d", rr.Code)
	}
}

func TestValidateEndpoint(t *testing.T) {
	testlog.Start(t)
	srv := newTestServer(t)

	rr, body := doRequest(t, srv, http.MethodPost, "/controls/tracing/validate")
	if rr.Code != http.StatusOK || body["valid"] != true {
		t.Fatalf("expected valid control, got %d %#v", rr.Code, body)
	}

	rr, body = doRequest(t, srv, http.MethodPost, "/controls/broken/validate")
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unresolved module, got %d", rr.Code)
	}
	if body["valid"] != false || body["kind"] != "invalid-activity" {
		t.Fatalf("unexpected validation body: %#v", body)
	}
}

func TestListModules(t *testing.T) {
	testlog.Start(t)
	srv := newTestServer(t)

	rr, body := doRequest(t, srv, http.MethodGet, "/modules")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	modules, ok := body["modules"].([]any)
	if !ok || len(modules) != 1 || modules[0] != "pkg.mod" {
		t.Fatalf("unexpected modules response: %#v", body)
	}
}

func TestRequestIDHeaderSet(t *testing.T) {
	testlog.Start(t)
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header to be set")
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-1")
	rr = httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)
	if rr.Header().Get("X-Request-ID") != "req-1" {
		t.Fatalf("expected caller request id honored, got %q", rr.Header().Get("X-Request-ID"))
	}
}
