package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
)

func newTestServer(t *testing.T, apiURL string) *Server {
	t.Helper()
	mgr := writeConfig(t, filepath.Join(t.TempDir(), "config.yaml"), apiURL)
	srv, err := New(Config{ConfigManager: mgr, Logger: discardLogger()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv
}

func TestNew_Defaults(t *testing.T) {
	srv, err := New(Config{Logger: discardLogger()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := srv.Addr(); got != "127.0.0.1:3000" {
		t.Errorf("Addr() = %q, want 127.0.0.1:3000", got)
	}
	if srv.IsRunning() {
		t.Error("new server should not be running")
	}

	srv, err = New(Config{Host: "0.0.0.0", Port: "8080", Logger: discardLogger()})
	if err != nil {
		t.Fatal(err)
	}
	if got := srv.Addr(); got != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q, want overrides applied", got)
	}
}

func TestServer_Routes(t *testing.T) {
	be := newFakeBackend(t)
	srv := newTestServer(t, be.URL)

	tests := []struct {
		path   string
		status int
		want   string
	}{
		{"/health", http.StatusOK, `"status":"ok"`},
		{"/ready", http.StatusOK, `"backend":"ok"`},
		{"/", http.StatusOK, "Lumio AI"},
		{"/extraction", http.StatusOK, "Docling"},
		{"/static/style.css", http.StatusOK, ".sr-only"},
		{"/reports/r1", http.StatusOK, "<h1>Done</h1>"},
		{"/missing", http.StatusNotFound, "Page not found."},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("body missing %q", tt.want)
			}
		})
	}
}

func TestServer_MethodMismatch(t *testing.T) {
	srv := newTestServer(t, newFakeBackend(t).URL)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/reports", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestServer_ExtractionFlow(t *testing.T) {
	be := newFakeBackend(t)
	srv := newTestServer(t, be.URL)
	h := srv.Handler()

	post := func(path string, v url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(v.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := post("/extraction", url.Values{"provider": {"docling"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("select status = %d", rec.Code)
	}
	sessionPath := rec.Header().Get("Location")

	rec = post(sessionPath, url.Values{
		"_present": {"mode"},
		"mode":     {"accurate"},
		"_action":  {"start"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("start status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/reports/r1" {
		t.Errorf("Location = %q, want /reports/r1", loc)
	}
}
