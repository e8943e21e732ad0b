package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/health/live", "/health/live"},
		{"/health/ready", "/health/ready"},
		{"/metrics", "/metrics"},
		{"/webhelp", "/webhelp/"},
		{"/webhelp/", "/webhelp/"},
		{"/webhelp/index.html", "/webhelp/*"},
		{"/webhelp/sub/page.html", "/webhelp/*"},
		{"/webhelpx", "other"},
		{"/favicon.ico", "other"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path, "/webhelp"); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, ожидается %q", tt.path, got, tt.want)
		}
	}
}

func TestMetricsMiddleware_PassesStatus(t *testing.T) {
	handler := MetricsMiddleware("/webhelp")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/webhelp/missing.html", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("статус = %d, ожидается 404", rec.Code)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Language", "fr")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("Error."))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/webhelp/x.html", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("лог не является JSON: %v (%s)", err, buf.String())
	}
	if entry["level"] != "WARN" {
		t.Errorf("level = %v, ожидается WARN для 404", entry["level"])
	}
	if entry["status"] != float64(404) {
		t.Errorf("status = %v, ожидается 404", entry["status"])
	}
	if entry["bytes"] != float64(len("Error.")) {
		t.Errorf("bytes = %v, ожидается %d", entry["bytes"], len("Error."))
	}
	if entry["language"] != "fr" {
		t.Errorf("language = %v, ожидается fr", entry["language"])
	}
	if entry["path"] != "/webhelp/x.html" {
		t.Errorf("path = %v", entry["path"])
	}
}
