// health.go — probes и метрики webhelp.
// /health/live — процесс жив
// /health/ready — корень справки читается, есть языки и язык по умолчанию
// /metrics — Prometheus
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dcplusplus/webhelp/internal/config"
	"github.com/dcplusplus/webhelp/internal/content"
	"github.com/dcplusplus/webhelp/internal/language"
)

// Статусы проверок.
const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusFail     = "fail"
)

// ContentSource — то, что readiness probe знает о корне справки.
type ContentSource interface {
	language.DirectoryChecker
	Languages() ([]content.Language, error)
}

// HealthHandler — обработчик probes и /metrics.
type HealthHandler struct {
	library         ContentSource
	defaultLanguage string
	promHandler     http.Handler
}

// NewHealthHandler создаёт обработчик. library может быть nil,
// тогда readiness отвечает 503.
func NewHealthHandler(library ContentSource, defaultLanguage string) *HealthHandler {
	return &HealthHandler{
		library:         library,
		defaultLanguage: defaultLanguage,
		promHandler:     promhttp.Handler(),
	}
}

type checkResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type liveResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Service   string `json:"service"`
}

type readyChecks struct {
	ContentRoot     checkResult `json:"content_root"`
	DefaultLanguage checkResult `json:"default_language"`
}

type readyResponse struct {
	Status    string      `json:"status"`
	Timestamp string      `json:"timestamp"`
	Version   string      `json:"version"`
	Languages int         `json:"languages"`
	Checks    readyChecks `json:"checks"`
}

// HealthLive всегда отвечает 200.
func (h *HealthHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, liveResponse{
		Status:    statusOK,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   "webhelp",
	})
}

// HealthReady проверяет корень справки и директорию языка по умолчанию.
// 503 только при статусе fail.
func (h *HealthHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	resp := readyResponse{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   config.Version,
	}
	resp.Languages, resp.Checks.ContentRoot = h.checkContentRoot()
	resp.Checks.DefaultLanguage = h.checkDefaultLanguage()
	resp.Status = overallStatus(resp.Checks.ContentRoot.Status, resp.Checks.DefaultLanguage.Status)

	code := http.StatusOK
	if resp.Status == statusFail {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}

// GetMetrics — Prometheus метрики.
func (h *HealthHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.promHandler.ServeHTTP(w, r)
}

// checkContentRoot возвращает число языков и результат проверки корня.
func (h *HealthHandler) checkContentRoot() (int, checkResult) {
	if h.library == nil {
		return 0, checkResult{Status: statusFail, Message: "не инициализирован"}
	}
	langs, err := h.library.Languages()
	if err != nil {
		return 0, checkResult{Status: statusFail, Message: err.Error()}
	}
	if len(langs) == 0 {
		return 0, checkResult{Status: statusDegraded, Message: "нет языковых директорий"}
	}
	return len(langs), checkResult{Status: statusOK}
}

func (h *HealthHandler) checkDefaultLanguage() checkResult {
	if h.library == nil {
		return checkResult{Status: statusFail, Message: "не инициализирован"}
	}
	if !h.library.DirectoryExists(h.defaultLanguage) {
		return checkResult{
			Status:  statusDegraded,
			Message: fmt.Sprintf("нет директории %q", h.defaultLanguage),
		}
	}
	return checkResult{Status: statusOK}
}

// overallStatus — худший из статусов: fail > degraded > ok.
func overallStatus(statuses ...string) string {
	result := statusOK
	for _, s := range statuses {
		switch s {
		case statusFail:
			return statusFail
		case statusDegraded:
			result = statusDegraded
		}
	}
	return result
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
