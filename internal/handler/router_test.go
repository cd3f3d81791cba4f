package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubHealthChecker struct {
	err error
}

func (s *stubHealthChecker) PingContext(ctx context.Context) error { return s.err }

func newTestRouter(health HealthChecker) http.Handler {
	return NewRouter(&RouterDeps{
		HealthChecker:    health,
		UserService:      &mockUserService{},
		ReportService:    &mockReportService{},
		CommentService:   &mockCommentService{},
		MigrationService: &mockMigrationService{},
		MigrationAPIKey:  "segredo",
	})
}

// TestRouter_Health verifica a resposta de saúde com o banco
// disponível.
func TestRouter_Health(t *testing.T) {
	router := newTestRouter(&stubHealthChecker{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s, want status ok", rec.Body.String())
	}
}

// TestRouter_Health_Unavailable verifica a resposta com o banco fora
// do ar.
func TestRouter_Health_Unavailable(t *testing.T) {
	router := newTestRouter(&stubHealthChecker{err: errors.New("connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	if !strings.Contains(rec.Body.String(), `"status":"unhealthy"`) {
		t.Errorf("body = %s, want status unhealthy", rec.Body.String())
	}
}

// TestRouter_MigrationRequiresKey verifica que o gatilho de migração
// fica atrás da chave de API.
func TestRouter_MigrationRequiresKey(t *testing.T) {
	router := newTestRouter(&stubHealthChecker{})

	req := httptest.NewRequest(http.MethodPost, "/api/migration/run", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

// TestRouter_UnknownRoute verifica o 404 padrão para rotas fora da API.
func TestRouter_UnknownRoute(t *testing.T) {
	router := newTestRouter(&stubHealthChecker{})

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
