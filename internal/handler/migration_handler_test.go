package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cidade-integra/cidade-integra-backend/internal/middleware"
	"github.com/cidade-integra/cidade-integra-backend/internal/migration"
)

type mockMigrationService struct {
	runFn func(ctx context.Context) (*migration.Outcome, error)
}

func (m *mockMigrationService) Run(ctx context.Context) (*migration.Outcome, error) {
	return m.runFn(ctx)
}

// TestMigrationHandler_Run verifica o 200 com o resumo da execução.
func TestMigrationHandler_Run(t *testing.T) {
	svc := &mockMigrationService{
		runFn: func(ctx context.Context) (*migration.Outcome, error) {
			return &migration.Outcome{
				Users:   migration.CollectionOutcome{Created: 2, Updated: 1},
				Reports: migration.CollectionOutcome{Created: 3},
			}, nil
		},
	}

	h := NewMigrationHandler(svc)
	req := httptest.NewRequest(http.MethodPost, "/api/migration/run", nil)
	w := httptest.NewRecorder()
	h.Run(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp migrationResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(resp.Message, "2 criados") {
		t.Errorf("message = %q, want the run summary", resp.Message)
	}
}

// TestMigrationHandler_Run_Failure verifica o 500 com mensagem
// genérica: o detalhe só vai para o log.
func TestMigrationHandler_Run_Failure(t *testing.T) {
	svc := &mockMigrationService{
		runFn: func(ctx context.Context) (*migration.Outcome, error) {
			return nil, errors.New("mongo: connection refused at 10.0.0.9")
		},
	}

	h := NewMigrationHandler(svc)
	req := httptest.NewRequest(http.MethodPost, "/api/migration/run", nil)
	w := httptest.NewRecorder()
	h.Run(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if strings.Contains(w.Body.String(), "10.0.0.9") {
		t.Error("response should not leak internal error details")
	}
}

// TestMigrationRoute_RequiresAPIKey verifica que a rota protegida
// exige a chave antes de chegar ao serviço.
func TestMigrationRoute_RequiresAPIKey(t *testing.T) {
	called := false
	svc := &mockMigrationService{
		runFn: func(ctx context.Context) (*migration.Outcome, error) {
			called = true
			return &migration.Outcome{}, nil
		},
	}

	h := NewMigrationHandler(svc)
	protected := middleware.NewAPIKeyMiddleware("chave-secreta")(http.HandlerFunc(h.Run))

	req := httptest.NewRequest(http.MethodPost, "/api/migration/run", nil)
	w := httptest.NewRecorder()
	protected.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
	if called {
		t.Error("service should not run without a valid API key")
	}
}
