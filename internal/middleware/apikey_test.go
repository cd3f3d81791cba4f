package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func apiKeyHandler(expectedKey string) http.Handler {
	mw := NewAPIKeyMiddleware(expectedKey)
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

// TestAPIKeyMiddleware_ValidKey verifica que a chave correta libera o
// acesso.
func TestAPIKeyMiddleware_ValidKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/migration/run", nil)
	req.Header.Set(APIKeyHeader, "chave-secreta")
	w := httptest.NewRecorder()

	apiKeyHandler("chave-secreta").ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

// TestAPIKeyMiddleware_MissingKey verifica a recusa sem o cabeçalho.
func TestAPIKeyMiddleware_MissingKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/migration/run", nil)
	w := httptest.NewRecorder()

	apiKeyHandler("chave-secreta").ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

// TestAPIKeyMiddleware_WrongKey verifica a recusa com chave incorreta.
func TestAPIKeyMiddleware_WrongKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/migration/run", nil)
	req.Header.Set(APIKeyHeader, "chave-errada")
	w := httptest.NewRecorder()

	apiKeyHandler("chave-secreta").ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

// TestAPIKeyMiddleware_ServerKeyUnset verifica que a rota fica
// indisponível quando o servidor não tem chave configurada.
func TestAPIKeyMiddleware_ServerKeyUnset(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/migration/run", nil)
	req.Header.Set(APIKeyHeader, "qualquer")
	w := httptest.NewRecorder()

	apiKeyHandler("").ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
