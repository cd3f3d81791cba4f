package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/cidade-integra/cidade-integra-backend/internal/model"
)

// APIKeyHeader é o cabeçalho que transporta a chave de acesso.
const APIKeyHeader = "x-api-key"

// NewAPIKeyMiddleware retorna o middleware que protege rotas
// administrativas por chave de API. A comparação é em tempo constante.
// Sem chave configurada no servidor a rota fica indisponível (500);
// chave ausente ou incorreta resulta em 403.
func NewAPIKeyMiddleware(expectedKey string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if expectedKey == "" {
				slog.Error("chave de API não configurada no servidor",
					slog.String("path", r.URL.Path),
				)
				WriteInternalServerError(w)
				return
			}

			provided := r.Header.Get(APIKeyHeader)
			if provided == "" {
				slog.Warn("acesso negado: chave de API ausente",
					slog.String("path", r.URL.Path),
				)
				writeForbidden(w)
				return
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(expectedKey)) != 1 {
				slog.Warn("acesso negado: chave de API inválida",
					slog.String("path", r.URL.Path),
				)
				writeForbidden(w)
				return
			}

			slog.Info("acesso autorizado por chave de API",
				slog.String("path", r.URL.Path),
			)
			next.ServeHTTP(w, r)
		})
	}
}

func writeForbidden(w http.ResponseWriter) {
	WriteErrorResponse(w, http.StatusForbidden, &model.APIError{
		Code:     "FORBIDDEN",
		Message:  "Acesso negado.",
		Category: "auth",
		Action:   "Informe uma chave de API válida no cabeçalho x-api-key.",
	})
}
