package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// statusRecorder envolve http.ResponseWriter e registra o código de
// status escrito.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

// WriteHeader registra o código de status antes de delegar.
func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.written {
		sr.statusCode = code
		sr.written = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

// Write escreve os dados. Registra 200 quando WriteHeader não foi
// chamado.
func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.written {
		sr.statusCode = http.StatusOK
		sr.written = true
	}
	return sr.ResponseWriter.Write(b)
}

// HTTPStatusRecorder recebe o código de status de cada resposta.
type HTTPStatusRecorder interface {
	RecordHTTPStatus(statusCode int)
}

// NewLoggingMiddleware retorna o middleware de log estruturado JSON
// por requisição: method, path, status e duration_ms. Quando um
// coletor é informado, o status também é registrado nas métricas.
func NewLoggingMiddleware(logger *slog.Logger, collector HTTPStatusRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			durationMs := float64(duration.Nanoseconds()) / float64(time.Millisecond)

			if collector != nil {
				collector.RecordHTTPStatus(rec.statusCode)
			}

			level := slog.LevelInfo
			if rec.statusCode >= 500 {
				level = slog.LevelError
			} else if rec.statusCode >= 400 {
				level = slog.LevelWarn
			}

			logger.Log(r.Context(), level, "http_request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.statusCode),
				slog.Float64("duration_ms", durationMs),
			)
		})
	}
}
