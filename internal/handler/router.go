package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cidade-integra/cidade-integra-backend/internal/metrics"
	"github.com/cidade-integra/cidade-integra-backend/internal/middleware"
)

// HealthChecker verifica a disponibilidade do banco relacional.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps agrupa as dependências necessárias para NewRouter.
type RouterDeps struct {
	// Infraestrutura
	HealthChecker     HealthChecker
	MetricsGatherer   prometheus.Gatherer
	MetricsCollector  middleware.HTTPStatusRecorder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	MigrationAPIKey   string

	// Serviços de domínio
	UserService      UserServiceInterface
	ReportService    ReportServiceInterface
	CommentService   CommentServiceInterface
	MigrationService MigrationServiceInterface
}

// NewRouter retorna o chi.Router com todos os endpoints da API e a
// cadeia de middlewares.
//
// Ordem de execução da cadeia:
//
//	Recovery → CORS → Logging → RateLimit
//
// /health e /metrics ficam fora do limite de requisições.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(slog.Default(), deps.MetricsCollector))

	userHandler := NewUserHandler(deps.UserService)
	reportHandler := NewReportHandler(deps.ReportService)
	commentHandler := NewCommentHandler(deps.CommentService)
	migrationHandler := NewMigrationHandler(deps.MigrationService)

	// --- rotas de infraestrutura ---

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if deps.HealthChecker != nil {
			if err := deps.HealthChecker.PingContext(req.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	// --- rotas da API ---

	r.Group(func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware())
		}

		r.Route("/api/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Post("/", userHandler.Create)
			r.Get("/by-email", userHandler.GetByEmail)
			r.Get("/{id}", userHandler.Get)
		})

		r.Route("/api/reports", func(r chi.Router) {
			r.Get("/pending", reportHandler.ListPending)
			r.Post("/", reportHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", reportHandler.Get)
				r.Patch("/status", reportHandler.UpdateStatus)
				r.Get("/comments", commentHandler.ListByReport)
			})
		})

		r.Route("/api/comments", func(r chi.Router) {
			r.Post("/", commentHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", commentHandler.Get)
				r.Put("/", commentHandler.Update)
				r.Delete("/", commentHandler.Delete)
			})
		})

		// Gatilho administrativo protegido por chave de API.
		r.Route("/api/migration", func(r chi.Router) {
			r.Use(middleware.NewAPIKeyMiddleware(deps.MigrationAPIKey))
			r.Post("/run", migrationHandler.Run)
		})
	})

	return r
}
