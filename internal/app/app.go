// Package app monta e executa a aplicação.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/cidade-integra/cidade-integra-backend/internal/comment"
	"github.com/cidade-integra/cidade-integra-backend/internal/config"
	"github.com/cidade-integra/cidade-integra-backend/internal/database"
	"github.com/cidade-integra/cidade-integra-backend/internal/handler"
	"github.com/cidade-integra/cidade-integra-backend/internal/logger"
	"github.com/cidade-integra/cidade-integra-backend/internal/metrics"
	"github.com/cidade-integra/cidade-integra-backend/internal/middleware"
	"github.com/cidade-integra/cidade-integra-backend/internal/migration"
	"github.com/cidade-integra/cidade-integra-backend/internal/report"
	"github.com/cidade-integra/cidade-integra-backend/internal/repository"
	"github.com/cidade-integra/cidade-integra-backend/internal/source"
	"github.com/cidade-integra/cidade-integra-backend/internal/user"
	"github.com/cidade-integra/cidade-integra-backend/internal/worker/cleanup"
)

// Init inicializa a aplicação: configura o log estruturado JSON e
// carrega a configuração das variáveis de ambiente. Quando um writer é
// informado, os logs são direcionados a ele.
func Init(w io.Writer) (*config.Config, error) {
	logger.SetupDefault(w)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run é o ponto de entrada principal da aplicação.
// Interpreta o subcomando dos argumentos e inicia o modo
// correspondente. args recebe os.Args[1:].
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck é leve e dispensa a inicialização completa
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
	)

	switch cmd {
	case CommandServe:
		return runServe(cfg)
	case CommandMigrate:
		return runMigrate(cfg)
	case CommandCleanup:
		return runCleanup(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe inicia o servidor da API.
// Abre as conexões com o banco relacional e com a origem de
// documentos, monta as dependências e sobe o servidor HTTP. SIGINT ou
// SIGTERM dispara o desligamento gracioso.
func runServe(cfg *config.Config) error {
	// 1. Conexão com o banco relacional
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	// 2. Conexão com a origem de documentos
	ctx, cancel := context.WithTimeout(context.Background(), cfg.SourceTimeout)
	client, err := source.Connect(ctx, cfg.MongoURI)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to connect to source store: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			slog.Error("source store disconnect failed", slog.String("error", err.Error()))
		}
	}()

	slog.Info("source store connection established")

	// 3. Repositórios
	userRepo := repository.NewPostgresUserRepo(db)
	reportRepo := repository.NewPostgresReportRepo(db)
	commentRepo := repository.NewPostgresCommentRepo(db)
	auditRepo := repository.NewPostgresAuditLogRepo(db)

	// 4. Métricas
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 5. Serviços de domínio
	userService := user.NewService(userRepo)
	reportService := report.NewService(reportRepo, userRepo)
	commentService := comment.NewService(commentRepo, reportRepo, userRepo)

	srcStore := source.NewMongoStore(client.Database(cfg.MongoDatabase), cfg.SourceTimeout)
	auditor := migration.NewAuditor(auditRepo)
	migrationService := migration.NewService(
		srcStore, userRepo, reportRepo, commentRepo, auditor, collector,
	)

	// 6. Roteador
	rateLimiterCfg := middleware.DefaultRateLimiterConfig()
	if cfg.RateLimitGeneral > 0 {
		rateLimiterCfg.GeneralRate = rate.Limit(float64(cfg.RateLimitGeneral) / 60.0)
		rateLimiterCfg.GeneralBurst = cfg.RateLimitGeneral
	}
	rateLimiter := middleware.NewRateLimiter(rateLimiterCfg)
	defer rateLimiter.Stop()

	router := handler.NewRouter(&handler.RouterDeps{
		HealthChecker:     db,
		MetricsGatherer:   registry,
		MetricsCollector:  collector,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		MigrationAPIKey:   cfg.MigrationAPIKey,

		UserService:      userService,
		ReportService:    reportService,
		CommentService:   commentService,
		MigrationService: migrationService,
	})

	// 7. Servidor HTTP
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate aplica as migrações de schema pendentes, em ordem.
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runCleanup executa o expurgo da trilha de auditoria uma vez.
func runCleanup(cfg *config.Config) error {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	job := cleanup.NewCleanupJob(repository.NewPostgresAuditLogRepo(db), slog.Default())
	if cfg.LogRetentionDays > 0 {
		job.RetentionDays = cfg.LogRetentionDays
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	return job.Run(ctx)
}

// runHealthcheck envia uma requisição ao endpoint /health do servidor
// local e reporta o resultado.
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL oculta as credenciais da URL do banco nos logs.
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
