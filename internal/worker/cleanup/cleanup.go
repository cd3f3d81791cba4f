// Package cleanup provê o job de expurgo da trilha de auditoria.
// Registros de audit_logs além do período de retenção (padrão 90
// dias) são removidos em lote.
package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cidade-integra/cidade-integra-backend/internal/repository"
)

// CleanupJob remove registros de auditoria além do período de
// retenção. Idempotente: não havendo registros a remover, a execução
// termina sem erro.
type CleanupJob struct {
	auditRepo     repository.AuditLogRepository
	logger        *slog.Logger
	RetentionDays int // dias de retenção da auditoria (padrão: 90)
}

// NewCleanupJob cria um novo CleanupJob com retenção padrão de 90
// dias.
func NewCleanupJob(auditRepo repository.AuditLogRepository, logger *slog.Logger) *CleanupJob {
	return &CleanupJob{
		auditRepo:     auditRepo,
		logger:        logger,
		RetentionDays: 90,
	}
}

// Run remove os registros de auditoria com created_at anterior ao
// limite de retenção.
func (j *CleanupJob) Run(ctx context.Context) error {
	start := time.Now()
	cutoff := start.AddDate(0, 0, -j.RetentionDays)

	deletedCount, err := j.auditRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.Error("falha no expurgo da auditoria",
			slog.String("error", err.Error()),
			slog.Int("retention_days", j.RetentionDays),
		)
		return fmt.Errorf("falha no expurgo da auditoria: %w", err)
	}

	duration := time.Since(start)
	j.logger.Info("expurgo da auditoria concluído",
		slog.Int64("deleted_count", deletedCount),
		slog.Int("retention_days", j.RetentionDays),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	return nil
}
