package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cidade-integra/cidade-integra-backend/internal/model"
)

// PostgresAuditLogRepo é o repositório da trilha de auditoria sobre
// PostgreSQL.
type PostgresAuditLogRepo struct {
	db *sql.DB
}

// NewPostgresAuditLogRepo cria um PostgresAuditLogRepo.
func NewPostgresAuditLogRepo(db *sql.DB) *PostgresAuditLogRepo {
	return &PostgresAuditLogRepo{db: db}
}

// Create insere um registro de auditoria.
func (r *PostgresAuditLogRepo) Create(ctx context.Context, log *model.AuditLog) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_logs (id, level, message, detail, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		log.ID, log.Level, log.Message, log.Detail, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}
	return nil
}

// DeleteOlderThan remove registros anteriores ao instante dado e
// retorna a quantidade removida.
func (r *PostgresAuditLogRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM audit_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete audit logs: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return deleted, nil
}

// compile-time interface check
var _ AuditLogRepository = (*PostgresAuditLogRepo)(nil)
