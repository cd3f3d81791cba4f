package migration

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cidade-integra/cidade-integra-backend/internal/model"
	"github.com/cidade-integra/cidade-integra-backend/internal/repository"
	"github.com/google/uuid"
)

// Auditor grava a trilha de auditoria da migração em melhor esforço.
// Falha ao gravar nunca interrompe a migração: o registro é rebaixado
// para o log da aplicação e ecoado no stderr.
type Auditor struct {
	repo repository.AuditLogRepository
}

// NewAuditor cria um Auditor sobre o repositório informado.
func NewAuditor(repo repository.AuditLogRepository) *Auditor {
	return &Auditor{repo: repo}
}

// Info grava um registro de nível Information.
func (a *Auditor) Info(ctx context.Context, message string) {
	a.append(ctx, model.AuditLevelInfo, message, nil)
}

// Warn grava um registro de nível Warning.
func (a *Auditor) Warn(ctx context.Context, message string) {
	a.append(ctx, model.AuditLevelWarning, message, nil)
}

// Error grava um registro de nível Error com o detalhe do erro.
func (a *Auditor) Error(ctx context.Context, message string, err error) {
	a.append(ctx, model.AuditLevelError, message, err)
}

// append persiste o registro. Nunca retorna erro.
func (a *Auditor) append(ctx context.Context, level, message string, detail error) {
	log := &model.AuditLog{
		ID:        uuid.New().String(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if detail != nil {
		log.Detail = detail.Error()
	}

	if err := a.repo.Create(ctx, log); err != nil {
		slog.Error("falha ao gravar registro de auditoria",
			slog.String("message", message),
			slog.String("error", err.Error()),
		)
		fmt.Fprintln(os.Stderr, message)
	}
}
