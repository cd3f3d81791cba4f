// Package report provê a lógica de domínio de denúncias.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cidade-integra/cidade-integra-backend/internal/model"
	"github.com/cidade-integra/cidade-integra-backend/internal/repository"
)

// Service é a camada de serviço de denúncias.
type Service struct {
	reportRepo repository.ReportRepository
	userRepo   repository.UserRepository
}

// NewService cria uma nova instância de Service.
func NewService(reportRepo repository.ReportRepository, userRepo repository.UserRepository) *Service {
	return &Service{
		reportRepo: reportRepo,
		userRepo:   userRepo,
	}
}

// ListPending retorna as denúncias ainda não resolvidas nem rejeitadas.
func (s *Service) ListPending(ctx context.Context) ([]*model.Report, error) {
	reports, err := s.reportRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar denúncias pendentes: %w", err)
	}
	return reports, nil
}

// GetByID retorna a denúncia com o id informado.
func (s *Service) GetByID(ctx context.Context, id string) (*model.Report, error) {
	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter denúncia: %w", err)
	}
	if report == nil {
		return nil, model.NewReportNotFoundError(id)
	}
	return report, nil
}

// Create registra uma nova denúncia em nome de um usuário existente.
func (s *Service) Create(ctx context.Context, report *model.Report) (*model.Report, error) {
	owner, err := s.userRepo.FindByID(ctx, report.UserID)
	if err != nil {
		return nil, fmt.Errorf("falha ao verificar o autor da denúncia: %w", err)
	}
	if owner == nil {
		return nil, model.NewUserNotFoundError(report.UserID)
	}

	now := time.Now()
	if report.Status == "" {
		report.Status = model.ReportStatusPending
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = now
	}

	if verr := report.Validate(); verr != nil {
		return nil, model.NewValidationFailedError(verr)
	}

	report.ID = uuid.New().String()
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("falha ao registrar denúncia: %w", err)
	}

	slog.Info("denúncia registrada",
		slog.String("report_id", report.ID),
		slog.String("user_id", report.UserID),
	)

	return report, nil
}

// UpdateStatus altera o status de uma denúncia.
// A transição para resolved registra a data de resolução; a saída de
// resolved a limpa. A data de resolução nunca antecede a de criação.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*model.Report, error) {
	if !model.IsValidReportStatus(status) {
		return nil, model.NewInvalidStatusError(status)
	}
	status = strings.ToLower(strings.TrimSpace(status))

	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter denúncia: %w", err)
	}
	if report == nil {
		return nil, model.NewReportNotFoundError(id)
	}

	var resolvedAt *time.Time
	if status == model.ReportStatusResolved {
		now := time.Now()
		if report.ResolvedAt != nil {
			resolvedAt = report.ResolvedAt
		} else {
			resolvedAt = &now
		}
		if resolvedAt.Before(report.CreatedAt) {
			resolvedAt = &report.CreatedAt
		}
	}

	if err := s.reportRepo.UpdateStatus(ctx, id, status, resolvedAt); err != nil {
		return nil, fmt.Errorf("falha ao atualizar o status da denúncia: %w", err)
	}

	report.Status = status
	report.ResolvedAt = resolvedAt

	slog.Info("status da denúncia atualizado",
		slog.String("report_id", id),
		slog.String("status", status),
	)

	return report, nil
}
