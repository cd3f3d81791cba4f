// Package comment provê a lógica de domínio de comentários.
package comment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cidade-integra/cidade-integra-backend/internal/model"
	"github.com/cidade-integra/cidade-integra-backend/internal/repository"
)

// Service é a camada de serviço de comentários.
type Service struct {
	commentRepo repository.CommentRepository
	reportRepo  repository.ReportRepository
	userRepo    repository.UserRepository
}

// NewService cria uma nova instância de Service.
func NewService(
	commentRepo repository.CommentRepository,
	reportRepo repository.ReportRepository,
	userRepo repository.UserRepository,
) *Service {
	return &Service{
		commentRepo: commentRepo,
		reportRepo:  reportRepo,
		userRepo:    userRepo,
	}
}

// GetByID retorna o comentário com o id informado.
func (s *Service) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter comentário: %w", err)
	}
	if comment == nil {
		return nil, model.NewCommentNotFoundError(id)
	}
	return comment, nil
}

// ListByReport retorna os comentários de uma denúncia existente.
func (s *Service) ListByReport(ctx context.Context, reportID string) ([]*model.Comment, error) {
	report, err := s.reportRepo.FindByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter denúncia: %w", err)
	}
	if report == nil {
		return nil, model.NewReportNotFoundError(reportID)
	}

	comments, err := s.commentRepo.ListByReportID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar comentários: %w", err)
	}
	return comments, nil
}

// Create registra um comentário em uma denúncia existente, em nome de
// um usuário existente.
func (s *Service) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	report, err := s.reportRepo.FindByID(ctx, comment.ReportID)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter denúncia: %w", err)
	}
	if report == nil {
		return nil, model.NewReportNotFoundError(comment.ReportID)
	}

	author, err := s.userRepo.FindByID(ctx, comment.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("falha ao verificar o autor do comentário: %w", err)
	}
	if author == nil {
		return nil, model.NewUserNotFoundError(comment.AuthorID)
	}

	now := time.Now()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}

	if verr := comment.Validate(now); verr != nil {
		return nil, model.NewValidationFailedError(verr)
	}

	comment.ID = uuid.New().String()
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("falha ao registrar comentário: %w", err)
	}

	slog.Info("comentário registrado",
		slog.String("comment_id", comment.ID),
		slog.String("report_id", comment.ReportID),
	)

	return comment, nil
}

// Update altera a mensagem de um comentário existente.
func (s *Service) Update(ctx context.Context, id, message string) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("falha ao obter comentário: %w", err)
	}
	if comment == nil {
		return nil, model.NewCommentNotFoundError(id)
	}

	comment.Message = message
	if verr := comment.Validate(time.Now()); verr != nil {
		return nil, model.NewValidationFailedError(verr)
	}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("falha ao atualizar comentário: %w", err)
	}

	return comment, nil
}

// Delete remove um comentário existente.
func (s *Service) Delete(ctx context.Context, id string) error {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("falha ao obter comentário: %w", err)
	}
	if comment == nil {
		return model.NewCommentNotFoundError(id)
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("falha ao remover comentário: %w", err)
	}

	slog.Info("comentário removido", slog.String("comment_id", id))

	return nil
}
