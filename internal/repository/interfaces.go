// Package repository define as interfaces de persistência de dados.
package repository

import (
	"context"
	"time"

	"github.com/cidade-integra/cidade-integra-backend/internal/model"
)

// UserRepository é a interface de persistência de usuários.
type UserRepository interface {
	// FindByID busca o usuário pelo id interno. Retorna nil quando não
	// encontrado.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByExternalID busca o usuário pelo id atribuído pela origem.
	// Retorna nil quando não encontrado.
	FindByExternalID(ctx context.Context, externalID string) (*model.User, error)

	// FindByEmail busca o usuário pelo e-mail normalizado. Retorna nil
	// quando não encontrado.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// List retorna todos os usuários ordenados por data de criação.
	List(ctx context.Context) ([]*model.User, error)

	// Create insere um novo usuário.
	Create(ctx context.Context, user *model.User) error

	// Update atualiza todos os campos mutáveis do usuário.
	Update(ctx context.Context, user *model.User) error
}

// ReportRepository é a interface de persistência de denúncias.
// Operações de escrita persistem o endereço (1:1) na mesma transação.
type ReportRepository interface {
	// FindByID busca a denúncia pelo id interno, incluindo o endereço.
	// Retorna nil quando não encontrada.
	FindByID(ctx context.Context, id string) (*model.Report, error)

	// FindByExternalID busca a denúncia pelo id atribuído pela origem.
	// Retorna nil quando não encontrada.
	FindByExternalID(ctx context.Context, externalID string) (*model.Report, error)

	// ListPending retorna as denúncias com status "pending".
	ListPending(ctx context.Context) ([]*model.Report, error)

	// Create insere a denúncia e seu endereço na mesma transação.
	Create(ctx context.Context, report *model.Report) error

	// Update atualiza a denúncia e faz upsert do endereço na mesma
	// transação.
	Update(ctx context.Context, report *model.Report) error

	// UpdateStatus atualiza o status e o resolved_at da denúncia.
	UpdateStatus(ctx context.Context, id, status string, resolvedAt *time.Time) error
}

// CommentRepository é a interface de persistência de comentários.
type CommentRepository interface {
	// FindByID busca o comentário pelo id interno. Retorna nil quando
	// não encontrado.
	FindByID(ctx context.Context, id string) (*model.Comment, error)

	// FindByExternalID busca o comentário pelo id atribuído pela
	// origem. Retorna nil quando não encontrado.
	FindByExternalID(ctx context.Context, externalID string) (*model.Comment, error)

	// ListByReportID retorna os comentários de uma denúncia em ordem
	// de criação.
	ListByReportID(ctx context.Context, reportID string) ([]*model.Comment, error)

	// Create insere um novo comentário.
	Create(ctx context.Context, comment *model.Comment) error

	// Update atualiza o texto e os metadados do comentário.
	Update(ctx context.Context, comment *model.Comment) error

	// Delete remove o comentário pelo id interno.
	Delete(ctx context.Context, id string) error
}

// AuditLogRepository é a interface de persistência da trilha de
// auditoria.
type AuditLogRepository interface {
	// Create insere um registro de auditoria.
	Create(ctx context.Context, log *model.AuditLog) error

	// DeleteOlderThan remove registros anteriores ao instante dado e
	// retorna a quantidade removida.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
