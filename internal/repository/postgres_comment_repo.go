package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cidade-integra/cidade-integra-backend/internal/model"
)

// PostgresCommentRepo é o repositório de comentários sobre PostgreSQL.
type PostgresCommentRepo struct {
	db *sql.DB
}

// NewPostgresCommentRepo cria um PostgresCommentRepo.
func NewPostgresCommentRepo(db *sql.DB) *PostgresCommentRepo {
	return &PostgresCommentRepo{db: db}
}

const commentColumns = `id, external_id, report_id, author_id, avatar_color,
	message, role, created_at`

// scanComment lê uma linha de comments para um model.Comment.
func scanComment(row interface{ Scan(...any) error }) (*model.Comment, error) {
	comment := &model.Comment{}
	err := row.Scan(
		&comment.ID, &comment.ExternalID, &comment.ReportID,
		&comment.AuthorID, &comment.AvatarColor, &comment.Message,
		&comment.Role, &comment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// FindByID busca o comentário pelo id interno. Retorna nil quando não
// encontrado.
func (r *PostgresCommentRepo) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	comment, err := scanComment(r.db.QueryRowContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find comment by ID: %w", err)
	}
	return comment, nil
}

// FindByExternalID busca o comentário pelo id da origem. Retorna nil
// quando não encontrado.
func (r *PostgresCommentRepo) FindByExternalID(ctx context.Context, externalID string) (*model.Comment, error) {
	comment, err := scanComment(r.db.QueryRowContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE external_id = $1`, externalID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find comment by external ID: %w", err)
	}
	return comment, nil
}

// ListByReportID retorna os comentários de uma denúncia em ordem de
// criação.
func (r *PostgresCommentRepo) ListByReportID(ctx context.Context, reportID string) ([]*model.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE report_id = $1 ORDER BY created_at`,
		reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return comments, nil
}

// Create insere um novo comentário.
func (r *PostgresCommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (`+commentColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		comment.ID, comment.ExternalID, comment.ReportID,
		comment.AuthorID, comment.AvatarColor, comment.Message,
		comment.Role, comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

// Update atualiza o texto e os metadados do comentário.
func (r *PostgresCommentRepo) Update(ctx context.Context, comment *model.Comment) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE comments
		 SET avatar_color = $2, message = $3, role = $4
		 WHERE id = $1`,
		comment.ID, comment.AvatarColor, comment.Message, comment.Role,
	)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("comment not found: %s", comment.ID)
	}
	return nil
}

// Delete remove o comentário pelo id interno.
func (r *PostgresCommentRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("comment not found: %s", id)
	}
	return nil
}

// compile-time interface check
var _ CommentRepository = (*PostgresCommentRepo)(nil)
