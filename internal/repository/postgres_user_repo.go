package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cidade-integra/cidade-integra-backend/internal/model"
)

// PostgresUserRepo é o repositório de usuários sobre PostgreSQL.
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo cria um PostgresUserRepo.
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

const userColumns = `id, external_id, display_name, email, photo_url, region,
	role, status, score, report_count, verified, created_at, last_login_at`

// scanUser lê uma linha de users para um model.User.
func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.ExternalID, &user.DisplayName, &user.Email,
		&user.PhotoURL, &user.Region, &user.Role, &user.Status,
		&user.Score, &user.ReportCount, &user.Verified,
		&user.CreatedAt, &user.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID busca o usuário pelo id interno. Retorna nil quando não
// encontrado.
func (r *PostgresUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// FindByExternalID busca o usuário pelo id da origem. Retorna nil
// quando não encontrado.
func (r *PostgresUserRepo) FindByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE external_id = $1`, externalID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by external ID: %w", err)
	}
	return user, nil
}

// FindByEmail busca o usuário pelo e-mail normalizado. Retorna nil
// quando não encontrado.
func (r *PostgresUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, model.NormalizeEmail(email)))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// List retorna todos os usuários ordenados por data de criação.
func (r *PostgresUserRepo) List(ctx context.Context) ([]*model.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// Create insere um novo usuário.
func (r *PostgresUserRepo) Create(ctx context.Context, user *model.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		user.ID, user.ExternalID, user.DisplayName, user.Email,
		user.PhotoURL, user.Region, user.Role, user.Status,
		user.Score, user.ReportCount, user.Verified,
		user.CreatedAt, user.LastLoginAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// Update atualiza todos os campos mutáveis do usuário.
func (r *PostgresUserRepo) Update(ctx context.Context, user *model.User) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET external_id = $2, display_name = $3, email = $4, photo_url = $5,
		     region = $6, role = $7, status = $8, score = $9,
		     report_count = $10, verified = $11, created_at = $12,
		     last_login_at = $13
		 WHERE id = $1`,
		user.ID, user.ExternalID, user.DisplayName, user.Email,
		user.PhotoURL, user.Region, user.Role, user.Status,
		user.Score, user.ReportCount, user.Verified,
		user.CreatedAt, user.LastLoginAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user not found: %s", user.ID)
	}
	return nil
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
