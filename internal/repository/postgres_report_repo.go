package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cidade-integra/cidade-integra-backend/internal/model"
	"github.com/google/uuid"
)

// PostgresReportRepo é o repositório de denúncias sobre PostgreSQL.
// O endereço (report_locations) é persistido junto com a denúncia, na
// mesma transação.
type PostgresReportRepo struct {
	db *sql.DB
}

// NewPostgresReportRepo cria um PostgresReportRepo.
func NewPostgresReportRepo(db *sql.DB) *PostgresReportRepo {
	return &PostgresReportRepo{db: db}
}

const reportColumns = `id, external_id, user_id, category, title, description,
	is_anonymous, status, image_url, created_at, updated_at, resolved_at`

// scanReport lê uma linha de reports para um model.Report.
func scanReport(row interface{ Scan(...any) error }) (*model.Report, error) {
	report := &model.Report{}
	var resolvedAt sql.NullTime
	err := row.Scan(
		&report.ID, &report.ExternalID, &report.UserID, &report.Category,
		&report.Title, &report.Description, &report.IsAnonymous,
		&report.Status, &report.ImageURL, &report.CreatedAt,
		&report.UpdatedAt, &resolvedAt,
	)
	if err != nil {
		return nil, err
	}
	if resolvedAt.Valid {
		report.ResolvedAt = &resolvedAt.Time
	}
	return report, nil
}

// FindByID busca a denúncia pelo id interno, incluindo o endereço.
// Retorna nil quando não encontrada.
func (r *PostgresReportRepo) FindByID(ctx context.Context, id string) (*model.Report, error) {
	report, err := scanReport(r.db.QueryRowContext(ctx,
		`SELECT `+reportColumns+` FROM reports WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find report by ID: %w", err)
	}
	if err := r.attachLocation(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// FindByExternalID busca a denúncia pelo id da origem. Retorna nil
// quando não encontrada.
func (r *PostgresReportRepo) FindByExternalID(ctx context.Context, externalID string) (*model.Report, error) {
	report, err := scanReport(r.db.QueryRowContext(ctx,
		`SELECT `+reportColumns+` FROM reports WHERE external_id = $1`, externalID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find report by external ID: %w", err)
	}
	if err := r.attachLocation(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// attachLocation carrega o endereço 1:1 da denúncia, quando existir.
func (r *PostgresReportRepo) attachLocation(ctx context.Context, report *model.Report) error {
	loc := &model.ReportLocation{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, report_id, address, postal_code, latitude, longitude
		 FROM report_locations WHERE report_id = $1`, report.ID,
	).Scan(&loc.ID, &loc.ReportID, &loc.Address, &loc.PostalCode, &loc.Latitude, &loc.Longitude)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to find report location: %w", err)
	}
	report.Location = loc
	return nil
}

// ListPending retorna as denúncias com status "pending".
func (r *PostgresReportRepo) ListPending(ctx context.Context) ([]*model.Report, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reportColumns+` FROM reports WHERE status = $1 ORDER BY created_at`,
		model.ReportStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reports: %w", err)
	}
	defer rows.Close()

	var reports []*model.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}

	return reports, nil
}

// Create insere a denúncia e seu endereço na mesma transação.
func (r *PostgresReportRepo) Create(ctx context.Context, report *model.Report) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO reports (`+reportColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		report.ID, report.ExternalID, report.UserID, report.Category,
		report.Title, report.Description, report.IsAnonymous,
		report.Status, report.ImageURL, report.CreatedAt,
		report.UpdatedAt, report.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}

	if err := upsertLocation(ctx, tx, report); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Update atualiza a denúncia e faz upsert do endereço na mesma
// transação.
func (r *PostgresReportRepo) Update(ctx context.Context, report *model.Report) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE reports
		 SET external_id = $2, user_id = $3, category = $4, title = $5,
		     description = $6, is_anonymous = $7, status = $8,
		     image_url = $9, created_at = $10, updated_at = $11,
		     resolved_at = $12
		 WHERE id = $1`,
		report.ID, report.ExternalID, report.UserID, report.Category,
		report.Title, report.Description, report.IsAnonymous,
		report.Status, report.ImageURL, report.CreatedAt,
		report.UpdatedAt, report.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("report not found: %s", report.ID)
	}

	if err := upsertLocation(ctx, tx, report); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// upsertLocation insere ou atualiza o endereço 1:1 da denúncia dentro
// da transação corrente. Denúncias sem endereço não são alteradas.
func upsertLocation(ctx context.Context, tx *sql.Tx, report *model.Report) error {
	if report.Location == nil {
		return nil
	}
	loc := report.Location
	if loc.ID == "" {
		loc.ID = uuid.New().String()
	}
	loc.ReportID = report.ID

	_, err := tx.ExecContext(ctx,
		`INSERT INTO report_locations (id, report_id, address, postal_code, latitude, longitude)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (report_id) DO UPDATE
		 SET address = EXCLUDED.address, postal_code = EXCLUDED.postal_code,
		     latitude = EXCLUDED.latitude, longitude = EXCLUDED.longitude`,
		loc.ID, loc.ReportID, loc.Address, loc.PostalCode, loc.Latitude, loc.Longitude,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert report location: %w", err)
	}
	return nil
}

// UpdateStatus atualiza o status e o resolved_at da denúncia.
func (r *PostgresReportRepo) UpdateStatus(ctx context.Context, id, status string, resolvedAt *time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reports SET status = $2, resolved_at = $3, updated_at = now() WHERE id = $1`,
		id, status, resolvedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update report status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("report not found: %s", id)
	}
	return nil
}

// compile-time interface check
var _ ReportRepository = (*PostgresReportRepo)(nil)
