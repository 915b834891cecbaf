package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"instruks/internal/domain"
	"instruks/internal/domain/models"
	"instruks/internal/domain/repositories"
)

const instruksColumns = `id, document_id, version_number, is_latest, previous_version_id,
		title, description, content, category_id, created_at, updated_at`

// PostgresInstruksRepository implements the InstruksRepository interface
type PostgresInstruksRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewInstruksRepository creates a new instruks repository
func NewInstruksRepository(config *RepositoryConfig) repositories.InstruksRepository {
	return &PostgresInstruksRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new version row
func (r *PostgresInstruksRepository) Create(ctx context.Context, row *models.Instruks) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, r.tables.Instruks, instruksColumns)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		row.ID,
		row.DocumentID,
		row.VersionNumber,
		row.IsLatest,
		row.PreviousVersionID,
		row.Title,
		row.Description,
		row.Content,
		row.CategoryID,
		row.CreatedAt,
		row.UpdatedAt,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			// Concurrent branch of the same source hit the unique
			// (document_id, version_number) index.
			return &domain.ConflictError{
				Message:      fmt.Sprintf("version %d of document %s already exists", row.VersionNumber, row.DocumentID),
				ResourceType: "instruks",
				ResourceID:   row.DocumentID,
			}
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("category %s: %w", row.CategoryID, domain.ErrNotFound)
		}
		return fmt.Errorf("create instruks: %w", err)
	}

	return nil
}

// Update overwrites the mutable columns of an existing row, including the
// is_latest flag used by demote/promote.
func (r *PostgresInstruksRepository) Update(ctx context.Context, row *models.Instruks) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $2, description = $3, content = $4, category_id = $5,
		    is_latest = $6, updated_at = $7
		WHERE id = $1
	`, r.tables.Instruks)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query,
		row.ID,
		row.Title,
		row.Description,
		row.Content,
		row.CategoryID,
		row.IsLatest,
		row.UpdatedAt,
	)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("category %s: %w", row.CategoryID, domain.ErrNotFound)
		}
		return fmt.Errorf("update instruks: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("instruks %s: %w", row.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes exactly one version row
func (r *PostgresInstruksRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Instruks)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete instruks: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("instruks %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// GetByID retrieves a single version row by its version id
func (r *PostgresInstruksRepository) GetByID(ctx context.Context, id string) (*models.Instruks, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, instruksColumns, r.tables.Instruks)

	executor := GetExecutor(ctx, r.pool)
	row, err := scanInstruks(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("instruks %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get instruks: %w", err)
	}

	return row, nil
}

// GetWithCategory retrieves a version row joined with its category name,
// used by the PDF header.
func (r *PostgresInstruksRepository) GetWithCategory(ctx context.Context, id string) (*models.Instruks, error) {
	query := fmt.Sprintf(`
		SELECT i.id, i.document_id, i.version_number, i.is_latest, i.previous_version_id,
		       i.title, i.description, i.content, i.category_id, i.created_at, i.updated_at,
		       c.name
		FROM %s i
		JOIN %s c ON c.id = i.category_id
		WHERE i.id = $1
	`, r.tables.Instruks, r.tables.Categories)

	var row models.Instruks
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&row.ID,
		&row.DocumentID,
		&row.VersionNumber,
		&row.IsLatest,
		&row.PreviousVersionID,
		&row.Title,
		&row.Description,
		&row.Content,
		&row.CategoryID,
		&row.CreatedAt,
		&row.UpdatedAt,
		&row.CategoryName,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("instruks %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get instruks with category: %w", err)
	}

	return &row, nil
}

// GetAllLatest returns the latest version of every series
func (r *PostgresInstruksRepository) GetAllLatest(ctx context.Context) ([]models.Instruks, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE is_latest
		ORDER BY updated_at DESC NULLS LAST, created_at DESC
	`, instruksColumns, r.tables.Instruks)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list latest instruks: %w", err)
	}
	defer rows.Close()

	return collectInstruks(rows)
}

// GetLatestByCategory returns the latest versions within one category
func (r *PostgresInstruksRepository) GetLatestByCategory(ctx context.Context, categoryID string) ([]models.Instruks, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE category_id = $1 AND is_latest
		ORDER BY updated_at DESC NULLS LAST, created_at DESC
	`, instruksColumns, r.tables.Instruks)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list latest instruks by category: %w", err)
	}
	defer rows.Close()

	return collectInstruks(rows)
}

// GetLatestByDocumentID returns the latest version of one series
func (r *PostgresInstruksRepository) GetLatestByDocumentID(ctx context.Context, documentID string) (*models.Instruks, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE document_id = $1 AND is_latest
	`, instruksColumns, r.tables.Instruks)

	executor := GetExecutor(ctx, r.pool)
	row, err := scanInstruks(executor.QueryRow(ctx, query, documentID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get latest instruks: %w", err)
	}

	return row, nil
}

// GetByDocumentID returns the full version chain of a series, newest first
func (r *PostgresInstruksRepository) GetByDocumentID(ctx context.Context, documentID string) ([]models.Instruks, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE document_id = $1
		ORDER BY version_number DESC
	`, instruksColumns, r.tables.Instruks)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list instruks versions: %w", err)
	}
	defer rows.Close()

	return collectInstruks(rows)
}

// GetByVersionNumber retrieves one specific version of a series
func (r *PostgresInstruksRepository) GetByVersionNumber(ctx context.Context, documentID string, versionNumber int) (*models.Instruks, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE document_id = $1 AND version_number = $2
	`, instruksColumns, r.tables.Instruks)

	executor := GetExecutor(ctx, r.pool)
	row, err := scanInstruks(executor.QueryRow(ctx, query, documentID, versionNumber))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s version %d: %w", documentID, versionNumber, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get instruks version: %w", err)
	}

	return row, nil
}

// rowScanner abstracts pgx.Row and pgx.Rows for the shared scan helper.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanInstruks(s rowScanner) (*models.Instruks, error) {
	var row models.Instruks
	err := s.Scan(
		&row.ID,
		&row.DocumentID,
		&row.VersionNumber,
		&row.IsLatest,
		&row.PreviousVersionID,
		&row.Title,
		&row.Description,
		&row.Content,
		&row.CategoryID,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func collectInstruks(rows interface {
	rowScanner
	Next() bool
	Err() error
}) ([]models.Instruks, error) {
	items := []models.Instruks{}
	for rows.Next() {
		row, err := scanInstruks(rows)
		if err != nil {
			return nil, fmt.Errorf("scan instruks: %w", err)
		}
		items = append(items, *row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate instruks: %w", err)
	}
	return items, nil
}
