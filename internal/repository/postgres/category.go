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

// PostgresCategoryRepository implements the CategoryRepository interface
type PostgresCategoryRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(config *RepositoryConfig) repositories.CategoryRepository {
	return &PostgresCategoryRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new category
func (r *PostgresCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, parent_id, name)
		VALUES ($1, $2, $3)
	`, r.tables.Categories)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query, category.ID, category.ParentID, category.Name)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("category '%s' already exists", category.Name),
				ResourceType: "category",
				ResourceID:   category.ID,
			}
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("parent category: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}

// Update renames or reparents a category
func (r *PostgresCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $2, parent_id = $3
		WHERE id = $1
	`, r.tables.Categories)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, category.ID, category.Name, category.ParentID)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("category '%s' already exists", category.Name),
				ResourceType: "category",
				ResourceID:   category.ID,
			}
		}
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category %s: %w", category.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a category. Restricted while instruks or child
// categories still reference it.
func (r *PostgresCategoryRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Categories)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		if IsPgRestrictError(err) {
			return &domain.ConflictError{
				Message:      "category still has instruks or child categories",
				ResourceType: "category",
				ResourceID:   id,
			}
		}
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// GetByID retrieves a category by id
func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	query := fmt.Sprintf(`
		SELECT id, parent_id, name
		FROM %s
		WHERE id = $1
	`, r.tables.Categories)

	var category models.Category
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(&category.ID, &category.ParentID, &category.Name)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	return &category, nil
}

// GetAll lists categories ordered by name
func (r *PostgresCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	query := fmt.Sprintf(`
		SELECT id, parent_id, name
		FROM %s
		ORDER BY name
	`, r.tables.Categories)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.ParentID, &category.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, nil
}
