package repositories

import (
	"context"

	"instruks/internal/domain/models"
)

// CategoryRepository persists categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	// Delete removes a category. The database restricts deletion while
	// child categories or instruks still reference it.
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetAll(ctx context.Context) ([]models.Category, error)
}
