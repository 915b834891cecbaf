package repositories

import (
	"context"

	"instruks/internal/domain/models"
)

// InstruksRepository persists instruks version rows.
//
// Write methods participate in an ambient transaction when the context
// carries one (see TransactionManager); reads that back mutating service
// operations do too, so demote+insert observes its own writes.
type InstruksRepository interface {
	// Create inserts a new version row.
	Create(ctx context.Context, row *models.Instruks) error

	// Update overwrites the mutable columns of an existing row.
	Update(ctx context.Context, row *models.Instruks) error

	// Delete removes exactly one version row.
	Delete(ctx context.Context, id string) error

	// GetByID retrieves a single version row by its version id.
	GetByID(ctx context.Context, id string) (*models.Instruks, error)

	// GetWithCategory retrieves a version row with CategoryName populated.
	GetWithCategory(ctx context.Context, id string) (*models.Instruks, error)

	// GetAllLatest returns the latest version of every series.
	GetAllLatest(ctx context.Context) ([]models.Instruks, error)

	// GetLatestByCategory returns the latest versions within one category.
	GetLatestByCategory(ctx context.Context, categoryID string) ([]models.Instruks, error)

	// GetLatestByDocumentID returns the latest version of one series.
	GetLatestByDocumentID(ctx context.Context, documentID string) (*models.Instruks, error)

	// GetByDocumentID returns the full version chain of a series,
	// newest first.
	GetByDocumentID(ctx context.Context, documentID string) ([]models.Instruks, error)

	// GetByVersionNumber retrieves one specific version of a series.
	GetByVersionNumber(ctx context.Context, documentID string, versionNumber int) (*models.Instruks, error)
}
