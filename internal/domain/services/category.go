package services

import (
	"context"

	"instruks/internal/domain/models"
)

// CategoryPayload carries the writable fields of a category.
type CategoryPayload struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"`
}

// CategoryService handles category CRUD. Mutations are Doctor-only.
type CategoryService interface {
	Create(ctx context.Context, auth models.AuthContext, payload *CategoryPayload) (*models.Category, error)
	Update(ctx context.Context, auth models.AuthContext, id string, payload *CategoryPayload) (bool, error)
	Delete(ctx context.Context, auth models.AuthContext, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetAll(ctx context.Context) ([]models.Category, error)
}
