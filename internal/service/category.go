package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"instruks/internal/config"
	"instruks/internal/domain"
	"instruks/internal/domain/models"
	"instruks/internal/domain/repositories"
	"instruks/internal/domain/services"
)

// categoryService implements the CategoryService interface
type categoryService struct {
	repo   repositories.CategoryRepository
	logger *slog.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(repo repositories.CategoryRepository, logger *slog.Logger) services.CategoryService {
	return &categoryService{repo: repo, logger: logger}
}

func (s *categoryService) Create(ctx context.Context, auth models.AuthContext, payload *services.CategoryPayload) (*models.Category, error) {
	if !auth.IsDoctor {
		return nil, fmt.Errorf("creating categories requires the Doctor role: %w", domain.ErrForbidden)
	}
	if err := s.validatePayload(ctx, payload); err != nil {
		return nil, err
	}

	category := &models.Category{
		ID:       uuid.NewString(),
		ParentID: payload.ParentID,
		Name:     payload.Name,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category created", "category_id", category.ID, "name", category.Name, "user_id", auth.UserID)
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, auth models.AuthContext, id string, payload *services.CategoryPayload) (bool, error) {
	if !auth.IsDoctor {
		return false, fmt.Errorf("updating categories requires the Doctor role: %w", domain.ErrForbidden)
	}
	if err := s.validatePayload(ctx, payload); err != nil {
		return false, err
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	category.Name = payload.Name
	category.ParentID = payload.ParentID
	if err := s.repo.Update(ctx, category); err != nil {
		return false, err
	}

	return true, nil
}

func (s *categoryService) Delete(ctx context.Context, auth models.AuthContext, id string) (bool, error) {
	if !auth.IsDoctor {
		return false, fmt.Errorf("deleting categories requires the Doctor role: %w", domain.ErrForbidden)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (s *categoryService) GetByID(ctx context.Context, id string) (*models.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) GetAll(ctx context.Context) ([]models.Category, error) {
	return s.repo.GetAll(ctx)
}

// validatePayload checks field rules. The parent check keeps the
// hierarchy to existing categories only; cycle prevention beyond
// restrict-on-delete is deliberately absent.
func (s *categoryService) validatePayload(ctx context.Context, payload *services.CategoryPayload) error {
	err := validation.ValidateStruct(payload,
		validation.Field(&payload.Name,
			validation.Required,
			validation.Length(1, config.MaxCategoryNameLength),
		),
		validation.Field(&payload.ParentID, validation.By(validUUID)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if payload.ParentID != nil {
		if _, err := s.repo.GetByID(ctx, *payload.ParentID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: parent category does not exist", domain.ErrValidation)
			}
			return err
		}
	}

	return nil
}
