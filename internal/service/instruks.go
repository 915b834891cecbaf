package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"instruks/internal/config"
	"instruks/internal/domain"
	"instruks/internal/domain/models"
	"instruks/internal/domain/repositories"
	"instruks/internal/domain/services"
)

// Title and description are plain text; raw markup belongs in Content.
var noAngleBrackets = regexp.MustCompile(`^[^<>]*$`)

// instruksService implements the InstruksService interface. It owns the
// versioning invariants: one latest row per series, contiguous version
// numbers, and a previous-version chain without branches.
type instruksService struct {
	repo      repositories.InstruksRepository
	txManager repositories.TransactionManager
	sanitizer services.Sanitizer
	logger    *slog.Logger
}

// NewInstruksService creates a new instruks service
func NewInstruksService(
	repo repositories.InstruksRepository,
	txManager repositories.TransactionManager,
	sanitizer services.Sanitizer,
	logger *slog.Logger,
) services.InstruksService {
	return &instruksService{
		repo:      repo,
		txManager: txManager,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// Create starts a new document series at version 1.
func (s *instruksService) Create(ctx context.Context, auth models.AuthContext, payload *services.InstruksPayload) (*models.Instruks, error) {
	if !auth.IsDoctor {
		return nil, fmt.Errorf("creating instruks requires the Doctor role: %w", domain.ErrForbidden)
	}
	if err := s.validatePayload(payload); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row := &models.Instruks{
		ID:            uuid.NewString(),
		DocumentID:    uuid.NewString(),
		VersionNumber: 1,
		IsLatest:      true,
		Title:         payload.Title,
		Description:   payload.Description,
		Content:       s.sanitizer.Sanitize(payload.Content),
		CategoryID:    payload.CategoryID,
		CreatedAt:     now,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}

	s.logger.Info("instruks series created",
		"version_id", row.ID,
		"document_id", row.DocumentID,
		"user_id", auth.UserID,
	)

	return row, nil
}

// Update edits the current latest version in place. Historical versions
// are immutable; touching one returns false so the caller maps it to 404.
func (s *instruksService) Update(ctx context.Context, auth models.AuthContext, id string, payload *services.InstruksPayload) (bool, error) {
	if !auth.IsDoctor {
		return false, fmt.Errorf("updating instruks requires the Doctor role: %w", domain.ErrForbidden)
	}
	if err := s.validatePayload(payload); err != nil {
		return false, err
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if !row.IsLatest {
		return false, nil
	}

	now := time.Now().UTC()
	row.Title = payload.Title
	row.Description = payload.Description
	row.Content = s.sanitizer.Sanitize(payload.Content)
	row.CategoryID = payload.CategoryID
	row.UpdatedAt = &now

	if err := s.repo.Update(ctx, row); err != nil {
		return false, err
	}

	s.logger.Info("instruks updated in place",
		"version_id", row.ID,
		"version_number", row.VersionNumber,
		"user_id", auth.UserID,
	)

	return true, nil
}

// CreateVersion branches a series: the source row loses its latest flag
// and a successor is inserted with version_number+1. Both writes run in
// one transaction so a crash can never leave the series with zero or two
// latest rows; the unique (document_id, version_number) index turns a
// concurrent double-branch into a Conflict.
func (s *instruksService) CreateVersion(ctx context.Context, auth models.AuthContext, sourceID string, payload *services.InstruksPayload) (*models.Instruks, error) {
	if !auth.IsDoctor {
		return nil, fmt.Errorf("branching instruks requires the Doctor role: %w", domain.ErrForbidden)
	}
	if err := s.validatePayload(payload); err != nil {
		return nil, err
	}

	var created *models.Instruks
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		source, err := s.repo.GetByID(txCtx, sourceID)
		if err != nil {
			return err
		}

		// Demote the source. Branching a historical version is allowed
		// by loading it, but the one losing the flag must be whichever
		// row currently holds it.
		latest := source
		if !source.IsLatest {
			latest, err = s.repo.GetLatestByDocumentID(txCtx, source.DocumentID)
			if err != nil {
				return err
			}
		}
		latest.IsLatest = false
		if err := s.repo.Update(txCtx, latest); err != nil {
			return err
		}

		now := time.Now().UTC()
		created = &models.Instruks{
			ID:                uuid.NewString(),
			DocumentID:        source.DocumentID,
			VersionNumber:     latest.VersionNumber + 1,
			IsLatest:          true,
			PreviousVersionID: &latest.ID,
			Title:             payload.Title,
			Description:       payload.Description,
			Content:           s.sanitizer.Sanitize(payload.Content),
			CategoryID:        payload.CategoryID,
			CreatedAt:         now,
		}

		return s.repo.Create(txCtx, created)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("instruks version created",
		"version_id", created.ID,
		"document_id", created.DocumentID,
		"version_number", created.VersionNumber,
		"user_id", auth.UserID,
	)

	return created, nil
}

// Delete removes one version row. When the deleted row is the current
// latest and a predecessor exists, the predecessor is promoted back to
// latest in the same transaction, so the series never loses its head.
// Deleting a historical row leaves siblings untouched; the resulting
// numbering gap is accepted.
func (s *instruksService) Delete(ctx context.Context, auth models.AuthContext, id string) (bool, error) {
	if !auth.IsDoctor {
		return false, fmt.Errorf("deleting instruks requires the Doctor role: %w", domain.ErrForbidden)
	}

	deleted := false
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		row, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			return err
		}

		if err := s.repo.Delete(txCtx, row.ID); err != nil {
			return err
		}

		if row.IsLatest && row.VersionNumber > 1 {
			prev, err := s.repo.GetByVersionNumber(txCtx, row.DocumentID, row.VersionNumber-1)
			if err != nil {
				// Mid-chain deletes can leave gaps; promote only when
				// the direct predecessor is still there.
				if errors.Is(err, domain.ErrNotFound) {
					s.logger.Warn("deleted latest has no direct predecessor to promote",
						"document_id", row.DocumentID,
						"version_number", row.VersionNumber,
					)
					return nil
				}
				return err
			}
			prev.IsLatest = true
			if err := s.repo.Update(txCtx, prev); err != nil {
				return err
			}
		}

		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if deleted {
		s.logger.Info("instruks version deleted", "version_id", id, "user_id", auth.UserID)
	}

	return deleted, nil
}

func (s *instruksService) GetAllLatest(ctx context.Context) ([]models.Instruks, error) {
	return s.repo.GetAllLatest(ctx)
}

func (s *instruksService) GetLatestByCategory(ctx context.Context, categoryID string) ([]models.Instruks, error) {
	return s.repo.GetLatestByCategory(ctx, categoryID)
}

func (s *instruksService) GetByID(ctx context.Context, id string) (*models.Instruks, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *instruksService) GetLatestByDocumentID(ctx context.Context, documentID string) (*models.Instruks, error) {
	return s.repo.GetLatestByDocumentID(ctx, documentID)
}

func (s *instruksService) GetHistory(ctx context.Context, documentID string) ([]models.Instruks, error) {
	versions, err := s.repo.GetByDocumentID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
	}
	return versions, nil
}

// validatePayload applies the field rules shared by create, update and
// branch. Violations wrap domain.ErrValidation for the 400 mapping.
func (s *instruksService) validatePayload(payload *services.InstruksPayload) error {
	err := validation.ValidateStruct(payload,
		validation.Field(&payload.Title,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
			validation.Match(noAngleBrackets).Error("must not contain raw HTML"),
		),
		validation.Field(&payload.Description,
			validation.Length(0, config.MaxDescriptionLength),
			validation.Match(noAngleBrackets).Error("must not contain raw HTML"),
		),
		validation.Field(&payload.Content,
			validation.Required,
			validation.Length(1, config.MaxContentLength),
		),
		validation.Field(&payload.CategoryID, validation.Required, validation.By(validUUID)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

func validUUID(value interface{}) error {
	str, _ := value.(string)
	if str == "" {
		return nil // Required covers emptiness where it applies
	}
	if _, err := uuid.Parse(str); err != nil {
		return errors.New("must be a valid UUID")
	}
	return nil
}
