package services

import (
	"context"

	"instruks/internal/domain/models"
)

// InstruksPayload carries the writable fields of a version row. The same
// payload shape serves create, in-place update and branching.
type InstruksPayload struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Content     string  `json:"content"` // raw HTML; sanitized before persistence
	CategoryID  string  `json:"category_id"`
}

// InstruksService owns the versioning state machine for document series.
//
// Every mutating operation checks auth.IsDoctor before touching the
// repository and returns domain.ErrForbidden when the check fails. The
// bool-returning operations report "target missing or not eligible" as
// (false, nil) rather than an error, mirroring the HTTP 404 mapping.
type InstruksService interface {
	// Create starts a new series: version 1, latest, fresh document id.
	Create(ctx context.Context, auth models.AuthContext, payload *InstruksPayload) (*models.Instruks, error)

	// Update edits the current latest version in place. Returns false
	// when the target does not exist or is a historical version -
	// editing history must go through CreateVersion instead.
	Update(ctx context.Context, auth models.AuthContext, id string, payload *InstruksPayload) (bool, error)

	// CreateVersion branches a series: demotes the source row and
	// inserts its successor atomically. Missing source yields
	// domain.ErrNotFound.
	CreateVersion(ctx context.Context, auth models.AuthContext, sourceID string, payload *InstruksPayload) (*models.Instruks, error)

	// Delete removes one version row. Deleting the current latest
	// promotes its chain predecessor, when one exists, in the same
	// transaction.
	Delete(ctx context.Context, auth models.AuthContext, id string) (bool, error)

	GetAllLatest(ctx context.Context) ([]models.Instruks, error)
	GetLatestByCategory(ctx context.Context, categoryID string) ([]models.Instruks, error)
	GetByID(ctx context.Context, id string) (*models.Instruks, error)
	GetLatestByDocumentID(ctx context.Context, documentID string) (*models.Instruks, error)
	GetHistory(ctx context.Context, documentID string) ([]models.Instruks, error)
}
