package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"instruks/internal/domain/repositories"
	"instruks/internal/domain/services"
	"instruks/internal/render"
)

// pdfService implements the PDFService interface: load the version with
// its category, sanitize, parse into blocks, lay out onto pages.
type pdfService struct {
	repo      repositories.InstruksRepository
	sanitizer services.Sanitizer
	renderer  *render.PDFRenderer
	logger    *slog.Logger
}

// NewPDFService creates a new PDF export service
func NewPDFService(
	repo repositories.InstruksRepository,
	sanitizer services.Sanitizer,
	renderer *render.PDFRenderer,
	logger *slog.Logger,
) services.PDFService {
	return &pdfService{
		repo:      repo,
		sanitizer: sanitizer,
		renderer:  renderer,
		logger:    logger,
	}
}

// Generate renders one version row into PDF bytes. A missing version
// fails with domain.ErrNotFound before any rendering starts; for
// sanitized content the rendering itself is not expected to fail.
func (s *pdfService) Generate(ctx context.Context, versionID string) ([]byte, error) {
	row, err := s.repo.GetWithCategory(ctx, versionID)
	if err != nil {
		return nil, err
	}

	// Content is sanitized on write, but sanitize again so rows that
	// predate the whitelist cannot smuggle markup into the renderer.
	safeHTML := s.sanitizer.Sanitize(row.Content)

	blocks, err := render.Parse(safeHTML)
	if err != nil {
		return nil, fmt.Errorf("parse instruks content: %w", err)
	}

	doc := &render.Document{
		Title:        row.Title,
		CategoryName: row.CategoryName,
		Blocks:       blocks,
	}
	if row.Description != nil {
		doc.Description = *row.Description
	}

	pdfBytes, err := s.renderer.Render(doc)
	if err != nil {
		return nil, err
	}

	s.logger.Info("instruks pdf generated",
		"version_id", versionID,
		"blocks", len(blocks),
		"bytes", len(pdfBytes),
	)

	return pdfBytes, nil
}

// Filename returns the download name for a version's PDF.
func (s *pdfService) Filename(versionID string) string {
	return fmt.Sprintf("instruks-%s.pdf", strings.ReplaceAll(versionID, "-", ""))
}
