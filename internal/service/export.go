package service

import (
	"context"
	"fmt"
	"log/slog"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"instruks/internal/domain/repositories"
	"instruks/internal/domain/services"
)

// markdownService implements the MarkdownService interface. It converts
// a version's sanitized HTML into markdown for plain-text consumers.
type markdownService struct {
	repo      repositories.InstruksRepository
	sanitizer services.Sanitizer
	converter *md.Converter
	logger    *slog.Logger
}

// NewMarkdownService creates a new markdown export service
func NewMarkdownService(
	repo repositories.InstruksRepository,
	sanitizer services.Sanitizer,
	logger *slog.Logger,
) services.MarkdownService {
	return &markdownService{
		repo:      repo,
		sanitizer: sanitizer,
		converter: md.NewConverter("", true, nil),
		logger:    logger,
	}
}

// Export returns the markdown rendition of one version's content.
func (s *markdownService) Export(ctx context.Context, versionID string) (string, error) {
	row, err := s.repo.GetByID(ctx, versionID)
	if err != nil {
		return "", err
	}

	markdown, err := s.converter.ConvertString(s.sanitizer.Sanitize(row.Content))
	if err != nil {
		return "", fmt.Errorf("convert instruks content to markdown: %w", err)
	}

	return markdown, nil
}
