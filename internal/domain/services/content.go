package services

import "context"

// Sanitizer strips disallowed HTML tags, attributes and CSS properties
// before content is persisted or rendered.
type Sanitizer interface {
	Sanitize(rawHTML string) string
}

// PDFService renders a document version into a downloadable PDF.
type PDFService interface {
	// Generate loads the version, sanitizes its content and lays it out
	// into PDF bytes. Missing versions fail with domain.ErrNotFound
	// before any rendering starts.
	Generate(ctx context.Context, versionID string) ([]byte, error)

	// Filename returns the download filename for a version id.
	Filename(versionID string) string
}

// MarkdownService exports a document version's sanitized content as markdown.
type MarkdownService interface {
	Export(ctx context.Context, versionID string) (string, error)
}
