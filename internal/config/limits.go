package config

const (
	// MaxTitleLength is the maximum length for instruks titles.
	// Titles are plain text shown in lists and PDF headers, so they
	// should stay short and descriptive.
	MaxTitleLength = 160

	// MaxDescriptionLength is the maximum length for the optional
	// one-line description rendered under the title.
	MaxDescriptionLength = 400

	// MaxContentLength bounds the sanitized HTML body to keep payloads
	// and PDF rendering time reasonable.
	MaxContentLength = 200_000

	// MaxCategoryNameLength is the maximum length for category names.
	MaxCategoryNameLength = 255
)
