package models

import "time"

// Instruks is one version row of a procedural document. All versions of
// the same logical document share DocumentID; exactly one of them carries
// IsLatest at any time, and VersionNumber runs 1..N without gaps.
type Instruks struct {
	ID                string     `json:"id" db:"id"`
	DocumentID        string     `json:"document_id" db:"document_id"`
	VersionNumber     int        `json:"version_number" db:"version_number"`
	IsLatest          bool       `json:"is_latest" db:"is_latest"`
	PreviousVersionID *string    `json:"previous_version_id,omitempty" db:"previous_version_id"`
	Title             string     `json:"title" db:"title"`
	Description       *string    `json:"description,omitempty" db:"description"`
	Content           string     `json:"content" db:"content"` // sanitized HTML
	CategoryID        string     `json:"category_id" db:"category_id"`
	CategoryName      string     `json:"category_name,omitempty"` // populated on joined reads only
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}
