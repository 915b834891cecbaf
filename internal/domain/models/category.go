package models

// Category groups document series. ParentID allows one level of nesting;
// the database restricts deleting a category that still has children or
// instruks, so no cycle handling is needed here.
type Category struct {
	ID       string  `json:"id" db:"id"`
	ParentID *string `json:"parent_id,omitempty" db:"parent_id"`
	Name     string  `json:"name" db:"name"`
}
