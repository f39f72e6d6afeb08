package models

// Requirement is a degree/distribution tag a course may satisfy. The taxonomy
// is maintained externally; offerings reference requirements by id only.
type Requirement struct {
	ID   int64  `json:"id" db:"id" example:"3"`
	Name string `json:"name" db:"name" example:"Natural Sciences"`
}
