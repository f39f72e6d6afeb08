package models

// Instructor defines the instructor model based on the 'instructors' table.
type Instructor struct {
	ID   int64  `json:"id" db:"id" example:"1"`
	Name string `json:"name" db:"name" example:"John Smith"`
}
