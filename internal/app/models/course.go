package models

import "github.com/google/uuid"

// Course represents a catalog course that can be evaluated.
type Course struct {
	ID     uuid.UUID `json:"id" db:"id"`
	Code   string    `json:"code" db:"code" example:"CS 111"`
	Title  string    `json:"title" db:"title" example:"Fundamentals of Computer Programming"`
	School string    `json:"school,omitempty" db:"school" example:"McCormick"`
}
