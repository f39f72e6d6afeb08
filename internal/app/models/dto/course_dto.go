package dto

import (
	"github.com/google/uuid"

	"github.com/ctecscope/ctecscope/internal/app/models"
)

// CourseResponse represents catalog course information
type CourseResponse struct {
	ID     uuid.UUID `json:"id"`
	Code   string    `json:"code" example:"CS 111"`
	Title  string    `json:"title" example:"Fundamentals of Computer Programming"`
	School string    `json:"school,omitempty" example:"McCormick"`
}

// CourseDetailResponse is a course together with every offering of it,
// newest first.
type CourseDetailResponse struct {
	CourseResponse
	Offerings []OfferingResponse `json:"offerings"`
}

// CourseListResponse represents a paginated course catalog listing
type CourseListResponse struct {
	Courses    []CourseResponse `json:"courses"`
	Pagination PaginationInfo   `json:"pagination"`
}

// FromCourse converts a model.Course to a CourseResponse
func FromCourse(course *models.Course) CourseResponse {
	if course == nil {
		return CourseResponse{}
	}
	return CourseResponse{
		ID:     course.ID,
		Code:   course.Code,
		Title:  course.Title,
		School: course.School,
	}
}
