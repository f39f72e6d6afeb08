package dto

import (
	"github.com/ctecscope/ctecscope/internal/app/search"
)

// SearchRequest represents the incremental lookup query parameters
type SearchRequest struct {
	Query string `form:"q" binding:"required"`
	Limit int    `form:"limit,default=5" binding:"min=1,max=25"`
}

// SuggestionResponse is one entry of the search dropdown. Exactly one of
// Course and Instructor is set, matching Type.
type SuggestionResponse struct {
	Type       search.ResultType   `json:"type" example:"course"`
	Label      string              `json:"label" example:"CS 336 Design & Analysis of Algorithms"`
	Course     *CourseResponse     `json:"course,omitempty"`
	Instructor *InstructorResponse `json:"instructor,omitempty"`
}

// SearchResponse represents the merged suggestion list for one query
type SearchResponse struct {
	Query       string               `json:"query"`
	Suggestions []SuggestionResponse `json:"suggestions"`
}

// FromResults converts lookup results into the wire suggestion list.
func FromResults(query string, results []search.Result) SearchResponse {
	response := SearchResponse{
		Query:       query,
		Suggestions: make([]SuggestionResponse, 0, len(results)),
	}
	for _, result := range results {
		suggestion := SuggestionResponse{Type: result.Type, Label: result.Label()}
		switch result.Type {
		case search.ResultCourse:
			course := FromCourse(result.Course)
			suggestion.Course = &course
		case search.ResultInstructor:
			instructor := FromInstructor(result.Instructor)
			suggestion.Instructor = &instructor
		}
		response.Suggestions = append(response.Suggestions, suggestion)
	}
	return response
}
