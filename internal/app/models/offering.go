package models

import "github.com/google/uuid"

// Offering represents one instance of a course taught by one instructor in a
// given quarter, year and section. It owns its survey responses; the course
// and instructor are referenced, not owned.
type Offering struct {
	ID            int64     `json:"id" db:"id"`
	CourseID      uuid.UUID `json:"courseId" db:"course_id"`
	InstructorID  int64     `json:"instructorId" db:"instructor_id"`
	Section       string    `json:"section" db:"section" example:"20"`
	Quarter       Quarter   `json:"quarter" db:"quarter" example:"FALL"`
	Year          int       `json:"year" db:"year" example:"2024"`
	AudienceSize  int       `json:"audienceSize" db:"audience_size"`
	ResponseCount int       `json:"responseCount" db:"response_count"`

	// Relations (populated when needed)
	Course         *Course          `json:"course,omitempty"`
	Instructor     *Instructor      `json:"instructor,omitempty"`
	RequirementIDs []int64          `json:"requirementIds,omitempty"`
	Responses      []SurveyResponse `json:"responses,omitempty"`
}

// SatisfiesAny reports whether the offering carries at least one of the given
// requirement tags. An empty selection matches every offering.
func (o *Offering) SatisfiesAny(requirementIDs []int64) bool {
	if len(requirementIDs) == 0 {
		return true
	}
	for _, want := range requirementIDs {
		for _, have := range o.RequirementIDs {
			if want == have {
				return true
			}
		}
	}
	return false
}
