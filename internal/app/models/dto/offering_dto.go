package dto

import (
	"github.com/ctecscope/ctecscope/internal/app/models"
	"github.com/ctecscope/ctecscope/internal/app/ratings"
)

// OfferingFilterRequest represents offering filter parameters. Course,
// instructor and requirement selections are OR-combined within an axis and
// AND-combined across axes.
type OfferingFilterRequest struct {
	CourseIDs      []string `form:"courseId"`
	InstructorIDs  []int64  `form:"instructorId"`
	RequirementIDs []int64  `form:"req"`
	Page           int      `form:"page,default=1" binding:"min=1"`
	PageSize       int      `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// Empty reports whether no course or instructor is selected. Requirement tags
// alone are a refinement, not a selection.
func (r OfferingFilterRequest) Empty() bool {
	return len(r.CourseIDs) == 0 && len(r.InstructorIDs) == 0
}

// OfferingResponse represents one offering row of the result list
type OfferingResponse struct {
	ID             int64              `json:"id"`
	Course         CourseResponse     `json:"course"`
	Instructor     InstructorResponse `json:"instructor"`
	Section        string             `json:"section" example:"20"`
	Quarter        models.Quarter     `json:"quarter" example:"FALL"`
	Year           int                `json:"year" example:"2024"`
	AudienceSize   int                `json:"audienceSize" example:"45"`
	ResponseCount  int                `json:"responseCount" example:"38"`
	RequirementIDs []int64            `json:"requirementIds,omitempty"`
	Ratings        RatingsResponse    `json:"ratings"`
}

// OfferingListResponse represents a filtered, paginated offering list.
// HasMore is false on the final page even when that page is full.
type OfferingListResponse struct {
	Offerings  []OfferingResponse `json:"offerings"`
	Pagination PaginationInfo     `json:"pagination"`
	HasMore    bool               `json:"hasMore"`
}

// DistributionResponse is one question's raw response histogram, bins in
// report order.
type DistributionResponse struct {
	Question     models.QuestionKey  `json:"question" example:"rating_of_course"`
	Distribution models.Distribution `json:"distribution"`
}

// OfferingDetailResponse is one offering with its full survey histograms
type OfferingDetailResponse struct {
	OfferingResponse
	Responses []DistributionResponse `json:"responses"`
}

// IngestOfferingRequest carries one scraped CTEC report. Courses, instructors
// and requirement tags are created on first sight; a report for an already
// known (course, instructor, quarter, year, section) tuple replaces the
// stored histograms.
type IngestOfferingRequest struct {
	CourseCode     string                                     `json:"courseCode" binding:"required" example:"CS 111"`
	CourseTitle    string                                     `json:"courseTitle" binding:"required"`
	School         string                                     `json:"school"`
	InstructorName string                                     `json:"instructorName" binding:"required"`
	Section        string                                     `json:"section" binding:"required"`
	Quarter        models.Quarter                             `json:"quarter" binding:"required"`
	Year           int                                        `json:"year" binding:"required,min=1990"`
	AudienceSize   int                                        `json:"audienceSize" binding:"min=0"`
	ResponseCount  int                                        `json:"responseCount" binding:"min=0"`
	Requirements   []string                                   `json:"requirements"`
	Responses      map[models.QuestionKey]models.Distribution `json:"responses"`
}

// IngestOfferingResponse reports the stored offering id
type IngestOfferingResponse struct {
	OfferingID int64 `json:"offeringId"`
	Created    bool  `json:"created"`
}

// FromOffering converts a model.Offering to an OfferingResponse. Relations
// must be populated; the ratings summary is derived from the responses.
func FromOffering(offering *models.Offering) OfferingResponse {
	if offering == nil {
		return OfferingResponse{}
	}
	return OfferingResponse{
		ID:             offering.ID,
		Course:         FromCourse(offering.Course),
		Instructor:     FromInstructor(offering.Instructor),
		Section:        offering.Section,
		Quarter:        offering.Quarter,
		Year:           offering.Year,
		AudienceSize:   offering.AudienceSize,
		ResponseCount:  offering.ResponseCount,
		RequirementIDs: offering.RequirementIDs,
		Ratings:        FromSummary(ratings.SummarizeOffering(offering.Responses)),
	}
}

// FromOfferingDetail converts a model.Offering with its responses loaded
func FromOfferingDetail(offering *models.Offering) OfferingDetailResponse {
	detail := OfferingDetailResponse{
		OfferingResponse: FromOffering(offering),
		Responses:        make([]DistributionResponse, 0, len(offering.Responses)),
	}
	for _, response := range offering.Responses {
		detail.Responses = append(detail.Responses, DistributionResponse{
			Question:     response.Question,
			Distribution: response.Distribution,
		})
	}
	return detail
}
