package dto

import (
	"github.com/ctecscope/ctecscope/internal/app/models"
	"github.com/ctecscope/ctecscope/internal/app/ratings"
)

// InstructorResponse represents instructor information
type InstructorResponse struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Ada Lovelace"`
}

// InstructorProfileResponse is an instructor together with the roll-up of
// every offering they taught.
type InstructorProfileResponse struct {
	InstructorResponse
	OfferingCount int                `json:"offeringCount"`
	Summary       RatingsResponse    `json:"summary"`
	Offerings     []OfferingResponse `json:"offerings"`
}

// FromInstructor converts a model.Instructor to an InstructorResponse
func FromInstructor(instructor *models.Instructor) InstructorResponse {
	if instructor == nil {
		return InstructorResponse{}
	}
	return InstructorResponse{
		ID:   instructor.ID,
		Name: instructor.Name,
	}
}

// RatingsResponse carries the display metrics together with their color
// bands. Numeric metrics get score bands; the workload metric gets the hours
// band of its modal bucket.
type RatingsResponse struct {
	Instruction   RatedMetric `json:"instruction"`
	Course        RatedMetric `json:"course"`
	Learned       RatedMetric `json:"learned"`
	Challenge     RatedMetric `json:"challenge"`
	Interest      RatedMetric `json:"interest"`
	PriorInterest RatedMetric `json:"priorInterest"`
	Hours         HoursMetric `json:"hours"`
}

// RatedMetric is a single numeric metric with its band
type RatedMetric struct {
	Score float64      `json:"score" example:"5.2"`
	Band  ratings.Band `json:"band" example:"GOOD"`
}

// HoursMetric is the modal time-survey bucket with its band
type HoursMetric struct {
	Bucket string       `json:"bucket" example:"4 - 7"`
	Band   ratings.Band `json:"band" example:"GOOD"`
}

// FromSummary attaches color bands to a ratings summary.
func FromSummary(summary ratings.Summary) RatingsResponse {
	rate := func(score float64) RatedMetric {
		return RatedMetric{Score: score, Band: ratings.ScoreBand(score)}
	}
	return RatingsResponse{
		Instruction:   rate(summary.Instruction),
		Course:        rate(summary.Course),
		Learned:       rate(summary.Learned),
		Challenge:     rate(summary.Challenge),
		Interest:      rate(summary.Interest),
		PriorInterest: rate(summary.PriorInterest),
		Hours: HoursMetric{
			Bucket: summary.Hours,
			Band:   ratings.HoursBand(summary.Hours),
		},
	}
}
