package ratings

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ctecscope/ctecscope/internal/app/models"
)

func numericResponse(q models.QuestionKey, bins ...models.Bin) models.SurveyResponse {
	return models.SurveyResponse{Question: q, Distribution: models.Distribution(bins)}
}

func TestSummarizeOffering(t *testing.T) {
	responses := []models.SurveyResponse{
		numericResponse(models.QuestionInstruction,
			models.Bin{Label: "5", Count: 10},
			models.Bin{Label: "6", Count: 10},
		),
		numericResponse(models.QuestionCourse,
			models.Bin{Label: "4", Count: 3},
			models.Bin{Label: "5", Count: 1},
		),
		numericResponse(models.QuestionTimeSurvey,
			models.Bin{Label: "3 or fewer", Count: 2},
			models.Bin{Label: "4 - 7", Count: 9},
		),
	}

	summary := SummarizeOffering(responses)
	assert.InDelta(t, 5.5, summary.Instruction, 1e-9)
	assert.InDelta(t, 4.3, summary.Course, 1e-9) // 4.25 rounded to one decimal
	assert.Equal(t, "4 - 7", summary.Hours)

	// Questions absent from the responses stay at zero.
	assert.Zero(t, summary.Learned)
	assert.Zero(t, summary.Challenge)
	assert.Zero(t, summary.Interest)
	assert.Zero(t, summary.PriorInterest)
}

func TestSummarizeOfferingNoResponses(t *testing.T) {
	summary := SummarizeOffering(nil)
	assert.True(t, summary.IsZero())
	assert.Equal(t, ModeNone, summary.Hours)
}

func TestSummarizeInstructor(t *testing.T) {
	offeringWith := func(instruction string, count int, hours string) models.Offering {
		return models.Offering{Responses: []models.SurveyResponse{
			numericResponse(models.QuestionInstruction, models.Bin{Label: instruction, Count: count}),
			numericResponse(models.QuestionTimeSurvey, models.Bin{Label: hours, Count: count}),
		}}
	}

	t.Run("offerings without data for a metric are excluded from it", func(t *testing.T) {
		offerings := []models.Offering{
			offeringWith("6", 10, "4 - 7"),
			offeringWith("4", 10, "8 - 11"),
			// No instruction responses at all: must not pull the average toward zero.
			{Responses: []models.SurveyResponse{
				numericResponse(models.QuestionTimeSurvey, models.Bin{Label: "4 - 7", Count: 3}),
			}},
		}

		summary := SummarizeInstructor(offerings)
		assert.InDelta(t, 5.0, summary.Instruction, 1e-9)
	})

	t.Run("workload is a mode of modes, not an average", func(t *testing.T) {
		offerings := []models.Offering{
			offeringWith("5", 1, "4 - 7"),
			offeringWith("5", 1, "4 - 7"),
			// 200 respondents in one offering must not outweigh two offerings.
			offeringWith("5", 200, "20 or more"),
		}

		summary := SummarizeInstructor(offerings)
		assert.Equal(t, "4 - 7", summary.Hours)
	})

	t.Run("no offerings yields the no-data shape", func(t *testing.T) {
		summary := SummarizeInstructor(nil)
		assert.True(t, summary.IsZero())
		assert.Equal(t, ModeNone, summary.Hours)
	})

	t.Run("offerings without any data yield the no-data shape", func(t *testing.T) {
		summary := SummarizeInstructor([]models.Offering{{}, {}})
		assert.True(t, summary.IsZero())
	})
}
