package ratings

import (
	"math"

	"github.com/ctecscope/ctecscope/internal/app/models"
)

// Summary holds the per-question display metrics for one offering, or the
// roll-up across all offerings of one instructor. Numeric metrics are rounded
// to one decimal; a metric with no data is 0. Hours is the modal time-survey
// bucket, ModeNone when nobody answered.
type Summary struct {
	Instruction   float64 `json:"instruction" example:"5.2"`
	Course        float64 `json:"course" example:"4.8"`
	Learned       float64 `json:"learned" example:"4.9"`
	Challenge     float64 `json:"challenge" example:"5.0"`
	Interest      float64 `json:"interest" example:"5.1"`
	PriorInterest float64 `json:"priorInterest" example:"3.4"`
	Hours         string  `json:"hours" example:"4 - 7"`
}

// IsZero reports whether the summary carries no data at all.
func (s Summary) IsZero() bool {
	return s == Summary{}
}

// numericQuestions lists the questions summarized with WeightedAverage, in
// the order CTEC reports print them.
var numericQuestions = []models.QuestionKey{
	models.QuestionInstruction,
	models.QuestionCourse,
	models.QuestionLearned,
	models.QuestionChallenge,
	models.QuestionInterest,
	models.QuestionPriorInterest,
}

// SummarizeOffering derives the display metrics for a single offering. Every
// numeric question is response-weighted; the time survey takes the modal
// bucket instead. Questions missing from the responses yield 0.
func SummarizeOffering(responses []models.SurveyResponse) Summary {
	var summary Summary
	for _, response := range responses {
		switch response.Question {
		case models.QuestionTimeSurvey:
			summary.Hours = Mode(response.Distribution)
		default:
			if metric := summaryMetric(&summary, response.Question); metric != nil {
				*metric = round1(WeightedAverage(response.Distribution))
			}
		}
	}
	return summary
}

// SummarizeInstructor rolls up offering summaries for one instructor. Each
// numeric metric averages only the offerings that reported a non-zero value
// for it; an offering with no data for a metric does not drag the average
// down. The workload metric takes the mode of the per-offering modal buckets,
// since per-offering response counts are lost once summarized.
func SummarizeInstructor(offerings []models.Offering) Summary {
	var summary Summary
	sums := make(map[models.QuestionKey]float64, len(numericQuestions))
	counts := make(map[models.QuestionKey]int, len(numericQuestions))
	var hourModes models.Distribution

	for i := range offerings {
		offeringSummary := SummarizeOffering(offerings[i].Responses)
		for _, question := range numericQuestions {
			value := *summaryMetric(&offeringSummary, question)
			if value == 0 {
				continue
			}
			sums[question] += value
			counts[question]++
		}
		if offeringSummary.Hours != ModeNone {
			hourModes = hourModes.Add(offeringSummary.Hours, 1)
		}
	}

	for _, question := range numericQuestions {
		if counts[question] == 0 {
			continue
		}
		*summaryMetric(&summary, question) = round1(sums[question] / float64(counts[question]))
	}
	summary.Hours = Mode(hourModes)
	return summary
}

// summaryMetric maps a numeric question key to its summary field. Returns nil
// for questions that have no single-number metric (demographics, free text).
func summaryMetric(s *Summary, question models.QuestionKey) *float64 {
	switch question {
	case models.QuestionInstruction:
		return &s.Instruction
	case models.QuestionCourse:
		return &s.Course
	case models.QuestionLearned:
		return &s.Learned
	case models.QuestionChallenge:
		return &s.Challenge
	case models.QuestionInterest:
		return &s.Interest
	case models.QuestionPriorInterest:
		return &s.PriorInterest
	default:
		return nil
	}
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
