package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctecscope/ctecscope/internal/app/models"
	"github.com/ctecscope/ctecscope/internal/app/ratings"
	"github.com/ctecscope/ctecscope/internal/pkg/apperrors"
)

func TestGetProfileRollsUpOfferings(t *testing.T) {
	courseID := uuid.New()
	first := newOffering(1, courseID, 7, models.QuarterFall, 2024)
	first.Responses = []models.SurveyResponse{
		{Question: models.QuestionInstruction, Distribution: models.Distribution{{Label: "6", Count: 10}}},
		{Question: models.QuestionTimeSurvey, Distribution: models.Distribution{{Label: "4 - 7", Count: 10}}},
	}
	second := newOffering(2, courseID, 7, models.QuarterSpring, 2024)
	second.Responses = []models.SurveyResponse{
		{Question: models.QuestionInstruction, Distribution: models.Distribution{{Label: "4", Count: 10}}},
		{Question: models.QuestionTimeSurvey, Distribution: models.Distribution{{Label: "4 - 7", Count: 3}}},
	}

	store := &fakeStore{
		instructors: []models.Instructor{{ID: 7, Name: "Ada Lovelace"}},
		offerings:   []models.Offering{first, second},
	}
	svc := NewInstructorService(store, nil)

	profile, err := svc.GetProfile(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", profile.Name)
	assert.Equal(t, 2, profile.OfferingCount)
	require.Len(t, profile.Offerings, 2)

	// (6.0 + 4.0) / 2 offerings, not response-weighted.
	assert.InDelta(t, 5.0, profile.Summary.Instruction.Score, 0.001)
	assert.Equal(t, ratings.BandGood, profile.Summary.Instruction.Band)
	assert.Equal(t, "4 - 7", profile.Summary.Hours.Bucket)

	// Metrics nobody answered stay zero and band NONE.
	assert.Zero(t, profile.Summary.Course.Score)
	assert.Equal(t, ratings.BandNone, profile.Summary.Course.Band)
}

func TestGetProfileValidatesID(t *testing.T) {
	svc := NewInstructorService(&fakeStore{}, nil)

	_, err := svc.GetProfile(context.Background(), -1)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.GetProfile(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrInstructorNotFound)
}
