package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctecscope/ctecscope/internal/app/models"
	"github.com/ctecscope/ctecscope/internal/app/search"
)

func TestSuggestShortQuerySkipsStore(t *testing.T) {
	store := &fakeStore{}
	svc := NewSearchService(store, 2, 5)

	for _, query := range []string{"", "a", " a "} {
		results, err := svc.Suggest(context.Background(), query, 5)
		require.NoError(t, err)
		assert.Empty(t, results)
	}
	assert.Zero(t, store.lookupCalls)
}

func TestSuggestMergesCoursesFirst(t *testing.T) {
	store := &fakeStore{
		courses: []models.Course{
			{ID: uuid.New(), Code: "CS 348", Title: "Introduction to Artificial Intelligence"},
		},
		instructors: []models.Instructor{
			{ID: 7, Name: "Arti Sharma"},
		},
	}
	svc := NewSearchService(store, 2, 5)

	results, err := svc.Suggest(context.Background(), "arti", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, search.ResultCourse, results[0].Type)
	assert.Equal(t, search.ResultInstructor, results[1].Type)
}

func TestSuggestClampsLimit(t *testing.T) {
	store := &fakeStore{}
	for i := 0; i < 10; i++ {
		store.courses = append(store.courses, models.Course{
			ID:    uuid.New(),
			Code:  "MATH 230",
			Title: "Linear Algebra",
		})
	}
	svc := NewSearchService(store, 2, 5)

	results, err := svc.Suggest(context.Background(), "linear", 100)
	require.NoError(t, err)
	assert.Len(t, results, 5)
}
