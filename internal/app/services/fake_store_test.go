package services

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/ctecscope/ctecscope/internal/app/models"
	"github.com/ctecscope/ctecscope/internal/app/search"
	"github.com/ctecscope/ctecscope/internal/pkg/apperrors"
)

// fakeStore is an in-memory search.Store for service tests.
type fakeStore struct {
	courses     []models.Course
	instructors []models.Instructor
	offerings   []models.Offering

	findErr       error
	lookupCalls   int
	offeringCalls int
}

func (f *fakeStore) FindCourses(ctx context.Context, text string, limit int) ([]models.Course, error) {
	f.lookupCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	needle := strings.ToLower(text)
	matched := make([]models.Course, 0)
	for _, course := range f.courses {
		if strings.Contains(strings.ToLower(course.Code), needle) ||
			strings.Contains(strings.ToLower(course.Title), needle) {
			matched = append(matched, course)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Title < matched[j].Title })
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeStore) FindInstructors(ctx context.Context, text string, limit int) ([]models.Instructor, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	needle := strings.ToLower(text)
	matched := make([]models.Instructor, 0)
	for _, instructor := range f.instructors {
		if strings.Contains(strings.ToLower(instructor.Name), needle) {
			matched = append(matched, instructor)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeStore) FindOfferings(ctx context.Context, filter search.OfferingFilter) (search.OfferingPage, error) {
	f.offeringCalls++
	if f.findErr != nil {
		return search.OfferingPage{}, f.findErr
	}

	matched := make([]models.Offering, 0)
	for _, offering := range f.offerings {
		if len(filter.CourseIDs) > 0 && !containsUUID(filter.CourseIDs, offering.CourseID) {
			continue
		}
		if len(filter.InstructorIDs) > 0 && !containsInt64(filter.InstructorIDs, offering.InstructorID) {
			continue
		}
		matched = append(matched, offering)
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.Quarter.Rank() != b.Quarter.Rank() {
			return a.Quarter.Rank() > b.Quarter.Rank()
		}
		return a.ID < b.ID
	})

	total := len(matched)
	if filter.Offset >= total {
		return search.OfferingPage{Items: []models.Offering{}, TotalCount: total}, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return search.OfferingPage{Items: matched, TotalCount: total}, nil
}

func (f *fakeStore) GetOffering(ctx context.Context, id int64) (*models.Offering, error) {
	for i := range f.offerings {
		if f.offerings[i].ID == id {
			return &f.offerings[i], nil
		}
	}
	return nil, apperrors.ErrOfferingNotFound
}

func (f *fakeStore) GetInstructorProfile(ctx context.Context, id int64) (*search.InstructorProfile, error) {
	var instructor *models.Instructor
	for i := range f.instructors {
		if f.instructors[i].ID == id {
			instructor = &f.instructors[i]
			break
		}
	}
	if instructor == nil {
		return nil, apperrors.ErrInstructorNotFound
	}
	offerings := make([]models.Offering, 0)
	for _, offering := range f.offerings {
		if offering.InstructorID == id {
			offerings = append(offerings, offering)
		}
	}
	return &search.InstructorProfile{Instructor: *instructor, Offerings: offerings}, nil
}

func containsUUID(haystack []uuid.UUID, needle uuid.UUID) bool {
	for _, candidate := range haystack {
		if candidate == needle {
			return true
		}
	}
	return false
}

func containsInt64(haystack []int64, needle int64) bool {
	for _, candidate := range haystack {
		if candidate == needle {
			return true
		}
	}
	return false
}
