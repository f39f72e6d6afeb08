package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ctecscope/ctecscope/internal/app/models"
)

// memStore is an in-memory Store used by the tests in this package. Hooks let
// individual tests block calls, inject failures, and count round-trips.
type memStore struct {
	mu          sync.Mutex
	courses     []models.Course
	instructors []models.Instructor
	offerings   []models.Offering

	lookupCalls   int
	offeringCalls int

	// courseHook runs at the start of FindCourses; a non-nil error aborts.
	courseHook func(ctx context.Context, text string) error
	// offeringHook runs at the start of FindOfferings.
	offeringHook func(ctx context.Context, filter OfferingFilter) error
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) addOffering(o models.Offering) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offerings = append(s.offerings, o)
}

func (s *memStore) FindCourses(ctx context.Context, text string, limit int) ([]models.Course, error) {
	s.mu.Lock()
	hook := s.courseHook
	s.lookupCalls++
	courses := make([]models.Course, len(s.courses))
	copy(courses, s.courses)
	s.mu.Unlock()

	if hook != nil {
		if err := hook(ctx, text); err != nil {
			return nil, err
		}
	}

	needle := strings.ToLower(text)
	var matched []models.Course
	for _, c := range courses {
		if strings.Contains(strings.ToLower(c.Code), needle) ||
			strings.Contains(strings.ToLower(c.Title), needle) {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Title < matched[j].Title })
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *memStore) FindInstructors(ctx context.Context, text string, limit int) ([]models.Instructor, error) {
	s.mu.Lock()
	instructors := make([]models.Instructor, len(s.instructors))
	copy(instructors, s.instructors)
	s.mu.Unlock()

	needle := strings.ToLower(text)
	var matched []models.Instructor
	for _, in := range instructors {
		if strings.Contains(strings.ToLower(in.Name), needle) {
			matched = append(matched, in)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *memStore) FindOfferings(ctx context.Context, filter OfferingFilter) (OfferingPage, error) {
	s.mu.Lock()
	hook := s.offeringHook
	s.offeringCalls++
	offerings := make([]models.Offering, len(s.offerings))
	copy(offerings, s.offerings)
	s.mu.Unlock()

	if hook != nil {
		if err := hook(ctx, filter); err != nil {
			return OfferingPage{}, err
		}
	}

	var matched []models.Offering
	for _, o := range offerings {
		if len(filter.CourseIDs) > 0 && !containsUUID(filter.CourseIDs, o.CourseID) {
			continue
		}
		if len(filter.InstructorIDs) > 0 && !containsInt64(filter.InstructorIDs, o.InstructorID) {
			continue
		}
		matched = append(matched, o)
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
		return OfferingPage{TotalCount: total}, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}
	return OfferingPage{Items: matched[filter.Offset:end], TotalCount: total}, nil
}

func (s *memStore) GetOffering(ctx context.Context, id int64) (*models.Offering, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.offerings {
		if s.offerings[i].ID == id {
			o := s.offerings[i]
			return &o, nil
		}
	}
	return nil, fmt.Errorf("offering %d not found", id)
}

func (s *memStore) GetInstructorProfile(ctx context.Context, id int64) (*InstructorProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, in := range s.instructors {
		if in.ID == id {
			profile := &InstructorProfile{Instructor: in}
			for _, o := range s.offerings {
				if o.InstructorID == id {
					profile.Offerings = append(profile.Offerings, o)
				}
			}
			return profile, nil
		}
	}
	return nil, fmt.Errorf("instructor %d not found", id)
}

func containsUUID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func containsInt64(ids []int64, id int64) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
