// Package search implements the interactive course/instructor lookup and the
// composite filtered offering retrieval that back the CTEC browsing flow. It
// is agnostic to where the records live: everything goes through Store.
package search

import (
	"context"

	"github.com/google/uuid"

	"github.com/ctecscope/ctecscope/internal/app/models"
)

// OfferingFilter selects offerings by course and instructor membership. An
// empty id slice imposes no constraint on that axis. Requirement filtering is
// deliberately absent: the store cannot express it, callers post-filter.
type OfferingFilter struct {
	CourseIDs     []uuid.UUID
	InstructorIDs []int64
	Offset        int
	Limit         int
}

// OfferingPage is one page of matching offerings plus the total match count
// before pagination (and before any requirement post-filter).
type OfferingPage struct {
	Items      []models.Offering
	TotalCount int
}

// InstructorProfile bundles an instructor with every offering they taught.
type InstructorProfile struct {
	Instructor models.Instructor
	Offerings  []models.Offering
}

// Store is the minimal capability surface the search core needs from the
// backing record store. FindOfferings must order results by year descending,
// quarter rank descending, then id, so offsets stay stable across pages.
type Store interface {
	// FindCourses matches text case-insensitively against course code and
	// title, ascending by title.
	FindCourses(ctx context.Context, text string, limit int) ([]models.Course, error)
	// FindInstructors matches text case-insensitively against instructor
	// name, ascending by name.
	FindInstructors(ctx context.Context, text string, limit int) ([]models.Instructor, error)
	FindOfferings(ctx context.Context, filter OfferingFilter) (OfferingPage, error)
	GetOffering(ctx context.Context, id int64) (*models.Offering, error)
	GetInstructorProfile(ctx context.Context, id int64) (*InstructorProfile, error)
}

// FilterByRequirements keeps the offerings that satisfy at least one selected
// requirement (OR semantics). With nothing selected everything passes. This
// runs client-side because the store query cannot express it yet.
func FilterByRequirements(offerings []models.Offering, requirementIDs []int64) []models.Offering {
	if len(requirementIDs) == 0 {
		return offerings
	}
	filtered := make([]models.Offering, 0, len(offerings))
	for i := range offerings {
		if offerings[i].SatisfiesAny(requirementIDs) {
			filtered = append(filtered, offerings[i])
		}
	}
	return filtered
}
