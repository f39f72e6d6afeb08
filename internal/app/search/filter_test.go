package search

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterStateIdempotentAdd(t *testing.T) {
	f := NewFilterState()
	course := CourseRef{ID: uuid.New(), Code: "CS 111"}

	f.AddCourse(course)
	once := f.Selection()
	f.AddCourse(course)
	twice := f.Selection()

	assert.Equal(t, once, twice)
	require.Len(t, twice.Courses, 1)
	assert.Equal(t, "CS 111", twice.Courses[0].Code)
}

func TestFilterStateRemoveAbsentIsNoop(t *testing.T) {
	f := NewFilterState()
	f.AddInstructor(InstructorRef{ID: 7, Name: "Ada Lovelace"})

	f.RemoveInstructor(99)
	f.RemoveCourse(uuid.New())

	sel := f.Selection()
	require.Len(t, sel.Instructors, 1)
	assert.Empty(t, sel.Courses)
}

func TestFilterStateToggleRequirement(t *testing.T) {
	f := NewFilterState()

	f.ToggleRequirement(3)
	assert.Equal(t, []int64{3}, f.Selection().RequirementIDs)

	f.ToggleRequirement(3)
	assert.Empty(t, f.Selection().RequirementIDs)
}

func TestFilterStateClear(t *testing.T) {
	f := NewFilterState()
	f.AddCourse(CourseRef{ID: uuid.New(), Code: "CS 111"})
	f.AddInstructor(InstructorRef{ID: 1, Name: "Ada Lovelace"})
	f.ToggleRequirement(2)

	f.Clear()

	sel := f.Selection()
	assert.True(t, sel.Empty())
	assert.Empty(t, sel.RequirementIDs)
}

func TestFilterStateSerializeRoundTrip(t *testing.T) {
	f := NewFilterState()
	first := CourseRef{ID: uuid.New(), Code: "CS 111"}
	second := CourseRef{ID: uuid.New(), Code: "MATH 230-1"}
	f.AddCourse(first)
	f.AddCourse(second)
	f.AddInstructor(InstructorRef{ID: 42, Name: "Grace Hopper"})
	f.ToggleRequirement(5)
	f.ToggleRequirement(2)

	restored := NewFilterState()
	restored.Deserialize(f.Serialize())

	want := f.Selection()
	got := restored.Selection()
	// Course/instructor order is preserved; requirement ids are a set.
	assert.Equal(t, want.Courses, got.Courses)
	assert.Equal(t, want.Instructors, got.Instructors)
	assert.ElementsMatch(t, want.RequirementIDs, got.RequirementIDs)
}

func TestFilterStateDeserializeMalformed(t *testing.T) {
	f := NewFilterState()
	f.AddCourse(CourseRef{ID: uuid.New(), Code: "CS 111"})
	before := f.Selection()

	// An unparseable query string leaves the selection untouched.
	f.Deserialize("course=%zz;%%%")
	assert.Equal(t, before, f.Selection())

	// Parseable input with garbage entries keeps the good ones.
	keeper := uuid.New()
	f.Deserialize("course=not-a-uuid~X&course=" + keeper.String() + "~PHYS 135&instructor=abc~Nobody&req=x")
	sel := f.Selection()
	require.Len(t, sel.Courses, 1)
	assert.Equal(t, keeper, sel.Courses[0].ID)
	assert.Empty(t, sel.Instructors)
	assert.Empty(t, sel.RequirementIDs)
}

func TestFilterStateDeserializeDuplicateRequirement(t *testing.T) {
	f := NewFilterState()
	f.Deserialize("req=4&req=4")
	assert.Equal(t, []int64{4}, f.Selection().RequirementIDs)
}
