package search

import (
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ctecscope/ctecscope/internal/pkg/logger"
)

// CourseRef is a lightweight id+label snapshot of a selected course. It keeps
// the selection renderable even if the underlying course is later deleted.
type CourseRef struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
}

// InstructorRef is a lightweight id+label snapshot of a selected instructor.
type InstructorRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Selection is an immutable snapshot of the current filter choices. Course
// and instructor order follows insertion; requirement ids are a set.
type Selection struct {
	Courses        []CourseRef
	Instructors    []InstructorRef
	RequirementIDs []int64
}

// CourseIDs returns the selected course ids in insertion order.
func (s Selection) CourseIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(s.Courses))
	for i, c := range s.Courses {
		ids[i] = c.ID
	}
	return ids
}

// InstructorIDs returns the selected instructor ids in insertion order.
func (s Selection) InstructorIDs() []int64 {
	ids := make([]int64, len(s.Instructors))
	for i, in := range s.Instructors {
		ids[i] = in.ID
	}
	return ids
}

// Empty reports whether no course and no instructor is selected. Requirement
// tags alone do not constitute a query.
func (s Selection) Empty() bool {
	return len(s.Courses) == 0 && len(s.Instructors) == 0
}

// FilterState is the mutable selection set driving offering retrieval. All
// mutation happens synchronously through these methods; nothing in the
// background ever touches it.
type FilterState struct {
	mu           sync.Mutex
	courses      []CourseRef
	instructors  []InstructorRef
	requirements map[int64]struct{}
	reqOrder     []int64
}

// NewFilterState creates an empty selection.
func NewFilterState() *FilterState {
	return &FilterState{requirements: make(map[int64]struct{})}
}

// AddCourse appends a course to the selection. Adding an id already present
// is a no-op, so repeated clicks cannot duplicate a chip.
func (f *FilterState) AddCourse(ref CourseRef) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.courses {
		if c.ID == ref.ID {
			return
		}
	}
	f.courses = append(f.courses, ref)
}

// RemoveCourse drops a course by id; absent ids are ignored.
func (f *FilterState) RemoveCourse(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.courses {
		if c.ID == id {
			f.courses = append(f.courses[:i], f.courses[i+1:]...)
			return
		}
	}
}

// AddInstructor appends an instructor to the selection, idempotently.
func (f *FilterState) AddInstructor(ref InstructorRef) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, in := range f.instructors {
		if in.ID == ref.ID {
			return
		}
	}
	f.instructors = append(f.instructors, ref)
}

// RemoveInstructor drops an instructor by id; absent ids are ignored.
func (f *FilterState) RemoveInstructor(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, in := range f.instructors {
		if in.ID == id {
			f.instructors = append(f.instructors[:i], f.instructors[i+1:]...)
			return
		}
	}
}

// ToggleRequirement flips a requirement tag: present becomes removed, absent
// becomes added.
func (f *FilterState) ToggleRequirement(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.requirements[id]; ok {
		delete(f.requirements, id)
		for i, existing := range f.reqOrder {
			if existing == id {
				f.reqOrder = append(f.reqOrder[:i], f.reqOrder[i+1:]...)
				break
			}
		}
		return
	}
	f.requirements[id] = struct{}{}
	f.reqOrder = append(f.reqOrder, id)
}

// Clear empties all three selections atomically.
func (f *FilterState) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.courses = nil
	f.instructors = nil
	f.requirements = make(map[int64]struct{})
	f.reqOrder = nil
}

// Selection returns a snapshot of the current choices.
func (f *FilterState) Selection() Selection {
	f.mu.Lock()
	defer f.mu.Unlock()
	sel := Selection{
		Courses:        make([]CourseRef, len(f.courses)),
		Instructors:    make([]InstructorRef, len(f.instructors)),
		RequirementIDs: make([]int64, len(f.reqOrder)),
	}
	copy(sel.Courses, f.courses)
	copy(sel.Instructors, f.instructors)
	copy(sel.RequirementIDs, f.reqOrder)
	return sel
}

// Deep-link query parameter names. Course and instructor entries carry their
// display label after the id so the selection renders without a re-fetch.
const (
	paramCourse      = "course"
	paramInstructor  = "instructor"
	paramRequirement = "req"
	labelSeparator   = "~"
)

// Serialize encodes the selection as a percent-encoded URL query string.
func (f *FilterState) Serialize() string {
	sel := f.Selection()
	values := url.Values{}
	for _, c := range sel.Courses {
		values.Add(paramCourse, c.ID.String()+labelSeparator+c.Code)
	}
	for _, in := range sel.Instructors {
		values.Add(paramInstructor, strconv.FormatInt(in.ID, 10)+labelSeparator+in.Name)
	}
	for _, id := range sel.RequirementIDs {
		values.Add(paramRequirement, strconv.FormatInt(id, 10))
	}
	return values.Encode()
}

// Deserialize replaces the selection with one decoded from a query string
// produced by Serialize. Malformed input never panics or errors out: bad
// entries are logged and skipped, and an unparseable string leaves the
// selection untouched.
func (f *FilterState) Deserialize(encoded string) {
	values, err := url.ParseQuery(encoded)
	if err != nil {
		logger.Warn().Err(err).Msg("Ignoring malformed filter query string")
		return
	}

	next := NewFilterState()
	for _, raw := range values[paramCourse] {
		idPart, label, _ := strings.Cut(raw, labelSeparator)
		id, err := uuid.Parse(idPart)
		if err != nil {
			logger.Warn().Str("entry", raw).Msg("Skipping malformed course filter entry")
			continue
		}
		next.AddCourse(CourseRef{ID: id, Code: label})
	}
	for _, raw := range values[paramInstructor] {
		idPart, label, _ := strings.Cut(raw, labelSeparator)
		id, err := strconv.ParseInt(idPart, 10, 64)
		if err != nil {
			logger.Warn().Str("entry", raw).Msg("Skipping malformed instructor filter entry")
			continue
		}
		next.AddInstructor(InstructorRef{ID: id, Name: label})
	}
	for _, raw := range values[paramRequirement] {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			logger.Warn().Str("entry", raw).Msg("Skipping malformed requirement filter entry")
			continue
		}
		// Duplicate params must not toggle the tag back off.
		if _, ok := next.requirements[id]; !ok {
			next.ToggleRequirement(id)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.courses = next.courses
	f.instructors = next.instructors
	f.requirements = next.requirements
	f.reqOrder = next.reqOrder
}
