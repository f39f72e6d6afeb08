package search

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ctecscope/ctecscope/internal/app/models"
)

// ResultType tags a search result with the entity kind it wraps.
type ResultType string

// Result type tags
const (
	ResultCourse     ResultType = "course"
	ResultInstructor ResultType = "instructor"
)

// Result is the tagged union over {Course, Instructor} produced by a lookup.
// Exactly one of Course/Instructor is set, matching Type.
type Result struct {
	Type       ResultType         `json:"type"`
	Course     *models.Course     `json:"course,omitempty"`
	Instructor *models.Instructor `json:"instructor,omitempty"`
}

// Label returns the display text of the underlying entity.
func (r Result) Label() string {
	switch r.Type {
	case ResultCourse:
		return r.Course.Code + " " + r.Course.Title
	case ResultInstructor:
		return r.Instructor.Name
	}
	return ""
}

// Lookup runs the course and instructor lookups concurrently and merges the
// results, courses first. Both lookups share the per-entity limit. If either
// side fails the whole lookup fails; callers decide how loudly.
func Lookup(ctx context.Context, store Store, text string, limit int) ([]Result, error) {
	text = strings.TrimSpace(text)

	var courses []models.Course
	var instructors []models.Instructor

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		courses, err = store.FindCourses(gctx, text, limit)
		return err
	})
	g.Go(func() error {
		var err error
		instructors, err = store.FindInstructors(gctx, text, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(courses)+len(instructors))
	for i := range courses {
		results = append(results, Result{Type: ResultCourse, Course: &courses[i]})
	}
	for i := range instructors {
		results = append(results, Result{Type: ResultInstructor, Instructor: &instructors[i]})
	}
	return results, nil
}
