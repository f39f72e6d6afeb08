package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ctecscope/ctecscope/internal/app/models/dto"
	"github.com/ctecscope/ctecscope/internal/app/repositories"
	"github.com/ctecscope/ctecscope/internal/pkg/apperrors"
	"github.com/ctecscope/ctecscope/internal/pkg/helpers"
)

// CourseService defines the interface for catalog course operations
type CourseService interface {
	// List returns one page of catalog courses matching the query text.
	// Empty text lists the whole catalog.
	List(ctx context.Context, query string, page, size int) (*dto.CourseListResponse, error)
	// GetByCode returns the course with every offering of it, newest first.
	GetByCode(ctx context.Context, code string) (*dto.CourseDetailResponse, error)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo   *repositories.CourseRepository
	offeringRepo *repositories.OfferingRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo *repositories.CourseRepository, offeringRepo *repositories.OfferingRepository) CourseService {
	return &courseServiceImpl{
		courseRepo:   courseRepo,
		offeringRepo: offeringRepo,
	}
}

// List implements CourseService
func (s *courseServiceImpl) List(ctx context.Context, query string, page, size int) (*dto.CourseListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	courses, total, err := s.courseRepo.FindPage(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}

	response := &dto.CourseListResponse{
		Courses:    make([]dto.CourseResponse, 0, len(courses)),
		Pagination: helpers.NewPaginationInfo(int64(total), page, limit),
	}
	for i := range courses {
		response.Courses = append(response.Courses, dto.FromCourse(&courses[i]))
	}
	return response, nil
}

// GetByCode implements CourseService
func (s *courseServiceImpl) GetByCode(ctx context.Context, code string) (*dto.CourseDetailResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: course code cannot be empty", apperrors.ErrValidationFailed)
	}

	course, err := s.courseRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	offerings, err := s.offeringRepo.ListByCourse(ctx, course.ID)
	if err != nil {
		return nil, err
	}

	detail := &dto.CourseDetailResponse{
		CourseResponse: dto.FromCourse(course),
		Offerings:      make([]dto.OfferingResponse, 0, len(offerings)),
	}
	for i := range offerings {
		detail.Offerings = append(detail.Offerings, dto.FromOffering(&offerings[i]))
	}
	return detail, nil
}
