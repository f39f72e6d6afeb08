package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ctecscope/ctecscope/internal/app/models"
	"github.com/ctecscope/ctecscope/internal/app/search"
	"github.com/ctecscope/ctecscope/internal/pkg/apperrors"
	"github.com/ctecscope/ctecscope/internal/pkg/logger"
)

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx, so write paths can
// run inside or outside a transaction with the same repository code.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	CourseRepository      *CourseRepository
	InstructorRepository  *InstructorRepository
	RequirementRepository *RequirementRepository
	OfferingRepository    *OfferingRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		CourseRepository:      NewCourseRepository(db),
		InstructorRepository:  NewInstructorRepository(db),
		RequirementRepository: NewRequirementRepository(db),
		OfferingRepository:    NewOfferingRepository(db),
	}
}

// storeFailure logs a failed store operation and wraps it as a transient
// error, so the API layer reports it as retryable.
func storeFailure(action string, err error) error {
	logger.Error().Err(err).Str("action", action).Msg("Store query failed")
	return apperrors.NewCustomError(apperrors.ErrStoreUnavailable, fmt.Sprintf("%s: %v", action, err))
}

// Store adapts the repositories to the search.Store capability surface.
type Store struct {
	repos *Repositories
}

// NewStore creates a search store backed by the repositories
func NewStore(repos *Repositories) *Store {
	return &Store{repos: repos}
}

// FindCourses implements search.Store
func (s *Store) FindCourses(ctx context.Context, text string, limit int) ([]models.Course, error) {
	return s.repos.CourseRepository.FindByText(ctx, text, limit)
}

// FindInstructors implements search.Store
func (s *Store) FindInstructors(ctx context.Context, text string, limit int) ([]models.Instructor, error) {
	return s.repos.InstructorRepository.FindByText(ctx, text, limit)
}

// FindOfferings implements search.Store
func (s *Store) FindOfferings(ctx context.Context, filter search.OfferingFilter) (search.OfferingPage, error) {
	return s.repos.OfferingRepository.Find(ctx, filter)
}

// GetOffering implements search.Store
func (s *Store) GetOffering(ctx context.Context, id int64) (*models.Offering, error) {
	return s.repos.OfferingRepository.GetByID(ctx, id)
}

// GetInstructorProfile implements search.Store
func (s *Store) GetInstructorProfile(ctx context.Context, id int64) (*search.InstructorProfile, error) {
	instructor, err := s.repos.InstructorRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	offerings, err := s.repos.OfferingRepository.ListByInstructor(ctx, id)
	if err != nil {
		return nil, err
	}
	return &search.InstructorProfile{
		Instructor: *instructor,
		Offerings:  offerings,
	}, nil
}
