package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ctecscope/ctecscope/internal/app/models"
	"github.com/ctecscope/ctecscope/internal/pkg/apperrors"
)

// InstructorRepository handles instructor database operations
type InstructorRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInstructorRepository creates a new InstructorRepository
func NewInstructorRepository(db *pgxpool.Pool) *InstructorRepository {
	return &InstructorRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// FindByText matches text case-insensitively against instructor name,
// ascending by name.
func (r *InstructorRepository) FindByText(ctx context.Context, text string, limit int) ([]models.Instructor, error) {
	pattern := "%" + strings.TrimSpace(text) + "%"

	querySql, queryArgs, err := r.sb.Select("id", "name").
		From("instructors").
		Where(squirrel.ILike{"name": pattern}).
		OrderBy("name ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, storeFailure("build find instructors query", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		return nil, storeFailure("query instructors", err)
	}
	defer rows.Close()

	instructors := make([]models.Instructor, 0, limit)
	for rows.Next() {
		var instructor models.Instructor
		if err := rows.Scan(&instructor.ID, &instructor.Name); err != nil {
			return nil, storeFailure("scan instructor row", err)
		}
		instructors = append(instructors, instructor)
	}
	if err := rows.Err(); err != nil {
		return nil, storeFailure("read instructor rows", err)
	}
	return instructors, nil
}

// GetByID retrieves one instructor by id
func (r *InstructorRepository) GetByID(ctx context.Context, id int64) (*models.Instructor, error) {
	querySql, queryArgs, err := r.sb.Select("id", "name").
		From("instructors").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, storeFailure("build get instructor query", err)
	}

	var instructor models.Instructor
	err = r.db.QueryRow(ctx, querySql, queryArgs...).Scan(&instructor.ID, &instructor.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstructorNotFound
		}
		return nil, storeFailure("get instructor", err)
	}
	return &instructor, nil
}

// GetOrCreate inserts the instructor if unseen and returns its id either way.
func (r *InstructorRepository) GetOrCreate(ctx context.Context, q Querier, name string) (int64, error) {
	const upsert = `
		INSERT INTO instructors (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`

	var id int64
	if err := q.QueryRow(ctx, upsert, strings.TrimSpace(name)).Scan(&id); err != nil {
		return 0, storeFailure("upsert instructor", err)
	}
	return id, nil
}
