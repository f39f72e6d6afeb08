package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ctecscope/ctecscope/internal/app/models"
	"github.com/ctecscope/ctecscope/internal/pkg/apperrors"
)

// CourseRepository handles catalog course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// FindByText matches text case-insensitively against course code and title,
// ascending by title.
func (r *CourseRepository) FindByText(ctx context.Context, text string, limit int) ([]models.Course, error) {
	pattern := "%" + strings.TrimSpace(text) + "%"

	query := r.sb.Select("id", "code", "title", "school").
		From("courses").
		Where(squirrel.Or{
			squirrel.ILike{"code": pattern},
			squirrel.ILike{"title": pattern},
		}).
		OrderBy("title ASC", "code ASC").
		Limit(uint64(limit))

	querySql, queryArgs, err := query.ToSql()
	if err != nil {
		return nil, storeFailure("build find courses query", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		return nil, storeFailure("query courses", err)
	}
	defer rows.Close()

	courses := make([]models.Course, 0, limit)
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.Code, &course.Title, &course.School); err != nil {
			return nil, storeFailure("scan course row", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, storeFailure("read course rows", err)
	}
	return courses, nil
}

// FindPage retrieves one page of courses matching text, plus the total match
// count. Empty text lists the whole catalog.
func (r *CourseRepository) FindPage(ctx context.Context, text string, offset, limit int) ([]models.Course, int, error) {
	listSelect := r.sb.Select("id", "code", "title", "school").From("courses")
	countSelect := r.sb.Select("COUNT(*)").From("courses")

	if text = strings.TrimSpace(text); text != "" {
		pattern := "%" + text + "%"
		where := squirrel.Or{
			squirrel.ILike{"code": pattern},
			squirrel.ILike{"title": pattern},
		}
		listSelect = listSelect.Where(where)
		countSelect = countSelect.Where(where)
	}

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, storeFailure("build count courses query", err)
	}
	var totalItems int
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		return nil, 0, storeFailure("count courses", err)
	}
	if totalItems == 0 {
		return []models.Course{}, 0, nil
	}

	querySql, queryArgs, err := listSelect.
		OrderBy("title ASC", "code ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, storeFailure("build list courses query", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		return nil, 0, storeFailure("query courses", err)
	}
	defer rows.Close()

	courses := make([]models.Course, 0, limit)
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.Code, &course.Title, &course.School); err != nil {
			return nil, 0, storeFailure("scan course row", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeFailure("read course rows", err)
	}
	return courses, totalItems, nil
}

// GetByID retrieves one course by id
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByCode retrieves one course by its catalog code
func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	return r.getOne(ctx, squirrel.Eq{"code": strings.TrimSpace(code)})
}

func (r *CourseRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Course, error) {
	querySql, queryArgs, err := r.sb.Select("id", "code", "title", "school").
		From("courses").
		Where(where).
		ToSql()
	if err != nil {
		return nil, storeFailure("build get course query", err)
	}

	var course models.Course
	err = r.db.QueryRow(ctx, querySql, queryArgs...).
		Scan(&course.ID, &course.Code, &course.Title, &course.School)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, storeFailure("get course", err)
	}
	return &course, nil
}

// GetOrCreate inserts the course if unseen, otherwise refreshes its title and
// school from the newest report. Returns the course id either way.
func (r *CourseRepository) GetOrCreate(ctx context.Context, q Querier, code, title, school string) (uuid.UUID, error) {
	const upsert = `
		INSERT INTO courses (code, title, school)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET title = EXCLUDED.title, school = EXCLUDED.school
		RETURNING id`

	var id uuid.UUID
	err := q.QueryRow(ctx, upsert, strings.TrimSpace(code), title, school).Scan(&id)
	if err != nil {
		return uuid.Nil, storeFailure("upsert course", err)
	}
	return id, nil
}
