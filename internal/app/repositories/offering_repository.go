package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ctecscope/ctecscope/internal/app/models"
	"github.com/ctecscope/ctecscope/internal/app/search"
	"github.com/ctecscope/ctecscope/internal/pkg/apperrors"
)

// quarterRank orders quarters chronologically within a year. Kept in SQL so
// pagination offsets stay stable no matter how the rows were inserted.
const quarterRank = "CASE o.quarter WHEN 'WINTER' THEN 1 WHEN 'SPRING' THEN 2 WHEN 'SUMMER' THEN 3 WHEN 'FALL' THEN 4 ELSE 0 END"

// OfferingRepository handles course offering database operations
type OfferingRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewOfferingRepository creates a new OfferingRepository
func NewOfferingRepository(db *pgxpool.Pool) *OfferingRepository {
	return &OfferingRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// baseSelect joins courses and instructors so every offering row comes back
// with its display relations populated.
func (r *OfferingRepository) baseSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"o.id", "o.course_id", "o.instructor_id", "o.section", "o.quarter",
		"o.year", "o.audience_size", "o.response_count",
		"c.code", "c.title", "c.school",
		"i.name",
	).
		From("course_offerings o").
		Join("courses c ON o.course_id = c.id").
		Join("instructors i ON o.instructor_id = i.id")
}

// Find retrieves one page of offerings matching the filter, newest term
// first, plus the total match count before pagination. Requirement tags and
// survey histograms are loaded for the returned page only.
func (r *OfferingRepository) Find(ctx context.Context, filter search.OfferingFilter) (search.OfferingPage, error) {
	listSelect := r.baseSelect()
	countSelect := r.sb.Select("COUNT(*)").From("course_offerings o")

	where := squirrel.And{}
	if len(filter.CourseIDs) > 0 {
		where = append(where, squirrel.Eq{"o.course_id": filter.CourseIDs})
	}
	if len(filter.InstructorIDs) > 0 {
		where = append(where, squirrel.Eq{"o.instructor_id": filter.InstructorIDs})
	}
	if len(where) > 0 {
		listSelect = listSelect.Where(where)
		countSelect = countSelect.Where(where)
	}

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return search.OfferingPage{}, storeFailure("build count offerings query", err)
	}

	var totalItems int
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		return search.OfferingPage{}, storeFailure("count offerings", err)
	}
	if totalItems == 0 {
		return search.OfferingPage{Items: []models.Offering{}}, nil
	}

	listSelect = listSelect.OrderBy("o.year DESC", quarterRank+" DESC", "o.id ASC")
	if filter.Limit > 0 {
		listSelect = listSelect.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		listSelect = listSelect.Offset(uint64(filter.Offset))
	}

	offerings, err := r.queryOfferings(ctx, listSelect)
	if err != nil {
		return search.OfferingPage{}, err
	}
	if err := r.loadRelations(ctx, offerings); err != nil {
		return search.OfferingPage{}, err
	}

	return search.OfferingPage{Items: offerings, TotalCount: totalItems}, nil
}

// GetByID retrieves one offering with relations and histograms loaded
func (r *OfferingRepository) GetByID(ctx context.Context, id int64) (*models.Offering, error) {
	querySql, queryArgs, err := r.baseSelect().Where(squirrel.Eq{"o.id": id}).ToSql()
	if err != nil {
		return nil, storeFailure("build get offering query", err)
	}

	row := r.db.QueryRow(ctx, querySql, queryArgs...)
	offering, err := scanOffering(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOfferingNotFound
		}
		return nil, storeFailure("get offering", err)
	}

	offerings := []models.Offering{*offering}
	if err := r.loadRelations(ctx, offerings); err != nil {
		return nil, err
	}
	return &offerings[0], nil
}

// ListByInstructor retrieves every offering one instructor taught, newest
// first, with histograms loaded for roll-up summaries.
func (r *OfferingRepository) ListByInstructor(ctx context.Context, instructorID int64) ([]models.Offering, error) {
	return r.listAll(ctx, squirrel.Eq{"o.instructor_id": instructorID})
}

// ListByCourse retrieves every offering of one course, newest first.
func (r *OfferingRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Offering, error) {
	return r.listAll(ctx, squirrel.Eq{"o.course_id": courseID})
}

func (r *OfferingRepository) listAll(ctx context.Context, where squirrel.Eq) ([]models.Offering, error) {
	listSelect := r.baseSelect().
		Where(where).
		OrderBy("o.year DESC", quarterRank+" DESC", "o.id ASC")

	offerings, err := r.queryOfferings(ctx, listSelect)
	if err != nil {
		return nil, err
	}
	if err := r.loadRelations(ctx, offerings); err != nil {
		return nil, err
	}
	return offerings, nil
}

// Upsert inserts the offering or, when the same (course, instructor, quarter,
// year, section) tuple was already ingested, refreshes its counts. The
// offering id is written back; created reports whether a new row was made.
func (r *OfferingRepository) Upsert(ctx context.Context, q Querier, offering *models.Offering) (bool, error) {
	const upsert = `
		INSERT INTO course_offerings
			(course_id, instructor_id, section, quarter, year, audience_size, response_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (course_id, instructor_id, quarter, year, section)
		DO UPDATE SET
			audience_size = EXCLUDED.audience_size,
			response_count = EXCLUDED.response_count
		RETURNING id, (xmax = 0)`

	var created bool
	err := q.QueryRow(ctx, upsert,
		offering.CourseID, offering.InstructorID, offering.Section,
		offering.Quarter, offering.Year, offering.AudienceSize, offering.ResponseCount,
	).Scan(&offering.ID, &created)
	if err != nil {
		return false, storeFailure("upsert offering", err)
	}
	return created, nil
}

// ReplaceResponses swaps the offering's stored histograms for the given set.
func (r *OfferingRepository) ReplaceResponses(ctx context.Context, q Querier, offeringID int64, responses []models.SurveyResponse) error {
	if _, err := q.Exec(ctx, `DELETE FROM survey_responses WHERE offering_id = $1`, offeringID); err != nil {
		return storeFailure("clear survey responses", err)
	}

	const insert = `
		INSERT INTO survey_responses (offering_id, question, distribution)
		VALUES ($1, $2, $3)`
	for _, response := range responses {
		distribution, err := json.Marshal(response.Distribution)
		if err != nil {
			return fmt.Errorf("failed to encode distribution for %q: %w", response.Question, err)
		}
		if _, err := q.Exec(ctx, insert, offeringID, response.Question, distribution); err != nil {
			return storeFailure("insert survey response", err)
		}
	}
	return nil
}

// SetRequirements swaps the offering's requirement tags for the given set.
func (r *OfferingRepository) SetRequirements(ctx context.Context, q Querier, offeringID int64, requirementIDs []int64) error {
	if _, err := q.Exec(ctx, `DELETE FROM offering_requirements WHERE offering_id = $1`, offeringID); err != nil {
		return storeFailure("clear offering requirements", err)
	}

	const insert = `
		INSERT INTO offering_requirements (offering_id, requirement_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`
	for _, requirementID := range requirementIDs {
		if _, err := q.Exec(ctx, insert, offeringID, requirementID); err != nil {
			return storeFailure("insert offering requirement", err)
		}
	}
	return nil
}

// queryOfferings runs a built list query and scans the offering rows.
func (r *OfferingRepository) queryOfferings(ctx context.Context, listSelect squirrel.SelectBuilder) ([]models.Offering, error) {
	querySql, queryArgs, err := listSelect.ToSql()
	if err != nil {
		return nil, storeFailure("build list offerings query", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		return nil, storeFailure("query offerings", err)
	}
	defer rows.Close()

	offerings := make([]models.Offering, 0)
	for rows.Next() {
		offering, err := scanOffering(rows)
		if err != nil {
			return nil, storeFailure("scan offering row", err)
		}
		offerings = append(offerings, *offering)
	}
	if err := rows.Err(); err != nil {
		return nil, storeFailure("read offering rows", err)
	}
	return offerings, nil
}

// scanOffering scans one joined offering row, populating the course and
// instructor relations.
func scanOffering(row pgx.Row) (*models.Offering, error) {
	var offering models.Offering
	var course models.Course
	var instructor models.Instructor

	err := row.Scan(
		&offering.ID, &offering.CourseID, &offering.InstructorID, &offering.Section,
		&offering.Quarter, &offering.Year, &offering.AudienceSize, &offering.ResponseCount,
		&course.Code, &course.Title, &course.School,
		&instructor.Name,
	)
	if err != nil {
		return nil, err
	}

	course.ID = offering.CourseID
	instructor.ID = offering.InstructorID
	offering.Course = &course
	offering.Instructor = &instructor
	return &offering, nil
}

// loadRelations batch-loads requirement tags and survey histograms for the
// given offerings.
func (r *OfferingRepository) loadRelations(ctx context.Context, offerings []models.Offering) error {
	if len(offerings) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(offerings))
	index := make(map[int64]*models.Offering, len(offerings))
	for i := range offerings {
		ids = append(ids, offerings[i].ID)
		index[offerings[i].ID] = &offerings[i]
	}

	if err := r.loadRequirements(ctx, ids, index); err != nil {
		return err
	}
	return r.loadResponses(ctx, ids, index)
}

func (r *OfferingRepository) loadRequirements(ctx context.Context, ids []int64, index map[int64]*models.Offering) error {
	querySql, queryArgs, err := r.sb.Select("offering_id", "requirement_id").
		From("offering_requirements").
		Where(squirrel.Eq{"offering_id": ids}).
		OrderBy("offering_id ASC", "requirement_id ASC").
		ToSql()
	if err != nil {
		return storeFailure("build load requirements query", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		return storeFailure("query offering requirements", err)
	}
	defer rows.Close()

	for rows.Next() {
		var offeringID, requirementID int64
		if err := rows.Scan(&offeringID, &requirementID); err != nil {
			return storeFailure("scan offering requirement row", err)
		}
		if offering, ok := index[offeringID]; ok {
			offering.RequirementIDs = append(offering.RequirementIDs, requirementID)
		}
	}
	return rows.Err()
}

func (r *OfferingRepository) loadResponses(ctx context.Context, ids []int64, index map[int64]*models.Offering) error {
	querySql, queryArgs, err := r.sb.Select("offering_id", "question", "distribution").
		From("survey_responses").
		Where(squirrel.Eq{"offering_id": ids}).
		OrderBy("offering_id ASC", "id ASC").
		ToSql()
	if err != nil {
		return storeFailure("build load responses query", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		return storeFailure("query survey responses", err)
	}
	defer rows.Close()

	for rows.Next() {
		var offeringID int64
		var question models.QuestionKey
		var raw []byte
		if err := rows.Scan(&offeringID, &question, &raw); err != nil {
			return storeFailure("scan survey response row", err)
		}

		var distribution models.Distribution
		if err := json.Unmarshal(raw, &distribution); err != nil {
			return fmt.Errorf("failed to decode distribution for offering %d question %q: %w", offeringID, question, err)
		}
		if offering, ok := index[offeringID]; ok {
			offering.Responses = append(offering.Responses, models.SurveyResponse{
				Question:     question,
				Distribution: distribution,
			})
		}
	}
	return rows.Err()
}
