package repositories

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ctecscope/ctecscope/internal/app/models"
)

// RequirementRepository handles requirement taxonomy database operations
type RequirementRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRequirementRepository creates a new RequirementRepository
func NewRequirementRepository(db *pgxpool.Pool) *RequirementRepository {
	return &RequirementRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetAll returns the full requirement taxonomy in insertion order
func (r *RequirementRepository) GetAll(ctx context.Context) ([]models.Requirement, error) {
	querySql, queryArgs, err := r.sb.Select("id", "name").
		From("requirements").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, storeFailure("build list requirements query", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		return nil, storeFailure("query requirements", err)
	}
	defer rows.Close()

	requirements := make([]models.Requirement, 0)
	for rows.Next() {
		var requirement models.Requirement
		if err := rows.Scan(&requirement.ID, &requirement.Name); err != nil {
			return nil, storeFailure("scan requirement row", err)
		}
		requirements = append(requirements, requirement)
	}
	if err := rows.Err(); err != nil {
		return nil, storeFailure("read requirement rows", err)
	}
	return requirements, nil
}

// GetOrCreate inserts the requirement tag if unseen and returns its id.
func (r *RequirementRepository) GetOrCreate(ctx context.Context, q Querier, name string) (int64, error) {
	const upsert = `
		INSERT INTO requirements (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`

	var id int64
	if err := q.QueryRow(ctx, upsert, strings.TrimSpace(name)).Scan(&id); err != nil {
		return 0, storeFailure("upsert requirement", err)
	}
	return id, nil
}
