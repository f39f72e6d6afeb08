package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appRepos "github.com/ctecscope/ctecscope/internal/app/repositories"
)

// defaultRequirements is the baseline distribution-area taxonomy. Ingest
// creates further tags on first sight; this list only guarantees the filter
// panel is never empty on a fresh database.
var defaultRequirements = []string{
	"Natural Sciences",
	"Empirical & Deductive Reasoning",
	"Social & Behavioral Sciences",
	"Historical Studies",
	"Ethical & Evaluative Thinking",
	"Literature & Fine Arts",
	"Interdisciplinary",
}

// CreateDefaultData seeds the requirement taxonomy if it is missing.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	requirementRepo := appRepos.NewRequirementRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default requirement taxonomy...")
	for _, name := range defaultRequirements {
		if _, err := requirementRepo.GetOrCreate(ctx, dbPool, name); err != nil {
			lgr.Error().Err(err).Str("requirement", name).Msg("Error seeding requirement")
			return err
		}
	}
	return nil
}
