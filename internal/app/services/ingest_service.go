package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/ctecscope/ctecscope/internal/app/models"
	"github.com/ctecscope/ctecscope/internal/app/models/dto"
	"github.com/ctecscope/ctecscope/internal/app/repositories"
	"github.com/ctecscope/ctecscope/internal/db"
	"github.com/ctecscope/ctecscope/internal/pkg/apperrors"
	"github.com/ctecscope/ctecscope/internal/pkg/cache"
	"github.com/ctecscope/ctecscope/internal/pkg/logger"
)

// IngestService defines the interface for loading scraped CTEC reports
type IngestService interface {
	// Ingest stores one report transactionally, creating the course,
	// instructor and requirement tags on first sight. Re-ingesting the
	// same offering replaces its stored histograms.
	Ingest(ctx context.Context, req dto.IngestOfferingRequest) (*dto.IngestOfferingResponse, error)
}

// ingestServiceImpl implements the IngestService interface
type ingestServiceImpl struct {
	database *db.PostgresDB
	repos    *repositories.Repositories
	cache    *cache.Client // nil when caching is disabled
}

// NewIngestService creates a new ingest service instance
func NewIngestService(database *db.PostgresDB, repos *repositories.Repositories, cacheClient *cache.Client) IngestService {
	return &ingestServiceImpl{
		database: database,
		repos:    repos,
		cache:    cacheClient,
	}
}

// questionOrder is the order CTEC reports print their questions in. Storage
// keeps it so histograms come back in report order.
var questionOrder = map[models.QuestionKey]int{
	models.QuestionInstruction:   1,
	models.QuestionCourse:        2,
	models.QuestionLearned:       3,
	models.QuestionChallenge:     4,
	models.QuestionInterest:      5,
	models.QuestionPriorInterest: 6,
	models.QuestionTimeSurvey:    7,
	models.QuestionClassYear:     8,
	models.QuestionRequirement:   9,
	models.QuestionSchool:        10,
}

// Ingest implements IngestService
func (s *ingestServiceImpl) Ingest(ctx context.Context, req dto.IngestOfferingRequest) (*dto.IngestOfferingResponse, error) {
	if err := validateIngestRequest(&req); err != nil {
		return nil, err
	}

	offering := models.Offering{
		Section:       strings.TrimSpace(req.Section),
		Quarter:       req.Quarter,
		Year:          req.Year,
		AudienceSize:  req.AudienceSize,
		ResponseCount: req.ResponseCount,
	}
	responses := orderedResponses(req.Responses)

	var created bool
	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		courseID, err := s.repos.CourseRepository.GetOrCreate(ctx, tx, req.CourseCode, req.CourseTitle, req.School)
		if err != nil {
			return err
		}
		offering.CourseID = courseID

		instructorID, err := s.repos.InstructorRepository.GetOrCreate(ctx, tx, req.InstructorName)
		if err != nil {
			return err
		}
		offering.InstructorID = instructorID

		requirementIDs := make([]int64, 0, len(req.Requirements))
		for _, name := range req.Requirements {
			requirementID, err := s.repos.RequirementRepository.GetOrCreate(ctx, tx, name)
			if err != nil {
				return err
			}
			requirementIDs = append(requirementIDs, requirementID)
		}

		created, err = s.repos.OfferingRepository.Upsert(ctx, tx, &offering)
		if err != nil {
			return err
		}
		if err := s.repos.OfferingRepository.SetRequirements(ctx, tx, offering.ID, requirementIDs); err != nil {
			return err
		}
		return s.repos.OfferingRepository.ReplaceResponses(ctx, tx, offering.ID, responses)
	})
	if err != nil {
		return nil, err
	}

	// The stored roll-up for this instructor just changed.
	if s.cache != nil {
		s.cache.Delete(ctx, instructorProfileCacheKey(offering.InstructorID))
	}

	logger.Info().
		Int64("offeringId", offering.ID).
		Str("course", req.CourseCode).
		Str("instructor", req.InstructorName).
		Bool("created", created).
		Msg("Report ingested")

	return &dto.IngestOfferingResponse{OfferingID: offering.ID, Created: created}, nil
}

// validateIngestRequest checks the fields gin bindings cannot express.
func validateIngestRequest(req *dto.IngestOfferingRequest) error {
	if !req.Quarter.IsValid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidQuarter, req.Quarter)
	}
	if strings.TrimSpace(req.CourseCode) == "" {
		return fmt.Errorf("%w: course code cannot be blank", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.InstructorName) == "" {
		return fmt.Errorf("%w: instructor name cannot be blank", apperrors.ErrValidationFailed)
	}
	for question, distribution := range req.Responses {
		for _, bin := range distribution {
			if bin.Count < 0 {
				return fmt.Errorf("%w: negative count for %q bucket %q", apperrors.ErrValidationFailed, question, bin.Label)
			}
		}
	}
	return nil
}

// orderedResponses flattens the response map into report order, unknown
// questions last in name order, so storage order is deterministic.
func orderedResponses(responses map[models.QuestionKey]models.Distribution) []models.SurveyResponse {
	ordered := make([]models.SurveyResponse, 0, len(responses))
	for question, distribution := range responses {
		ordered = append(ordered, models.SurveyResponse{
			Question:     question,
			Distribution: distribution,
		})
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, iKnown := questionOrder[ordered[i].Question]
		rj, jKnown := questionOrder[ordered[j].Question]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return ordered[i].Question < ordered[j].Question
		}
	})
	return ordered
}
