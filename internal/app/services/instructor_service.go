package services

import (
	"context"
	"fmt"

	"github.com/ctecscope/ctecscope/internal/app/models/dto"
	"github.com/ctecscope/ctecscope/internal/app/ratings"
	"github.com/ctecscope/ctecscope/internal/app/search"
	"github.com/ctecscope/ctecscope/internal/pkg/apperrors"
	"github.com/ctecscope/ctecscope/internal/pkg/cache"
)

// InstructorService defines the interface for instructor profile operations
type InstructorService interface {
	// GetProfile returns the instructor with the rating roll-up across
	// every offering they taught.
	GetProfile(ctx context.Context, id int64) (*dto.InstructorProfileResponse, error)
}

// instructorServiceImpl implements the InstructorService interface
type instructorServiceImpl struct {
	store search.Store
	cache *cache.Client // nil when caching is disabled
}

// NewInstructorService creates a new instructor service instance
func NewInstructorService(store search.Store, cacheClient *cache.Client) InstructorService {
	return &instructorServiceImpl{
		store: store,
		cache: cacheClient,
	}
}

// instructorProfileCacheKey builds the cache key for one instructor's
// profile roll-up.
func instructorProfileCacheKey(id int64) string {
	return fmt.Sprintf("instructor:profile:%d", id)
}

// GetProfile implements InstructorService
func (s *instructorServiceImpl) GetProfile(ctx context.Context, id int64) (*dto.InstructorProfileResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: instructor id must be positive", apperrors.ErrValidationFailed)
	}

	if s.cache != nil {
		var cached dto.InstructorProfileResponse
		if s.cache.GetJSON(ctx, instructorProfileCacheKey(id), &cached) {
			return &cached, nil
		}
	}

	profile, err := s.store.GetInstructorProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	response := &dto.InstructorProfileResponse{
		InstructorResponse: dto.FromInstructor(&profile.Instructor),
		OfferingCount:      len(profile.Offerings),
		Summary:            dto.FromSummary(ratings.SummarizeInstructor(profile.Offerings)),
		Offerings:          make([]dto.OfferingResponse, 0, len(profile.Offerings)),
	}
	for i := range profile.Offerings {
		response.Offerings = append(response.Offerings, dto.FromOffering(&profile.Offerings[i]))
	}

	if s.cache != nil {
		s.cache.SetJSON(ctx, instructorProfileCacheKey(id), response)
	}
	return response, nil
}
