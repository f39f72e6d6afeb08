package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ctecscope/ctecscope/internal/app/models/dto"
	"github.com/ctecscope/ctecscope/internal/app/search"
	"github.com/ctecscope/ctecscope/internal/pkg/apperrors"
	"github.com/ctecscope/ctecscope/internal/pkg/helpers"
)

// OfferingService defines the interface for filtered offering retrieval
type OfferingService interface {
	// List returns one page of offerings matching the selection, newest
	// term first. An empty selection short-circuits to an empty page.
	List(ctx context.Context, req dto.OfferingFilterRequest) (*dto.OfferingListResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.OfferingDetailResponse, error)
}

// offeringServiceImpl implements the OfferingService interface
type offeringServiceImpl struct {
	store search.Store
}

// NewOfferingService creates a new offering service instance
func NewOfferingService(store search.Store) OfferingService {
	return &offeringServiceImpl{store: store}
}

// List implements OfferingService
func (s *offeringServiceImpl) List(ctx context.Context, req dto.OfferingFilterRequest) (*dto.OfferingListResponse, error) {
	if req.Empty() {
		return &dto.OfferingListResponse{
			Offerings:  []dto.OfferingResponse{},
			Pagination: helpers.NewPaginationInfo(0, req.Page, req.PageSize),
		}, nil
	}

	courseIDs, err := parseCourseIDs(req.CourseIDs)
	if err != nil {
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(req.Page, req.PageSize)
	page, err := s.store.FindOfferings(ctx, search.OfferingFilter{
		CourseIDs:     courseIDs,
		InstructorIDs: req.InstructorIDs,
		Offset:        offset,
		Limit:         limit,
	})
	if err != nil {
		return nil, err
	}

	// Requirement refinement happens after pagination: the page keeps its
	// position in the unrefined sequence, only its visible rows shrink.
	visible := search.FilterByRequirements(page.Items, req.RequirementIDs)

	offerings := make([]dto.OfferingResponse, 0, len(visible))
	for i := range visible {
		offerings = append(offerings, dto.FromOffering(&visible[i]))
	}

	fullPage := len(page.Items) == limit
	fetched := offset + len(page.Items)

	return &dto.OfferingListResponse{
		Offerings:  offerings,
		Pagination: helpers.NewPaginationInfo(int64(page.TotalCount), req.Page, limit),
		HasMore:    fullPage && fetched < page.TotalCount,
	}, nil
}

// GetByID implements OfferingService
func (s *offeringServiceImpl) GetByID(ctx context.Context, id int64) (*dto.OfferingDetailResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: offering id must be positive", apperrors.ErrValidationFailed)
	}
	offering, err := s.store.GetOffering(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := dto.FromOfferingDetail(offering)
	return &detail, nil
}

// parseCourseIDs converts wire course ids to UUIDs, rejecting malformed ones.
func parseCourseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid course id %q", apperrors.ErrValidationFailed, value)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
