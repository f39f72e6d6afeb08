package services

import (
	"context"

	"github.com/ctecscope/ctecscope/internal/app/models/dto"
	"github.com/ctecscope/ctecscope/internal/app/repositories"
)

// RequirementService defines the interface for requirement taxonomy access
type RequirementService interface {
	List(ctx context.Context) (*dto.RequirementListResponse, error)
}

// requirementServiceImpl implements the RequirementService interface
type requirementServiceImpl struct {
	requirementRepo *repositories.RequirementRepository
}

// NewRequirementService creates a new requirement service instance
func NewRequirementService(requirementRepo *repositories.RequirementRepository) RequirementService {
	return &requirementServiceImpl{requirementRepo: requirementRepo}
}

// List implements RequirementService
func (s *requirementServiceImpl) List(ctx context.Context) (*dto.RequirementListResponse, error) {
	requirements, err := s.requirementRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	response := dto.FromRequirements(requirements)
	return &response, nil
}
