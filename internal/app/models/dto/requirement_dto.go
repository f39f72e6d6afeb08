package dto

import "github.com/ctecscope/ctecscope/internal/app/models"

// RequirementResponse represents a degree/distribution requirement tag
type RequirementResponse struct {
	ID   int64  `json:"id" example:"3"`
	Name string `json:"name" example:"Natural Sciences"`
}

// RequirementListResponse represents the full requirement taxonomy
type RequirementListResponse struct {
	Requirements []RequirementResponse `json:"requirements"`
}

// FromRequirements converts requirement models to the wire list.
func FromRequirements(requirements []models.Requirement) RequirementListResponse {
	response := RequirementListResponse{
		Requirements: make([]RequirementResponse, 0, len(requirements)),
	}
	for _, requirement := range requirements {
		response.Requirements = append(response.Requirements, RequirementResponse{
			ID:   requirement.ID,
			Name: requirement.Name,
		})
	}
	return response
}
