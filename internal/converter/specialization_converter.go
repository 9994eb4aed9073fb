package converter

import (
	"clinic-accounts/internal/delivery/dto"
	"clinic-accounts/internal/domain/entity"

	"github.com/samber/lo"
)

// SpecializationToResponse converts a Specialization entity to SpecializationResponse DTO
func SpecializationToResponse(s *entity.Specialization) *dto.SpecializationResponse {
	if s == nil {
		return nil
	}

	return &dto.SpecializationResponse{
		ID:        s.ID,
		Name:      s.Name,
		Slug:      s.Slug,
		CreatedAt: s.CreatedAt,
	}
}

func SpecializationsToResponses(specializations []entity.Specialization) []dto.SpecializationResponse {
	return lo.Map(specializations, func(s entity.Specialization, _ int) dto.SpecializationResponse {
		return *SpecializationToResponse(&s)
	})
}
