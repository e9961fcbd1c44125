package converter

import (
	"campus-clinic-api/internal/delivery/dto"
	"campus-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
)

// ConsultationToResponse converts a Consultation entity to its DTO
func ConsultationToResponse(consultation *entity.Consultation) *dto.ConsultationResponse {
	if consultation == nil {
		return nil
	}

	response := &dto.ConsultationResponse{
		ID:            consultation.ID,
		StudentID:     consultation.StudentID,
		PreferredDate: consultation.PreferredDate.Format("2006-01-02"),
		Reason:        consultation.Reason,
		Notes:         consultation.Notes,
		Status:        string(consultation.Status),
		CreatedAt:     consultation.CreatedAt,
		UpdatedAt:     consultation.UpdatedAt,
	}

	if consultation.Student.ID != uuid.Nil {
		response.Student = StudentToResponse(&consultation.Student)
	}

	return response
}

// ConsultationsToResponses converts a slice of Consultation entities
func ConsultationsToResponses(consultations []entity.Consultation) []dto.ConsultationResponse {
	responses := make([]dto.ConsultationResponse, len(consultations))
	for i, consultation := range consultations {
		resp := ConsultationToResponse(&consultation)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
