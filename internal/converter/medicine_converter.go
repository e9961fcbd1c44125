package converter

import (
	"campus-clinic-api/internal/delivery/dto"
	"campus-clinic-api/internal/domain/entity"
)

// MedicineToResponse converts a Medicine entity to its DTO
func MedicineToResponse(medicine *entity.Medicine) *dto.MedicineResponse {
	if medicine == nil {
		return nil
	}

	response := &dto.MedicineResponse{
		ID:          medicine.ID,
		Name:        medicine.Name,
		Description: medicine.Description,
		UnitPrice:   medicine.UnitPrice,
		Stock:       medicine.Stock,
		CreatedAt:   medicine.CreatedAt,
		UpdatedAt:   medicine.UpdatedAt,
	}
	if medicine.ExpiryDate != nil {
		response.ExpiryDate = medicine.ExpiryDate.Format("2006-01-02")
	}
	return response
}

// MedicinesToResponses converts a slice of Medicine entities
func MedicinesToResponses(medicines []entity.Medicine) []dto.MedicineResponse {
	responses := make([]dto.MedicineResponse, len(medicines))
	for i, medicine := range medicines {
		resp := MedicineToResponse(&medicine)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
