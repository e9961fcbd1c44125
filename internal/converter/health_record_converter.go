package converter

import (
	"campus-clinic-api/internal/delivery/dto"
	"campus-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
)

// StudentToResponse converts a Student entity to StudentResponse DTO
func StudentToResponse(student *entity.Student) *dto.StudentResponse {
	if student == nil {
		return nil
	}

	response := &dto.StudentResponse{
		ID:              student.ID,
		FullName:        student.FullName,
		RollNumber:      student.RollNumber,
		Sex:             student.Sex,
		HomeAddress:     student.HomeAddress,
		Contact:         student.Contact,
		AcademicLevel:   student.AcademicLevel,
		YearLevel:       student.YearLevel,
		AcademicProgram: student.AcademicProgram,
	}
	if student.DateOfBirth != nil {
		response.DateOfBirth = student.DateOfBirth.Format("2006-01-02")
	}
	return response
}

// HealthRecordToResponse converts a HealthRecord entity to its DTO
func HealthRecordToResponse(record *entity.HealthRecord) *dto.HealthRecordResponse {
	if record == nil {
		return nil
	}

	response := &dto.HealthRecordResponse{
		ID:        record.ID,
		Allergies: record.Allergies,
		Notes:     record.Notes,
		Status:    string(record.Status),
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}

	if record.Student.ID != uuid.Nil {
		response.Student = StudentToResponse(&record.Student)
	}

	if len(record.Histories) > 0 {
		response.Histories = make([]dto.MedicalHistoryResponse, len(record.Histories))
		for i, h := range record.Histories {
			response.Histories[i] = dto.MedicalHistoryResponse{
				Condition:    h.Condition,
				HadCondition: h.HadCondition,
			}
		}
	}

	return response
}

// HealthRecordsToResponses converts a slice of HealthRecord entities
func HealthRecordsToResponses(records []entity.HealthRecord) []dto.HealthRecordResponse {
	responses := make([]dto.HealthRecordResponse, len(records))
	for i, record := range records {
		resp := HealthRecordToResponse(&record)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
