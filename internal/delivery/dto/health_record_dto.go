package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// GuardianInput is one parent/guardian block of the health record form.
type GuardianInput struct {
	FullName string `json:"full_name" validate:"required,min=2"`
	Contact  string `json:"contact" validate:"omitempty,min=7,max=20"`
	Email    string `json:"email" validate:"required,email"`
}

// SubmitHealthRecordRequest carries the whole multi-step submission:
// student details, guardians and the health record proper.
type SubmitHealthRecordRequest struct {
	StudentName     string   `json:"student_name" validate:"required,min=2"`
	RollNumber      string   `json:"roll_number" validate:"required"`
	DateOfBirth     string   `json:"date_of_birth" validate:"omitempty"` // Format: YYYY-MM-DD
	Sex             string   `json:"sex" validate:"required,oneof=male female"`
	HomeAddress     string   `json:"home_address" validate:"required"`
	StudentContact  string   `json:"student_contact" validate:"required"`
	AcademicLevel   string   `json:"academic_level" validate:"required"`
	YearLevel       string   `json:"year_level" validate:"omitempty"`
	AcademicProgram string   `json:"academic_program" validate:"omitempty"`

	Father GuardianInput `json:"father" validate:"required"`
	Mother GuardianInput `json:"mother" validate:"required"`

	Allergies          string   `json:"allergies" validate:"omitempty"`
	Notes              string   `json:"notes" validate:"omitempty"`
	PastMedicalHistory []string `json:"past_medical_history" validate:"omitempty,dive,min=1"`
}

type UpdateHealthRecordRequest struct {
	Allergies string `json:"allergies" validate:"omitempty"`
	Notes     string `json:"notes" validate:"omitempty"`
}

// Response DTOs

type MedicalHistoryResponse struct {
	Condition    string `json:"condition"`
	HadCondition bool   `json:"had_condition"`
}

type StudentResponse struct {
	ID              uuid.UUID `json:"id"`
	FullName        string    `json:"full_name"`
	RollNumber      string    `json:"roll_number"`
	DateOfBirth     string    `json:"date_of_birth,omitempty"`
	Sex             string    `json:"sex"`
	HomeAddress     string    `json:"home_address"`
	Contact         string    `json:"contact"`
	AcademicLevel   string    `json:"academic_level"`
	YearLevel       string    `json:"year_level,omitempty"`
	AcademicProgram string    `json:"academic_program,omitempty"`
}

type HealthRecordResponse struct {
	ID        uuid.UUID                `json:"id"`
	Student   *StudentResponse         `json:"student,omitempty"`
	Allergies string                   `json:"allergies,omitempty"`
	Notes     string                   `json:"notes,omitempty"`
	Status    string                   `json:"status"`
	Histories []MedicalHistoryResponse `json:"histories,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

type HealthRecordListResponse struct {
	Records []HealthRecordResponse `json:"records"`
	Total   int64                  `json:"total"`
}
