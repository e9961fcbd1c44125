package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateConsultationRequest struct {
	PreferredDate string `json:"preferred_date" validate:"required"` // Format: YYYY-MM-DD
	Reason        string `json:"reason" validate:"required,min=3"`
	Notes         string `json:"notes" validate:"omitempty"`
}

type UpdateConsultationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Approved Rejected Completed"`
}

// Response DTOs

type ConsultationResponse struct {
	ID            uuid.UUID        `json:"id"`
	Student       *StudentResponse `json:"student,omitempty"`
	StudentID     uuid.UUID        `json:"student_id"`
	PreferredDate string           `json:"preferred_date"`
	Reason        string           `json:"reason"`
	Notes         string           `json:"notes,omitempty"`
	Status        string           `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type ConsultationListResponse struct {
	Consultations []ConsultationResponse `json:"consultations"`
	Total         int64                  `json:"total"`
}
