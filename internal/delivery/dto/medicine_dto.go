package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateMedicineRequest struct {
	Name        string          `json:"name" validate:"required,min=2"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required"`
	Stock       int             `json:"stock" validate:"gte=0"`
	ExpiryDate  string          `json:"expiry_date" validate:"omitempty"` // Format: YYYY-MM-DD
}

type UpdateMedicineRequest struct {
	Name        string          `json:"name" validate:"required,min=2"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required"`
	Stock       int             `json:"stock" validate:"gte=0"`
	ExpiryDate  string          `json:"expiry_date" validate:"omitempty"`
}

// Response DTOs

type MedicineResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Stock       int             `json:"stock"`
	ExpiryDate  string          `json:"expiry_date,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type MedicineListResponse struct {
	Medicines []MedicineResponse `json:"medicines"`
	Total     int64              `json:"total"`
}
