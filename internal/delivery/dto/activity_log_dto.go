package dto

import (
	"time"

	"campus-clinic-api/internal/domain/entity"
)

// Response DTOs

type ActivityLogResponse struct {
	ID        int64       `json:"id"`
	UserName  string      `json:"user_name,omitempty"`
	Role      string      `json:"role"`
	Action    string      `json:"action"`
	Metadata  entity.JSON `json:"metadata,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

type ActivityLogListResponse struct {
	Logs  []ActivityLogResponse `json:"logs"`
	Total int64                 `json:"total"`
}
