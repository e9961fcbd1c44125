package dto

// Request DTOs

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=Admin Student Doctor Nurse Secretary"`
}

type ToggleUserActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// Response DTOs

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
}
