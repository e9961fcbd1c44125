package converter

import (
	"campus-clinic-api/internal/delivery/dto"
	"campus-clinic-api/internal/domain/entity"
)

// ActivityLogToResponse converts an ActivityLog entity to its DTO
func ActivityLogToResponse(log *entity.ActivityLog) *dto.ActivityLogResponse {
	if log == nil {
		return nil
	}

	response := &dto.ActivityLogResponse{
		ID:        log.ID,
		Role:      log.Role,
		Action:    log.Action,
		Metadata:  log.Metadata,
		CreatedAt: log.CreatedAt,
	}
	if log.User != nil {
		response.UserName = log.User.FullName
	}
	return response
}

// ActivityLogsToResponses converts a slice of ActivityLog entities
func ActivityLogsToResponses(logs []entity.ActivityLog) []dto.ActivityLogResponse {
	responses := make([]dto.ActivityLogResponse, len(logs))
	for i, log := range logs {
		resp := ActivityLogToResponse(&log)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
