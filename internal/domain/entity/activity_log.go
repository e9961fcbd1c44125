package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ActivityLog is an append-only audit trail entry. Rows are written by
// authentication and mutation actions and are never updated or deleted.
type ActivityLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Role      string     `gorm:"type:varchar(50);index" json:"role"`
	Action    string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

// Common activity actions
const (
	ActivityActionUserLogin            = "user.login"
	ActivityActionUserLogout           = "user.logout"
	ActivityActionUserRegister         = "user.register"
	ActivityActionPasswordResetRequest = "user.password_reset_request"
	ActivityActionPasswordResetConfirm = "user.password_reset_confirm"
	ActivityActionRoleChange           = "user.role_change"
	ActivityActionUserToggleActive     = "user.toggle_active"
	ActivityActionRecordSubmit         = "health_record.submit"
	ActivityActionRecordUpdate         = "health_record.update"
	ActivityActionRecordReview         = "health_record.review"
	ActivityActionConsultationCreate   = "consultation.create"
	ActivityActionConsultationApprove  = "consultation.approve"
	ActivityActionConsultationReject   = "consultation.reject"
	ActivityActionConsultationComplete = "consultation.complete"
	ActivityActionMedicineCreate       = "medicine.create"
	ActivityActionMedicineUpdate       = "medicine.update"
	ActivityActionMedicineDelete       = "medicine.delete"
)

// LogFilter is a domain-level filter for querying activity logs.
// Used by the repository layer to avoid coupling with delivery DTOs.
type LogFilter struct {
	Search string // substring match across action, role and user name
	Role   string // exact role name
}
