package entity

import (
	"time"

	"github.com/google/uuid"
)

// HealthRecordStatus represents the review status of a submission
type HealthRecordStatus string

const (
	HealthRecordStatusPending  HealthRecordStatus = "Pending"
	HealthRecordStatusReviewed HealthRecordStatus = "Reviewed"
)

// HealthRecord is a point-in-time health submission for a student.
type HealthRecord struct {
	ID          uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StudentID   uuid.UUID          `gorm:"type:uuid;not null;index" json:"student_id"`
	Allergies   string             `gorm:"type:text" json:"allergies,omitempty"`
	Notes       string             `gorm:"type:text" json:"notes,omitempty"`
	Status      HealthRecordStatus `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	SubmittedBy *uuid.UUID         `gorm:"type:uuid;index" json:"submitted_by,omitempty"`
	CreatedAt   time.Time          `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Student   Student          `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Submitter *User            `gorm:"foreignKey:SubmittedBy" json:"submitter,omitempty"`
	Histories []MedicalHistory `gorm:"foreignKey:HealthRecordID" json:"histories,omitempty"`
}

func (HealthRecord) TableName() string {
	return "health_records"
}

// IsPending checks if the record is awaiting review
func (r *HealthRecord) IsPending() bool {
	return r.Status == HealthRecordStatusPending
}

// Review marks the record as reviewed
func (r *HealthRecord) Review() {
	r.Status = HealthRecordStatusReviewed
}

// MedicalHistory is one past-medical-history answer attached to a record.
type MedicalHistory struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	HealthRecordID uuid.UUID `gorm:"type:uuid;not null;index" json:"health_record_id"`
	Condition      string    `gorm:"type:varchar(100);not null" json:"condition"`
	HadCondition   bool      `gorm:"not null;default:false" json:"had_condition"`

	// Relationships
	HealthRecord HealthRecord `gorm:"foreignKey:HealthRecordID" json:"health_record,omitempty"`
}

func (MedicalHistory) TableName() string {
	return "medical_histories"
}

// MedicalHistoryConditions is the fixed catalogue offered on the
// health record form.
var MedicalHistoryConditions = []string{
	"Measles",
	"Mumps",
	"German Measles",
	"Chicken Pox",
	"Hepatitis",
	"Allergies",
	"Bronchial Asthma",
	"Heart Disorder",
	"Kidney Disorder",
	"Convulsions",
	"Epilepsy",
	"Psychoneurosis",
	"Bleeding Tendency",
	"Others",
}

// IsKnownCondition reports whether the condition is part of the catalogue.
func IsKnownCondition(condition string) bool {
	for _, c := range MedicalHistoryConditions {
		if c == condition {
			return true
		}
	}
	return false
}
