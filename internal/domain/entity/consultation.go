package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConsultationStatus represents the status of a consultation request
type ConsultationStatus string

const (
	ConsultationStatusPending   ConsultationStatus = "Pending"
	ConsultationStatusApproved  ConsultationStatus = "Approved"
	ConsultationStatusRejected  ConsultationStatus = "Rejected"
	ConsultationStatusCompleted ConsultationStatus = "Completed"
)

// Consultation represents a student's request for a medical consultation.
// Lifecycle: Pending -> Approved/Rejected, Approved -> Completed.
// Rejected and Completed are terminal.
type Consultation struct {
	ID            uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StudentID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"student_id"`
	PreferredDate time.Time          `gorm:"type:date;not null" json:"preferred_date"`
	Reason        string             `gorm:"type:text;not null" json:"reason"`
	Notes         string             `gorm:"type:text" json:"notes,omitempty"`
	Status        ConsultationStatus `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	CreatedAt     time.Time          `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Student Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (Consultation) TableName() string {
	return "consultations"
}

// IsPending checks if the consultation is awaiting a decision
func (c *Consultation) IsPending() bool {
	return c.Status == ConsultationStatusPending
}

// IsTerminal checks if the consultation reached a final state
func (c *Consultation) IsTerminal() bool {
	return c.Status == ConsultationStatusRejected || c.Status == ConsultationStatusCompleted
}

// CanTransitionTo reports whether moving to the target status is a legal
// lifecycle step.
func (c *Consultation) CanTransitionTo(target ConsultationStatus) bool {
	switch c.Status {
	case ConsultationStatusPending:
		return target == ConsultationStatusApproved || target == ConsultationStatusRejected
	case ConsultationStatusApproved:
		return target == ConsultationStatusCompleted
	default:
		return false
	}
}

// Approve moves a pending consultation to approved
func (c *Consultation) Approve() bool {
	if !c.CanTransitionTo(ConsultationStatusApproved) {
		return false
	}
	c.Status = ConsultationStatusApproved
	return true
}

// Reject moves a pending consultation to rejected
func (c *Consultation) Reject() bool {
	if !c.CanTransitionTo(ConsultationStatusRejected) {
		return false
	}
	c.Status = ConsultationStatusRejected
	return true
}

// Complete moves an approved consultation to completed
func (c *Consultation) Complete() bool {
	if !c.CanTransitionTo(ConsultationStatusCompleted) {
		return false
	}
	c.Status = ConsultationStatusCompleted
	return true
}
