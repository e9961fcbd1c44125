package entity

import (
	"time"

	"github.com/google/uuid"
)

// Guardian is a parent or guardian contact. Guardians are shared between
// students and looked up (or created) by email during record submission.
type Guardian struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Contact   string    `gorm:"type:varchar(20)" json:"contact,omitempty"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Students []Student `gorm:"many2many:student_guardians;" json:"students,omitempty"`
}

func (Guardian) TableName() string {
	return "guardians"
}

// GuardianRelationship tags the link between a student and a guardian
type GuardianRelationship string

const (
	RelationshipFather GuardianRelationship = "Father"
	RelationshipMother GuardianRelationship = "Mother"
)

// StudentGuardian is the join row between students and guardians.
type StudentGuardian struct {
	StudentID    uuid.UUID            `gorm:"type:uuid;primaryKey" json:"student_id"`
	GuardianID   uuid.UUID            `gorm:"type:uuid;primaryKey" json:"guardian_id"`
	Relationship GuardianRelationship `gorm:"type:varchar(20);not null" json:"relationship"`

	// Relationships
	Student  Student  `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Guardian Guardian `gorm:"foreignKey:GuardianID" json:"guardian,omitempty"`
}

func (StudentGuardian) TableName() string {
	return "student_guardians"
}
