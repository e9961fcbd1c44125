package entity

import (
	"time"

	"github.com/google/uuid"
)

// Student carries the academic and demographic attributes attached to a
// user account. Created on the first health-record submission.
type Student struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProfileID       *uuid.UUID `gorm:"type:uuid;index" json:"profile_id,omitempty"`
	FullName        string     `gorm:"type:varchar(255);not null" json:"full_name"`
	RollNumber      string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"roll_number"`
	DateOfBirth     *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Sex             string     `gorm:"type:varchar(10);not null" json:"sex"`
	HomeAddress     string     `gorm:"type:text;not null" json:"home_address"`
	Contact         string     `gorm:"type:varchar(20);not null" json:"contact"`
	AcademicLevel   string     `gorm:"type:varchar(50);not null" json:"academic_level"`
	YearLevel       string     `gorm:"type:varchar(50)" json:"year_level,omitempty"`
	AcademicProgram string     `gorm:"type:varchar(100)" json:"academic_program,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Profile       *User           `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
	Guardians     []Guardian      `gorm:"many2many:student_guardians;" json:"guardians,omitempty"`
	HealthRecords []HealthRecord  `gorm:"foreignKey:StudentID" json:"health_records,omitempty"`
	Consultations []Consultation  `gorm:"foreignKey:StudentID" json:"consultations,omitempty"`
}

func (Student) TableName() string {
	return "students"
}

// Sex constants
const (
	SexMale   = "male"
	SexFemale = "female"
)

// Academic level constants
const (
	AcademicLevelJuniorHigh = "Junior High School"
	AcademicLevelSeniorHigh = "Senior High School"
	AcademicLevelCollege    = "College"
	AcademicLevelGraduate   = "Graduate School"
)
