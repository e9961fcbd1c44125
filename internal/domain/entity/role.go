package entity

// Role represents a user role in the system
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Users []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants
const (
	RoleIDAdmin     = 1
	RoleIDStudent   = 2
	RoleIDDoctor    = 3
	RoleIDNurse     = 4
	RoleIDSecretary = 5
)

// RoleNames constants
const (
	RoleAdmin     = "Admin"
	RoleStudent   = "Student"
	RoleDoctor    = "Doctor"
	RoleNurse     = "Nurse"
	RoleSecretary = "Secretary"
)

// AllRoleIDs lists every enumerated role. Kept in one place so the
// routing table and dashboard breakdowns stay exhaustive.
var AllRoleIDs = []int{RoleIDAdmin, RoleIDStudent, RoleIDDoctor, RoleIDNurse, RoleIDSecretary}

// roleNamesByID maps role IDs to their display names.
var roleNamesByID = map[int]string{
	RoleIDAdmin:     RoleAdmin,
	RoleIDStudent:   RoleStudent,
	RoleIDDoctor:    RoleDoctor,
	RoleIDNurse:     RoleNurse,
	RoleIDSecretary: RoleSecretary,
}

// RoleNameByID returns the display name for a role ID, or "Unknown"
// for values outside the enumerated set.
func RoleNameByID(roleID int) string {
	if name, ok := roleNamesByID[roleID]; ok {
		return name
	}
	return "Unknown"
}

// RoleIDByName returns the role ID for a display name. The second
// return value is false for unrecognized names.
func RoleIDByName(name string) (int, bool) {
	for id, n := range roleNamesByID {
		if n == name {
			return id, true
		}
	}
	return 0, false
}

// ClinicStaffRoleIDs are the roles counted as clinic staff on the
// admin dashboard.
var ClinicStaffRoleIDs = []int{RoleIDDoctor, RoleIDNurse, RoleIDSecretary}
