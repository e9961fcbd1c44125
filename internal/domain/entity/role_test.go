package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleNameByID(t *testing.T) {
	assert.Equal(t, RoleAdmin, RoleNameByID(RoleIDAdmin))
	assert.Equal(t, RoleStudent, RoleNameByID(RoleIDStudent))
	assert.Equal(t, RoleDoctor, RoleNameByID(RoleIDDoctor))
	assert.Equal(t, RoleNurse, RoleNameByID(RoleIDNurse))
	assert.Equal(t, RoleSecretary, RoleNameByID(RoleIDSecretary))
	assert.Equal(t, "Unknown", RoleNameByID(99))
}

func TestRoleIDByName(t *testing.T) {
	for _, id := range AllRoleIDs {
		got, ok := RoleIDByName(RoleNameByID(id))
		assert.True(t, ok)
		assert.Equal(t, id, got)
	}

	_, ok := RoleIDByName("Janitor")
	assert.False(t, ok)
}

func TestMedicalHistoryCatalogue(t *testing.T) {
	assert.True(t, IsKnownCondition("Measles"))
	assert.True(t, IsKnownCondition("Others"))
	assert.False(t, IsKnownCondition("Scurvy"))
}
