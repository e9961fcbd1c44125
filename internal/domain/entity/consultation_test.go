package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsultationLifecycle(t *testing.T) {
	tests := []struct {
		name    string
		from    ConsultationStatus
		to      ConsultationStatus
		allowed bool
	}{
		{"pending to approved", ConsultationStatusPending, ConsultationStatusApproved, true},
		{"pending to rejected", ConsultationStatusPending, ConsultationStatusRejected, true},
		{"pending to completed", ConsultationStatusPending, ConsultationStatusCompleted, false},
		{"approved to completed", ConsultationStatusApproved, ConsultationStatusCompleted, true},
		{"approved to rejected", ConsultationStatusApproved, ConsultationStatusRejected, false},
		{"rejected is terminal", ConsultationStatusRejected, ConsultationStatusApproved, false},
		{"completed is terminal", ConsultationStatusCompleted, ConsultationStatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Consultation{Status: tt.from}
			assert.Equal(t, tt.allowed, c.CanTransitionTo(tt.to))
		})
	}
}

func TestConsultationApprove(t *testing.T) {
	c := &Consultation{Status: ConsultationStatusPending}
	assert.True(t, c.Approve())
	assert.Equal(t, ConsultationStatusApproved, c.Status)

	// approving twice is not allowed
	assert.False(t, c.Approve())
}

func TestConsultationTerminalStates(t *testing.T) {
	c := &Consultation{Status: ConsultationStatusPending}
	assert.False(t, c.IsTerminal())

	assert.True(t, c.Reject())
	assert.True(t, c.IsTerminal())

	c = &Consultation{Status: ConsultationStatusApproved}
	assert.True(t, c.Complete())
	assert.True(t, c.IsTerminal())
}
