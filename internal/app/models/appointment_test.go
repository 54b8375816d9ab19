package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatusCanTransitionTo(t *testing.T) {
	testCases := []struct {
		name     string
		from     AppointmentStatus
		to       AppointmentStatus
		expected bool
	}{
		{"pending to scheduled", AppointmentPending, AppointmentScheduled, true},
		{"pending to completed", AppointmentPending, AppointmentCompleted, true},
		{"pending to canceled", AppointmentPending, AppointmentCanceled, true},
		{"scheduled to completed", AppointmentScheduled, AppointmentCompleted, true},
		{"scheduled to canceled", AppointmentScheduled, AppointmentCanceled, true},
		{"completed is terminal", AppointmentCompleted, AppointmentCanceled, false},
		{"canceled is terminal", AppointmentCanceled, AppointmentCompleted, false},
		{"scheduled back to pending", AppointmentScheduled, AppointmentPending, false},
		{"completed back to scheduled", AppointmentCompleted, AppointmentScheduled, false},
		{"unknown status has no transitions", AppointmentStatus("NO_SHOW"), AppointmentCompleted, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestAppointmentStatusIsTerminal(t *testing.T) {
	assert.False(t, AppointmentPending.IsTerminal())
	assert.False(t, AppointmentScheduled.IsTerminal())
	assert.True(t, AppointmentCompleted.IsTerminal())
	assert.True(t, AppointmentCanceled.IsTerminal())
}

func TestPaymentStatusCanTransitionTo(t *testing.T) {
	assert.True(t, PaymentUnpaid.CanTransitionTo(PaymentPaid))
	assert.False(t, PaymentPaid.CanTransitionTo(PaymentUnpaid))
	assert.False(t, PaymentPaid.CanTransitionTo(PaymentPaid))
	assert.False(t, PaymentUnpaid.CanTransitionTo(PaymentUnpaid))
}
