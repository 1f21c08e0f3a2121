package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservation_StatusTransitions(t *testing.T) {
	tests := []struct {
		status     ReservationStatus
		blocks     bool
		canCancel  bool
		canConfirm bool
	}{
		{StatusPending, true, true, true},
		{StatusConfirmed, true, true, false},
		{StatusCancelled, false, false, false},
		{StatusCompleted, true, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			r := &Reservation{Status: tt.status}
			assert.Equal(t, tt.blocks, r.BlocksDates())
			assert.Equal(t, tt.canCancel, r.CanBeCancelled())
			assert.Equal(t, tt.canConfirm, r.CanBeConfirmed())
		})
	}
}
