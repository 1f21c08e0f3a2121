package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func reservation(id, propertyID int64, status ReservationStatus, i DateInterval) *Reservation {
	return &Reservation{
		ID:         id,
		PropertyID: propertyID,
		Status:     status,
		Interval:   i,
	}
}

func TestHasConflict(t *testing.T) {
	const propertyID = int64(42)
	candidate := mustInterval(t, date(2026, 7, 10), date(2026, 7, 17))

	tests := []struct {
		name         string
		reservations []*Reservation
		want         bool
	}{
		{
			name:         "no reservations",
			reservations: nil,
			want:         false,
		},
		{
			name: "overlapping pending reservation",
			reservations: []*Reservation{
				reservation(1, propertyID, StatusPending, mustInterval(t, date(2026, 7, 15), date(2026, 7, 20))),
			},
			want: true,
		},
		{
			name: "overlapping confirmed reservation",
			reservations: []*Reservation{
				reservation(1, propertyID, StatusConfirmed, mustInterval(t, date(2026, 7, 5), date(2026, 7, 12))),
			},
			want: true,
		},
		{
			name: "overlapping completed reservation still blocks",
			reservations: []*Reservation{
				reservation(1, propertyID, StatusCompleted, mustInterval(t, date(2026, 7, 12), date(2026, 7, 14))),
			},
			want: true,
		},
		{
			name: "cancelled reservation frees the dates",
			reservations: []*Reservation{
				reservation(1, propertyID, StatusCancelled, mustInterval(t, date(2026, 7, 10), date(2026, 7, 17))),
			},
			want: false,
		},
		{
			name: "back-to-back check-out on candidate check-in",
			reservations: []*Reservation{
				reservation(1, propertyID, StatusConfirmed, mustInterval(t, date(2026, 7, 3), date(2026, 7, 10))),
			},
			want: false,
		},
		{
			name: "back-to-back check-in on candidate check-out",
			reservations: []*Reservation{
				reservation(1, propertyID, StatusConfirmed, mustInterval(t, date(2026, 7, 17), date(2026, 7, 24))),
			},
			want: false,
		},
		{
			name: "other property is ignored",
			reservations: []*Reservation{
				reservation(1, 99, StatusConfirmed, mustInterval(t, date(2026, 7, 10), date(2026, 7, 17))),
			},
			want: false,
		},
		{
			name: "one conflict among many is enough",
			reservations: []*Reservation{
				reservation(1, propertyID, StatusCancelled, mustInterval(t, date(2026, 7, 10), date(2026, 7, 17))),
				reservation(2, propertyID, StatusConfirmed, mustInterval(t, date(2026, 7, 1), date(2026, 7, 5))),
				reservation(3, propertyID, StatusPending, mustInterval(t, date(2026, 7, 16), date(2026, 7, 20))),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasConflict(propertyID, candidate, tt.reservations, nil))
		})
	}
}

func TestHasConflict_ExcludeReservation(t *testing.T) {
	const propertyID = int64(42)
	candidate := mustInterval(t, date(2026, 7, 10), date(2026, 7, 17))

	reservations := []*Reservation{
		reservation(7, propertyID, StatusConfirmed, mustInterval(t, date(2026, 7, 10), date(2026, 7, 17))),
	}

	excludeID := int64(7)
	assert.False(t, HasConflict(propertyID, candidate, reservations, &excludeID))

	otherID := int64(8)
	assert.True(t, HasConflict(propertyID, candidate, reservations, &otherID))
}
