package domain

// HasConflict reports whether a candidate stay overlaps any reservation
// that blocks dates on the given property.
//
// Reservations for other properties and cancelled reservations are ignored.
// excludeReservationID allows rebooking flows to skip the reservation being
// modified. Any single overlap is a conflict.
func HasConflict(
	propertyID int64,
	candidate DateInterval,
	reservations []*Reservation,
	excludeReservationID *int64,
) bool {
	for _, r := range reservations {
		if r.PropertyID != propertyID {
			continue
		}
		if !r.BlocksDates() {
			continue
		}
		if excludeReservationID != nil && r.ID == *excludeReservationID {
			continue
		}
		if candidate.Overlaps(r.Interval) {
			return true
		}
	}
	return false
}
