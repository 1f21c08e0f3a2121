package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidInterval is returned when check-out is not strictly after check-in
	ErrInvalidInterval = errors.New("domain: invalid date interval")
)

// DateInterval represents a half-open stay interval [CheckIn, CheckOut).
// The check-out day is not occupied, so back-to-back bookings
// (a.CheckOut == b.CheckIn) never overlap.
type DateInterval struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewDateInterval builds a normalized interval from calendar dates.
// Time-of-day components are truncated to midnight UTC.
func NewDateInterval(checkIn, checkOut time.Time) (DateInterval, error) {
	i := DateInterval{
		CheckIn:  truncateToDate(checkIn),
		CheckOut: truncateToDate(checkOut),
	}
	if err := i.Validate(); err != nil {
		return DateInterval{}, err
	}
	return i, nil
}

// Validate checks the core invariant: CheckIn < CheckOut.
func (i DateInterval) Validate() error {
	if !i.CheckIn.Before(i.CheckOut) {
		return ErrInvalidInterval
	}
	return nil
}

// Nights returns the number of nights covered by the interval.
func (i DateInterval) Nights() (int, error) {
	if err := i.Validate(); err != nil {
		return 0, err
	}
	return int(i.CheckOut.Sub(i.CheckIn).Hours() / 24), nil
}

// Overlaps reports whether two half-open intervals share at least one night.
// Touching boundaries do not overlap.
func (i DateInterval) Overlaps(other DateInterval) bool {
	return i.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(i.CheckOut)
}

// Contains reports whether inner lies entirely within i.
func (i DateInterval) Contains(inner DateInterval) bool {
	return !inner.CheckIn.Before(i.CheckIn) && !i.CheckOut.Before(inner.CheckOut)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
