package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrStayTooShort is returned when the stay is shorter than the property minimum
	ErrStayTooShort = errors.New("domain: stay is shorter than the minimum stay")

	// ErrStayTooLong is returned when the stay exceeds the property maximum
	ErrStayTooLong = errors.New("domain: stay is longer than the maximum stay")

	// ErrOutsideAvailabilityWindow is returned when the stay is not fully inside the publishable window
	ErrOutsideAvailabilityWindow = errors.New("domain: stay is outside the availability window")

	// ErrTooManyGuests is returned when the party exceeds the property capacity
	ErrTooManyGuests = errors.New("domain: party exceeds the property capacity")
)

// PropertyAvailability describes when a property accepts stays and how long
// a stay may be. AvailableTo is exclusive, matching the half-open stay model:
// the last possible check-out date equals AvailableTo.
type PropertyAvailability struct {
	PropertyID    int64
	AvailableFrom time.Time
	AvailableTo   time.Time
	MinimumStay   int  // nights, >= 1
	MaximumStay   *int // nights, nil = unlimited
	MaxGuests     int  // 0 = capacity unknown, not enforced
}

// ValidateGuests checks the party size against the property capacity.
func (a PropertyAvailability) ValidateGuests(guests int) error {
	if a.MaxGuests > 0 && guests > a.MaxGuests {
		return ErrTooManyGuests
	}
	return nil
}

// Window returns the availability window as a date interval.
func (a PropertyAvailability) Window() DateInterval {
	return DateInterval{CheckIn: a.AvailableFrom, CheckOut: a.AvailableTo}
}

// ValidateStay checks a candidate stay against the availability window and
// stay-length limits. Checks run in a fixed order and the first failure wins,
// so callers always get the most specific reason:
//  1. minimum stay
//  2. maximum stay
//  3. window containment
func (a PropertyAvailability) ValidateStay(candidate DateInterval) error {
	nights, err := candidate.Nights()
	if err != nil {
		return err
	}

	if nights < a.MinimumStay {
		return ErrStayTooShort
	}

	if a.MaximumStay != nil && nights > *a.MaximumStay {
		return ErrStayTooLong
	}

	if !a.Window().Contains(candidate) {
		return ErrOutsideAvailabilityWindow
	}

	return nil
}

// PropertyRates carries the money inputs of a quote. All amounts are
// currency decimals with two fraction digits.
type PropertyRates struct {
	PropertyID      int64
	NightlyRate     decimal.Decimal
	CleaningFee     decimal.Decimal
	SecurityDeposit decimal.Decimal
}
