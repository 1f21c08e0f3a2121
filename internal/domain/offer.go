package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NormalizeOfferCode canonicalizes an offer code. Codes are matched
// case-insensitively and stored upper case.
func NormalizeOfferCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// OfferType represents the kind of discount an offer grants
type OfferType string

const (
	OfferPercentage OfferType = "percentage"
	OfferFixed      OfferType = "fixed"
)

// OfferRejectReason explains why an offer did not apply to a quote.
// An inapplicable offer never fails a booking, it is only reported.
type OfferRejectReason string

const (
	OfferRejectNone          OfferRejectReason = ""
	OfferRejectNotFound      OfferRejectReason = "not_found"
	OfferRejectInactive      OfferRejectReason = "inactive"
	OfferRejectExpired       OfferRejectReason = "expired"
	OfferRejectExhausted     OfferRejectReason = "exhausted"
	OfferRejectMinimumAmount OfferRejectReason = "minimum_amount_not_met"
)

// Offer represents a discount rule applied opportunistically at quote time.
// Quoting reads offers; UsedCount is incremented only on confirmation.
type Offer struct {
	ID            int64
	Code          string
	Type          OfferType
	DiscountValue decimal.Decimal
	MinimumAmount *decimal.Decimal
	MaxDiscount   *decimal.Decimal
	ValidFrom     time.Time
	ValidTo       time.Time
	UsageLimit    *int
	UsedCount     int
	IsActive      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RejectReasonAt returns why the offer cannot apply at the given instant,
// or OfferRejectNone if it is applicable.
func (o *Offer) RejectReasonAt(now time.Time) OfferRejectReason {
	if !o.IsActive {
		return OfferRejectInactive
	}
	if now.Before(o.ValidFrom) || now.After(o.ValidTo) {
		return OfferRejectExpired
	}
	if o.UsageLimit != nil && o.UsedCount >= *o.UsageLimit {
		return OfferRejectExhausted
	}
	return OfferRejectNone
}

// HasUsageLeft returns true if the usage cap has not been reached
func (o *Offer) HasUsageLeft() bool {
	return o.UsageLimit == nil || o.UsedCount < *o.UsageLimit
}

// DiscountOn computes the raw discount for a base total, clamped to
// MaxDiscount (if set) and never exceeding the base itself.
func (o *Offer) DiscountOn(baseTotal decimal.Decimal) decimal.Decimal {
	var raw decimal.Decimal

	switch o.Type {
	case OfferPercentage:
		raw = Round2(baseTotal.Mul(o.DiscountValue).Div(decimal.NewFromInt(100)))
	case OfferFixed:
		raw = Round2(o.DiscountValue)
	default:
		return decimal.Zero
	}

	if o.MaxDiscount != nil && raw.GreaterThan(*o.MaxDiscount) {
		raw = *o.MaxDiscount
	}
	if raw.GreaterThan(baseTotal) {
		raw = baseTotal
	}
	if raw.IsNegative() {
		return decimal.Zero
	}

	return raw
}
