package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuote is a fully computed, currency-precise price breakdown.
// Invariant: GrandTotal = BaseTotal + CleaningFee + SecurityDeposit - DiscountAmount,
// floored at zero, every field rounded to two fraction digits.
type PriceQuote struct {
	Nights          int
	BaseTotal       decimal.Decimal
	CleaningFee     decimal.Decimal
	SecurityDeposit decimal.Decimal
	DiscountAmount  decimal.Decimal
	GrandTotal      decimal.Decimal
}

// Round2 rounds a monetary amount half-up to two fraction digits.
// Rounding happens at every computation boundary, never on accumulated
// floating point state: all arithmetic stays in decimal.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ComputeQuote computes the price of a stay.
//
// The offer is applied only when it is valid at the quote instant and the
// base total meets its minimum amount. An inapplicable offer does not fail
// the quote: pricing proceeds without discount and the returned reject
// reason tells the caller why the coupon was skipped.
func ComputeQuote(
	rates PropertyRates,
	candidate DateInterval,
	offer *Offer,
	now time.Time,
) (*PriceQuote, OfferRejectReason, error) {
	nights, err := candidate.Nights()
	if err != nil {
		return nil, OfferRejectNone, err
	}

	baseTotal := Round2(rates.NightlyRate.Mul(decimal.NewFromInt(int64(nights))))
	cleaningFee := Round2(rates.CleaningFee)
	securityDeposit := Round2(rates.SecurityDeposit)

	discount := decimal.Zero
	rejectReason := OfferRejectNone

	if offer != nil {
		rejectReason = offer.RejectReasonAt(now)
		if rejectReason == OfferRejectNone && offer.MinimumAmount != nil && baseTotal.LessThan(*offer.MinimumAmount) {
			rejectReason = OfferRejectMinimumAmount
		}
		if rejectReason == OfferRejectNone {
			discount = offer.DiscountOn(baseTotal)
		}
	}

	grandTotal := Round2(baseTotal.Add(cleaningFee).Add(securityDeposit).Sub(discount))
	if grandTotal.IsNegative() {
		grandTotal = decimal.Zero
	}

	return &PriceQuote{
		Nights:          nights,
		BaseTotal:       baseTotal,
		CleaningFee:     cleaningFee,
		SecurityDeposit: securityDeposit,
		DiscountAmount:  discount,
		GrandTotal:      grandTotal,
	}, rejectReason, nil
}
