package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func moneyPtr(s string) *decimal.Decimal {
	d := money(s)
	return &d
}

func testRates(nightly, cleaning, deposit string) PropertyRates {
	return PropertyRates{
		PropertyID:      1,
		NightlyRate:     money(nightly),
		CleaningFee:     money(cleaning),
		SecurityDeposit: money(deposit),
	}
}

func activeOffer(offerType OfferType, value string) *Offer {
	return &Offer{
		ID:            10,
		Code:          "SUMMER20",
		Type:          offerType,
		DiscountValue: money(value),
		ValidFrom:     date(2026, 1, 1),
		ValidTo:       date(2027, 1, 1),
		IsActive:      true,
	}
}

func quoteNow() time.Time {
	return date(2026, 6, 15)
}

func TestComputeQuote_NoOffer(t *testing.T) {
	rates := testRates("120.50", "40.00", "200.00")
	candidate := mustInterval(t, date(2026, 7, 1), date(2026, 7, 8))

	quote, reject, err := ComputeQuote(rates, candidate, nil, quoteNow())
	require.NoError(t, err)
	assert.Equal(t, OfferRejectNone, reject)

	assert.Equal(t, 7, quote.Nights)
	assert.True(t, quote.BaseTotal.Equal(money("843.50")))
	assert.True(t, quote.CleaningFee.Equal(money("40.00")))
	assert.True(t, quote.SecurityDeposit.Equal(money("200.00")))
	assert.True(t, quote.DiscountAmount.Equal(decimal.Zero))
	assert.True(t, quote.GrandTotal.Equal(money("1083.50")))
}

func TestComputeQuote_PercentageOffer(t *testing.T) {
	rates := testRates("100.00", "50.00", "150.00")
	candidate := mustInterval(t, date(2026, 7, 1), date(2026, 7, 11))

	quote, reject, err := ComputeQuote(rates, candidate, activeOffer(OfferPercentage, "20"), quoteNow())
	require.NoError(t, err)
	assert.Equal(t, OfferRejectNone, reject)

	// 10 ночей * 100.00 = 1000.00, скидка 20% = 200.00
	assert.True(t, quote.BaseTotal.Equal(money("1000.00")))
	assert.True(t, quote.DiscountAmount.Equal(money("200.00")))
	assert.True(t, quote.GrandTotal.Equal(money("1000.00")))
}

func TestComputeQuote_FixedOffer(t *testing.T) {
	rates := testRates("100.00", "0.00", "0.00")
	candidate := mustInterval(t, date(2026, 7, 1), date(2026, 7, 3))

	quote, reject, err := ComputeQuote(rates, candidate, activeOffer(OfferFixed, "30.00"), quoteNow())
	require.NoError(t, err)
	assert.Equal(t, OfferRejectNone, reject)

	assert.True(t, quote.DiscountAmount.Equal(money("30.00")))
	assert.True(t, quote.GrandTotal.Equal(money("170.00")))
}

func TestComputeQuote_RoundsHalfUp(t *testing.T) {
	// 3 ночи * 99.99 = 299.97, 15% = 44.9955 -> 45.00
	rates := testRates("99.99", "0.00", "0.00")
	candidate := mustInterval(t, date(2026, 7, 1), date(2026, 7, 4))

	quote, _, err := ComputeQuote(rates, candidate, activeOffer(OfferPercentage, "15"), quoteNow())
	require.NoError(t, err)

	assert.True(t, quote.BaseTotal.Equal(money("299.97")))
	assert.True(t, quote.DiscountAmount.Equal(money("45.00")))
	assert.True(t, quote.GrandTotal.Equal(money("254.97")))
}

func TestComputeQuote_DiscountClampedToMaxDiscount(t *testing.T) {
	rates := testRates("100.00", "0.00", "0.00")
	candidate := mustInterval(t, date(2026, 7, 1), date(2026, 7, 11))

	offer := activeOffer(OfferPercentage, "50")
	offer.MaxDiscount = moneyPtr("120.00")

	quote, reject, err := ComputeQuote(rates, candidate, offer, quoteNow())
	require.NoError(t, err)
	assert.Equal(t, OfferRejectNone, reject)

	// 50% от 1000.00 = 500.00, но клампится до 120.00
	assert.True(t, quote.DiscountAmount.Equal(money("120.00")))
	assert.True(t, quote.GrandTotal.Equal(money("880.00")))
}

func TestComputeQuote_FixedDiscountClampedToBaseTotal(t *testing.T) {
	rates := testRates("50.00", "20.00", "100.00")
	candidate := mustInterval(t, date(2026, 7, 1), date(2026, 7, 2))

	quote, reject, err := ComputeQuote(rates, candidate, activeOffer(OfferFixed, "500.00"), quoteNow())
	require.NoError(t, err)
	assert.Equal(t, OfferRejectNone, reject)

	// Скидка не превышает стоимость ночей: сбор и депозит не дисконтируются
	assert.True(t, quote.DiscountAmount.Equal(money("50.00")))
	assert.True(t, quote.GrandTotal.Equal(money("120.00")))
}

func TestComputeQuote_GrandTotalInvariant(t *testing.T) {
	rates := testRates("87.13", "33.07", "250.00")
	candidate := mustInterval(t, date(2026, 7, 3), date(2026, 7, 9))

	quote, _, err := ComputeQuote(rates, candidate, activeOffer(OfferPercentage, "17"), quoteNow())
	require.NoError(t, err)

	expected := quote.BaseTotal.
		Add(quote.CleaningFee).
		Add(quote.SecurityDeposit).
		Sub(quote.DiscountAmount)
	assert.True(t, quote.GrandTotal.Equal(expected))
	assert.False(t, quote.GrandTotal.IsNegative())
}

func TestComputeQuote_Deterministic(t *testing.T) {
	rates := testRates("119.99", "45.50", "300.00")
	candidate := mustInterval(t, date(2026, 7, 1), date(2026, 7, 8))
	offer := activeOffer(OfferPercentage, "12.5")
	now := quoteNow()

	first, firstReject, err := ComputeQuote(rates, candidate, offer, now)
	require.NoError(t, err)

	second, secondReject, err := ComputeQuote(rates, candidate, offer, now)
	require.NoError(t, err)

	assert.Equal(t, firstReject, secondReject)
	assert.True(t, first.GrandTotal.Equal(second.GrandTotal))
	assert.True(t, first.DiscountAmount.Equal(second.DiscountAmount))
}

func TestComputeQuote_OfferRejections(t *testing.T) {
	rates := testRates("100.00", "0.00", "0.00")
	candidate := mustInterval(t, date(2026, 7, 1), date(2026, 7, 5))

	usageLimit := 100

	tests := []struct {
		name   string
		mutate func(o *Offer)
		want   OfferRejectReason
	}{
		{
			name:   "inactive",
			mutate: func(o *Offer) { o.IsActive = false },
			want:   OfferRejectInactive,
		},
		{
			name:   "not yet valid",
			mutate: func(o *Offer) { o.ValidFrom = date(2026, 8, 1) },
			want:   OfferRejectExpired,
		},
		{
			name:   "already expired",
			mutate: func(o *Offer) { o.ValidTo = date(2026, 5, 1) },
			want:   OfferRejectExpired,
		},
		{
			name: "usage limit reached",
			mutate: func(o *Offer) {
				o.UsageLimit = &usageLimit
				o.UsedCount = 100
			},
			want: OfferRejectExhausted,
		},
		{
			name:   "minimum amount not met",
			mutate: func(o *Offer) { o.MinimumAmount = moneyPtr("500.00") },
			want:   OfferRejectMinimumAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offer := activeOffer(OfferPercentage, "20")
			tt.mutate(offer)

			quote, reject, err := ComputeQuote(rates, candidate, offer, quoteNow())
			require.NoError(t, err)

			// Невалидный оффер не срывает расчёт, он идёт без скидки
			assert.Equal(t, tt.want, reject)
			assert.True(t, quote.DiscountAmount.Equal(decimal.Zero))
			assert.True(t, quote.GrandTotal.Equal(money("400.00")))
		})
	}
}

func TestComputeQuote_MinimumAmountExactlyMet(t *testing.T) {
	rates := testRates("100.00", "0.00", "0.00")
	candidate := mustInterval(t, date(2026, 7, 1), date(2026, 7, 5))

	offer := activeOffer(OfferPercentage, "10")
	offer.MinimumAmount = moneyPtr("400.00")

	_, reject, err := ComputeQuote(rates, candidate, offer, quoteNow())
	require.NoError(t, err)
	assert.Equal(t, OfferRejectNone, reject)
}

func TestComputeQuote_InvalidInterval(t *testing.T) {
	rates := testRates("100.00", "0.00", "0.00")
	invalid := DateInterval{CheckIn: date(2026, 7, 8), CheckOut: date(2026, 7, 1)}

	_, _, err := ComputeQuote(rates, invalid, nil, quoteNow())
	assert.ErrorIs(t, err, ErrInvalidInterval)
}
