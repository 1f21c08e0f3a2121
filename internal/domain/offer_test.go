package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOffer_DiscountOn(t *testing.T) {
	tests := []struct {
		name      string
		offer     Offer
		baseTotal string
		want      string
	}{
		{
			name:      "percentage",
			offer:     Offer{Type: OfferPercentage, DiscountValue: money("25")},
			baseTotal: "800.00",
			want:      "200.00",
		},
		{
			name:      "percentage rounds half up",
			offer:     Offer{Type: OfferPercentage, DiscountValue: money("15")},
			baseTotal: "299.97",
			want:      "45.00",
		},
		{
			name:      "fixed",
			offer:     Offer{Type: OfferFixed, DiscountValue: money("75.50")},
			baseTotal: "800.00",
			want:      "75.50",
		},
		{
			name: "clamped to max discount",
			offer: Offer{
				Type:          OfferPercentage,
				DiscountValue: money("50"),
				MaxDiscount:   moneyPtr("100.00"),
			},
			baseTotal: "800.00",
			want:      "100.00",
		},
		{
			name:      "fixed clamped to base total",
			offer:     Offer{Type: OfferFixed, DiscountValue: money("1000.00")},
			baseTotal: "350.00",
			want:      "350.00",
		},
		{
			name:      "unknown type yields zero",
			offer:     Offer{Type: OfferType("bogus"), DiscountValue: money("50")},
			baseTotal: "800.00",
			want:      "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.offer.DiscountOn(money(tt.baseTotal))
			assert.True(t, got.Equal(money(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestOffer_HasUsageLeft(t *testing.T) {
	limit := 3

	t.Run("no limit", func(t *testing.T) {
		o := Offer{UsedCount: 1000}
		assert.True(t, o.HasUsageLeft())
	})

	t.Run("below limit", func(t *testing.T) {
		o := Offer{UsageLimit: &limit, UsedCount: 2}
		assert.True(t, o.HasUsageLeft())
	})

	t.Run("at limit", func(t *testing.T) {
		o := Offer{UsageLimit: &limit, UsedCount: 3}
		assert.False(t, o.HasUsageLeft())
	})
}

func TestOffer_RejectReasonAt_Boundaries(t *testing.T) {
	o := Offer{
		IsActive:      true,
		DiscountValue: money("10"),
		Type:          OfferPercentage,
		ValidFrom:     date(2026, 6, 1),
		ValidTo:       date(2026, 6, 30),
	}

	assert.Equal(t, OfferRejectNone, o.RejectReasonAt(date(2026, 6, 1)))
	assert.Equal(t, OfferRejectNone, o.RejectReasonAt(date(2026, 6, 30)))
	assert.Equal(t, OfferRejectExpired, o.RejectReasonAt(date(2026, 5, 31)))
	assert.Equal(t, OfferRejectExpired, o.RejectReasonAt(date(2026, 7, 1)))
}

func TestNormalizeOfferCode(t *testing.T) {
	assert.Equal(t, "SUMMER20", NormalizeOfferCode("summer20"))
	assert.Equal(t, "SUMMER20", NormalizeOfferCode("  Summer20  "))
	assert.Equal(t, "", NormalizeOfferCode("   "))
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.005", "10.01"},
		{"10.004", "10.00"},
		{"10", "10.00"},
		{"0.125", "0.13"},
	}

	for _, tt := range tests {
		got := Round2(decimal.RequireFromString(tt.in))
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "Round2(%s) = %s, want %s", tt.in, got, tt.want)
	}
}
