package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stayfinder/SF-BookingService/internal/domain"
)

// CreateOfferRequest запрос на создание оффера
type CreateOfferRequest struct {
	Code          string  `json:"code"`
	Type          string  `json:"type"`
	DiscountValue string  `json:"discount_value"`
	MinimumAmount *string `json:"minimum_amount,omitempty"`
	MaxDiscount   *string `json:"max_discount,omitempty"`
	ValidFrom     string  `json:"valid_from"`
	ValidTo       string  `json:"valid_to"`
	UsageLimit    *int    `json:"usage_limit,omitempty"`
}

// UpdateOfferRequest запрос на обновление оффера.
// Обновляются только переданные поля, код оффера неизменяем.
type UpdateOfferRequest struct {
	Type          *string `json:"type,omitempty"`
	DiscountValue *string `json:"discount_value,omitempty"`
	MinimumAmount *string `json:"minimum_amount,omitempty"`
	MaxDiscount   *string `json:"max_discount,omitempty"`
	ValidFrom     *string `json:"valid_from,omitempty"`
	ValidTo       *string `json:"valid_to,omitempty"`
	UsageLimit    *int    `json:"usage_limit,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

// OfferResponse ответ с данными оффера
type OfferResponse struct {
	ID            int64   `json:"id"`
	Code          string  `json:"code"`
	Type          string  `json:"type"`
	DiscountValue string  `json:"discount_value"`
	MinimumAmount *string `json:"minimum_amount,omitempty"`
	MaxDiscount   *string `json:"max_discount,omitempty"`
	ValidFrom     string  `json:"valid_from"`
	ValidTo       string  `json:"valid_to"`
	UsageLimit    *int    `json:"usage_limit,omitempty"`
	UsedCount     int     `json:"used_count"`
	IsActive      bool    `json:"is_active"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// FromDomainOffer конвертирует доменную модель в ответ API
func FromDomainOffer(offer *domain.Offer) *OfferResponse {
	resp := &OfferResponse{
		ID:            offer.ID,
		Code:          offer.Code,
		Type:          string(offer.Type),
		DiscountValue: offer.DiscountValue.StringFixed(2),
		ValidFrom:     offer.ValidFrom.Format(time.RFC3339),
		ValidTo:       offer.ValidTo.Format(time.RFC3339),
		UsageLimit:    offer.UsageLimit,
		UsedCount:     offer.UsedCount,
		IsActive:      offer.IsActive,
		CreatedAt:     offer.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     offer.UpdatedAt.Format(time.RFC3339),
	}

	if offer.MinimumAmount != nil {
		s := offer.MinimumAmount.StringFixed(2)
		resp.MinimumAmount = &s
	}
	if offer.MaxDiscount != nil {
		s := offer.MaxDiscount.StringFixed(2)
		resp.MaxDiscount = &s
	}

	return resp
}

// ParseMoney парсит денежное значение из строки
func ParseMoney(value string) (decimal.Decimal, error) {
	return decimal.NewFromString(value)
}
