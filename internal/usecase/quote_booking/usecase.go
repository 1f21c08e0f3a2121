package quote_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/stayfinder/SF-BookingService/internal/domain"
	offerRepo "github.com/stayfinder/SF-BookingService/internal/infra/storage/offer"
	propertyClient "github.com/stayfinder/SF-BookingService/internal/integrations/propertyservice"
)

// UseCase use case для расчёта стоимости проживания без создания
// бронирования. Детерминированный и без побочных эффектов: счётчики
// использований офферов не изменяются.
type UseCase struct {
	reservationRepo ReservationRepository
	offerRepo       OfferRepository
	propertyClient  PropertyServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	offerRepo OfferRepository,
	propertyClient PropertyServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		offerRepo:       offerRepo,
		propertyClient:  propertyClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет расчёт стоимости и проверку доступности дат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuoteBooking: property=%d, check_in=%s, check_out=%s, guests=%d",
		req.PropertyID, req.CheckIn.Format(domain.DateFormat), req.CheckOut.Format(domain.DateFormat), req.Guests)

	// 1. Валидация входных данных
	candidate, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("QuoteBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Снимок объекта (окно доступности и тарифы)
	avail, rates, err := uc.propertyClient.GetBookingSnapshot(ctx, req.PropertyID)
	if err != nil {
		switch {
		case errors.Is(err, propertyClient.ErrPropertyNotFound):
			uc.logger.Warn("QuoteBooking: property id=%d not found", req.PropertyID)
			return nil, ErrPropertyNotFound
		case errors.Is(err, propertyClient.ErrPropertyNotBookable):
			uc.logger.Warn("QuoteBooking: property id=%d is not bookable", req.PropertyID)
			return nil, ErrPropertyNotBookable
		default:
			uc.logger.Error("QuoteBooking: failed to get property id=%d: %v", req.PropertyID, err)
			return nil, fmt.Errorf("%w: failed to get property: %v", ErrInternal, err)
		}
	}

	response := &Response{
		PropertyID: req.PropertyID,
		CheckIn:    candidate.CheckIn,
		CheckOut:   candidate.CheckOut,
	}

	// 3. Вместимость объекта, окно доступности и ограничения длительности
	// проживания. Нарушение политики - не ошибка: клиент получает причину
	// в ответе
	if err := avail.ValidateGuests(req.Guests); err != nil {
		uc.logger.Info("QuoteBooking: too many guests for property=%d: %d > %d",
			req.PropertyID, req.Guests, avail.MaxGuests)
		response.UnavailableReason = ReasonTooManyGuests
		return response, nil
	}

	if err := avail.ValidateStay(candidate); err != nil {
		reason, mapErr := unavailableReason(err)
		if mapErr != nil {
			return nil, mapErr
		}
		uc.logger.Info("QuoteBooking: dates unavailable for property=%d, reason=%s", req.PropertyID, reason)
		response.UnavailableReason = reason
		return response, nil
	}

	// 4. Пересечения с активными бронированиями (без блокировок - это
	// read-only путь, гарантию даёт только создание бронирования)
	filter := domain.PropertyReservationsFilter{
		PropertyID: req.PropertyID,
		StartDate:  &candidate.CheckIn,
		EndDate:    &candidate.CheckOut,
	}

	reservations, err := uc.reservationRepo.GetByPropertyWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("QuoteBooking: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	if domain.HasConflict(req.PropertyID, candidate, reservations, nil) {
		uc.logger.Info("QuoteBooking: date conflict for property=%d", req.PropertyID)
		response.UnavailableReason = ReasonDateConflict
		return response, nil
	}

	// 5. Резолвим оффер (невалидный код не блокирует расчёт)
	var offer *domain.Offer
	rejectReason := domain.OfferRejectNone
	if req.OfferCode != nil {
		offer, err = uc.offerRepo.GetByCode(ctx, domain.NormalizeOfferCode(*req.OfferCode))
		if errors.Is(err, offerRepo.ErrOfferNotFound) {
			offer = nil
			rejectReason = domain.OfferRejectNotFound
		} else if err != nil {
			uc.logger.Error("QuoteBooking: failed to get offer code=%s: %v", *req.OfferCode, err)
			return nil, fmt.Errorf("%w: failed to get offer: %v", ErrInternal, err)
		}
	}

	// 6. Расчёт стоимости
	quote, offerReject, err := domain.ComputeQuote(*rates, candidate, offer, now)
	if err != nil {
		uc.logger.Error("QuoteBooking: failed to compute quote: %v", err)
		return nil, fmt.Errorf("%w: failed to compute quote: %v", ErrInternal, err)
	}

	response.Available = true
	response.Quote = &Quote{
		Nights:          quote.Nights,
		BaseTotal:       quote.BaseTotal,
		CleaningFee:     quote.CleaningFee,
		SecurityDeposit: quote.SecurityDeposit,
		DiscountAmount:  quote.DiscountAmount,
		GrandTotal:      quote.GrandTotal,
	}
	if offer != nil && offerReject == domain.OfferRejectNone {
		response.OfferApplied = true
	} else if offer != nil {
		rejectReason = offerReject
	}
	response.OfferRejectReason = string(rejectReason)

	uc.logger.Info("QuoteBooking: property=%d available, nights=%d, grand_total=%s",
		req.PropertyID, quote.Nights, quote.GrandTotal.StringFixed(2))

	return response, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (domain.DateInterval, error) {
	if req.PropertyID <= 0 {
		return domain.DateInterval{}, fmt.Errorf("%w: propertyID must be positive", ErrInvalidInput)
	}

	if req.Guests < domain.MinGuests || req.Guests > domain.MaxGuests {
		return domain.DateInterval{}, fmt.Errorf("%w: guests must be between %d and %d",
			ErrInvalidGuestCount, domain.MinGuests, domain.MaxGuests)
	}

	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return domain.DateInterval{}, fmt.Errorf("%w: check-in and check-out dates are required", ErrInvalidInput)
	}

	candidate, err := domain.NewDateInterval(req.CheckIn, req.CheckOut)
	if err != nil {
		return domain.DateInterval{}, ErrInvalidInterval
	}

	return candidate, nil
}

// unavailableReason конвертирует доменные ошибки проверки проживания
// в причину недоступности для ответа
func unavailableReason(err error) (UnavailableReason, error) {
	switch {
	case errors.Is(err, domain.ErrStayTooShort):
		return ReasonStayTooShort, nil
	case errors.Is(err, domain.ErrStayTooLong):
		return ReasonStayTooLong, nil
	case errors.Is(err, domain.ErrOutsideAvailabilityWindow):
		return ReasonOutsideWindow, nil
	case errors.Is(err, domain.ErrInvalidInterval):
		return "", ErrInvalidInterval
	default:
		return "", fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
