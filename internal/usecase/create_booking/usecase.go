package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/stayfinder/SF-BookingService/internal/domain"
	offerRepo "github.com/stayfinder/SF-BookingService/internal/infra/storage/offer"
	reservationRepo "github.com/stayfinder/SF-BookingService/internal/infra/storage/reservation"
	propertyClient "github.com/stayfinder/SF-BookingService/internal/integrations/propertyservice"
)

// errIdempotencyKeyRaced сигнал из транзакции: бронирование с этим ключом
// уже вставил конкурентный запрос
var errIdempotencyKeyRaced = errors.New("create_booking: idempotency key raced")

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	offerRepo       OfferRepository
	propertyClient  PropertyServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	offerRepo OfferRepository,
	propertyClient PropertyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		offerRepo:       offerRepo,
		propertyClient:  propertyClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
//
// Проверка пересечений и вставка выполняются в одной сериализуемой
// транзакции с блокировкой бронирований объекта: два конкурентных запроса
// на пересекающиеся даты одного объекта не могут пройти оба.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, property=%d, check_in=%s, check_out=%s, guests=%d",
		req.UserID, req.PropertyID, req.CheckIn.Format(domain.DateFormat),
		req.CheckOut.Format(domain.DateFormat), req.Guests)

	// 1. Валидация входных данных
	candidate, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Идемпотентный повтор: если бронирование с этим ключом уже
	// создано, возвращаем его вместо повторной вставки
	if existing, err := uc.reservationRepo.GetByIdempotencyKey(ctx, req.IdempotencyKey); err == nil {
		uc.logger.Info("CreateBooking: idempotent replay, returning reservation id=%d", existing.ID)
		return responseFromReservation(existing, existing.OfferID != nil, domain.OfferRejectNone, true), nil
	} else if !errors.Is(err, reservationRepo.ErrReservationNotFound) {
		uc.logger.Error("CreateBooking: failed to check idempotency key: %v", err)
		return nil, fmt.Errorf("%w: failed to check idempotency key: %v", ErrInternal, err)
	}

	// 4. Получаем снимок объекта (окно доступности и тарифы)
	avail, rates, err := uc.propertyClient.GetBookingSnapshot(ctx, req.PropertyID)
	if err != nil {
		switch {
		case errors.Is(err, propertyClient.ErrPropertyNotFound):
			uc.logger.Warn("CreateBooking: property id=%d not found", req.PropertyID)
			return nil, ErrPropertyNotFound
		case errors.Is(err, propertyClient.ErrPropertyNotBookable):
			uc.logger.Warn("CreateBooking: property id=%d is not bookable", req.PropertyID)
			return nil, ErrPropertyNotBookable
		default:
			uc.logger.Error("CreateBooking: failed to get property id=%d: %v", req.PropertyID, err)
			return nil, fmt.Errorf("%w: failed to get property: %v", ErrInternal, err)
		}
	}

	// 4.1. Вместимость объекта
	if err := avail.ValidateGuests(req.Guests); err != nil {
		uc.logger.Warn("CreateBooking: too many guests for property=%d: %d > %d",
			req.PropertyID, req.Guests, avail.MaxGuests)
		return nil, ErrTooManyGuests
	}

	var (
		result       *domain.Reservation
		offerApplied bool
		rejectReason domain.OfferRejectReason
	)

	// 5. Проверки и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Окно доступности и ограничения длительности проживания
		if err := avail.ValidateStay(candidate); err != nil {
			uc.logger.Warn("CreateBooking: stay validation failed for property=%d: %v", req.PropertyID, err)
			return mapStayError(err)
		}

		// 5.2. Активные бронирования объекта за период кандидата,
		// с блокировкой строк (FOR UPDATE)
		filter := domain.PropertyReservationsFilter{
			PropertyID: req.PropertyID,
			StartDate:  &candidate.CheckIn,
			EndDate:    &candidate.CheckOut,
		}

		reservations, err := uc.reservationRepo.GetByPropertyWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 5.3. Проверка пересечений
		if domain.HasConflict(req.PropertyID, candidate, reservations, nil) {
			uc.logger.Warn("CreateBooking: date conflict for property=%d, check_in=%s, check_out=%s",
				req.PropertyID, candidate.CheckIn.Format(domain.DateFormat), candidate.CheckOut.Format(domain.DateFormat))
			return ErrDateConflict
		}

		// 5.4. Резолвим оффер. Неизвестный или невалидный код не блокирует
		// бронирование - расчёт идёт без скидки, причина возвращается клиенту
		var offer *domain.Offer
		if req.OfferCode != nil {
			offer, err = uc.offerRepo.GetByCode(txCtx, domain.NormalizeOfferCode(*req.OfferCode))
			if errors.Is(err, offerRepo.ErrOfferNotFound) {
				uc.logger.Info("CreateBooking: offer code=%s not found, booking without discount", *req.OfferCode)
				offer = nil
				rejectReason = domain.OfferRejectNotFound
			} else if err != nil {
				uc.logger.Error("CreateBooking: failed to get offer code=%s: %v", *req.OfferCode, err)
				return fmt.Errorf("%w: failed to get offer: %v", ErrInternal, err)
			}
		}

		// 5.5. Расчёт стоимости
		quote, offerReject, err := domain.ComputeQuote(*rates, candidate, offer, now)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to compute quote: %v", err)
			return fmt.Errorf("%w: failed to compute quote: %v", ErrInternal, err)
		}
		if offer != nil {
			if offerReject == domain.OfferRejectNone {
				offerApplied = true
			} else {
				rejectReason = offerReject
				uc.logger.Info("CreateBooking: offer code=%s not applied, reason=%s", *req.OfferCode, offerReject)
			}
		}

		reservation := &domain.Reservation{
			PropertyID:      req.PropertyID,
			UserID:          req.UserID,
			Interval:        candidate,
			Guests:          req.Guests,
			Status:          domain.StatusPending,
			Nights:          quote.Nights,
			BaseTotal:       quote.BaseTotal,
			CleaningFee:     quote.CleaningFee,
			SecurityDeposit: quote.SecurityDeposit,
			DiscountAmount:  quote.DiscountAmount,
			GrandTotal:      quote.GrandTotal,
			IdempotencyKey:  req.IdempotencyKey,
		}
		if offerApplied {
			reservation.OfferID = &offer.ID
		}

		// 5.6. Вставка с перегенерацией номера при коллизии
		result, err = uc.createWithFreshReference(txCtx, reservation)
		return err
	})

	if err != nil {
		if errors.Is(err, errIdempotencyKeyRaced) {
			existing, getErr := uc.reservationRepo.GetByIdempotencyKey(ctx, req.IdempotencyKey)
			if getErr != nil {
				uc.logger.Error("CreateBooking: failed to read raced idempotency key: %v", getErr)
				return nil, fmt.Errorf("%w: failed to read raced idempotency key: %v", ErrInternal, getErr)
			}
			uc.logger.Info("CreateBooking: idempotent replay after concurrent insert, reservation id=%d", existing.ID)
			return responseFromReservation(existing, existing.OfferID != nil, domain.OfferRejectNone, true), nil
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created reservation id=%d, reference=%s, grand_total=%s",
		result.ID, result.BookingReference, result.GrandTotal.StringFixed(2))

	return responseFromReservation(result, offerApplied, rejectReason, false), nil
}

// createWithFreshReference вставляет бронирование, перегенерируя
// booking reference при коллизии уникального индекса
func (uc *UseCase) createWithFreshReference(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	for attempt := 1; attempt <= domain.MaxReferenceAttempts; attempt++ {
		reference, err := domain.NewBookingReference()
		if err != nil {
			return nil, fmt.Errorf("%w: failed to generate reference: %v", ErrInternal, err)
		}
		reservation.BookingReference = reference

		created, err := uc.reservationRepo.Create(ctx, reservation)
		switch {
		case err == nil:
			return created, nil
		case errors.Is(err, reservationRepo.ErrDuplicateReference):
			uc.logger.Warn("CreateBooking: reference collision %s, attempt %d/%d",
				reference, attempt, domain.MaxReferenceAttempts)
		case errors.Is(err, reservationRepo.ErrDuplicateIdempotencyKey):
			// Конкурентный запрос с тем же ключом вставил первым.
			// Его строка не видна в снимке сериализуемой транзакции,
			// поэтому транзакция прерывается, а повтор читается вне её
			return nil, errIdempotencyKeyRaced
		case errors.Is(err, reservationRepo.ErrDateConflict):
			// Exclusion constraint сработал раньше нашей проверки
			return nil, ErrDateConflict
		default:
			return nil, fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}
	}

	return nil, fmt.Errorf("%w: booking reference attempts exhausted", ErrInternal)
}
