package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/stayfinder/SF-BookingService/internal/domain"
	reservationRepo "github.com/stayfinder/SF-BookingService/internal/infra/storage/reservation"
	propertyClient "github.com/stayfinder/SF-BookingService/internal/integrations/propertyservice"
	"github.com/stayfinder/SF-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с жизненным циклом бронирований:
// чтение, отмена, подтверждение. Создание - отдельный usecase.
type Service struct {
	reservationRepo ReservationRepository
	offerRepo       OfferRepository
	propertyClient  PropertyServiceClient
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	offerRepo OfferRepository,
	propertyClient PropertyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		offerRepo:       offerRepo,
		propertyClient:  propertyClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Пользователь видит только своё бронирование или бронирование
// на своём объекте (host).
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	res, err := s.getReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, res, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainReservation(res), nil
}

// GetByReference получает бронирование по клиентскому номеру
func (s *Service) GetByReference(ctx context.Context, reference string, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByReference: fetching reservation reference=%s for user=%d", reference, userID)

	res, err := s.reservationRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByReference: reservation reference=%s not found", reference)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByReference: repository error for reference=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, res, userID); err != nil {
		s.logger.Warn("GetByReference: access denied for user=%d to reservation id=%d", userID, res.ID)
		return nil, err
	}

	return models.FromDomainReservation(res), nil
}

// GetUserReservations получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetPropertyReservations получает бронирования объекта с фильтрацией
// по периоду и статусу. Доступно только владельцу объекта.
func (s *Service) GetPropertyReservations(ctx context.Context, req *models.GetPropertyReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetPropertyReservations: property=%d, user=%d", req.PropertyID, req.UserID)

	if err := s.checkHostAccess(ctx, req.PropertyID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetPropertyReservations: invalid filter for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByPropertyWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetPropertyReservations: repository error for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: GetPropertyReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPropertyReservations: fetched %d reservations for property=%d", len(reservations), req.PropertyID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование.
// Гость может отменить своё бронирование, владелец объекта - любое
// бронирование на своём объекте. Отменяются только pending и confirmed.
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, req.UserID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	res, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return err
	}

	if err := s.checkUserAccess(ctx, res, req.UserID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to reservation id=%d", req.UserID, reservationID)
		return err
	}

	if !res.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d in status=%s cannot be cancelled", reservationID, res.Status)
		return ErrCannotCancel
	}

	if err := s.reservationRepo.Cancel(ctx, reservationID, req.CancellationReason); err != nil {
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: reservation id=%d cancelled", reservationID)
	return nil
}

// Confirm подтверждает бронирование (pending -> confirmed).
// Доступно только владельцу объекта. Если при бронировании был применён
// оффер, его счётчик использований увеличивается в той же транзакции -
// расчёт цены офферы не расходует, расходует только подтверждение.
func (s *Service) Confirm(ctx context.Context, reservationID int64, userID int64) error {
	s.logger.Info("Confirm: confirming reservation id=%d by user=%d", reservationID, userID)

	res, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return err
	}

	if err := s.checkHostAccess(ctx, res.PropertyID, userID); err != nil {
		s.logger.Warn("Confirm: access denied for user=%d to reservation id=%d", userID, reservationID)
		return err
	}

	if !res.CanBeConfirmed() {
		s.logger.Warn("Confirm: reservation id=%d in status=%s cannot be confirmed", reservationID, res.Status)
		return ErrCannotConfirm
	}

	// Прочитанный статус мог устареть: авторитетная проверка - условный
	// UPDATE, поэтому конкурентное подтверждение не расходует оффер дважды
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.reservationRepo.ConfirmPending(txCtx, reservationID); err != nil {
			if errors.Is(err, reservationRepo.ErrNotPending) {
				return ErrCannotConfirm
			}
			return fmt.Errorf("%w: Confirm - update status: %v", ErrInternal, err)
		}

		if res.OfferID != nil {
			if err := s.offerRepo.IncrementUsage(txCtx, *res.OfferID); err != nil {
				return fmt.Errorf("%w: Confirm - increment offer usage: %v", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		s.logger.Error("Confirm: failed for reservation id=%d: %v", reservationID, err)
		return err
	}

	s.logger.Info("Confirm: reservation id=%d confirmed", reservationID)
	return nil
}

func (s *Service) getReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("getReservation: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("getReservation: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return res, nil
}

// checkUserAccess проверяет, что пользователь - гость бронирования
// или владелец объекта
func (s *Service) checkUserAccess(ctx context.Context, res *domain.Reservation, userID int64) error {
	if res.UserID == userID {
		return nil
	}
	return s.checkHostAccess(ctx, res.PropertyID, userID)
}

// checkHostAccess проверяет, что пользователь - владелец объекта
func (s *Service) checkHostAccess(ctx context.Context, propertyID int64, userID int64) error {
	property, err := s.propertyClient.GetProperty(ctx, propertyID)
	if err != nil {
		if errors.Is(err, propertyClient.ErrPropertyNotFound) {
			return ErrPropertyNotFound
		}
		s.logger.Error("checkHostAccess: failed to get property id=%d: %v", propertyID, err)
		return fmt.Errorf("%w: failed to get property: %v", ErrInternal, err)
	}

	if property.HostID != userID {
		return ErrAccessDenied
	}

	return nil
}
