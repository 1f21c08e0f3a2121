package offers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stayfinder/SF-BookingService/internal/domain"
	offerRepo "github.com/stayfinder/SF-BookingService/internal/infra/storage/offer"
	"github.com/stayfinder/SF-BookingService/internal/service/offers/models"
)

// Service сервис для административного управления офферами
type Service struct {
	offerRepo OfferRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса офферов
func NewService(offerRepo OfferRepository, logger Logger) *Service {
	return &Service{
		offerRepo: offerRepo,
		logger:    logger,
	}
}

// Create создает новый оффер
func (s *Service) Create(ctx context.Context, req *models.CreateOfferRequest) (*models.OfferResponse, error) {
	s.logger.Info("Create: creating offer code=%s", req.Code)

	offer, err := s.buildOffer(req)
	if err != nil {
		s.logger.Warn("Create: invalid offer request code=%s: %v", req.Code, err)
		return nil, err
	}

	created, err := s.offerRepo.Create(ctx, offer)
	if err != nil {
		if errors.Is(err, offerRepo.ErrDuplicateCode) {
			s.logger.Warn("Create: offer code=%s already exists", req.Code)
			return nil, ErrDuplicateCode
		}
		s.logger.Error("Create: repository error for code=%s: %v", req.Code, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: offer created id=%d, code=%s", created.ID, created.Code)
	return models.FromDomainOffer(created), nil
}

// GetByCode получает оффер по коду
func (s *Service) GetByCode(ctx context.Context, code string) (*models.OfferResponse, error) {
	code = normalizeCode(code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	offer, err := s.offerRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, offerRepo.ErrOfferNotFound) {
			s.logger.Warn("GetByCode: offer code=%s not found", code)
			return nil, ErrOfferNotFound
		}
		s.logger.Error("GetByCode: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetByCode - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOffer(offer), nil
}

// Update обновляет существующий оффер.
// Обновляются только переданные поля, результирующий оффер
// проходит полную валидацию.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateOfferRequest) (*models.OfferResponse, error) {
	s.logger.Info("Update: updating offer id=%d", id)

	offer, err := s.getOffer(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.applyUpdate(offer, req); err != nil {
		s.logger.Warn("Update: invalid update for offer id=%d: %v", id, err)
		return nil, err
	}

	if err := validateOffer(offer); err != nil {
		s.logger.Warn("Update: offer id=%d fails validation after update: %v", id, err)
		return nil, err
	}

	if err := s.offerRepo.Update(ctx, offer); err != nil {
		if errors.Is(err, offerRepo.ErrOfferNotFound) {
			return nil, ErrOfferNotFound
		}
		s.logger.Error("Update: repository error for offer id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	updated, err := s.getOffer(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: offer id=%d updated", id)
	return models.FromDomainOffer(updated), nil
}

// Deactivate деактивирует оффер. Деактивированный оффер перестает
// применяться к новым расчётам, существующие бронирования не затрагиваются.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	s.logger.Info("Deactivate: deactivating offer id=%d", id)

	if err := s.offerRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, offerRepo.ErrOfferNotFound) {
			s.logger.Warn("Deactivate: offer id=%d not found", id)
			return ErrOfferNotFound
		}
		s.logger.Error("Deactivate: repository error for offer id=%d: %v", id, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: offer id=%d deactivated", id)
	return nil
}

func (s *Service) getOffer(ctx context.Context, id int64) (*domain.Offer, error) {
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, offerRepo.ErrOfferNotFound) {
			s.logger.Warn("getOffer: offer id=%d not found", id)
			return nil, ErrOfferNotFound
		}
		s.logger.Error("getOffer: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return offer, nil
}

func (s *Service) buildOffer(req *models.CreateOfferRequest) (*domain.Offer, error) {
	offer := &domain.Offer{
		Code:       normalizeCode(req.Code),
		Type:       domain.OfferType(req.Type),
		UsageLimit: req.UsageLimit,
		IsActive:   true,
	}

	if offer.Code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	value, err := parseMoneyField("discount_value", req.DiscountValue)
	if err != nil {
		return nil, err
	}
	offer.DiscountValue = value

	offer.MinimumAmount, err = parseOptionalMoneyField("minimum_amount", req.MinimumAmount)
	if err != nil {
		return nil, err
	}

	offer.MaxDiscount, err = parseOptionalMoneyField("max_discount", req.MaxDiscount)
	if err != nil {
		return nil, err
	}

	offer.ValidFrom, err = parseTimeField("valid_from", req.ValidFrom)
	if err != nil {
		return nil, err
	}

	offer.ValidTo, err = parseTimeField("valid_to", req.ValidTo)
	if err != nil {
		return nil, err
	}

	if err := validateOffer(offer); err != nil {
		return nil, err
	}

	return offer, nil
}

func (s *Service) applyUpdate(offer *domain.Offer, req *models.UpdateOfferRequest) error {
	if req.Type != nil {
		offer.Type = domain.OfferType(*req.Type)
	}

	if req.DiscountValue != nil {
		value, err := parseMoneyField("discount_value", *req.DiscountValue)
		if err != nil {
			return err
		}
		offer.DiscountValue = value
	}

	if req.MinimumAmount != nil {
		value, err := parseOptionalMoneyField("minimum_amount", req.MinimumAmount)
		if err != nil {
			return err
		}
		offer.MinimumAmount = value
	}

	if req.MaxDiscount != nil {
		value, err := parseOptionalMoneyField("max_discount", req.MaxDiscount)
		if err != nil {
			return err
		}
		offer.MaxDiscount = value
	}

	if req.ValidFrom != nil {
		value, err := parseTimeField("valid_from", *req.ValidFrom)
		if err != nil {
			return err
		}
		offer.ValidFrom = value
	}

	if req.ValidTo != nil {
		value, err := parseTimeField("valid_to", *req.ValidTo)
		if err != nil {
			return err
		}
		offer.ValidTo = value
	}

	if req.UsageLimit != nil {
		offer.UsageLimit = req.UsageLimit
	}

	if req.IsActive != nil {
		offer.IsActive = *req.IsActive
	}

	return nil
}

func validateOffer(offer *domain.Offer) error {
	if offer.Type != domain.OfferPercentage && offer.Type != domain.OfferFixed {
		return fmt.Errorf("%w: type must be 'percentage' or 'fixed'", ErrInvalidInput)
	}

	if !offer.DiscountValue.IsPositive() {
		return fmt.Errorf("%w: discount_value must be positive", ErrInvalidInput)
	}

	if offer.Type == domain.OfferPercentage && offer.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: percentage discount_value must not exceed 100", ErrInvalidInput)
	}

	if offer.MinimumAmount != nil && offer.MinimumAmount.IsNegative() {
		return fmt.Errorf("%w: minimum_amount must not be negative", ErrInvalidInput)
	}

	if offer.MaxDiscount != nil && !offer.MaxDiscount.IsPositive() {
		return fmt.Errorf("%w: max_discount must be positive", ErrInvalidInput)
	}

	if !offer.ValidFrom.Before(offer.ValidTo) {
		return fmt.Errorf("%w: valid_from must be before valid_to", ErrInvalidInput)
	}

	if offer.UsageLimit != nil && *offer.UsageLimit <= 0 {
		return fmt.Errorf("%w: usage_limit must be positive", ErrInvalidInput)
	}

	return nil
}

func parseMoneyField(name, value string) (decimal.Decimal, error) {
	parsed, err := models.ParseMoney(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: invalid %s", ErrInvalidInput, name)
	}
	return parsed, nil
}

func parseOptionalMoneyField(name string, value *string) (*decimal.Decimal, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	parsed, err := parseMoneyField(name, *value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseTimeField(name, value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid %s, expected RFC3339 timestamp", ErrInvalidInput, name)
	}
	return parsed.UTC(), nil
}

func normalizeCode(code string) string {
	return domain.NormalizeOfferCode(code)
}
