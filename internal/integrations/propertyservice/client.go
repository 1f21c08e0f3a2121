package propertyservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stayfinder/SF-BookingService/internal/domain"
)

const propertyStatusActive = "active"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с PropertyService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента PropertyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetProperty получает карточку объекта размещения
func (c *Client) GetProperty(ctx context.Context, propertyID int64) (*Property, error) {
	url := fmt.Sprintf("%s/internal/properties/%d", c.baseURL, propertyID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid property ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrPropertyNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var property Property
	if err := json.NewDecoder(resp.Body).Decode(&property); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &property, nil
}

// GetBookingSnapshot получает объект и конвертирует его в доменные модели
// доступности и тарифов. Объекты не в статусе active бронировать нельзя.
func (c *Client) GetBookingSnapshot(ctx context.Context, propertyID int64) (*domain.PropertyAvailability, *domain.PropertyRates, error) {
	property, err := c.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, nil, err
	}

	if property.Status != propertyStatusActive {
		c.log.Warn("Property id=%d is not bookable, status=%s", propertyID, property.Status)
		return nil, nil, ErrPropertyNotBookable
	}

	avail, err := toAvailability(property)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: property id=%d: %v", ErrInvalidResponse, propertyID, err)
	}

	rates, err := toRates(property)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: property id=%d: %v", ErrInvalidResponse, propertyID, err)
	}

	return avail, rates, nil
}

func toAvailability(p *Property) (*domain.PropertyAvailability, error) {
	availableFrom, err := time.Parse(domain.DateFormat, p.AvailableFrom)
	if err != nil {
		return nil, fmt.Errorf("invalid available_from: %v", err)
	}

	availableTo, err := time.Parse(domain.DateFormat, p.AvailableTo)
	if err != nil {
		return nil, fmt.Errorf("invalid available_to: %v", err)
	}

	minimumStay := p.MinimumStay
	if minimumStay < domain.MinStayNights {
		minimumStay = domain.DefaultMinimumStayNights
	}

	return &domain.PropertyAvailability{
		PropertyID:    p.ID,
		AvailableFrom: availableFrom,
		AvailableTo:   availableTo,
		MinimumStay:   minimumStay,
		MaximumStay:   p.MaximumStay,
		MaxGuests:     p.MaxGuests,
	}, nil
}

func toRates(p *Property) (*domain.PropertyRates, error) {
	nightlyRate, err := decimal.NewFromString(p.NightlyRate)
	if err != nil {
		return nil, fmt.Errorf("invalid nightly_rate: %v", err)
	}

	cleaningFee, err := parseOptionalDecimal(p.CleaningFee)
	if err != nil {
		return nil, fmt.Errorf("invalid cleaning_fee: %v", err)
	}

	securityDeposit, err := parseOptionalDecimal(p.SecurityDeposit)
	if err != nil {
		return nil, fmt.Errorf("invalid security_deposit: %v", err)
	}

	return &domain.PropertyRates{
		PropertyID:      p.ID,
		NightlyRate:     nightlyRate,
		CleaningFee:     cleaningFee,
		SecurityDeposit: securityDeposit,
	}, nil
}

func parseOptionalDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
