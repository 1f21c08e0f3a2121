package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayfinder/SF-BookingService/internal/domain"
	offerRepo "github.com/stayfinder/SF-BookingService/internal/infra/storage/offer"
	reservationRepo "github.com/stayfinder/SF-BookingService/internal/infra/storage/reservation"
)

// --- фейки зависимостей ---

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	byKey        map[string]*domain.Reservation

	nextID int64
	// ошибки Create по номеру попытки (1-based), nil = успех
	createErrs []error
	created    []*domain.Reservation

	// raceWinner - бронирование конкурентного запроса: появляется в byKey
	// в момент, когда Create возвращает ErrDuplicateIdempotencyKey
	raceWinner *domain.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{
		byKey:  map[string]*domain.Reservation{},
		nextID: 1,
	}
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	attempt := len(f.created)
	// Копия: use case переиспользует одну структуру между попытками
	snapshot := *res
	f.created = append(f.created, &snapshot)
	if attempt < len(f.createErrs) && f.createErrs[attempt] != nil {
		err := f.createErrs[attempt]
		if errors.Is(err, reservationRepo.ErrDuplicateIdempotencyKey) && f.raceWinner != nil {
			f.byKey[res.IdempotencyKey] = f.raceWinner
		}
		return nil, err
	}

	stored := *res
	stored.ID = f.nextID
	f.nextID++
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	return &stored, nil
}

func (f *fakeReservationRepo) GetByIdempotencyKey(_ context.Context, key string) (*domain.Reservation, error) {
	if res, ok := f.byKey[key]; ok {
		return res, nil
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (f *fakeReservationRepo) GetByPropertyWithFilter(_ context.Context, filter domain.PropertyReservationsFilter) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, r := range f.reservations {
		if r.PropertyID == filter.PropertyID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeOfferRepo struct {
	offers map[string]*domain.Offer
}

func (f *fakeOfferRepo) GetByCode(_ context.Context, code string) (*domain.Offer, error) {
	if o, ok := f.offers[code]; ok {
		return o, nil
	}
	return nil, offerRepo.ErrOfferNotFound
}

type fakePropertyClient struct {
	avail *domain.PropertyAvailability
	rates *domain.PropertyRates
	err   error
}

func (f *fakePropertyClient) GetBookingSnapshot(_ context.Context, _ int64) (*domain.PropertyAvailability, *domain.PropertyRates, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.avail, f.rates, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- окружение тестов ---

const testIdempotencyKey = "7d9f9a44-9c3e-4d0b-9a2f-3f8b1c2d4e5f"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type env struct {
	uc              *UseCase
	reservationRepo *fakeReservationRepo
	offerRepo       *fakeOfferRepo
	propertyClient  *fakePropertyClient
}

func newEnv() *env {
	maxStay := 30
	resRepo := newFakeReservationRepo()
	offRepo := &fakeOfferRepo{offers: map[string]*domain.Offer{}}
	propClient := &fakePropertyClient{
		avail: &domain.PropertyAvailability{
			PropertyID:    1,
			AvailableFrom: date(2026, 6, 1),
			AvailableTo:   date(2026, 9, 1),
			MinimumStay:   2,
			MaximumStay:   &maxStay,
		},
		rates: &domain.PropertyRates{
			PropertyID:      1,
			NightlyRate:     money("100.00"),
			CleaningFee:     money("50.00"),
			SecurityDeposit: money("200.00"),
		},
	}

	uc := NewUseCase(resRepo, offRepo, propClient, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: date(2026, 6, 15)}

	return &env{
		uc:              uc,
		reservationRepo: resRepo,
		offerRepo:       offRepo,
		propertyClient:  propClient,
	}
}

func validRequest() *Request {
	return &Request{
		UserID:         7,
		PropertyID:     1,
		CheckIn:        date(2026, 7, 1),
		CheckOut:       date(2026, 7, 8),
		Guests:         2,
		IdempotencyKey: testIdempotencyKey,
	}
}

// --- тесты ---

func TestExecute_Success(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 7, resp.Nights)
	assert.True(t, resp.BaseTotal.Equal(money("700.00")))
	assert.True(t, resp.GrandTotal.Equal(money("950.00")))
	assert.False(t, resp.OfferApplied)
	assert.False(t, resp.AlreadyExisted)
	assert.Regexp(t, `^BK-[23456789A-HJ-NP-Z]{10}$`, resp.BookingReference)
}

func TestExecute_DateConflict(t *testing.T) {
	e := newEnv()
	e.reservationRepo.reservations = []*domain.Reservation{
		{
			ID:         5,
			PropertyID: 1,
			Status:     domain.StatusConfirmed,
			Interval:   domain.DateInterval{CheckIn: date(2026, 7, 5), CheckOut: date(2026, 7, 12)},
		},
	}

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDateConflict)
}

func TestExecute_CancelledReservationDoesNotConflict(t *testing.T) {
	e := newEnv()
	e.reservationRepo.reservations = []*domain.Reservation{
		{
			ID:         5,
			PropertyID: 1,
			Status:     domain.StatusCancelled,
			Interval:   domain.DateInterval{CheckIn: date(2026, 7, 1), CheckOut: date(2026, 7, 8)},
		},
	}

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_StayTooShort(t *testing.T) {
	e := newEnv()

	req := validRequest()
	req.CheckOut = date(2026, 7, 2)

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStayTooShort)
}

func TestExecute_OutsideAvailabilityWindow(t *testing.T) {
	e := newEnv()

	req := validRequest()
	req.CheckIn = date(2026, 8, 29)
	req.CheckOut = date(2026, 9, 3)

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideAvailabilityWindow)
}

func TestExecute_OfferApplied(t *testing.T) {
	e := newEnv()
	e.offerRepo.offers["SUMMER20"] = &domain.Offer{
		ID:            3,
		Code:          "SUMMER20",
		Type:          domain.OfferPercentage,
		DiscountValue: money("20"),
		ValidFrom:     date(2026, 1, 1),
		ValidTo:       date(2027, 1, 1),
		IsActive:      true,
	}

	req := validRequest()
	code := "summer20" // регистр кода не важен
	req.OfferCode = &code

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.OfferApplied)
	assert.Empty(t, resp.OfferRejectReason)
	assert.True(t, resp.DiscountAmount.Equal(money("140.00")))
	assert.True(t, resp.GrandTotal.Equal(money("810.00")))

	require.Len(t, e.reservationRepo.created, 1)
	require.NotNil(t, e.reservationRepo.created[0].OfferID)
	assert.Equal(t, int64(3), *e.reservationRepo.created[0].OfferID)
}

func TestExecute_UnknownOfferDoesNotBlockBooking(t *testing.T) {
	e := newEnv()

	req := validRequest()
	code := "NOPE"
	req.OfferCode = &code

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, resp.OfferApplied)
	assert.Equal(t, string(domain.OfferRejectNotFound), resp.OfferRejectReason)
	assert.True(t, resp.DiscountAmount.Equal(decimal.Zero))
	assert.True(t, resp.GrandTotal.Equal(money("950.00")))

	require.Len(t, e.reservationRepo.created, 1)
	assert.Nil(t, e.reservationRepo.created[0].OfferID)
}

func TestExecute_ExpiredOfferReportsReason(t *testing.T) {
	e := newEnv()
	e.offerRepo.offers["OLD"] = &domain.Offer{
		ID:            4,
		Code:          "OLD",
		Type:          domain.OfferFixed,
		DiscountValue: money("50.00"),
		ValidFrom:     date(2025, 1, 1),
		ValidTo:       date(2025, 12, 31),
		IsActive:      true,
	}

	req := validRequest()
	code := "OLD"
	req.OfferCode = &code

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, resp.OfferApplied)
	assert.Equal(t, string(domain.OfferRejectExpired), resp.OfferRejectReason)
	assert.True(t, resp.GrandTotal.Equal(money("950.00")))
}

func TestExecute_IdempotentReplay(t *testing.T) {
	e := newEnv()

	first, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Повтор с тем же ключом возвращает существующее бронирование
	e.reservationRepo.byKey[testIdempotencyKey] = &domain.Reservation{
		ID:               first.ID,
		BookingReference: first.BookingReference,
		PropertyID:       1,
		UserID:           7,
		Status:           domain.StatusPending,
		Interval:         domain.DateInterval{CheckIn: date(2026, 7, 1), CheckOut: date(2026, 7, 8)},
		GrandTotal:       money("950.00"),
		IdempotencyKey:   testIdempotencyKey,
	}

	second, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, second.AlreadyExisted)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.BookingReference, second.BookingReference)
	// Вторая вставка не выполнялась
	assert.Len(t, e.reservationRepo.created, 1)
}

func TestExecute_ReferenceCollisionRetries(t *testing.T) {
	e := newEnv()
	e.reservationRepo.createErrs = []error{reservationRepo.ErrDuplicateReference, nil}

	resp, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, e.reservationRepo.created, 2)
	assert.NotEqual(t,
		e.reservationRepo.created[0].BookingReference,
		e.reservationRepo.created[1].BookingReference)
	assert.NotEmpty(t, resp.BookingReference)
}

func TestExecute_ReferenceAttemptsExhausted(t *testing.T) {
	e := newEnv()
	e.reservationRepo.createErrs = []error{
		reservationRepo.ErrDuplicateReference,
		reservationRepo.ErrDuplicateReference,
		reservationRepo.ErrDuplicateReference,
	}

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Len(t, e.reservationRepo.created, domain.MaxReferenceAttempts)
}

func TestExecute_ExclusionConstraintMapsToDateConflict(t *testing.T) {
	e := newEnv()
	e.reservationRepo.createErrs = []error{reservationRepo.ErrDateConflict}

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDateConflict)
}

func TestExecute_IdempotencyKeyRaceReturnsExistingBooking(t *testing.T) {
	e := newEnv()

	// Конкурентный запрос с тем же ключом вставил между upfront-проверкой
	// и нашей вставкой: клиент получает его бронирование, а не ошибку
	winner := &domain.Reservation{
		ID:               42,
		BookingReference: "BK-RACEW23456",
		PropertyID:       1,
		UserID:           7,
		Status:           domain.StatusPending,
		Interval:         domain.DateInterval{CheckIn: date(2026, 7, 1), CheckOut: date(2026, 7, 8)},
		GrandTotal:       money("950.00"),
		IdempotencyKey:   testIdempotencyKey,
	}
	e.reservationRepo.createErrs = []error{reservationRepo.ErrDuplicateIdempotencyKey}
	e.reservationRepo.raceWinner = winner

	resp, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.AlreadyExisted)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "BK-RACEW23456", resp.BookingReference)
	// Вставка не повторялась после проигрыша гонки
	assert.Len(t, e.reservationRepo.created, 1)
}

func TestExecute_TooManyGuestsForProperty(t *testing.T) {
	e := newEnv()
	e.propertyClient.avail.MaxGuests = 4

	req := validRequest()
	req.Guests = 5

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooManyGuests)
	assert.Empty(t, e.reservationRepo.created)

	// Вместимость 0 - ограничение не задано
	e.propertyClient.avail.MaxGuests = 0
	_, err = e.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{
			name:    "non-positive user",
			mutate:  func(r *Request) { r.UserID = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "non-positive property",
			mutate:  func(r *Request) { r.PropertyID = -1 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero guests",
			mutate:  func(r *Request) { r.Guests = 0 },
			wantErr: ErrInvalidGuestCount,
		},
		{
			name:    "too many guests",
			mutate:  func(r *Request) { r.Guests = domain.MaxGuests + 1 },
			wantErr: ErrInvalidGuestCount,
		},
		{
			name:    "check-out before check-in",
			mutate:  func(r *Request) { r.CheckIn, r.CheckOut = r.CheckOut, r.CheckIn },
			wantErr: ErrInvalidInterval,
		},
		{
			name:    "equal dates",
			mutate:  func(r *Request) { r.CheckOut = r.CheckIn },
			wantErr: ErrInvalidInterval,
		},
		{
			name:    "missing idempotency key",
			mutate:  func(r *Request) { r.IdempotencyKey = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "malformed idempotency key",
			mutate:  func(r *Request) { r.IdempotencyKey = "not-a-uuid" },
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			req := validRequest()
			tt.mutate(req)

			_, err := e.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, e.reservationRepo.created)
		})
	}
}
