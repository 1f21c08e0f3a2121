package quote_booking

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayfinder/SF-BookingService/internal/domain"
	offerRepo "github.com/stayfinder/SF-BookingService/internal/infra/storage/offer"
	"github.com/stayfinder/SF-BookingService/internal/integrations/propertyservice"
)

type fakeReservationRepo struct {
	reservations []*domain.Reservation
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

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

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
	resRepo := &fakeReservationRepo{}
	offRepo := &fakeOfferRepo{offers: map[string]*domain.Offer{}}
	propClient := &fakePropertyClient{
		avail: &domain.PropertyAvailability{
			PropertyID:    1,
			AvailableFrom: date(2026, 6, 1),
			AvailableTo:   date(2026, 9, 1),
			MinimumStay:   2,
		},
		rates: &domain.PropertyRates{
			PropertyID:      1,
			NightlyRate:     money("150.00"),
			CleaningFee:     money("60.00"),
			SecurityDeposit: money("300.00"),
		},
	}

	uc := NewUseCase(resRepo, offRepo, propClient, nopLogger{})
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
		PropertyID: 1,
		CheckIn:    date(2026, 7, 1),
		CheckOut:   date(2026, 7, 6),
		Guests:     2,
	}
}

func TestExecute_AvailableWithQuote(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.Available)
	assert.Empty(t, resp.UnavailableReason)
	require.NotNil(t, resp.Quote)
	assert.Equal(t, 5, resp.Quote.Nights)
	assert.True(t, resp.Quote.BaseTotal.Equal(money("750.00")))
	assert.True(t, resp.Quote.GrandTotal.Equal(money("1110.00")))
}

func TestExecute_UnavailableReasons(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(e *env, r *Request)
		want   UnavailableReason
	}{
		{
			name:   "stay too short",
			mutate: func(e *env, r *Request) { r.CheckOut = date(2026, 7, 2) },
			want:   ReasonStayTooShort,
		},
		{
			name: "stay too long",
			mutate: func(e *env, r *Request) {
				maxStay := 3
				e.propertyClient.avail.MaximumStay = &maxStay
			},
			want: ReasonStayTooLong,
		},
		{
			name: "outside window",
			mutate: func(e *env, r *Request) {
				r.CheckIn = date(2026, 8, 30)
				r.CheckOut = date(2026, 9, 4)
			},
			want: ReasonOutsideWindow,
		},
		{
			name: "too many guests",
			mutate: func(e *env, r *Request) {
				e.propertyClient.avail.MaxGuests = 4
				r.Guests = 5
			},
			want: ReasonTooManyGuests,
		},
		{
			name: "date conflict",
			mutate: func(e *env, r *Request) {
				e.reservationRepo.reservations = []*domain.Reservation{
					{
						ID:         9,
						PropertyID: 1,
						Status:     domain.StatusPending,
						Interval:   domain.DateInterval{CheckIn: date(2026, 7, 4), CheckOut: date(2026, 7, 10)},
					},
				}
			},
			want: ReasonDateConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			req := validRequest()
			tt.mutate(e, req)

			resp, err := e.uc.Execute(context.Background(), req)
			require.NoError(t, err)

			assert.False(t, resp.Available)
			assert.Equal(t, tt.want, resp.UnavailableReason)
			assert.Nil(t, resp.Quote)
		})
	}
}

func TestExecute_OfferApplied(t *testing.T) {
	e := newEnv()
	e.offerRepo.offers["WELCOME"] = &domain.Offer{
		ID:            2,
		Code:          "WELCOME",
		Type:          domain.OfferFixed,
		DiscountValue: money("100.00"),
		ValidFrom:     date(2026, 1, 1),
		ValidTo:       date(2027, 1, 1),
		IsActive:      true,
	}

	req := validRequest()
	code := "welcome"
	req.OfferCode = &code

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.Available)
	assert.True(t, resp.OfferApplied)
	require.NotNil(t, resp.Quote)
	assert.True(t, resp.Quote.DiscountAmount.Equal(money("100.00")))
	assert.True(t, resp.Quote.GrandTotal.Equal(money("1010.00")))
}

func TestExecute_UnknownOfferReportsReason(t *testing.T) {
	e := newEnv()

	req := validRequest()
	code := "MISSING"
	req.OfferCode = &code

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.Available)
	assert.False(t, resp.OfferApplied)
	assert.Equal(t, string(domain.OfferRejectNotFound), resp.OfferRejectReason)
	assert.True(t, resp.Quote.DiscountAmount.Equal(decimal.Zero))
}

func TestExecute_PropertyErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		e := newEnv()
		e.propertyClient.err = propertyservice.ErrPropertyNotFound

		_, err := e.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})

	t.Run("not bookable", func(t *testing.T) {
		e := newEnv()
		e.propertyClient.err = propertyservice.ErrPropertyNotBookable

		_, err := e.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrPropertyNotBookable)
	})
}

func TestExecute_InvalidInput(t *testing.T) {
	t.Run("invalid interval", func(t *testing.T) {
		e := newEnv()
		req := validRequest()
		req.CheckOut = req.CheckIn

		_, err := e.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("invalid guests", func(t *testing.T) {
		e := newEnv()
		req := validRequest()
		req.Guests = 0

		_, err := e.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidGuestCount)
	})
}
