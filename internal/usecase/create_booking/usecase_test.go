package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/integrations/vendorservice"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/ptr"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/types"
)

type fakeBookingRepo struct {
	existing []*domain.Booking
	created  []*domain.Booking
	nextID   int64
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.nextID++
	created := *booking
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.created = append(r.created, &created)
	return &created, nil
}

func (r *fakeBookingRepo) GetByVendorWithFilter(_ context.Context, _ domain.VendorBookingsFilter) ([]*domain.Booking, error) {
	return r.existing, nil
}

type fakeVendorClient struct {
	vendor  *vendorservice.Vendor
	service *vendorservice.Service
}

func (c *fakeVendorClient) GetVendor(_ context.Context, vendorID int64) (*vendorservice.Vendor, error) {
	if c.vendor == nil || c.vendor.ID != vendorID {
		return nil, vendorservice.ErrVendorNotFound
	}
	return c.vendor, nil
}

func (c *fakeVendorClient) GetService(_ context.Context, _, serviceID int64) (*vendorservice.Service, error) {
	if c.service == nil || c.service.ID != serviceID {
		return nil, vendorservice.ErrServiceNotFound
	}
	return c.service, nil
}

type fakeLoyaltyService struct {
	available int
}

func (s *fakeLoyaltyService) AvailablePoints(_ context.Context, _ int64) (int, error) {
	return s.available, nil
}

func (s *fakeLoyaltyService) RedemptionValue(points int) float64 {
	return float64(points)
}

func (s *fakeLoyaltyService) MaxRedeemablePoints(subtotal float64) int {
	return int(subtotal)
}

func (s *fakeLoyaltyService) MinRedemptionPoints() int {
	return 100
}

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f *fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 17 июня 2025 - вторник
var testDate = time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC)

func openVendor() *vendorservice.Vendor {
	day := vendorservice.DaySchedule{
		IsOpen:     true,
		OpenTime:   ptr.Ptr("09:00"),
		CloseTime:  ptr.Ptr("17:00"),
		BreakStart: ptr.Ptr("13:00"),
		BreakEnd:   ptr.Ptr("14:00"),
	}
	return &vendorservice.Vendor{
		ID:   3,
		Name: "Лотос СПА",
		OperatingHours: vendorservice.OperatingHours{
			Tuesday: day,
		},
	}
}

func catalogService() *vendorservice.Service {
	return &vendorservice.Service{
		ID:              10,
		VendorID:        3,
		Name:            "Спа-массаж",
		Price:           1000,
		DurationMinutes: 60,
		AddOns: []vendorservice.AddOn{
			{ID: 101, Name: "Ароматерапия", Price: 500, DurationMinutes: 30},
			{ID: 102, Name: "Горячие камни", Price: 200, DurationMinutes: 15},
		},
	}
}

func validRequest() *Request {
	return &Request{
		CustomerID:      7,
		VendorID:        3,
		ServiceID:       10,
		AddOnServiceIDs: []int64{101, 102},
		Date:            testDate,
		StartTime:       types.TimeString("10:00"),
	}
}

func newTestUseCase(repo *fakeBookingRepo, loyalty *fakeLoyaltyService) *UseCase {
	vendors := &fakeVendorClient{vendor: openVendor(), service: catalogService()}
	uc := NewUseCase(repo, vendors, loyalty, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{t: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
	return uc
}

// TestExecute тестирует создание бронирования с полной разбивкой цены
func TestExecute(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeLoyaltyService{available: 500})

	req := validRequest()
	req.LoyaltyPoints = 150

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, string(domain.PaymentPending), resp.PaymentStatus)
	assert.Equal(t, 1000.0, resp.BasePrice)
	assert.Equal(t, 700.0, resp.AddOnPrice)
	assert.Equal(t, 150.0, resp.DiscountAmount)
	assert.Equal(t, 1550.0, resp.FinalPrice)
	assert.Equal(t, 105, resp.DurationMinutes)
	assert.Equal(t, 150, resp.LoyaltyPointsUsed)

	require.Len(t, repo.created, 1)
	booking := repo.created[0]
	// Комиссия заполняется только при подтверждении оплаты
	assert.Equal(t, 0.0, booking.CommissionAmount)
	assert.Equal(t, 0.0, booking.VendorEarnings)
	assert.Equal(t, 150, booking.LoyaltyPointsUsed)
}

// TestExecute_ClampsLoyaltyToAvailable проверяет ограничение списания
// доступным остатком баллов
func TestExecute_ClampsLoyaltyToAvailable(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeLoyaltyService{available: 120})

	req := validRequest()
	req.LoyaltyPoints = 400

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 120, resp.LoyaltyPointsUsed)
	assert.Equal(t, 120.0, resp.DiscountAmount)
	assert.Equal(t, 1580.0, resp.FinalPrice)
}

// TestExecute_LoyaltyErrors тестирует отказы по баллам лояльности
func TestExecute_LoyaltyErrors(t *testing.T) {
	tests := []struct {
		name        string
		requested   int
		available   int
		expectedErr error
	}{
		{
			name:        "below minimum request",
			requested:   50,
			available:   500,
			expectedErr: ErrBelowMinimumRedemption,
		},
		{
			name:        "clamped below minimum",
			requested:   200,
			available:   80,
			expectedErr: ErrInsufficientPoints,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBookingRepo{}
			uc := newTestUseCase(repo, &fakeLoyaltyService{available: tt.available})

			req := validRequest()
			req.LoyaltyPoints = tt.requested

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Empty(t, repo.created)
		})
	}
}

// TestExecute_SlotTaken проверяет отказ при занятом слоте
func TestExecute_SlotTaken(t *testing.T) {
	repo := &fakeBookingRepo{existing: []*domain.Booking{
		{ID: 1, Status: domain.StatusConfirmed, StartTime: types.TimeString("10:00")},
	}}
	uc := newTestUseCase(repo, &fakeLoyaltyService{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, repo.created)
}

// TestExecute_CancelledBookingDoesNotBlock проверяет, что отмененное
// бронирование не держит слот
func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	repo := &fakeBookingRepo{existing: []*domain.Booking{
		{ID: 1, Status: domain.StatusCancelled, StartTime: types.TimeString("10:00")},
	}}
	uc := newTestUseCase(repo, &fakeLoyaltyService{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
	assert.Len(t, repo.created, 1)
}

// TestExecute_VendorClosed проверяет отказ для выходного дня
func TestExecute_VendorClosed(t *testing.T) {
	vendors := &fakeVendorClient{vendor: openVendor(), service: catalogService()}
	vendors.vendor.OperatingHours.Tuesday = vendorservice.DaySchedule{IsOpen: false}

	uc := NewUseCase(&fakeBookingRepo{}, vendors, &fakeLoyaltyService{}, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{t: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrVendorClosed)
}

// TestExecute_PastDate проверяет отказ для прошедшей даты
func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeLoyaltyService{})

	req := validRequest()
	req.Date = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

// TestExecute_ServiceWithAddOnsDoesNotFit проверяет, что длительность
// с дополнениями учитывается при проверке слота
func TestExecute_ServiceWithAddOnsDoesNotFit(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeLoyaltyService{})

	req := validRequest()
	// 105 минут с 16:30 не помещаются до 17:00
	req.StartTime = types.TimeString("16:30")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

// TestExecute_PromoDiscountApplied проверяет учет скидки по промокоду
func TestExecute_PromoDiscountApplied(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeLoyaltyService{})

	req := validRequest()
	req.PromoCode = ptr.Ptr("SUMMER10")
	req.PromoDiscount = 170

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 170.0, resp.DiscountAmount)
	assert.Equal(t, 1530.0, resp.FinalPrice)
	require.NotNil(t, resp.PromoCode)
	assert.Equal(t, "SUMMER10", *resp.PromoCode)
}
