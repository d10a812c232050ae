package confirm_payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	bookingstorage "github.com/AryanRathore04/Builder-mystic-forge/internal/infra/storage/booking"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/service/billing"
	loyaltysvc "github.com/AryanRathore04/Builder-mystic-forge/internal/service/loyalty"
)

type fakeBookingRepo struct {
	booking       *domain.Booking
	confirmations []domain.PaymentConfirmation
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if r.booking == nil || r.booking.ID != id {
		return nil, bookingstorage.ErrBookingNotFound
	}
	copied := *r.booking
	return &copied, nil
}

func (r *fakeBookingRepo) ConfirmPayment(_ context.Context, _ int64, params domain.PaymentConfirmation) error {
	r.confirmations = append(r.confirmations, params)
	return nil
}

type fakeLoyaltyService struct {
	redeemed   []int
	awarded    []float64
	redeemErr  error
	awardValue int
}

func (s *fakeLoyaltyService) Redeem(_ context.Context, _ int64, _ int64, points int) (float64, error) {
	if s.redeemErr != nil {
		return 0, s.redeemErr
	}
	s.redeemed = append(s.redeemed, points)
	return float64(points), nil
}

func (s *fakeLoyaltyService) Award(_ context.Context, _ int64, _ int64, amountSpent float64) (int, error) {
	s.awarded = append(s.awarded, amountSpent)
	return s.awardValue, nil
}

type fakeBillingService struct {
	settled []int64
	result  *billing.SettlementResult
}

func (s *fakeBillingService) Settle(_ context.Context, booking *domain.Booking) (*billing.SettlementResult, error) {
	s.settled = append(s.settled, booking.ID)
	return s.result, nil
}

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:                42,
		CustomerID:        7,
		VendorID:          3,
		ServiceID:         10,
		Status:            domain.StatusPending,
		PaymentStatus:     domain.PaymentPending,
		FinalPrice:        1550,
		LoyaltyPointsUsed: 150,
	}
}

func validRequest() *Request {
	return &Request{
		BookingID:     42,
		UserID:        7,
		PaymentMethod: "card",
		PaymentRef:    "pay_abc123",
	}
}

func newTestUseCase(repo *fakeBookingRepo, loyalty *fakeLoyaltyService, billingSvc *fakeBillingService) *UseCase {
	return NewUseCase(repo, loyalty, billingSvc, &fakeTxManager{}, nopLogger{})
}

// TestExecute тестирует успешное подтверждение оплаты
func TestExecute(t *testing.T) {
	repo := &fakeBookingRepo{booking: pendingBooking()}
	loyalty := &fakeLoyaltyService{awardValue: 1550}
	billingSvc := &fakeBillingService{result: &billing.SettlementResult{
		TransactionRef:   "tx-ref-1",
		CommissionAmount: 341,
		VendorEarnings:   1209,
	}}
	uc := newTestUseCase(repo, loyalty, billingSvc)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.AlreadyPaid)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, string(domain.PaymentPaid), resp.PaymentStatus)
	assert.Equal(t, 341.0, resp.CommissionAmount)
	assert.Equal(t, 1209.0, resp.VendorEarnings)
	assert.Equal(t, 150, resp.LoyaltyPointsUsed)
	assert.Equal(t, 1550, resp.LoyaltyPointsEarned)

	// Баллы списаны, комиссия рассчитана, начисление прошло
	assert.Equal(t, []int{150}, loyalty.redeemed)
	assert.Equal(t, []int64{42}, billingSvc.settled)
	assert.Equal(t, []float64{1550}, loyalty.awarded)

	require.Len(t, repo.confirmations, 1)
	confirmation := repo.confirmations[0]
	assert.Equal(t, "card", confirmation.PaymentMethod)
	assert.Equal(t, "pay_abc123", confirmation.PaymentRef)
	assert.Equal(t, 341.0, confirmation.CommissionAmount)
	assert.Equal(t, 1550, confirmation.LoyaltyPointsEarned)
}

// TestExecute_AlreadyPaid проверяет идемпотентность повторного подтверждения
func TestExecute_AlreadyPaid(t *testing.T) {
	booking := pendingBooking()
	booking.Status = domain.StatusConfirmed
	booking.PaymentStatus = domain.PaymentPaid
	booking.CommissionAmount = 341
	booking.VendorEarnings = 1209

	repo := &fakeBookingRepo{booking: booking}
	loyalty := &fakeLoyaltyService{}
	billingSvc := &fakeBillingService{}
	uc := newTestUseCase(repo, loyalty, billingSvc)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.AlreadyPaid)
	assert.Equal(t, 341.0, resp.CommissionAmount)

	// Повторное подтверждение не трогает леджеры и бронирование
	assert.Empty(t, loyalty.redeemed)
	assert.Empty(t, loyalty.awarded)
	assert.Empty(t, billingSvc.settled)
	assert.Empty(t, repo.confirmations)
}

// TestExecute_NotOwner проверяет запрет подтверждения чужого бронирования
func TestExecute_NotOwner(t *testing.T) {
	repo := &fakeBookingRepo{booking: pendingBooking()}
	uc := newTestUseCase(repo, &fakeLoyaltyService{}, &fakeBillingService{})

	req := validRequest()
	req.UserID = 99

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

// TestExecute_NotFound проверяет обработку несуществующего бронирования
func TestExecute_NotFound(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeLoyaltyService{}, &fakeBillingService{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

// TestExecute_CancelledBooking проверяет отказ для отмененного бронирования
func TestExecute_CancelledBooking(t *testing.T) {
	booking := pendingBooking()
	booking.Status = domain.StatusCancelled

	repo := &fakeBookingRepo{booking: booking}
	uc := newTestUseCase(repo, &fakeLoyaltyService{}, &fakeBillingService{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

// TestExecute_PointsNoLongerAvailable проверяет откат при нехватке баллов
func TestExecute_PointsNoLongerAvailable(t *testing.T) {
	repo := &fakeBookingRepo{booking: pendingBooking()}
	loyalty := &fakeLoyaltyService{redeemErr: loyaltysvc.ErrInsufficientPoints}
	billingSvc := &fakeBillingService{}
	uc := newTestUseCase(repo, loyalty, billingSvc)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInsufficientPoints)

	// Комиссия не рассчитывается, оплата не фиксируется
	assert.Empty(t, billingSvc.settled)
	assert.Empty(t, repo.confirmations)
}

// TestExecute_NoPointsReserved проверяет подтверждение без списания баллов
func TestExecute_NoPointsReserved(t *testing.T) {
	booking := pendingBooking()
	booking.LoyaltyPointsUsed = 0

	repo := &fakeBookingRepo{booking: booking}
	loyalty := &fakeLoyaltyService{awardValue: 1550}
	billingSvc := &fakeBillingService{result: &billing.SettlementResult{
		CommissionAmount: 341,
		VendorEarnings:   1209,
	}}
	uc := newTestUseCase(repo, loyalty, billingSvc)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Empty(t, loyalty.redeemed)
	assert.Equal(t, 0, resp.LoyaltyPointsUsed)
	assert.Equal(t, []int64{42}, billingSvc.settled)
}
