package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	bookingstorage "github.com/AryanRathore04/Builder-mystic-forge/internal/infra/storage/booking"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/integrations/vendorservice"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/types"
)

type fakeBookingRepo struct {
	booking *domain.Booking
	cancels []cancelCall
}

type cancelCall struct {
	id            int64
	reason        string
	tokens        int
	paymentStatus domain.PaymentStatus
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if r.booking == nil || r.booking.ID != id {
		return nil, bookingstorage.ErrBookingNotFound
	}
	copied := *r.booking
	return &copied, nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string, tokens int, paymentStatus domain.PaymentStatus) error {
	r.cancels = append(r.cancels, cancelCall{id: id, reason: reason, tokens: tokens, paymentStatus: paymentStatus})
	return nil
}

type fakeBillingService struct {
	refunds []float64
}

func (s *fakeBillingService) Refund(_ context.Context, _ *domain.Booking, refundAmount float64, _ string) (string, error) {
	s.refunds = append(s.refunds, refundAmount)
	return "refund-ref-1", nil
}

type fakeVendorClient struct {
	vendor *vendorservice.Vendor
}

func (c *fakeVendorClient) GetVendor(_ context.Context, vendorID int64) (*vendorservice.Vendor, error) {
	if c.vendor == nil || c.vendor.ID != vendorID {
		return nil, vendorservice.ErrVendorNotFound
	}
	return c.vendor, nil
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

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:            42,
		CustomerID:    7,
		VendorID:      3,
		ServiceID:     10,
		BookingDate:   time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC),
		StartTime:     types.TimeString("14:00"),
		Status:        domain.StatusConfirmed,
		PaymentStatus: domain.PaymentPaid,
		FinalPrice:    1550,
	}
}

func newTestUseCase(repo *fakeBookingRepo, billingSvc *fakeBillingService, vendors *fakeVendorClient) *UseCase {
	uc := NewUseCase(repo, billingSvc, vendors, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{t: testNow}
	return uc
}

// TestCancellationTokens тестирует политику штрафных токенов
func TestCancellationTokens(t *testing.T) {
	tests := []struct {
		name        string
		cancelledBy string
		startsAt    time.Time
		expected    int
	}{
		{
			name:        "customer cancels one hour before start",
			cancelledBy: CancelledByCustomer,
			startsAt:    testNow.Add(1 * time.Hour),
			expected:    domain.TokensLateCancel,
		},
		{
			name:        "customer cancels twelve hours before start",
			cancelledBy: CancelledByCustomer,
			startsAt:    testNow.Add(12 * time.Hour),
			expected:    domain.TokensNearCancel,
		},
		{
			name:        "customer cancels two days before start",
			cancelledBy: CancelledByCustomer,
			startsAt:    testNow.Add(48 * time.Hour),
			expected:    0,
		},
		{
			name:        "customer cancels exactly at the near threshold",
			cancelledBy: CancelledByCustomer,
			startsAt:    testNow.Add(24 * time.Hour),
			expected:    0,
		},
		{
			name:        "vendor cancellation is free",
			cancelledBy: CancelledByVendor,
			startsAt:    testNow.Add(30 * time.Minute),
			expected:    0,
		},
		{
			name:        "admin cancellation is free",
			cancelledBy: CancelledByAdmin,
			startsAt:    testNow.Add(30 * time.Minute),
			expected:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cancellationTokens(tt.cancelledBy, tt.startsAt, testNow))
		})
	}
}

// TestExecute_PaidBookingRefunded проверяет возврат средств при отмене
// оплаченного бронирования
func TestExecute_PaidBookingRefunded(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	billingSvc := &fakeBillingService{}
	uc := newTestUseCase(repo, billingSvc, &fakeVendorClient{})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:   42,
		UserID:      7,
		Reason:      "plans changed",
		CancelledBy: CancelledByCustomer,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, string(domain.PaymentRefunded), resp.PaymentStatus)
	require.NotNil(t, resp.RefundTransactionRef)
	assert.Equal(t, "refund-ref-1", *resp.RefundTransactionRef)

	assert.Equal(t, []float64{1550}, billingSvc.refunds)

	require.Len(t, repo.cancels, 1)
	call := repo.cancels[0]
	assert.Equal(t, "plans changed", call.reason)
	assert.Equal(t, domain.PaymentRefunded, call.paymentStatus)
	// Отмена за двое суток до начала - без штрафа
	assert.Equal(t, 0, call.tokens)
}

// TestExecute_LateCancelTokens проверяет штраф при отмене незадолго до начала
func TestExecute_LateCancelTokens(t *testing.T) {
	booking := confirmedBooking()
	booking.BookingDate = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	booking.StartTime = types.TimeString("13:00") // через час

	repo := &fakeBookingRepo{booking: booking}
	uc := newTestUseCase(repo, &fakeBillingService{}, &fakeVendorClient{})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:   42,
		UserID:      7,
		Reason:      "emergency",
		CancelledBy: CancelledByCustomer,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TokensLateCancel, resp.CancellationTokens)
}

// TestExecute_UnpaidBookingNoRefund проверяет отмену неоплаченного бронирования
func TestExecute_UnpaidBookingNoRefund(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusPending
	booking.PaymentStatus = domain.PaymentPending

	repo := &fakeBookingRepo{booking: booking}
	billingSvc := &fakeBillingService{}
	uc := newTestUseCase(repo, billingSvc, &fakeVendorClient{})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:   42,
		UserID:      7,
		CancelledBy: CancelledByCustomer,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.PaymentPending), resp.PaymentStatus)
	assert.Nil(t, resp.RefundTransactionRef)
	assert.Empty(t, billingSvc.refunds)
}

// TestExecute_VendorManagerCancels проверяет отмену менеджером салона
func TestExecute_VendorManagerCancels(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	vendors := &fakeVendorClient{vendor: &vendorservice.Vendor{ID: 3, ManagerIDs: []int64{55}}}
	uc := newTestUseCase(repo, &fakeBillingService{}, vendors)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:   42,
		UserID:      55,
		Reason:      "master is sick",
		CancelledBy: CancelledByVendor,
	})
	require.NoError(t, err)

	// Отмена салоном без штрафа для клиента
	assert.Equal(t, 0, resp.CancellationTokens)
}

// TestExecute_PermissionDenied тестирует отказ в правах на отмену
func TestExecute_PermissionDenied(t *testing.T) {
	tests := []struct {
		name        string
		userID      int64
		cancelledBy string
	}{
		{
			name:        "stranger cancels as customer",
			userID:      99,
			cancelledBy: CancelledByCustomer,
		},
		{
			name:        "non-manager cancels as vendor",
			userID:      99,
			cancelledBy: CancelledByVendor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBookingRepo{booking: confirmedBooking()}
			vendors := &fakeVendorClient{vendor: &vendorservice.Vendor{ID: 3, ManagerIDs: []int64{55}}}
			uc := newTestUseCase(repo, &fakeBillingService{}, vendors)

			_, err := uc.Execute(context.Background(), &Request{
				BookingID:   42,
				UserID:      tt.userID,
				CancelledBy: tt.cancelledBy,
			})
			assert.ErrorIs(t, err, ErrPermissionDenied)
			assert.Empty(t, repo.cancels)
		})
	}
}

// TestExecute_CannotCancelTerminal проверяет отказ для завершенных статусов
func TestExecute_CannotCancelTerminal(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow, domain.StatusInProgress} {
		t.Run(string(status), func(t *testing.T) {
			booking := confirmedBooking()
			booking.Status = status

			repo := &fakeBookingRepo{booking: booking}
			uc := newTestUseCase(repo, &fakeBillingService{}, &fakeVendorClient{})

			_, err := uc.Execute(context.Background(), &Request{
				BookingID:   42,
				UserID:      7,
				CancelledBy: CancelledByCustomer,
			})
			assert.ErrorIs(t, err, ErrCannotCancel)
		})
	}
}

// TestValidateRequest тестирует валидацию входных данных
func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr bool
	}{
		{
			name: "valid customer cancellation",
			req:  &Request{BookingID: 1, UserID: 1, CancelledBy: CancelledByCustomer},
		},
		{
			name:    "unknown initiator",
			req:     &Request{BookingID: 1, UserID: 1, CancelledBy: "system"},
			wantErr: true,
		},
		{
			name:    "missing booking id",
			req:     &Request{UserID: 1, CancelledBy: CancelledByCustomer},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequest(tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}
