package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/ptr"
)

type fakeTxRepo struct {
	created     []*domain.Transaction
	existing    map[int64]domain.TransactionType
	byVendor    []*domain.Transaction
	commissions []*domain.Transaction
	nextID      int64
}

func newFakeTxRepo() *fakeTxRepo {
	return &fakeTxRepo{existing: make(map[int64]domain.TransactionType)}
}

func (r *fakeTxRepo) Create(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	r.nextID++
	created := *tx
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	r.created = append(r.created, &created)
	return &created, nil
}

func (r *fakeTxRepo) ExistsForBooking(_ context.Context, bookingID int64, txType domain.TransactionType) (bool, error) {
	existingType, ok := r.existing[bookingID]
	return ok && existingType == txType, nil
}

func (r *fakeTxRepo) GetByVendorID(_ context.Context, _ int64, _ []domain.TransactionType) ([]*domain.Transaction, error) {
	return r.byVendor, nil
}

func (r *fakeTxRepo) GetCommissions(_ context.Context, _, _ *time.Time) ([]*domain.Transaction, error) {
	return r.commissions, nil
}

type fakeBalanceRepo struct {
	earnings map[int64]float64
	payouts  map[int64]float64
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{
		earnings: make(map[int64]float64),
		payouts:  make(map[int64]float64),
	}
}

func (r *fakeBalanceRepo) AddEarnings(_ context.Context, vendorID int64, delta float64) error {
	r.earnings[vendorID] += delta
	return nil
}

func (r *fakeBalanceRepo) DeductPayout(_ context.Context, vendorID int64, amount float64) error {
	r.payouts[vendorID] += amount
	return nil
}

func (r *fakeBalanceRepo) Get(_ context.Context, vendorID int64) (*domain.VendorBalance, error) {
	return &domain.VendorBalance{VendorID: vendorID, TotalEarnings: r.earnings[vendorID]}, nil
}

type fixedTime struct{ t time.Time }

func (f *fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(txRepo *fakeTxRepo, balanceRepo *fakeBalanceRepo) *Service {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	return NewService(txRepo, balanceRepo, 0.22, &fixedTime{t: now}, nopLogger{})
}

// TestSettle тестирует расчет комиссии по оплаченному бронированию
func TestSettle(t *testing.T) {
	txRepo := newFakeTxRepo()
	balanceRepo := newFakeBalanceRepo()
	svc := newTestService(txRepo, balanceRepo)

	booking := &domain.Booking{
		ID:         42,
		CustomerID: 7,
		VendorID:   3,
		FinalPrice: 1550,
	}

	result, err := svc.Settle(context.Background(), booking)
	require.NoError(t, err)

	assert.Equal(t, 341.0, result.CommissionAmount)
	assert.Equal(t, 1209.0, result.VendorEarnings)
	assert.NotEmpty(t, result.TransactionRef)

	// Комиссия + заработок салона = итоговая цена
	assert.Equal(t, booking.FinalPrice, result.CommissionAmount+result.VendorEarnings)

	require.Len(t, txRepo.created, 1)
	tx := txRepo.created[0]
	assert.Equal(t, domain.TransactionCommission, tx.Type)
	assert.Equal(t, domain.TransactionCompleted, tx.Status)
	assert.Equal(t, booking.FinalPrice, tx.Amount)
	require.NotNil(t, tx.CommissionAmount)
	assert.Equal(t, 341.0, *tx.CommissionAmount)

	assert.Equal(t, 1209.0, balanceRepo.earnings[booking.VendorID])
}

// TestSettle_AlreadySettled проверяет защиту от повторного расчета
func TestSettle_AlreadySettled(t *testing.T) {
	txRepo := newFakeTxRepo()
	txRepo.existing[42] = domain.TransactionCommission
	balanceRepo := newFakeBalanceRepo()
	svc := newTestService(txRepo, balanceRepo)

	booking := &domain.Booking{ID: 42, VendorID: 3, FinalPrice: 1550}

	_, err := svc.Settle(context.Background(), booking)
	assert.ErrorIs(t, err, ErrAlreadySettled)
	assert.Empty(t, txRepo.created)
	assert.Empty(t, balanceRepo.earnings)
}

// TestSettle_ZeroFinalPrice проверяет расчет при полностью скидочном заказе
func TestSettle_ZeroFinalPrice(t *testing.T) {
	txRepo := newFakeTxRepo()
	balanceRepo := newFakeBalanceRepo()
	svc := newTestService(txRepo, balanceRepo)

	booking := &domain.Booking{ID: 1, VendorID: 3, FinalPrice: 0}

	result, err := svc.Settle(context.Background(), booking)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.CommissionAmount)
	assert.Equal(t, 0.0, result.VendorEarnings)
}

// TestRefund тестирует возврат средств с разделением на комиссию и заработок
func TestRefund(t *testing.T) {
	txRepo := newFakeTxRepo()
	balanceRepo := newFakeBalanceRepo()
	svc := newTestService(txRepo, balanceRepo)

	booking := &domain.Booking{ID: 42, CustomerID: 7, VendorID: 3, FinalPrice: 1000}

	ref, err := svc.Refund(context.Background(), booking, 1000, "customer cancellation")
	require.NoError(t, err)
	assert.NotEmpty(t, ref)

	require.Len(t, txRepo.created, 1)
	tx := txRepo.created[0]
	assert.Equal(t, domain.TransactionRefund, tx.Type)
	assert.Equal(t, -1000.0, tx.Amount)
	require.NotNil(t, tx.CommissionAmount)
	assert.Equal(t, -220.0, *tx.CommissionAmount)

	// С салона списывается только его часть возврата
	assert.Equal(t, -780.0, balanceRepo.earnings[booking.VendorID])
}

// TestRefund_InvalidAmount проверяет отказ при неположительной сумме
func TestRefund_InvalidAmount(t *testing.T) {
	svc := newTestService(newFakeTxRepo(), newFakeBalanceRepo())
	booking := &domain.Booking{ID: 42, VendorID: 3}

	_, err := svc.Refund(context.Background(), booking, 0, "reason")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Refund(context.Background(), booking, -50, "reason")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

// TestPayout тестирует регистрацию выплаты салону
func TestPayout(t *testing.T) {
	txRepo := newFakeTxRepo()
	balanceRepo := newFakeBalanceRepo()
	svc := newTestService(txRepo, balanceRepo)

	ref, err := svc.Payout(context.Background(), 3, 500)
	require.NoError(t, err)
	assert.NotEmpty(t, ref)

	require.Len(t, txRepo.created, 1)
	tx := txRepo.created[0]
	assert.Equal(t, domain.TransactionPayout, tx.Type)
	assert.Equal(t, domain.TransactionPending, tx.Status)
	assert.Equal(t, -500.0, tx.Amount)

	assert.Equal(t, 500.0, balanceRepo.payouts[int64(3)])
}

// TestPayout_InvalidAmount проверяет отказ при неположительной сумме
func TestPayout_InvalidAmount(t *testing.T) {
	svc := newTestService(newFakeTxRepo(), newFakeBalanceRepo())

	_, err := svc.Payout(context.Background(), 3, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

// TestVendorEarnings тестирует сводку заработка по леджеру
func TestVendorEarnings(t *testing.T) {
	txRepo := newFakeTxRepo()
	txRepo.byVendor = []*domain.Transaction{
		{Type: domain.TransactionCommission, Amount: 1550, CommissionAmount: ptr.Ptr(341.0)},
		{Type: domain.TransactionCommission, Amount: 1000, CommissionAmount: ptr.Ptr(220.0)},
		{Type: domain.TransactionPayout, Amount: -500},
		{Type: domain.TransactionRefund, Amount: -1000, CommissionAmount: ptr.Ptr(-220.0)},
	}
	svc := newTestService(txRepo, newFakeBalanceRepo())

	summary, err := svc.VendorEarnings(context.Background(), 3)
	require.NoError(t, err)

	// 1209 + 780 - 780 = 1209
	assert.Equal(t, 1209.0, summary.TotalEarnings)
	assert.Equal(t, 500.0, summary.TotalPayouts)
	assert.Equal(t, 709.0, summary.PendingEarnings)
	assert.Len(t, summary.Transactions, 4)
}

// TestVendorEarnings_PendingNeverNegative проверяет, что сумма к выплате не
// уходит в минус при выплатах сверх заработка
func TestVendorEarnings_PendingNeverNegative(t *testing.T) {
	txRepo := newFakeTxRepo()
	txRepo.byVendor = []*domain.Transaction{
		{Type: domain.TransactionCommission, Amount: 100, CommissionAmount: ptr.Ptr(22.0)},
		{Type: domain.TransactionPayout, Amount: -500},
	}
	svc := newTestService(txRepo, newFakeBalanceRepo())

	summary, err := svc.VendorEarnings(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.PendingEarnings)
}

// TestPlatformRevenue тестирует сводку комиссионной выручки платформы
func TestPlatformRevenue(t *testing.T) {
	txRepo := newFakeTxRepo()
	txRepo.commissions = []*domain.Transaction{
		{Type: domain.TransactionCommission, Amount: 1550, CommissionAmount: ptr.Ptr(341.0)},
		{Type: domain.TransactionCommission, Amount: 1000, CommissionAmount: ptr.Ptr(220.0)},
		{Type: domain.TransactionCommission, Amount: 500, CommissionAmount: ptr.Ptr(110.0)},
	}
	svc := newTestService(txRepo, newFakeBalanceRepo())

	summary, err := svc.PlatformRevenue(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 671.0, summary.TotalCommissions)
	assert.Equal(t, 3, summary.TotalBookings)
	assert.InDelta(t, 223.67, summary.AvgCommissionPerBooking, 0.001)
}

// TestPlatformRevenue_Empty проверяет сводку без транзакций
func TestPlatformRevenue_Empty(t *testing.T) {
	svc := newTestService(newFakeTxRepo(), newFakeBalanceRepo())

	summary, err := svc.PlatformRevenue(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.TotalCommissions)
	assert.Equal(t, 0, summary.TotalBookings)
	assert.Equal(t, 0.0, summary.AvgCommissionPerBooking)
}
