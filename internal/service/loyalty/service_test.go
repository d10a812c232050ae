package loyalty

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/ptr"
)

type fakeLedgerRepo struct {
	transactions []*domain.LoyaltyTransaction
	available    int
	expired      []*domain.LoyaltyTransaction
	processed    []int64
	balances     map[int64]int
	nextID       int64
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{balances: make(map[int64]int)}
}

func (r *fakeLedgerRepo) CreateTransaction(_ context.Context, tx *domain.LoyaltyTransaction) (*domain.LoyaltyTransaction, error) {
	r.nextID++
	created := *tx
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	r.transactions = append(r.transactions, &created)
	return &created, nil
}

func (r *fakeLedgerRepo) GetByCustomerID(_ context.Context, _ int64) ([]*domain.LoyaltyTransaction, error) {
	return r.transactions, nil
}

func (r *fakeLedgerRepo) ListByPeriod(_ context.Context, _, _ *time.Time) ([]*domain.LoyaltyTransaction, error) {
	return r.transactions, nil
}

func (r *fakeLedgerRepo) SumAvailablePoints(_ context.Context, _ int64, _ time.Time) (int, error) {
	return r.available, nil
}

func (r *fakeLedgerRepo) ListExpiredUnprocessed(_ context.Context, _ time.Time, limit uint64) ([]*domain.LoyaltyTransaction, error) {
	if uint64(len(r.expired)) > limit {
		return r.expired[:limit], nil
	}
	return r.expired, nil
}

func (r *fakeLedgerRepo) MarkExpiryProcessed(_ context.Context, id int64) error {
	r.processed = append(r.processed, id)
	for i, entry := range r.expired {
		if entry.ID == id {
			r.expired = append(r.expired[:i], r.expired[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeLedgerRepo) AdjustBalance(_ context.Context, customerID int64, delta int) error {
	r.balances[customerID] += delta
	return nil
}

type fixedTime struct{ t time.Time }

func (f *fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func defaultConfig() Config {
	return Config{
		PointsPerCurrencyUnit: 1.0,
		RedemptionRate:        1.0,
		MinRedemptionPoints:   100,
		ExpiryDays:            365,
	}
}

func newTestService(repo *fakeLedgerRepo, cfg Config) *Service {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	return NewService(repo, cfg, &fixedTime{t: now}, nopLogger{})
}

// TestAward тестирует начисление баллов за потраченную сумму
func TestAward(t *testing.T) {
	tests := []struct {
		name           string
		rate           float64
		amount         float64
		expectedPoints int
	}{
		{
			name:           "one point per currency unit",
			rate:           1.0,
			amount:         1550,
			expectedPoints: 1550,
		},
		{
			name:           "fractional accrual is floored",
			rate:           0.5,
			amount:         1333,
			expectedPoints: 666,
		},
		{
			name:           "zero amount awards nothing",
			rate:           1.0,
			amount:         0,
			expectedPoints: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeLedgerRepo()
			cfg := defaultConfig()
			cfg.PointsPerCurrencyUnit = tt.rate
			svc := newTestService(repo, cfg)

			points, err := svc.Award(context.Background(), 7, 42, tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedPoints, points)

			if tt.expectedPoints == 0 {
				// Нулевое начисление не пишет в леджер
				assert.Empty(t, repo.transactions)
				return
			}

			require.Len(t, repo.transactions, 1)
			tx := repo.transactions[0]
			assert.Equal(t, domain.LoyaltyEarned, tx.Type)
			assert.Equal(t, tt.expectedPoints, tx.Points)
			require.NotNil(t, tx.ExpiresAt)
			assert.Equal(t, tt.expectedPoints, repo.balances[int64(7)])
		})
	}
}

// TestAward_ExpiryDate проверяет, что срок жизни баллов идет от момента начисления
func TestAward_ExpiryDate(t *testing.T) {
	repo := newFakeLedgerRepo()
	svc := newTestService(repo, defaultConfig())

	_, err := svc.Award(context.Background(), 7, 42, 100)
	require.NoError(t, err)

	require.Len(t, repo.transactions, 1)
	expected := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, expected, *repo.transactions[0].ExpiresAt)
}

// TestRedeem тестирует списание баллов
func TestRedeem(t *testing.T) {
	repo := newFakeLedgerRepo()
	repo.available = 500
	svc := newTestService(repo, defaultConfig())

	discount, err := svc.Redeem(context.Background(), 7, 42, 150)
	require.NoError(t, err)
	assert.Equal(t, 150.0, discount)

	require.Len(t, repo.transactions, 1)
	tx := repo.transactions[0]
	assert.Equal(t, domain.LoyaltyRedeemed, tx.Type)
	assert.Equal(t, -150, tx.Points)
	assert.Equal(t, -150, repo.balances[int64(7)])
}

// TestRedeem_Errors тестирует отказы при списании
func TestRedeem_Errors(t *testing.T) {
	tests := []struct {
		name        string
		available   int
		points      int
		expectedErr error
	}{
		{
			name:        "non-positive points",
			available:   500,
			points:      0,
			expectedErr: ErrInvalidPoints,
		},
		{
			name:        "below minimum threshold",
			available:   500,
			points:      99,
			expectedErr: ErrBelowMinimumRedemption,
		},
		{
			name:        "more than available",
			available:   120,
			points:      150,
			expectedErr: ErrInsufficientPoints,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeLedgerRepo()
			repo.available = tt.available
			svc := newTestService(repo, defaultConfig())

			_, err := svc.Redeem(context.Background(), 7, 42, tt.points)
			assert.ErrorIs(t, err, tt.expectedErr)
			// Отказ не оставляет следов в леджере
			assert.Empty(t, repo.transactions)
		})
	}
}

// TestHistory тестирует сводку по истории леджера
func TestHistory(t *testing.T) {
	repo := newFakeLedgerRepo()
	repo.available = 250
	repo.transactions = []*domain.LoyaltyTransaction{
		{ID: 1, Type: domain.LoyaltyEarned, Points: 300},
		{ID: 2, Type: domain.LoyaltyEarned, Points: 200},
		{ID: 3, Type: domain.LoyaltyRedeemed, Points: -150},
		{ID: 4, Type: domain.LoyaltyExpired, Points: -100},
	}
	svc := newTestService(repo, defaultConfig())

	txs, summary, err := svc.History(context.Background(), 7)
	require.NoError(t, err)

	assert.Len(t, txs, 4)
	assert.Equal(t, 500, summary.TotalEarned)
	assert.Equal(t, 150, summary.TotalRedeemed)
	assert.Equal(t, 100, summary.TotalExpired)
	assert.Equal(t, 250, summary.AvailablePoints)
	assert.Equal(t, 250.0, summary.RedemptionValue)
}

// TestPlatformAnalytics тестирует сводку программы лояльности по всему леджеру
func TestPlatformAnalytics(t *testing.T) {
	repo := newFakeLedgerRepo()
	repo.transactions = []*domain.LoyaltyTransaction{
		{ID: 1, CustomerID: 7, Type: domain.LoyaltyEarned, Points: 300},
		{ID: 2, CustomerID: 8, Type: domain.LoyaltyEarned, Points: 200},
		{ID: 3, CustomerID: 7, Type: domain.LoyaltyRedeemed, Points: -150},
		{ID: 4, CustomerID: 9, Type: domain.LoyaltyExpired, Points: -100},
	}
	svc := newTestService(repo, defaultConfig())

	summary, err := svc.PlatformAnalytics(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 500, summary.TotalPointsEarned)
	assert.Equal(t, 150, summary.TotalPointsRedeemed)
	assert.Equal(t, 100, summary.TotalPointsExpired)
	assert.Equal(t, 3, summary.ActiveCustomers)
	assert.InDelta(t, 30.0, summary.RedemptionRate, 0.001)
	assert.Equal(t, 150.0, summary.RedemptionValue)
	assert.Len(t, summary.Transactions, 4)
}

// TestPlatformAnalytics_Empty проверяет сводку по пустому леджеру
func TestPlatformAnalytics_Empty(t *testing.T) {
	svc := newTestService(newFakeLedgerRepo(), defaultConfig())

	summary, err := svc.PlatformAnalytics(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Zero(t, summary.TotalPointsEarned)
	assert.Zero(t, summary.ActiveCustomers)
	assert.Zero(t, summary.RedemptionRate)
	assert.Empty(t, summary.Transactions)
}

// TestExpireOldPoints тестирует обработку истекших начислений
func TestExpireOldPoints(t *testing.T) {
	repo := newFakeLedgerRepo()
	repo.expired = []*domain.LoyaltyTransaction{
		{ID: 1, CustomerID: 7, Type: domain.LoyaltyEarned, Points: 300, BookingID: ptr.Ptr(int64(42)), CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, CustomerID: 8, Type: domain.LoyaltyEarned, Points: 100, CreatedAt: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)},
	}
	svc := newTestService(repo, defaultConfig())

	processed, err := svc.ExpireOldPoints(context.Background(), 500)
	require.NoError(t, err)
	assert.Equal(t, 2, processed)

	require.Len(t, repo.transactions, 2)
	offset := repo.transactions[0]
	assert.Equal(t, domain.LoyaltyExpired, offset.Type)
	assert.Equal(t, -300, offset.Points)
	assert.Equal(t, int64(7), offset.CustomerID)

	assert.Equal(t, []int64{1, 2}, repo.processed)
	assert.Equal(t, -300, repo.balances[int64(7)])
	assert.Equal(t, -100, repo.balances[int64(8)])

	// Повторный запуск ничего не меняет: записи уже помечены обработанными
	processed, err = svc.ExpireOldPoints(context.Background(), 500)
	require.NoError(t, err)
	assert.Equal(t, 0, processed)
	assert.Len(t, repo.transactions, 2)
}

// TestMaxRedeemablePoints тестирует ограничение списания размером заказа
func TestMaxRedeemablePoints(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		subtotal float64
		expected int
	}{
		{
			name:     "one to one rate",
			rate:     1.0,
			subtotal: 1700,
			expected: 1700,
		},
		{
			name:     "half currency unit per point",
			rate:     0.5,
			subtotal: 100,
			expected: 200,
		},
		{
			name:     "zero subtotal",
			rate:     1.0,
			subtotal: 0,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.RedemptionRate = tt.rate
			svc := newTestService(newFakeLedgerRepo(), cfg)

			assert.Equal(t, tt.expected, svc.MaxRedeemablePoints(tt.subtotal))
		})
	}
}
