package billing

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/ptr"
)

// Service сервис расчёта комиссий и выплат салонам
type Service struct {
	txRepo         TransactionRepository
	balanceRepo    VendorBalanceRepository
	commissionRate float64
	timeProvider   TimeProvider
	log            Logger
}

func NewService(txRepo TransactionRepository, balanceRepo VendorBalanceRepository, commissionRate float64, timeProvider TimeProvider, log Logger) *Service {
	return &Service{
		txRepo:         txRepo,
		balanceRepo:    balanceRepo,
		commissionRate: commissionRate,
		timeProvider:   timeProvider,
		log:            log,
	}
}

// SettlementResult результат расчёта комиссии по бронированию
type SettlementResult struct {
	TransactionRef   string
	CommissionAmount float64
	VendorEarnings   float64
}

// Settle рассчитывает комиссию платформы по оплаченному бронированию.
// Комиссия берётся от итоговой цены (после всех скидок), остаток
// зачисляется салону. Повторный расчёт по тому же бронированию запрещён.
func (s *Service) Settle(ctx context.Context, booking *domain.Booking) (*SettlementResult, error) {
	exists, err := s.txRepo.ExistsForBooking(ctx, booking.ID, domain.TransactionCommission)
	if err != nil {
		return nil, fmt.Errorf("%w: Settle - check existing settlement: %v", ErrInternal, err)
	}
	if exists {
		s.log.Warn("billing.Settle: бронирование %d уже рассчитано, пропускаем", booking.ID)
		return nil, ErrAlreadySettled
	}

	commission := round2(booking.FinalPrice * s.commissionRate)
	vendorEarnings := round2(booking.FinalPrice - commission)
	now := s.timeProvider.Now()

	tx := &domain.Transaction{
		Reference:        uuid.NewString(),
		Type:             domain.TransactionCommission,
		BookingID:        ptr.Ptr(booking.ID),
		VendorID:         booking.VendorID,
		CustomerID:       ptr.Ptr(booking.CustomerID),
		Amount:           booking.FinalPrice,
		CommissionAmount: ptr.Ptr(commission),
		Description:      fmt.Sprintf("Commission for booking %d", booking.ID),
		Status:           domain.TransactionCompleted,
		ProcessedAt:      ptr.Ptr(now),
	}

	created, err := s.txRepo.Create(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("%w: Settle - create commission transaction: %v", ErrInternal, err)
	}

	if err := s.balanceRepo.AddEarnings(ctx, booking.VendorID, vendorEarnings); err != nil {
		return nil, fmt.Errorf("%w: Settle - add vendor earnings: %v", ErrInternal, err)
	}

	s.log.Info("billing.Settle: booking %d, комиссия %.2f, заработок салона %.2f", booking.ID, commission, vendorEarnings)

	return &SettlementResult{
		TransactionRef:   created.Reference,
		CommissionAmount: commission,
		VendorEarnings:   vendorEarnings,
	}, nil
}

// Refund фиксирует возврат средств по отменённому бронированию.
// Комиссионная часть возврата ложится на платформу, остальное
// списывается с накопленного заработка салона.
func (s *Service) Refund(ctx context.Context, booking *domain.Booking, refundAmount float64, reason string) (string, error) {
	if refundAmount <= 0 {
		return "", fmt.Errorf("%w: Refund - amount must be positive, got %.2f", ErrInvalidAmount, refundAmount)
	}

	commissionRefund := round2(refundAmount * s.commissionRate)
	vendorRefund := round2(refundAmount - commissionRefund)
	now := s.timeProvider.Now()

	tx := &domain.Transaction{
		Reference:        uuid.NewString(),
		Type:             domain.TransactionRefund,
		BookingID:        ptr.Ptr(booking.ID),
		VendorID:         booking.VendorID,
		CustomerID:       ptr.Ptr(booking.CustomerID),
		Amount:           -refundAmount,
		CommissionAmount: ptr.Ptr(-commissionRefund),
		Description:      fmt.Sprintf("Refund for booking %d: %s", booking.ID, reason),
		Status:           domain.TransactionCompleted,
		ProcessedAt:      ptr.Ptr(now),
	}

	created, err := s.txRepo.Create(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("%w: Refund - create refund transaction: %v", ErrInternal, err)
	}

	if vendorRefund > 0 {
		if err := s.balanceRepo.AddEarnings(ctx, booking.VendorID, -vendorRefund); err != nil {
			return "", fmt.Errorf("%w: Refund - deduct vendor earnings: %v", ErrInternal, err)
		}
	}

	s.log.Info("billing.Refund: booking %d, возврат %.2f (салон %.2f, платформа %.2f)", booking.ID, refundAmount, vendorRefund, commissionRefund)

	return created.Reference, nil
}

// Payout фиксирует выплату салону и уменьшает сумму к выплате.
func (s *Service) Payout(ctx context.Context, vendorID int64, amount float64) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("%w: Payout - amount must be positive, got %.2f", ErrInvalidAmount, amount)
	}

	tx := &domain.Transaction{
		Reference:   uuid.NewString(),
		Type:        domain.TransactionPayout,
		VendorID:    vendorID,
		Amount:      -amount,
		Description: fmt.Sprintf("Payout to vendor %d", vendorID),
		Status:      domain.TransactionPending,
	}

	created, err := s.txRepo.Create(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("%w: Payout - create payout transaction: %v", ErrInternal, err)
	}

	if err := s.balanceRepo.DeductPayout(ctx, vendorID, amount); err != nil {
		return "", fmt.Errorf("%w: Payout - deduct pending payouts: %v", ErrInternal, err)
	}

	s.log.Info("billing.Payout: vendor %d, выплата %.2f, транзакция %s", vendorID, amount, created.Reference)

	return created.Reference, nil
}

// VendorEarnings собирает сводку заработка салона по леджеру транзакций.
// Леджер является источником истины, счётчики vendor_balances здесь не читаются.
func (s *Service) VendorEarnings(ctx context.Context, vendorID int64) (*domain.VendorEarningsSummary, error) {
	txs, err := s.txRepo.GetByVendorID(ctx, vendorID, []domain.TransactionType{
		domain.TransactionCommission,
		domain.TransactionPayout,
		domain.TransactionRefund,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: VendorEarnings - get transactions: %v", ErrInternal, err)
	}

	summary := &domain.VendorEarningsSummary{Transactions: txs}
	for _, tx := range txs {
		switch tx.Type {
		case domain.TransactionCommission:
			commission := 0.0
			if tx.CommissionAmount != nil {
				commission = *tx.CommissionAmount
			}
			summary.TotalEarnings = round2(summary.TotalEarnings + tx.Amount - commission)
		case domain.TransactionPayout:
			summary.TotalPayouts = round2(summary.TotalPayouts + -tx.Amount)
		case domain.TransactionRefund:
			refundCommission := 0.0
			if tx.CommissionAmount != nil {
				refundCommission = *tx.CommissionAmount
			}
			// Суммы возвратов отрицательные, поэтому здесь чистое уменьшение
			summary.TotalEarnings = round2(summary.TotalEarnings + tx.Amount - refundCommission)
		}
	}
	summary.PendingEarnings = round2(summary.TotalEarnings - summary.TotalPayouts)
	if summary.PendingEarnings < 0 {
		summary.PendingEarnings = 0
	}

	return summary, nil
}

// PlatformRevenue собирает сводку комиссионной выручки платформы за период.
func (s *Service) PlatformRevenue(ctx context.Context, startDate, endDate *time.Time) (*domain.PlatformRevenueSummary, error) {
	txs, err := s.txRepo.GetCommissions(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: PlatformRevenue - get commissions: %v", ErrInternal, err)
	}

	summary := &domain.PlatformRevenueSummary{Transactions: txs}
	for _, tx := range txs {
		if tx.CommissionAmount != nil {
			summary.TotalCommissions = round2(summary.TotalCommissions + *tx.CommissionAmount)
		}
		summary.TotalBookings++
	}
	if summary.TotalBookings > 0 {
		summary.AvgCommissionPerBooking = round2(summary.TotalCommissions / float64(summary.TotalBookings))
	}

	return summary, nil
}

// CommissionRate возвращает текущую ставку комиссии платформы.
func (s *Service) CommissionRate() float64 {
	return s.commissionRate
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
