package loyalty

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/ptr"
)

// Config параметры программы лояльности
type Config struct {
	// PointsPerCurrencyUnit сколько баллов начисляется за единицу валюты
	PointsPerCurrencyUnit float64
	// RedemptionRate стоимость одного балла в валюте при списании
	RedemptionRate float64
	// MinRedemptionPoints минимальное количество баллов для списания
	MinRedemptionPoints int
	// ExpiryDays срок жизни начисленных баллов в днях
	ExpiryDays int
}

// Service сервис программы лояльности поверх append-only леджера
type Service struct {
	repo         LedgerRepository
	cfg          Config
	timeProvider TimeProvider
	log          Logger
}

func NewService(repo LedgerRepository, cfg Config, timeProvider TimeProvider, log Logger) *Service {
	return &Service{
		repo:         repo,
		cfg:          cfg,
		timeProvider: timeProvider,
		log:          log,
	}
}

// Award начисляет баллы за потраченную сумму: floor(amount * rate).
// Нулевое или отрицательное начисление не создает записей в леджере.
func (s *Service) Award(ctx context.Context, customerID int64, bookingID int64, amountSpent float64) (int, error) {
	points := s.PointsForAmount(amountSpent)
	if points <= 0 {
		return 0, nil
	}

	now := s.timeProvider.Now()
	expiresAt := now.AddDate(0, 0, s.cfg.ExpiryDays)

	tx := &domain.LoyaltyTransaction{
		Reference:   uuid.NewString(),
		CustomerID:  customerID,
		Type:        domain.LoyaltyEarned,
		Points:      points,
		BookingID:   ptr.Ptr(bookingID),
		Description: fmt.Sprintf("Points earned for booking %d", bookingID),
		ExpiresAt:   ptr.Ptr(expiresAt),
	}

	if _, err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return 0, fmt.Errorf("%w: Award - create earned transaction: %v", ErrInternal, err)
	}

	if err := s.repo.AdjustBalance(ctx, customerID, points); err != nil {
		return 0, fmt.Errorf("%w: Award - adjust balance cache: %v", ErrInternal, err)
	}

	s.log.Info("loyalty.Award: customer %d получил %d баллов за booking %d", customerID, points, bookingID)

	return points, nil
}

// Redeem списывает баллы и возвращает размер скидки в валюте.
// Требует минимального порога и достаточного доступного остатка.
func (s *Service) Redeem(ctx context.Context, customerID int64, bookingID int64, points int) (float64, error) {
	if points <= 0 {
		return 0, fmt.Errorf("%w: Redeem - points must be positive, got %d", ErrInvalidPoints, points)
	}
	if points < s.cfg.MinRedemptionPoints {
		return 0, fmt.Errorf("%w: requested %d, minimum %d", ErrBelowMinimumRedemption, points, s.cfg.MinRedemptionPoints)
	}

	now := s.timeProvider.Now()
	available, err := s.repo.SumAvailablePoints(ctx, customerID, now)
	if err != nil {
		return 0, fmt.Errorf("%w: Redeem - sum available points: %v", ErrInternal, err)
	}
	if points > available {
		return 0, fmt.Errorf("%w: requested %d, available %d", ErrInsufficientPoints, points, available)
	}

	tx := &domain.LoyaltyTransaction{
		Reference:   uuid.NewString(),
		CustomerID:  customerID,
		Type:        domain.LoyaltyRedeemed,
		Points:      -points,
		BookingID:   ptr.Ptr(bookingID),
		Description: fmt.Sprintf("Points redeemed for booking %d", bookingID),
	}

	if _, err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return 0, fmt.Errorf("%w: Redeem - create redeemed transaction: %v", ErrInternal, err)
	}

	if err := s.repo.AdjustBalance(ctx, customerID, -points); err != nil {
		return 0, fmt.Errorf("%w: Redeem - adjust balance cache: %v", ErrInternal, err)
	}

	discount := s.RedemptionValue(points)
	s.log.Info("loyalty.Redeem: customer %d списал %d баллов (скидка %.2f) для booking %d", customerID, points, discount, bookingID)

	return discount, nil
}

// AvailablePoints возвращает доступные баллы проекцией леджера.
func (s *Service) AvailablePoints(ctx context.Context, customerID int64) (int, error) {
	points, err := s.repo.SumAvailablePoints(ctx, customerID, s.timeProvider.Now())
	if err != nil {
		return 0, fmt.Errorf("%w: AvailablePoints - sum available points: %v", ErrInternal, err)
	}
	return points, nil
}

// History возвращает полную историю леджера покупателя со сводкой.
func (s *Service) History(ctx context.Context, customerID int64) ([]*domain.LoyaltyTransaction, *domain.LoyaltySummary, error) {
	txs, err := s.repo.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: History - get transactions: %v", ErrInternal, err)
	}

	summary := &domain.LoyaltySummary{}
	for _, tx := range txs {
		switch tx.Type {
		case domain.LoyaltyEarned:
			summary.TotalEarned += tx.Points
		case domain.LoyaltyRedeemed:
			summary.TotalRedeemed += -tx.Points
		case domain.LoyaltyExpired:
			summary.TotalExpired += -tx.Points
		}
	}

	available, err := s.repo.SumAvailablePoints(ctx, customerID, s.timeProvider.Now())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: History - sum available points: %v", ErrInternal, err)
	}
	summary.AvailablePoints = available
	summary.RedemptionValue = s.RedemptionValue(available)

	return txs, summary, nil
}

// PlatformAnalytics собирает сводку программы лояльности по всему леджеру
// за период: начислено, списано, истекло, число активных покупателей и
// процент списания от начисления.
func (s *Service) PlatformAnalytics(ctx context.Context, startDate, endDate *time.Time) (*domain.LoyaltyAnalyticsSummary, error) {
	txs, err := s.repo.ListByPeriod(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: PlatformAnalytics - list transactions: %v", ErrInternal, err)
	}

	summary := &domain.LoyaltyAnalyticsSummary{Transactions: txs}
	customers := make(map[int64]struct{})
	for _, tx := range txs {
		customers[tx.CustomerID] = struct{}{}
		switch tx.Type {
		case domain.LoyaltyEarned:
			summary.TotalPointsEarned += tx.Points
		case domain.LoyaltyRedeemed:
			summary.TotalPointsRedeemed += -tx.Points
		case domain.LoyaltyExpired:
			summary.TotalPointsExpired += -tx.Points
		}
	}

	summary.ActiveCustomers = len(customers)
	if summary.TotalPointsEarned > 0 {
		summary.RedemptionRate = float64(summary.TotalPointsRedeemed) / float64(summary.TotalPointsEarned) * 100
	}
	summary.RedemptionValue = s.RedemptionValue(summary.TotalPointsRedeemed)

	return summary, nil
}

// ExpireOldPoints обрабатывает партию истекших earned-записей: для каждой
// создает компенсирующую expired-запись и помечает исходную обработанной.
// Повторный запуск поверх уже обработанных записей ничего не меняет.
func (s *Service) ExpireOldPoints(ctx context.Context, batchSize uint64) (int, error) {
	now := s.timeProvider.Now()

	expired, err := s.repo.ListExpiredUnprocessed(ctx, now, batchSize)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireOldPoints - list expired entries: %v", ErrInternal, err)
	}

	processed := 0
	for _, entry := range expired {
		offset := &domain.LoyaltyTransaction{
			Reference:   uuid.NewString(),
			CustomerID:  entry.CustomerID,
			Type:        domain.LoyaltyExpired,
			Points:      -entry.Points,
			BookingID:   entry.BookingID,
			Description: fmt.Sprintf("Points expired (earned %s)", entry.CreatedAt.Format("2006-01-02")),
		}

		if _, err := s.repo.CreateTransaction(ctx, offset); err != nil {
			return processed, fmt.Errorf("%w: ExpireOldPoints - create expired transaction: %v", ErrInternal, err)
		}

		if err := s.repo.MarkExpiryProcessed(ctx, entry.ID); err != nil {
			return processed, fmt.Errorf("%w: ExpireOldPoints - mark entry processed: %v", ErrInternal, err)
		}

		if err := s.repo.AdjustBalance(ctx, entry.CustomerID, -entry.Points); err != nil {
			return processed, fmt.Errorf("%w: ExpireOldPoints - adjust balance cache: %v", ErrInternal, err)
		}

		processed++
	}

	if processed > 0 {
		s.log.Info("loyalty.ExpireOldPoints: обработано %d истекших записей", processed)
	}

	return processed, nil
}

// PointsForAmount вычисляет начисление за потраченную сумму.
func (s *Service) PointsForAmount(amount float64) int {
	if amount <= 0 {
		return 0
	}
	return int(math.Floor(amount * s.cfg.PointsPerCurrencyUnit))
}

// RedemptionValue переводит баллы в валютную скидку.
func (s *Service) RedemptionValue(points int) float64 {
	return float64(points) * s.cfg.RedemptionRate
}

// MaxRedeemablePoints максимальное число баллов, которое имеет смысл
// списывать против данной суммы: скидка не должна превышать сумму.
func (s *Service) MaxRedeemablePoints(subtotal float64) int {
	if subtotal <= 0 || s.cfg.RedemptionRate <= 0 {
		return 0
	}
	return int(math.Floor(subtotal / s.cfg.RedemptionRate))
}

// MinRedemptionPoints возвращает минимальный порог списания.
func (s *Service) MinRedemptionPoints() int {
	return s.cfg.MinRedemptionPoints
}
