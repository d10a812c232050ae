package confirm_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	bookingstorage "github.com/AryanRathore04/Builder-mystic-forge/internal/infra/storage/booking"
	loyaltysvc "github.com/AryanRathore04/Builder-mystic-forge/internal/service/loyalty"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/ptr"
)

// UseCase use case подтверждения оплаты бронирования.
// Списание баллов, расчет комиссии и начисление баллов выполняются
// в одной сериализуемой транзакции: либо применяется все, либо ничего.
type UseCase struct {
	bookingRepo BookingRepository
	loyaltySvc  LoyaltyService
	billingSvc  BillingService
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	loyaltySvc LoyaltyService,
	billingSvc BillingService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		loyaltySvc:  loyaltySvc,
		billingSvc:  billingSvc,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case подтверждения оплаты
// Повторный вызов для уже оплаченного бронирования идемпотентен:
// возвращает бронирование без повторного расчета комиссии
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: booking=%d, user=%d, method=%s", req.BookingID, req.UserID, req.PaymentMethod)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmPayment: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking
	alreadyPaid := false

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Бронирование читается с блокировкой (FOR UPDATE), чтобы два
		// параллельных подтверждения не рассчитали комиссию дважды
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingstorage.ErrBookingNotFound) {
				uc.logger.Warn("ConfirmPayment: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ConfirmPayment: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Проверка владельца
		if booking.CustomerID != req.UserID {
			uc.logger.Warn("ConfirmPayment: user id=%d is not the owner of booking id=%d", req.UserID, req.BookingID)
			return ErrPermissionDenied
		}

		// 3. Идемпотентность: уже оплаченное бронирование возвращается как есть
		if booking.IsPaid() {
			uc.logger.Info("ConfirmPayment: booking id=%d is already paid, nothing to do", req.BookingID)
			result = booking
			alreadyPaid = true
			return nil
		}

		if !booking.CanBeConfirmed() {
			uc.logger.Warn("ConfirmPayment: booking id=%d is in status %s", req.BookingID, booking.Status)
			return fmt.Errorf("%w: cannot confirm booking in status %s", ErrInvalidStateTransition, booking.Status)
		}

		// 4. Списываем зарезервированные при создании баллы. Если баллов
		// за прошедшее время стало меньше, подтверждение падает целиком
		if booking.LoyaltyPointsUsed > 0 {
			if _, err := uc.loyaltySvc.Redeem(txCtx, booking.CustomerID, booking.ID, booking.LoyaltyPointsUsed); err != nil {
				if errors.Is(err, loyaltysvc.ErrInsufficientPoints) || errors.Is(err, loyaltysvc.ErrBelowMinimumRedemption) {
					uc.logger.Warn("ConfirmPayment: booking id=%d: points no longer available: %v", req.BookingID, err)
					return fmt.Errorf("%w: %v", ErrInsufficientPoints, err)
				}
				uc.logger.Error("ConfirmPayment: failed to redeem points for booking id=%d: %v", req.BookingID, err)
				return fmt.Errorf("%w: failed to redeem points: %v", ErrInternal, err)
			}
		}

		// 5. Расчет комиссии платформы
		settlement, err := uc.billingSvc.Settle(txCtx, booking)
		if err != nil {
			uc.logger.Error("ConfirmPayment: failed to settle booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to settle booking: %v", ErrInternal, err)
		}

		// 6. Начисление баллов за потраченную сумму
		earned, err := uc.loyaltySvc.Award(txCtx, booking.CustomerID, booking.ID, booking.FinalPrice)
		if err != nil {
			uc.logger.Error("ConfirmPayment: failed to award points for booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to award points: %v", ErrInternal, err)
		}

		// 7. Фиксируем оплату на бронировании
		confirmation := domain.PaymentConfirmation{
			PaymentMethod:       req.PaymentMethod,
			PaymentRef:          req.PaymentRef,
			CommissionAmount:    settlement.CommissionAmount,
			VendorEarnings:      settlement.VendorEarnings,
			LoyaltyPointsEarned: earned,
		}

		if err := uc.bookingRepo.ConfirmPayment(txCtx, booking.ID, confirmation); err != nil {
			uc.logger.Error("ConfirmPayment: failed to update booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusConfirmed
		booking.PaymentStatus = domain.PaymentPaid
		booking.PaymentMethod = ptr.Ptr(req.PaymentMethod)
		booking.PaymentRef = ptr.Ptr(req.PaymentRef)
		booking.CommissionAmount = settlement.CommissionAmount
		booking.VendorEarnings = settlement.VendorEarnings
		booking.LoyaltyPointsEarned = earned

		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	if !alreadyPaid {
		uc.logger.Info("ConfirmPayment: booking id=%d confirmed, commission %.2f, vendor earnings %.2f, points earned %d",
			result.ID, result.CommissionAmount, result.VendorEarnings, result.LoyaltyPointsEarned)
	}

	return &Response{
		ID:                  result.ID,
		CustomerID:          result.CustomerID,
		VendorID:            result.VendorID,
		ServiceID:           result.ServiceID,
		BookingDate:         result.BookingDate,
		StartTime:           result.StartTime,
		DurationMinutes:     result.DurationMinutes,
		Status:              string(result.Status),
		PaymentStatus:       string(result.PaymentStatus),
		PaymentMethod:       result.PaymentMethod,
		PaymentRef:          result.PaymentRef,
		FinalPrice:          result.FinalPrice,
		CommissionAmount:    result.CommissionAmount,
		VendorEarnings:      result.VendorEarnings,
		LoyaltyPointsUsed:   result.LoyaltyPointsUsed,
		LoyaltyPointsEarned: result.LoyaltyPointsEarned,
		AlreadyPaid:         alreadyPaid,
		CreatedAt:           result.CreatedAt,
		UpdatedAt:           result.UpdatedAt,
	}, nil
}
