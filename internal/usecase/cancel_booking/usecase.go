package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	bookingstorage "github.com/AryanRathore04/Builder-mystic-forge/internal/infra/storage/booking"
	vendorClient "github.com/AryanRathore04/Builder-mystic-forge/internal/integrations/vendorservice"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/ptr"
)

// UseCase use case отмены бронирования с возвратом средств
type UseCase struct {
	bookingRepo  BookingRepository
	billingSvc   BillingService
	vendorClient VendorServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	billingSvc BillingService,
	vendorClient VendorServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		billingSvc:   billingSvc,
		vendorClient: vendorClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отмены бронирования
// Отмена и возврат средств выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, user=%d, by=%s", req.BookingID, req.UserID, req.CancelledBy)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.Booking
	var refundRef *string

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Бронирование читается с блокировкой (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingstorage.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Проверка прав на отмену
		if err := uc.checkPermission(txCtx, booking, req); err != nil {
			return err
		}

		// 3. Отменять можно только pending и confirmed
		if !booking.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%d is in status %s", req.BookingID, booking.Status)
			return fmt.Errorf("%w: booking is in status %s", ErrCannotCancel, booking.Status)
		}

		// 4. Штрафные токены зависят от инициатора и близости к началу услуги
		startsAt, err := booking.StartsAt()
		if err != nil {
			uc.logger.Error("CancelBooking: failed to compute start time of booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to compute booking start: %v", ErrInternal, err)
		}
		tokens := cancellationTokens(req.CancelledBy, startsAt, now)

		// 5. Оплаченное бронирование возвращается полностью
		paymentStatus := booking.PaymentStatus
		if booking.IsPaid() {
			ref, err := uc.billingSvc.Refund(txCtx, booking, booking.FinalPrice, req.Reason)
			if err != nil {
				uc.logger.Error("CancelBooking: failed to refund booking id=%d: %v", req.BookingID, err)
				return fmt.Errorf("%w: failed to refund booking: %v", ErrInternal, err)
			}
			refundRef = ptr.Ptr(ref)
			paymentStatus = domain.PaymentRefunded
		}

		// 6. Фиксируем отмену
		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, req.Reason, tokens, paymentStatus); err != nil {
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCancelled
		booking.PaymentStatus = paymentStatus
		booking.CancellationReason = ptr.Ptr(req.Reason)
		booking.CancellationTokens = tokens
		booking.CancelledAt = ptr.Ptr(now)

		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking id=%d cancelled by %s, tokens=%d, refunded=%v",
		result.ID, req.CancelledBy, result.CancellationTokens, refundRef != nil)

	return &Response{
		ID:                   result.ID,
		CustomerID:           result.CustomerID,
		VendorID:             result.VendorID,
		BookingDate:          result.BookingDate,
		StartTime:            result.StartTime,
		Status:               string(result.Status),
		PaymentStatus:        string(result.PaymentStatus),
		FinalPrice:           result.FinalPrice,
		CancellationReason:   result.CancellationReason,
		CancellationTokens:   result.CancellationTokens,
		CancelledAt:          result.CancelledAt,
		RefundTransactionRef: refundRef,
		UpdatedAt:            result.UpdatedAt,
	}, nil
}

// checkPermission проверяет право пользователя отменить бронирование:
// покупатель отменяет только свои бронирования, менеджер - бронирования
// своего салона. Администраторская отмена доверяет вышестоящему шлюзу
func (uc *UseCase) checkPermission(ctx context.Context, booking *domain.Booking, req *Request) error {
	switch req.CancelledBy {
	case CancelledByCustomer:
		if booking.CustomerID != req.UserID {
			uc.logger.Warn("CancelBooking: user id=%d is not the owner of booking id=%d", req.UserID, booking.ID)
			return ErrPermissionDenied
		}
	case CancelledByVendor:
		vendor, err := uc.vendorClient.GetVendor(ctx, booking.VendorID)
		if err != nil {
			if errors.Is(err, vendorClient.ErrVendorNotFound) {
				return ErrVendorNotFound
			}
			uc.logger.Error("CancelBooking: failed to get vendor id=%d: %v", booking.VendorID, err)
			return fmt.Errorf("%w: failed to get vendor: %v", ErrInternal, err)
		}

		isManager := false
		for _, managerID := range vendor.ManagerIDs {
			if managerID == req.UserID {
				isManager = true
				break
			}
		}
		if !isManager {
			uc.logger.Warn("CancelBooking: user id=%d is not a manager of vendor id=%d", req.UserID, booking.VendorID)
			return ErrPermissionDenied
		}
	case CancelledByAdmin:
		// Роль проверяется на шлюзе, сюда запрос приходит уже авторизованным
	}

	return nil
}
