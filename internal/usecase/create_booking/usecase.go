package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	vendorClient "github.com/AryanRathore04/Builder-mystic-forge/internal/integrations/vendorservice"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	vendorClient VendorServiceClient
	loyaltySvc   LoyaltyService
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	vendorClient VendorServiceClient,
	loyaltySvc LoyaltyService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		vendorClient: vendorClient,
		loyaltySvc:   loyaltySvc,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки за слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, vendor=%d, service=%d, date=%s, time=%s",
		req.CustomerID, req.VendorID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Валидация даты и времени
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}
	if err := validateBookingTime(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем салон
	vendor, err := uc.vendorClient.GetVendor(ctx, req.VendorID)
	if err != nil {
		if errors.Is(err, vendorClient.ErrVendorNotFound) {
			uc.logger.Warn("CreateBooking: vendor id=%d not found", req.VendorID)
			return nil, ErrVendorNotFound
		}
		uc.logger.Error("CreateBooking: failed to get vendor id=%d: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: failed to get vendor: %v", ErrInternal, err)
	}

	// 4. Получаем услугу
	service, err := uc.vendorClient.GetService(ctx, req.VendorID, req.ServiceID)
	if err != nil {
		if errors.Is(err, vendorClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Проверяем рабочие часы салона
	schedule := getScheduleForDay(vendor, req.Date)
	if !schedule.IsOpen || schedule.OpenTime == nil || schedule.CloseTime == nil {
		uc.logger.Warn("CreateBooking: vendor id=%d is closed on %s", req.VendorID, req.Date.Format(domain.DateFormat))
		return nil, ErrVendorClosed
	}

	openTime, err := types.NewTimeStringFromString(*schedule.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid open time %q: %v", ErrInternal, *schedule.OpenTime, err)
	}
	closeTime, err := types.NewTimeStringFromString(*schedule.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid close time %q: %v", ErrInternal, *schedule.CloseTime, err)
	}

	var breakStart, breakEnd *types.TimeString
	if schedule.BreakStart != nil && schedule.BreakEnd != nil {
		bs, err := types.NewTimeStringFromString(*schedule.BreakStart)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid break start %q: %v", ErrInternal, *schedule.BreakStart, err)
		}
		be, err := types.NewTimeStringFromString(*schedule.BreakEnd)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid break end %q: %v", ErrInternal, *schedule.BreakEnd, err)
		}
		breakStart, breakEnd = &bs, &be
	}

	// 6. Считаем цену и длительность (неизвестные доп. услуги игнорируются)
	price := computePricing(service, req.AddOnServiceIDs, req.PromoDiscount)

	// 7. Проверяем, что услуга со всеми дополнениями помещается в слот
	if err := validateSlotWithinSchedule(req.StartTime, price.TotalDuration, openTime, closeTime, breakStart, breakEnd); err != nil {
		uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
		return nil, err
	}

	// 8. Ограничиваем запрошенное списание баллов: не больше запрошенного,
	// не больше доступного и не больше, чем покрывает подитог. Само
	// списание произойдет при подтверждении оплаты
	loyaltyPoints := 0
	loyaltyDiscount := 0.0
	if req.LoyaltyPoints > 0 {
		if req.LoyaltyPoints < uc.loyaltySvc.MinRedemptionPoints() {
			uc.logger.Warn("CreateBooking: requested %d points, minimum %d", req.LoyaltyPoints, uc.loyaltySvc.MinRedemptionPoints())
			return nil, fmt.Errorf("%w: requested %d, minimum %d", ErrBelowMinimumRedemption, req.LoyaltyPoints, uc.loyaltySvc.MinRedemptionPoints())
		}

		available, err := uc.loyaltySvc.AvailablePoints(ctx, req.CustomerID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get available points for customer id=%d: %v", req.CustomerID, err)
			return nil, fmt.Errorf("%w: failed to get available points: %v", ErrInternal, err)
		}

		clamped := min(req.LoyaltyPoints, available, uc.loyaltySvc.MaxRedeemablePoints(price.Subtotal))
		if clamped < uc.loyaltySvc.MinRedemptionPoints() {
			uc.logger.Warn("CreateBooking: customer id=%d cannot meet minimum redemption: requested=%d, available=%d",
				req.CustomerID, req.LoyaltyPoints, available)
			return nil, fmt.Errorf("%w: requested %d, available %d", ErrInsufficientPoints, req.LoyaltyPoints, available)
		}

		loyaltyPoints = clamped
		loyaltyDiscount = uc.loyaltySvc.RedemptionValue(clamped)
	}

	price.applyDiscounts(loyaltyPoints, loyaltyDiscount)

	var result *domain.Booking

	// 9. Проверка слота и создание выполняются в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 9.1. Активные бронирования на дату читаются с блокировкой (FOR UPDATE)
		filter := domain.VendorBookingsFilter{
			VendorID:        req.VendorID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.GetByVendorWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 9.2. Повторная проверка занятости слота
		if isSlotTaken(req.StartTime, bookings) {
			uc.logger.Warn("CreateBooking: slot %s on %s is already taken", req.StartTime, req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 9.3. Бронирование создается pending/pending; комиссия и заработок
		// салона заполняются только при подтверждении оплаты
		booking := &domain.Booking{
			CustomerID:        req.CustomerID,
			VendorID:          req.VendorID,
			ServiceID:         req.ServiceID,
			AddOnServiceIDs:   price.AcceptedAddOns,
			BookingDate:       req.Date,
			StartTime:         req.StartTime,
			DurationMinutes:   price.TotalDuration,
			BasePrice:         price.BasePrice,
			AddOnPrice:        price.AddOnPrice,
			DiscountAmount:    price.DiscountAmount,
			FinalPrice:        price.FinalPrice,
			Status:            domain.StatusPending,
			PaymentStatus:     domain.PaymentPending,
			PromoCode:         req.PromoCode,
			PromoDiscount:     price.PromoDiscount,
			LoyaltyPointsUsed: price.LoyaltyPoints,
			Notes:             req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, final price %.2f", result.ID, result.FinalPrice)

	return &Response{
		ID:                result.ID,
		CustomerID:        result.CustomerID,
		VendorID:          result.VendorID,
		ServiceID:         result.ServiceID,
		AddOnServiceIDs:   result.AddOnServiceIDs,
		BookingDate:       result.BookingDate,
		StartTime:         result.StartTime,
		DurationMinutes:   result.DurationMinutes,
		Status:            string(result.Status),
		PaymentStatus:     string(result.PaymentStatus),
		BasePrice:         result.BasePrice,
		AddOnPrice:        result.AddOnPrice,
		DiscountAmount:    result.DiscountAmount,
		FinalPrice:        result.FinalPrice,
		LoyaltyPointsUsed: result.LoyaltyPointsUsed,
		PromoCode:         result.PromoCode,
		PromoDiscount:     result.PromoDiscount,
		Notes:             result.Notes,
		CreatedAt:         result.CreatedAt,
		UpdatedAt:         result.UpdatedAt,
	}, nil
}
