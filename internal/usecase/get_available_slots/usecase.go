package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	vendorClient "github.com/AryanRathore04/Builder-mystic-forge/internal/integrations/vendorservice"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/types"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	vendorClient VendorServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	vendorClient VendorServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		vendorClient: vendorClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: vendor=%d, service=%d, date=%s",
		req.VendorID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем салон
	vendor, err := uc.vendorClient.GetVendor(ctx, req.VendorID)
	if err != nil {
		if errors.Is(err, vendorClient.ErrVendorNotFound) {
			uc.logger.Warn("GetAvailableSlots: vendor id=%d not found", req.VendorID)
			return nil, ErrVendorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get vendor id=%d: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: failed to get vendor: %v", ErrInternal, err)
	}

	// 3. Получаем услугу
	service, err := uc.vendorClient.GetService(ctx, req.VendorID, req.ServiceID)
	if err != nil {
		if errors.Is(err, vendorClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Получаем рабочие часы на указанную дату
	schedule := getScheduleForDay(vendor, req.Date)
	operatingHours := OperatingHours{
		IsOpen:     schedule.IsOpen,
		OpenTime:   schedule.OpenTime,
		CloseTime:  schedule.CloseTime,
		BreakStart: schedule.BreakStart,
		BreakEnd:   schedule.BreakEnd,
	}

	// Закрытый день - корректный ответ с пустым списком слотов
	if !schedule.IsOpen || schedule.OpenTime == nil || schedule.CloseTime == nil {
		uc.logger.Info("GetAvailableSlots: vendor id=%d is closed on %s", req.VendorID, req.Date.Format(domain.DateFormat))
		return &Response{
			VendorID:        req.VendorID,
			ServiceID:       req.ServiceID,
			Date:            req.Date,
			DurationMinutes: service.DurationMinutes,
			AvailableSlots:  []types.TimeString{},
			BookedSlots:     []types.TimeString{},
			OperatingHours:  operatingHours,
		}, nil
	}

	// Прошедшие даты не бронируются
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		return &Response{
			VendorID:        req.VendorID,
			ServiceID:       req.ServiceID,
			Date:            req.Date,
			DurationMinutes: service.DurationMinutes,
			AvailableSlots:  []types.TimeString{},
			BookedSlots:     []types.TimeString{},
			OperatingHours:  operatingHours,
		}, nil
	}

	// 5. Разбираем границы рабочего дня и перерыва
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

	// 6. Генерируем сетку слотов под длительность услуги
	slots, err := generateTimeSlots(openTime, closeTime, service.DurationMinutes, breakStart, breakEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 7. Получаем активные бронирования на эту дату
	filter := domain.VendorBookingsFilter{
		VendorID:        req.VendorID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByVendorWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Доступность = сетка минус занятые времена начала
	booked := collectBookedSlots(bookings)
	available := subtractBookedSlots(slots, booked)

	uc.logger.Info("GetAvailableSlots: vendor=%d, service=%d, date=%s: %d available, %d booked",
		req.VendorID, req.ServiceID, req.Date.Format(domain.DateFormat), len(available), len(booked))

	return &Response{
		VendorID:        req.VendorID,
		ServiceID:       req.ServiceID,
		Date:            req.Date,
		DurationMinutes: service.DurationMinutes,
		AvailableSlots:  available,
		BookedSlots:     booked,
		OperatingHours:  operatingHours,
	}, nil
}
