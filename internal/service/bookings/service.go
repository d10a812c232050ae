package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	bookingstorage "github.com/AryanRathore04/Builder-mystic-forge/internal/infra/storage/booking"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/integrations/vendorservice"
)

// Service сервис чтения и переходов жизненного цикла бронирований.
// Создание, оплата и отмена живут в отдельных usecase-ах, здесь только
// переходы без денежных побочных эффектов и доступ к данным.
type Service struct {
	repo         BookingRepository
	vendorClient VendorProvider
	log          Logger
}

func NewService(repo BookingRepository, vendorClient VendorProvider, log Logger) *Service {
	return &Service{
		repo:         repo,
		vendorClient: vendorClient,
		log:          log,
	}
}

// GetByID возвращает бронирование с проверкой доступа:
// видит владелец-покупатель или менеджер салона.
func (s *Service) GetByID(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.CustomerID != userID {
		isManager, err := s.isVendorManager(ctx, booking.VendorID, userID)
		if err != nil {
			return nil, err
		}
		if !isManager {
			return nil, fmt.Errorf("%w: user %d has no access to booking %d", ErrAccessDenied, userID, bookingID)
		}
	}

	return booking, nil
}

// GetCustomerBookings возвращает бронирования покупателя
func (s *Service) GetCustomerBookings(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	bookings, err := s.repo.GetByCustomerID(ctx, customerID, status)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomerBookings - get bookings: %v", ErrInternal, err)
	}
	return bookings, nil
}

// GetVendorBookings возвращает бронирования салона для его менеджера
func (s *Service) GetVendorBookings(ctx context.Context, userID int64, filter domain.VendorBookingsFilter) ([]*domain.Booking, error) {
	isManager, err := s.isVendorManager(ctx, filter.VendorID, userID)
	if err != nil {
		return nil, err
	}
	if !isManager {
		return nil, fmt.Errorf("%w: user %d is not a manager of vendor %d", ErrAccessDenied, userID, filter.VendorID)
	}

	bookings, err := s.repo.GetByVendorWithFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: GetVendorBookings - get bookings: %v", ErrInternal, err)
	}
	return bookings, nil
}

// StartService переводит подтвержденное бронирование в in_progress.
// Доступно только менеджеру салона.
func (s *Service) StartService(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	booking, err := s.requireManagedBooking(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	if !booking.CanBeStarted() {
		return nil, fmt.Errorf("%w: cannot start booking in status %s", ErrInvalidStateTransition, booking.Status)
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, domain.StatusInProgress); err != nil {
		return nil, fmt.Errorf("%w: StartService - update status: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusInProgress
	s.log.Info("bookings.StartService: booking %d переведен в in_progress менеджером %d", bookingID, userID)

	return booking, nil
}

// Complete переводит бронирование в completed.
// Расчет комиссии к этому моменту уже выполнен при подтверждении оплаты.
func (s *Service) Complete(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	booking, err := s.requireManagedBooking(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	if !booking.CanBeCompleted() {
		return nil, fmt.Errorf("%w: cannot complete booking in status %s", ErrInvalidStateTransition, booking.Status)
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, domain.StatusCompleted); err != nil {
		return nil, fmt.Errorf("%w: Complete - update status: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusCompleted
	s.log.Info("bookings.Complete: booking %d завершен менеджером %d", bookingID, userID)

	return booking, nil
}

// MarkNoShow помечает неявку клиента. Оплата при этом остается у салона,
// возврат и повторный расчет комиссии не выполняются. Клиент получает
// штрафные токены за неявку.
func (s *Service) MarkNoShow(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	booking, err := s.requireManagedBooking(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	if !booking.CanBeMarkedNoShow() {
		return nil, fmt.Errorf("%w: cannot mark no-show for booking in status %s", ErrInvalidStateTransition, booking.Status)
	}

	if err := s.repo.SetNoShow(ctx, bookingID, domain.TokensNoShow); err != nil {
		return nil, fmt.Errorf("%w: MarkNoShow - set no-show: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusNoShow
	booking.CancellationTokens = domain.TokensNoShow
	s.log.Warn("bookings.MarkNoShow: booking %d помечен как неявка, клиент %d получил %d токенов", bookingID, booking.CustomerID, domain.TokensNoShow)

	return booking, nil
}

// requireManagedBooking получает бронирование и проверяет, что пользователь
// является менеджером салона
func (s *Service) requireManagedBooking(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	isManager, err := s.isVendorManager(ctx, booking.VendorID, userID)
	if err != nil {
		return nil, err
	}
	if !isManager {
		return nil, fmt.Errorf("%w: user %d is not a manager of vendor %d", ErrAccessDenied, userID, booking.VendorID)
	}

	return booking, nil
}

func (s *Service) getBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingstorage.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: booking %d", ErrBookingNotFound, bookingID)
		}
		return nil, fmt.Errorf("%w: getBooking - get booking: %v", ErrInternal, err)
	}
	return booking, nil
}

func (s *Service) isVendorManager(ctx context.Context, vendorID, userID int64) (bool, error) {
	vendor, err := s.vendorClient.GetVendor(ctx, vendorID)
	if err != nil {
		if errors.Is(err, vendorservice.ErrVendorNotFound) {
			return false, fmt.Errorf("%w: vendor %d", ErrVendorNotFound, vendorID)
		}
		return false, fmt.Errorf("%w: isVendorManager - get vendor: %v", ErrInternal, err)
	}

	for _, managerID := range vendor.ManagerIDs {
		if managerID == userID {
			return true, nil
		}
	}

	return false, nil
}
