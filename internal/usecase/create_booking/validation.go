package create_booking

import (
	"fmt"
	"time"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/integrations/vendorservice"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.VendorID <= 0 {
		return fmt.Errorf("%w: vendorID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if len(req.AddOnServiceIDs) > domain.MaxAddOnsPerBooking {
		return fmt.Errorf("%w: too many add-on services (max %d)", ErrInvalidInput, domain.MaxAddOnsPerBooking)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.LoyaltyPoints < 0 {
		return fmt.Errorf("%w: loyaltyPoints must not be negative", ErrInvalidInput)
	}

	if req.PromoDiscount < 0 {
		return fmt.Errorf("%w: promoDiscount must not be negative", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes too long (max %d)", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(bookingDate time.Time, now time.Time) error {
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}
	return nil
}

// validateBookingTime проверяет, что при бронировании на сегодня время
// начала еще не прошло
func validateBookingTime(bookingDate time.Time, startTime types.TimeString, now time.Time) error {
	if !isSameDay(bookingDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	if startTime.IsBefore(currentTime) {
		return fmt.Errorf("%w: slot %s is already in the past", ErrTooLateToBook, startTime)
	}

	return nil
}

// validateSlotWithinSchedule проверяет, что слот лежит на 30-минутной сетке
// от открытия, услуга помещается до закрытия и начало не попадает в перерыв
func validateSlotWithinSchedule(
	startTime types.TimeString,
	totalDuration int,
	openTime types.TimeString,
	closeTime types.TimeString,
	breakStart *types.TimeString,
	breakEnd *types.TimeString,
) error {
	if startTime.IsBefore(openTime) {
		return fmt.Errorf("%w: slot %s is before opening time %s", ErrInvalidTimeSlot, startTime, openTime)
	}

	slotEnd, err := startTime.AddMinutes(totalDuration)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	// Конец не позже начала означает переход через полночь (AddMinutes
	// оборачивается по модулю суток)
	if !slotEnd.IsAfter(startTime) || slotEnd.IsAfter(closeTime) {
		return fmt.Errorf("%w: service does not fit before closing time %s", ErrInvalidTimeSlot, closeTime)
	}

	startMinutes, err := startTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	openMinutes, err := openTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	if (startMinutes-openMinutes)%domain.SlotGranularityMinutes != 0 {
		return fmt.Errorf("%w: slot %s is not on the %d-minute grid", ErrInvalidTimeSlot, startTime, domain.SlotGranularityMinutes)
	}

	if breakStart != nil && breakEnd != nil {
		if !startTime.IsBefore(*breakStart) && startTime.IsBefore(*breakEnd) {
			return fmt.Errorf("%w: slot %s falls within the break window", ErrInvalidTimeSlot, startTime)
		}
	}

	return nil
}

// isSlotTaken проверяет, занято ли время начала активным бронированием
func isSlotTaken(startTime types.TimeString, bookings []*domain.Booking) bool {
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		if booking.StartTime == startTime {
			return true
		}
	}
	return false
}

// getScheduleForDay возвращает расписание работы салона на указанный день недели
func getScheduleForDay(vendor *vendorservice.Vendor, date time.Time) vendorservice.DaySchedule {
	weekday := date.Weekday()

	switch weekday {
	case time.Monday:
		return vendor.OperatingHours.Monday
	case time.Tuesday:
		return vendor.OperatingHours.Tuesday
	case time.Wednesday:
		return vendor.OperatingHours.Wednesday
	case time.Thursday:
		return vendor.OperatingHours.Thursday
	case time.Friday:
		return vendor.OperatingHours.Friday
	case time.Saturday:
		return vendor.OperatingHours.Saturday
	case time.Sunday:
		return vendor.OperatingHours.Sunday
	default:
		return vendorservice.DaySchedule{IsOpen: false}
	}
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
