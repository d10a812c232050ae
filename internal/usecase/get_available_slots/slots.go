package get_available_slots

import (
	"time"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/integrations/vendorservice"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/types"
)

// generateTimeSlots генерирует список возможных времен начала услуги на день.
// Сетка идет от времени открытия с фиксированным шагом 30 минут; слот
// остается, только если услуга целиком помещается до закрытия. Слоты,
// начинающиеся внутри окна перерыва [breakStart, breakEnd), исключаются.
func generateTimeSlots(
	openTime types.TimeString,
	closeTime types.TimeString,
	serviceDuration int,
	breakStart *types.TimeString,
	breakEnd *types.TimeString,
) ([]types.TimeString, error) {
	slots := make([]types.TimeString, 0)
	currentSlot := openTime

	for currentSlot.IsBefore(closeTime) {
		slotEnd, err := currentSlot.AddMinutes(serviceDuration)
		if err != nil {
			return nil, err
		}
		// AddMinutes оборачивается по модулю суток: конец не позже начала
		// означает переход через полночь
		if !slotEnd.IsAfter(currentSlot) || slotEnd.IsAfter(closeTime) {
			break
		}

		if !isWithinBreak(currentSlot, breakStart, breakEnd) {
			slots = append(slots, currentSlot)
		}

		currentSlot, err = currentSlot.AddMinutes(domain.SlotGranularityMinutes)
		if err != nil {
			return nil, err
		}
	}

	return slots, nil
}

// isWithinBreak проверяет, попадает ли время начала в окно перерыва
// Начало ровно в breakEnd перерывом не считается
func isWithinBreak(slot types.TimeString, breakStart, breakEnd *types.TimeString) bool {
	if breakStart == nil || breakEnd == nil {
		return false
	}
	return !slot.IsBefore(*breakStart) && slot.IsBefore(*breakEnd)
}

// collectBookedSlots собирает времена начала активных бронирований на дату
// Дубликаты схлопываются, порядок соответствует порядку выдачи репозитория
func collectBookedSlots(bookings []*domain.Booking) []types.TimeString {
	seen := make(map[types.TimeString]struct{})
	booked := make([]types.TimeString, 0)

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		if _, ok := seen[booking.StartTime]; ok {
			continue
		}
		seen[booking.StartTime] = struct{}{}
		booked = append(booked, booking.StartTime)
	}

	return booked
}

// subtractBookedSlots возвращает слоты, времена начала которых не заняты
func subtractBookedSlots(slots []types.TimeString, booked []types.TimeString) []types.TimeString {
	bookedSet := make(map[types.TimeString]struct{}, len(booked))
	for _, b := range booked {
		bookedSet[b] = struct{}{}
	}

	available := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if _, taken := bookedSet[slot]; !taken {
			available = append(available, slot)
		}
	}

	return available
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

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
